// Package rename replaces the placeholder token in file and directory basenames.
package rename

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	scaffolderrors "github.com/tyemirov/create-lynx-app/internal/scaffold/errors"
	"github.com/tyemirov/create-lynx-app/internal/scaffold/shared"
	"github.com/tyemirov/create-lynx-app/internal/scaffold/walk"
)

const (
	renamedMessageConstant       = "path renamed"
	conflictMessageConstant      = "rename skipped: target exists"
	sourceMissingMessageConstant = "rename skipped: source no longer exists"
	targetDetailKeyConstant      = "target"
)

// Dependencies supplies collaborators for the rename engine.
type Dependencies struct {
	FileSystem afero.Fs
	Walker     *walk.Walker
	Reporter   shared.Reporter
}

// Options selects the token to replace and the basenames that must never change.
type Options struct {
	Token       string
	Replacement string
	IsProtected func(baseName string) bool
}

// Result summarizes a rename pass.
type Result struct {
	Renamed   int
	Conflicts int
	Missing   int
}

// Engine performs deepest-first placeholder renames.
type Engine struct {
	fileSystem afero.Fs
	walker     *walk.Walker
	reporter   shared.Reporter
}

// NewEngine constructs an Engine with defaults for unset dependencies.
func NewEngine(dependencies Dependencies) *Engine {
	fileSystem := dependencies.FileSystem
	if fileSystem == nil {
		fileSystem = afero.NewOsFs()
	}
	reporter := shared.ReporterOrNop(dependencies.Reporter)
	walker := dependencies.Walker
	if walker == nil {
		walker = walk.NewWalker(walk.Dependencies{FileSystem: fileSystem, Reporter: reporter})
	}
	return &Engine{fileSystem: fileSystem, walker: walker, reporter: reporter}
}

// Candidates lists the paths under rootDirectory whose basename carries the token, deepest first.
// Paths of equal depth keep walk order.
func (engine *Engine) Candidates(rootDirectory string, options Options) []string {
	if len(options.Token) == 0 {
		return nil
	}
	candidates := make([]string, 0)
	for _, path := range engine.walker.ListAllPaths(rootDirectory) {
		baseName := filepath.Base(path)
		if !strings.Contains(baseName, options.Token) {
			continue
		}
		if options.IsProtected != nil && options.IsProtected(baseName) {
			continue
		}
		candidates = append(candidates, path)
	}
	sort.SliceStable(candidates, func(left, right int) bool {
		return pathDepth(candidates[left]) > pathDepth(candidates[right])
	})
	return candidates
}

// RenamePaths renames every candidate, never overwriting an existing target. Conflicts leave the
// source in place and are reported as warnings.
func (engine *Engine) RenamePaths(rootDirectory string, options Options) (Result, error) {
	result := Result{}
	for _, sourcePath := range engine.Candidates(rootDirectory, options) {
		baseName := filepath.Base(sourcePath)
		targetPath := filepath.Join(filepath.Dir(sourcePath), strings.ReplaceAll(baseName, options.Token, options.Replacement))
		if targetPath == sourcePath {
			continue
		}

		if !engine.exists(sourcePath) {
			result.Missing++
			engine.report(shared.EventLevelDebug, shared.EventCodeRenameConflict, sourcePath, targetPath, sourceMissingMessageConstant)
			continue
		}
		if engine.exists(targetPath) {
			result.Conflicts++
			engine.report(shared.EventLevelWarn, shared.EventCodeRenameConflict, sourcePath, targetPath, conflictMessageConstant)
			continue
		}

		if renameError := engine.fileSystem.Rename(sourcePath, targetPath); renameError != nil {
			return result, scaffolderrors.Wrap(scaffolderrors.OperationPathRename, sourcePath, scaffolderrors.ErrRenameFailed, renameError)
		}
		result.Renamed++
		engine.report(shared.EventLevelDebug, shared.EventCodePathRenamed, sourcePath, targetPath, renamedMessageConstant)
	}
	return result, nil
}

func (engine *Engine) exists(path string) bool {
	_, statError := engine.fileSystem.Stat(path)
	return statError == nil
}

func (engine *Engine) report(level shared.EventLevel, code string, sourcePath string, targetPath string, message string) {
	engine.reporter.Report(shared.Event{
		Level:   level,
		Code:    code,
		Path:    sourcePath,
		Message: message,
		Details: map[string]string{targetDetailKeyConstant: targetPath},
	})
}

func pathDepth(path string) int {
	return strings.Count(filepath.Clean(path), string(filepath.Separator))
}

// Package substitute rewrites placeholder identifiers inside template file contents.
package substitute

import (
	"context"
	"sync/atomic"
	"unicode/utf8"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/tyemirov/create-lynx-app/internal/scaffold/classify"
	scaffolderrors "github.com/tyemirov/create-lynx-app/internal/scaffold/errors"
	"github.com/tyemirov/create-lynx-app/internal/scaffold/shared"
	"github.com/tyemirov/create-lynx-app/internal/scaffold/walk"
)

const (
	// DefaultConcurrencyConstant bounds simultaneous per-file rewrites.
	DefaultConcurrencyConstant = 8

	fileRewrittenMessageConstant  = "file content rewritten"
	fileUnreadableMessageConstant = "file unreadable; skipped"
	fileNotTextMessageConstant    = "file is not valid UTF-8 text; skipped"
	errorDetailKeyConstant        = "error"
)

// Dependencies supplies collaborators for the substitution engine.
type Dependencies struct {
	FileSystem  afero.Fs
	Walker      *walk.Walker
	Reporter    shared.Reporter
	Concurrency int
	IsTextFile  func(path string) bool
}

// Engine applies substitution rules across a directory tree.
type Engine struct {
	fileSystem  afero.Fs
	walker      *walk.Walker
	reporter    shared.Reporter
	concurrency int
	isTextFile  func(path string) bool
}

// Result summarizes one substitution pass.
type Result struct {
	Candidates int
	Rewritten  int
	Skipped    int
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
	concurrency := dependencies.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrencyConstant
	}
	isTextFile := dependencies.IsTextFile
	if isTextFile == nil {
		isTextFile = classify.IsTextFile
	}
	return &Engine{
		fileSystem:  fileSystem,
		walker:      walker,
		reporter:    reporter,
		concurrency: concurrency,
		isTextFile:  isTextFile,
	}
}

// SubstituteContent rewrites every text file under rootDirectory that matches at least one rule.
// Files are processed concurrently; rules within a file apply strictly in order. Unreadable or
// non-UTF-8 files are skipped. Files without matches are never written.
func (engine *Engine) SubstituteContent(executionContext context.Context, rootDirectory string, rules []shared.SubstitutionRule) (Result, error) {
	var candidates, rewritten, skipped atomic.Int64

	group, groupContext := errgroup.WithContext(executionContext)
	group.SetLimit(engine.concurrency)

	for _, candidatePath := range engine.walker.ListAllPaths(rootDirectory) {
		if !engine.isTextFile(candidatePath) {
			continue
		}
		if groupContext.Err() != nil {
			break
		}
		filePath := candidatePath
		group.Go(func() error {
			if contextError := groupContext.Err(); contextError != nil {
				return contextError
			}
			outcome, fileError := engine.substituteFile(filePath, rules)
			switch outcome {
			case fileOutcomeRewritten:
				candidates.Add(1)
				rewritten.Add(1)
			case fileOutcomeUnchanged:
				candidates.Add(1)
			case fileOutcomeSkipped:
				skipped.Add(1)
			}
			return fileError
		})
	}

	waitError := group.Wait()
	result := Result{Candidates: int(candidates.Load()), Rewritten: int(rewritten.Load()), Skipped: int(skipped.Load())}
	if waitError != nil {
		return result, waitError
	}
	if contextError := executionContext.Err(); contextError != nil {
		return result, contextError
	}
	return result, nil
}

type fileOutcome int

const (
	fileOutcomeDirectory fileOutcome = iota
	fileOutcomeSkipped
	fileOutcomeUnchanged
	fileOutcomeRewritten
)

func (engine *Engine) substituteFile(filePath string, rules []shared.SubstitutionRule) (fileOutcome, error) {
	fileInfo, statError := engine.fileSystem.Stat(filePath)
	if statError != nil {
		engine.reportSkip(filePath, fileUnreadableMessageConstant, statError)
		return fileOutcomeSkipped, nil
	}
	if fileInfo.IsDir() {
		return fileOutcomeDirectory, nil
	}

	content, readError := afero.ReadFile(engine.fileSystem, filePath)
	if readError != nil {
		engine.reportSkip(filePath, fileUnreadableMessageConstant, readError)
		return fileOutcomeSkipped, nil
	}
	if !utf8.Valid(content) {
		engine.reportSkip(filePath, fileNotTextMessageConstant, nil)
		return fileOutcomeSkipped, nil
	}

	updated, dirty := ApplyRules(string(content), rules)
	if !dirty {
		return fileOutcomeUnchanged, nil
	}

	if writeError := afero.WriteFile(engine.fileSystem, filePath, []byte(updated), fileInfo.Mode().Perm()); writeError != nil {
		return fileOutcomeSkipped, scaffolderrors.Wrap(scaffolderrors.OperationContentSubstitute, filePath, scaffolderrors.ErrSubstitutionFailed, writeError)
	}

	engine.reporter.Report(shared.Event{
		Level:   shared.EventLevelDebug,
		Code:    shared.EventCodeFileRewritten,
		Path:    filePath,
		Message: fileRewrittenMessageConstant,
	})
	return fileOutcomeRewritten, nil
}

func (engine *Engine) reportSkip(filePath string, message string, cause error) {
	event := shared.Event{
		Level:   shared.EventLevelDebug,
		Code:    shared.EventCodeFileSkipped,
		Path:    filePath,
		Message: message,
	}
	if cause != nil {
		event.Details = map[string]string{errorDetailKeyConstant: cause.Error()}
	}
	engine.reporter.Report(event)
}

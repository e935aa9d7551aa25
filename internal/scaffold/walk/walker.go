// Package walk lists every file and directory under a root without recursion.
package walk

import (
	"path/filepath"
	"strconv"

	"github.com/spf13/afero"

	"github.com/tyemirov/create-lynx-app/internal/scaffold/shared"
)

const (
	// DefaultMaximumDepthConstant bounds how many directory levels below the root are listed.
	DefaultMaximumDepthConstant = 256

	unreadableDirectoryMessageConstant = "directory unreadable; subtree omitted"
	depthExceededMessageConstant       = "maximum depth reached; subtree omitted"
	errorDetailKeyConstant             = "error"
	depthDetailKeyConstant             = "depth"
)

// Dependencies supplies collaborators for the walker.
type Dependencies struct {
	FileSystem   afero.Fs
	Reporter     shared.Reporter
	MaximumDepth int
}

// Walker enumerates template trees.
type Walker struct {
	fileSystem   afero.Fs
	reporter     shared.Reporter
	maximumDepth int
}

type pendingDirectory struct {
	path  string
	depth int
}

// NewWalker constructs a Walker, defaulting to the OS filesystem.
func NewWalker(dependencies Dependencies) *Walker {
	fileSystem := dependencies.FileSystem
	if fileSystem == nil {
		fileSystem = afero.NewOsFs()
	}
	maximumDepth := dependencies.MaximumDepth
	if maximumDepth <= 0 {
		maximumDepth = DefaultMaximumDepthConstant
	}
	return &Walker{
		fileSystem:   fileSystem,
		reporter:     shared.ReporterOrNop(dependencies.Reporter),
		maximumDepth: maximumDepth,
	}
}

// ListAllPaths returns every path below rootDirectory. A directory's immediate children are listed
// together before any of its subdirectories are descended into. Unreadable directories are omitted.
func (walker *Walker) ListAllPaths(rootDirectory string) []string {
	paths := make([]string, 0)
	stack := []pendingDirectory{{path: rootDirectory, depth: 0}}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, readError := afero.ReadDir(walker.fileSystem, current.path)
		if readError != nil {
			walker.reporter.Report(shared.Event{
				Level:   shared.EventLevelDebug,
				Code:    shared.EventCodeDirectorySkipped,
				Path:    current.path,
				Message: unreadableDirectoryMessageConstant,
				Details: map[string]string{errorDetailKeyConstant: readError.Error()},
			})
			continue
		}

		subdirectories := make([]pendingDirectory, 0)
		for _, entry := range entries {
			childPath := filepath.Join(current.path, entry.Name())
			paths = append(paths, childPath)
			if !entry.IsDir() {
				continue
			}
			if current.depth+1 >= walker.maximumDepth {
				walker.reporter.Report(shared.Event{
					Level:   shared.EventLevelDebug,
					Code:    shared.EventCodeDirectorySkipped,
					Path:    childPath,
					Message: depthExceededMessageConstant,
					Details: map[string]string{depthDetailKeyConstant: strconv.Itoa(current.depth + 1)},
				})
				continue
			}
			subdirectories = append(subdirectories, pendingDirectory{path: childPath, depth: current.depth + 1})
		}

		for index := len(subdirectories) - 1; index >= 0; index-- {
			stack = append(stack, subdirectories[index])
		}
	}

	return paths
}

// ListAllPaths walks rootDirectory on the provided filesystem with default limits.
func ListAllPaths(fileSystem afero.Fs, rootDirectory string) []string {
	return NewWalker(Dependencies{FileSystem: fileSystem}).ListAllPaths(rootDirectory)
}

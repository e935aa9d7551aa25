// Package packages relocates placeholder-named package directories to the project's package identifier.
package packages

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	scaffolderrors "github.com/tyemirov/create-lynx-app/internal/scaffold/errors"
	"github.com/tyemirov/create-lynx-app/internal/scaffold/shared"
)

const (
	packageMovedMessageConstant    = "package directory moved"
	packageMergedMessageConstant   = "package directory merged into existing destination"
	childExistsMessageConstant     = "package entry kept in place: destination already has it"
	destinationNotDirectoryMessage = "package destination is not a directory; source kept"
	directoryPrunedMessageConstant = "empty package directory removed"
	targetDetailKeyConstant        = "target"
)

// Dependencies supplies collaborators for the restructurer.
type Dependencies struct {
	FileSystem afero.Fs
	Reporter   shared.Reporter
}

// Options describes where placeholder package directories live and what they become.
type Options struct {
	ProjectRoot          string
	SourceRoots          []string
	Parent               string
	PlaceholderLocations []string
	PackageIdentifier    string
}

// Result summarizes a restructuring pass.
type Result struct {
	Moved           int
	Merged          int
	SkippedChildren int
	Pruned          int
}

// Restructurer moves or merges package directories.
type Restructurer struct {
	fileSystem afero.Fs
	reporter   shared.Reporter
}

// NewRestructurer constructs a Restructurer, defaulting to the OS filesystem.
func NewRestructurer(dependencies Dependencies) *Restructurer {
	fileSystem := dependencies.FileSystem
	if fileSystem == nil {
		fileSystem = afero.NewOsFs()
	}
	return &Restructurer{fileSystem: fileSystem, reporter: shared.ReporterOrNop(dependencies.Reporter)}
}

// RestructurePackageDirectories relocates every placeholder package directory under each source root.
// A missing destination receives the whole subtree in one move; an existing destination receives the
// source's children one by one, keeping any child whose name is already taken. Emptied directories
// between the source and the package parent are removed. Re-running on a restructured tree changes nothing.
func (restructurer *Restructurer) RestructurePackageDirectories(options Options) (Result, error) {
	result := Result{}
	packageIdentifier := strings.TrimSpace(options.PackageIdentifier)
	if len(packageIdentifier) == 0 {
		return result, nil
	}

	for _, sourceRoot := range options.SourceRoots {
		parentPath := filepath.Join(options.ProjectRoot, filepath.FromSlash(sourceRoot), filepath.FromSlash(options.Parent))
		if !restructurer.isDirectory(parentPath) {
			continue
		}
		destinationPath := filepath.Join(parentPath, packageIdentifier)

		for _, location := range options.PlaceholderLocations {
			sourcePath := filepath.Join(parentPath, filepath.FromSlash(location))
			if sourcePath == destinationPath || !restructurer.isDirectory(sourcePath) {
				continue
			}

			if relocateError := restructurer.relocate(sourcePath, destinationPath, &result); relocateError != nil {
				return result, relocateError
			}
			if pruneError := restructurer.pruneEmptyAncestors(sourcePath, parentPath, &result); pruneError != nil {
				return result, pruneError
			}
		}
	}

	return result, nil
}

func (restructurer *Restructurer) relocate(sourcePath string, destinationPath string, result *Result) error {
	destinationInfo, statError := restructurer.fileSystem.Stat(destinationPath)
	if statError != nil {
		if renameError := restructurer.fileSystem.Rename(sourcePath, destinationPath); renameError != nil {
			return scaffolderrors.Wrap(scaffolderrors.OperationPackageRestructure, sourcePath, scaffolderrors.ErrRestructureFailed, renameError)
		}
		result.Moved++
		restructurer.report(shared.EventLevelDebug, shared.EventCodePackageMoved, sourcePath, destinationPath, packageMovedMessageConstant)
		return nil
	}

	if !destinationInfo.IsDir() {
		restructurer.report(shared.EventLevelWarn, shared.EventCodePackageChildExists, sourcePath, destinationPath, destinationNotDirectoryMessage)
		return nil
	}

	entries, readError := afero.ReadDir(restructurer.fileSystem, sourcePath)
	if readError != nil {
		return scaffolderrors.Wrap(scaffolderrors.OperationPackageRestructure, sourcePath, scaffolderrors.ErrRestructureFailed, readError)
	}
	for _, entry := range entries {
		childSourcePath := filepath.Join(sourcePath, entry.Name())
		childDestinationPath := filepath.Join(destinationPath, entry.Name())
		if restructurer.exists(childDestinationPath) {
			result.SkippedChildren++
			restructurer.report(shared.EventLevelWarn, shared.EventCodePackageChildExists, childSourcePath, childDestinationPath, childExistsMessageConstant)
			continue
		}
		if renameError := restructurer.fileSystem.Rename(childSourcePath, childDestinationPath); renameError != nil {
			return scaffolderrors.Wrap(scaffolderrors.OperationPackageRestructure, childSourcePath, scaffolderrors.ErrRestructureFailed, renameError)
		}
	}

	result.Merged++
	restructurer.report(shared.EventLevelDebug, shared.EventCodePackageMerged, sourcePath, destinationPath, packageMergedMessageConstant)

	removed, removeError := restructurer.removeIfEmpty(sourcePath)
	if removeError != nil {
		return removeError
	}
	if removed {
		result.Pruned++
	}
	return nil
}

func (restructurer *Restructurer) pruneEmptyAncestors(sourcePath string, stopPath string, result *Result) error {
	for directory := filepath.Dir(sourcePath); directory != stopPath && strings.HasPrefix(directory, stopPath); directory = filepath.Dir(directory) {
		removed, removeError := restructurer.removeIfEmpty(directory)
		if removeError != nil {
			return removeError
		}
		if !removed {
			return nil
		}
		result.Pruned++
	}
	return nil
}

func (restructurer *Restructurer) removeIfEmpty(directory string) (bool, error) {
	if !restructurer.isDirectory(directory) {
		return false, nil
	}
	empty, emptyError := afero.IsEmpty(restructurer.fileSystem, directory)
	if emptyError != nil {
		return false, scaffolderrors.Wrap(scaffolderrors.OperationPackageRestructure, directory, scaffolderrors.ErrRestructureFailed, emptyError)
	}
	if !empty {
		return false, nil
	}
	if removeError := restructurer.fileSystem.Remove(directory); removeError != nil {
		return false, scaffolderrors.Wrap(scaffolderrors.OperationPackageRestructure, directory, scaffolderrors.ErrRestructureFailed, removeError)
	}
	restructurer.reporter.Report(shared.Event{
		Level:   shared.EventLevelDebug,
		Code:    shared.EventCodeDirectoryPruned,
		Path:    directory,
		Message: directoryPrunedMessageConstant,
	})
	return true, nil
}

func (restructurer *Restructurer) isDirectory(path string) bool {
	info, statError := restructurer.fileSystem.Stat(path)
	return statError == nil && info.IsDir()
}

func (restructurer *Restructurer) exists(path string) bool {
	_, statError := restructurer.fileSystem.Stat(path)
	return statError == nil
}

func (restructurer *Restructurer) report(level shared.EventLevel, code string, sourcePath string, targetPath string, message string) {
	restructurer.reporter.Report(shared.Event{
		Level:   level,
		Code:    code,
		Path:    sourcePath,
		Message: message,
		Details: map[string]string{targetDetailKeyConstant: targetPath},
	})
}

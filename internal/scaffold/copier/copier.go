// Package copier materializes a template directory into a project directory.
package copier

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	scaffolderrors "github.com/tyemirov/create-lynx-app/internal/scaffold/errors"
	"github.com/tyemirov/create-lynx-app/internal/scaffold/shared"
	"github.com/tyemirov/create-lynx-app/internal/scaffold/walk"
)

const (
	directoryPermissionsConstant  os.FileMode = 0o755
	filePermissionsConstant       os.FileMode = 0o644
	executablePermissionsConstant os.FileMode = 0o755
	ownerWritablePermission       os.FileMode = 0o200

	fileCopiedMessageConstant   = "template file copied"
	pathExcludedMessageConstant = "template path excluded"
)

// Dependencies supplies collaborators for the copier. Source and destination may be different filesystems.
type Dependencies struct {
	Source      afero.Fs
	Destination afero.Fs
	Reporter    shared.Reporter
}

// Options describes one copy.
type Options struct {
	TemplateDirectory string
	TargetDirectory   string
	// Include decides whether a slash-separated template-relative path is copied. Nil copies everything.
	Include func(relativePath string) bool
	// IsExecutable marks template-relative paths that receive execute permission.
	IsExecutable func(relativePath string) bool
}

// Result summarizes one copy.
type Result struct {
	Files       int
	Directories int
	Excluded    int
}

// Copier copies template trees.
type Copier struct {
	source      afero.Fs
	destination afero.Fs
	reporter    shared.Reporter
}

// NewCopier constructs a Copier; unset filesystems default to the OS filesystem.
func NewCopier(dependencies Dependencies) *Copier {
	source := dependencies.Source
	if source == nil {
		source = afero.NewOsFs()
	}
	destination := dependencies.Destination
	if destination == nil {
		destination = afero.NewOsFs()
	}
	return &Copier{source: source, destination: destination, reporter: shared.ReporterOrNop(dependencies.Reporter)}
}

// CopyTemplate recreates the template tree under the target directory, skipping paths the Include
// predicate rejects together with everything beneath an excluded directory. Copied files keep their
// permission bits and stay writable by the owner.
func (copier *Copier) CopyTemplate(options Options) (Result, error) {
	result := Result{}
	if makeError := copier.destination.MkdirAll(options.TargetDirectory, directoryPermissionsConstant); makeError != nil {
		return result, scaffolderrors.Wrap(scaffolderrors.OperationTemplateCopy, options.TargetDirectory, scaffolderrors.ErrCopyFailed, makeError)
	}

	walker := walk.NewWalker(walk.Dependencies{FileSystem: copier.source, Reporter: copier.reporter})
	excludedDirectories := make([]string, 0)

	for _, sourcePath := range walker.ListAllPaths(options.TemplateDirectory) {
		relativePath, relativeError := filepath.Rel(options.TemplateDirectory, sourcePath)
		if relativeError != nil {
			return result, scaffolderrors.Wrap(scaffolderrors.OperationTemplateCopy, sourcePath, scaffolderrors.ErrCopyFailed, relativeError)
		}
		relativePath = filepath.ToSlash(relativePath)
		if underExcludedDirectory(relativePath, excludedDirectories) {
			continue
		}

		sourceInfo, statError := copier.source.Stat(sourcePath)
		if statError != nil {
			return result, scaffolderrors.Wrap(scaffolderrors.OperationTemplateCopy, sourcePath, scaffolderrors.ErrCopyFailed, statError)
		}

		if options.Include != nil && !options.Include(relativePath) {
			result.Excluded++
			if sourceInfo.IsDir() {
				excludedDirectories = append(excludedDirectories, relativePath)
			}
			copier.reporter.Report(shared.Event{
				Level:   shared.EventLevelDebug,
				Code:    shared.EventCodeFileSkipped,
				Path:    sourcePath,
				Message: pathExcludedMessageConstant,
			})
			continue
		}

		targetPath := filepath.Join(options.TargetDirectory, filepath.FromSlash(relativePath))
		if sourceInfo.IsDir() {
			if makeError := copier.destination.MkdirAll(targetPath, directoryPermissionsConstant); makeError != nil {
				return result, scaffolderrors.Wrap(scaffolderrors.OperationTemplateCopy, targetPath, scaffolderrors.ErrCopyFailed, makeError)
			}
			result.Directories++
			continue
		}

		permissions := filePermissions(sourceInfo.Mode())
		if options.IsExecutable != nil && options.IsExecutable(relativePath) {
			permissions = executablePermissionsConstant
		}
		if copyError := copier.copyFile(sourcePath, targetPath, permissions); copyError != nil {
			return result, scaffolderrors.Wrap(scaffolderrors.OperationTemplateCopy, sourcePath, scaffolderrors.ErrCopyFailed, copyError)
		}
		result.Files++
		copier.reporter.Report(shared.Event{
			Level:   shared.EventLevelDebug,
			Code:    shared.EventCodeFileCopied,
			Path:    targetPath,
			Message: fileCopiedMessageConstant,
		})
	}

	return result, nil
}

func (copier *Copier) copyFile(sourcePath string, targetPath string, permissions os.FileMode) error {
	if makeError := copier.destination.MkdirAll(filepath.Dir(targetPath), directoryPermissionsConstant); makeError != nil {
		return makeError
	}

	sourceFile, openError := copier.source.Open(sourcePath)
	if openError != nil {
		return openError
	}
	defer sourceFile.Close()

	targetFile, createError := copier.destination.OpenFile(targetPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, permissions)
	if createError != nil {
		return createError
	}
	if _, copyError := io.Copy(targetFile, sourceFile); copyError != nil {
		targetFile.Close()
		return copyError
	}
	if closeError := targetFile.Close(); closeError != nil {
		return closeError
	}
	return copier.destination.Chmod(targetPath, permissions)
}

func filePermissions(mode os.FileMode) os.FileMode {
	permissions := mode.Perm()
	if permissions == 0 {
		return filePermissionsConstant
	}
	return permissions | ownerWritablePermission
}

func underExcludedDirectory(relativePath string, excludedDirectories []string) bool {
	for _, excludedDirectory := range excludedDirectories {
		if strings.HasPrefix(relativePath, excludedDirectory+"/") {
			return true
		}
	}
	return false
}

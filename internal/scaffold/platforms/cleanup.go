package platforms

import (
	"path/filepath"

	"github.com/spf13/afero"

	scaffolderrors "github.com/tyemirov/create-lynx-app/internal/scaffold/errors"
	"github.com/tyemirov/create-lynx-app/internal/scaffold/shared"
)

const (
	platformRemovedMessageConstant = "unselected platform directory removed"
	platformDetailKeyConstant      = "platform"
)

// CleanerDependencies supplies collaborators for the Cleaner.
type CleanerDependencies struct {
	FileSystem afero.Fs
	Reporter   shared.Reporter
}

// Cleaner deletes the root directories of platforms that were not selected.
type Cleaner struct {
	fileSystem afero.Fs
	reporter   shared.Reporter
}

// NewCleaner constructs a Cleaner, defaulting to the OS filesystem.
func NewCleaner(dependencies CleanerDependencies) *Cleaner {
	fileSystem := dependencies.FileSystem
	if fileSystem == nil {
		fileSystem = afero.NewOsFs()
	}
	return &Cleaner{fileSystem: fileSystem, reporter: shared.ReporterOrNop(dependencies.Reporter)}
}

// RemoveUnselected removes each unselected platform's root under projectRoot and returns the tags removed.
func (cleaner *Cleaner) RemoveUnselected(projectRoot string, config shared.ProjectConfig) ([]shared.PlatformTag, error) {
	removed := make([]shared.PlatformTag, 0)
	for _, definition := range definitions {
		if config.Selects(definition.Tag) {
			continue
		}
		rootPath := filepath.Join(projectRoot, definition.Root)
		if _, statError := cleaner.fileSystem.Stat(rootPath); statError != nil {
			continue
		}
		if removeError := cleaner.fileSystem.RemoveAll(rootPath); removeError != nil {
			return removed, scaffolderrors.Wrap(scaffolderrors.OperationPlatformCleanup, rootPath, scaffolderrors.ErrCleanupFailed, removeError)
		}
		removed = append(removed, definition.Tag)
		cleaner.reporter.Report(shared.Event{
			Level:   shared.EventLevelDebug,
			Code:    shared.EventCodePlatformRemoved,
			Path:    rootPath,
			Message: platformRemovedMessageConstant,
			Details: map[string]string{platformDetailKeyConstant: string(definition.Tag)},
		})
	}
	return removed, nil
}

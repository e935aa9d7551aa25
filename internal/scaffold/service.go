// Package scaffold materializes a Lynx project from a template.
package scaffold

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/tyemirov/create-lynx-app/internal/scaffold/console"
	"github.com/tyemirov/create-lynx-app/internal/scaffold/copier"
	scaffolderrors "github.com/tyemirov/create-lynx-app/internal/scaffold/errors"
	"github.com/tyemirov/create-lynx-app/internal/scaffold/manifest"
	"github.com/tyemirov/create-lynx-app/internal/scaffold/naming"
	"github.com/tyemirov/create-lynx-app/internal/scaffold/packages"
	"github.com/tyemirov/create-lynx-app/internal/scaffold/platforms"
	"github.com/tyemirov/create-lynx-app/internal/scaffold/rename"
	"github.com/tyemirov/create-lynx-app/internal/scaffold/shared"
	"github.com/tyemirov/create-lynx-app/internal/scaffold/substitute"
	"github.com/tyemirov/create-lynx-app/internal/scaffold/tailwind"
	"github.com/tyemirov/create-lynx-app/internal/scaffold/walk"
)

const (
	// CopyingMessageConstant is reported when the template copy starts.
	CopyingMessageConstant = "Copying template files..."
	// ConfiguringMessageConstant is reported when placeholders are being replaced.
	ConfiguringMessageConstant = "Configuring project files..."
	// TailwindMessageConstant is reported when Tailwind is being configured.
	TailwindMessageConstant = "Setting up Tailwind CSS..."

	destinationExistsTemplate = "Directory %s already exists"
	templateMissingTemplate   = "Template not found at %s. Please ensure the template exists."

	stageCompletedMessageConstant = "stage completed"
	structureFileMessageConstant  = "project structure file checked"
	packageListMessageConstant    = "java packages present"
	stageDetailKeyConstant        = "stage"
	presentDetailKeyConstant      = "present"
	sizeDetailKeyConstant         = "bytes"
	packagesDetailKeyConstant     = "packages"
	packageListSeparatorConstant  = ","
)

// Dependencies supplies collaborators for the Service. Unset filesystems default to the OS filesystem.
type Dependencies struct {
	TemplateFileSystem afero.Fs
	FileSystem         afero.Fs
	Logger             *zap.Logger
	Reporter           shared.Reporter
	Progress           console.Progress
}

// Settings configures a Service.
type Settings struct {
	TemplateDirectory string
	Concurrency       int
	Tailwind          bool
}

// Result describes a scaffolding run.
type Result struct {
	TargetPath           string
	Stage                Stage
	Forms                naming.IdentifierForms
	CopiedFiles          int
	ExcludedPaths        int
	RewrittenFiles       int
	SkippedFiles         int
	RestructuredPackages int
	RenamedPaths         int
	RenameConflicts      int
	RemovedPlatforms     []shared.PlatformTag
	TailwindConfigured   bool
}

// Service runs the scaffolding pipeline.
type Service struct {
	templateFileSystem afero.Fs
	fileSystem         afero.Fs
	reporter           shared.Reporter
	progress           console.Progress
	settings           Settings
}

// NewService constructs a Service.
func NewService(dependencies Dependencies, settings Settings) *Service {
	fileSystem := dependencies.FileSystem
	if fileSystem == nil {
		fileSystem = afero.NewOsFs()
	}
	templateFileSystem := dependencies.TemplateFileSystem
	if templateFileSystem == nil {
		templateFileSystem = fileSystem
	}
	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	progress := dependencies.Progress
	if progress == nil {
		progress = console.NopProgress{}
	}
	return &Service{
		templateFileSystem: templateFileSystem,
		fileSystem:         fileSystem,
		reporter:           shared.NewFanoutReporter(shared.NewLoggerReporter(logger), dependencies.Reporter),
		progress:           progress,
		settings:           settings,
	}
}

// Scaffold creates the project described by config. Preconditions are checked before anything is
// written; once copying starts a failure leaves the partially created project in place.
func (service *Service) Scaffold(executionContext context.Context, config shared.ProjectConfig) (Result, error) {
	result := Result{TargetPath: config.TargetPath(), Stage: StageIdle, Forms: naming.Derive(config.Name())}
	service.advance(&result, StageInputGathered)

	if preconditionError := service.checkPreconditions(executionContext, result.TargetPath); preconditionError != nil {
		return service.fail(&result, preconditionError)
	}

	templateManifest, manifestError := manifest.Load(service.templateFileSystem, service.settings.TemplateDirectory)
	if manifestError != nil {
		return service.fail(&result, manifestError)
	}

	service.progress.Update(CopyingMessageConstant)
	copyResult, copyError := copier.NewCopier(copier.Dependencies{
		Source:      service.templateFileSystem,
		Destination: service.fileSystem,
		Reporter:    service.reporter,
	}).CopyTemplate(copier.Options{
		TemplateDirectory: service.settings.TemplateDirectory,
		TargetDirectory:   result.TargetPath,
		Include: func(relativePath string) bool {
			return !templateManifest.IsExcluded(relativePath) && platforms.ShouldInclude(relativePath, config)
		},
		IsExecutable: templateManifest.IsExecutable,
	})
	result.CopiedFiles = copyResult.Files
	result.ExcludedPaths = copyResult.Excluded
	if copyError != nil {
		return service.fail(&result, copyError)
	}
	service.advance(&result, StageCopied)

	service.progress.Update(ConfiguringMessageConstant)
	walker := walk.NewWalker(walk.Dependencies{FileSystem: service.fileSystem, Reporter: service.reporter})
	substituteResult, substituteError := substitute.NewEngine(substitute.Dependencies{
		FileSystem:  service.fileSystem,
		Walker:      walker,
		Reporter:    service.reporter,
		Concurrency: service.settings.Concurrency,
	}).SubstituteContent(executionContext, result.TargetPath, substitute.DefaultRules(result.Forms, templateManifest))
	result.RewrittenFiles = substituteResult.Rewritten
	result.SkippedFiles = substituteResult.Skipped
	if substituteError != nil {
		return service.fail(&result, substituteError)
	}
	service.advance(&result, StageContentSubstituted)

	restructureResult, restructureError := packages.NewRestructurer(packages.Dependencies{
		FileSystem: service.fileSystem,
		Reporter:   service.reporter,
	}).RestructurePackageDirectories(packages.Options{
		ProjectRoot:          result.TargetPath,
		SourceRoots:          templateManifest.PackageSourceRoots,
		Parent:               templateManifest.PackageParent,
		PlaceholderLocations: templateManifest.PackagePlaceholderLocations,
		PackageIdentifier:    result.Forms.Package,
	})
	result.RestructuredPackages = restructureResult.Moved + restructureResult.Merged
	if restructureError != nil {
		return service.fail(&result, restructureError)
	}

	renameResult, renameError := rename.NewEngine(rename.Dependencies{
		FileSystem: service.fileSystem,
		Walker:     walker,
		Reporter:   service.reporter,
	}).RenamePaths(result.TargetPath, rename.Options{
		Token:       templateManifest.Placeholder,
		Replacement: result.Forms.Pascal,
		IsProtected: templateManifest.IsProtected,
	})
	result.RenamedPaths = renameResult.Renamed
	result.RenameConflicts = renameResult.Conflicts
	if renameError != nil {
		return service.fail(&result, renameError)
	}
	service.advance(&result, StagePathsRenamed)

	removedPlatforms, cleanupError := platforms.NewCleaner(platforms.CleanerDependencies{
		FileSystem: service.fileSystem,
		Reporter:   service.reporter,
	}).RemoveUnselected(result.TargetPath, config)
	result.RemovedPlatforms = removedPlatforms
	if cleanupError != nil {
		return service.fail(&result, cleanupError)
	}
	service.advance(&result, StagePlatformsCleaned)

	if service.settings.Tailwind {
		service.progress.Update(TailwindMessageConstant)
		if _, tailwindError := tailwind.NewConfigurator(tailwind.Dependencies{
			FileSystem: service.fileSystem,
			Reporter:   service.reporter,
		}).Setup(result.TargetPath); tailwindError != nil {
			return service.fail(&result, tailwindError)
		}
		result.TailwindConfigured = true
	}

	if config.Selects(shared.PlatformAndroid) {
		service.verifyStructure(result.TargetPath, templateManifest)
	}

	service.advance(&result, StageDone)
	return result, nil
}

func (service *Service) checkPreconditions(executionContext context.Context, targetPath string) error {
	if contextError := executionContext.Err(); contextError != nil {
		return contextError
	}
	if _, statError := service.fileSystem.Stat(targetPath); statError == nil {
		return scaffolderrors.WrapMessage(
			scaffolderrors.OperationPrecondition,
			targetPath,
			scaffolderrors.ErrDestinationExists,
			fmt.Sprintf(destinationExistsTemplate, targetPath),
		)
	}
	templateInfo, templateError := service.templateFileSystem.Stat(service.settings.TemplateDirectory)
	if templateError != nil || !templateInfo.IsDir() {
		return scaffolderrors.WrapMessage(
			scaffolderrors.OperationPrecondition,
			service.settings.TemplateDirectory,
			scaffolderrors.ErrTemplateMissing,
			fmt.Sprintf(templateMissingTemplate, service.settings.TemplateDirectory),
		)
	}
	return nil
}

func (service *Service) verifyStructure(targetPath string, templateManifest manifest.Manifest) {
	for _, relativePath := range templateManifest.VerificationFiles {
		filePath := filepath.Join(targetPath, filepath.FromSlash(relativePath))
		details := map[string]string{presentDetailKeyConstant: "false"}
		if info, statError := service.fileSystem.Stat(filePath); statError == nil {
			details[presentDetailKeyConstant] = "true"
			details[sizeDetailKeyConstant] = fmt.Sprint(info.Size())
		}
		service.reporter.Report(shared.Event{
			Level:   shared.EventLevelDebug,
			Code:    shared.EventCodeStructureVerified,
			Path:    filePath,
			Message: structureFileMessageConstant,
			Details: details,
		})
	}

	for _, sourceRoot := range templateManifest.PackageSourceRoots {
		parentPath := filepath.Join(targetPath, filepath.FromSlash(sourceRoot), filepath.FromSlash(templateManifest.PackageParent))
		entries, readError := afero.ReadDir(service.fileSystem, parentPath)
		if readError != nil {
			continue
		}
		names := make([]string, 0, len(entries))
		for _, entry := range entries {
			names = append(names, entry.Name())
		}
		service.reporter.Report(shared.Event{
			Level:   shared.EventLevelDebug,
			Code:    shared.EventCodeStructureVerified,
			Path:    parentPath,
			Message: packageListMessageConstant,
			Details: map[string]string{packagesDetailKeyConstant: strings.Join(names, packageListSeparatorConstant)},
		})
	}
}

func (service *Service) advance(result *Result, next Stage) {
	service.reporter.Report(shared.Event{
		Level:   shared.EventLevelDebug,
		Code:    shared.EventCodeStageCompleted,
		Path:    result.TargetPath,
		Message: stageCompletedMessageConstant,
		Details: map[string]string{stageDetailKeyConstant: next.String()},
	})
	result.Stage = next
}

func (service *Service) fail(result *Result, failure error) (Result, error) {
	service.reporter.Report(shared.Event{
		Level:   shared.EventLevelError,
		Code:    shared.EventCodeStageFailed,
		Path:    result.TargetPath,
		Message: failure.Error(),
		Details: map[string]string{stageDetailKeyConstant: result.Stage.String()},
	})
	result.Stage = StageFailed
	return *result, failure
}

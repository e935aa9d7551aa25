package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tyemirov/create-lynx-app/internal/scaffold"
	"github.com/tyemirov/create-lynx-app/internal/scaffold/console"
	scaffolderrors "github.com/tyemirov/create-lynx-app/internal/scaffold/errors"
	"github.com/tyemirov/create-lynx-app/internal/scaffold/packagemanager"
	"github.com/tyemirov/create-lynx-app/internal/scaffold/platforms"
	"github.com/tyemirov/create-lynx-app/internal/scaffold/prompt"
	"github.com/tyemirov/create-lynx-app/internal/scaffold/shared"
	flagutils "github.com/tyemirov/create-lynx-app/internal/utils/flags"
	"github.com/tyemirov/create-lynx-app/templates"
)

const (
	creatingProjectTemplateConstant     = "Creating project in %s"
	projectCreatedMessageConstant       = "Project created successfully!"
	projectFailedMessageConstant        = "Error creating project"
	scaffoldCompletedLogMessageConstant = "project created"
	scaffoldCancelledLogMessageConstant = "project creation cancelled"
	workingDirectoryErrorTemplate       = "unable to determine working directory: %w"
	defaultPlatformsErrorTemplate       = "invalid default platforms in configuration: %w"
	targetPathFieldConstant             = "target_path"
	platformsFieldConstant              = "platforms"
	packageManagerFieldConstant         = "package_manager"
	copiedFilesFieldConstant            = "copied_files"
	rewrittenFilesFieldConstant         = "rewritten_files"
	renamedPathsFieldConstant           = "renamed_paths"
	removedPlatformsFieldConstant       = "removed_platforms"
	platformListSeparatorConstant       = ","
)

type scaffoldOptions struct {
	assumeYes   bool
	tailwind    bool
	interactive bool
}

func (application *Application) resolveScaffoldOptions(command *cobra.Command) scaffoldOptions {
	options := scaffoldOptions{
		assumeYes:   application.configuration.Common.AssumeYes,
		tailwind:    application.configuration.Scaffold.Tailwind,
		interactive: application.terminalDetector != nil && application.terminalDetector(),
	}

	executionFlags, available := flagutils.ResolveExecutionFlags(command)
	if !available {
		return options
	}
	if executionFlags.AssumeYesSet {
		options.assumeYes = executionFlags.AssumeYes
	}
	if executionFlags.TailwindSet {
		options.tailwind = executionFlags.Tailwind
	}
	return options
}

func (application *Application) runScaffold(command *cobra.Command, arguments []string) error {
	executionContext := command.Context()
	options := application.resolveScaffoldOptions(command)

	request := prompt.Request{}
	if len(arguments) > 0 {
		request.ProjectName = strings.TrimSpace(arguments[0])
	}
	if command.Flags().Changed(flagutils.PlatformsFlagName) {
		requestedPlatforms, parseError := platforms.ParseTags(application.projectFlagValues.Platforms)
		if parseError != nil {
			return parseError
		}
		request.Platforms = requestedPlatforms
	}

	workingDirectory, workingDirectoryError := application.environment.WorkingDirectory()
	if workingDirectoryError != nil {
		return fmt.Errorf(workingDirectoryErrorTemplate, workingDirectoryError)
	}
	targetDirectory, resolveError := application.directoryResolver.Resolve(application.projectFlagValues.Directory, workingDirectory)
	if resolveError != nil {
		return resolveError
	}

	userConsole := console.New(command.OutOrStdout(), options.interactive)
	if options.interactive {
		userConsole.Intro()
	}

	gatherer, gathererError := application.selectGatherer(command, options)
	if gathererError != nil {
		return gathererError
	}

	answers, gatherError := gatherer.Gather(executionContext, request)
	if gatherError != nil {
		if scaffolderrors.IsCancellation(gatherError) || errors.Is(gatherError, context.Canceled) {
			application.logger.Info(scaffoldCancelledLogMessageConstant)
			userConsole.Cancelled()
			return nil
		}
		return gatherError
	}

	projectConfig, configError := shared.NewProjectConfig(answers.ProjectName, answers.Platforms, targetDirectory)
	if configError != nil {
		return configError
	}

	templateFileSystem, templateDirectory := application.resolveTemplateSource(command, workingDirectory)

	progress := userConsole.StartProgress(fmt.Sprintf(creatingProjectTemplateConstant, projectConfig.TargetPath()))
	service := scaffold.NewService(
		scaffold.Dependencies{
			TemplateFileSystem: templateFileSystem,
			FileSystem:         afero.NewOsFs(),
			Logger:             application.logger,
			Progress:           progress,
		},
		scaffold.Settings{
			TemplateDirectory: templateDirectory,
			Concurrency:       application.configuration.Scaffold.Concurrency,
			Tailwind:          options.tailwind,
		},
	)

	result, scaffoldError := service.Scaffold(executionContext, projectConfig)
	if scaffoldError != nil {
		progress.Fail(projectFailedMessageConstant)
		return scaffoldError
	}
	progress.Succeed(projectCreatedMessageConstant)

	packageManager := packagemanager.Detect(application.environment)
	userConsole.Outro(packagemanager.NextSteps(projectConfig.Name(), packageManager))

	configurationFilePath, _ := application.commandContextAccessor.ConfigurationFilePath(executionContext)
	logLevel, logLevelAvailable := application.commandContextAccessor.LogLevel(executionContext)
	if !logLevelAvailable {
		logLevel = application.configuration.Common.LogLevel
	}
	application.logger.Info(
		scaffoldCompletedLogMessageConstant,
		zap.String(targetPathFieldConstant, result.TargetPath),
		zap.String(configurationFileFieldConstant, configurationFilePath),
		zap.String(configurationLogLevelFieldConstant, logLevel),
		zap.String(platformsFieldConstant, joinPlatformTags(projectConfig.Platforms())),
		zap.String(packageManagerFieldConstant, string(packageManager)),
		zap.Int(copiedFilesFieldConstant, result.CopiedFiles),
		zap.Int(rewrittenFilesFieldConstant, result.RewrittenFiles),
		zap.Int(renamedPathsFieldConstant, result.RenamedPaths),
		zap.String(removedPlatformsFieldConstant, joinPlatformTags(result.RemovedPlatforms)),
	)
	return nil
}

func (application *Application) selectGatherer(command *cobra.Command, options scaffoldOptions) (prompt.Gatherer, error) {
	switch {
	case options.assumeYes:
		defaultPlatforms, defaultsError := application.configuration.Scaffold.DefaultPlatformTags()
		if defaultsError != nil {
			return nil, fmt.Errorf(defaultPlatformsErrorTemplate, defaultsError)
		}
		return prompt.DefaultsGatherer{Platforms: defaultPlatforms}, nil
	case options.interactive:
		return prompt.NewInteractiveGatherer(prompt.InteractiveDependencies{Output: command.OutOrStdout()}), nil
	default:
		return prompt.NewLineGatherer(command.InOrStdin(), command.OutOrStdout()), nil
	}
}

// resolveTemplateSource prefers the --template flag, then the configured directory, then the bundled template.
func (application *Application) resolveTemplateSource(command *cobra.Command, workingDirectory string) (afero.Fs, string) {
	templateDirectory := strings.TrimSpace(application.configuration.Scaffold.TemplateDirectory)
	if command.Flags().Changed(templateFlagNameConstant) {
		templateDirectory = strings.TrimSpace(application.templateFlagValue)
	}
	if len(templateDirectory) == 0 {
		return templates.FileSystem(), templates.DefaultTemplateDirectoryConstant
	}

	resolvedDirectory, resolveError := application.directoryResolver.Resolve(templateDirectory, workingDirectory)
	if resolveError != nil {
		resolvedDirectory = templateDirectory
	}
	return afero.NewOsFs(), resolvedDirectory
}

func joinPlatformTags(tags []shared.PlatformTag) string {
	values := make([]string, 0, len(tags))
	for _, tag := range tags {
		values = append(values, string(tag))
	}
	return strings.Join(values, platformListSeparatorConstant)
}

package cli

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/tyemirov/create-lynx-app/internal/scaffold/platforms"
	"github.com/tyemirov/create-lynx-app/internal/scaffold/shared"
	"github.com/tyemirov/create-lynx-app/internal/utils"
)

//go:embed default_config.yaml
var embeddedDefaultConfiguration []byte

// EmbeddedDefaultConfiguration returns the configuration bundled with the binary and its format.
func EmbeddedDefaultConfiguration() ([]byte, string) {
	return append([]byte(nil), embeddedDefaultConfiguration...), configurationTypeConstant
}

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common   ApplicationCommonConfiguration   `mapstructure:"common"`
	Scaffold ApplicationScaffoldConfiguration `mapstructure:"scaffold"`
}

// ApplicationCommonConfiguration stores logging and execution defaults.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	AssumeYes bool   `mapstructure:"assume_yes"`
}

// ApplicationScaffoldConfiguration stores project generation defaults.
type ApplicationScaffoldConfiguration struct {
	TemplateDirectory string   `mapstructure:"template_directory"`
	DefaultPlatforms  []string `mapstructure:"default_platforms"`
	Concurrency       int      `mapstructure:"concurrency"`
	Tailwind          bool     `mapstructure:"tailwind"`
}

// DefaultPlatformTags parses the configured default platforms.
func (configuration ApplicationScaffoldConfiguration) DefaultPlatformTags() ([]shared.PlatformTag, error) {
	return platforms.ParseTags(configuration.DefaultPlatforms)
}

func configurationDefaultValues() map[string]any {
	return map[string]any{
		commonLogLevelConfigKeyConstant:            string(utils.LogLevelError),
		commonLogFormatConfigKeyConstant:           string(utils.LogFormatConsole),
		commonAssumeYesConfigKeyConstant:           false,
		scaffoldTemplateDirectoryConfigKeyConstant: "",
		scaffoldDefaultPlatformsConfigKeyConstant:  []string{string(shared.PlatformIOS), string(shared.PlatformAndroid)},
		scaffoldConcurrencyConfigKeyConstant:       0,
		scaffoldTailwindConfigKeyConstant:          false,
	}
}

func (application *Application) resolveConfigurationSearchPaths() []string {
	overrideValue := strings.TrimSpace(os.Getenv(configurationSearchPathEnvironmentVariableConstant))
	if len(overrideValue) == 0 {
		return append([]string{defaultConfigurationSearchPathConstant}, application.resolveUserConfigurationDirectoryPaths()...)
	}

	overridePaths := filepath.SplitList(overrideValue)
	cleanedPaths := make([]string, 0, len(overridePaths))
	for _, pathCandidate := range overridePaths {
		trimmedCandidate := strings.TrimSpace(pathCandidate)
		if len(trimmedCandidate) == 0 {
			continue
		}
		cleanedPaths = append(cleanedPaths, trimmedCandidate)
	}

	if len(cleanedPaths) == 0 {
		return []string{defaultConfigurationSearchPathConstant}
	}

	return cleanedPaths
}

func (application *Application) resolveUserConfigurationDirectoryPaths() []string {
	userConfigurationDirectoryPaths := make([]string, 0, 2)

	appendConfigurationDirectory := func(candidateDirectoryPath string) {
		if len(strings.TrimSpace(candidateDirectoryPath)) == 0 {
			return
		}
		for _, existingDirectoryPath := range userConfigurationDirectoryPaths {
			if existingDirectoryPath == candidateDirectoryPath {
				return
			}
		}
		userConfigurationDirectoryPaths = append(userConfigurationDirectoryPaths, candidateDirectoryPath)
	}

	if len(strings.TrimSpace(xdg.ConfigHome)) > 0 {
		appendConfigurationDirectory(filepath.Join(xdg.ConfigHome, applicationNameConstant))
	}

	userHomeDirectoryPath, userHomeDirectoryError := os.UserHomeDir()
	if userHomeDirectoryError == nil && len(strings.TrimSpace(userHomeDirectoryPath)) > 0 {
		appendConfigurationDirectory(filepath.Join(userHomeDirectoryPath, userConfigurationDirectoryNameConstant))
	}

	return userConfigurationDirectoryPaths
}

package utils

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	environmentKeySeparatorConstant      = "."
	environmentVariableSeparatorConstant = "_"
	sliceSeparatorConstant               = ","
	embeddedConfigurationErrorTemplate   = "unable to merge embedded configuration: %w"
	configurationFileErrorTemplate       = "unable to read configuration file %s: %w"
	configurationSearchErrorTemplate     = "unable to read configuration: %w"
	configurationDecodeErrorTemplate     = "unable to decode configuration: %w"
)

// LoadedConfiguration describes where configuration values were read from.
type LoadedConfiguration struct {
	ConfigFileUsed string
}

// ConfigurationLoader layers defaults, embedded configuration, configuration files and environment
// variables into a single decoded structure.
type ConfigurationLoader struct {
	configurationName     string
	configurationType     string
	environmentPrefix     string
	searchPaths           []string
	embeddedConfiguration []byte
	embeddedType          string
}

// NewConfigurationLoader constructs a ConfigurationLoader searching the provided directories in order.
func NewConfigurationLoader(configurationName string, configurationType string, environmentPrefix string, searchPaths []string) *ConfigurationLoader {
	return &ConfigurationLoader{
		configurationName: configurationName,
		configurationType: configurationType,
		environmentPrefix: environmentPrefix,
		searchPaths:       append([]string(nil), searchPaths...),
	}
}

// SetEmbeddedConfiguration registers configuration content merged above defaults and below files.
func (loader *ConfigurationLoader) SetEmbeddedConfiguration(content []byte, configurationType string) {
	loader.embeddedConfiguration = append([]byte(nil), content...)
	loader.embeddedType = configurationType
}

// LoadConfiguration decodes the layered configuration into target. An explicit configuration file
// must exist; a configuration file missing from every search path is not an error.
func (loader *ConfigurationLoader) LoadConfiguration(configurationFilePath string, defaultValues map[string]any, target any) (LoadedConfiguration, error) {
	configurationReader := viper.New()
	for key, value := range defaultValues {
		configurationReader.SetDefault(key, value)
	}

	if len(loader.embeddedConfiguration) > 0 {
		embeddedType := loader.embeddedType
		if len(embeddedType) == 0 {
			embeddedType = loader.configurationType
		}
		configurationReader.SetConfigType(embeddedType)
		if mergeError := configurationReader.MergeConfig(bytes.NewReader(loader.embeddedConfiguration)); mergeError != nil {
			return LoadedConfiguration{}, fmt.Errorf(embeddedConfigurationErrorTemplate, mergeError)
		}
	}

	trimmedFilePath := strings.TrimSpace(configurationFilePath)
	if len(trimmedFilePath) > 0 {
		configurationReader.SetConfigFile(trimmedFilePath)
		configurationReader.SetConfigType(strings.TrimPrefix(filepath.Ext(trimmedFilePath), "."))
		if mergeError := configurationReader.MergeInConfig(); mergeError != nil {
			return LoadedConfiguration{}, fmt.Errorf(configurationFileErrorTemplate, trimmedFilePath, mergeError)
		}
	} else if len(loader.searchPaths) > 0 {
		configurationReader.SetConfigName(loader.configurationName)
		configurationReader.SetConfigType(loader.configurationType)
		for _, searchPath := range loader.searchPaths {
			configurationReader.AddConfigPath(searchPath)
		}
		if mergeError := configurationReader.MergeInConfig(); mergeError != nil {
			var notFoundError viper.ConfigFileNotFoundError
			if !errors.As(mergeError, &notFoundError) {
				return LoadedConfiguration{}, fmt.Errorf(configurationSearchErrorTemplate, mergeError)
			}
		}
	}

	if len(loader.environmentPrefix) > 0 {
		configurationReader.SetEnvPrefix(loader.environmentPrefix)
	}
	configurationReader.SetEnvKeyReplacer(strings.NewReplacer(environmentKeySeparatorConstant, environmentVariableSeparatorConstant))
	configurationReader.AutomaticEnv()

	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(sliceSeparatorConstant),
	))
	if decodeError := configurationReader.Unmarshal(target, decodeHook); decodeError != nil {
		return LoadedConfiguration{}, fmt.Errorf(configurationDecodeErrorTemplate, decodeError)
	}

	return LoadedConfiguration{ConfigFileUsed: configurationReader.ConfigFileUsed()}, nil
}

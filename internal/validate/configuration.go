package validate

import "strings"

const (
	frameNameConfigurationKeyConstant = "frame"
	fileTypeConfigurationKeyConstant  = "filetype"
	configurationKeySeparatorConstant = "."
	defaultFileTypeConstant           = "auto"
)

// CommandConfiguration stores persisted settings for the validate command.
type CommandConfiguration struct {
	FrameName string `mapstructure:"frame"`
	FileType  string `mapstructure:"filetype"`
}

// DefaultCommandConfiguration returns the built-in validate settings.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{FileType: defaultFileTypeConstant}
}

// Sanitize trims configured values and fills defaults for empty ones.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := CommandConfiguration{
		FrameName: strings.TrimSpace(configuration.FrameName),
		FileType:  strings.TrimSpace(configuration.FileType),
	}
	if len(sanitized.FileType) == 0 {
		sanitized.FileType = defaultFileTypeConstant
	}
	return sanitized
}

// DefaultConfigurationValues exposes viper defaults under the provided key prefix.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		configurationKeyPrefix + configurationKeySeparatorConstant + frameNameConfigurationKeyConstant: defaults.FrameName,
		configurationKeyPrefix + configurationKeySeparatorConstant + fileTypeConfigurationKeyConstant:  defaults.FileType,
	}
}

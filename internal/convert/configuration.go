package convert

import "strings"

const (
	targetFormatConfigurationKeyConstant = "to"
	configurationKeySeparatorConstant    = "."
	defaultTargetFormatConstant          = "yaml"
)

// CommandConfiguration stores persisted settings for the convert command.
type CommandConfiguration struct {
	TargetFormat string `mapstructure:"to"`
}

// DefaultCommandConfiguration returns the built-in convert settings.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{TargetFormat: defaultTargetFormatConstant}
}

// Sanitize trims configured values and fills defaults for empty ones.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := CommandConfiguration{
		TargetFormat: strings.ToLower(strings.TrimSpace(configuration.TargetFormat)),
	}
	if len(sanitized.TargetFormat) == 0 {
		sanitized.TargetFormat = defaultTargetFormatConstant
	}
	return sanitized
}

// DefaultConfigurationValues exposes viper defaults under the provided key prefix.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		configurationKeyPrefix + configurationKeySeparatorConstant + targetFormatConfigurationKeyConstant: defaults.TargetFormat,
	}
}

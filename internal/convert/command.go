package convert

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sunkit/sunframes/internal/fileio"
	"github.com/sunkit/sunframes/internal/schema"
	flagutils "github.com/sunkit/sunframes/internal/utils/flags"
)

const (
	commandUseNameConstant           = "convert"
	commandUsageTemplateConstant     = commandUseNameConstant + " <input> <output>"
	commandExampleConstant           = "sunframes convert frame.asdf frame.json --to json"
	commandShortDescriptionConstant  = "Re-serialize a frame document in another encoding"
	commandLongDescriptionConstant   = "convert reads a frame document, validates it against its schema, and writes it in the requested encoding. Invalid documents are rejected before anything is written."
	targetFlagNameConstant           = "to"
	targetFlagDescriptionConstant    = "Target encoding for the output document."
	frameFlagNameConstant            = "frame"
	frameFlagUsageConstant           = "Override the frame schema (short name or asdf:// URI)."
	argumentCountMessageConstant     = "convert requires an input path and an output path"
	conversionResultTemplateConstant = "CONVERTED: %s (%s) -> %s (%s)"
	documentConvertedMessageConstant = "document converted"
	logFieldInputPathConstant        = "input_path"
	logFieldOutputPathConstant       = "output_path"
	logFieldTargetTypeConstant       = "target_type"
)

// Target encodings accepted by the --to flag.
var targetFormatChoices = []string{
	string(fileio.FileTypeYAML),
	string(fileio.FileTypeJSON),
	string(fileio.FileTypeASDF),
}

// ErrArgumentCount indicates the command did not receive exactly two paths.
var ErrArgumentCount = errors.New(argumentCountMessageConstant)

// LoggerProvider yields a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the convert command.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	Registry              *schema.Registry
	ConfigurationProvider func() CommandConfiguration
}

// Build constructs the convert command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	defaults := builder.resolveConfiguration()

	command := &cobra.Command{
		Use:     commandUsageTemplateConstant,
		Short:   commandShortDescriptionConstant,
		Long:    commandLongDescriptionConstant,
		Example: commandExampleConstant,
		Args:    cobra.ExactArgs(2),
		RunE:    builder.run,
	}

	targetFlagUsage := flagutils.FormatChoiceUsage(defaults.TargetFormat, targetFormatChoices, targetFlagDescriptionConstant)
	command.Flags().String(targetFlagNameConstant, defaults.TargetFormat, targetFlagUsage)
	command.Flags().String(frameFlagNameConstant, "", frameFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) != 2 {
		return ErrArgumentCount
	}

	targetFormat, targetFlagError := command.Flags().GetString(targetFlagNameConstant)
	if targetFlagError != nil {
		return targetFlagError
	}
	frameName, frameFlagError := command.Flags().GetString(frameFlagNameConstant)
	if frameFlagError != nil {
		return frameFlagError
	}

	service, serviceError := NewService(ServiceDependencies{Registry: builder.resolveRegistry()})
	if serviceError != nil {
		return serviceError
	}

	result, conversionError := service.Convert(command.Context(), Options{
		InputPath:    arguments[0],
		OutputPath:   arguments[1],
		TargetFormat: fileio.FileType(strings.ToLower(strings.TrimSpace(targetFormat))),
		FrameName:    strings.TrimSpace(frameName),
	})
	if conversionError != nil {
		return conversionError
	}

	builder.resolveLogger().Debug(
		documentConvertedMessageConstant,
		zap.String(logFieldInputPathConstant, result.InputPath),
		zap.String(logFieldOutputPathConstant, result.OutputPath),
		zap.String(logFieldTargetTypeConstant, string(result.TargetType)),
	)

	fmt.Fprintln(command.OutOrStdout(), fmt.Sprintf(conversionResultTemplateConstant, result.InputPath, result.SourceType, result.OutputPath, result.TargetType))
	return nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveRegistry() *schema.Registry {
	if builder.Registry == nil {
		return schema.NewRegistry()
	}
	return builder.Registry
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

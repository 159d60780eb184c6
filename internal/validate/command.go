package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sunkit/sunframes/internal/fileio"
	"github.com/sunkit/sunframes/internal/schema"
)

const (
	commandUseNameConstant           = "validate"
	commandUsageTemplateConstant     = commandUseNameConstant + " <file>..."
	commandExampleConstant           = "sunframes validate frame.asdf observer.yaml"
	commandShortDescriptionConstant  = "Validate serialized frame documents against their schemas"
	commandLongDescriptionConstant   = "validate reads each document, resolves the frame schema from the --frame flag, the document's own schema tag, or the Helioprojective Radial default, and reports every violation with its document path."
	frameFlagNameConstant            = "frame"
	frameFlagUsageConstant           = "Override the frame schema (short name or asdf:// URI)."
	fileTypeFlagNameConstant         = "filetype"
	fileTypeFlagUsageConstant        = "Bypass detection with an explicit file type (asdf, yaml, or json)."
	missingArgumentsMessageConstant  = "at least one document path is required"
	invalidDocumentsMessageConstant  = "one or more documents failed validation"
	validResultTemplateConstant      = "VALID: %s (%s)"
	invalidResultTemplateConstant    = "INVALID: %s (%s)"
	violationLineTemplateConstant    = "  %s [%s]: %s"
	documentValidatedMessageConstant = "document validated"
	logFieldDocumentPathConstant     = "document_path"
	logFieldSchemaURIConstant        = "schema_uri"
	logFieldViolationCountConstant   = "violation_count"
)

// ErrMissingArguments indicates no document paths were supplied.
var ErrMissingArguments = errors.New(missingArgumentsMessageConstant)

// ErrDocumentsInvalid indicates at least one document failed validation.
var ErrDocumentsInvalid = errors.New(invalidDocumentsMessageConstant)

// LoggerProvider yields a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the validate command.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	Registry              *schema.Registry
	ConfigurationProvider func() CommandConfiguration
}

// Build constructs the validate command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     commandUsageTemplateConstant,
		Short:   commandShortDescriptionConstant,
		Long:    commandLongDescriptionConstant,
		Example: commandExampleConstant,
		Args:    cobra.ArbitraryArgs,
		RunE:    builder.run,
	}

	command.Flags().String(frameFlagNameConstant, "", frameFlagUsageConstant)
	command.Flags().String(fileTypeFlagNameConstant, "", fileTypeFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) == 0 {
		if command != nil {
			_ = command.Help()
		}
		return ErrMissingArguments
	}

	configuration := builder.resolveConfiguration()

	frameName := configuration.FrameName
	if flagValue, flagError := command.Flags().GetString(frameFlagNameConstant); flagError == nil && len(strings.TrimSpace(flagValue)) > 0 {
		frameName = strings.TrimSpace(flagValue)
	}

	fileType := configuration.FileType
	if flagValue, flagError := command.Flags().GetString(fileTypeFlagNameConstant); flagError == nil && len(strings.TrimSpace(flagValue)) > 0 {
		fileType = strings.TrimSpace(flagValue)
	}

	service, serviceError := NewService(ServiceDependencies{Registry: builder.resolveRegistry()})
	if serviceError != nil {
		return serviceError
	}

	logger := builder.resolveLogger()
	anyInvalid := false

	for _, documentPath := range arguments {
		result, validationError := service.ValidateFile(command.Context(), Options{
			FilePath:  documentPath,
			FrameName: frameName,
			FileType:  fileio.FileType(fileType),
		})
		if validationError != nil {
			return validationError
		}

		logger.Debug(
			documentValidatedMessageConstant,
			zap.String(logFieldDocumentPathConstant, result.FilePath),
			zap.String(logFieldSchemaURIConstant, result.Report.SchemaURI),
			zap.Int(logFieldViolationCountConstant, len(result.Report.Violations)),
		)

		if result.Report.Valid() {
			fmt.Fprintln(command.OutOrStdout(), fmt.Sprintf(validResultTemplateConstant, result.FilePath, result.Report.SchemaURI))
			continue
		}

		anyInvalid = true
		fmt.Fprintln(command.OutOrStdout(), fmt.Sprintf(invalidResultTemplateConstant, result.FilePath, result.Report.SchemaURI))
		for _, violation := range result.Report.Violations {
			fmt.Fprintln(command.OutOrStdout(), fmt.Sprintf(violationLineTemplateConstant, violation.Path, violation.Code, violation.Message))
		}
	}

	if anyInvalid {
		return ErrDocumentsInvalid
	}
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

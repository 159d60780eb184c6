package convert

import (
	"context"
	"errors"
	"fmt"

	"github.com/sunkit/sunframes/internal/fileio"
	"github.com/sunkit/sunframes/internal/frames"
	"github.com/sunkit/sunframes/internal/schema"
)

const (
	registryMissingMessageConstant   = "schema registry not configured"
	inputPathRequiredMessageConstant = "input document path must be provided"
	outputPathRequiredMessageConstant = "output document path must be provided"
	invalidSourceTemplateConstant    = "document %s fails schema validation: %d violation(s)"
)

// ErrRegistryNotConfigured indicates the schema registry dependency was missing.
var ErrRegistryNotConfigured = errors.New(registryMissingMessageConstant)

// ErrInputPathRequired indicates the input path option was empty.
var ErrInputPathRequired = errors.New(inputPathRequiredMessageConstant)

// ErrOutputPathRequired indicates the output path option was empty.
var ErrOutputPathRequired = errors.New(outputPathRequiredMessageConstant)

// InvalidSourceError indicates the source document failed schema validation.
type InvalidSourceError struct {
	FilePath string
	Report   schema.Report
}

// Error describes the failed validation.
func (invalidError InvalidSourceError) Error() string {
	return fmt.Sprintf(invalidSourceTemplateConstant, invalidError.FilePath, len(invalidError.Report.Violations))
}

// ServiceDependencies enumerates collaborators required by the service.
type ServiceDependencies struct {
	Registry *schema.Registry
}

// Service converts frame documents between encodings.
type Service struct {
	registry  *schema.Registry
	validator *schema.Validator
}

// NewService constructs a conversion service from its dependencies.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.Registry == nil {
		return nil, ErrRegistryNotConfigured
	}
	return &Service{
		registry:  dependencies.Registry,
		validator: schema.NewValidator(dependencies.Registry),
	}, nil
}

// Options configure a document conversion.
type Options struct {
	InputPath    string
	OutputPath   string
	TargetFormat fileio.FileType
	FrameName    string
}

// Result captures the outcome of a conversion.
type Result struct {
	InputPath  string
	OutputPath string
	SourceType fileio.FileType
	TargetType fileio.FileType
}

// Convert reads a document, validates it against its schema, and writes it in
// the target encoding. Invalid documents are never written.
func (service *Service) Convert(executionContext context.Context, options Options) (Result, error) {
	if contextError := executionContext.Err(); contextError != nil {
		return Result{}, contextError
	}
	if len(options.InputPath) == 0 {
		return Result{}, ErrInputPathRequired
	}
	if len(options.OutputPath) == 0 {
		return Result{}, ErrOutputPathRequired
	}

	document, sourceType, readError := fileio.ReadDocument(options.InputPath, fileio.FileTypeAuto)
	if readError != nil {
		return Result{}, readError
	}

	frameSchema, resolutionError := service.resolveSchema(options.FrameName, document.Tag)
	if resolutionError != nil {
		return Result{}, resolutionError
	}

	report := service.validator.Validate(document.Body, frameSchema)
	if !report.Valid() {
		return Result{}, InvalidSourceError{FilePath: options.InputPath, Report: report}
	}

	if len(document.Tag) == 0 {
		document.Tag = frameSchema.URI.String()
	}

	targetType := options.TargetFormat
	if writeError := fileio.WriteDocument(options.OutputPath, document, targetType); writeError != nil {
		return Result{}, writeError
	}
	if len(targetType) == 0 || targetType == fileio.FileTypeAuto {
		resolvedType, extensionError := fileio.FileTypeForExtension(options.OutputPath)
		if extensionError == nil {
			targetType = resolvedType
		}
	}

	return Result{
		InputPath:  options.InputPath,
		OutputPath: options.OutputPath,
		SourceType: sourceType,
		TargetType: targetType,
	}, nil
}

func (service *Service) resolveSchema(frameName string, documentTag string) (schema.FrameSchema, error) {
	if len(frameName) > 0 {
		return service.registry.Lookup(frameName)
	}
	if len(documentTag) > 0 {
		return service.registry.Lookup(documentTag)
	}
	return service.registry.Lookup(frames.FrameNameHelioprojectiveRadial)
}

package validate

import (
	"context"
	"errors"

	"github.com/sunkit/sunframes/internal/fileio"
	"github.com/sunkit/sunframes/internal/frames"
	"github.com/sunkit/sunframes/internal/schema"
)

const (
	registryMissingMessageConstant = "schema registry not configured"
	filePathRequiredMessageConstant = "document path must be provided"
)

// ErrRegistryNotConfigured indicates the schema registry dependency was missing.
var ErrRegistryNotConfigured = errors.New(registryMissingMessageConstant)

// ErrFilePathRequired indicates the document path option was empty.
var ErrFilePathRequired = errors.New(filePathRequiredMessageConstant)

// ServiceDependencies enumerates collaborators required by the service.
type ServiceDependencies struct {
	Registry *schema.Registry
}

// Service validates serialized frame documents against registered schemas.
type Service struct {
	registry  *schema.Registry
	validator *schema.Validator
}

// NewService constructs a validation service from its dependencies.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.Registry == nil {
		return nil, ErrRegistryNotConfigured
	}
	return &Service{
		registry:  dependencies.Registry,
		validator: schema.NewValidator(dependencies.Registry),
	}, nil
}

// Options configure a document validation run.
type Options struct {
	FilePath  string
	FrameName string
	FileType  fileio.FileType
}

// Result captures the outcome of validating one document.
type Result struct {
	FilePath string
	FileType fileio.FileType
	Report   schema.Report
}

// ValidateFile reads one document and validates it against the resolved schema.
//
// The schema resolves from the explicit frame name when given, then from the
// document's own schema tag, and finally defaults to the Helioprojective
// Radial contract.
func (service *Service) ValidateFile(executionContext context.Context, options Options) (Result, error) {
	if contextError := executionContext.Err(); contextError != nil {
		return Result{}, contextError
	}
	if len(options.FilePath) == 0 {
		return Result{}, ErrFilePathRequired
	}

	document, fileType, readError := fileio.ReadDocument(options.FilePath, options.FileType)
	if readError != nil {
		return Result{}, readError
	}

	frameSchema, resolutionError := service.resolveSchema(options.FrameName, document.Tag)
	if resolutionError != nil {
		return Result{}, resolutionError
	}

	report := service.validator.Validate(document.Body, frameSchema)
	return Result{FilePath: options.FilePath, FileType: fileType, Report: report}, nil
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

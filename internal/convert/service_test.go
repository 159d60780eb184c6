package convert_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/sunkit/sunframes/internal/convert"
	"github.com/sunkit/sunframes/internal/fileio"
	"github.com/sunkit/sunframes/internal/schema"
)

const (
	testSourceDocumentConstant  = "rsun: 695700.0 km\nobserver: earth\nobstime: 2024-01-01T00:00:00Z\n"
	testInvalidDocumentConstant = "rsun: 695700.0 km\nrotation_model: howard\n"
)

func newTestService(t *testing.T) *convert.Service {
	t.Helper()

	service, serviceError := convert.NewService(convert.ServiceDependencies{Registry: schema.NewRegistry()})
	require.NoError(t, serviceError)
	return service
}

func writeSourceDocument(t *testing.T, directory string, fileName string, content string) string {
	t.Helper()

	documentPath := filepath.Join(directory, fileName)
	require.NoError(t, os.WriteFile(documentPath, []byte(content), 0o644))
	return documentPath
}

func TestConvertYAMLToJSON(t *testing.T) {
	t.Parallel()

	workingDirectory := t.TempDir()
	service := newTestService(t)
	inputPath := writeSourceDocument(t, workingDirectory, "frame.yaml", testSourceDocumentConstant)
	outputPath := filepath.Join(workingDirectory, "frame.json")

	result, conversionError := service.Convert(context.Background(), convert.Options{
		InputPath:    inputPath,
		OutputPath:   outputPath,
		TargetFormat: fileio.FileTypeJSON,
	})
	require.NoError(t, conversionError)
	require.Equal(t, fileio.FileTypeYAML, result.SourceType)
	require.Equal(t, fileio.FileTypeJSON, result.TargetType)

	convertedDocument, convertedType, readError := fileio.ReadDocument(outputPath, fileio.FileTypeAuto)
	require.NoError(t, readError)
	require.Equal(t, fileio.FileTypeJSON, convertedType)
	require.Equal(t, "asdf://sunpy.org/sunpy/schemas/helioprojectiveradial-1.1.0", convertedDocument.Tag)
	require.Equal(t, "earth", convertedDocument.Body["observer"])
}

func TestConvertRoundTripRevalidates(t *testing.T) {
	t.Parallel()

	workingDirectory := t.TempDir()
	service := newTestService(t)
	registry := schema.NewRegistry()
	validator := schema.NewValidator(registry)

	inputPath := writeSourceDocument(t, workingDirectory, "frame.yaml", testSourceDocumentConstant)
	outputPath := filepath.Join(workingDirectory, "frame.asdf")

	_, conversionError := service.Convert(context.Background(), convert.Options{
		InputPath:    inputPath,
		OutputPath:   outputPath,
		TargetFormat: fileio.FileTypeASDF,
	})
	require.NoError(t, conversionError)

	reloadedDocument, _, readError := fileio.ReadDocument(outputPath, fileio.FileTypeAuto)
	require.NoError(t, readError)

	frameSchema, lookupError := registry.Lookup(reloadedDocument.Tag)
	require.NoError(t, lookupError)

	report := validator.Validate(reloadedDocument.Body, frameSchema)
	require.True(t, report.Valid(), "violations: %v", report.Violations)

	originalDocument, _, originalReadError := fileio.ReadDocument(inputPath, fileio.FileTypeAuto)
	require.NoError(t, originalReadError)
	require.Empty(t, cmp.Diff(originalDocument.Body, reloadedDocument.Body))
}

func TestConvertRejectsInvalidSource(t *testing.T) {
	t.Parallel()

	workingDirectory := t.TempDir()
	service := newTestService(t)
	inputPath := writeSourceDocument(t, workingDirectory, "frame.yaml", testInvalidDocumentConstant)
	outputPath := filepath.Join(workingDirectory, "frame.json")

	_, conversionError := service.Convert(context.Background(), convert.Options{
		InputPath:    inputPath,
		OutputPath:   outputPath,
		TargetFormat: fileio.FileTypeJSON,
	})
	require.Error(t, conversionError)
	require.ErrorAs(t, conversionError, &convert.InvalidSourceError{})

	_, statError := os.Stat(outputPath)
	require.True(t, os.IsNotExist(statError))
}

func TestConvertOptionValidation(t *testing.T) {
	t.Parallel()

	service := newTestService(t)

	_, missingInputError := service.Convert(context.Background(), convert.Options{OutputPath: "out.yaml"})
	require.ErrorIs(t, missingInputError, convert.ErrInputPathRequired)

	_, missingOutputError := service.Convert(context.Background(), convert.Options{InputPath: "in.yaml"})
	require.ErrorIs(t, missingOutputError, convert.ErrOutputPathRequired)
}

func TestConvertCommand(t *testing.T) {
	t.Parallel()

	workingDirectory := t.TempDir()
	inputPath := writeSourceDocument(t, workingDirectory, "frame.yaml", testSourceDocumentConstant)
	outputPath := filepath.Join(workingDirectory, "frame.json")

	builder := convert.CommandBuilder{}
	command, buildError := builder.Build()
	require.NoError(t, buildError)

	var output bytes.Buffer
	command.SetOut(&output)
	command.SetErr(&output)
	command.SetContext(context.Background())
	command.SetArgs([]string{inputPath, outputPath, "--to", "json"})

	require.NoError(t, command.Execute())
	require.Contains(t, output.String(), "CONVERTED: "+inputPath)

	_, statError := os.Stat(outputPath)
	require.NoError(t, statError)
}

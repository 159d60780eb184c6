package validate_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sunkit/sunframes/internal/validate"
)

func executeValidateCommand(t *testing.T, arguments []string) (string, error) {
	t.Helper()

	builder := validate.CommandBuilder{}
	command, buildError := builder.Build()
	require.NoError(t, buildError)

	var output bytes.Buffer
	command.SetOut(&output)
	command.SetErr(&output)
	command.SetContext(context.Background())
	command.SetArgs(arguments)

	executionError := command.Execute()
	return output.String(), executionError
}

func TestValidateCommandRequiresArguments(t *testing.T) {
	t.Parallel()

	_, executionError := executeValidateCommand(t, []string{})
	require.ErrorIs(t, executionError, validate.ErrMissingArguments)
}

func TestValidateCommandReportsValidDocument(t *testing.T) {
	t.Parallel()

	documentPath := writeTestDocument(t, "frame.yaml", testMinimalDocumentConstant)
	output, executionError := executeValidateCommand(t, []string{documentPath})
	require.NoError(t, executionError)
	require.Contains(t, output, "VALID: "+documentPath)
}

func TestValidateCommandReportsViolations(t *testing.T) {
	t.Parallel()

	documentPath := writeTestDocument(t, "frame.yaml", testInvalidDocumentConstant)
	output, executionError := executeValidateCommand(t, []string{documentPath})
	require.ErrorIs(t, executionError, validate.ErrDocumentsInvalid)
	require.Contains(t, output, "INVALID: "+documentPath)
	require.Contains(t, output, "rsun")
	require.Contains(t, output, "required-property-missing")
}

func TestValidateCommandFrameFlagOverride(t *testing.T) {
	t.Parallel()

	documentPath := writeTestDocument(t, "observer.asdf", testTaggedDocumentConstant)
	output, executionError := executeValidateCommand(t, []string{documentPath, "--frame", "helioprojectiveradial"})
	require.ErrorIs(t, executionError, validate.ErrDocumentsInvalid)
	require.Contains(t, output, "INVALID: "+documentPath)
}

func TestValidateCommandFailsFastOnReadError(t *testing.T) {
	t.Parallel()

	_, executionError := executeValidateCommand(t, []string{"/nonexistent/frame.yaml"})
	require.Error(t, executionError)
	require.NotErrorIs(t, executionError, validate.ErrDocumentsInvalid)
}

package describe_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sunkit/sunframes/internal/describe"
)

func executeDescribeCommand(t *testing.T, arguments []string) (string, error) {
	t.Helper()

	builder := describe.CommandBuilder{}
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

func TestDescribeCommandListsFrames(t *testing.T) {
	t.Parallel()

	output, executionError := executeDescribeCommand(t, []string{})
	require.NoError(t, executionError)
	require.Contains(t, output, "helioprojectiveradial")
	require.Contains(t, output, "heliographic_stonyhurst")
}

func TestDescribeCommandPrintsSchema(t *testing.T) {
	t.Parallel()

	output, executionError := executeDescribeCommand(t, []string{"helioprojectiveradial"})
	require.NoError(t, executionError)
	require.Contains(t, output, "id: asdf://sunpy.org/sunpy/schemas/helioprojectiveradial-1.1.0")
	require.Contains(t, output, "name: rsun")
	require.Contains(t, output, "required: true")
	require.Contains(t, output, "kind: length-quantity")
}

func TestDescribeCommandAcceptsSchemaURI(t *testing.T) {
	t.Parallel()

	output, executionError := executeDescribeCommand(t, []string{"asdf://sunpy.org/sunpy/schemas/heliographic_stonyhurst-1.1.0"})
	require.NoError(t, executionError)
	require.Contains(t, output, "frame: heliographic_stonyhurst")
}

func TestDescribeCommandUnknownFrame(t *testing.T) {
	t.Parallel()

	_, executionError := executeDescribeCommand(t, []string{"polarimetric"})
	require.Error(t, executionError)
}

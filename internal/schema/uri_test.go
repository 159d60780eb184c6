package schema_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sunkit/sunframes/internal/schema"
)

func TestParseURI(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		input       string
		expected    schema.URI
		expectError bool
	}{
		{
			name:  "helioprojective_radial",
			input: "asdf://sunpy.org/sunpy/schemas/helioprojectiveradial-1.1.0",
			expected: schema.URI{
				Authority:    "sunpy.org",
				Organization: "sunpy",
				Name:         "helioprojectiveradial",
				Version:      "1.1.0",
			},
		},
		{
			name:  "heliographic_stonyhurst",
			input: "asdf://sunpy.org/sunpy/schemas/heliographic_stonyhurst-1.1.0",
			expected: schema.URI{
				Authority:    "sunpy.org",
				Organization: "sunpy",
				Name:         "heliographic_stonyhurst",
				Version:      "1.1.0",
			},
		},
		{name: "trims_whitespace", input: "  asdf://sunpy.org/sunpy/schemas/helioprojectiveradial-1.1.0  ", expected: schema.URI{Authority: "sunpy.org", Organization: "sunpy", Name: "helioprojectiveradial", Version: "1.1.0"}},
		{name: "rejects_wrong_scheme", input: "https://sunpy.org/sunpy/schemas/helioprojectiveradial-1.1.0", expectError: true},
		{name: "rejects_missing_schemas_segment", input: "asdf://sunpy.org/sunpy/frames/helioprojectiveradial-1.1.0", expectError: true},
		{name: "rejects_missing_version", input: "asdf://sunpy.org/sunpy/schemas/helioprojectiveradial", expectError: true},
		{name: "rejects_empty", input: "", expectError: true},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			parsedURI, parseError := schema.ParseURI(testCase.input)
			if testCase.expectError {
				require.Error(t, parseError)
				return
			}
			require.NoError(t, parseError)
			require.Equal(t, testCase.expected, parsedURI)
		})
	}
}

func TestURIStringRoundTrip(t *testing.T) {
	t.Parallel()

	original := schema.URI{
		Authority:    "sunpy.org",
		Organization: "sunpy",
		Name:         "helioprojectiveradial",
		Version:      "1.1.0",
	}
	rendered := original.String()
	require.Equal(t, "asdf://sunpy.org/sunpy/schemas/helioprojectiveradial-1.1.0", rendered)

	reparsed, parseError := schema.ParseURI(rendered)
	require.NoError(t, parseError)
	require.Equal(t, original, reparsed)
}

package frames_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/sunkit/sunframes/internal/frames"
	"github.com/sunkit/sunframes/internal/units"
)

const (
	testMinimalRecordYAMLConstant = "rsun: 695700.0 km\n"
	testLabeledObserverYAMLConstant = "rsun: 695700.0 km\nobserver: earth\nobstime: 2024-01-01T00:00:00Z\n"
	testNestedObserverYAMLConstant = `rsun: 695700.0 km
observer:
  lon: 0.0 deg
  lat: -7.25 deg
  radius: 1.0 AU
  obstime: 2024-01-01T00:00:00Z
obstime: 2024-01-01T00:00:00Z
`
	testUnknownAttributeYAMLConstant = "rsun: 695700.0 km\nrotation_model: howard\n"
	testMissingRSunYAMLConstant      = "observer: earth\n"
)

func validNestedObserverFrame() frames.HelioprojectiveRadial {
	observationTime := frames.NewObservationTime(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
	observer := frames.NewObserverFrame(frames.HeliographicStonyhurst{
		Lon:     units.Quantity{Value: 0, Unit: units.UnitDegree},
		Lat:     units.Quantity{Value: -7.25, Unit: units.UnitDegree},
		Radius:  units.Quantity{Value: 1, Unit: units.UnitAstronomicalUnit},
		ObsTime: &observationTime,
	})
	return frames.HelioprojectiveRadial{
		RSun:     units.Quantity{Value: 695700.0, Unit: units.UnitKilometre},
		Observer: &observer,
		ObsTime:  &observationTime,
	}
}

func TestHelioprojectiveRadialValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		frame       frames.HelioprojectiveRadial
		expectError bool
	}{
		{
			name:  "minimal_record_with_rsun_only",
			frame: frames.HelioprojectiveRadial{RSun: units.Quantity{Value: 695700.0, Unit: units.UnitKilometre}},
		},
		{
			name:  "nested_observer_record",
			frame: validNestedObserverFrame(),
		},
		{
			name:        "missing_rsun",
			frame:       frames.HelioprojectiveRadial{},
			expectError: true,
		},
		{
			name:        "rsun_with_angle_unit",
			frame:       frames.HelioprojectiveRadial{RSun: units.Quantity{Value: 1, Unit: units.UnitDegree}},
			expectError: true,
		},
		{
			name: "observer_missing_radius",
			frame: func() frames.HelioprojectiveRadial {
				observer := frames.NewObserverFrame(frames.HeliographicStonyhurst{
					Lon: units.Quantity{Value: 0, Unit: units.UnitDegree},
					Lat: units.Quantity{Value: 0, Unit: units.UnitDegree},
				})
				return frames.HelioprojectiveRadial{
					RSun:     units.Quantity{Value: 695700.0, Unit: units.UnitKilometre},
					Observer: &observer,
				}
			}(),
			expectError: true,
		},
		{
			name: "observer_with_both_variants",
			frame: frames.HelioprojectiveRadial{
				RSun:     units.Quantity{Value: 695700.0, Unit: units.UnitKilometre},
				Observer: &frames.Observer{Label: "earth", Frame: &frames.HeliographicStonyhurst{}},
			},
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			validationError := testCase.frame.Validate()
			if testCase.expectError {
				require.Error(t, validationError)
				return
			}
			require.NoError(t, validationError)
		})
	}
}

func TestDecodeHelioprojectiveRadialYAML(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		document    string
		expectError bool
		inspect     func(t *testing.T, frame frames.HelioprojectiveRadial)
	}{
		{
			name:     "minimal_record",
			document: testMinimalRecordYAMLConstant,
			inspect: func(t *testing.T, frame frames.HelioprojectiveRadial) {
				require.Equal(t, units.Quantity{Value: 695700.0, Unit: units.UnitKilometre}, frame.RSun)
				require.Nil(t, frame.Observer)
				require.Nil(t, frame.ObsTime)
			},
		},
		{
			name:     "labeled_observer",
			document: testLabeledObserverYAMLConstant,
			inspect: func(t *testing.T, frame frames.HelioprojectiveRadial) {
				require.NotNil(t, frame.Observer)
				require.Equal(t, "earth", frame.Observer.Label)
				require.Nil(t, frame.Observer.Frame)
				require.NotNil(t, frame.ObsTime)
				require.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), frame.ObsTime.Time())
			},
		},
		{
			name:     "nested_observer",
			document: testNestedObserverYAMLConstant,
			inspect: func(t *testing.T, frame frames.HelioprojectiveRadial) {
				require.NotNil(t, frame.Observer)
				require.NotNil(t, frame.Observer.Frame)
				require.Equal(t, units.Quantity{Value: 1, Unit: units.UnitAstronomicalUnit}, frame.Observer.Frame.Radius)
			},
		},
		{
			name:        "unknown_attribute_rejected",
			document:    testUnknownAttributeYAMLConstant,
			expectError: true,
		},
		{
			name:        "missing_rsun_rejected",
			document:    testMissingRSunYAMLConstant,
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			frame, decodeError := frames.DecodeHelioprojectiveRadialYAML([]byte(testCase.document))
			if testCase.expectError {
				require.Error(t, decodeError)
				return
			}
			require.NoError(t, decodeError)
			if testCase.inspect != nil {
				testCase.inspect(t, frame)
			}
		})
	}
}

func TestHelioprojectiveRadialYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	original := validNestedObserverFrame()
	encoded, encodeError := frames.EncodeYAML(original)
	require.NoError(t, encodeError)

	decoded, decodeError := frames.DecodeHelioprojectiveRadialYAML(encoded)
	require.NoError(t, decodeError)
	require.Equal(t, original, decoded)
}

func TestHelioprojectiveRadialJSONRoundTrip(t *testing.T) {
	t.Parallel()

	original := validNestedObserverFrame()
	encoded, encodeError := frames.EncodeJSON(original)
	require.NoError(t, encodeError)

	decoded, decodeError := frames.DecodeHelioprojectiveRadialJSON(encoded)
	require.NoError(t, decodeError)
	require.Equal(t, original, decoded)
}

func TestObserverYAMLVariants(t *testing.T) {
	t.Parallel()

	var labeled frames.Observer
	require.NoError(t, yaml.Unmarshal([]byte("earth"), &labeled))
	require.Equal(t, "earth", labeled.Label)

	var nested frames.Observer
	nestedDocument := "lon: 10 deg\nlat: 20 deg\nradius: 1 AU\n"
	require.NoError(t, yaml.Unmarshal([]byte(nestedDocument), &nested))
	require.NotNil(t, nested.Frame)
	require.NoError(t, nested.Validate())

	var sequence frames.Observer
	require.Error(t, yaml.Unmarshal([]byte("- earth\n"), &sequence))
}

func TestParseObservationTime(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		input       string
		expected    time.Time
		expectError bool
	}{
		{name: "rfc3339", input: "2024-01-01T12:30:00Z", expected: time.Date(2024, time.January, 1, 12, 30, 0, 0, time.UTC)},
		{name: "offset_normalized_to_utc", input: "2024-01-01T12:30:00+02:00", expected: time.Date(2024, time.January, 1, 10, 30, 0, 0, time.UTC)},
		{name: "no_zone_assumes_utc", input: "2024-01-01T12:30:00", expected: time.Date(2024, time.January, 1, 12, 30, 0, 0, time.UTC)},
		{name: "date_only", input: "2024-01-01", expected: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{name: "rejects_empty", input: "", expectError: true},
		{name: "rejects_garbage", input: "yesterday", expectError: true},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			parsed, parseError := frames.ParseObservationTime(testCase.input)
			if testCase.expectError {
				require.Error(t, parseError)
				return
			}
			require.NoError(t, parseError)
			require.Equal(t, testCase.expected, parsed.Time())
		})
	}
}

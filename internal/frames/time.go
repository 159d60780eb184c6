package frames

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	observationTimeParseTemplateConstant = "invalid observation time %q"
	isoDateTimeLayoutConstant            = "2006-01-02T15:04:05"
	isoDateTimeFractionLayoutConstant    = "2006-01-02T15:04:05.999999999"
	isoDateLayoutConstant                = "2006-01-02"
	spaceSeparatedLayoutConstant         = "2006-01-02 15:04:05.999999999"
)

// Layouts accepted for serialized observation times, tried in order.
var observationTimeLayouts = []string{
	time.RFC3339Nano,
	isoDateTimeFractionLayoutConstant,
	isoDateTimeLayoutConstant,
	spaceSeparatedLayoutConstant,
	isoDateLayoutConstant,
}

// ObservationTime marks the instant a frame's orientation is defined.
type ObservationTime struct {
	instant time.Time
}

// ObservationTimeParseError indicates a serialized timestamp could not be interpreted.
type ObservationTimeParseError struct {
	Input string
}

// Error describes the parse failure.
func (parseError ObservationTimeParseError) Error() string {
	return fmt.Sprintf(observationTimeParseTemplateConstant, parseError.Input)
}

// NewObservationTime normalizes the provided instant to UTC.
func NewObservationTime(instant time.Time) ObservationTime {
	return ObservationTime{instant: instant.UTC()}
}

// ParseObservationTime interprets an ISO-8601 style timestamp, normalized to UTC.
func ParseObservationTime(text string) (ObservationTime, error) {
	trimmedText := strings.TrimSpace(text)
	if len(trimmedText) == 0 {
		return ObservationTime{}, ObservationTimeParseError{Input: text}
	}

	for _, layout := range observationTimeLayouts {
		parsedInstant, parseError := time.Parse(layout, trimmedText)
		if parseError == nil {
			return NewObservationTime(parsedInstant), nil
		}
	}

	return ObservationTime{}, ObservationTimeParseError{Input: text}
}

// Time exposes the underlying UTC instant.
func (observationTime ObservationTime) Time() time.Time {
	return observationTime.instant
}

// IsZero reports whether the observation time is unset.
func (observationTime ObservationTime) IsZero() bool {
	return observationTime.instant.IsZero()
}

// String renders the observation time in RFC 3339 UTC form.
func (observationTime ObservationTime) String() string {
	return observationTime.instant.UTC().Format(time.RFC3339Nano)
}

// MarshalYAML renders the observation time as an RFC 3339 scalar.
func (observationTime ObservationTime) MarshalYAML() (any, error) {
	return observationTime.String(), nil
}

// UnmarshalYAML parses an ISO-8601 style timestamp scalar.
func (observationTime *ObservationTime) UnmarshalYAML(node *yaml.Node) error {
	parsedTime, parseError := ParseObservationTime(node.Value)
	if parseError != nil {
		return parseError
	}
	*observationTime = parsedTime
	return nil
}

// MarshalJSON renders the observation time as an RFC 3339 string.
func (observationTime ObservationTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(observationTime.String())
}

// UnmarshalJSON parses an ISO-8601 style timestamp string.
func (observationTime *ObservationTime) UnmarshalJSON(data []byte) error {
	var literal string
	if decodeError := json.Unmarshal(data, &literal); decodeError != nil {
		return decodeError
	}
	parsedTime, parseError := ParseObservationTime(literal)
	if parseError != nil {
		return parseError
	}
	*observationTime = parsedTime
	return nil
}

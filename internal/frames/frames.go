package frames

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/sunkit/sunframes/internal/units"
)

const (
	attributeErrorTemplateConstant      = "%s: %v"
	quantityRequiredMessageConstant     = "quantity attribute must be provided"
	jsonIndentConstant                  = "  "
	jsonPrefixConstant                  = ""
	rsunAttributeNameConstant           = "rsun"
	observerAttributeNameConstant       = "observer"
	obstimeAttributeNameConstant        = "obstime"
	longitudeAttributeNameConstant      = "lon"
	latitudeAttributeNameConstant       = "lat"
	radiusAttributeNameConstant         = "radius"
	helioprojectiveRadialNameConstant   = "helioprojectiveradial"
	heliographicStonyhurstNameConstant  = "heliographic_stonyhurst"
)

// FrameNameHelioprojectiveRadial names the primary frame record.
const FrameNameHelioprojectiveRadial = helioprojectiveRadialNameConstant

// FrameNameHeliographicStonyhurst names the observer frame record.
const FrameNameHeliographicStonyhurst = heliographicStonyhurstNameConstant

// ErrQuantityRequired indicates a mandatory quantity attribute was absent.
var ErrQuantityRequired = errors.New(quantityRequiredMessageConstant)

// AttributeError annotates a validation failure with the offending attribute name.
type AttributeError struct {
	Attribute string
	Err       error
}

// Error describes the attribute failure.
func (attributeError AttributeError) Error() string {
	return fmt.Sprintf(attributeErrorTemplateConstant, attributeError.Attribute, attributeError.Err)
}

// Unwrap exposes the underlying cause.
func (attributeError AttributeError) Unwrap() error {
	return attributeError.Err
}

// HeliographicStonyhurst captures the spherical position of an observer
// together with the instant the position was measured.
type HeliographicStonyhurst struct {
	Lon     units.Quantity   `yaml:"lon" json:"lon"`
	Lat     units.Quantity   `yaml:"lat" json:"lat"`
	Radius  units.Quantity   `yaml:"radius" json:"radius"`
	ObsTime *ObservationTime `yaml:"obstime,omitempty" json:"obstime,omitempty"`
}

// Validate enforces the presence and dimensions of the spherical components.
func (frame HeliographicStonyhurst) Validate() error {
	if validationError := validateAngleAttribute(longitudeAttributeNameConstant, frame.Lon); validationError != nil {
		return validationError
	}
	if validationError := validateAngleAttribute(latitudeAttributeNameConstant, frame.Lat); validationError != nil {
		return validationError
	}
	if validationError := validateLengthAttribute(radiusAttributeNameConstant, frame.Radius); validationError != nil {
		return validationError
	}
	return nil
}

// HelioprojectiveRadial is the attributes record serialized for the
// Helioprojective Radial frame. RSun is mandatory; Observer and ObsTime are
// optional and the record is closed to any other attribute.
type HelioprojectiveRadial struct {
	RSun     units.Quantity   `yaml:"rsun" json:"rsun"`
	Observer *Observer        `yaml:"observer,omitempty" json:"observer,omitempty"`
	ObsTime  *ObservationTime `yaml:"obstime,omitempty" json:"obstime,omitempty"`
}

// Validate enforces the record invariants, including recursive observer validation.
func (frame HelioprojectiveRadial) Validate() error {
	if validationError := validateLengthAttribute(rsunAttributeNameConstant, frame.RSun); validationError != nil {
		return validationError
	}
	if frame.Observer != nil {
		if validationError := frame.Observer.Validate(); validationError != nil {
			return AttributeError{Attribute: observerAttributeNameConstant, Err: validationError}
		}
	}
	return nil
}

func validateLengthAttribute(attributeName string, quantity units.Quantity) error {
	if quantityMissing(quantity) {
		return AttributeError{Attribute: attributeName, Err: ErrQuantityRequired}
	}
	if _, conversionError := quantity.Length(); conversionError != nil {
		return AttributeError{Attribute: attributeName, Err: conversionError}
	}
	return nil
}

func validateAngleAttribute(attributeName string, quantity units.Quantity) error {
	if quantityMissing(quantity) {
		return AttributeError{Attribute: attributeName, Err: ErrQuantityRequired}
	}
	if _, conversionError := quantity.Angle(); conversionError != nil {
		return AttributeError{Attribute: attributeName, Err: conversionError}
	}
	return nil
}

func quantityMissing(quantity units.Quantity) bool {
	return len(quantity.Unit) == 0
}

// DecodeHelioprojectiveRadialYAML strictly decodes and validates a YAML record.
func DecodeHelioprojectiveRadialYAML(data []byte) (HelioprojectiveRadial, error) {
	var frame HelioprojectiveRadial
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if decodeError := decoder.Decode(&frame); decodeError != nil {
		return HelioprojectiveRadial{}, decodeError
	}
	if validationError := frame.Validate(); validationError != nil {
		return HelioprojectiveRadial{}, validationError
	}
	return frame, nil
}

// DecodeHelioprojectiveRadialJSON strictly decodes and validates a JSON record.
func DecodeHelioprojectiveRadialJSON(data []byte) (HelioprojectiveRadial, error) {
	var frame HelioprojectiveRadial
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if decodeError := decoder.Decode(&frame); decodeError != nil {
		return HelioprojectiveRadial{}, decodeError
	}
	if validationError := frame.Validate(); validationError != nil {
		return HelioprojectiveRadial{}, validationError
	}
	return frame, nil
}

// EncodeYAML serializes a frame record as a YAML document.
func EncodeYAML(record any) ([]byte, error) {
	return yaml.Marshal(record)
}

// EncodeJSON serializes a frame record as indented JSON.
func EncodeJSON(record any) ([]byte, error) {
	return json.MarshalIndent(record, jsonPrefixConstant, jsonIndentConstant)
}

package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/unit"
)

const (
	quantityFieldSeparatorConstant      = " "
	quantityParseErrorTemplateConstant  = "%s: %s"
	invalidQuantityMessageConstant      = "invalid quantity literal"
	missingUnitMessageConstant          = "quantity unit must be provided"
	missingValueMessageConstant         = "quantity value must be provided"
	unknownUnitTemplateConstant         = "unknown unit %q"
	dimensionMismatchTemplateConstant   = "unit %q measures %s, expected %s"
	degreesPerRadianDivisorConstant     = 180.0
	arcminutesPerRadianDivisorConstant  = 10800.0
	arcsecondsPerRadianDivisorConstant  = 648000.0
	metresPerKilometreConstant          = 1000.0
	metresPerAstronomicalUnitConstant   = 1.495978707e11
	metresPerSolarRadiusConstant        = 6.957e8
	canonicalFloatFormatByteConstant    = 'g'
	canonicalFloatPrecisionConstant     = -1
	canonicalFloatBitSizeConstant       = 64
)

// Dimension identifies the physical dimension a unit measures.
type Dimension string

// Dimensions understood by frame attribute records.
const (
	DimensionLength Dimension = Dimension("length")
	DimensionAngle  Dimension = Dimension("angle")
)

// Unit symbols accepted in serialized frame records.
const (
	UnitMetre            = "m"
	UnitKilometre        = "km"
	UnitAstronomicalUnit = "AU"
	UnitSolarRadius      = "solRad"
	UnitRadian           = "rad"
	UnitDegree           = "deg"
	UnitArcminute        = "arcmin"
	UnitArcsecond        = "arcsec"
)

type unitDefinition struct {
	dimension Dimension
	siFactor  float64
}

var unitDefinitions = map[string]unitDefinition{
	UnitMetre:            {dimension: DimensionLength, siFactor: 1.0},
	UnitKilometre:        {dimension: DimensionLength, siFactor: metresPerKilometreConstant},
	UnitAstronomicalUnit: {dimension: DimensionLength, siFactor: metresPerAstronomicalUnitConstant},
	UnitSolarRadius:      {dimension: DimensionLength, siFactor: metresPerSolarRadiusConstant},
	UnitRadian:           {dimension: DimensionAngle, siFactor: 1.0},
	UnitDegree:           {dimension: DimensionAngle, siFactor: math.Pi / degreesPerRadianDivisorConstant},
	UnitArcminute:        {dimension: DimensionAngle, siFactor: math.Pi / arcminutesPerRadianDivisorConstant},
	UnitArcsecond:        {dimension: DimensionAngle, siFactor: math.Pi / arcsecondsPerRadianDivisorConstant},
}

// Quantity couples a numeric value with its unit symbol.
type Quantity struct {
	Value float64 `yaml:"value" json:"value" mapstructure:"value"`
	Unit  string  `yaml:"unit" json:"unit" mapstructure:"unit"`
}

// QuantityParseError indicates a quantity literal could not be parsed.
type QuantityParseError struct {
	Input   string
	Message string
}

// Error describes the parse failure.
func (parseError QuantityParseError) Error() string {
	return fmt.Sprintf(quantityParseErrorTemplateConstant, parseError.Input, parseError.Message)
}

// UnknownUnitError indicates a unit symbol is not part of the accepted table.
type UnknownUnitError struct {
	Unit string
}

// Error describes the unknown unit.
func (unitError UnknownUnitError) Error() string {
	return fmt.Sprintf(unknownUnitTemplateConstant, unitError.Unit)
}

// DimensionMismatchError indicates a unit measures a different dimension than required.
type DimensionMismatchError struct {
	Unit     string
	Actual   Dimension
	Expected Dimension
}

// Error describes the dimension mismatch.
func (dimensionError DimensionMismatchError) Error() string {
	return fmt.Sprintf(dimensionMismatchTemplateConstant, dimensionError.Unit, dimensionError.Actual, dimensionError.Expected)
}

// ParseQuantity converts a textual "<value> <unit>" literal into a Quantity.
func ParseQuantity(text string) (Quantity, error) {
	trimmedText := strings.TrimSpace(text)
	if len(trimmedText) == 0 {
		return Quantity{}, QuantityParseError{Input: text, Message: missingValueMessageConstant}
	}

	separatorIndex := strings.LastIndex(trimmedText, quantityFieldSeparatorConstant)
	if separatorIndex == -1 {
		return Quantity{}, QuantityParseError{Input: text, Message: missingUnitMessageConstant}
	}

	valueText := strings.TrimSpace(trimmedText[:separatorIndex])
	unitText := strings.TrimSpace(trimmedText[separatorIndex+1:])
	if len(valueText) == 0 {
		return Quantity{}, QuantityParseError{Input: text, Message: missingValueMessageConstant}
	}
	if len(unitText) == 0 {
		return Quantity{}, QuantityParseError{Input: text, Message: missingUnitMessageConstant}
	}

	parsedValue, parseError := strconv.ParseFloat(valueText, canonicalFloatBitSizeConstant)
	if parseError != nil {
		return Quantity{}, QuantityParseError{Input: text, Message: invalidQuantityMessageConstant}
	}

	quantity := Quantity{Value: parsedValue, Unit: unitText}
	if validationError := quantity.Validate(); validationError != nil {
		return Quantity{}, validationError
	}

	return quantity, nil
}

// String renders the quantity in its canonical "<value> <unit>" form.
func (quantity Quantity) String() string {
	renderedValue := strconv.FormatFloat(quantity.Value, canonicalFloatFormatByteConstant, canonicalFloatPrecisionConstant, canonicalFloatBitSizeConstant)
	return renderedValue + quantityFieldSeparatorConstant + quantity.Unit
}

// Validate ensures the unit symbol belongs to the accepted table.
func (quantity Quantity) Validate() error {
	if len(strings.TrimSpace(quantity.Unit)) == 0 {
		return QuantityParseError{Input: quantity.String(), Message: missingUnitMessageConstant}
	}
	if _, unitKnown := unitDefinitions[quantity.Unit]; !unitKnown {
		return UnknownUnitError{Unit: quantity.Unit}
	}
	return nil
}

// Dimension reports the physical dimension measured by the quantity's unit.
func (quantity Quantity) Dimension() (Dimension, error) {
	definition, unitKnown := unitDefinitions[quantity.Unit]
	if !unitKnown {
		return Dimension(""), UnknownUnitError{Unit: quantity.Unit}
	}
	return definition.dimension, nil
}

// Length converts the quantity to metres.
func (quantity Quantity) Length() (unit.Length, error) {
	definition, conversionError := quantity.definitionForDimension(DimensionLength)
	if conversionError != nil {
		return unit.Length(0), conversionError
	}
	return unit.Length(quantity.Value * definition.siFactor), nil
}

// Angle converts the quantity to radians.
func (quantity Quantity) Angle() (unit.Angle, error) {
	definition, conversionError := quantity.definitionForDimension(DimensionAngle)
	if conversionError != nil {
		return unit.Angle(0), conversionError
	}
	return unit.Angle(quantity.Value * definition.siFactor), nil
}

func (quantity Quantity) definitionForDimension(expectedDimension Dimension) (unitDefinition, error) {
	definition, unitKnown := unitDefinitions[quantity.Unit]
	if !unitKnown {
		return unitDefinition{}, UnknownUnitError{Unit: quantity.Unit}
	}
	if definition.dimension != expectedDimension {
		return unitDefinition{}, DimensionMismatchError{Unit: quantity.Unit, Actual: definition.dimension, Expected: expectedDimension}
	}
	return definition, nil
}

package schema

import (
	"fmt"
	"sort"
	"time"

	"github.com/sunkit/sunframes/internal/frames"
	"github.com/sunkit/sunframes/internal/units"
)

const (
	pathSegmentSeparatorConstant               = "."
	requiredPropertyMessageTemplateConstant    = "required property %q is missing"
	unknownPropertyMessageTemplateConstant     = "property %q is not defined by schema %s"
	invalidQuantityMessageTemplateConstant     = "property %q is not a valid quantity: %v"
	quantityDimensionMessageTemplateConstant   = "property %q must measure %s"
	invalidTimestampMessageTemplateConstant    = "property %q is not a valid timestamp"
	invalidObserverMessageTemplateConstant     = "property %q must be a location label or a nested frame record"
	emptyObserverLabelMessageTemplateConstant  = "property %q carries an empty location label"
	observerSchemaMissingMessageConstant       = "observer frame schema is not registered"
	quantityUnitNotStringMessageConstant       = "quantity unit must be a string"
	quantityNotNumericMessageConstant          = "quantity value must be numeric"
	quantityShapeMessageConstant               = "quantity must be a literal or a {value, unit} record"
)

// ViolationCode classifies a schema violation.
type ViolationCode string

// Violation codes surfaced by the validator.
const (
	ViolationCodeRequiredPropertyMissing ViolationCode = ViolationCode("required-property-missing")
	ViolationCodeUnknownProperty         ViolationCode = ViolationCode("unknown-property")
	ViolationCodeInvalidQuantity         ViolationCode = ViolationCode("invalid-quantity")
	ViolationCodeInvalidTimestamp        ViolationCode = ViolationCode("invalid-timestamp")
	ViolationCodeInvalidObserver         ViolationCode = ViolationCode("invalid-observer")
)

// Violation pinpoints one schema failure inside a document.
type Violation struct {
	Path    string        `yaml:"path" json:"path"`
	Code    ViolationCode `yaml:"code" json:"code"`
	Message string        `yaml:"message" json:"message"`
}

// Report aggregates every violation found while validating one document.
type Report struct {
	SchemaURI  string      `yaml:"schema" json:"schema"`
	Violations []Violation `yaml:"violations,omitempty" json:"violations,omitempty"`
}

// Valid reports whether the document satisfied the schema.
func (report Report) Valid() bool {
	return len(report.Violations) == 0
}

// Validator checks generic documents against registered frame schemas.
type Validator struct {
	registry *Registry
}

// NewValidator constructs a validator backed by the provided registry.
func NewValidator(registry *Registry) *Validator {
	return &Validator{registry: registry}
}

// Validate checks a decoded document against the frame schema and reports
// every violation with its document path.
func (validator *Validator) Validate(document map[string]any, frameSchema FrameSchema) Report {
	report := Report{SchemaURI: frameSchema.URI.String()}
	report.Violations = validator.collectViolations(document, frameSchema, "")
	return report
}

func (validator *Validator) collectViolations(document map[string]any, frameSchema FrameSchema, pathPrefix string) []Violation {
	violations := make([]Violation, 0)

	for _, requiredName := range frameSchema.RequiredProperties() {
		if _, propertyPresent := document[requiredName]; !propertyPresent {
			violations = append(violations, Violation{
				Path:    joinPath(pathPrefix, requiredName),
				Code:    ViolationCodeRequiredPropertyMissing,
				Message: fmt.Sprintf(requiredPropertyMessageTemplateConstant, requiredName),
			})
		}
	}

	unknownNames := make([]string, 0)
	for propertyName := range document {
		if _, propertyKnown := frameSchema.Property(propertyName); !propertyKnown {
			unknownNames = append(unknownNames, propertyName)
		}
	}
	sort.Strings(unknownNames)
	for _, unknownName := range unknownNames {
		violations = append(violations, Violation{
			Path:    joinPath(pathPrefix, unknownName),
			Code:    ViolationCodeUnknownProperty,
			Message: fmt.Sprintf(unknownPropertyMessageTemplateConstant, unknownName, frameSchema.URI.String()),
		})
	}

	for _, propertySchema := range frameSchema.Properties {
		propertyValue, propertyPresent := document[propertySchema.Name]
		if !propertyPresent {
			continue
		}
		violations = append(violations, validator.checkProperty(propertySchema, propertyValue, pathPrefix)...)
	}

	return violations
}

func (validator *Validator) checkProperty(propertySchema PropertySchema, propertyValue any, pathPrefix string) []Violation {
	propertyPath := joinPath(pathPrefix, propertySchema.Name)

	switch propertySchema.Kind {
	case PropertyKindLengthQuantity:
		return checkQuantityValue(propertyPath, propertySchema.Name, propertyValue, units.DimensionLength)
	case PropertyKindAngleQuantity:
		return checkQuantityValue(propertyPath, propertySchema.Name, propertyValue, units.DimensionAngle)
	case PropertyKindTimestamp:
		return checkTimestampValue(propertyPath, propertySchema.Name, propertyValue)
	case PropertyKindObserver:
		return validator.checkObserverValue(propertyPath, propertySchema.Name, propertyValue)
	default:
		return nil
	}
}

func checkQuantityValue(propertyPath string, propertyName string, propertyValue any, expectedDimension units.Dimension) []Violation {
	quantity, parseError := coerceQuantity(propertyValue)
	if parseError != nil {
		return []Violation{{
			Path:    propertyPath,
			Code:    ViolationCodeInvalidQuantity,
			Message: fmt.Sprintf(invalidQuantityMessageTemplateConstant, propertyName, parseError),
		}}
	}

	actualDimension, dimensionError := quantity.Dimension()
	if dimensionError != nil || actualDimension != expectedDimension {
		return []Violation{{
			Path:    propertyPath,
			Code:    ViolationCodeInvalidQuantity,
			Message: fmt.Sprintf(quantityDimensionMessageTemplateConstant, propertyName, expectedDimension),
		}}
	}

	return nil
}

func coerceQuantity(propertyValue any) (units.Quantity, error) {
	switch typedValue := propertyValue.(type) {
	case string:
		return units.ParseQuantity(typedValue)
	case map[string]any:
		numericValue, valueError := coerceFloat(typedValue["value"])
		if valueError != nil {
			return units.Quantity{}, valueError
		}
		unitText, unitIsString := typedValue["unit"].(string)
		if !unitIsString {
			return units.Quantity{}, units.QuantityParseError{Input: fmt.Sprint(propertyValue), Message: quantityUnitNotStringMessageConstant}
		}
		quantity := units.Quantity{Value: numericValue, Unit: unitText}
		if validationError := quantity.Validate(); validationError != nil {
			return units.Quantity{}, validationError
		}
		return quantity, nil
	default:
		return units.Quantity{}, units.QuantityParseError{Input: fmt.Sprint(propertyValue), Message: quantityShapeMessageConstant}
	}
}

func coerceFloat(rawValue any) (float64, error) {
	switch typedValue := rawValue.(type) {
	case float64:
		return typedValue, nil
	case float32:
		return float64(typedValue), nil
	case int:
		return float64(typedValue), nil
	case int64:
		return float64(typedValue), nil
	default:
		return 0, units.QuantityParseError{Input: fmt.Sprint(rawValue), Message: quantityNotNumericMessageConstant}
	}
}

func checkTimestampValue(propertyPath string, propertyName string, propertyValue any) []Violation {
	switch typedValue := propertyValue.(type) {
	case time.Time:
		return nil
	case string:
		if _, parseError := frames.ParseObservationTime(typedValue); parseError == nil {
			return nil
		}
	}

	return []Violation{{
		Path:    propertyPath,
		Code:    ViolationCodeInvalidTimestamp,
		Message: fmt.Sprintf(invalidTimestampMessageTemplateConstant, propertyName),
	}}
}

func (validator *Validator) checkObserverValue(propertyPath string, propertyName string, propertyValue any) []Violation {
	switch typedValue := propertyValue.(type) {
	case string:
		if len(typedValue) == 0 {
			return []Violation{{
				Path:    propertyPath,
				Code:    ViolationCodeInvalidObserver,
				Message: fmt.Sprintf(emptyObserverLabelMessageTemplateConstant, propertyName),
			}}
		}
		return nil
	case map[string]any:
		observerSchema, lookupError := validator.registry.Lookup(frames.FrameNameHeliographicStonyhurst)
		if lookupError != nil {
			return []Violation{{
				Path:    propertyPath,
				Code:    ViolationCodeInvalidObserver,
				Message: observerSchemaMissingMessageConstant,
			}}
		}
		return validator.collectViolations(typedValue, observerSchema, propertyPath)
	default:
		return []Violation{{
			Path:    propertyPath,
			Code:    ViolationCodeInvalidObserver,
			Message: fmt.Sprintf(invalidObserverMessageTemplateConstant, propertyName),
		}}
	}
}

func joinPath(pathPrefix string, propertyName string) string {
	if len(pathPrefix) == 0 {
		return propertyName
	}
	return pathPrefix + pathSegmentSeparatorConstant + propertyName
}

package units

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

const (
	unexpectedYamlNodeTemplateConstant = "unexpected YAML node kind %d for quantity"
)

type quantityRecord struct {
	Value float64 `yaml:"value" json:"value"`
	Unit  string  `yaml:"unit" json:"unit"`
}

// MarshalYAML renders the quantity as its structured {value, unit} record.
func (quantity Quantity) MarshalYAML() (any, error) {
	return quantityRecord{Value: quantity.Value, Unit: quantity.Unit}, nil
}

// UnmarshalYAML accepts either a "<value> <unit>" scalar or a {value, unit} mapping.
func (quantity *Quantity) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		parsedQuantity, parseError := ParseQuantity(node.Value)
		if parseError != nil {
			return parseError
		}
		*quantity = parsedQuantity
		return nil
	case yaml.MappingNode:
		var record quantityRecord
		if decodeError := node.Decode(&record); decodeError != nil {
			return decodeError
		}
		decodedQuantity := Quantity{Value: record.Value, Unit: record.Unit}
		if validationError := decodedQuantity.Validate(); validationError != nil {
			return validationError
		}
		*quantity = decodedQuantity
		return nil
	default:
		return fmt.Errorf(unexpectedYamlNodeTemplateConstant, node.Kind)
	}
}

// MarshalJSON renders the quantity as its structured {value, unit} record.
func (quantity Quantity) MarshalJSON() ([]byte, error) {
	return json.Marshal(quantityRecord{Value: quantity.Value, Unit: quantity.Unit})
}

// UnmarshalJSON accepts either a "<value> <unit>" string or a {value, unit} object.
func (quantity *Quantity) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var literal string
		if decodeError := json.Unmarshal(data, &literal); decodeError != nil {
			return decodeError
		}
		parsedQuantity, parseError := ParseQuantity(literal)
		if parseError != nil {
			return parseError
		}
		*quantity = parsedQuantity
		return nil
	}

	var record quantityRecord
	if decodeError := json.Unmarshal(data, &record); decodeError != nil {
		return decodeError
	}
	decodedQuantity := Quantity{Value: record.Value, Unit: record.Unit}
	if validationError := decodedQuantity.Validate(); validationError != nil {
		return validationError
	}
	*quantity = decodedQuantity
	return nil
}

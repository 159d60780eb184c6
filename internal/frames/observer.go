package frames

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

const (
	observerEmptyMessageConstant           = "observer must carry a label or a nested frame record"
	observerAmbiguousMessageConstant       = "observer cannot carry both a label and a nested frame record"
	observerLabelEmptyMessageConstant      = "observer label must be non-empty"
	observerUnexpectedNodeTemplateConstant = "unexpected YAML node kind %d for observer"
)

// ErrObserverEmpty indicates an observer union carries neither variant.
var ErrObserverEmpty = errors.New(observerEmptyMessageConstant)

// ErrObserverAmbiguous indicates an observer union carries both variants.
var ErrObserverAmbiguous = errors.New(observerAmbiguousMessageConstant)

// ErrObserverLabelEmpty indicates an observer label variant is blank.
var ErrObserverLabelEmpty = errors.New(observerLabelEmptyMessageConstant)

// Observer is the union of a free-form location label and a nested
// Heliographic Stonyhurst frame record. Exactly one variant is populated.
type Observer struct {
	Label string
	Frame *HeliographicStonyhurst
}

// NewObserverLabel constructs the label variant of the observer union.
func NewObserverLabel(label string) Observer {
	return Observer{Label: label}
}

// NewObserverFrame constructs the nested-frame variant of the observer union.
func NewObserverFrame(frame HeliographicStonyhurst) Observer {
	return Observer{Frame: &frame}
}

// Validate ensures exactly one union variant is populated and valid.
func (observer Observer) Validate() error {
	hasLabel := len(observer.Label) > 0
	hasFrame := observer.Frame != nil

	switch {
	case hasLabel && hasFrame:
		return ErrObserverAmbiguous
	case !hasLabel && !hasFrame:
		return ErrObserverEmpty
	case hasFrame:
		return observer.Frame.Validate()
	default:
		return nil
	}
}

// MarshalYAML renders the populated union variant.
func (observer Observer) MarshalYAML() (any, error) {
	if validationError := observer.Validate(); validationError != nil {
		return nil, validationError
	}
	if observer.Frame != nil {
		return observer.Frame, nil
	}
	return observer.Label, nil
}

// UnmarshalYAML accepts a scalar label or a nested frame mapping.
func (observer *Observer) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if len(node.Value) == 0 {
			return ErrObserverLabelEmpty
		}
		*observer = Observer{Label: node.Value}
		return nil
	case yaml.MappingNode:
		var frame HeliographicStonyhurst
		if decodeError := node.Decode(&frame); decodeError != nil {
			return decodeError
		}
		*observer = Observer{Frame: &frame}
		return nil
	default:
		return fmt.Errorf(observerUnexpectedNodeTemplateConstant, node.Kind)
	}
}

// MarshalJSON renders the populated union variant.
func (observer Observer) MarshalJSON() ([]byte, error) {
	if validationError := observer.Validate(); validationError != nil {
		return nil, validationError
	}
	if observer.Frame != nil {
		return json.Marshal(observer.Frame)
	}
	return json.Marshal(observer.Label)
}

// UnmarshalJSON accepts a string label or a nested frame object.
func (observer *Observer) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var label string
		if decodeError := json.Unmarshal(data, &label); decodeError != nil {
			return decodeError
		}
		if len(label) == 0 {
			return ErrObserverLabelEmpty
		}
		*observer = Observer{Label: label}
		return nil
	}

	var frame HeliographicStonyhurst
	if decodeError := json.Unmarshal(data, &frame); decodeError != nil {
		return decodeError
	}
	*observer = Observer{Frame: &frame}
	return nil
}

package schema

import (
	"fmt"
	"sort"
	"strings"
)

const (
	schemaAuthorityConstant             = "sunpy.org"
	schemaOrganizationConstant          = "sunpy"
	schemaVersionConstant               = "1.1.0"
	helioprojectiveRadialNameConstant   = "helioprojectiveradial"
	heliographicStonyhurstNameConstant  = "heliographic_stonyhurst"
	rsunPropertyNameConstant            = "rsun"
	observerPropertyNameConstant        = "observer"
	obstimePropertyNameConstant         = "obstime"
	longitudePropertyNameConstant       = "lon"
	latitudePropertyNameConstant        = "lat"
	radiusPropertyNameConstant          = "radius"
	unknownSchemaTemplateConstant       = "unknown frame schema %q"
	duplicateSchemaTemplateConstant     = "frame schema %q already registered"
)

// PropertyKind classifies the value a record property must carry.
type PropertyKind string

// Property kinds understood by the validator.
const (
	PropertyKindLengthQuantity PropertyKind = PropertyKind("length-quantity")
	PropertyKindAngleQuantity  PropertyKind = PropertyKind("angle-quantity")
	PropertyKindTimestamp      PropertyKind = PropertyKind("timestamp")
	PropertyKindObserver       PropertyKind = PropertyKind("observer")
)

// PropertySchema describes a single property of a closed frame record.
type PropertySchema struct {
	Name     string       `yaml:"name" json:"name"`
	Kind     PropertyKind `yaml:"kind" json:"kind"`
	Required bool         `yaml:"required" json:"required"`
}

// FrameSchema is the closed-record contract for one coordinate frame.
type FrameSchema struct {
	URI        URI              `yaml:"-" json:"-"`
	Identifier string           `yaml:"id" json:"id"`
	FrameName  string           `yaml:"frame" json:"frame"`
	Properties []PropertySchema `yaml:"properties" json:"properties"`
}

// Property looks up a property schema by name.
func (frameSchema FrameSchema) Property(propertyName string) (PropertySchema, bool) {
	for _, propertySchema := range frameSchema.Properties {
		if propertySchema.Name == propertyName {
			return propertySchema, true
		}
	}
	return PropertySchema{}, false
}

// RequiredProperties lists the names of every mandatory property in order.
func (frameSchema FrameSchema) RequiredProperties() []string {
	requiredNames := make([]string, 0, len(frameSchema.Properties))
	for _, propertySchema := range frameSchema.Properties {
		if propertySchema.Required {
			requiredNames = append(requiredNames, propertySchema.Name)
		}
	}
	return requiredNames
}

// UnknownSchemaError indicates a lookup for an unregistered frame schema.
type UnknownSchemaError struct {
	Reference string
}

// Error describes the failed lookup.
func (unknownError UnknownSchemaError) Error() string {
	return fmt.Sprintf(unknownSchemaTemplateConstant, unknownError.Reference)
}

// DuplicateSchemaError indicates a frame schema was registered twice.
type DuplicateSchemaError struct {
	Reference string
}

// Error describes the duplicate registration.
func (duplicateError DuplicateSchemaError) Error() string {
	return fmt.Sprintf(duplicateSchemaTemplateConstant, duplicateError.Reference)
}

// Registry resolves frame schemas by short frame name or full schema URI.
type Registry struct {
	schemasByName map[string]FrameSchema
	schemasByURI  map[string]FrameSchema
}

// NewRegistry constructs a registry pre-populated with the built-in frame schemas.
func NewRegistry() *Registry {
	registry := &Registry{
		schemasByName: map[string]FrameSchema{},
		schemasByURI:  map[string]FrameSchema{},
	}
	for _, builtinSchema := range builtinFrameSchemas() {
		// Built-in registrations cannot collide.
		_ = registry.Register(builtinSchema)
	}
	return registry
}

// Register adds a frame schema to the registry.
func (registry *Registry) Register(frameSchema FrameSchema) error {
	if _, nameExists := registry.schemasByName[frameSchema.FrameName]; nameExists {
		return DuplicateSchemaError{Reference: frameSchema.FrameName}
	}
	uriKey := frameSchema.URI.String()
	if _, uriExists := registry.schemasByURI[uriKey]; uriExists {
		return DuplicateSchemaError{Reference: uriKey}
	}
	registry.schemasByName[frameSchema.FrameName] = frameSchema
	registry.schemasByURI[uriKey] = frameSchema
	return nil
}

// Lookup resolves a frame schema by short name or full asdf:// URI.
func (registry *Registry) Lookup(reference string) (FrameSchema, error) {
	trimmedReference := strings.TrimSpace(reference)
	if frameSchema, nameFound := registry.schemasByName[trimmedReference]; nameFound {
		return frameSchema, nil
	}
	if frameSchema, uriFound := registry.schemasByURI[trimmedReference]; uriFound {
		return frameSchema, nil
	}
	return FrameSchema{}, UnknownSchemaError{Reference: reference}
}

// FrameNames lists the registered short frame names in sorted order.
func (registry *Registry) FrameNames() []string {
	frameNames := make([]string, 0, len(registry.schemasByName))
	for frameName := range registry.schemasByName {
		frameNames = append(frameNames, frameName)
	}
	sort.Strings(frameNames)
	return frameNames
}

func builtinFrameSchemas() []FrameSchema {
	helioprojectiveRadialURI := URI{
		Authority:    schemaAuthorityConstant,
		Organization: schemaOrganizationConstant,
		Name:         helioprojectiveRadialNameConstant,
		Version:      schemaVersionConstant,
	}
	heliographicStonyhurstURI := URI{
		Authority:    schemaAuthorityConstant,
		Organization: schemaOrganizationConstant,
		Name:         heliographicStonyhurstNameConstant,
		Version:      schemaVersionConstant,
	}

	return []FrameSchema{
		{
			URI:        helioprojectiveRadialURI,
			Identifier: helioprojectiveRadialURI.String(),
			FrameName:  helioprojectiveRadialNameConstant,
			Properties: []PropertySchema{
				{Name: rsunPropertyNameConstant, Kind: PropertyKindLengthQuantity, Required: true},
				{Name: observerPropertyNameConstant, Kind: PropertyKindObserver},
				{Name: obstimePropertyNameConstant, Kind: PropertyKindTimestamp},
			},
		},
		{
			URI:        heliographicStonyhurstURI,
			Identifier: heliographicStonyhurstURI.String(),
			FrameName:  heliographicStonyhurstNameConstant,
			Properties: []PropertySchema{
				{Name: longitudePropertyNameConstant, Kind: PropertyKindAngleQuantity, Required: true},
				{Name: latitudePropertyNameConstant, Kind: PropertyKindAngleQuantity, Required: true},
				{Name: radiusPropertyNameConstant, Kind: PropertyKindLengthQuantity, Required: true},
				{Name: obstimePropertyNameConstant, Kind: PropertyKindTimestamp},
			},
		},
	}
}

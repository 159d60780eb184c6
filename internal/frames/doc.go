// Package frames defines the serialized attribute records for solar
// coordinate frames.
//
// HelioprojectiveRadial is the primary record: a required assumed solar
// radius, an optional observer (either a free-form label or a nested
// HeliographicStonyhurst record), and an optional observation time. Records
// carry no behavior beyond validation and round-trip (de)serialization.
package frames

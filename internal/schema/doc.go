// Package schema registers the serialization contracts for coordinate frame
// records and validates generic documents against them.
//
// Each frame schema is a closed record: a fixed property set with per-property
// kinds and required flags. Validation aggregates every violation with its
// document path rather than stopping at the first failure, and recurses into
// structured observer references.
package schema

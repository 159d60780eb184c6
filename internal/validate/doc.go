// Package validate checks serialized frame documents against their
// registered schemas and exposes the validate CLI command.
package validate

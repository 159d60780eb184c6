// Package convert re-serializes frame documents between the supported
// encodings, validating the record before anything is written.
package convert

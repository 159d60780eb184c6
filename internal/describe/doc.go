// Package describe prints registered frame schema contracts.
package describe

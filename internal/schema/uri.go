package schema

import (
	"fmt"
	"strings"
)

const (
	uriSchemePrefixConstant        = "asdf://"
	uriPathSeparatorConstant       = "/"
	uriSchemasSegmentConstant      = "schemas"
	uriVersionSeparatorConstant    = "-"
	uriParseErrorTemplateConstant  = "%s: %s"
	invalidSchemaURIMessageConstant = "invalid schema URI"
	missingVersionMessageConstant   = "schema URI must carry a version suffix"
	uriTemplateConstant             = uriSchemePrefixConstant + "%s/%s/" + uriSchemasSegmentConstant + "/%s" + uriVersionSeparatorConstant + "%s"
)

// URI identifies a registered frame schema.
type URI struct {
	Authority    string
	Organization string
	Name         string
	Version      string
}

// URIParseError indicates a schema URI string could not be parsed.
type URIParseError struct {
	Input   string
	Message string
}

// Error describes the parse failure.
func (parseError URIParseError) Error() string {
	return fmt.Sprintf(uriParseErrorTemplateConstant, parseError.Input, parseError.Message)
}

// ParseURI converts a textual asdf:// schema identifier into a structured URI.
func ParseURI(text string) (URI, error) {
	trimmedText := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmedText, uriSchemePrefixConstant) {
		return URI{}, URIParseError{Input: text, Message: invalidSchemaURIMessageConstant}
	}

	pathSegments := strings.Split(strings.TrimPrefix(trimmedText, uriSchemePrefixConstant), uriPathSeparatorConstant)
	if len(pathSegments) != 4 || pathSegments[2] != uriSchemasSegmentConstant {
		return URI{}, URIParseError{Input: text, Message: invalidSchemaURIMessageConstant}
	}

	versionSeparatorIndex := strings.LastIndex(pathSegments[3], uriVersionSeparatorConstant)
	if versionSeparatorIndex <= 0 || versionSeparatorIndex == len(pathSegments[3])-1 {
		return URI{}, URIParseError{Input: text, Message: missingVersionMessageConstant}
	}

	parsedURI := URI{
		Authority:    pathSegments[0],
		Organization: pathSegments[1],
		Name:         pathSegments[3][:versionSeparatorIndex],
		Version:      pathSegments[3][versionSeparatorIndex+1:],
	}
	if len(parsedURI.Authority) == 0 || len(parsedURI.Organization) == 0 || len(parsedURI.Name) == 0 {
		return URI{}, URIParseError{Input: text, Message: invalidSchemaURIMessageConstant}
	}

	return parsedURI, nil
}

// String renders the canonical asdf:// identifier.
func (uri URI) String() string {
	return fmt.Sprintf(uriTemplateConstant, uri.Authority, uri.Organization, uri.Name, uri.Version)
}

package fileio

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	unsupportedWriteTemplateConstant = "writing %s documents is not supported"
	writeFileErrorTemplateConstant   = "failed to write %s: %w"
	yamlEncodeErrorTemplateConstant  = "failed to encode YAML document: %w"
	jsonEncodeErrorTemplateConstant  = "failed to encode JSON document: %w"
	asdfVersionHeaderLineConstant    = "#ASDF 1.0.0"
	asdfStandardHeaderLineConstant   = "#ASDF_STANDARD 1.6.0"
	yamlVersionDirectiveConstant     = "%YAML 1.1"
	documentStartMarkerConstant      = "---"
	documentEndLineConstant          = "...\n"
	verbatimTagTemplateConstant      = " !<%s>"
	writtenFilePermissionsConstant   = 0o644
	jsonWriteIndentConstant          = "  "
	jsonWritePrefixConstant          = ""
	trailingNewlineConstant          = "\n"
)

// UnsupportedWriteTypeError indicates a format the writer cannot produce.
type UnsupportedWriteTypeError struct {
	FileType FileType
}

// Error describes the unsupported write request.
func (writeError UnsupportedWriteTypeError) Error() string {
	return fmt.Sprintf(unsupportedWriteTemplateConstant, writeError.FileType)
}

// WriteDocument serializes a frame document to disk. The auto file type
// resolves from the path extension, and a .gz suffix gzip-compresses the
// output.
func WriteDocument(path string, document Document, fileType FileType) error {
	resolvedType := fileType
	if len(resolvedType) == 0 || resolvedType == FileTypeAuto {
		extensionType, extensionError := FileTypeForExtension(path)
		if extensionError != nil {
			return extensionError
		}
		resolvedType = extensionType
	}

	encodedDocument, encodeError := encodeDocument(document, resolvedType)
	if encodeError != nil {
		return encodeError
	}

	if strings.EqualFold(filepath.Ext(path), gzipExtensionConstant) {
		compressedDocument, compressError := compressGzip(encodedDocument)
		if compressError != nil {
			return compressError
		}
		encodedDocument = compressedDocument
	}

	if writeError := os.WriteFile(path, encodedDocument, writtenFilePermissionsConstant); writeError != nil {
		return fmt.Errorf(writeFileErrorTemplateConstant, path, writeError)
	}
	return nil
}

func encodeDocument(document Document, fileType FileType) ([]byte, error) {
	switch fileType {
	case FileTypeYAML:
		return encodeYAMLBody(document)
	case FileTypeJSON:
		return encodeJSONBody(document)
	case FileTypeASDF:
		return encodeASDFDocument(document)
	default:
		return nil, UnsupportedWriteTypeError{FileType: fileType}
	}
}

func encodeYAMLBody(document Document) ([]byte, error) {
	encodedBody, encodeError := yaml.Marshal(document.Body)
	if encodeError != nil {
		return nil, fmt.Errorf(yamlEncodeErrorTemplateConstant, encodeError)
	}
	return encodedBody, nil
}

func encodeJSONBody(document Document) ([]byte, error) {
	body := document.Body
	if len(document.Tag) > 0 {
		augmentedBody := make(map[string]any, len(body)+1)
		for propertyName, propertyValue := range body {
			augmentedBody[propertyName] = propertyValue
		}
		augmentedBody[jsonSchemaHintKeyConstant] = document.Tag
		body = augmentedBody
	}

	encodedBody, encodeError := json.MarshalIndent(body, jsonWritePrefixConstant, jsonWriteIndentConstant)
	if encodeError != nil {
		return nil, fmt.Errorf(jsonEncodeErrorTemplateConstant, encodeError)
	}
	return append(encodedBody, []byte(trailingNewlineConstant)...), nil
}

func encodeASDFDocument(document Document) ([]byte, error) {
	encodedBody, encodeError := encodeYAMLBody(document)
	if encodeError != nil {
		return nil, encodeError
	}

	headerLines := document.Header
	if len(headerLines) == 0 {
		headerLines = []string{asdfVersionHeaderLineConstant, asdfStandardHeaderLineConstant}
	}

	documentStartLine := documentStartMarkerConstant
	if len(document.Tag) > 0 {
		documentStartLine += fmt.Sprintf(verbatimTagTemplateConstant, document.Tag)
	}

	var output bytes.Buffer
	for _, headerLine := range headerLines {
		output.WriteString(headerLine)
		output.WriteString(trailingNewlineConstant)
	}
	output.WriteString(yamlVersionDirectiveConstant)
	output.WriteString(trailingNewlineConstant)
	output.WriteString(documentStartLine)
	output.WriteString(trailingNewlineConstant)
	output.Write(encodedBody)
	output.WriteString(documentEndLineConstant)
	return output.Bytes(), nil
}

func compressGzip(data []byte) ([]byte, error) {
	var compressed bytes.Buffer
	gzipWriter := gzip.NewWriter(&compressed)
	if _, writeError := gzipWriter.Write(data); writeError != nil {
		return nil, writeError
	}
	if closeError := gzipWriter.Close(); closeError != nil {
		return nil, closeError
	}
	return compressed.Bytes(), nil
}

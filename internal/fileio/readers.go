package fileio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	readerUnavailableTemplateConstant  = "no reader is available for %s documents"
	readFileErrorTemplateConstant      = "failed to read %s: %w"
	yamlDecodeErrorTemplateConstant    = "failed to decode YAML document: %w"
	jsonDecodeErrorTemplateConstant    = "failed to decode JSON document: %w"
	commentLinePrefixConstant          = "#"
	documentEndMarkerConstant          = "\n..."
	lineSeparatorConstant              = "\n"
	standardTagPrefixConstant          = "!!"
	verbatimTagOpenConstant            = "<"
	verbatimTagCloseConstant           = ">"
	shorthandTagPrefixConstant         = "!"
	jsonSchemaHintKeyConstant          = "$schema"
)

// Document is a decoded frame document together with its schema hint.
type Document struct {
	Body   map[string]any
	Tag    string
	Header []string
}

// ReaderUnavailableError indicates a recognized format has no reader shipped.
type ReaderUnavailableError struct {
	FileType FileType
}

// Error describes the missing reader.
func (readerError ReaderUnavailableError) Error() string {
	return fmt.Sprintf(readerUnavailableTemplateConstant, readerError.FileType)
}

type documentReader func(data []byte) (Document, error)

// Recognized formats map to readers; nil entries are recognized formats whose
// readers are not shipped, mirroring how detection distinguishes "unknown"
// from "known but unsupported".
var documentReaders = map[FileType]documentReader{
	FileTypeASDF: readASDFDocument,
	FileTypeYAML: readYAMLDocument,
	FileTypeJSON: readJSONDocument,
	FileTypeFITS: nil,
	FileTypeJP2:  nil,
	FileTypeHDF5: nil,
	FileTypeCDF:  nil,
}

// ReadDocument loads a frame document from disk, transparently decompressing
// gzip payloads and detecting the format unless one is given explicitly.
func ReadDocument(path string, explicitType FileType) (Document, FileType, error) {
	rawData, readError := os.ReadFile(path)
	if readError != nil {
		return Document{}, FileType(""), fmt.Errorf(readFileErrorTemplateConstant, path, readError)
	}

	data := rawData
	if bytes.HasPrefix(data, gzipMagicBytes) {
		decompressed, decompressError := decompressGzip(data)
		if decompressError != nil {
			return Document{}, FileType(""), decompressError
		}
		data = decompressed
	}

	fileType := explicitType
	if len(fileType) == 0 || fileType == FileTypeAuto {
		detectedType, detectionError := DetectFileType(data)
		if detectionError == nil {
			fileType = detectedType
		} else {
			extensionType, extensionError := FileTypeForExtension(path)
			if extensionError != nil {
				return Document{}, FileType(""), detectionError
			}
			fileType = extensionType
		}
	}

	reader, readerResolutionError := resolveReader(fileType)
	if readerResolutionError != nil {
		return Document{}, fileType, readerResolutionError
	}

	document, decodeError := reader(data)
	if decodeError != nil {
		return Document{}, fileType, decodeError
	}
	return document, fileType, nil
}

// ReadDocumentHeader loads only the leading comment header of a document.
func ReadDocumentHeader(path string) ([]string, error) {
	document, _, readError := ReadDocument(path, FileTypeAuto)
	if readError != nil {
		return nil, readError
	}
	return document.Header, nil
}

func resolveReader(fileType FileType) (documentReader, error) {
	reader, formatRecognized := documentReaders[fileType]
	if !formatRecognized {
		return nil, UnrecognizedFileTypeError{Detail: string(fileType)}
	}
	if reader == nil {
		return nil, ReaderUnavailableError{FileType: fileType}
	}
	return reader, nil
}

func readASDFDocument(data []byte) (Document, error) {
	headerLines, yamlSource := splitASDFHeader(data)

	document, decodeError := readYAMLDocument(yamlSource)
	if decodeError != nil {
		return Document{}, decodeError
	}
	document.Header = headerLines
	return document, nil
}

func splitASDFHeader(data []byte) ([]string, []byte) {
	headerLines := make([]string, 0)
	remaining := data

	for {
		lineEndIndex := bytes.Index(remaining, []byte(lineSeparatorConstant))
		if lineEndIndex == -1 {
			break
		}
		line := string(bytes.TrimRight(remaining[:lineEndIndex], "\r"))
		if !strings.HasPrefix(line, commentLinePrefixConstant) {
			break
		}
		headerLines = append(headerLines, line)
		remaining = remaining[lineEndIndex+1:]
	}

	// ASDF files may append binary blocks after the document end marker.
	if endMarkerIndex := bytes.Index(remaining, []byte(documentEndMarkerConstant)); endMarkerIndex != -1 {
		remaining = remaining[:endMarkerIndex+1]
	}

	return headerLines, remaining
}

func readYAMLDocument(data []byte) (Document, error) {
	var rootNode yaml.Node
	if decodeError := yaml.Unmarshal(data, &rootNode); decodeError != nil {
		return Document{}, fmt.Errorf(yamlDecodeErrorTemplateConstant, decodeError)
	}
	if len(rootNode.Content) == 0 {
		return Document{Body: map[string]any{}}, nil
	}

	payloadNode := rootNode.Content[0]
	schemaTag := extractCustomTag(payloadNode)
	if len(schemaTag) > 0 {
		clearCustomTags(payloadNode)
	}

	var body map[string]any
	if decodeError := payloadNode.Decode(&body); decodeError != nil {
		return Document{}, fmt.Errorf(yamlDecodeErrorTemplateConstant, decodeError)
	}

	return Document{Body: body, Tag: schemaTag}, nil
}

func readJSONDocument(data []byte) (Document, error) {
	var body map[string]any
	if decodeError := json.Unmarshal(data, &body); decodeError != nil {
		return Document{}, fmt.Errorf(jsonDecodeErrorTemplateConstant, decodeError)
	}

	schemaTag := ""
	if hintValue, hintPresent := body[jsonSchemaHintKeyConstant]; hintPresent {
		if hintText, hintIsString := hintValue.(string); hintIsString {
			schemaTag = hintText
			delete(body, jsonSchemaHintKeyConstant)
		}
	}

	return Document{Body: body, Tag: schemaTag}, nil
}

func extractCustomTag(node *yaml.Node) string {
	if len(node.Tag) == 0 || strings.HasPrefix(node.Tag, standardTagPrefixConstant) {
		return ""
	}
	tag := strings.TrimPrefix(node.Tag, shorthandTagPrefixConstant)
	tag = strings.TrimPrefix(tag, verbatimTagOpenConstant)
	tag = strings.TrimSuffix(tag, verbatimTagCloseConstant)
	return tag
}

func clearCustomTags(node *yaml.Node) {
	if len(node.Tag) > 0 && !strings.HasPrefix(node.Tag, standardTagPrefixConstant) {
		node.Tag = ""
	}
	for _, childNode := range node.Content {
		clearCustomTags(childNode)
	}
}

package fileio

import (
	"bytes"
	"compress/gzip"
	"encoding/hex"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	asdfHeaderPrefixConstant               = "#ASDF"
	fitsProbeLengthConstant                = 80
	hdf5ProbeLengthConstant                = 8
	cdfProbeLengthConstant                 = 4
	unrecognizedFileTypeTemplateConstant   = "unrecognized file type: %s"
	noMagicBytesMessageConstant            = "no known magic bytes or extension matched"
	gzipDecompressErrorTemplateConstant    = "failed to decompress gzip payload: %w"
	extensionSeparatorConstant             = "."
	gzipExtensionConstant                  = ".gz"
)

// FileType identifies a supported or recognized document format.
type FileType string

// File types recognized by detection. Only ASDF, YAML, and JSON have readers;
// the remaining types are recognized so they fail with a precise error.
const (
	FileTypeAuto FileType = FileType("auto")
	FileTypeASDF FileType = FileType("asdf")
	FileTypeYAML FileType = FileType("yaml")
	FileTypeJSON FileType = FileType("json")
	FileTypeFITS FileType = FileType("fits")
	FileTypeJP2  FileType = FileType("jp2")
	FileTypeHDF5 FileType = FileType("hdf5")
	FileTypeCDF  FileType = FileType("cdf")
)

// UnrecognizedFileTypeError indicates no known format matched the input.
type UnrecognizedFileTypeError struct {
	Detail string
}

// Error describes the detection failure.
func (detectionError UnrecognizedFileTypeError) Error() string {
	return fmt.Sprintf(unrecognizedFileTypeTemplateConstant, detectionError.Detail)
}

var (
	gzipMagicBytes  = []byte{0x1f, 0x8b, 0x08}
	hdf5MagicBytes  = []byte{0x89, 'H', 'D', 'F', '\r', '\n', 0x1a, '\n'}
	jp2SignatureOne = []byte{0x00, 0x00, 0x00, 0x0c, 'j', 'P', ' ', ' ', 0x0d, 0x0a, 0x87, 0x0a}
	jp2SignatureTwo = []byte{0x00, 0x00, 0x00, 0x0c, 'j', 'P', 0x1a, 0x1a, 0x0d, 0x0a, 0x87, 0x0a}

	cdfMagicNumbers = map[string]struct{}{
		"cdf30001": {},
		"cdf26002": {},
		"0000ffff": {},
	}

	fitsHeaderCardPattern = regexp.MustCompile(`^[A-Z0-9_]{0,8} *=`)

	knownExtensionTypes = map[string]FileType{
		".asdf": FileTypeASDF,
		".yaml": FileTypeYAML,
		".yml":  FileTypeYAML,
		".json": FileTypeJSON,
		".fits": FileTypeFITS,
		".fts":  FileTypeFITS,
		".jp2":  FileTypeJP2,
	}
)

// DetectFileType inspects the leading bytes of a document and reports its
// format. Gzip payloads are transparently decompressed before detection.
func DetectFileType(data []byte) (FileType, error) {
	probe := data
	if bytes.HasPrefix(probe, gzipMagicBytes) {
		decompressed, decompressError := decompressGzip(probe)
		if decompressError != nil {
			return FileType(""), decompressError
		}
		probe = decompressed
	}

	if bytes.HasPrefix(probe, []byte(asdfHeaderPrefixConstant)) {
		return FileTypeASDF, nil
	}

	if len(probe) >= hdf5ProbeLengthConstant && bytes.Equal(probe[:hdf5ProbeLengthConstant], hdf5MagicBytes) {
		return FileTypeHDF5, nil
	}

	if bytes.HasPrefix(probe, jp2SignatureOne) || bytes.HasPrefix(probe, jp2SignatureTwo) {
		return FileTypeJP2, nil
	}

	if len(probe) >= cdfProbeLengthConstant {
		if _, cdfMagicKnown := cdfMagicNumbers[hex.EncodeToString(probe[:cdfProbeLengthConstant])]; cdfMagicKnown {
			return FileTypeCDF, nil
		}
	}

	fitsProbe := probe
	if len(fitsProbe) > fitsProbeLengthConstant {
		fitsProbe = fitsProbe[:fitsProbeLengthConstant]
	}
	if fitsHeaderCardPattern.Match(fitsProbe) {
		return FileTypeFITS, nil
	}

	trimmedProbe := bytes.TrimLeft(probe, " \t\r\n")
	if len(trimmedProbe) > 0 && (trimmedProbe[0] == '{' || trimmedProbe[0] == '[') {
		return FileTypeJSON, nil
	}

	return FileType(""), UnrecognizedFileTypeError{Detail: noMagicBytesMessageConstant}
}

// FileTypeForExtension resolves a file type from the path's extension,
// ignoring a trailing .gz suffix.
func FileTypeForExtension(path string) (FileType, error) {
	normalizedPath := path
	if strings.EqualFold(filepath.Ext(normalizedPath), gzipExtensionConstant) {
		normalizedPath = strings.TrimSuffix(normalizedPath, filepath.Ext(normalizedPath))
	}

	extension := strings.ToLower(filepath.Ext(normalizedPath))
	if fileType, extensionKnown := knownExtensionTypes[extension]; extensionKnown {
		return fileType, nil
	}
	return FileType(""), UnrecognizedFileTypeError{Detail: path}
}

func decompressGzip(data []byte) ([]byte, error) {
	gzipReader, readerError := gzip.NewReader(bytes.NewReader(data))
	if readerError != nil {
		return nil, fmt.Errorf(gzipDecompressErrorTemplateConstant, readerError)
	}
	defer gzipReader.Close()

	decompressed, readError := io.ReadAll(gzipReader)
	if readError != nil {
		return nil, fmt.Errorf(gzipDecompressErrorTemplateConstant, readError)
	}
	return decompressed, nil
}

// Package fileio reads and writes serialized frame documents.
//
// It detects file types from magic bytes (ASDF comment header, gzip
// signature, FITS header cards, JPEG 2000, HDF5, and CDF magics) with an
// extension-table fallback, then dispatches to the matching document reader.
// Formats that are recognized but have no reader shipped surface a
// ReaderUnavailableError instead of being misread.
package fileio

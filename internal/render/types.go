// Package render turns a project's ordered sections into a downloadable
// binary office file. Markdown assembly happens in-process; the binary
// formats themselves are delegated to pandoc.
package render

import "errors"

// MIME labels for the two supported output kinds.
const (
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimePPTX = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
)

// Result contains the export output.
type Result struct {
	Data     []byte
	Filename string
	MimeType string
}

var (
	// ErrDependencyMissing indicates the pandoc binary is unavailable.
	ErrDependencyMissing = errors.New("render dependency missing")
	// ErrUnsupportedDocType indicates a document kind the renderer cannot produce.
	ErrUnsupportedDocType = errors.New("unsupported document type")
)

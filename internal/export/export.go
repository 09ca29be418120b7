// Package export prints the rendered portfolio page to PDF through
// headless Chrome, for the downloadable CV endpoint.
package export

import "errors"

// Result is the finished export, ready to send as an attachment.
type Result struct {
	Data     []byte
	Filename string
	MimeType string
}

// ErrPDFDependencyMissing indicates no Chromium binary is installed.
var ErrPDFDependencyMissing = errors.New("export pdf dependency missing")

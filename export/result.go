// ABOUTME: Export result and downloadable artifact types
// ABOUTME: Derives row counts from raw CSV text

package export

import "strings"

// CSVMIMEType is the content type attached to downloaded exports
const CSVMIMEType = "text/csv;charset=utf-8;"

// Result is what a successful export displays
type Result struct {
	CSVData  string // Raw response body
	Filename string // From content-disposition, or DefaultFilename
	RowCount int    // Lines in CSVData minus the header row
}

// Artifact is a file handed to a Downloader
type Artifact struct {
	Name     string
	MIMEType string
	Data     []byte
}

// NewResult builds a Result from a response body and derived filename
func NewResult(csvData, filename string) Result {
	return Result{
		CSVData:  csvData,
		Filename: filename,
		RowCount: CountRows(csvData),
	}
}

// CountRows returns the number of data rows, excluding the header line
func CountRows(csvData string) int {
	return len(strings.Split(strings.TrimSpace(csvData), "\n")) - 1
}

// Artifact returns the downloadable file for this result.
// Data is the exact response body.
func (r Result) Artifact() Artifact {
	return Artifact{
		Name:     r.Filename,
		MIMEType: CSVMIMEType,
		Data:     []byte(r.CSVData),
	}
}

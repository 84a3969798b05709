package domain

// ExportFile is a built spreadsheet ready to be written as a download
// attachment by the HTTP layer.
type ExportFile struct {
	Filename string
	Content  []byte
}

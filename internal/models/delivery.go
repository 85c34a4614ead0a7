package models

import "fmt"

const (
	ArchiveFilename = "converted_images.zip"
	ArchiveMimeType = "application/zip"
)

// DeliveryResult is what goes back to the caller: either a single converted
// image or an archive holding all of them.
type DeliveryResult struct {
	Filename string
	Data     []byte
	MimeType string
	Archived bool
	// Entries lists the delivered filenames in order.
	Entries []string
}

type BatchResult struct {
	Delivery  *DeliveryResult
	FileCount int
	TargetDPI int
}

func (r *BatchResult) Message() string {
	return fmt.Sprintf("%d file(s) converted to %d DPI", r.FileCount, r.TargetDPI)
}

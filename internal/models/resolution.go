package models

const (
	ResolutionSourceJFIF = "jfif"
	ResolutionSourceEXIF = "exif"
	ResolutionSourcePHYs = "phys"
	ResolutionSourceNone = "none"
)

// ResolutionInfo describes the resolution tag currently stored in an upload.
type ResolutionInfo struct {
	Filename string `json:"filename"`
	Format   string `json:"format"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	XDPI     int    `json:"x_dpi,omitempty"`
	YDPI     int    `json:"y_dpi,omitempty"`
	Source   string `json:"source"`
}

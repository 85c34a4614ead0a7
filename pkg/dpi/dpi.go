// Package dpi reads and writes the resolution tag of encoded JPEG and PNG
// images without touching the pixel data.
//
// JPEG files carry the tag in a JFIF APP0 segment (dots per inch), PNG
// files in a pHYs chunk (pixels per metre).
package dpi

import (
	"bytes"
	"errors"
	"math"
)

// MaxDensity is the largest value a JFIF density field can hold.
const MaxDensity = 0xFFFF

const metresPerInch = 0.0254

var (
	ErrNotJPEG          = errors.New("data is not a JPEG stream")
	ErrNotPNG           = errors.New("data is not a PNG stream")
	ErrUnknownFormat    = errors.New("unrecognised image container")
	ErrNoResolution     = errors.New("no resolution tag found")
	ErrDensityRange     = errors.New("density out of range")
	ErrTruncatedSegment = errors.New("truncated segment")
)

// Resolution is a horizontal/vertical density pair in dots per inch.
type Resolution struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Uniform returns a Resolution with the same density on both axes.
func Uniform(v int) Resolution {
	return Resolution{X: v, Y: v}
}

func (r Resolution) valid() bool {
	return r.X > 0 && r.Y > 0 && r.X <= MaxDensity && r.Y <= MaxDensity
}

// Set writes res into data, dispatching on the container signature.
func Set(data []byte, res Resolution) ([]byte, error) {
	switch {
	case IsJPEG(data):
		return SetJPEG(data, res)
	case IsPNG(data):
		return SetPNG(data, res)
	default:
		return nil, ErrUnknownFormat
	}
}

// Read returns the resolution stored in data, dispatching on the container
// signature.
func Read(data []byte) (Resolution, error) {
	switch {
	case IsJPEG(data):
		return ReadJPEG(data)
	case IsPNG(data):
		return ReadPNG(data)
	default:
		return Resolution{}, ErrUnknownFormat
	}
}

func IsJPEG(data []byte) bool {
	return len(data) >= 3 && data[0] == markerPrefix && data[1] == markerSOI && data[2] == markerPrefix
}

func IsPNG(data []byte) bool {
	return bytes.HasPrefix(data, pngSignature)
}

func dpiToPPM(v int) uint32 {
	return uint32(math.Round(float64(v) / metresPerInch))
}

func ppmToDPI(v uint32) int {
	return int(math.Round(float64(v) * metresPerInch))
}

func dpcmToDPI(v uint16) int {
	return int(math.Round(float64(v) * 2.54))
}

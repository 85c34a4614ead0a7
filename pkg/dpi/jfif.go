package dpi

import (
	"encoding/binary"
	"fmt"
)

const (
	markerPrefix = 0xFF
	markerSOI    = 0xD8
	markerEOI    = 0xD9
	markerSOS    = 0xDA
	markerAPP0   = 0xE0

	jfifSegmentLen = 16

	unitsInch = 1
	unitsCm   = 2
)

var jfifIdent = []byte("JFIF\x00")

// SetJPEG returns a copy of data whose JFIF APP0 segment records res in dots
// per inch. An APP0 segment directly after SOI is rewritten in place,
// otherwise a new one is inserted there.
func SetJPEG(data []byte, res Resolution) ([]byte, error) {
	if !IsJPEG(data) {
		return nil, ErrNotJPEG
	}
	if !res.valid() {
		return nil, fmt.Errorf("%w: %dx%d", ErrDensityRange, res.X, res.Y)
	}

	if hasJFIFAt(data, 2) {
		out := make([]byte, len(data))
		copy(out, data)
		out[13] = unitsInch
		binary.BigEndian.PutUint16(out[14:16], uint16(res.X))
		binary.BigEndian.PutUint16(out[16:18], uint16(res.Y))
		return out, nil
	}

	seg := jfifSegment(res)
	out := make([]byte, 0, len(data)+len(seg))
	out = append(out, data[:2]...)
	out = append(out, seg...)
	out = append(out, data[2:]...)
	return out, nil
}

// ReadJPEG returns the density of the first JFIF APP0 segment found before
// the start of scan.
func ReadJPEG(data []byte) (Resolution, error) {
	if !IsJPEG(data) {
		return Resolution{}, ErrNotJPEG
	}

	i := 2
	for i+4 <= len(data) {
		if data[i] != markerPrefix {
			return Resolution{}, fmt.Errorf("%w: expected marker at offset %d", ErrTruncatedSegment, i)
		}
		marker := data[i+1]
		if marker == markerPrefix {
			// fill byte
			i++
			continue
		}
		if marker == markerEOI || marker == markerSOS {
			break
		}
		if marker == 0x01 || (marker >= 0xD0 && marker <= 0xD7) {
			i += 2
			continue
		}

		length := int(binary.BigEndian.Uint16(data[i+2 : i+4]))
		if length < 2 || i+2+length > len(data) {
			return Resolution{}, fmt.Errorf("%w: marker 0x%02X", ErrTruncatedSegment, marker)
		}

		if marker == markerAPP0 && hasJFIFAt(data, i) {
			return jfifResolution(data[i:])
		}
		i += 2 + length
	}

	return Resolution{}, ErrNoResolution
}

func hasJFIFAt(data []byte, i int) bool {
	if i+2+jfifSegmentLen > len(data) {
		return false
	}
	if data[i] != markerPrefix || data[i+1] != markerAPP0 {
		return false
	}
	if int(binary.BigEndian.Uint16(data[i+2:i+4])) < jfifSegmentLen {
		return false
	}
	return string(data[i+4:i+9]) == string(jfifIdent)
}

// seg starts at the APP0 marker.
func jfifResolution(seg []byte) (Resolution, error) {
	x := binary.BigEndian.Uint16(seg[12:14])
	y := binary.BigEndian.Uint16(seg[14:16])

	switch seg[11] {
	case unitsInch:
		return Resolution{X: int(x), Y: int(y)}, nil
	case unitsCm:
		return Resolution{X: dpcmToDPI(x), Y: dpcmToDPI(y)}, nil
	default:
		// aspect ratio only
		return Resolution{}, ErrNoResolution
	}
}

func jfifSegment(res Resolution) []byte {
	seg := make([]byte, 2+jfifSegmentLen)
	seg[0] = markerPrefix
	seg[1] = markerAPP0
	binary.BigEndian.PutUint16(seg[2:4], jfifSegmentLen)
	copy(seg[4:9], jfifIdent)
	seg[9] = 1 // version 1.01
	seg[10] = 1
	seg[11] = unitsInch
	binary.BigEndian.PutUint16(seg[12:14], uint16(res.X))
	binary.BigEndian.PutUint16(seg[14:16], uint16(res.Y))
	// no thumbnail
	return seg
}

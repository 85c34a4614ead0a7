package dpi

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
)

const (
	chunkIHDR = "IHDR"
	chunkPHYs = "pHYs"
	chunkIDAT = "IDAT"
	chunkIEND = "IEND"

	physDataLen = 9
	unitMetre   = 1
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

type pngChunk struct {
	typ   string
	start int // offset of the length field
	end   int // offset just past the CRC
	data  []byte
}

// SetPNG returns a copy of data with a single pHYs chunk recording res,
// placed directly after IHDR. Any existing pHYs chunk is dropped.
func SetPNG(data []byte, res Resolution) ([]byte, error) {
	if !IsPNG(data) {
		return nil, ErrNotPNG
	}
	if !res.valid() {
		return nil, fmt.Errorf("%w: %dx%d", ErrDensityRange, res.X, res.Y)
	}

	chunks, err := pngChunks(data)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 || chunks[0].typ != chunkIHDR {
		return nil, fmt.Errorf("%w: IHDR must be the first chunk", ErrNotPNG)
	}

	phys := physChunk(res)
	out := make([]byte, 0, len(data)+len(phys))
	out = append(out, pngSignature...)
	for _, c := range chunks {
		if c.typ == chunkPHYs {
			continue
		}
		out = append(out, data[c.start:c.end]...)
		if c.typ == chunkIHDR {
			out = append(out, phys...)
		}
	}
	return out, nil
}

// ReadPNG returns the density recorded in the pHYs chunk. Chunks whose unit
// is unspecified only carry an aspect ratio and are reported as missing.
func ReadPNG(data []byte) (Resolution, error) {
	if !IsPNG(data) {
		return Resolution{}, ErrNotPNG
	}

	chunks, err := pngChunks(data)
	if err != nil {
		return Resolution{}, err
	}

	for _, c := range chunks {
		if c.typ == chunkIDAT || c.typ == chunkIEND {
			break
		}
		if c.typ != chunkPHYs {
			continue
		}
		if len(c.data) != physDataLen {
			return Resolution{}, fmt.Errorf("%w: pHYs length %d", ErrTruncatedSegment, len(c.data))
		}
		if c.data[8] != unitMetre {
			return Resolution{}, ErrNoResolution
		}
		return Resolution{
			X: ppmToDPI(binary.BigEndian.Uint32(c.data[0:4])),
			Y: ppmToDPI(binary.BigEndian.Uint32(c.data[4:8])),
		}, nil
	}

	return Resolution{}, ErrNoResolution
}

func pngChunks(data []byte) ([]pngChunk, error) {
	var chunks []pngChunk

	i := len(pngSignature)
	for i < len(data) {
		if i+8 > len(data) {
			return nil, fmt.Errorf("%w: chunk header at offset %d", ErrTruncatedSegment, i)
		}
		length := int(binary.BigEndian.Uint32(data[i : i+4]))
		typ := string(data[i+4 : i+8])
		end := i + 8 + length + 4
		if length < 0 || end > len(data) {
			return nil, fmt.Errorf("%w: %s chunk", ErrTruncatedSegment, typ)
		}

		chunks = append(chunks, pngChunk{
			typ:   typ,
			start: i,
			end:   end,
			data:  data[i+8 : i+8+length],
		})
		i = end

		if typ == chunkIEND {
			break
		}
	}

	return chunks, nil
}

func physChunk(res Resolution) []byte {
	chunk := make([]byte, 4+4+physDataLen+4)
	binary.BigEndian.PutUint32(chunk[0:4], physDataLen)
	copy(chunk[4:8], chunkPHYs)
	binary.BigEndian.PutUint32(chunk[8:12], dpiToPPM(res.X))
	binary.BigEndian.PutUint32(chunk[12:16], dpiToPPM(res.Y))
	chunk[16] = unitMetre
	binary.BigEndian.PutUint32(chunk[17:21], crc32.ChecksumIEEE(chunk[4:17]))
	return chunk
}

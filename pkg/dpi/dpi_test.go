package dpi

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{uint8(x * 60), uint8(y * 80), 90, 255})
		}
	}
	return img
}

func encodePNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage()))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, testImage(), &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

func TestSetJPEG_InsertsJFIF(t *testing.T) {
	src := encodeJPEG(t)

	_, err := ReadJPEG(src)
	require.ErrorIs(t, err, ErrNoResolution)

	out, err := SetJPEG(src, Uniform(300))
	require.NoError(t, err)
	assert.Len(t, out, len(src)+18)

	res, err := ReadJPEG(out)
	require.NoError(t, err)
	assert.Equal(t, Resolution{X: 300, Y: 300}, res)

	_, err = jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err, "output must remain a valid JPEG")
}

func TestSetJPEG_RewritesExistingJFIF(t *testing.T) {
	first, err := SetJPEG(encodeJPEG(t), Uniform(72))
	require.NoError(t, err)

	second, err := SetJPEG(first, Resolution{X: 600, Y: 1200})
	require.NoError(t, err)
	assert.Len(t, second, len(first))

	res, err := ReadJPEG(second)
	require.NoError(t, err)
	assert.Equal(t, Resolution{X: 600, Y: 1200}, res)

	// source untouched
	res, err = ReadJPEG(first)
	require.NoError(t, err)
	assert.Equal(t, Uniform(72), res)
}

func TestReadJPEG_Centimetres(t *testing.T) {
	out, err := SetJPEG(encodeJPEG(t), Uniform(118))
	require.NoError(t, err)
	out[13] = unitsCm

	res, err := ReadJPEG(out)
	require.NoError(t, err)
	assert.Equal(t, Uniform(300), res)
}

func TestSetPNG_InsertsPHYsAfterIHDR(t *testing.T) {
	src := encodePNG(t)

	_, err := ReadPNG(src)
	require.ErrorIs(t, err, ErrNoResolution)

	out, err := SetPNG(src, Uniform(150))
	require.NoError(t, err)

	chunks, err := pngChunks(out)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(chunks), 3)
	assert.Equal(t, chunkIHDR, chunks[0].typ)
	assert.Equal(t, chunkPHYs, chunks[1].typ)

	res, err := ReadPNG(out)
	require.NoError(t, err)
	assert.Equal(t, Uniform(150), res)

	decoded, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err, "output must remain a valid PNG")
	assert.Equal(t, image.Rect(0, 0, 4, 3), decoded.Bounds())
}

func TestSetPNG_ReplacesExistingPHYs(t *testing.T) {
	first, err := SetPNG(encodePNG(t), Uniform(96))
	require.NoError(t, err)

	second, err := SetPNG(first, Uniform(300))
	require.NoError(t, err)
	assert.Len(t, second, len(first))

	chunks, err := pngChunks(second)
	require.NoError(t, err)
	count := 0
	for _, c := range chunks {
		if c.typ == chunkPHYs {
			count++
		}
	}
	assert.Equal(t, 1, count)

	res, err := ReadPNG(second)
	require.NoError(t, err)
	assert.Equal(t, Uniform(300), res)
}

func TestRoundTripAcrossRange(t *testing.T) {
	jpg := encodeJPEG(t)
	pngData := encodePNG(t)

	for v := 72; v <= 1200; v++ {
		out, err := Set(jpg, Uniform(v))
		require.NoError(t, err)
		res, err := Read(out)
		require.NoError(t, err)
		require.Equal(t, Uniform(v), res, "jpeg dpi %d", v)

		out, err = Set(pngData, Uniform(v))
		require.NoError(t, err)
		res, err = Read(out)
		require.NoError(t, err)
		require.Equal(t, Uniform(v), res, "png dpi %d", v)
	}
}

func TestSet_Errors(t *testing.T) {
	_, err := Set([]byte("not an image"), Uniform(300))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = SetJPEG(encodePNG(t), Uniform(300))
	assert.ErrorIs(t, err, ErrNotJPEG)

	_, err = SetPNG(encodeJPEG(t), Uniform(300))
	assert.ErrorIs(t, err, ErrNotPNG)

	_, err = SetJPEG(encodeJPEG(t), Uniform(0))
	assert.ErrorIs(t, err, ErrDensityRange)

	_, err = SetPNG(encodePNG(t), Uniform(MaxDensity+1))
	assert.ErrorIs(t, err, ErrDensityRange)

	truncated := encodePNG(t)
	_, err = SetPNG(truncated[:20], Uniform(300))
	assert.ErrorIs(t, err, ErrTruncatedSegment)
}

package converter

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/phambaophuc/dpi-converter/internal/models"
	"github.com/phambaophuc/dpi-converter/pkg/dpi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{
				R: uint8((x * 7) ^ (y * 3)),
				G: uint8(x * y),
				B: uint8(255 - x*4),
				A: 255,
			})
		}
	}
	return img
}

func pngBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func jpegBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}))
	return buf.Bytes()
}

func TestConvert_PNG(t *testing.T) {
	src := sampleImage(32, 24)
	input := models.InputImage{Filename: "a.png", Data: pngBytes(t, src)}
	original := append([]byte(nil), input.Data...)

	out, err := NewConverter().Convert(input, models.ConversionSettings{TargetDPI: 150})
	require.NoError(t, err)

	assert.Equal(t, "a.png", out.Filename)
	assert.Equal(t, models.FormatPNG, out.Format)
	assert.Equal(t, "image/png", out.MimeType)
	assert.Zero(t, out.Quality)
	assert.Equal(t, original, input.Data, "input must not be mutated")

	res, err := dpi.ReadPNG(out.Data)
	require.NoError(t, err)
	assert.Equal(t, dpi.Resolution{X: 150, Y: 150}, res)

	decoded, err := png.Decode(bytes.NewReader(out.Data))
	require.NoError(t, err)
	require.Equal(t, src.Bounds(), decoded.Bounds())
	for y := 0; y < 24; y++ {
		for x := 0; x < 32; x++ {
			want := src.NRGBAAt(x, y)
			got := color.NRGBAModel.Convert(decoded.At(x, y)).(color.NRGBA)
			require.Equal(t, want, got, "pixel %d,%d", x, y)
		}
	}
}

func TestConvert_JPEG(t *testing.T) {
	input := models.InputImage{Filename: "photo.JPG", Data: jpegBytes(t, sampleImage(40, 30))}

	out, err := NewConverter().Convert(input, models.ConversionSettings{TargetDPI: 300, Optimize: true})
	require.NoError(t, err)

	assert.Equal(t, "photo.JPG", out.Filename)
	assert.Equal(t, models.FormatJPEG, out.Format)
	assert.Equal(t, "image/jpeg", out.MimeType)
	assert.Equal(t, QualityOptimized, out.Quality)

	res, err := dpi.ReadJPEG(out.Data)
	require.NoError(t, err)
	assert.Equal(t, dpi.Uniform(300), res)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(out.Data))
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, 30, cfg.Height)
}

func TestConvert_OptimizeShrinksJPEG(t *testing.T) {
	input := models.InputImage{Filename: "big.jpeg", Data: jpegBytes(t, sampleImage(128, 96))}
	c := NewConverter()

	full, err := c.Convert(input, models.ConversionSettings{TargetDPI: 300})
	require.NoError(t, err)
	optimized, err := c.Convert(input, models.ConversionSettings{TargetDPI: 300, Optimize: true})
	require.NoError(t, err)

	assert.Equal(t, QualityFull, full.Quality)
	assert.Equal(t, QualityOptimized, optimized.Quality)
	assert.LessOrEqual(t, len(optimized.Data), len(full.Data))
}

func TestConvert_OptimizeIgnoredForPNG(t *testing.T) {
	input := models.InputImage{Filename: "b.png", Data: pngBytes(t, sampleImage(16, 16))}
	c := NewConverter()

	plain, err := c.Convert(input, models.ConversionSettings{TargetDPI: 96})
	require.NoError(t, err)
	optimized, err := c.Convert(input, models.ConversionSettings{TargetDPI: 96, Optimize: true})
	require.NoError(t, err)

	assert.Equal(t, plain.Data, optimized.Data)
}

func TestConvert_ExtensionWinsOverContent(t *testing.T) {
	// PNG bytes behind a .jpg name come out as JPEG
	input := models.InputImage{Filename: "mislabeled.jpg", Data: pngBytes(t, sampleImage(8, 8))}

	out, err := NewConverter().Convert(input, models.ConversionSettings{TargetDPI: 72})
	require.NoError(t, err)

	assert.Equal(t, models.FormatJPEG, out.Format)
	assert.Equal(t, "image/jpeg", out.MimeType)
	assert.True(t, dpi.IsJPEG(out.Data))

	// and JPEG bytes behind any other name come out as PNG
	input = models.InputImage{Filename: "scan.tiff", Data: jpegBytes(t, sampleImage(8, 8))}
	out, err = NewConverter().Convert(input, models.ConversionSettings{TargetDPI: 72})
	require.NoError(t, err)
	assert.Equal(t, models.FormatPNG, out.Format)
	assert.True(t, dpi.IsPNG(out.Data))
}

func TestConvert_DecodeError(t *testing.T) {
	for _, data := range [][]byte{nil, []byte("definitely not an image")} {
		_, err := NewConverter().Convert(
			models.InputImage{Filename: "broken.png", Data: data},
			models.ConversionSettings{TargetDPI: 300},
		)

		var decodeErr *models.DecodeError
		require.True(t, errors.As(err, &decodeErr))
		assert.Equal(t, "broken.png", decodeErr.Filename)
		assert.Contains(t, err.Error(), "broken.png")
	}
}

func TestConvert_RejectsInvalidDPI(t *testing.T) {
	input := models.InputImage{Filename: "a.png", Data: pngBytes(t, sampleImage(2, 2))}

	for _, v := range []int{0, -1, dpi.MaxDensity + 1} {
		_, err := NewConverter().Convert(input, models.ConversionSettings{TargetDPI: v})
		var rangeErr *models.RangeError
		assert.True(t, errors.As(err, &rangeErr), "dpi %d", v)
	}
}

func TestJPEGQuality(t *testing.T) {
	assert.Equal(t, 85, JPEGQuality(true))
	assert.Equal(t, 100, JPEGQuality(false))
}

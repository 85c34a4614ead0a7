package inspector

import (
	"math"

	"github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
	"github.com/phambaophuc/dpi-converter/pkg/dpi"
)

const resolutionUnitCentimetre = 3

// exifResolution reads XResolution/YResolution from the root IFD of an
// embedded EXIF block.
func exifResolution(data []byte) (dpi.Resolution, bool) {
	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil {
		return dpi.Resolution{}, false
	}

	im := exifcommon.NewIfdMapping()
	if err := exifcommon.LoadStandardIfds(im); err != nil {
		return dpi.Resolution{}, false
	}
	ti := exif.NewTagIndex()

	_, index, err := exif.Collect(im, ti, rawExif)
	if err != nil || index.RootIfd == nil {
		return dpi.Resolution{}, false
	}

	x, okX := rationalTag(index.RootIfd, "XResolution")
	y, okY := rationalTag(index.RootIfd, "YResolution")
	if !okX || !okY || x <= 0 || y <= 0 {
		return dpi.Resolution{}, false
	}

	if unitTag(index.RootIfd) == resolutionUnitCentimetre {
		x *= 2.54
		y *= 2.54
	}

	return dpi.Resolution{X: int(math.Round(x)), Y: int(math.Round(y))}, true
}

func rationalTag(ifd *exif.Ifd, name string) (float64, bool) {
	tags, err := ifd.FindTagWithName(name)
	if err != nil || len(tags) == 0 {
		return 0, false
	}

	val, err := tags[0].Value()
	if err != nil {
		return 0, false
	}

	rats, ok := val.([]exifcommon.Rational)
	if !ok || len(rats) == 0 || rats[0].Denominator == 0 {
		return 0, false
	}
	return float64(rats[0].Numerator) / float64(rats[0].Denominator), true
}

// unitTag returns ResolutionUnit, defaulting to inches as EXIF does.
func unitTag(ifd *exif.Ifd) uint16 {
	tags, err := ifd.FindTagWithName("ResolutionUnit")
	if err != nil || len(tags) == 0 {
		return 2
	}

	val, err := tags[0].Value()
	if err != nil {
		return 2
	}

	switch u := val.(type) {
	case []uint16:
		if len(u) > 0 {
			return u[0]
		}
	case uint16:
		return u
	}
	return 2
}

package models

import "fmt"

type Preset string

const (
	PresetPrint  Preset = "print"
	PresetWeb    Preset = "web"
	PresetCustom Preset = "custom"
)

const (
	PrintDPI         = 300
	WebDPI           = 96
	DefaultCustomDPI = 300
	MinDPI           = 72
	MaxDPI           = 1200
)

// ConversionSettings are chosen once per request and shared by every image
// in the batch.
type ConversionSettings struct {
	TargetDPI int  `json:"target_dpi"`
	Optimize  bool `json:"optimize"`
}

// NewConversionSettings resolves a preset into settings. customDPI is only
// consulted for PresetCustom, where zero means "not given" and selects
// DefaultCustomDPI.
func NewConversionSettings(preset Preset, customDPI int, optimize bool) (ConversionSettings, error) {
	var dpi int

	switch preset {
	case PresetPrint, "":
		dpi = PrintDPI
	case PresetWeb:
		dpi = WebDPI
	case PresetCustom:
		dpi = customDPI
		if dpi == 0 {
			dpi = DefaultCustomDPI
		}
		if dpi < MinDPI || dpi > MaxDPI {
			return ConversionSettings{}, &RangeError{Value: dpi, Min: MinDPI, Max: MaxDPI}
		}
	default:
		return ConversionSettings{}, fmt.Errorf("%w: %q", ErrInvalidPreset, preset)
	}

	return ConversionSettings{TargetDPI: dpi, Optimize: optimize}, nil
}

type PresetInfo struct {
	Name  Preset `json:"name"`
	Label string `json:"label"`
	DPI   int    `json:"dpi,omitempty"`
}

type PresetsResponse struct {
	Presets []PresetInfo `json:"presets"`
	Default Preset       `json:"default"`
	Min     int          `json:"min_dpi"`
	Max     int          `json:"max_dpi"`
}

func AvailablePresets() PresetsResponse {
	return PresetsResponse{
		Presets: []PresetInfo{
			{Name: PresetPrint, Label: "Print (300 DPI)", DPI: PrintDPI},
			{Name: PresetWeb, Label: "Web (96 DPI)", DPI: WebDPI},
			{Name: PresetCustom, Label: "Custom", DPI: DefaultCustomDPI},
		},
		Default: PresetPrint,
		Min:     MinDPI,
		Max:     MaxDPI,
	}
}

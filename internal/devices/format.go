package devices

import (
	"github.com/smazurov/spincam/pkg/machinevision"
	"github.com/smazurov/spincam/pkg/spinnaker"
)

// ToEncoding maps a native pixel format to its canonical encoding.
// Bayer, YUV, YCbCr, 3D coordinate and unknown formats map to
// EncodingUnknown; Bayer 8-bit frames are demosaiced before they get here.
func ToEncoding(format spinnaker.PixelFormat) machinevision.PixelEncoding {
	switch format {
	case spinnaker.Mono1p,
		spinnaker.Mono2p,
		spinnaker.Mono4p,
		spinnaker.Mono8,
		spinnaker.Mono8s,
		spinnaker.Mono10,
		spinnaker.Mono10p,
		spinnaker.Mono12,
		spinnaker.Mono12p,
		spinnaker.Mono14,
		spinnaker.Mono16:
		return machinevision.EncodingGray

	case spinnaker.RGBa8,
		spinnaker.RGBa10,
		spinnaker.RGBa10p,
		spinnaker.RGBa12,
		spinnaker.RGBa12p,
		spinnaker.RGBa14,
		spinnaker.RGBa16:
		return machinevision.EncodingRGBA

	case spinnaker.RGB8,
		spinnaker.RGB10,
		spinnaker.RGB10p,
		spinnaker.RGB10p32,
		spinnaker.RGB12,
		spinnaker.RGB12p,
		spinnaker.RGB14,
		spinnaker.RGB16,
		spinnaker.RGB565p:
		return machinevision.EncodingRGB

	case spinnaker.BGRa8,
		spinnaker.BGRa10,
		spinnaker.BGRa10p,
		spinnaker.BGRa12,
		spinnaker.BGRa12p,
		spinnaker.BGRa14,
		spinnaker.BGRa16:
		return machinevision.EncodingBGRA

	case spinnaker.BGR8,
		spinnaker.BGR10,
		spinnaker.BGR10p,
		spinnaker.BGR12,
		spinnaker.BGR12p,
		spinnaker.BGR14,
		spinnaker.BGR16,
		spinnaker.BGR565p:
		return machinevision.EncodingBGR

	// Single color planes are delivered as gray.
	case spinnaker.R8, spinnaker.R10, spinnaker.R12, spinnaker.R16,
		spinnaker.G8, spinnaker.G10, spinnaker.G12, spinnaker.G16,
		spinnaker.B8, spinnaker.B10, spinnaker.B12, spinnaker.B16:
		return machinevision.EncodingGray

	default:
		return machinevision.EncodingUnknown
	}
}

// needsDemosaic reports whether format is converted to RGB8 before mapping.
func needsDemosaic(format spinnaker.PixelFormat) bool {
	return format == spinnaker.BayerRG8 || format == spinnaker.BayerBG8
}

// significantBits returns the sample depth of unpacked formats that store
// fewer bits than their 16-bit container, or 0 when the container is full.
func significantBits(format spinnaker.PixelFormat) int {
	switch format {
	case spinnaker.Mono10, spinnaker.R10, spinnaker.G10, spinnaker.B10,
		spinnaker.RGB10, spinnaker.RGBa10, spinnaker.BGR10, spinnaker.BGRa10:
		return 10
	case spinnaker.Mono12, spinnaker.R12, spinnaker.G12, spinnaker.B12,
		spinnaker.RGB12, spinnaker.RGBa12, spinnaker.BGR12, spinnaker.BGRa12:
		return 12
	case spinnaker.Mono14, spinnaker.RGB14, spinnaker.RGBa14, spinnaker.BGR14, spinnaker.BGRa14:
		return 14
	default:
		return 0
	}
}

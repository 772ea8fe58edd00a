package devices

import (
	"testing"

	"github.com/smazurov/spincam/pkg/machinevision"
	"github.com/smazurov/spincam/pkg/spinnaker"
)

func TestToEncoding(t *testing.T) {
	tests := []struct {
		format spinnaker.PixelFormat
		want   machinevision.PixelEncoding
	}{
		{spinnaker.Mono8, machinevision.EncodingGray},
		{spinnaker.Mono1p, machinevision.EncodingGray},
		{spinnaker.Mono12p, machinevision.EncodingGray},
		{spinnaker.Mono16, machinevision.EncodingGray},
		{spinnaker.R8, machinevision.EncodingGray},
		{spinnaker.G12, machinevision.EncodingGray},
		{spinnaker.B16, machinevision.EncodingGray},
		{spinnaker.RGB8, machinevision.EncodingRGB},
		{spinnaker.RGB10p32, machinevision.EncodingRGB},
		{spinnaker.RGB565p, machinevision.EncodingRGB},
		{spinnaker.RGBa8, machinevision.EncodingRGBA},
		{spinnaker.RGBa16, machinevision.EncodingRGBA},
		{spinnaker.BGR8, machinevision.EncodingBGR},
		{spinnaker.BGR565p, machinevision.EncodingBGR},
		{spinnaker.BGRa8, machinevision.EncodingBGRA},
		{spinnaker.BGRa12p, machinevision.EncodingBGRA},
		{spinnaker.BayerRG8, machinevision.EncodingUnknown},
		{spinnaker.BayerBG8, machinevision.EncodingUnknown},
		{spinnaker.BayerGB12p, machinevision.EncodingUnknown},
		{spinnaker.YUV422_8, machinevision.EncodingUnknown},
		{spinnaker.YCbCr411_8, machinevision.EncodingUnknown},
		{spinnaker.Coord3D_ABC32f, machinevision.EncodingUnknown},
		{spinnaker.Mono32f, machinevision.EncodingUnknown},
		{"NotAPixelFormat", machinevision.EncodingUnknown},
		{"", machinevision.EncodingUnknown},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			got := ToEncoding(tt.format)
			if got != tt.want {
				t.Errorf("ToEncoding(%q) = %s, want %s", tt.format, got, tt.want)
			}
			if again := ToEncoding(tt.format); again != got {
				t.Errorf("ToEncoding(%q) not deterministic: %s then %s", tt.format, got, again)
			}
		})
	}
}

func TestNeedsDemosaic(t *testing.T) {
	for _, f := range []spinnaker.PixelFormat{spinnaker.BayerRG8, spinnaker.BayerBG8} {
		if !needsDemosaic(f) {
			t.Errorf("needsDemosaic(%s) = false", f)
		}
	}
	for _, f := range []spinnaker.PixelFormat{spinnaker.BayerGR8, spinnaker.BayerRG16, spinnaker.Mono8, spinnaker.RGB8} {
		if needsDemosaic(f) {
			t.Errorf("needsDemosaic(%s) = true", f)
		}
	}
}

func TestSignificantBits(t *testing.T) {
	tests := []struct {
		format spinnaker.PixelFormat
		want   int
	}{
		{spinnaker.Mono8, 0},
		{spinnaker.Mono10, 10},
		{spinnaker.Mono12, 12},
		{spinnaker.Mono12p, 0},
		{spinnaker.Mono14, 14},
		{spinnaker.Mono16, 0},
		{spinnaker.RGB12, 12},
		{spinnaker.BGRa14, 14},
		{spinnaker.RGB16, 0},
	}
	for _, tt := range tests {
		if got := significantBits(tt.format); got != tt.want {
			t.Errorf("significantBits(%q) = %d, want %d", tt.format, got, tt.want)
		}
	}
}

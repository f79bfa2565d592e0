package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestToGray_Luma(t *testing.T) {
	tests := []struct {
		name string
		c    color.Color
		want uint8
	}{
		{"white", color.RGBA{255, 255, 255, 255}, 255},
		{"black", color.RGBA{0, 0, 0, 255}, 0},
		{"red", color.RGBA{255, 0, 0, 255}, 76},
		{"green", color.RGBA{0, 255, 0, 255}, 150},
		{"blue", color.RGBA{0, 0, 255, 255}, 29},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gray := ToGray(solidImage(4, 4, tt.c), GrayOptions{})
			if got := gray.GrayAt(2, 2).Y; absDiff(got, tt.want) > 1 {
				t.Errorf("got %d, want %d (+/-1)", got, tt.want)
			}
		})
	}
}

func TestToGray_GrayPassthrough(t *testing.T) {
	src := rowImage(20, []uint8{1, 2, 3})
	if got := ToGray(src, GrayOptions{}); got != src {
		t.Error("an unadjusted *image.Gray at the origin should be returned as is")
	}
}

func TestToGray_NormalizesBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 25, 15))
	gray := ToGray(src, GrayOptions{})
	if gray.Bounds().Min != (image.Point{}) {
		t.Errorf("bounds should start at the origin, got %v", gray.Bounds())
	}
	if gray.Bounds().Dx() != 20 || gray.Bounds().Dy() != 10 {
		t.Errorf("dimensions: got %dx%d, want 20x10", gray.Bounds().Dx(), gray.Bounds().Dy())
	}
}

func TestToGray_Lightness(t *testing.T) {
	white := ToGray(solidImage(4, 4, color.White), GrayOptions{Mode: LightnessMode})
	black := ToGray(solidImage(4, 4, color.Black), GrayOptions{Mode: LightnessMode})
	if white.GrayAt(0, 0).Y != 255 || black.GrayAt(0, 0).Y != 0 {
		t.Errorf("extremes: white=%d black=%d", white.GrayAt(0, 0).Y, black.GrayAt(0, 0).Y)
	}

	// Mid grey sRGB 128 is roughly L*=54, brighter than its luma value.
	mid := ToGray(solidImage(4, 4, color.RGBA{128, 128, 128, 255}), GrayOptions{Mode: LightnessMode})
	if v := mid.GrayAt(1, 1).Y; v < 130 || v > 145 {
		t.Errorf("mid grey lightness: got %d, want about 137", v)
	}
}

func TestToGray_Invert(t *testing.T) {
	gray := ToGray(solidImage(4, 4, color.RGBA{200, 200, 200, 255}), GrayOptions{Invert: true})
	if v := gray.GrayAt(0, 0).Y; absDiff(v, 55) > 1 {
		t.Errorf("inverted: got %d, want 55", v)
	}
}

func TestToGray_GammaBrightens(t *testing.T) {
	src := solidImage(4, 4, color.RGBA{100, 100, 100, 255})
	plain := ToGray(src, GrayOptions{}).GrayAt(0, 0).Y
	bright := ToGray(src, GrayOptions{Gamma: 2.2}).GrayAt(0, 0).Y
	if bright <= plain {
		t.Errorf("gamma 2.2 should brighten mid-tones: plain=%d gamma=%d", plain, bright)
	}
}

func TestToGray_ContrastSpreads(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.Set(0, 0, color.RGBA{90, 90, 90, 255})
	src.Set(1, 0, color.RGBA{170, 170, 170, 255})

	plain := ToGray(src, GrayOptions{})
	contrast := ToGray(src, GrayOptions{Contrast: 0.5})

	plainSpread := int(plain.GrayAt(1, 0).Y) - int(plain.GrayAt(0, 0).Y)
	spread := int(contrast.GrayAt(1, 0).Y) - int(contrast.GrayAt(0, 0).Y)
	if spread <= plainSpread {
		t.Errorf("contrast should widen the gap: plain=%d contrast=%d", plainSpread, spread)
	}
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}

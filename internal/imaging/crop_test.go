package imaging

import (
	"image"
	"image/color"
	"testing"
)

// quadrantImage is white with a black top-left quadrant.
func quadrantImage(w, h int) *image.RGBA {
	img := solidImage(w, h, color.White)
	for y := 0; y < h/2; y++ {
		for x := 0; x < w/2; x++ {
			img.Set(x, y, color.Black)
		}
	}
	return img
}

func TestFraming_Zero(t *testing.T) {
	img := quadrantImage(100, 60)
	got, err := Framing{}.Apply(img)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if got != image.Image(img) {
		t.Error("zero framing should return the image unchanged")
	}
}

func TestFraming_Region(t *testing.T) {
	img := quadrantImage(100, 60)

	tests := []struct {
		region    string
		wantW     int
		wantH     int
		wantBlack bool
	}{
		{"top-left", 50, 30, true},
		{"bottom-right", 50, 30, false},
		{"top-half", 100, 30, true},
		{"right-half", 50, 60, false},
		{"center", 50, 30, true},
	}

	for _, tt := range tests {
		t.Run(tt.region, func(t *testing.T) {
			got, err := Framing{Region: tt.region}.Apply(img)
			if err != nil {
				t.Fatalf("Apply failed: %v", err)
			}
			b := got.Bounds()
			if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("dimensions: got %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
			r, _, _, _ := got.At(b.Min.X, b.Min.Y).RGBA()
			if (r == 0) != tt.wantBlack {
				t.Errorf("top-left pixel black: got %v, want %v", r == 0, tt.wantBlack)
			}
		})
	}
}

func TestFraming_UnknownRegion(t *testing.T) {
	if _, err := (Framing{Region: "middle-ish"}).Apply(quadrantImage(10, 10)); err == nil {
		t.Error("expected error for unknown region")
	}
}

func TestFraming_Rect(t *testing.T) {
	img := quadrantImage(100, 60)

	got, err := Framing{Rect: image.Rect(40, 20, 90, 50)}.Apply(img)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if got.Bounds().Dx() != 50 || got.Bounds().Dy() != 30 {
		t.Errorf("dimensions: got %dx%d, want 50x30", got.Bounds().Dx(), got.Bounds().Dy())
	}

	if _, err := (Framing{Rect: image.Rect(50, 0, 120, 10)}).Apply(img); err == nil {
		t.Error("expected error for crop outside the image")
	}
}

func TestFraming_RegionThenRect(t *testing.T) {
	img := quadrantImage(100, 60)

	// Rect is relative to the bottom-right quadrant.
	got, err := Framing{Region: "bottom-right", Rect: image.Rect(0, 0, 20, 10)}.Apply(img)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if got.Bounds().Dx() != 20 || got.Bounds().Dy() != 10 {
		t.Errorf("dimensions: got %dx%d, want 20x10", got.Bounds().Dx(), got.Bounds().Dy())
	}
}

func TestFraming_Width(t *testing.T) {
	img := quadrantImage(100, 60)

	got, err := Framing{Width: 360}.Apply(img)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if got.Bounds().Dx() != 360 || got.Bounds().Dy() != 216 {
		t.Errorf("dimensions: got %dx%d, want 360x216", got.Bounds().Dx(), got.Bounds().Dy())
	}

	if _, err := (Framing{Width: -1}).Apply(img); err == nil {
		t.Error("expected error for negative width")
	}
}

func TestNamedRegion_OffsetBounds(t *testing.T) {
	r, err := NamedRegion(image.Rect(10, 20, 110, 80), "bottom-right")
	if err != nil {
		t.Fatal(err)
	}
	if r != image.Rect(60, 50, 110, 80) {
		t.Errorf("got %v", r)
	}

	for _, name := range Regions {
		if _, err := NamedRegion(image.Rect(0, 0, 10, 10), name); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

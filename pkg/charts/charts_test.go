package charts

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ifro-labs/ferro/pkg/calibration"
)

func testCalibration(t *testing.T) *calibration.Calibration {
	t.Helper()
	c, err := calibration.New("A", calibration.Dataset{
		Concentration: []float64{0, 0.1, 0.2, 0.4, 0.6, 0.8, 1},
		Absorbance:    []float64{0, 0.027, 0.045, 0.083, 0.132, 0.191, 0.222},
	}, true)
	if err != nil {
		t.Fatalf("calibration.New() error = %v", err)
	}
	return c
}

func TestNewCalibrationChart(t *testing.T) {
	c := testCalibration(t)
	ch := NewCalibrationChart(c.Dataset(), c.Fit())

	if len(ch.Measured.Points) != 7 || len(ch.Fitted.Points) != 7 {
		t.Fatalf("got %d measured and %d fitted points, want 7 each", len(ch.Measured.Points), len(ch.Fitted.Points))
	}
	for i, p := range ch.Fitted.Points {
		if p.Y != c.Fit().Beta*p.X {
			t.Fatalf("fitted point %d = %+v is not on the line", i, p)
		}
	}
	if ch.Measured.Points[6] != (Point{X: 1, Y: 0.222}) {
		t.Fatalf("measured point 6 = %+v", ch.Measured.Points[6])
	}
	if !strings.Contains(ch.Title, "R² = 0.998") {
		t.Fatalf("title %q does not show R²", ch.Title)
	}
}

func TestNewConcentrationChart(t *testing.T) {
	c := testCalibration(t)
	estimates, err := c.Estimate([]calibration.Sample{{Absorbance: 0.05}, {Absorbance: 0.1}, {Absorbance: 0.02}})
	if err != nil {
		t.Fatalf("Estimate() error = %v", err)
	}

	ch := NewConcentrationChart(estimates, c.Threshold())
	if ch.Threshold == nil || *ch.Threshold != calibration.SafetyThreshold {
		t.Fatalf("threshold = %v, want %v", ch.Threshold, calibration.SafetyThreshold)
	}
	if len(ch.Bars) != 3 {
		t.Fatalf("got %d bars, want 3", len(ch.Bars))
	}

	seen := map[string]bool{}
	for i, b := range ch.Bars {
		if b.Value != estimates[i].Concentration || b.Label != estimates[i].Label {
			t.Fatalf("bar %d = %+v does not match estimate %+v", i, b, estimates[i])
		}
		if !strings.HasPrefix(b.Color, "#") || len(b.Color) != 7 {
			t.Fatalf("bar %d colour %q is not a hex colour", i, b.Color)
		}
		seen[b.Color] = true
	}
	if len(seen) != 3 {
		t.Fatalf("bars share colours: %v", seen)
	}
}

func TestPaletteIsDeterministic(t *testing.T) {
	a, b := Palette(5), Palette(5)
	for i := range a {
		if a[i].Hex() != b[i].Hex() {
			t.Fatalf("palette differs at %d: %s != %s", i, a[i].Hex(), b[i].Hex())
		}
	}
	if len(Palette(0)) != 0 {
		t.Fatalf("Palette(0) should be empty")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"png", FormatPNG},
		{"SVG", FormatSVG},
		{"out/curve.png", FormatPNG},
		{".svg", FormatSVG},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil || got != tt.want {
			t.Fatalf("ParseFormat(%q) = %q, %v, want %q", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseFormat("gif"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("ParseFormat(gif) error = %v, want %v", err, ErrUnsupportedFormat)
	}
}

func TestRenderCalibration(t *testing.T) {
	c := testCalibration(t)
	ch := NewCalibrationChart(c.Dataset(), c.Fit())

	var png bytes.Buffer
	if err := RenderCalibration(&png, ch, FormatPNG, Size{}); err != nil {
		t.Fatalf("RenderCalibration(png) error = %v", err)
	}
	if !bytes.HasPrefix(png.Bytes(), []byte("\x89PNG")) {
		t.Fatalf("output is not a PNG")
	}

	var svg bytes.Buffer
	if err := RenderCalibration(&svg, ch, FormatSVG, Size{Width: 400, Height: 300}); err != nil {
		t.Fatalf("RenderCalibration(svg) error = %v", err)
	}
	if !strings.Contains(svg.String(), "<svg") {
		t.Fatalf("output is not an SVG")
	}
}

func TestRenderConcentrations(t *testing.T) {
	c := testCalibration(t)
	estimates, err := c.Estimate([]calibration.Sample{{Absorbance: 0.05}, {Absorbance: -0.01}, {Absorbance: 0.12}})
	if err != nil {
		t.Fatalf("Estimate() error = %v", err)
	}

	var buf bytes.Buffer
	if err := RenderConcentrations(&buf, NewConcentrationChart(estimates, c.Threshold()), FormatPNG, Size{}); err != nil {
		t.Fatalf("RenderConcentrations() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Fatalf("output is not a PNG")
	}

	if err := RenderConcentrations(&buf, ConcentrationChart{}, FormatPNG, Size{}); err == nil {
		t.Fatalf("RenderConcentrations() accepted a chart without bars")
	}
}

package charts

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Format is an image format charts can be rendered to.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ErrUnsupportedFormat is returned for image formats other than PNG and SVG.
var ErrUnsupportedFormat = errors.New("unsupported chart format")

// ParseFormat accepts "png", "svg" or a file name / extension ending in one.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(s)
	switch {
	case strings.HasSuffix(s, string(FormatPNG)):
		return FormatPNG, nil
	case strings.HasSuffix(s, string(FormatSVG)):
		return FormatSVG, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

func (f Format) provider() (chart.RendererProvider, error) {
	switch f {
	case FormatPNG:
		return chart.PNG, nil
	case FormatSVG:
		return chart.SVG, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(f))
}

// Size of a rendered chart in pixels.
type Size struct {
	Width  int
	Height int
}

var DefaultSize = Size{Width: 800, Height: 450}

func (s Size) orDefault() Size {
	if s.Width <= 0 {
		s.Width = DefaultSize.Width
	}
	if s.Height <= 0 {
		s.Height = DefaultSize.Height
	}
	return s
}

// pointStyle renders points only, no connecting line.
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    5,
		DotColor:    col,
	}
}

func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 2,
		StrokeColor: col,
	}
}

func toDrawing(c colorful.Color) drawing.Color {
	r, g, b := c.RGB255()
	return drawing.Color{R: r, G: g, B: b, A: 255}
}

func splitPoints(points []Point) (xs, ys []float64) {
	xs = make([]float64, len(points))
	ys = make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.X, p.Y
	}
	return xs, ys
}

func formatValue(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.2f", f)
	}
	return fmt.Sprint(v)
}

// upperBound pads the largest value so points do not touch the frame. It
// never returns zero, which go-chart rejects as a range.
func upperBound(values ...float64) float64 {
	m := 0.0
	for _, v := range values {
		m = math.Max(m, v)
	}
	if m == 0 {
		return 1
	}
	return m * 1.1
}

// RenderCalibration draws the calibration curve.
func RenderCalibration(w io.Writer, c CalibrationChart, format Format, size Size) error {
	provider, err := format.provider()
	if err != nil {
		return err
	}
	size = size.orDefault()

	mx, my := splitPoints(c.Measured.Points)
	fx, fy := splitPoints(c.Fitted.Points)

	graph := chart.Chart{
		Title:  c.Title,
		Width:  size.Width,
		Height: size.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: chart.XAxis{
			Name:           c.XAxis,
			Range:          &chart.ContinuousRange{Min: 0, Max: upperBound(mx...)},
			ValueFormatter: formatValue,
		},
		YAxis: chart.YAxis{
			Name:           c.YAxis,
			Range:          &chart.ContinuousRange{Min: 0, Max: upperBound(append(my, fy...)...)},
			ValueFormatter: formatValue,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    c.Measured.Name,
				XValues: mx,
				YValues: my,
				Style:   pointStyle(chart.ColorBlue),
			},
			chart.ContinuousSeries{
				Name:    c.Fitted.Name,
				XValues: fx,
				YValues: fy,
				Style:   lineStyle(chart.ColorRed),
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return graph.Render(provider, w)
}

// RenderConcentrations draws one bar per sample and the threshold line.
func RenderConcentrations(w io.Writer, c ConcentrationChart, format Format, size Size) error {
	provider, err := format.provider()
	if err != nil {
		return err
	}
	if len(c.Bars) == 0 {
		return errors.New("no concentrations to draw")
	}
	size = size.orDefault()

	values := make([]chart.Value, len(c.Bars))
	lo, all := 0.0, make([]float64, 0, len(c.Bars)+1)
	for i, b := range c.Bars {
		col, err := colorful.Hex(b.Color)
		if err != nil {
			col = Palette(len(c.Bars))[i]
		}
		values[i] = chart.Value{
			Label: b.Label,
			Value: b.Value,
			Style: chart.Style{
				FillColor:   toDrawing(col),
				StrokeColor: toDrawing(col),
			},
		}
		lo = math.Min(lo, b.Value)
		all = append(all, b.Value)
	}
	if c.Threshold != nil {
		all = append(all, *c.Threshold)
	}
	yRange := &chart.ContinuousRange{Min: lo, Max: upperBound(all...)}

	graph := chart.BarChart{
		Title:  c.Title,
		Width:  size.Width,
		Height: size.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16},
		},
		BarWidth: barWidth(size.Width, len(values)),
		YAxis: chart.YAxis{
			Name:           c.YAxis,
			Range:          yRange,
			ValueFormatter: formatValue,
		},
		Bars: values,
	}
	if c.Threshold != nil {
		graph.Elements = []chart.Renderable{thresholdLine(*c.Threshold, yRange.Min, yRange.Max)}
	}

	return graph.Render(provider, w)
}

func barWidth(width, n int) int {
	w := (width - 120) / (2 * n)
	if w < 8 {
		return 8
	}
	if w > 60 {
		return 60
	}
	return w
}

// thresholdLine draws a dashed red line across the plot area at value v.
func thresholdLine(v, min, max float64) chart.Renderable {
	return func(r chart.Renderer, canvasBox chart.Box, _ chart.Style) {
		y := canvasBox.Bottom - int(math.Round((v-min)/(max-min)*float64(canvasBox.Height())))

		r.SetStrokeColor(drawing.ColorRed)
		r.SetStrokeWidth(2)
		r.SetStrokeDashArray([]float64{6, 4})
		r.MoveTo(canvasBox.Left, y)
		r.LineTo(canvasBox.Right, y)
		r.Stroke()
	}
}

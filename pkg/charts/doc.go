// Package charts builds the chart-ready series shown next to a calibration
// (measured standards and the fitted line) and next to an estimation (one bar
// per sample and the potability threshold), and renders them as PNG or SVG.
//
// Series are plain data so they can be returned by the JSON API and drawn by
// any client; Render* functions draw them with go-chart.
package charts

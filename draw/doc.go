// Package draw renders extracted grids back onto images for visual
// inspection. Overlay paints the detected Full rows and columns as colored
// bands over the source, CellBoxes outlines the content cells, and
// SaveOverlay writes the result straight to a PNG file.
//
// All functions leave the source image untouched and return a fresh RGBA
// image. Colors are configurable per call through Config; the zero-value
// niceties of DefaultConfig give red rows, blue columns and gray cell
// boxes, which read well on scanned documents.
package draw

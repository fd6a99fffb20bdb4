// Package reader loads raster images and adapts them to the luminance
// field the extraction pipeline consumes. Open and Decode understand PNG,
// JPEG, GIF, TIFF and BMP; FromImage adapts an already decoded image.
//
// Every entry point converts to 8-bit grayscale up front, so the rest of
// the pipeline only ever sees a GrayField.
package reader

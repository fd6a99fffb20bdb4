// Package scan classifies the pixel rows and columns of a foreground mask.
//
// For every pixel row and every pixel column, the scanner computes the
// foreground ratio (foreground pixels divided by line length) and classifies
// the line as Full when the ratio exceeds 0.5, otherwise Empty. An ink rule
// line occupies the majority of its pixel line, so majority vote separates
// rule lines from content bands.
//
// Rows and columns are computed independently. When parallel execution is
// requested, the two axes run concurrently and the lines within each axis
// are fanned out across CPUs; every worker writes a disjoint slice of the
// result, so the output is bit-identical to the sequential computation.
package scan

// Package binarize converts luminance fields into boolean foreground masks
// using block-local adaptive thresholding.
//
// The image is partitioned into non-overlapping square blocks (edge blocks
// are truncated to the remaining pixels). Each block is thresholded
// independently with Otsu's method over the block's own histogram, which
// keeps the classification robust against gradual lighting changes across
// a scan. Pixels at or below the block's split value become foreground;
// everything else stays background.
//
// A block whose pixels all share one intensity has no meaningful split and
// classifies as all background, so blank regions and solid fills never
// manufacture spurious foreground.
//
// Thresholding is a pure function of its input: running it in parallel is
// a performance hint only and produces a bit-identical mask, because every
// block writes to a disjoint region of the output.
package binarize

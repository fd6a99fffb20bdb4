package grid

import "fmt"

// Defaults for Config. The block size matches the scale of typical rule
// lines and glyphs at common scan resolutions; the merge ratio suppresses
// runs below 80% of the mean run size of their kind.
const (
	DefaultThresholdBlockSize  = 12
	DefaultMergeThresholdRatio = 0.8

	// NewConfig clamps block sizes below this; a smaller block has too few
	// samples for a meaningful local threshold.
	minThresholdBlockSize = 3
)

// Config controls grid extraction.
type Config struct {
	// ThresholdBlockSize is the side length, in pixels, of the square
	// blocks used for adaptive thresholding. Larger blocks mean coarser
	// local regions. Must be positive.
	ThresholdBlockSize int

	// MergeThresholdRatio scales the noise-suppression threshold: a run
	// smaller than ratio × the mean run size of its kind is absorbed into
	// a neighbor. Must lie in (0, 1]. Larger values suppress more
	// aggressively.
	MergeThresholdRatio float64

	// EnableParallel allows concurrent execution of the binarization and
	// scanning stages. It is strictly a performance hint; results are
	// identical either way.
	EnableParallel bool
}

// DefaultConfig returns the default configuration: block size 12,
// merge ratio 0.8, parallel execution enabled.
func DefaultConfig() Config {
	return Config{
		ThresholdBlockSize:  DefaultThresholdBlockSize,
		MergeThresholdRatio: DefaultMergeThresholdRatio,
		EnableParallel:      true,
	}
}

// NewConfig builds a Config from explicit values, clamping the block size
// to the supported minimum of 3.
func NewConfig(blockSize int, mergeRatio float64, parallel bool) Config {
	return Config{
		ThresholdBlockSize:  max(blockSize, minThresholdBlockSize),
		MergeThresholdRatio: mergeRatio,
		EnableParallel:      parallel,
	}
}

// Validate checks the configuration, returning an error wrapping
// ErrInvalidConfig when a field is out of range.
func (c Config) Validate() error {
	if c.ThresholdBlockSize < 1 {
		return fmt.Errorf("%w: threshold block size %d, must be positive", ErrInvalidConfig, c.ThresholdBlockSize)
	}
	if c.MergeThresholdRatio <= 0 || c.MergeThresholdRatio > 1 {
		return fmt.Errorf("%w: merge threshold ratio %v, must be in (0, 1]", ErrInvalidConfig, c.MergeThresholdRatio)
	}
	return nil
}

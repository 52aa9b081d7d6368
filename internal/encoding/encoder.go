// Package encoding turns text into fixed-length dense vectors for the
// recommendation engine. Two implementations exist: a local deterministic
// TF-IDF encoder and a hosted Gemini embedding encoder.
package encoding

import "context"

// Encoder maps text to fixed-length numeric vectors. Fit is called exactly
// once, at index build time, with the full corpus; implementations that need
// no fitting treat it as a no-op. After Fit returns, Encode and EncodeBatch
// must be safe for concurrent use and must return numerically identical
// vectors for identical input — the corpus index depends on this.
type Encoder interface {
	Fit(ctx context.Context, corpus []string) error
	Encode(ctx context.Context, text string) ([]float64, error)
	EncodeBatch(ctx context.Context, texts []string) ([][]float64, error)
	// Dims reports the vector dimensionality. For fitted encoders this is
	// only meaningful after Fit.
	Dims() int
	// Name identifies the encoder variant for logging and config.
	Name() string
	// DefaultThreshold is the minimum-similarity cutoff recommended for
	// this encoder's score distribution.
	DefaultThreshold() float64
}

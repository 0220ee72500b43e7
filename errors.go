package pagecluster

import (
	"errors"
	"fmt"

	"github.com/hupe1980/pagecluster/internal/kmeans"
)

var (
	// ErrInvalidConfig is returned by constructors for out-of-range settings.
	ErrInvalidConfig = errors.New("pagecluster: invalid configuration")

	// ErrNotFitted is returned by Classify when there are neither cluster
	// centers nor seed centers to compare against.
	ErrNotFitted = errors.New("pagecluster: no cluster centers yet")

	// ErrTooFewPoints is returned by a flush that would initialize centers
	// with k-means++ from fewer accepted points than clusters. The batch is
	// kept and retried on the next add.
	ErrTooFewPoints = kmeans.ErrTooFewPoints

	// ErrNoExemplars is returned when seeding from an empty exemplar list.
	ErrNoExemplars = errors.New("pagecluster: no exemplars")
)

// ErrDimensionMismatch indicates seed centers inconsistent with the
// requested number of clusters or with their own column count.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("pagecluster: dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

func invalidConfig(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var shape *kmeans.ErrSeedShape
	if errors.As(err, &shape) {
		return &ErrDimensionMismatch{Expected: shape.K, Actual: shape.Rows, cause: err}
	}
	if errors.Is(err, kmeans.ErrInvalidK) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return err
}

package segment

import (
	"fmt"

	"github.com/dshills/segments/internal/extent"
)

// ScanOption configures ScanUntil and ScanWhile.
type ScanOption func(*scanConfig)

type scanConfig struct {
	fence     int
	hasFence  bool
	maxLength int
	minLength int
}

// WithFence stops the scan at the relative offset limit; the result never
// extends past it.
func WithFence(limit int) ScanOption {
	return func(c *scanConfig) {
		c.fence = limit
		c.hasFence = true
	}
}

// WithMaxLength caps the length of the result.
func WithMaxLength(n int) ScanOption {
	return func(c *scanConfig) {
		c.maxLength = n
	}
}

// WithMinLength makes the scan fail with ErrOutOfRange when fewer than n
// elements are covered.
func WithMinLength(n int) ScanOption {
	return func(c *scanConfig) {
		c.minLength = n
	}
}

// ScanUntil returns the relative extent starting at start and running up to,
// not including, the first element m matches.
func (s Segment[T]) ScanUntil(start int, m Matcher[T], opts ...ScanOption) (extent.Extent, error) {
	return s.scan(start, m, false, opts)
}

// ScanWhile returns the relative extent starting at start and covering the run
// of elements m matches.
func (s Segment[T]) ScanWhile(start int, m Matcher[T], opts ...ScanOption) (extent.Extent, error) {
	return s.scan(start, m, true, opts)
}

func (s Segment[T]) scan(start int, m Matcher[T], want bool, opts []ScanOption) (extent.Extent, error) {
	cfg := scanConfig{maxLength: extent.Open}
	for _, opt := range opts {
		opt(&cfg)
	}
	if IsNilMatcher(m) || cfg.maxLength < 0 || cfg.minLength < 0 {
		return extent.Empty, fmt.Errorf("%w: scan matcher and length bounds", ErrInvalidArgument)
	}
	if err := s.Check(); err != nil {
		return extent.Empty, err
	}
	r := s.Extent()
	if start < 0 || start > r.Len() {
		return extent.Empty, fmt.Errorf("%w: scan start %d in view of length %d", ErrOutOfRange, start, r.Len())
	}

	limit := r.Len()
	if cfg.hasFence {
		if cfg.fence < start {
			return extent.Empty, fmt.Errorf("%w: fence %d before start %d", ErrOutOfRange, cfg.fence, start)
		}
		limit = min(limit, cfg.fence)
	}
	if cfg.maxLength < limit-start {
		limit = start + cfg.maxLength
	}

	i := start
	for i < limit && m.Match(s.backing.Get(r.Offset()+i)) == want {
		i++
	}
	if i-start < cfg.minLength {
		return extent.Empty, fmt.Errorf("%w: scan covered %d elements, need %d", ErrOutOfRange, i-start, cfg.minLength)
	}
	return extent.New(start, i-start), nil
}

package pagecluster

import (
	"fmt"

	"github.com/hupe1980/pagecluster/features"
	"github.com/hupe1980/pagecluster/htmlpage"
	"github.com/hupe1980/pagecluster/internal/dense"
)

// Sample is a raw exemplar page.
type Sample struct {
	URL  string
	Body string
}

// NewFromExemplars creates one cluster per exemplar page, centered on it.
//
// All exemplars are vectorized with the session's vectorizer (the one from
// WithVectorizer, or a fresh TagFrequency), so the session starts with the
// exemplars' vocabulary and Dimension equal to its size. WithSeedCenters is
// overridden.
func NewFromExemplars(pages []*htmlpage.Page, optFns ...Option) (*Clusterer, error) {
	if len(pages) == 0 {
		return nil, ErrNoExemplars
	}

	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}
	v := o.vectorizer
	if v == nil {
		v = features.NewTagFrequency()
	}

	vectors := make([]dense.Vector, len(pages))
	for i, p := range pages {
		vectors[i] = v.Vectorize(p)
	}

	dim := v.Dimension()
	rows := make([][]float32, len(vectors))
	for i, x := range vectors {
		rows[i] = x.Resize(dim)
	}

	opts := append(optFns[:len(optFns):len(optFns)], WithVectorizer(v), WithSeedCenters(rows))
	return New(len(pages), opts...)
}

// NewFromSamples parses raw exemplar samples and calls NewFromExemplars.
func NewFromSamples(samples []Sample, optFns ...Option) (*Clusterer, error) {
	if len(samples) == 0 {
		return nil, ErrNoExemplars
	}

	pages := make([]*htmlpage.Page, len(samples))
	for i, s := range samples {
		p, err := htmlpage.ParseString(s.URL, s.Body)
		if err != nil {
			return nil, fmt.Errorf("pagecluster: exemplar %d: %w", i, err)
		}
		pages[i] = p
	}

	return NewFromExemplars(pages, optFns...)
}

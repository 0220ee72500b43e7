package features

import (
	"github.com/hupe1980/pagecluster/htmlpage"
	"github.com/hupe1980/pagecluster/internal/dense"
)

// Vectorizer maps pages to feature vectors. The length of a returned vector
// is Dimension() at the time of the call and never decreases between calls.
type Vectorizer interface {
	Vectorize(page *htmlpage.Page) dense.Vector
	Dimension() int
}

// TagFrequency counts, per page, how often each token occurs among the
// open and self-closing tags. Unknown tokens are added to the vocabulary.
type TagFrequency struct {
	vocab *Vocabulary
}

// NewTagFrequency creates a vectorizer with an empty vocabulary.
func NewTagFrequency() *TagFrequency {
	return &TagFrequency{vocab: NewVocabulary()}
}

// Vocabulary returns the underlying vocabulary.
func (tf *TagFrequency) Vocabulary() *Vocabulary { return tf.vocab }

// Dimension returns the current vocabulary size.
func (tf *TagFrequency) Dimension() int { return tf.vocab.Len() }

// Vectorize returns the token counts of page.
func (tf *TagFrequency) Vectorize(page *htmlpage.Page) dense.Vector {
	var idx []int
	for f := range page.Tags() {
		idx = append(idx, tf.vocab.Add(NewToken(f.Tag, f.Classes())))
	}

	v := make(dense.Vector, tf.vocab.Len())
	for _, i := range idx {
		v[i]++
	}
	return v
}

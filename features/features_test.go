package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pagecluster/htmlpage"
	"github.com/hupe1980/pagecluster/internal/dense"
)

func page(t *testing.T, body string) *htmlpage.Page {
	t.Helper()
	p, err := htmlpage.ParseString("", body)
	require.NoError(t, err)
	return p
}

func TestToken_Canonical(t *testing.T) {
	a := NewToken("DIV", []string{"b", "a", "b"})
	b := NewToken("div", []string{"a", "b"})
	assert.Equal(t, a.Key(), b.Key())
	assert.Equal(t, "div a b", a.Key())
	assert.Equal(t, "p", NewToken("p", nil).Key())

	assert.Equal(t, a, ParseToken(a.Key()))
	assert.Equal(t, Token{}, ParseToken(""))
}

func TestVocabulary(t *testing.T) {
	v := NewVocabulary()
	assert.Equal(t, 0, v.Add(NewToken("div", nil)))
	assert.Equal(t, 1, v.Add(NewToken("div", []string{"x"})))
	assert.Equal(t, 0, v.Add(NewToken("div", nil)))
	assert.Equal(t, 2, v.Len())

	i, ok := v.Lookup(NewToken("div", []string{"x"}))
	assert.True(t, ok)
	assert.Equal(t, 1, i)
	_, ok = v.Lookup(NewToken("span", nil))
	assert.False(t, ok)

	tokens := v.Tokens()
	assert.Equal(t, []string{"div", "div x"}, tokens)

	w := NewVocabulary()
	w.Restore(tokens)
	assert.Equal(t, v.Tokens(), w.Tokens())
	i, ok = w.Lookup(NewToken("div", []string{"x"}))
	assert.True(t, ok)
	assert.Equal(t, 1, i)
}

func TestTagFrequency_Vectorize(t *testing.T) {
	tf := NewTagFrequency()

	v1 := tf.Vectorize(page(t, `<div class="a b"><p>x</p><p>y</p><br/></div>`))
	assert.Equal(t, dense.Vector{1, 2, 1}, v1)
	assert.Equal(t, 3, tf.Dimension())

	// Class order and duplicates collapse onto the same token.
	v2 := tf.Vectorize(page(t, `<div class="b a a"></div><span></span>`))
	assert.Equal(t, dense.Vector{1, 0, 0, 1}, v2)
	assert.Equal(t, []string{"div a b", "p", "br", "span"}, tf.Vocabulary().Tokens())
}

func TestTagFrequency_EmptyPage(t *testing.T) {
	tf := NewTagFrequency()
	tf.Vectorize(page(t, `<a></a>`))

	v := tf.Vectorize(page(t, `just text`))
	assert.Equal(t, dense.Vector{0}, v)
}

func TestTagFrequency_VocabularyNeverShrinks(t *testing.T) {
	tf := NewTagFrequency()
	bodies := []string{`<a></a>`, `<b></b><a></a>`, `<a></a>`, ``, `<i class="z"></i>`}

	prev := 0
	for _, b := range bodies {
		v := tf.Vectorize(page(t, b))
		assert.GreaterOrEqual(t, len(v), prev)
		assert.Equal(t, tf.Dimension(), len(v))
		prev = len(v)
	}
	assert.Equal(t, 3, prev)
}

package htmlpage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseString(t *testing.T) {
	p, err := ParseString("http://example.com/",
		`<!DOCTYPE html><html><body class="main  wide"><!-- c --><p>hi</p><br/></body></html>`)
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/", p.URL)

	kinds := make([]Kind, len(p.Fragments))
	for i, f := range p.Fragments {
		kinds[i] = f.Kind
	}
	assert.Equal(t, []Kind{
		Doctype, Open, Open, Comment, Open, Text, Close, SelfClosing, Close, Close,
	}, kinds)

	body := p.Fragments[2]
	assert.Equal(t, "body", body.Tag)
	assert.Equal(t, []string{"main", "wide"}, body.Classes())
	assert.Equal(t, "hi", p.Fragments[5].Data)
	assert.Equal(t, "br", p.Fragments[7].Tag)
}

func TestParse_LowerCasesNames(t *testing.T) {
	p, err := ParseString("", `<DIV CLASS="A b">x</DIV>`)
	require.NoError(t, err)

	f := p.Fragments[0]
	assert.Equal(t, "div", f.Tag)
	v, ok := f.Attr("class")
	assert.True(t, ok)
	assert.Equal(t, "A b", v)
}

func TestPage_Tags(t *testing.T) {
	p, err := ParseString("", `<ul><li>a</li><li>b</li></ul><img src="x"/>`)
	require.NoError(t, err)

	var names []string
	for f := range p.Tags() {
		names = append(names, f.Tag)
	}
	assert.Equal(t, []string{"ul", "li", "li", "img"}, names)

	n := 0
	for range p.Tags() {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestParse_RawText(t *testing.T) {
	p, err := ParseString("", `<script>if (a < b) { x() }</script>`)
	require.NoError(t, err)
	require.Len(t, p.Fragments, 3)
	assert.Equal(t, Text, p.Fragments[1].Kind)
	assert.Equal(t, "if (a < b) { x() }", p.Fragments[1].Data)
}

func TestParse_ReaderError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Parse("u", failingReader{boom})
	assert.ErrorIs(t, err, boom)
}

func TestFragment_NoClass(t *testing.T) {
	assert.Nil(t, Fragment{Kind: Open, Tag: "p"}.Classes())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "self-closing", SelfClosing.String())
	assert.True(t, Close.IsTag())
	assert.False(t, Text.IsTag())
}

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

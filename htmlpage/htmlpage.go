// Package htmlpage reads HTML documents into ordered fragment sequences.
//
// A Page keeps the markup as the tokenizer saw it: open, close and
// self-closing tags with their attributes, interleaved with text, comments
// and doctype declarations. No DOM is built, so malformed documents keep
// every tag they contain.
package htmlpage

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"golang.org/x/net/html"
)

// Kind classifies a fragment.
type Kind uint8

const (
	// Text is character data between tags.
	Text Kind = iota
	// Open is a start tag such as <div>.
	Open
	// Close is an end tag such as </div>.
	Close
	// SelfClosing is a tag such as <br/>.
	SelfClosing
	// Comment is an HTML comment.
	Comment
	// Doctype is a <!DOCTYPE> declaration.
	Doctype
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Open:
		return "open"
	case Close:
		return "close"
	case SelfClosing:
		return "self-closing"
	case Comment:
		return "comment"
	case Doctype:
		return "doctype"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// IsTag reports whether k is a tag kind.
func (k Kind) IsTag() bool {
	return k == Open || k == Close || k == SelfClosing
}

// Attr is a tag attribute. Keys are lower-cased.
type Attr struct {
	Key   string
	Value string
}

// Fragment is one piece of a page.
type Fragment struct {
	Kind Kind
	// Tag is the lower-cased element name for tag kinds.
	Tag   string
	Attrs []Attr
	// Data holds the content of text, comment and doctype fragments.
	Data string
}

// Attr returns the value of the attribute named key and whether it exists.
func (f Fragment) Attr(key string) (string, bool) {
	for _, a := range f.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// Classes returns the whitespace-separated values of the class attribute.
func (f Fragment) Classes() []string {
	v, ok := f.Attr("class")
	if !ok {
		return nil
	}
	return strings.Fields(v)
}

// Page is a parsed document.
type Page struct {
	URL       string
	Fragments []Fragment
}

// Tags yields the non-closing tag fragments (open and self-closing) in
// document order.
func (p *Page) Tags() iter.Seq[Fragment] {
	return func(yield func(Fragment) bool) {
		for _, f := range p.Fragments {
			if f.Kind != Open && f.Kind != SelfClosing {
				continue
			}
			if !yield(f) {
				return
			}
		}
	}
}

// Parse tokenizes the document read from r.
func Parse(url string, r io.Reader) (*Page, error) {
	z := html.NewTokenizer(r)
	p := &Page{URL: url}

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("htmlpage: parse %s: %w", url, err)
			}
			return p, nil
		}
		p.Fragments = append(p.Fragments, fragment(tt, z.Token()))
	}
}

// ParseString tokenizes an in-memory document.
func ParseString(url, body string) (*Page, error) {
	return Parse(url, strings.NewReader(body))
}

func fragment(tt html.TokenType, tok html.Token) Fragment {
	switch tt {
	case html.StartTagToken:
		return tagFragment(Open, tok)
	case html.EndTagToken:
		return tagFragment(Close, tok)
	case html.SelfClosingTagToken:
		return tagFragment(SelfClosing, tok)
	case html.CommentToken:
		return Fragment{Kind: Comment, Data: tok.Data}
	case html.DoctypeToken:
		return Fragment{Kind: Doctype, Data: tok.Data}
	default:
		return Fragment{Kind: Text, Data: tok.Data}
	}
}

func tagFragment(kind Kind, tok html.Token) Fragment {
	f := Fragment{Kind: kind, Tag: tok.Data}
	if len(tok.Attr) > 0 {
		f.Attrs = make([]Attr, len(tok.Attr))
		for i, a := range tok.Attr {
			f.Attrs[i] = Attr{Key: strings.ToLower(a.Key), Value: a.Val}
		}
	}
	return f
}

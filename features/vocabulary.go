package features

import (
	"slices"
	"strings"
)

// Token identifies an element by name and class set. Class order and
// duplicates do not matter.
type Token struct {
	Tag     string
	Classes []string
}

// NewToken builds the canonical token for tag and classes.
func NewToken(tag string, classes []string) Token {
	cs := slices.Clone(classes)
	slices.Sort(cs)
	cs = slices.Compact(cs)
	if len(cs) == 0 {
		cs = nil
	}
	return Token{Tag: strings.ToLower(tag), Classes: cs}
}

// Key returns the canonical string form: the tag followed by the sorted
// classes, separated by single spaces.
func (t Token) Key() string {
	if len(t.Classes) == 0 {
		return t.Tag
	}
	return t.Tag + " " + strings.Join(t.Classes, " ")
}

func (t Token) String() string { return t.Key() }

// ParseToken is the inverse of Token.Key.
func ParseToken(key string) Token {
	fields := strings.Fields(key)
	if len(fields) == 0 {
		return Token{}
	}
	return NewToken(fields[0], fields[1:])
}

// Vocabulary is an append-only, first-seen ordered token index.
type Vocabulary struct {
	index map[string]int
	keys  []string
}

// NewVocabulary creates an empty vocabulary.
func NewVocabulary() *Vocabulary {
	return &Vocabulary{index: make(map[string]int)}
}

// Len returns the number of known tokens.
func (v *Vocabulary) Len() int { return len(v.keys) }

// Lookup returns the index of t and whether it is known.
func (v *Vocabulary) Lookup(t Token) (int, bool) {
	i, ok := v.index[t.Key()]
	return i, ok
}

// Add returns the index of t, assigning the next free one if t is new.
func (v *Vocabulary) Add(t Token) int {
	key := t.Key()
	if i, ok := v.index[key]; ok {
		return i
	}
	i := len(v.keys)
	v.index[key] = i
	v.keys = append(v.keys, key)
	return i
}

// Tokens returns the canonical keys in index order.
func (v *Vocabulary) Tokens() []string {
	return slices.Clone(v.keys)
}

// Restore replaces the vocabulary with keys, assigned indices in order.
// Duplicate keys keep their first index.
func (v *Vocabulary) Restore(keys []string) {
	v.index = make(map[string]int, len(keys))
	v.keys = v.keys[:0]
	for _, k := range keys {
		v.Add(ParseToken(k))
	}
}

package testutil

import (
	"fmt"
	"strings"
)

// Repetition bounds for the group-specific blocks of a page. The upper
// bound stays below twice the lower one, so a page is always closer to any
// mean of its own group than to a page of another group.
const (
	minItems = 8
	maxItems = 14
)

// PageGroups generates groups x perGroup HTML bodies. Every group has its
// own set of element/class tokens; all pages share a header, navigation
// and footer.
func (r *RNG) PageGroups(groups, perGroup int) [][]string {
	out := make([][]string, groups)
	for g := range out {
		out[g] = make([]string, perGroup)
		for i := range out[g] {
			out[g][i] = r.Page(g)
		}
	}
	return out
}

// Page generates one page of group g.
func (r *RNG) Page(g int) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n<html><head><title>page</title>")
	b.WriteString(`<link rel="stylesheet" href="site.css"/></head><body>`)
	b.WriteString(`<div class="header"><ul class="nav">`)
	for range r.IntRange(3, 5) {
		b.WriteString(`<li class="nav-item"><a href="#">link</a></li>`)
	}
	b.WriteString(`</ul></div>`)

	fmt.Fprintf(&b, `<div class="content layout-%d">`, g)
	for range r.IntRange(minItems, maxItems) {
		fmt.Fprintf(&b, `<div class="g%d-item">`, g)
		fmt.Fprintf(&b, `<span class="g%d-meta">meta</span>`, g)
		fmt.Fprintf(&b, `<a class="g%d-link" href="#">item</a>`, g)
		b.WriteString(`</div>`)
	}
	b.WriteString(`</div>`)

	b.WriteString(`<div class="footer"><p>footer</p><br/></div></body></html>`)
	return b.String()
}

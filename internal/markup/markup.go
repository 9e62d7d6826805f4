// Package markup loads HTML documents and adapts their nodes for the menu,
// validation and table packages.
package markup

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/atomicstack/a11yfy/internal/menu"
)

// ErrNoMatch is returned when a selector finds nothing.
var ErrNoMatch = errors.New("selector matched nothing")

// Document is a parsed HTML page.
type Document struct {
	doc *goquery.Document
}

func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{doc: doc}, nil
}

func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Find runs a CSS selector over the whole document.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// Element returns the first node matching selector as a menu element.
func (d *Document) Element(selector string) (menu.Element, error) {
	sel := d.doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoMatch, selector)
	}
	return Wrap(sel), nil
}

// AppendToBody adds nodes at the end of <body>.
func (d *Document) AppendToBody(nodes ...*html.Node) {
	if len(nodes) == 0 {
		return
	}
	d.doc.Find("body").AppendNodes(nodes...)
}

// AppendStyle adds a <style> element carrying css to <body>.
func (d *Document) AppendStyle(css string) {
	if strings.TrimSpace(css) == "" {
		return
	}
	d.doc.Find("body").AppendHtml("<style>\n" + css + "</style>")
}

func (d *Document) Render(w io.Writer) error {
	for _, n := range d.doc.Nodes {
		if err := html.Render(w, n); err != nil {
			return fmt.Errorf("render html: %w", err)
		}
	}
	return nil
}

func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// Wrap adapts a selection (its first node) to menu.Element.
func Wrap(sel *goquery.Selection) menu.Element {
	return element{sel: sel.First()}
}

type element struct {
	sel *goquery.Selection
}

func (e element) Tag() string {
	return goquery.NodeName(e.sel)
}

func (e element) Children() []menu.Element {
	kids := e.sel.Children()
	out := make([]menu.Element, 0, kids.Length())
	kids.Each(func(_ int, s *goquery.Selection) {
		out = append(out, element{sel: s})
	})
	return out
}

func (e element) Text() string {
	if e.sel.Length() == 0 {
		return ""
	}
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				b.WriteString(c.Data)
			case html.ElementNode:
				if c.Data == "ul" {
					continue
				}
				walk(c)
			}
		}
	}
	walk(e.sel.Get(0))
	return b.String()
}

// Hidden reports the layout visibility authors express in markup: the
// hidden attribute or an inline display:none.
func (e element) Hidden() bool {
	if _, ok := e.sel.Attr("hidden"); ok {
		return true
	}
	style, _ := e.sel.Attr("style")
	style = strings.ReplaceAll(strings.ToLower(style), " ", "")
	return strings.Contains(style, "display:none")
}

func (e element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

func (e element) SetAttr(name, value string) {
	e.sel.SetAttr(name, value)
}

func (e element) AddClass(class string) {
	e.sel.AddClass(class)
}

func (e element) RemoveClass(class string) {
	e.sel.RemoveClass(class)
}

// SetHidden toggles the hidden attribute. Showing also drops an inline
// display:none so the item is laid out again.
func (e element) SetHidden(hidden bool) {
	if hidden {
		e.sel.SetAttr("hidden", "")
		return
	}
	e.sel.RemoveAttr("hidden")
	style, ok := e.sel.Attr("style")
	if !ok {
		return
	}
	var keep []string
	for _, decl := range strings.Split(style, ";") {
		norm := strings.ReplaceAll(strings.ToLower(decl), " ", "")
		if norm == "" || norm == "display:none" {
			continue
		}
		keep = append(keep, strings.TrimSpace(decl))
	}
	if len(keep) == 0 {
		e.sel.RemoveAttr("style")
		return
	}
	e.sel.SetAttr("style", strings.Join(keep, "; "))
}

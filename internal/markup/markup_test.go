package markup

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atomicstack/a11yfy/internal/announce"
	"github.com/atomicstack/a11yfy/internal/menu"
	"github.com/atomicstack/a11yfy/internal/names"
)

const page = `<html><body>
<ul id="nav">
  <li><a href="#file">File</a>
    <ul>
      <li><a href="#new">New</a></li>
      <li style="display: none"><a href="#gone">Gone</a></li>
    </ul>
  </li>
  <li hidden>Secret</li>
  <li><a href="#help">Help</a></li>
</ul>
<div id="not-a-list"></div>
</body></html>`

func TestMenuInitOnParsedDocument(t *testing.T) {
	doc, err := ParseString(page)
	require.NoError(t, err)

	root, err := doc.Element("#nav")
	require.NoError(t, err)
	w, err := menu.Init(root)
	require.NoError(t, err)

	require.Equal(t, 5, w.Tree().Len())
	file, _ := w.Tree().Node(w.Tree().TopLevelItems()[0])
	require.Equal(t, "File", file.Label)
	require.True(t, file.HasSubmenu)
	require.Equal(t, "#file", file.Href)

	secret, _ := w.Tree().Node(w.Tree().TopLevelItems()[1])
	require.True(t, secret.Hidden)
	gone, _ := w.Tree().Node(file.Children[1])
	require.True(t, gone.Hidden)

	out := doc.String()
	n := names.Default()
	require.Contains(t, out, `<ul id="nav" role="menubar" class="`+n.MenuLevel1+`">`)
	require.Contains(t, out, `role="menu" class="`+n.MenuLevel2+`"`)
	require.Contains(t, out, `<a href="#new" tabindex="-1">New</a>`)
	require.Contains(t, out, `aria-haspopup="true"`)
	require.Equal(t, 1, strings.Count(out, `tabindex="0"`))
}

func TestMenuInitOnNonListLeavesDocumentAlone(t *testing.T) {
	doc, err := ParseString(page)
	require.NoError(t, err)
	before := doc.String()

	root, err := doc.Element("#not-a-list")
	require.NoError(t, err)
	_, err = menu.Init(root)
	require.True(t, errors.Is(err, menu.ErrNotList))
	require.Equal(t, before, doc.String())
}

func TestElementMissingSelector(t *testing.T) {
	doc, err := ParseString(page)
	require.NoError(t, err)
	_, err = doc.Element("#missing")
	require.ErrorIs(t, err, ErrNoMatch)
}

func TestTextSkipsNestedLists(t *testing.T) {
	doc, err := ParseString(page)
	require.NoError(t, err)
	first := Wrap(doc.Find("#nav > li").First())
	require.Equal(t, "File", strings.TrimSpace(first.Text()))
}

func TestAppendRegionsAndStyle(t *testing.T) {
	doc, err := ParseString(page)
	require.NoError(t, err)

	a := announce.New(names.Default())
	a.Polite("ready")
	doc.AppendToBody(a.Nodes()...)
	doc.AppendStyle("td { display: block; }")
	doc.AppendStyle("  ")

	out := doc.String()
	require.Contains(t, out, `<p>ready</p>`)
	require.Contains(t, out, "<style>\ntd { display: block; }</style>")
	require.Equal(t, 1, strings.Count(out, "<style>"))
}

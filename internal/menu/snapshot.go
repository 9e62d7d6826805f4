package menu

import (
	"fmt"
	"strings"
)

// Visibility is the layout state of one item, addressed by its path.
type Visibility struct {
	Path   []int
	Hidden bool
}

// Snapshot reads item visibility from markup without annotating it. Paths
// follow the same numbering Init assigns.
func Snapshot(root Element) ([]Visibility, error) {
	if root == nil || !strings.EqualFold(root.Tag(), "ul") {
		return nil, fmt.Errorf("%w: snapshot", ErrNotList)
	}
	var out []Visibility
	var walk func(lists []Element, path []int)
	walk = func(lists []Element, path []int) {
		index := 0
		for _, list := range lists {
			for _, li := range childrenTagged(list, "li") {
				itemPath := append(append([]int(nil), path...), index)
				out = append(out, Visibility{Path: itemPath, Hidden: li.Hidden()})
				walk(childrenTagged(li, "ul"), itemPath)
				index++
			}
		}
	}
	walk([]Element{root}, nil)
	return out, nil
}

// Apply copies a snapshot onto the tree and returns how many paths
// resolved. Structure and focus state are left alone.
func (t *Tree) Apply(snapshot []Visibility) int {
	applied := 0
	for _, v := range snapshot {
		if t.SetHidden(v.Path, v.Hidden) {
			applied++
		}
	}
	return applied
}

package transform

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// Entry is one row of a Layout
type Entry struct {
	Node  Node
	Index int
	Depth int
}

// Parent returns the parent transform, or nil for a root
func (t *Transform) Parent() *Transform {
	return t.parent
}

// Children returns a copy of the ordered child list
func (t *Transform) Children() []*Transform {
	children := make([]*Transform, len(t.children))
	copy(children, t.children)

	return children
}

// Root returns the top-most ancestor
func (t *Transform) Root() *Transform {
	root := t
	for root.parent != nil {
		root = root.parent
	}

	return root
}

// isAncestorOf reports whether t is other or one of its ancestors
func (t *Transform) isAncestorOf(other *Transform) bool {
	for node := other; node != nil; node = node.parent {
		if node == t {
			return true
		}
	}

	return false
}

func (t *Transform) removeChild(child *Transform) bool {
	k := -1
	for i, c := range t.children {
		if c == child {
			k = i
			break
		}
	}

	if k == -1 {
		return false
	}

	t.children = append(t.children[:k], t.children[k+1:]...)
	child.parent = nil

	return true
}

// Attach appends nodes as children of t. The channels in keep stay
// unchanged in world space, the others keep their local values.
// A node already attached elsewhere is moved. Nodes already attached to t
// are left in place.
func (t *Transform) Attach(keep Keep, nodes ...Node) error {
	for _, node := range nodes {
		child := node.Local()
		if child.isAncestorOf(t) {
			return errors.Wrapf(ErrCycle, "attach %q to %q", child.Name, t.Name)
		}
	}

	for _, node := range nodes {
		child := node.Local()
		if child.parent == t {
			continue
		}

		world := child.worldPose()
		if child.parent != nil {
			child.parent.removeChild(child)
		}

		child.parent = t
		t.children = append(t.children, child)
		child.restoreWorld(keep, world)
	}

	return nil
}

// Detach removes nodes from the children of t, making them roots. Nodes
// that are not children of t are ignored.
func (t *Transform) Detach(keep Keep, nodes ...Node) {
	for _, node := range nodes {
		child := node.Local()
		if child.parent != t {
			continue
		}

		world := child.worldPose()
		t.removeChild(child)
		child.restoreWorld(keep, world)
	}
}

// ClearParent detaches t from its parent, if any
func (t *Transform) ClearParent(keep Keep) {
	if t.parent != nil {
		t.parent.Detach(keep, t)
	}
}

// ClearChildren detaches every child of t
func (t *Transform) ClearChildren(keep Keep) {
	for _, child := range t.Children() {
		t.Detach(keep, child)
	}
}

// =============================================================================
// Traversal
// =============================================================================

// Layout lists t and its descendants depth first, parents before children.
func (t *Transform) Layout() []Entry {
	var entries []Entry
	t.layout(&entries, 0)

	return entries
}

func (t *Transform) layout(entries *[]Entry, depth int) {
	*entries = append(*entries, Entry{Node: t.Owner(), Index: len(*entries), Depth: depth})
	for _, child := range t.children {
		child.layout(entries, depth+1)
	}
}

// Filter returns t and its descendants whose name contains pattern, or equals
// it when isEqual is set.
func (t *Transform) Filter(pattern string, isEqual, caseSensitive bool) []Node {
	if !caseSensitive {
		pattern = strings.ToLower(pattern)
	}

	return t.collect(func(name string) bool {
		if !caseSensitive {
			name = strings.ToLower(name)
		}
		if isEqual {
			return name == pattern
		}
		return strings.Contains(name, pattern)
	})
}

// FilterRegex returns t and its descendants whose name matches pattern.
func (t *Transform) FilterRegex(pattern string) ([]Node, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "filter %q", pattern)
	}

	return t.collect(re.MatchString), nil
}

func (t *Transform) collect(match func(name string) bool) []Node {
	var nodes []Node
	for _, entry := range t.Layout() {
		if match(entry.Node.Local().Name) {
			nodes = append(nodes, entry.Node)
		}
	}

	return nodes
}

// Package dom implements the composer's document tree: a typed tree of
// container/leaf nodes addressed by path handles, plus the range resolver
// that maps a code-unit selection onto the nodes it covers.
package dom

import "fmt"

// Handle is a path of child indices from the root that identifies a node.
// Handles are pure path arithmetic: none of their methods consult a tree,
// and a Handle remains syntactically valid (though possibly stale) across
// mutations. Callers must re-resolve a Handle via Dom.Lookup after any
// structural change beyond the one that produced it.
type Handle struct {
	path []int
	set  bool
}

// RootHandle returns the handle of the Dom root, the empty path.
func RootHandle() Handle { return Handle{path: []int{}, set: true} }

// NewHandle builds a handle from an explicit path of child indices.
func NewHandle(path []int) Handle {
	cp := make([]int, len(path))
	copy(cp, path)
	return Handle{path: cp, set: true}
}

// UnsetHandle returns a handle with no path; IsSet reports false and most
// other methods raise a Fault if called on it.
func UnsetHandle() Handle { return Handle{} }

// IsSet reports whether this handle has been assigned a path.
func (h Handle) IsSet() bool { return h.set }

// Raw returns the underlying path. The returned slice must not be mutated.
func (h Handle) Raw() []int {
	h.mustBeSet()
	return h.path
}

// IsRoot reports whether this handle addresses the Dom root.
func (h Handle) IsRoot() bool {
	h.mustBeSet()
	return len(h.path) == 0
}

// Depth returns the number of ancestors between this node and the root;
// the root itself has depth 0.
func (h Handle) Depth() int {
	h.mustBeSet()
	return len(h.path)
}

// HasParent reports whether this handle has a parent, i.e. is not the root.
func (h Handle) HasParent() bool {
	h.mustBeSet()
	return len(h.path) > 0
}

// Parent returns the handle of this node's parent. Panics if this is the
// root handle.
func (h Handle) Parent() Handle {
	h.mustBeSet()
	if len(h.path) == 0 {
		panic("dom: root handle has no parent")
	}
	return NewHandle(h.path[:len(h.path)-1])
}

// Child returns the handle of this node's child at the given index.
func (h Handle) Child(index int) Handle {
	h.mustBeSet()
	p := make([]int, len(h.path)+1)
	copy(p, h.path)
	p[len(h.path)] = index
	return Handle{path: p, set: true}
}

// IndexInParent returns this handle's position within its parent's
// children. Panics if this is the root handle.
func (h Handle) IndexInParent() int {
	h.mustBeSet()
	if len(h.path) == 0 {
		panic("dom: root handle has no parent")
	}
	return h.path[len(h.path)-1]
}

// NextSibling returns the handle immediately following this one among its
// parent's children. Whether that sibling exists is not checked here.
func (h Handle) NextSibling() Handle {
	h.mustBeSet()
	p := append([]int(nil), h.path...)
	p[len(p)-1]++
	return NewHandle(p)
}

// PrevSibling returns the handle immediately preceding this one among its
// parent's children. Whether that sibling exists is not checked here.
func (h Handle) PrevSibling() Handle {
	h.mustBeSet()
	p := append([]int(nil), h.path...)
	p[len(p)-1]--
	return NewHandle(p)
}

// SubHandleUpToDepth returns the ancestor handle truncated to depth d. If
// this handle is already shallower than d, it is returned unchanged.
func (h Handle) SubHandleUpToDepth(d int) Handle {
	h.mustBeSet()
	if d >= len(h.path) {
		return h
	}
	return NewHandle(h.path[:d])
}

// Compare returns -1, 0, or 1 according to the lexicographic (document)
// order of h and other.
func (h Handle) Compare(other Handle) int {
	h.mustBeSet()
	other.mustBeSet()
	for i := 0; i < len(h.path) && i < len(other.path); i++ {
		if h.path[i] != other.path[i] {
			if h.path[i] < other.path[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(h.path) < len(other.path):
		return -1
	case len(h.path) > len(other.path):
		return 1
	default:
		return 0
	}
}

// IsAncestorOf reports whether h is a strict ancestor of other.
func (h Handle) IsAncestorOf(other Handle) bool {
	h.mustBeSet()
	other.mustBeSet()
	if len(h.path) >= len(other.path) {
		return false
	}
	for i, v := range h.path {
		if other.path[i] != v {
			return false
		}
	}
	return true
}

func (h Handle) String() string {
	return fmt.Sprintf("%v", h.path)
}

func (h Handle) mustBeSet() {
	if !h.set {
		Raise("handle is unset")
	}
}

package dom

// DomLocation annotates one node visited while resolving a (start, end)
// code-unit selection: its absolute position, the portion of its own
// length the selection covers, its total length, its Kind, and whether
// it's a leaf.
type DomLocation struct {
	Handle      Handle
	Position    int
	StartOffset int
	EndOffset   int
	Length      int
	Kind        Kind
	IsLeaf      bool
}

// IsStart reports whether the selection runs to the end of this location,
// as it does in the location where a selection spanning several nodes
// starts (and in every location it fully covers).
func (l DomLocation) IsStart() bool { return l.EndOffset == l.Length }

// IsEnd reports whether the selection covers this location from its
// beginning, as it does in the location where a selection spanning several
// nodes ends (and in every location it fully covers).
func (l DomLocation) IsEnd() bool { return l.StartOffset == 0 }

// IsCovered reports whether the selection fully covers this location.
func (l DomLocation) IsCovered() bool { return l.IsStart() && l.IsEnd() }

// Range is the ordered set of locations a selection resolves to.
type Range struct {
	Locations []DomLocation
}

// IsSelection reports whether the range spans more than a single point.
func (r Range) IsSelection(start, end int) bool { return start != end }

// Leaves returns only the leaf locations in document order.
func (r Range) Leaves() []DomLocation {
	var out []DomLocation
	for _, l := range r.Locations {
		if l.IsLeaf {
			out = append(out, l)
		}
	}
	return out
}

// TextLen is the function a caller supplies to measure a leaf's
// contribution to the flat virtual text, in whatever code-unit width it
// is tracking selections in. Containers' lengths are the sum of their
// children's and need no entry from callers.
type TextLen func(*Node) int

// Resolve walks the Dom in document order and returns the Range of nodes
// whose [position, position+length) interval overlaps [start, end] (using
// min/max of the two, i.e. selections are resolved as a safe selection).
func Resolve(root *Node, start, end int, textLen TextLen) Range {
	if start > end {
		start, end = end, start
	}
	var locs []DomLocation
	pos := 0
	var rec func(n *Node)
	rec = func(n *Node) {
		length := nodeLength(n, textLen)
		nodeStart := pos
		if overlapsSelection(nodeStart, length, start, end) {
			locs = append(locs, DomLocation{
				Handle:      n.Handle,
				Position:    nodeStart,
				StartOffset: clamp(start-nodeStart, 0, length),
				EndOffset:   clamp(end-nodeStart, 0, length),
				Length:      length,
				Kind:        n.Kind,
				IsLeaf:      n.Kind.IsLeaf(),
			})
		}
		if n.Kind.IsContainer() {
			for _, c := range n.Children {
				rec(c)
			}
		} else {
			pos += length
		}
	}
	rec(root)
	return Range{Locations: locs}
}

func nodeLength(n *Node, textLen TextLen) int {
	if n.Kind.IsLeaf() {
		return textLen(n)
	}
	sum := 0
	for _, c := range n.Children {
		sum += nodeLength(c, textLen)
	}
	return sum
}

func overlapsSelection(nodeStart, length, start, end int) bool {
	nodeEnd := nodeStart + length
	if start == end {
		return start >= nodeStart && start <= nodeEnd
	}
	return start < nodeEnd && end > nodeStart
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// PreferredCursorLeaf picks a single anchor leaf for a collapsed (start ==
// end) selection out of the candidate leaf locations Resolve returned. Per
// the resolver's edge rule: when the cursor sits exactly between two
// leaves, the right leaf is preferred with StartOffset reset to 0, unless
// the right candidate begins a different block-level ancestor than the
// left one, in which case the left leaf is kept with StartOffset set to
// its own Length (attaching to the end of the block instead of crossing
// into the next one).
func PreferredCursorLeaf(d *Dom, leaves []DomLocation) (DomLocation, bool) {
	if len(leaves) == 0 {
		return DomLocation{}, false
	}
	if len(leaves) == 1 {
		return leaves[0], true
	}
	left, right := leaves[0], leaves[len(leaves)-1]
	if crossesBlockBoundary(d, left.Handle, right.Handle) {
		left.StartOffset = left.Length
		left.EndOffset = left.Length
		return left, true
	}
	right.StartOffset = 0
	right.EndOffset = 0
	return right, true
}

func crossesBlockBoundary(d *Dom, left, right Handle) bool {
	lb := d.DeepestBlockNode(left, nil)
	rb := d.DeepestBlockNode(right, nil)
	return lb == nil || rb == nil || lb.Handle.Compare(rb.Handle) != 0
}

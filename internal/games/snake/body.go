package snake

// Body is the ordered list of snake segments, head at index 0.
type Body struct {
	segs []Address
}

// BuildBody creates a straight body of the given length with its head at
// start, extending opposite to dir (the initial movement direction).
func BuildBody(start Address, length int, dir Direction) Body {
	if length < 1 {
		length = 1
	}
	dc, dr := dir.Opposite().delta()

	segs := make([]Address, length)
	for i := range segs {
		segs[i] = Address{Col: start.Col + i*dc, Row: start.Row + i*dr}
	}
	return Body{segs: segs}
}

// AdvanceHead prepends a new head. The caller decides whether to drop the tail.
func (b *Body) AdvanceHead(head Address) {
	b.segs = append(b.segs, Address{})
	copy(b.segs[1:], b.segs)
	b.segs[0] = head
}

// DropTail removes the last segment. A body is never emptied: on a
// single-segment body it returns ErrLastSegment and changes nothing.
func (b *Body) DropTail() error {
	if len(b.segs) <= 1 {
		return ErrLastSegment
	}
	b.segs = b.segs[:len(b.segs)-1]
	return nil
}

// Head returns the first segment, or the zero Address for an empty body.
func (b Body) Head() Address {
	if len(b.segs) == 0 {
		return Address{}
	}
	return b.segs[0]
}

// Tail returns the last segment, or the zero Address for an empty body.
func (b Body) Tail() Address {
	if len(b.segs) == 0 {
		return Address{}
	}
	return b.segs[len(b.segs)-1]
}

// Len returns the number of segments.
func (b Body) Len() int {
	return len(b.segs)
}

// Occupies reports whether any segment sits on addr.
func (b Body) Occupies(addr Address) bool {
	for _, seg := range b.segs {
		if seg == addr {
			return true
		}
	}
	return false
}

// Segments returns a copy of the segments, head first.
func (b Body) Segments() []Address {
	out := make([]Address, len(b.segs))
	copy(out, b.segs)
	return out
}

// OccupiedSet returns the set of cells covered by the body.
func (b Body) OccupiedSet() map[Address]struct{} {
	set := make(map[Address]struct{}, len(b.segs))
	for _, seg := range b.segs {
		set[seg] = struct{}{}
	}
	return set
}

package diffengine

import "fmt"

// LineClass is the per-line classification returned by ClassifyLine.
type LineClass int

const (
	// ClassNone means the line is outside any diff block: identical across
	// every participating buffer.
	ClassNone LineClass = iota
	// ClassChanged means the line falls in a block where the content
	// differs from its counterparts (not merely a line-count mismatch).
	ClassChanged
	// ClassInsertedOrDeleted means at least one other buffer has no line at
	// this row of the block (its count does not reach this line's offset)
	// and every buffer that does have one agrees with it.
	ClassInsertedOrDeleted
	// ClassFillerAbove means a filler gap of n lines should render above
	// this line so the pane stays vertically aligned with a longer block
	// in another buffer.
	ClassFillerAbove
)

// ClassifyLine reports what, if anything, distinguishes lnum in buf from
// its counterparts. n is only meaningful when the returned
// class is ClassFillerAbove. A stale list is rebuilt before answering.
func (e *Engine) ClassifyLine(buf Buffer, lnum Lnum) (class LineClass, n int, err error) {
	idx := e.indexOf(buf)
	if idx < 0 {
		return ClassNone, 0, fmt.Errorf("%w", ErrNotParticipating)
	}
	if e.invalid {
		if err := e.Rebuild(); err != nil {
			return ClassNone, 0, err
		}
	}

	b := e.findBlock(idx, lnum)
	if b == nil || lnum < b.start[idx] {
		return ClassNone, 0, nil
	}

	if lnum < b.End(idx) {
		off := lnum - b.start[idx]
		self := e.bufferAt(idx).Line(lnum)

		changed := false
		anyAbsent := false
		for _, i := range e.participatingIndexes() {
			if i == idx {
				continue
			}
			if off >= Lnum(b.count[i]) {
				// Buffer i has no corresponding line at this row.
				anyAbsent = true
				continue
			}
			other := e.bufferAt(i).Line(b.start[i] + off)
			if !linesEqual(self, other, e.opts) {
				changed = true
			}
		}
		if changed {
			return ClassChanged, 0, nil
		}
		if anyAbsent {
			return ClassInsertedOrDeleted, 0, nil
		}
		return ClassNone, 0, nil
	}

	if lnum == b.End(idx) && e.opts.Filler {
		maxCount := b.count[idx]
		for _, i := range e.participatingIndexes() {
			if b.count[i] > maxCount {
				maxCount = b.count[i]
			}
		}
		if fill := maxCount - b.count[idx]; fill > 0 {
			return ClassFillerAbove, fill, nil
		}
	}
	return ClassNone, 0, nil
}

// findBlock returns the first block for which lnum <= b.End(idx), or nil.
func (e *Engine) findBlock(idx int, lnum Lnum) *Block {
	for b := e.head; b != nil; b = b.next {
		if lnum <= b.End(idx) {
			return b
		}
	}
	return nil
}

// IntraLineDiff reports the byte-column span within lnum's line that
// differs from its counterparts, computed as the widest span not covered
// by a common prefix/suffix across every counterpart. ok is
// false if lnum falls in no block, or every counterpart has no
// corresponding line at this offset.
func (e *Engine) IntraLineDiff(buf Buffer, lnum Lnum) (startCol, endCol int, ok bool) {
	idx := e.indexOf(buf)
	if idx < 0 {
		return 0, 0, false
	}
	b := e.findBlock(idx, lnum)
	if b == nil || lnum < b.start[idx] || lnum >= b.End(idx) {
		return 0, 0, false
	}

	off := lnum - b.start[idx]
	self := e.bufferAt(idx).Line(lnum)

	minPrefix := len(self)
	maxEnd := 0
	found := false

	for _, i := range e.participatingIndexes() {
		if i == idx || off >= Lnum(b.count[i]) {
			continue
		}
		other := e.bufferAt(i).Line(b.start[i] + off)

		prefix := commonPrefixLen(self, other)
		suffix := commonSuffixLen(self, other, prefix)
		end := len(self) - suffix

		found = true
		if prefix < minPrefix {
			minPrefix = prefix
		}
		if end > maxEnd {
			maxEnd = end
		}
	}

	if !found {
		return 0, 0, false
	}
	if minPrefix > maxEnd {
		minPrefix = maxEnd
	}
	return minPrefix, maxEnd, true
}

func commonPrefixLen(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

func commonSuffixLen(a, b string, prefix int) int {
	limit := len(a) - prefix
	if lb := len(b) - prefix; lb < limit {
		limit = lb
	}
	i := 0
	for i < limit && a[len(a)-1-i] == b[len(b)-1-i] {
		i++
	}
	return i
}

// MapTopline projects lnum in the from buffer to the equivalent line in
// the to buffer, so two windows can scroll to matching diff territory.
// Lines before the first block, or in the gap between
// blocks, carry forward the cumulative offset of the nearest preceding
// block; lines past the last block anchor to the target's end. The
// result is always clamped to the target buffer's line range.
func (e *Engine) MapTopline(from, to Buffer, lnum Lnum) (Lnum, error) {
	idxFrom := e.indexOf(from)
	idxTo := e.indexOf(to)
	if idxFrom < 0 || idxTo < 0 {
		return 0, fmt.Errorf("%w", ErrNotParticipating)
	}
	if e.invalid {
		if err := e.Rebuild(); err != nil {
			return 0, err
		}
	}

	target := lnum
	for b := e.head; b != nil; b = b.next {
		if lnum < b.start[idxFrom] {
			break
		}
		if lnum < b.End(idxFrom) {
			off := lnum - b.start[idxFrom]
			target = b.start[idxTo] + off
			// The target block may be shorter than the source block at
			// this offset; the row has no counterpart, so land on the
			// block's end (where the filler renders) rather than an
			// unrelated line below it.
			if off >= Lnum(b.count[idxTo]) {
				target = b.End(idxTo)
			}
			return clampLnum(target, e.bufferAt(idxTo).LineCount()), nil
		}
		target = lnum + (b.End(idxTo) - b.End(idxFrom))
	}
	return clampLnum(target, e.bufferAt(idxTo).LineCount()), nil
}

func clampLnum(l Lnum, count int) Lnum {
	if l < 1 {
		return 1
	}
	if l > Lnum(count) {
		return Lnum(count)
	}
	return l
}

// FoldContains reports whether lnum is at least Context lines away from
// every block's edges in buf, making it eligible to fold away.
func (e *Engine) FoldContains(buf Buffer, lnum Lnum) bool {
	idx := e.indexOf(buf)
	if idx < 0 {
		return false
	}
	ctx := Lnum(e.opts.Context)
	for b := e.head; b != nil; b = b.next {
		if b.count[idx] == 0 {
			continue
		}
		if lnum >= b.start[idx]-ctx && lnum <= b.End(idx)-1+ctx {
			return false
		}
	}
	return true
}

package diffengine

import (
	"bufio"
	"io"
	"strconv"
)

// hunk is a single parsed line of Unix diff "normal" format output,
// already translated into (lnum, count) pairs for each side.
type hunk struct {
	lnumRef, countRef     Lnum
	lnumOther, countOther Lnum
}

// parseHunkLine recognizes one of the three grammars:
//
//	F1[,L1]cF2[,L2]    change
//	F1aF2[,L2]         append (insertion into other)
//	F1[,L1]dF2         delete (deletion from other)
//
// and returns the translated hunk. ok is false for lines that don't match
// (including non-digit-led lines, which callers should skip before calling
// this at all).
func parseHunkLine(line string) (h hunk, ok bool) {
	p := 0
	f1, n := scanDigits(line, p)
	if n == 0 {
		return hunk{}, false
	}
	p += n

	l1 := f1
	if p < len(line) && line[p] == ',' {
		p++
		v, n := scanDigits(line, p)
		if n == 0 {
			return hunk{}, false
		}
		l1 = v
		p += n
	}

	if p >= len(line) {
		return hunk{}, false
	}
	kind := line[p]
	if kind != 'a' && kind != 'c' && kind != 'd' {
		return hunk{}, false
	}
	p++

	f2, n := scanDigits(line, p)
	if n == 0 {
		return hunk{}, false
	}
	p += n

	l2 := f2
	if p < len(line) && line[p] == ',' {
		p++
		v, n := scanDigits(line, p)
		if n == 0 {
			return hunk{}, false
		}
		l2 = v
		p += n
	}

	if l1 < f1 || l2 < f2 {
		return hunk{}, false
	}

	switch kind {
	case 'a':
		h.lnumRef = f1 + 1
		h.countRef = 0
	default:
		h.lnumRef = f1
		h.countRef = l1 - f1 + 1
	}
	switch kind {
	case 'd':
		h.lnumOther = f2 + 1
		h.countOther = 0
	default:
		h.lnumOther = f2
		h.countOther = l2 - f2 + 1
	}
	return h, true
}

func scanDigits(s string, i int) (Lnum, int) {
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start {
		return 0, 0
	}
	v, err := strconv.Atoi(s[start:i])
	if err != nil {
		return 0, 0
	}
	return Lnum(v), i - start
}

// ParseNormalDiff folds the differ output for (idxRef, idxOther) into the
// engine's block list. Only lines matching one of the three
// hunk grammars are consulted; everything else (context body "< "/"> ",
// "---", blank lines) is skipped.
func (e *Engine) ParseNormalDiff(idxRef, idxOther int, r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var prev, cur *Block
	cur = e.head
	notset := true

	for sc.Scan() {
		line := sc.Text()
		if line == "" || line[0] < '0' || line[0] > '9' {
			continue
		}
		h, ok := parseHunkLine(line)
		if !ok {
			continue
		}

		// Skip blocks strictly before the new change.
		for cur != nil && h.lnumRef > cur.start[idxRef]+Lnum(cur.count[idxRef]) {
			if notset {
				e.diffCopyEntry(prev, cur, idxRef, idxOther)
			}
			prev = cur
			cur = cur.next
			notset = true
		}

		overlaps := cur != nil &&
			h.lnumRef <= cur.start[idxRef]+Lnum(cur.count[idxRef]) &&
			h.lnumRef+h.countRef >= cur.start[idxRef]

		if overlaps {
			// Find the furthest block this new range still overlaps.
			last := cur
			for last.next != nil && !(h.lnumRef+h.countRef < last.next.start[idxRef]) {
				last = last.next
			}

			offHead := cur.start[idxRef] - h.lnumRef
			if offHead > 0 {
				for i := idxRef; i < idxOther; i++ {
					if e.participating(i) {
						cur.start[i] -= offHead
					}
				}
				cur.start[idxOther] = h.lnumOther
				cur.count[idxOther] = int(h.countOther)
			} else if notset {
				cur.start[idxOther] = h.lnumOther + offHead
				cur.count[idxOther] = int(h.countOther - offHead)
			} else {
				cur.count[idxOther] += int(h.countOther - h.countRef)
			}

			offTail := (h.lnumRef + h.countRef) - (last.start[idxRef] + Lnum(last.count[idxRef]))
			if offTail < 0 {
				if notset {
					cur.count[idxOther] += int(-offTail)
				}
				offTail = 0
			}
			upper := idxOther
			if !notset {
				upper = idxOther + 1
			}
			for i := idxRef; i < upper; i++ {
				if e.participating(i) {
					cur.count[i] = int(last.start[i]+Lnum(last.count[i])-cur.start[i]) + int(offTail)
				}
			}

			// Splice out cur.next..last, freeing each.
			cur.next = last.next
		} else {
			nb := e.allocateBlock(prev, cur)
			nb.start[idxRef] = h.lnumRef
			nb.count[idxRef] = int(h.countRef)
			nb.start[idxOther] = h.lnumOther
			nb.count[idxOther] = int(h.countOther)

			for i := idxRef + 1; i < idxOther; i++ {
				if e.participating(i) {
					e.diffCopyEntry(prev, nb, idxRef, i)
				}
			}
			cur = nb
		}

		notset = false
	}
	if err := sc.Err(); err != nil {
		return err
	}

	// Remaining blocks: orig and other are equal past the last hunk.
	for cur != nil {
		if notset {
			e.diffCopyEntry(prev, cur, idxRef, idxOther)
		}
		prev = cur
		cur = cur.next
		notset = true
	}

	return nil
}

// diffCopyEntry populates cur's entry for idxTo so that the gap since the
// previous block in buffer idxTo matches the gap in buffer idxFrom.
// This is only correct when idxTo has not yet been differed and is
// therefore assumed line-identical to idxFrom outside recorded blocks.
func (e *Engine) diffCopyEntry(prev, cur *Block, idxFrom, idxTo int) {
	var off Lnum
	if prev != nil {
		off = (prev.start[idxFrom] + Lnum(prev.count[idxFrom])) - (prev.start[idxTo] + Lnum(prev.count[idxTo]))
	}
	cur.start[idxTo] = cur.start[idxFrom] - off
	cur.count[idxTo] = cur.count[idxFrom]
}

package diffengine

import (
	"fmt"
	"strconv"
	"strings"
)

// TransferKind selects the direction of a Transfer Operator invocation.
type TransferKind int

const (
	// TransferGet pulls the block's content from the target buffer into
	// the current buffer.
	TransferGet TransferKind = iota
	// TransferPut pushes the block's content from the current buffer into
	// the target buffer.
	TransferPut
)

// Named is implemented by buffers that can be addressed by a diffget/
// diffput target pattern. MemBuffer implements it.
type Named interface {
	BufferName() string
}

// ResolveTarget finds the transfer target for cur given a selector: "" for
// the default (the sole other participating buffer, erroring if none or
// more than one exist), a slot index as a base-10 number, or a substring
// matched against Named buffers' names.
func (e *Engine) ResolveTarget(cur Buffer, selector string) (Buffer, error) {
	idxCur := e.indexOf(cur)
	if idxCur < 0 {
		return nil, fmt.Errorf("%w", ErrNotParticipating)
	}

	if selector == "" {
		var found Buffer
		n := 0
		for _, i := range e.participatingIndexes() {
			if i == idxCur {
				continue
			}
			found = e.bufferAt(i)
			n++
		}
		if n == 0 {
			return nil, fmt.Errorf("%w", ErrNotFound)
		}
		if n > 1 {
			return nil, fmt.Errorf("%w", ErrAmbiguous)
		}
		return found, nil
	}

	if i, err := strconv.Atoi(selector); err == nil {
		if i != idxCur && e.participating(i) {
			return e.bufferAt(i), nil
		}
		return nil, fmt.Errorf("%w", ErrNotFound)
	}

	var matches []Buffer
	for _, i := range e.participatingIndexes() {
		if i == idxCur {
			continue
		}
		buf := e.bufferAt(i)
		if named, ok := buf.(Named); ok && strings.Contains(named.BufferName(), selector) {
			matches = append(matches, buf)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w", ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%w", ErrAmbiguous)
	}
}

// Get pulls the diff blocks addressed by [line1,line2] in cur (in cur's
// own line numbering) from target into cur.
func (e *Engine) Get(cur, target Buffer, line1, line2 Lnum) error {
	return e.transfer(TransferGet, cur, target, line1, line2)
}

// Put pushes the diff blocks addressed by [line1,line2] in cur into
// target.
func (e *Engine) Put(cur, target Buffer, line1, line2 Lnum) error {
	return e.transfer(TransferPut, cur, target, line1, line2)
}

func (e *Engine) transfer(kind TransferKind, cur, target Buffer, line1, line2 Lnum) error {
	idxCur := e.indexOf(cur)
	if idxCur < 0 {
		return fmt.Errorf("%w", ErrNotParticipating)
	}
	idxTarget := e.indexOf(target)
	if idxTarget < 0 {
		return fmt.Errorf("%w", ErrNotParticipating)
	}

	idxFrom, idxTo := idxCur, idxTarget
	if kind == TransferGet {
		idxFrom, idxTo = idxTarget, idxCur
	}

	e.busy = true
	defer func() { e.busy = false }()

	off := Lnum(0)
	var prev *Block
	b := e.head
	for b != nil {
		next := b.next

		s := b.start[idxCur]
		if s < line1+off {
			prev = b
			b = next
			continue
		}
		if s > line2+off {
			break
		}

		netChange, resolved := e.applyTransferBlock(b, idxFrom, idxTo)

		if resolved {
			if prev == nil {
				e.head = next
			} else {
				prev.next = next
			}
		} else {
			prev = b
		}
		e.shiftFrom(next, idxTo, netChange)
		if idxTo == idxCur {
			off += netChange
		}

		b = next
	}

	e.sweepZeroBlocks()
	return nil
}

// applyTransferBlock rewrites the destination buffer's content for b's
// range to match the source, resizes b's idxTo entry to match, and
// reports whether b is now fully resolved (content-equal across every
// other participating buffer too, so the block can be dropped) along
// with the net line-count change applied to the destination buffer.
func (e *Engine) applyTransferBlock(b *Block, idxFrom, idxTo int) (netChange Lnum, resolved bool) {
	dest := e.bufferAt(idxTo)
	src := e.bufferAt(idxFrom)

	oldCount := b.count[idxTo]
	newCount := b.count[idxFrom]

	dest.Checkpoint(b.start[idxTo], oldCount)
	dest.DeleteLines(b.start[idxTo], oldCount)

	lines := make([]string, newCount)
	for k := 0; k < newCount; k++ {
		lines[k] = src.Line(b.start[idxFrom] + Lnum(k))
	}
	dest.AppendLines(b.start[idxTo]-1, lines)

	b.count[idxTo] = newCount

	resolved = true
	for _, i := range e.participatingIndexes() {
		if i == idxFrom || i == idxTo {
			continue
		}
		if b.count[i] != newCount {
			resolved = false
			break
		}
		for k := 0; k < newCount; k++ {
			lineFrom := src.Line(b.start[idxFrom] + Lnum(k))
			lineOther := e.bufferAt(i).Line(b.start[i] + Lnum(k))
			if !linesEqual(lineFrom, lineOther, e.opts) {
				resolved = false
				break
			}
		}
		if !resolved {
			break
		}
	}

	return Lnum(newCount - oldCount), resolved
}

// shiftFrom adds amount to start[idx] for every block from (inclusive)
// onward, keeping blocks after a transfer-edited range aligned with the
// destination buffer's new line numbering.
func (e *Engine) shiftFrom(from *Block, idx int, amount Lnum) {
	if amount == 0 {
		return
	}
	for b := from; b != nil; b = b.next {
		b.start[idx] += amount
	}
}

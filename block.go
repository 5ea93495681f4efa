package diffengine

// Block is the element of the central data structure: a tuple of
// per-buffer (start, count) pairs plus a forward link.
//
// For a participating buffer index i, start[i] is the 1-based line at
// which the block begins in buffer i, and count[i] is the number of
// consecutive lines belonging to the block in buffer i. count[i] == 0
// means "pure insertion relative to buffer i: the change lives between
// start[i]-1 and start[i]." For empty slots the corresponding entries are
// undefined and never read.
type Block struct {
	start [MaxBuffers]Lnum
	count [MaxBuffers]int
	next  *Block
}

// Start returns the start line for participating buffer i.
func (b *Block) Start(i int) Lnum { return b.start[i] }

// Count returns the line count for participating buffer i.
func (b *Block) Count(i int) int { return b.count[i] }

// End returns the line one past the block in buffer i.
func (b *Block) End(i int) Lnum { return b.start[i] + Lnum(b.count[i]) }

// Next returns the next block in start order, or nil.
func (b *Block) Next() *Block { return b.next }

// allocateBlock links a new block between prev (or head if prev is nil)
// and next, and returns it.
func (e *Engine) allocateBlock(prev, next *Block) *Block {
	nb := &Block{next: next}
	if prev == nil {
		e.head = nb
	} else {
		prev.next = nb
	}
	return nb
}

// freeAfter splices out the run of blocks starting at start (inclusive)
// through and including stop (inclusive), relinking prev to stop.next.
// stop may equal start. prev may be nil if start is e.head.
func (e *Engine) freeAfter(prev, start, stop *Block) {
	if prev == nil {
		e.head = stop.next
	} else {
		prev.next = stop.next
	}
}

// trimEqualEdges shrinks a block by dropping equal leading/trailing lines
// across all participating buffers. origin is the first
// participating buffer index; it drives which lines are compared.
func (e *Engine) trimEqualEdges(b *Block, origin int) {
	idxs := e.participatingIndexes()

	// Top trim.
	for b.count[origin] > 0 {
		if !e.topLinesEqual(b, idxs, origin) {
			break
		}
		for _, i := range idxs {
			if b.count[i] > 0 {
				b.start[i]++
				b.count[i]--
			}
		}
		if anyZero(b, idxs) {
			break
		}
	}

	// Bottom trim.
	for b.count[origin] > 0 {
		if !e.bottomLinesEqual(b, idxs, origin) {
			break
		}
		for _, i := range idxs {
			if b.count[i] > 0 {
				b.count[i]--
			}
		}
		if anyZero(b, idxs) {
			break
		}
	}
}

func anyZero(b *Block, idxs []int) bool {
	for _, i := range idxs {
		if b.count[i] == 0 {
			return true
		}
	}
	return false
}

func (e *Engine) topLinesEqual(b *Block, idxs []int, origin int) bool {
	originLine := e.bufferAt(origin).Line(b.start[origin])
	for _, i := range idxs {
		if i == origin || b.count[i] == 0 {
			continue
		}
		line := e.bufferAt(i).Line(b.start[i])
		if !linesEqual(originLine, line, e.opts) {
			return false
		}
	}
	return true
}

func (e *Engine) bottomLinesEqual(b *Block, idxs []int, origin int) bool {
	originLine := e.bufferAt(origin).Line(b.start[origin] + Lnum(b.count[origin]) - 1)
	for _, i := range idxs {
		if i == origin || b.count[i] == 0 {
			continue
		}
		line := e.bufferAt(i).Line(b.start[i] + Lnum(b.count[i]) - 1)
		if !linesEqual(originLine, line, e.opts) {
			return false
		}
	}
	return true
}

// mergeAdjacent folds cur into prev when they abut in every participating
// buffer, returning the merged block (prev) and true if a merge happened.
func (e *Engine) mergeAdjacent(prev, cur *Block) (*Block, bool) {
	if prev == nil || cur == nil {
		return cur, false
	}
	for _, i := range e.participatingIndexes() {
		if prev.start[i]+Lnum(prev.count[i]) != cur.start[i] {
			return cur, false
		}
	}
	for _, i := range e.participatingIndexes() {
		prev.count[i] += cur.count[i]
	}
	prev.next = cur.next
	return prev, true
}

// sweepZeroBlocks removes every block whose participating counts are all
// zero.
func (e *Engine) sweepZeroBlocks() {
	idxs := e.participatingIndexes()
	var prev *Block
	cur := e.head
	for cur != nil {
		allZero := true
		for _, i := range idxs {
			if cur.count[i] != 0 {
				allZero = false
				break
			}
		}
		if allZero {
			if prev == nil {
				e.head = cur.next
			} else {
				prev.next = cur.next
			}
			cur = cur.next
			continue
		}
		prev = cur
		cur = cur.next
	}
}

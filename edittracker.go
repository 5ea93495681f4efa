package diffengine

// NotifyEdit receives an "lines inserted/deleted at range [line1,line2]"
// notification for buf and rewrites the block list in place so blocks stay
// aligned. Notifications for a buffer not participating in the
// diff are ignored.
//
// line2 == MaxLnum means a pure insertion of amount lines starting at
// line1. amountAfter > 0 with line2 != MaxLnum means a change that
// net-inserted amountAfter lines in [line1, line2]. amountAfter < 0 means a
// deletion of -amountAfter lines from [line1, line2].
func (e *Engine) NotifyEdit(buf Buffer, line1, line2 Lnum, amount, amountAfter int) {
	idx := e.indexOf(buf)
	if idx < 0 {
		return
	}

	var inserted, deleted int
	switch {
	case line2 == MaxLnum:
		inserted, deleted = amount, 0
	case amountAfter > 0:
		inserted, deleted = amountAfter, 0
	default:
		inserted, deleted = 0, -amountAfter
	}

	var prev, cur *Block
	cur = e.head

	for {
		// (a) Open territory: the change touches neither prev nor cur.
		// Suppressed while a Transfer Operator mutation is in flight.
		if (cur == nil || cur.start[idx]-1 > line2 || (line2 == MaxLnum && cur.start[idx] > line1)) &&
			(prev == nil || prev.start[idx]+Lnum(prev.count[idx]) < line1) &&
			!e.busy {
			nb := e.allocateBlock(prev, cur)
			nb.start[idx] = line1
			nb.count[idx] = inserted
			for _, i := range e.participatingIndexes() {
				if i == idx {
					continue
				}
				if prev == nil {
					nb.start[i] = line1
				} else {
					nb.start[i] = line1 +
						(prev.start[i] + Lnum(prev.count[i])) -
						(prev.start[idx] + Lnum(prev.count[idx]))
				}
				nb.count[i] = deleted
			}
		}

		if cur == nil {
			break
		}

		last := cur.start[idx] + Lnum(cur.count[idx]) - 1

		// 1. Change completely above line1: nothing to do.
		if last >= line1-1 {
			touched := Lnum(0)
			if deleted+inserted != 0 {
				touched = 1
			}

			if cur.start[idx]-touched > line2 {
				// 6. Change below line2: only the shift applies.
				if amountAfter == 0 {
					break
				}
				cur.start[idx] += Lnum(amountAfter)
			} else {
				checkUnchanged := false

				if deleted > 0 {
					var n, off Lnum
					if cur.start[idx] >= line1 {
						off = cur.start[idx] - line1
						cur.start[idx] = line1
						if last <= line2 {
							// 4. Delete all lines of this block.
							if cur.next != nil && cur.next.start[idx]-1 <= line2 {
								n = cur.next.start[idx] - line1
								deleted -= int(n)
								n -= Lnum(cur.count[idx])
								line1 = cur.next.start[idx]
							} else {
								n = Lnum(deleted) - Lnum(cur.count[idx])
							}
							cur.count[idx] = 0
						} else {
							// 5. Delete lines at the top of the block.
							n = off
							cur.count[idx] -= int(line2 - cur.start[idx] + 1)
							cur.start[idx] = line1
							checkUnchanged = true
						}
					} else {
						off = 0
						if last < line2 {
							// 2. Delete lines at the tail of the block.
							cur.count[idx] -= int(last - line1 + 1)
							if cur.next != nil && cur.next.start[idx]-1 <= line2 {
								n = cur.next.start[idx] - 1 - last
								deleted -= int(cur.next.start[idx] - line1)
								line1 = cur.next.start[idx]
							} else {
								n = line2 - last
							}
							checkUnchanged = true
						} else {
							// 3. Delete lines interior to the block.
							n = 0
							cur.count[idx] -= deleted
						}
					}

					for _, i := range e.participatingIndexes() {
						if i == idx {
							continue
						}
						cur.start[i] -= off
						cur.count[i] += int(n)
					}
				} else {
					if cur.start[idx] <= line1 {
						// Insertion interior to the block.
						cur.count[idx] += inserted
						checkUnchanged = true
					} else {
						// Insertion above the block's head.
						cur.start[idx] += Lnum(inserted)
					}
				}

				if checkUnchanged {
					if origin := e.referenceIndex(); origin >= 0 {
						e.trimEqualEdges(cur, origin)
					}
				}
			}
		}

		// (c) Merge adjacent.
		if prev != nil && prev.start[idx]+Lnum(prev.count[idx]) == cur.start[idx] {
			merged, _ := e.mergeAdjacent(prev, cur)
			cur = merged.next
		} else {
			prev = cur
			cur = cur.next
		}
	}

	e.sweepZeroBlocks()
}

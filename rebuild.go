package diffengine

import (
	"fmt"
	"os"
	"path/filepath"
)

// Rebuild clears the list and rebuilds it from scratch: the first non-empty
// slot becomes the reference, each participating buffer is written to a
// temp file, the differ is invoked for every non-reference slot against the
// reference, and the output is folded into the list by ParseNormalDiff.
// A failure for one pair is non-fatal; other pairs still run.
// Rebuild returns the first error encountered, if any, after attempting
// every pair.
func (e *Engine) Rebuild() error {
	e.head = nil
	e.invalid = false

	ref := e.referenceIndex()
	if ref < 0 {
		return nil // nothing registered
	}

	dir, err := os.MkdirTemp("", "diffengine-")
	if err != nil {
		return fmt.Errorf("%w: creating temp dir: %v", ErrDifferFailed, err)
	}
	defer os.RemoveAll(dir)

	refPath := filepath.Join(dir, "ref")
	if err := e.bufferAt(ref).WriteToFile(refPath); err != nil {
		return fmt.Errorf("%w: writing reference buffer: %v", ErrDifferFailed, err)
	}

	var firstErr error
	for _, k := range e.participatingIndexes() {
		if k == ref {
			continue
		}
		if err := e.rebuildPair(dir, ref, k); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
	}
	e.clampToBufferLimits()
	return firstErr
}

func (e *Engine) rebuildPair(dir string, ref, other int) error {
	otherPath := filepath.Join(dir, fmt.Sprintf("other%d", other))
	if err := e.bufferAt(other).WriteToFile(otherPath); err != nil {
		return fmt.Errorf("%w: writing buffer %d: %v", ErrDifferFailed, other, err)
	}
	defer os.Remove(otherPath)

	outPath := filepath.Join(dir, fmt.Sprintf("out%d", other))
	refPath := filepath.Join(dir, "ref")
	if err := e.differ.Diff(refPath, otherPath, outPath, e.opts); err != nil {
		return err
	}
	defer os.Remove(outPath)

	f, err := os.Open(outPath)
	if err != nil {
		return fmt.Errorf("%w: reading diff output: %v", ErrDifferFailed, err)
	}
	defer f.Close()

	return e.ParseNormalDiff(ref, other, f)
}

// clampToBufferLimits clamps blocks whose range would run past a
// participating buffer's current line count (possible if the differ
// reported ranges against a truncated temp file).
// A block that would invert (start beyond the buffer after clamping its
// tail) is dropped and the caller is left with a degraded-but-consistent
// list rather than one with dangling ranges.
func (e *Engine) clampToBufferLimits() {
	idxs := e.participatingIndexes()
	var prev *Block
	cur := e.head
	for cur != nil {
		drop := false
		for _, i := range idxs {
			limit := Lnum(e.bufferAt(i).LineCount()) + 1
			if cur.start[i] > limit {
				drop = true
				break
			}
			if cur.start[i]+Lnum(cur.count[i]) > limit {
				cur.count[i] = int(limit - cur.start[i])
				if cur.count[i] < 0 {
					drop = true
					break
				}
			}
		}
		if drop {
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
	e.sweepZeroBlocks()
}

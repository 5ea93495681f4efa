// Package diffengine maintains an incrementally-updated set of change
// regions ("diff blocks") across up to four text buffers viewed side by
// side. It builds the block list from an external line-differ's output,
// repairs it in place as buffers are edited, and answers the per-line
// queries a viewer needs to render synchronized, highlighted diff panes.
package diffengine

import (
	"errors"
	"fmt"
)

// MaxBuffers is the fixed number of participating-buffer slots.
const MaxBuffers = 4

// Lnum is a 1-based line number. A value one past the last line means
// "append position."
type Lnum int

// MaxLnum is the sentinel meaning "end of buffer / open upper bound" in
// edit notifications.
const MaxLnum Lnum = 1<<31 - 1

// Sentinel errors surfaced through the host's message channel.
// The engine never aborts the process; a failure of one of these kinds is
// returned wrapped with operation-specific context. ParseOptions,
// ApplyOptionString and ParseNormalDiff report malformed input as plain
// errors instead.
var (
	ErrCapacityExceeded = errors.New("diffengine: no free buffer slot (max 4 participating buffers)")
	ErrNotParticipating = errors.New("diffengine: buffer is not a participating diff buffer")
	ErrAmbiguous        = errors.New("diffengine: transfer target is ambiguous")
	ErrNotFound         = errors.New("diffengine: transfer target not found")
	ErrDifferFailed     = errors.New("diffengine: differ invocation failed")
	ErrAllocationFailed = errors.New("diffengine: block allocation failed")
)

// Options holds the engine's option flags.
type Options struct {
	Filler  bool // show filler lines for shorter buffers
	ICase   bool // case-insensitive line comparison
	IWhite  bool // whitespace-insensitive line comparison
	Context int  // fold padding, in lines
}

// Engine is the sole mutable state of the core: the slot array, the diff
// list head, and the staleness/reentrancy flags. The host instantiates one
// Engine per editor process.
type Engine struct {
	slots [MaxBuffers]*slot

	head *Block // ordered by start[reference]; nil means empty list

	invalid bool // list is stale; next query triggers a rebuild
	busy    bool // transfer in progress; suppresses Edit Tracker block creation

	opts Options

	differ Differ
}

type slot struct {
	buf Buffer
}

// New creates an empty engine. diff is the differ collaborator;
// pass nil to default to ExternalDiffer{}.
func New(diff Differ, opts Options) *Engine {
	if diff == nil {
		diff = ExternalDiffer{}
	}
	return &Engine{opts: opts, differ: diff}
}

// Options returns the engine's current option flags.
func (e *Engine) Options() Options { return e.opts }

// SetOptions replaces the option flags. If ICase or IWhite changed, the
// list is marked stale so the next query triggers a rebuild.
func (e *Engine) SetOptions(o Options) {
	if o.ICase != e.opts.ICase || o.IWhite != e.opts.IWhite {
		e.invalid = true
	}
	e.opts = o
}

// RegisterBuffer adds buf to the first empty slot and returns its index.
// Order of slots is insertion order; the first non-empty slot acts as the
// reference buffer during rebuilds.
func (e *Engine) RegisterBuffer(buf Buffer) (int, error) {
	for i := range e.slots {
		if e.slots[i] == nil {
			e.slots[i] = &slot{buf: buf}
			e.invalid = true
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w", ErrCapacityExceeded)
}

// UnregisterBuffer removes buf's slot, if present. The host calls this when
// it revokes its interest in the buffer.
func (e *Engine) UnregisterBuffer(buf Buffer) {
	for i := range e.slots {
		if e.slots[i] != nil && e.slots[i].buf == buf {
			e.slots[i] = nil
			e.invalid = true
			return
		}
	}
}

// indexOf returns the slot index of buf, or -1 if it is not participating.
func (e *Engine) indexOf(buf Buffer) int {
	for i := range e.slots {
		if e.slots[i] != nil && e.slots[i].buf == buf {
			return i
		}
	}
	return -1
}

// participating reports whether slot i holds a buffer.
func (e *Engine) participating(i int) bool {
	return i >= 0 && i < MaxBuffers && e.slots[i] != nil
}

// referenceIndex returns the first non-empty slot, or -1 if none.
func (e *Engine) referenceIndex() int {
	for i := range e.slots {
		if e.slots[i] != nil {
			return i
		}
	}
	return -1
}

// participatingIndexes returns the indexes of all non-empty slots in order.
func (e *Engine) participatingIndexes() []int {
	var out []int
	for i := range e.slots {
		if e.slots[i] != nil {
			out = append(out, i)
		}
	}
	return out
}

// bufferAt returns the buffer registered at slot i, or nil.
func (e *Engine) bufferAt(i int) Buffer {
	if !e.participating(i) {
		return nil
	}
	return e.slots[i].buf
}

// BufferAt exposes the buffer registered at slot i (0..MaxBuffers-1) to
// read-only consumers such as the reference viewer, which needs to build
// one DiffPane per participating slot without otherwise reaching into the
// engine's private state. Returns nil for an empty slot or an out-of-range
// index.
func (e *Engine) BufferAt(i int) Buffer {
	return e.bufferAt(i)
}

// Invalid reports whether the list is stale and a query would trigger a
// rebuild.
func (e *Engine) Invalid() bool { return e.invalid }

// Blocks returns the diff blocks in start-order, head to tail. The returned
// slice is a snapshot; callers must not rely on it reflecting later
// mutations.
func (e *Engine) Blocks() []*Block {
	var out []*Block
	for b := e.head; b != nil; b = b.next {
		out = append(out, b)
	}
	return out
}

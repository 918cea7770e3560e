// Package buffer provides the fixed-capacity sample buffers shared by
// the control and supervisor cores.
package buffer

import (
	"errors"
	"math"
)

// BusyState tags which part of a buffer is in use.
type BusyState int

// Busy states.
const (
	Idle BusyState = iota
	All
	Block0
	Block1
)

func (s BusyState) String() string {
	switch s {
	case Idle:
		return "Idle"
	case All:
		return "All"
	case Block0:
		return "Block0"
	case Block1:
		return "Block1"
	}
	return "BusyState(?)"
}

// WritePolicy decides what Write does once the cursor passed the end.
type WritePolicy int

const (
	// Wrap restarts at the beginning of the region.
	Wrap WritePolicy = iota
	// Halt refuses the write until the buffer is rewound.
	Halt
)

var (
	// ErrEmptyRegion indicates a buffer is bound to a zero-length region.
	ErrEmptyRegion = errors.New("empty buffer region")
)

// Circular is a buffer over a contiguous region with an inclusive end
// and a write cursor. Cursor == end+1 is the sentinel meaning the
// buffer is full or inactive.
type Circular struct {
	Busy BusyState

	region []float32
	start  int
	end    int
	cursor int
	// touched is set once a sample was written or read since the
	// cursor was last moved by Init, Reset or Rewind.
	touched bool
}

// NewCircular allocates a region of the given capacity and binds a buffer to it.
func NewCircular(capacity int) *Circular {
	var b Circular
	if err := b.Init(make([]float32, capacity)); err != nil {
		panic(err)
	}
	return &b
}

// Init binds the buffer to region. The region is never resized afterwards.
func (b *Circular) Init(region []float32) error {
	if len(region) == 0 {
		return ErrEmptyRegion
	}
	b.region = region
	b.start, b.end = 0, len(region)-1
	b.cursor = b.end + 1
	b.touched = false
	b.Busy = Idle
	return nil
}

// Reset moves the cursor to the sentinel.
func (b *Circular) Reset() {
	b.cursor = b.end + 1
	b.touched = false
}

// Rewind moves the cursor to the start of the region.
func (b *Circular) Rewind() {
	b.cursor = b.start
	b.touched = false
}

// IsSentinel reports whether the cursor sits at end+1.
func (b *Circular) IsSentinel() bool {
	return b.cursor > b.end
}

// Size returns the capacity.
func (b *Circular) Size() int {
	return b.end - b.start + 1
}

// Index returns the cursor offset from the start.
func (b *Circular) Index() int {
	return b.cursor - b.start
}

// Write stores v at the cursor and advances it.
// It returns false if the write was refused under Halt.
func (b *Circular) Write(v float32, policy WritePolicy) bool {
	if b.region == nil {
		return false
	}
	if b.cursor > b.end {
		if policy == Halt {
			return false
		}
		b.cursor = b.start
	}
	b.region[b.cursor] = v
	b.cursor++
	b.touched = true
	return true
}

// Next reads the value at the cursor and advances it.
func (b *Circular) Next() (float32, bool) {
	if b.region == nil || b.cursor > b.end {
		return 0, false
	}
	v := b.region[b.cursor]
	b.cursor++
	b.touched = true
	return v, true
}

// At returns the sample at offset i from the start.
func (b *Circular) At(i int) float32 {
	return b.region[b.start+i]
}

// Last returns the most recently written or read sample. Nothing is
// returned after Init, Reset or Rewind until the next Write or Next.
func (b *Circular) Last() (float32, bool) {
	if b.region == nil || !b.touched || b.cursor == b.start {
		return 0, false
	}
	return b.region[b.cursor-1], true
}

// Snapshot copies out the whole region.
func (b *Circular) Snapshot() []float32 {
	out := make([]float32, b.Size())
	copy(out, b.region[b.start:b.end+1])
	return out
}

// TestLimit reports whether v is outside last±tol.
// An empty buffer never reports exceedance.
func (b *Circular) TestLimit(v, tol float32) bool {
	last, ok := b.Last()
	if !ok {
		return false
	}
	return float32(math.Abs(float64(v-last))) > tol
}

// State is the publishable view of a Circular.
type State struct {
	Size  int
	Index int
	Busy  BusyState
}

// State captures the buffer state.
func (b *Circular) State() State {
	return State{Size: b.Size(), Index: b.Index(), Busy: b.Busy}
}

// bind rebinds the buffer over the first n positions of region.
func (b *Circular) bind(region []float32, n int) {
	b.region = region
	b.start, b.end = 0, n-1
	b.cursor = b.end + 1
	b.touched = false
}

package buffer

import (
	"errors"
	"fmt"
)

// DefaultBlockSize is the capacity of one waveform curve block.
const DefaultBlockSize = 4096

var (
	// ErrInvalidBlock indicates the payload targets neither block.
	ErrInvalidBlock = errors.New("invalid curve block")
)

// CurveLengthError is returned when a curve doesn't fit in a block.
type CurveLengthError struct {
	Length    int
	BlockSize int
}

// Error implements error.
func (e *CurveLengthError) Error() string {
	return fmt.Sprintf("curve length %d out of range [1, %d]", e.Length, e.BlockSize)
}

// Payload is a complete waveform reference as posted by the supervisor.
// Block selects the target block, Idle means the block not being consumed.
type Payload struct {
	Gain    float32
	Offset  float32
	Block   BusyState
	Samples []float32
}

// Clone deep copies the payload.
func (p Payload) Clone() Payload {
	if p.Samples != nil {
		p.Samples = append([]float32(nil), p.Samples...)
	}
	return p
}

// DoubleBuffer holds two curve blocks. The control loop consumes one
// block through Buffer while the other may be refreshed.
type DoubleBuffer struct {
	Gain   float32
	Offset float32
	Buffer Circular

	blocks    [2][]float32
	blockSize int
}

// NewDoubleBuffer allocates both blocks.
func NewDoubleBuffer(blockSize int) *DoubleBuffer {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	d := &DoubleBuffer{Gain: 1, blockSize: blockSize}
	d.blocks[0] = make([]float32, blockSize)
	d.blocks[1] = make([]float32, blockSize)
	d.Buffer.Init(d.blocks[0])
	return d
}

// BlockSize returns the capacity of each block.
func (d *DoubleBuffer) BlockSize() int {
	return d.blockSize
}

// Inactive returns the block not being consumed.
func (d *DoubleBuffer) Inactive() BusyState {
	if d.Buffer.Busy == Block0 {
		return Block1
	}
	return Block0
}

// Load replaces the curve with the payload. The payload is validated
// before anything is written so a rejected load leaves the buffer as-is.
func (d *DoubleBuffer) Load(p Payload) error {
	n := len(p.Samples)
	if n == 0 || n > d.blockSize {
		return &CurveLengthError{Length: n, BlockSize: d.blockSize}
	}
	block := p.Block
	switch block {
	case Idle:
		block = d.Inactive()
	case Block0, Block1:
	default:
		return ErrInvalidBlock
	}
	region := d.blocks[block-Block0]
	copy(region, p.Samples)
	d.Buffer.bind(region, n)
	d.Buffer.Busy = block
	d.Gain, d.Offset = p.Gain, p.Offset
	return nil
}

// Rearm puts the cursor back to the sentinel.
func (d *DoubleBuffer) Rearm() {
	d.Buffer.Reset()
}

// Start begins playback from the first sample.
func (d *DoubleBuffer) Start() {
	d.Buffer.Rewind()
}

// Next returns the next scaled sample.
func (d *DoubleBuffer) Next() (float32, bool) {
	v, ok := d.Buffer.Next()
	if !ok {
		return 0, false
	}
	return d.scale(v), true
}

// Values returns every sample of the active curve scaled.
func (d *DoubleBuffer) Values() []float32 {
	if d.Buffer.Busy == Idle {
		return nil
	}
	out := d.Buffer.Snapshot()
	for n, v := range out {
		out[n] = d.scale(v)
	}
	return out
}

func (d *DoubleBuffer) scale(v float32) float32 {
	return v*d.Gain + d.Offset
}

// WaveformState is the publishable view of a DoubleBuffer.
type WaveformState struct {
	Gain   float32
	Offset float32
	Buffer State
	Armed  bool
}

// State captures the waveform state.
func (d *DoubleBuffer) State() WaveformState {
	return WaveformState{
		Gain:   d.Gain,
		Offset: d.Offset,
		Buffer: d.Buffer.State(),
		Armed:  d.Buffer.IsSentinel(),
	}
}

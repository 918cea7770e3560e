package buffer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func requireCursorInRange(t *testing.T, b *Circular) {
	require.True(t, b.Index() >= 0, "cursor before start")
	require.True(t, b.Index() <= b.Size(), "cursor past sentinel")
}

func TestCircularInit(t *testing.T) {
	var b Circular
	require.Equal(t, ErrEmptyRegion, b.Init(nil))

	c := NewCircular(4)
	require.Equal(t, 4, c.Size())
	require.Equal(t, 4, c.Index())
	require.True(t, c.IsSentinel())
	require.Equal(t, Idle, c.Busy)
}

func TestCircularWritePolicies(t *testing.T) {
	testCases := []struct {
		name    string
		policy  WritePolicy
		writes  int
		accepts int
		index   int
	}{
		{"wrap from sentinel", Wrap, 3, 3, 3},
		{"wrap past end", Wrap, 6, 6, 2},
		{"halt at sentinel", Halt, 3, 0, 4},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := NewCircular(4)
			accepted := 0
			for i := 0; i < tc.writes; i++ {
				if b.Write(float32(i), tc.policy) {
					accepted++
				}
				requireCursorInRange(t, b)
			}
			require.Equal(t, tc.accepts, accepted)
			require.Equal(t, tc.index, b.Index())
			b.Reset()
			require.True(t, b.IsSentinel())
			require.Equal(t, b.Size(), b.Index())
		})
	}
}

func TestCircularHaltAfterRewind(t *testing.T) {
	b := NewCircular(3)
	b.Rewind()
	require.Equal(t, 0, b.Index())
	for i := 0; i < 3; i++ {
		require.True(t, b.Write(float32(i+1), Halt))
	}
	require.False(t, b.Write(9, Halt))
	require.Equal(t, []float32{1, 2, 3}, b.Snapshot())
	requireCursorInRange(t, b)
}

func TestCircularNext(t *testing.T) {
	b := NewCircular(2)
	_, ok := b.Next()
	require.False(t, ok)
	b.Rewind()
	b.Write(5, Halt)
	b.Write(6, Halt)
	b.Rewind()
	v, ok := b.Next()
	require.True(t, ok)
	require.Equal(t, float32(5), v)
	v, _ = b.Next()
	require.Equal(t, float32(6), v)
	_, ok = b.Next()
	require.False(t, ok)
}

func TestCircularTestLimit(t *testing.T) {
	b := NewCircular(4)
	require.False(t, b.TestLimit(100, 0.1))
	b.Write(10, Wrap)
	require.False(t, b.TestLimit(10.05, 0.1))
	require.True(t, b.TestLimit(10.5, 0.1))
	require.True(t, b.TestLimit(9.5, 0.1))

	b.Reset()
	require.False(t, b.TestLimit(100, 0.1))
	b.Rewind()
	require.False(t, b.TestLimit(100, 0.1))
}

func TestCircularLast(t *testing.T) {
	b := NewCircular(3)
	_, ok := b.Last()
	require.False(t, ok)

	for i := 1; i <= 3; i++ {
		b.Write(float32(i), Wrap)
	}
	require.True(t, b.IsSentinel())
	v, ok := b.Last()
	require.True(t, ok)
	require.Equal(t, float32(3), v)

	b.Reset()
	_, ok = b.Last()
	require.False(t, ok)

	b.Rewind()
	b.Next()
	v, ok = b.Last()
	require.True(t, ok)
	require.Equal(t, float32(1), v)
}

func TestDoubleBufferLoad(t *testing.T) {
	d := NewDoubleBuffer(8)
	require.Equal(t, Idle, d.Buffer.Busy)
	require.Nil(t, d.Values())

	err := d.Load(Payload{Gain: 2, Offset: 0.5, Samples: []float32{1, 2, 3, 4}})
	require.NoError(t, err)
	require.Equal(t, Block0, d.Buffer.Busy)
	require.True(t, d.Buffer.IsSentinel())
	require.Equal(t, 4, d.Buffer.Size())
	require.Equal(t, []float32{2.5, 4.5, 6.5, 8.5}, d.Values())

	require.NoError(t, d.Load(Payload{Gain: 1, Samples: []float32{7}}))
	require.Equal(t, Block1, d.Buffer.Busy)
	require.Equal(t, Block0, d.Inactive())
	require.Equal(t, []float32{7}, d.Values())
}

func TestDoubleBufferRejectedLoadKeepsCurve(t *testing.T) {
	d := NewDoubleBuffer(2)
	require.NoError(t, d.Load(Payload{Gain: 1, Samples: []float32{1, 2}}))
	err := d.Load(Payload{Gain: 3, Samples: []float32{1, 2, 3}})
	require.IsType(t, &CurveLengthError{}, err)
	require.Error(t, d.Load(Payload{Gain: 3}))
	require.Equal(t, ErrInvalidBlock, d.Load(Payload{Block: All, Samples: []float32{1}}))
	require.Equal(t, Block0, d.Buffer.Busy)
	require.Equal(t, []float32{1, 2}, d.Values())
}

func TestDoubleBufferPlayback(t *testing.T) {
	d := NewDoubleBuffer(4)
	require.NoError(t, d.Load(Payload{Gain: 10, Offset: 1, Block: Block1, Samples: []float32{0, 1}}))
	_, ok := d.Next()
	require.False(t, ok)
	d.Start()
	v, ok := d.Next()
	require.True(t, ok)
	require.Equal(t, float32(1), v)
	v, _ = d.Next()
	require.Equal(t, float32(11), v)
	_, ok = d.Next()
	require.False(t, ok)
	d.Start()
	d.Rearm()
	require.True(t, d.State().Armed)
}

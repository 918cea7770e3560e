package siggen

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGeneratorLifecycle(t *testing.T) {
	params := &Params{Freq: 1, Offset: 3}
	var out float32
	g := New(Bindings{Params: params, Output: &out})
	_, ok := g.Step()
	require.False(t, ok)

	g.Enable()
	v, ok := g.Step()
	require.True(t, ok)
	require.Equal(t, float32(3), v)
	require.Equal(t, float32(3), out)
	require.Equal(t, uint32(1), g.Samples())

	g.Reinit(Config{Type: DampedSine, NumCycles: 4})
	require.True(t, g.Enabled())
	require.Equal(t, uint32(0), g.Samples())
	require.Equal(t, DampedSine, g.Config().Type)
	require.True(t, g.Bindings().Params == params)
	require.True(t, g.Bindings().Output == &out)

	g.Enable()
	g.Step()
	g.Step()
	g.Reset()
	require.Zero(t, g.Samples())
	g.Disable()
	require.False(t, g.Enabled())
}

func TestGeneratorDefaultParams(t *testing.T) {
	g := New(Bindings{})
	require.NotNil(t, g.Bindings().Params)
	g.Enable()
	v, ok := g.Step()
	require.True(t, ok)
	require.Zero(t, v)
}

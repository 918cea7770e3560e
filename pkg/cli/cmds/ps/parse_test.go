package ps

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/drs.go/pkg/psmodule"
	"github.com/robotalks/drs.go/pkg/siggen"
)

func TestParseMode(t *testing.T) {
	testCases := []struct {
		arg  string
		mode uint32
		ok   bool
	}{
		{"Off", uint32(psmodule.Off), true},
		{"rmpwfm", uint32(psmodule.RmpWfm), true},
		{"MIGWFM", uint32(psmodule.MigWfm), true},
		{"5", uint32(psmodule.Cycle), true},
		{"0x3", uint32(psmodule.SlowRef), true},
		{"42", 42, true},
		{"warp", 0, false},
	}
	for _, tc := range testCases {
		t.Run(tc.arg, func(t *testing.T) {
			mode, err := parseMode(tc.arg)
			if !tc.ok {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.mode, mode)
		})
	}
}

func TestParseSwitch(t *testing.T) {
	for _, arg := range []string{"on", "ON", "1", "true"} {
		on, err := parseSwitch(arg)
		require.NoError(t, err)
		require.True(t, on)
	}
	for _, arg := range []string{"off", "0", "false"} {
		on, err := parseSwitch(arg)
		require.NoError(t, err)
		require.False(t, on)
	}
	_, err := parseSwitch("maybe")
	require.Error(t, err)
}

func TestParseSigGenType(t *testing.T) {
	typ, err := parseSigGenType("trapezoidal")
	require.NoError(t, err)
	require.Equal(t, uint32(siggen.Trapezoidal), typ)
	typ, err = parseSigGenType("1")
	require.NoError(t, err)
	require.Equal(t, uint32(siggen.DampedSine), typ)
	_, err = parseSigGenType("square")
	require.Error(t, err)
}

func TestParseWaveform(t *testing.T) {
	wfm, err := parseWaveform([]string{"2", "0.5", "1", "2", "3"})
	require.NoError(t, err)
	require.Equal(t, float32(2), wfm.Gain)
	require.Equal(t, float32(0.5), wfm.Offset)
	require.Equal(t, uint32(0), wfm.Block)
	require.Equal(t, []float32{1, 2, 3}, wfm.Samples)

	wfm, err = parseWaveform([]string{"@2", "1", "0", "4"})
	require.NoError(t, err)
	require.Equal(t, uint32(2), wfm.Block)
	require.Equal(t, []float32{4}, wfm.Samples)

	_, err = parseWaveform([]string{"1", "0"})
	require.Error(t, err)
	_, err = parseWaveform([]string{"1", "0", "x"})
	require.Error(t, err)
	_, err = parseWaveform([]string{"@b", "1", "0", "1"})
	require.Error(t, err)
}

func TestParseParams(t *testing.T) {
	params, err := parseParams([]string{"kp=1.5", "ki=0.25"})
	require.NoError(t, err)
	require.Len(t, params, 2)
	require.Equal(t, "kp", params[0].Name)
	require.Equal(t, float32(1.5), params[0].Value)
	require.Equal(t, "ki", params[1].Name)
	require.Equal(t, float32(0.25), params[1].Value)

	for _, arg := range []string{"kp", "=1", "kp=x"} {
		_, err := parseParams([]string{arg})
		require.Error(t, err, arg)
	}
}

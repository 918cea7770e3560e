package psmodule

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewModule(t *testing.T) {
	m := New(ModelFBP, nil)
	require.Equal(t, Off, m.Status.State)
	require.True(t, m.Status.OpenLoop)
	require.Equal(t, Remote, m.Status.Interface)
	require.True(t, m.Status.Active)
	require.False(t, m.Status.Unlocked)
	require.Equal(t, ModelFBP, m.Model())
	require.Zero(t, m.SetPoint)
	require.Zero(t, m.Reference)
	require.NotNil(t, m.Handlers())
}

func TestModuleLoopGuards(t *testing.T) {
	testCases := []struct {
		name     string
		state    State
		unlocked bool
		allowed  bool
	}{
		{"off locked", Off, false, true},
		{"slowref locked", SlowRef, false, false},
		{"slowref unlocked", SlowRef, true, true},
		{"interlock unlocked", Interlock, true, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := New(ModelFAP, nil)
			m.Status.State, m.Status.Unlocked = tc.state, tc.unlocked
			require.Equal(t, tc.allowed, m.CloseLoop())
			require.Equal(t, !tc.allowed, m.Status.OpenLoop)
			require.Equal(t, tc.allowed, m.OpenLoop())
			require.True(t, m.Status.OpenLoop)
		})
	}
}

func TestModuleLock(t *testing.T) {
	m := New(ModelFBP, nil)
	require.False(t, m.Deactivate())
	require.True(t, m.Status.Active)
	require.False(t, m.Unlock(0x1234))
	require.True(t, m.Unlock(Password))
	require.True(t, m.Deactivate())
	require.False(t, m.Status.Active)
	require.True(t, m.Activate())
	m.Lock()
	require.False(t, m.Status.Unlocked)
	require.False(t, m.Deactivate())
	m.SetInterface(PCHost)
	require.Equal(t, PCHost, m.Status.Interface)
}

func TestHandlerFuncs(t *testing.T) {
	var calls []string
	h := &HandlerFuncs{
		TurnOnFunc:  func() { calls = append(calls, "on") },
		TurnOffFunc: func() { calls = append(calls, "off") },
	}
	m := New(ModelFBP, h)
	m.Handlers().TurnOn()
	m.Handlers().SoftInterlock()
	m.Handlers().TurnOff()
	require.Equal(t, []string{"on", "off"}, calls)
}

func TestStateNames(t *testing.T) {
	for s := Off; s <= FastRef; s++ {
		parsed, ok := ParseState(s.String())
		require.True(t, ok)
		require.Equal(t, s, parsed)
	}
	require.False(t, State(42).Known())
	require.Equal(t, "State(?)", State(-1).String())
	require.True(t, RmpWfm.IsWaveform())
	require.True(t, MigWfm.IsWaveform())
	require.False(t, Cycle.IsWaveform())
	require.True(t, FastRef.Reserved())
	model, ok := ParseModel("FBP_DCLink")
	require.True(t, ok)
	require.Equal(t, ModelFBPDCLink, model)
}

package ipc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/drs.go/pkg/buffer"
	"github.com/robotalks/drs.go/pkg/psmodule"
)

func TestCommandCodes(t *testing.T) {
	testCases := []struct {
		cmd  Command
		line Line
	}{
		{CmdPSOnOff, LineCommand},
		{CmdOperatingMode, LineCommand},
		{CmdResetInterlocks, LineCommand},
		{CmdCtoMMessageError, LineCommand},
		{CmdWfmRefSync, LineSync},
		{CmdSoftInterlock, LineSoftInterlock},
		{CmdHardInterlock, LineHardInterlock},
	}
	for _, tc := range testCases {
		t.Run(tc.cmd.String(), func(t *testing.T) {
			require.True(t, tc.cmd.Known())
			require.Equal(t, tc.line, tc.cmd.Line())
		})
	}
	require.Equal(t, Command(0), CmdWfmRefSync&CommandMask)
	require.Equal(t, CmdSlowRefUpdate, CmdSlowRefUpdate&CommandMask)
	require.False(t, (CmdPSOnOff | CmdOpenCloseLoop).Known())
	require.Equal(t, "Command(0x00000051)", (CmdPSOnOff | CmdOpenCloseLoop).String())
}

func TestErrorCodes(t *testing.T) {
	require.NoError(t, NoError.Err())
	require.Equal(t, ErrInvalidOperatingMode, InvalidOperatingMode.Err())
	require.Equal(t, ErrInvalidModule, InvalidModule.Err())
	require.Equal(t, ErrCommandQueueFull, CommandQueueFull.Err())
	require.Equal(t, ErrUnknownErrorCode, ErrorCode(99).Err())
}

func TestRegistersSetRaisesLines(t *testing.T) {
	var regs Registers
	var lines []Line
	regs.BindInterrupter(InterruptFunc(func(l Line) { lines = append(lines, l) }))
	regs.Set(CmdSlowRefUpdate)
	regs.Set(CmdWfmRefSync)
	require.Equal(t, []Line{LineCommand, LineSync}, lines)
	require.Equal(t, CmdSlowRefUpdate, regs.Pending(CommandMask))
	require.Equal(t, uint32(CmdSlowRefUpdate|CmdWfmRefSync), regs.Status())
}

func TestRegistersAckWakesWaiter(t *testing.T) {
	var regs Registers
	w := regs.Expect(CmdOperatingMode)
	regs.Set(CmdOperatingMode)
	regs.Set(CmdWfmRefSync)
	go func() {
		time.Sleep(10 * time.Millisecond)
		regs.Ack(CmdOperatingMode)
	}()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, w.Wait(ctx))
	require.Equal(t, CmdOperatingMode, w.Acked())
	require.Equal(t, CmdOperatingMode, regs.LastAck())
	require.Equal(t, uint32(CmdWfmRefSync), regs.Status())
}

func TestRegistersWaitCanceled(t *testing.T) {
	var regs Registers
	w := regs.Expect(CmdPSOnOff)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Equal(t, context.Canceled, w.Wait(ctx))
	regs.Ack(CmdPSOnOff)
	select {
	case <-w.Done():
		t.Fatal("canceled waiter acknowledged")
	default:
	}
}

func TestRegistersWithdraw(t *testing.T) {
	var regs Registers
	regs.Set(CmdPSOnOff | CmdWfmRefSync)
	regs.Ack(CmdOpenCloseLoop)
	regs.Withdraw(CmdPSOnOff)
	require.Equal(t, uint32(CmdWfmRefSync), regs.Status())
	require.Equal(t, CmdOpenCloseLoop, regs.LastAck())
}

func TestRegistersFlags(t *testing.T) {
	var regs Registers
	require.False(t, regs.TakeFlag(FlagMtoCMessageError))
	regs.RaiseFlag(FlagMtoCMessageError)
	require.Equal(t, FlagMtoCMessageError, regs.Flags())
	require.True(t, regs.TakeFlag(FlagMtoCMessageError))
	require.Equal(t, Flag(0), regs.Flags())
	regs.GroupAck(LineSync)
	regs.GroupAck(LineSync)
	require.Equal(t, uint32(2), regs.GroupAcks(LineSync))
	require.Equal(t, uint32(0), regs.GroupAcks(LineCommand))
}

func TestMailboxSnapshotIsolation(t *testing.T) {
	ch := NewChannel()
	ch.MtoC.Publish(func(m *SupervisorToControl) {
		m.Mode = psmodule.RmpWfm
		m.Wfm = buffer.Payload{Gain: 2, Samples: []float32{1, 2}}
		m.DPModule.Coeffs = []float32{3}
	})
	snap := ch.MtoC.Snapshot()
	snap.Wfm.Samples[0] = 100
	snap.DPModule.Coeffs[0] = 100
	again := ch.MtoC.Snapshot()
	require.Equal(t, []float32{1, 2}, again.Wfm.Samples)
	require.Equal(t, []float32{3}, again.DPModule.Coeffs)
	require.Equal(t, psmodule.RmpWfm, again.Mode)

	ctom := ch.CtoM.Snapshot()
	require.True(t, ctom.OpenLoop)
	require.Equal(t, float32(1), ctom.Wfm.Gain)
	require.Equal(t, psmodule.Off, ctom.Mode)
}

func TestParamTable(t *testing.T) {
	var params ParamTable
	_, ok := params.Get(ParamControlFreq)
	require.False(t, ok)
	require.NoError(t, params.Configure(func(values map[string]float32) error {
		values[ParamControlFreq] = 200000
		values[ParamRefMax] = 10
		return nil
	}))
	require.Equal(t, float32(200000), params.GetOr(ParamControlFreq, 1))
	require.Equal(t, float32(-1), params.GetOr(ParamRefMin, -1))
	require.Equal(t, []string{ParamControlFreq, ParamRefMax}, params.Names())

	err := params.Configure(func(values map[string]float32) error {
		values[ParamRefMax] = 20
		return ErrInvalidModule
	})
	require.Equal(t, ErrInvalidModule, err)
	require.Equal(t, float32(10), params.GetOr(ParamRefMax, 0))
}

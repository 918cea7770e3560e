// Package supervisor implements the supervisor core side of the IPC
// channel and exposes it as an L1 controller.
package supervisor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robotalks/drs.go/pkg/buffer"
	"github.com/robotalks/drs.go/pkg/ipc"
	"github.com/robotalks/drs.go/pkg/psmodule"
)

// DefaultTimeout bounds the wait for an acknowledgment.
const DefaultTimeout = time.Second

// CommandError is the error posted by the control core for a command.
type CommandError struct {
	Command ipc.Command
	Code    ipc.ErrorCode
}

// Error implements error.
func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %v", e.Command, e.Code.Err())
}

// Unwrap returns the sentinel error of the code.
func (e *CommandError) Unwrap() error {
	return e.Code.Err()
}

// Client posts commands to the control core. Only one command is in
// flight at a time, on any line, so a posted error is never attributed
// to the wrong command.
type Client struct {
	Channel *ipc.Channel
	Timeout time.Duration

	lock sync.Mutex
}

// NewClient creates a Client over ch.
func NewClient(ch *ipc.Channel) *Client {
	return &Client{Channel: ch, Timeout: DefaultTimeout}
}

// Do fills the MtoC message, posts cmd and waits for its acknowledgment.
// A *CommandError is returned if the control core posted an error.
// On timeout cmd is withdrawn so it can't overlap the next command.
func (c *Client) Do(ctx context.Context, cmd ipc.Command, fill func(*ipc.SupervisorToControl)) error {
	if _, ok := ctx.Deadline(); !ok && c.Timeout > 0 {
		var cancel func()
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	regs := &c.Channel.Regs

	c.lock.Lock()
	defer c.lock.Unlock()
	if fill != nil {
		c.Channel.MtoC.Publish(fill)
	}
	regs.TakeFlag(ipc.FlagMtoCMessageError)
	w := regs.Expect(cmd)
	regs.Set(cmd)
	if err := w.Wait(ctx); err != nil {
		regs.Withdraw(cmd)
		return fmt.Errorf("%s: %v", cmd, err)
	}
	if regs.TakeFlag(ipc.FlagMtoCMessageError) {
		return &CommandError{Command: cmd, Code: c.Channel.CtoM.Snapshot().Error}
	}
	return nil
}

// Status returns a snapshot of the CtoM message.
func (c *Client) Status() ipc.ControlToSupervisor {
	return c.Channel.CtoM.Snapshot()
}

// TurnOn turns the power supply on.
func (c *Client) TurnOn(ctx context.Context) error {
	return c.Do(ctx, ipc.CmdPSOnOff, func(m *ipc.SupervisorToControl) { m.OnOff = true })
}

// TurnOff turns the power supply off.
func (c *Client) TurnOff(ctx context.Context) error {
	return c.Do(ctx, ipc.CmdPSOnOff, func(m *ipc.SupervisorToControl) { m.OnOff = false })
}

// SetOperatingMode requests mode. wfm is required for waveform modes.
func (c *Client) SetOperatingMode(ctx context.Context, mode psmodule.State, wfm *buffer.Payload) error {
	return c.Do(ctx, ipc.CmdOperatingMode, func(m *ipc.SupervisorToControl) {
		m.Mode = mode
		if wfm != nil {
			m.Wfm = wfm.Clone()
		}
	})
}

// SetOpenLoop selects open or closed loop.
func (c *Client) SetOpenLoop(ctx context.Context, open bool) error {
	return c.Do(ctx, ipc.CmdOpenCloseLoop, func(m *ipc.SupervisorToControl) { m.OpenLoop = open })
}

// SetSlowRef updates the reference in SlowRef mode.
func (c *Client) SetSlowRef(ctx context.Context, setpoint float32) error {
	return c.Do(ctx, ipc.CmdSlowRefUpdate, func(m *ipc.SupervisorToControl) { m.SlowRef = setpoint })
}

// EnableSigGen enables or disables the signal generator.
func (c *Client) EnableSigGen(ctx context.Context, enable bool) error {
	return c.Do(ctx, ipc.CmdSigGenEnable, func(m *ipc.SupervisorToControl) { m.SigGen.Enable = enable })
}

// ConfigSigGen reconfigures the signal generator.
func (c *Client) ConfigSigGen(ctx context.Context, params ipc.SigGenParams) error {
	return c.Do(ctx, ipc.CmdSigGenConfig, func(m *ipc.SupervisorToControl) {
		params.Enable = m.SigGen.Enable
		m.SigGen = params
	})
}

// ConfigDPModule configures one digital processing module.
func (c *Client) ConfigDPModule(ctx context.Context, req ipc.DPModuleRequest) error {
	return c.Do(ctx, ipc.CmdDPModulesConfig, func(m *ipc.SupervisorToControl) {
		m.DPModule = ipc.DPModuleRequest{
			ID:     req.ID,
			Class:  req.Class,
			Coeffs: append([]float32(nil), req.Coeffs...),
		}
	})
}

// SetSamplesBuffer turns the samples buffer on or off.
func (c *Client) SetSamplesBuffer(ctx context.Context, on bool) error {
	return c.Do(ctx, ipc.CmdSamplesBufferOnOff, func(m *ipc.SupervisorToControl) { m.BufferOn = on })
}

// ResetInterlocks clears all interlocks.
func (c *Client) ResetInterlocks(ctx context.Context) error {
	return c.Do(ctx, ipc.CmdResetInterlocks, nil)
}

// SyncWaveform refreshes the waveform curve and triggers a sync.
// A nil wfm syncs with the last posted curve.
func (c *Client) SyncWaveform(ctx context.Context, wfm *buffer.Payload) error {
	return c.Do(ctx, ipc.CmdWfmRefSync, func(m *ipc.SupervisorToControl) {
		if wfm != nil {
			m.Wfm = wfm.Clone()
		}
	})
}

// SoftInterlock reports soft interlock bits to the control core.
func (c *Client) SoftInterlock(ctx context.Context, bits uint32) error {
	return c.Do(ctx, ipc.CmdSoftInterlock, func(m *ipc.SupervisorToControl) { m.SoftInterlocks = bits })
}

// HardInterlock reports hard interlock bits to the control core.
func (c *Client) HardInterlock(ctx context.Context, bits uint32) error {
	return c.Do(ctx, ipc.CmdHardInterlock, func(m *ipc.SupervisorToControl) { m.HardInterlocks = bits })
}

// ReportMessageError tells the control core a CtoM message was bad.
func (c *Client) ReportMessageError(ctx context.Context) error {
	return c.Do(ctx, ipc.CmdCtoMMessageError, nil)
}

// ConfigParams updates the parameter table. It's serialized with
// commands so the control core never sees the table change while it
// serves one.
func (c *Client) ConfigParams(values map[string]float32) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.Channel.Params.Configure(func(params map[string]float32) error {
		for k, v := range values {
			params[k] = v
		}
		return nil
	})
}

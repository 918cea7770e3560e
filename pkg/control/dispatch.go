package control

import (
	"github.com/golang/glog"

	"github.com/robotalks/drs.go/pkg/buffer"
	"github.com/robotalks/drs.go/pkg/dp"
	"github.com/robotalks/drs.go/pkg/ipc"
	"github.com/robotalks/drs.go/pkg/psmodule"
	"github.com/robotalks/drs.go/pkg/siggen"
)

// HandleIRQ serves one interrupt of line.
func (c *Core) HandleIRQ(line ipc.Line) {
	switch line {
	case ipc.LineCommand:
		c.ServeCommand()
	case ipc.LineSync:
		c.ServeSync()
	case ipc.LineSoftInterlock, ipc.LineHardInterlock:
		c.ServeInterlock(line)
	default:
		glog.Errorf("unknown IRQ line %d", line)
	}
}

// serve runs fn inside the CtoM critical section, then posts the error
// if any, acknowledges code and the line group. The acknowledgments are
// always written exactly once.
func (c *Core) serve(line ipc.Line, fn func(out *ipc.ControlToSupervisor) (ipc.Command, ipc.ErrorCode)) {
	regs := &c.Channel.Regs
	c.Channel.CtoM.Publish(func(out *ipc.ControlToSupervisor) {
		code, errCode := fn(out)
		c.publish(out)
		if errCode != ipc.NoError {
			glog.Warningf("IPC %s rejected: %s", code, errCode)
			out.Error = errCode
			regs.RaiseFlag(ipc.FlagMtoCMessageError)
		}
		regs.Ack(code)
		regs.GroupAck(line)
	})
}

// ServeCommand serves at most one pending command channel command.
func (c *Core) ServeCommand() {
	c.serve(ipc.LineCommand, func(*ipc.ControlToSupervisor) (ipc.Command, ipc.ErrorCode) {
		cmd := c.Channel.Regs.Pending(ipc.CommandMask)
		glog.V(2).Infof("IPC serve %s", cmd)
		req := c.Channel.MtoC.Snapshot()
		return cmd, c.dispatch(cmd, &req)
	})
}

func (c *Core) dispatch(cmd ipc.Command, req *ipc.SupervisorToControl) ipc.ErrorCode {
	switch cmd {
	case ipc.CmdPSOnOff:
		handlers := c.Module.Handlers()
		if req.OnOff {
			c.SigGen.Disable()
			c.Wfm.Rearm()
			handlers.TurnOn()
		} else {
			handlers.TurnOff()
			c.SigGen.Disable()
			c.Wfm.Rearm()
		}
		c.on = req.OnOff
	case ipc.CmdOperatingMode:
		return c.configOperationMode(req.Mode, req)
	case ipc.CmdOpenCloseLoop:
		c.Module.Status.OpenLoop = req.OpenLoop
	case ipc.CmdSlowRefUpdate:
		if c.Module.Status.State != psmodule.SlowRef {
			return ipc.InvalidOperatingMode
		}
		c.Module.SetPoint = req.SlowRef
		c.Module.Reference = req.SlowRef
	case ipc.CmdSigGenEnable:
		c.updateSigGenParams(&req.SigGen)
		if req.SigGen.Enable {
			c.SigGen.Enable()
		} else {
			c.SigGen.Reset()
			c.SigGen.Disable()
		}
	case ipc.CmdSigGenConfig:
		c.updateSigGenParams(&req.SigGen)
		c.SigGen.Reinit(siggen.Config{
			Type:       siggen.Type(req.SigGen.Type),
			PhaseStart: req.SigGen.PhaseStart,
			PhaseEnd:   req.SigGen.PhaseEnd,
			NumCycles:  req.SigGen.NumCycles,
			SampleFreq: c.SigGen.Config().SampleFreq,
		})
	case ipc.CmdDPModulesConfig:
		m := &req.DPModule
		if err := c.DP.Configure(m.ID, dp.Class(m.Class), m.Coeffs); err != nil {
			glog.Warningf("DP module %d config: %v", m.ID, err)
			return ipc.InvalidModule
		}
	case ipc.CmdSamplesBufferOnOff:
		c.bufferOn = req.BufferOn
		c.Samples.Reset()
		if req.BufferOn {
			c.Samples.Busy = buffer.All
		} else {
			c.Samples.Busy = buffer.Idle
		}
	case ipc.CmdResetInterlocks:
		c.softInterlocks, c.hardInterlocks = 0, 0
		c.Module.Handlers().ResetInterlocks()
	case ipc.CmdCtoMMessageError:
		glog.Warning("supervisor reported CtoM message error")
	default:
		return ipc.CommandQueueFull
	}
	return ipc.NoError
}

// updateSigGenParams refreshes the values behind the signal generator
// bindings from the request.
func (c *Core) updateSigGenParams(req *ipc.SigGenParams) {
	c.sigParams = siggen.Params{
		Freq:      req.Freq,
		Amplitude: req.Amplitude,
		Offset:    req.Offset,
		Aux:       req.Aux,
	}
}

// ServeSync serves a waveform sync, either from the supervisor or
// from the hardware sync input.
func (c *Core) ServeSync() {
	c.serve(ipc.LineSync, func(*ipc.ControlToSupervisor) (ipc.Command, ipc.ErrorCode) {
		if !c.Module.Status.State.IsWaveform() {
			return ipc.CmdWfmRefSync, ipc.InvalidOperatingMode
		}
		req := c.Channel.MtoC.Snapshot()
		if err := c.Wfm.Load(req.Wfm); err != nil {
			glog.Warningf("waveform sync: %v", err)
			return ipc.CmdWfmRefSync, ipc.InvalidWaveform
		}
		c.Slicer.Rearm(SlotWaveform)
		c.syncFlag = true
		return ipc.CmdWfmRefSync, ipc.NoError
	})
}

// ServeInterlock serves an interlock raised by the supervisor. The bound
// handler is invoked and the reported bits are latched until reset.
func (c *Core) ServeInterlock(line ipc.Line) {
	c.serve(line, func(*ipc.ControlToSupervisor) (ipc.Command, ipc.ErrorCode) {
		req := c.Channel.MtoC.Snapshot()
		handlers := c.Module.Handlers()
		var code ipc.Command
		if line == ipc.LineHardInterlock {
			code = ipc.CmdHardInterlock
			c.hardInterlocks |= interlockBits(req.HardInterlocks)
			handlers.HardInterlock()
		} else {
			code = ipc.CmdSoftInterlock
			c.softInterlocks |= interlockBits(req.SoftInterlocks)
			handlers.SoftInterlock()
		}
		c.SigGen.Disable()
		c.Wfm.Rearm()
		c.Module.ZeroReference()
		c.Samples.Reset()
		c.Module.Status.State = psmodule.Interlock
		return code, ipc.NoError
	})
}

func interlockBits(bits uint32) uint32 {
	if bits == 0 {
		return 1
	}
	return bits
}

package control

import (
	"github.com/golang/glog"

	"github.com/robotalks/drs.go/pkg/ipc"
	"github.com/robotalks/drs.go/pkg/psmodule"
	"github.com/robotalks/drs.go/pkg/siggen"
)

// ConfigOperationMode transitions the module into mode using the
// current MtoC request, as if an OperatingMode command was served
// without acknowledgment. A failure is posted like a served command.
func (c *Core) ConfigOperationMode(mode psmodule.State) ipc.ErrorCode {
	var errCode ipc.ErrorCode
	c.Channel.CtoM.Publish(func(out *ipc.ControlToSupervisor) {
		req := c.Channel.MtoC.Snapshot()
		errCode = c.configOperationMode(mode, &req)
		c.publish(out)
		if errCode != ipc.NoError {
			out.Error = errCode
			c.Channel.Regs.RaiseFlag(ipc.FlagMtoCMessageError)
		}
	})
	return errCode
}

// configOperationMode applies the side effects of entering mode and
// records the mode. Unknown modes are ignored. Every recorded
// transition resets the samples buffer.
func (c *Core) configOperationMode(mode psmodule.State, req *ipc.SupervisorToControl) ipc.ErrorCode {
	handlers := c.Module.Handlers()
	switch mode {
	case psmodule.Off:
		c.Module.ZeroReference()
		handlers.TurnOff()
	case psmodule.Interlock:
		handlers.SoftInterlock()
		c.Module.ZeroReference()
	case psmodule.RmpWfm, psmodule.MigWfm:
		if err := c.Wfm.Load(req.Wfm); err != nil {
			glog.Warningf("enter %s: %v", mode, err)
			return ipc.InvalidWaveform
		}
		c.Wfm.Rearm()
		c.syncFlag = false
	case psmodule.SlowRef:
		c.Module.SetPoint = req.SlowRef
		c.Module.Reference = req.SlowRef
	case psmodule.Cycle:
		c.SigGen.Disable()
		c.sigParams.Freq = req.SigGen.Freq
		conf := c.SigGen.Config()
		conf.Type = siggen.Type(req.SigGen.Type)
		conf.NumCycles = req.SigGen.NumCycles
		conf.PhaseStart = req.SigGen.PhaseStart
		conf.PhaseEnd = req.SigGen.PhaseEnd
		c.SigGen.Reinit(conf)
	case psmodule.Initializing, psmodule.SlowRefSync, psmodule.FastRef:
	default:
		glog.Warningf("ignore unknown operating mode %d", int(mode))
		return ipc.NoError
	}
	glog.V(2).Infof("operating mode %s -> %s", c.Module.Status.State, mode)
	c.Samples.Reset()
	c.Module.Status.State = mode
	return ipc.NoError
}

package control

import (
	"github.com/robotalks/drs.go/pkg/buffer"
	"github.com/robotalks/drs.go/pkg/psmodule"
)

// Step runs one control tick: it advances the reference source of the
// current mode, logs the reference and publishes the CtoM message.
func (c *Core) Step() {
	state := c.Module.Status.State
	switch {
	case state.IsWaveform():
		if c.syncFlag {
			c.syncFlag = false
			c.Wfm.Start()
			c.Samples.Rewind()
		}
		if c.Slicer.Tick(SlotWaveform) {
			if v, ok := c.Wfm.Next(); ok {
				c.Module.Reference = v
			}
		}
	case state == psmodule.Cycle:
		if v, ok := c.SigGen.Step(); ok {
			c.Module.Reference = v
		}
	}
	if c.bufferOn && c.Samples.Busy != buffer.Idle {
		policy := buffer.Wrap
		if state.IsWaveform() {
			policy = buffer.Halt
		}
		c.Samples.Write(c.Module.Reference, policy)
	}
	c.Channel.CtoM.Publish(c.publish)
}

package ipc

import (
	"github.com/robotalks/drs.go/pkg/buffer"
)

// Channel is the complete shared memory between the two cores.
// It's created once and passed by handle to both sides.
type Channel struct {
	MtoC   MtoCMailbox
	CtoM   CtoMMailbox
	Params ParamTable
	Regs   Registers
}

// NewChannel creates a Channel with the power-on contents.
func NewChannel() *Channel {
	ch := &Channel{}
	ch.CtoM.msg = ControlToSupervisor{
		OpenLoop: true,
		Error:    NoError,
		Wfm: buffer.WaveformState{
			Gain:  1,
			Armed: true,
		},
	}
	ch.MtoC.msg = SupervisorToControl{
		OpenLoop: true,
		Wfm:      buffer.Payload{Gain: 1},
	}
	return ch
}

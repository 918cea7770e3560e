// Package control is the control core runtime: IPC dispatch, the
// operating mode state machine and the control tick.
package control

import (
	"github.com/robotalks/drs.go/pkg/buffer"
	"github.com/robotalks/drs.go/pkg/dp"
	"github.com/robotalks/drs.go/pkg/ipc"
	"github.com/robotalks/drs.go/pkg/psmodule"
	"github.com/robotalks/drs.go/pkg/siggen"
)

// Time slicer slots.
const (
	SlotWaveform = iota
	NumSlots
)

// Core owns all control core state. Except the Channel, nothing in
// Core is shared with the supervisor. All methods must be called from
// the single control loop.
type Core struct {
	Channel *ipc.Channel
	Module  *psmodule.Module
	Wfm     *buffer.DoubleBuffer
	Samples *buffer.Circular
	SigGen  *siggen.Generator
	DP      *dp.Framework
	Slicer  *TimeSlicer

	sigParams      siggen.Params
	on             bool
	bufferOn       bool
	softInterlocks uint32
	hardInterlocks uint32
	syncFlag       bool
}

// NewCore creates a Core with the default sizes.
func NewCore(ch *ipc.Channel, model psmodule.Model, handlers psmodule.Handlers) *Core {
	conf := NewConfig()
	conf.Model = model.String()
	core, err := conf.NewCore(ch, handlers)
	if err != nil {
		panic(err)
	}
	return core
}

func newCore(ch *ipc.Channel, module *psmodule.Module, conf *Config) *Core {
	c := &Core{
		Channel: ch,
		Module:  module,
		Wfm:     buffer.NewDoubleBuffer(conf.WfmBlockSize),
		Samples: buffer.NewCircular(conf.SamplesBufferSize),
		DP:      dp.New(conf.NumDPModules),
		Slicer:  NewTimeSlicer(uint32(conf.WfmRatio)),
	}
	c.SigGen = siggen.New(siggen.Bindings{Params: &c.sigParams, Output: &c.DP.Ref})
	c.SigGen.Reinit(siggen.Config{SampleFreq: ch.Params.GetOr(ipc.ParamControlFreq, conf.controlFreq())})
	ch.CtoM.Publish(c.publish)
	return c
}

// SyncFlag reports whether a waveform sync is pending for the control tick.
func (c *Core) SyncFlag() bool {
	return c.syncFlag
}

// IsOn reports whether the power supply was turned on.
func (c *Core) IsOn() bool {
	return c.on
}

// Interlocks returns the soft and hard interlock bitmasks.
func (c *Core) Interlocks() (soft, hard uint32) {
	return c.softInterlocks, c.hardInterlocks
}

// publish mirrors the control state into the CtoM message.
// The mode is written last.
func (c *Core) publish(out *ipc.ControlToSupervisor) {
	out.OnOff = c.on
	out.OpenLoop = c.Module.Status.OpenLoop
	out.SoftInterlocks = c.softInterlocks
	out.HardInterlocks = c.hardInterlocks
	out.BufferOn = c.bufferOn
	out.Reference = c.Module.Reference
	out.SamplesBuffer = c.Samples.State()
	out.Wfm = c.Wfm.State()
	out.Mode = c.Module.Status.State
}

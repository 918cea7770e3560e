package ipc

import (
	"github.com/robotalks/drs.go/pkg/buffer"
	"github.com/robotalks/drs.go/pkg/psmodule"
)

// SigGenParams are the signal generator parameters requested by the supervisor.
type SigGenParams struct {
	Type       uint16
	PhaseStart float32
	PhaseEnd   float32
	NumCycles  uint16
	Freq       float32
	Amplitude  float32
	Offset     float32
	Aux        float32
	Enable     bool
}

// DPModuleRequest addresses one digital processing module.
type DPModuleRequest struct {
	ID     uint16
	Class  uint16
	Coeffs []float32
}

// SupervisorToControl is the MtoC message, written by the supervisor only.
type SupervisorToControl struct {
	OnOff          bool
	Mode           psmodule.State
	OpenLoop       bool
	SlowRef        float32
	BufferOn       bool
	SoftInterlocks uint32
	HardInterlocks uint32
	SigGen         SigGenParams
	DPModule       DPModuleRequest
	Wfm            buffer.Payload
}

// Clone deep copies the message.
func (m *SupervisorToControl) Clone() SupervisorToControl {
	c := *m
	if m.DPModule.Coeffs != nil {
		c.DPModule.Coeffs = append([]float32(nil), m.DPModule.Coeffs...)
	}
	c.Wfm = m.Wfm.Clone()
	return c
}

// ControlToSupervisor is the CtoM message, written by the control core only.
type ControlToSupervisor struct {
	OnOff          bool
	Mode           psmodule.State
	OpenLoop       bool
	SoftInterlocks uint32
	HardInterlocks uint32
	BufferOn       bool
	Reference      float32
	Error          ErrorCode
	SamplesBuffer  buffer.State
	Wfm            buffer.WaveformState
}

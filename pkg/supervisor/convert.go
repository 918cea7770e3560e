package supervisor

import (
	"github.com/robotalks/drs.go/pkg/buffer"
	"github.com/robotalks/drs.go/pkg/ipc"
	"github.com/robotalks/drs.go/pkg/psmodule"
	"github.com/robotalks/drs.go/pkg/supervisor/msgs"
)

// PayloadFrom converts a wire curve into a waveform payload.
func PayloadFrom(wfm *msgs.PSWaveform) *buffer.Payload {
	if wfm == nil {
		return nil
	}
	p := &buffer.Payload{
		Gain:    wfm.Gain,
		Offset:  wfm.Offset,
		Samples: wfm.Samples,
	}
	switch wfm.Block {
	case 0:
		p.Block = buffer.Idle
	case 1:
		p.Block = buffer.Block0
	case 2:
		p.Block = buffer.Block1
	default:
		p.Block = buffer.All
	}
	return p
}

// StatusFrom converts a CtoM snapshot into a status event.
func StatusFrom(out ipc.ControlToSupervisor) *msgs.PSStatus {
	return &msgs.PSStatus{
		On:             out.OnOff,
		Mode:           uint32(out.Mode),
		OpenLoop:       out.OpenLoop,
		SoftInterlocks: out.SoftInterlocks,
		HardInterlocks: out.HardInterlocks,
		BufferOn:       out.BufferOn,
		Reference:      out.Reference,
		Error:          uint32(out.Error),
		SamplesIndex:   uint32(out.SamplesBuffer.Index),
		WfmBlock:       blockNumber(out.Wfm.Buffer.Busy),
		WfmIndex:       uint32(out.Wfm.Buffer.Index),
		WfmSize:        uint32(out.Wfm.Buffer.Size),
		WfmGain:        out.Wfm.Gain,
		WfmOffset:      out.Wfm.Offset,
	}
}

func blockNumber(s buffer.BusyState) uint32 {
	switch s {
	case buffer.Block0:
		return 1
	case buffer.Block1:
		return 2
	}
	return 0
}

func sigGenParamsFrom(m *msgs.PSSigGenConfig) ipc.SigGenParams {
	return ipc.SigGenParams{
		Type:       uint16(m.Type),
		PhaseStart: m.PhaseStart,
		PhaseEnd:   m.PhaseEnd,
		NumCycles:  uint16(m.NumCycles),
		Freq:       m.Freq,
		Amplitude:  m.Amplitude,
		Offset:     m.Offset,
		Aux:        m.Aux,
	}
}

func modeFrom(mode uint32) psmodule.State {
	return psmodule.State(mode)
}

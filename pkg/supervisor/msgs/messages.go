// Package msgs defines the L1 messages of the power supply controller.
package msgs

import (
	"github.com/golang/protobuf/proto"

	fx "github.com/robotalks/drs.go/pkg/framework"
	"github.com/robotalks/drs.go/pkg/l1/msgs"
)

// PSOnOff turns the power supply on or off.
type PSOnOff struct {
	On bool `protobuf:"varint,1,opt,name=on,proto3" json:"on,omitempty"`
}

// NewMessage implements Message.
func (m *PSOnOff) NewMessage() fx.Message { return &PSOnOff{} }

// TypeID implements SerializableMessage.
func (m *PSOnOff) TypeID() uint32 { return PSOnOffTypeID }

// Serializable implements SerializableMessage.
func (m *PSOnOff) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *PSOnOff) ProtoMessage() {}

// Reset implements proto.Message.
func (m *PSOnOff) Reset() { *m = PSOnOff{} }

// String implements proto.Message.
func (m *PSOnOff) String() string { return proto.CompactTextString(m) }

// PSOperatingMode requests an operating mode. Waveform modes take the curve along.
type PSOperatingMode struct {
	Mode uint32      `protobuf:"varint,1,opt,name=mode,proto3" json:"mode,omitempty"`
	Wfm  *PSWaveform `protobuf:"bytes,2,opt,name=wfm,proto3" json:"wfm,omitempty"`
}

// NewMessage implements Message.
func (m *PSOperatingMode) NewMessage() fx.Message { return &PSOperatingMode{} }

// TypeID implements SerializableMessage.
func (m *PSOperatingMode) TypeID() uint32 { return PSOperatingModeTypeID }

// Serializable implements SerializableMessage.
func (m *PSOperatingMode) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *PSOperatingMode) ProtoMessage() {}

// Reset implements proto.Message.
func (m *PSOperatingMode) Reset() { *m = PSOperatingMode{} }

// String implements proto.Message.
func (m *PSOperatingMode) String() string { return proto.CompactTextString(m) }

// PSOpenLoop selects open or closed loop.
type PSOpenLoop struct {
	Open bool `protobuf:"varint,1,opt,name=open,proto3" json:"open,omitempty"`
}

// NewMessage implements Message.
func (m *PSOpenLoop) NewMessage() fx.Message { return &PSOpenLoop{} }

// TypeID implements SerializableMessage.
func (m *PSOpenLoop) TypeID() uint32 { return PSOpenLoopTypeID }

// Serializable implements SerializableMessage.
func (m *PSOpenLoop) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *PSOpenLoop) ProtoMessage() {}

// Reset implements proto.Message.
func (m *PSOpenLoop) Reset() { *m = PSOpenLoop{} }

// String implements proto.Message.
func (m *PSOpenLoop) String() string { return proto.CompactTextString(m) }

// PSSlowRef updates the setpoint in SlowRef mode.
type PSSlowRef struct {
	Setpoint float32 `protobuf:"fixed32,1,opt,name=setpoint,proto3" json:"setpoint,omitempty"`
}

// NewMessage implements Message.
func (m *PSSlowRef) NewMessage() fx.Message { return &PSSlowRef{} }

// TypeID implements SerializableMessage.
func (m *PSSlowRef) TypeID() uint32 { return PSSlowRefTypeID }

// Serializable implements SerializableMessage.
func (m *PSSlowRef) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *PSSlowRef) ProtoMessage() {}

// Reset implements proto.Message.
func (m *PSSlowRef) Reset() { *m = PSSlowRef{} }

// String implements proto.Message.
func (m *PSSlowRef) String() string { return proto.CompactTextString(m) }

// PSSigGenEnable enables or disables the signal generator.
type PSSigGenEnable struct {
	Enable bool `protobuf:"varint,1,opt,name=enable,proto3" json:"enable,omitempty"`
}

// NewMessage implements Message.
func (m *PSSigGenEnable) NewMessage() fx.Message { return &PSSigGenEnable{} }

// TypeID implements SerializableMessage.
func (m *PSSigGenEnable) TypeID() uint32 { return PSSigGenEnableTypeID }

// Serializable implements SerializableMessage.
func (m *PSSigGenEnable) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *PSSigGenEnable) ProtoMessage() {}

// Reset implements proto.Message.
func (m *PSSigGenEnable) Reset() { *m = PSSigGenEnable{} }

// String implements proto.Message.
func (m *PSSigGenEnable) String() string { return proto.CompactTextString(m) }

// PSSigGenConfig reconfigures the signal generator.
type PSSigGenConfig struct {
	Type       uint32  `protobuf:"varint,1,opt,name=type,proto3" json:"type,omitempty"`
	PhaseStart float32 `protobuf:"fixed32,2,opt,name=phase_start,proto3" json:"phase_start,omitempty"`
	PhaseEnd   float32 `protobuf:"fixed32,3,opt,name=phase_end,proto3" json:"phase_end,omitempty"`
	NumCycles  uint32  `protobuf:"varint,4,opt,name=num_cycles,proto3" json:"num_cycles,omitempty"`
	Freq       float32 `protobuf:"fixed32,5,opt,name=freq,proto3" json:"freq,omitempty"`
	Amplitude  float32 `protobuf:"fixed32,6,opt,name=amplitude,proto3" json:"amplitude,omitempty"`
	Offset     float32 `protobuf:"fixed32,7,opt,name=offset,proto3" json:"offset,omitempty"`
	Aux        float32 `protobuf:"fixed32,8,opt,name=aux,proto3" json:"aux,omitempty"`
}

// NewMessage implements Message.
func (m *PSSigGenConfig) NewMessage() fx.Message { return &PSSigGenConfig{} }

// TypeID implements SerializableMessage.
func (m *PSSigGenConfig) TypeID() uint32 { return PSSigGenConfigTypeID }

// Serializable implements SerializableMessage.
func (m *PSSigGenConfig) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *PSSigGenConfig) ProtoMessage() {}

// Reset implements proto.Message.
func (m *PSSigGenConfig) Reset() { *m = PSSigGenConfig{} }

// String implements proto.Message.
func (m *PSSigGenConfig) String() string { return proto.CompactTextString(m) }

// PSDPModuleConfig configures a digital processing module.
type PSDPModuleConfig struct {
	ID     uint32    `protobuf:"varint,1,opt,name=id,proto3" json:"id,omitempty"`
	Class  uint32    `protobuf:"varint,2,opt,name=class,proto3" json:"class,omitempty"`
	Coeffs []float32 `protobuf:"fixed32,3,rep,packed,name=coeffs,proto3" json:"coeffs,omitempty"`
}

// NewMessage implements Message.
func (m *PSDPModuleConfig) NewMessage() fx.Message { return &PSDPModuleConfig{} }

// TypeID implements SerializableMessage.
func (m *PSDPModuleConfig) TypeID() uint32 { return PSDPModuleConfigTypeID }

// Serializable implements SerializableMessage.
func (m *PSDPModuleConfig) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *PSDPModuleConfig) ProtoMessage() {}

// Reset implements proto.Message.
func (m *PSDPModuleConfig) Reset() { *m = PSDPModuleConfig{} }

// String implements proto.Message.
func (m *PSDPModuleConfig) String() string { return proto.CompactTextString(m) }

// PSSamplesBuffer turns the samples buffer on or off.
type PSSamplesBuffer struct {
	On bool `protobuf:"varint,1,opt,name=on,proto3" json:"on,omitempty"`
}

// NewMessage implements Message.
func (m *PSSamplesBuffer) NewMessage() fx.Message { return &PSSamplesBuffer{} }

// TypeID implements SerializableMessage.
func (m *PSSamplesBuffer) TypeID() uint32 { return PSSamplesBufferTypeID }

// Serializable implements SerializableMessage.
func (m *PSSamplesBuffer) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *PSSamplesBuffer) ProtoMessage() {}

// Reset implements proto.Message.
func (m *PSSamplesBuffer) Reset() { *m = PSSamplesBuffer{} }

// String implements proto.Message.
func (m *PSSamplesBuffer) String() string { return proto.CompactTextString(m) }

// PSResetInterlocks clears all interlocks.
type PSResetInterlocks struct {
}

// NewMessage implements Message.
func (m *PSResetInterlocks) NewMessage() fx.Message { return &PSResetInterlocks{} }

// TypeID implements SerializableMessage.
func (m *PSResetInterlocks) TypeID() uint32 { return PSResetInterlocksTypeID }

// Serializable implements SerializableMessage.
func (m *PSResetInterlocks) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *PSResetInterlocks) ProtoMessage() {}

// Reset implements proto.Message.
func (m *PSResetInterlocks) Reset() { *m = PSResetInterlocks{} }

// String implements proto.Message.
func (m *PSResetInterlocks) String() string { return proto.CompactTextString(m) }

// PSWfmSync refreshes the waveform curve and syncs playback.
type PSWfmSync struct {
	Wfm *PSWaveform `protobuf:"bytes,1,opt,name=wfm,proto3" json:"wfm,omitempty"`
}

// NewMessage implements Message.
func (m *PSWfmSync) NewMessage() fx.Message { return &PSWfmSync{} }

// TypeID implements SerializableMessage.
func (m *PSWfmSync) TypeID() uint32 { return PSWfmSyncTypeID }

// Serializable implements SerializableMessage.
func (m *PSWfmSync) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *PSWfmSync) ProtoMessage() {}

// Reset implements proto.Message.
func (m *PSWfmSync) Reset() { *m = PSWfmSync{} }

// String implements proto.Message.
func (m *PSWfmSync) String() string { return proto.CompactTextString(m) }

// PSInterlock reports interlock bits to the control core.
type PSInterlock struct {
	Hard bool   `protobuf:"varint,1,opt,name=hard,proto3" json:"hard,omitempty"`
	Bits uint32 `protobuf:"varint,2,opt,name=bits,proto3" json:"bits,omitempty"`
}

// NewMessage implements Message.
func (m *PSInterlock) NewMessage() fx.Message { return &PSInterlock{} }

// TypeID implements SerializableMessage.
func (m *PSInterlock) TypeID() uint32 { return PSInterlockTypeID }

// Serializable implements SerializableMessage.
func (m *PSInterlock) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *PSInterlock) ProtoMessage() {}

// Reset implements proto.Message.
func (m *PSInterlock) Reset() { *m = PSInterlock{} }

// String implements proto.Message.
func (m *PSInterlock) String() string { return proto.CompactTextString(m) }

// PSParamsConfig updates the parameter table.
type PSParamsConfig struct {
	Params []*PSParam `protobuf:"bytes,1,rep,name=params,proto3" json:"params,omitempty"`
}

// NewMessage implements Message.
func (m *PSParamsConfig) NewMessage() fx.Message { return &PSParamsConfig{} }

// TypeID implements SerializableMessage.
func (m *PSParamsConfig) TypeID() uint32 { return PSParamsConfigTypeID }

// Serializable implements SerializableMessage.
func (m *PSParamsConfig) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *PSParamsConfig) ProtoMessage() {}

// Reset implements proto.Message.
func (m *PSParamsConfig) Reset() { *m = PSParamsConfig{} }

// String implements proto.Message.
func (m *PSParamsConfig) String() string { return proto.CompactTextString(m) }

// PSStatusQuery queries the status.
type PSStatusQuery struct {
}

// NewMessage implements Message.
func (m *PSStatusQuery) NewMessage() fx.Message { return &PSStatusQuery{} }

// TypeID implements SerializableMessage.
func (m *PSStatusQuery) TypeID() uint32 { return PSStatusQueryTypeID }

// Serializable implements SerializableMessage.
func (m *PSStatusQuery) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *PSStatusQuery) ProtoMessage() {}

// Reset implements proto.Message.
func (m *PSStatusQuery) Reset() { *m = PSStatusQuery{} }

// String implements proto.Message.
func (m *PSStatusQuery) String() string { return proto.CompactTextString(m) }

// PSStatusReply is the response for PSStatusQuery.
type PSStatusReply struct {
	Status *PSStatus `protobuf:"bytes,1,opt,name=status,proto3" json:"status,omitempty"`
}

// NewMessage implements Message.
func (m *PSStatusReply) NewMessage() fx.Message { return &PSStatusReply{} }

// TypeID implements SerializableMessage.
func (m *PSStatusReply) TypeID() uint32 { return PSStatusReplyTypeID }

// Serializable implements SerializableMessage.
func (m *PSStatusReply) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *PSStatusReply) ProtoMessage() {}

// Reset implements proto.Message.
func (m *PSStatusReply) Reset() { *m = PSStatusReply{} }

// String implements proto.Message.
func (m *PSStatusReply) String() string { return proto.CompactTextString(m) }

// PSStatus is an Event message reflecting the power supply status.
type PSStatus struct {
	On             bool    `protobuf:"varint,1,opt,name=on,proto3" json:"on,omitempty"`
	Mode           uint32  `protobuf:"varint,2,opt,name=mode,proto3" json:"mode,omitempty"`
	OpenLoop       bool    `protobuf:"varint,3,opt,name=open_loop,proto3" json:"open_loop,omitempty"`
	SoftInterlocks uint32  `protobuf:"varint,4,opt,name=soft_interlocks,proto3" json:"soft_interlocks,omitempty"`
	HardInterlocks uint32  `protobuf:"varint,5,opt,name=hard_interlocks,proto3" json:"hard_interlocks,omitempty"`
	BufferOn       bool    `protobuf:"varint,6,opt,name=buffer_on,proto3" json:"buffer_on,omitempty"`
	Reference      float32 `protobuf:"fixed32,7,opt,name=reference,proto3" json:"reference,omitempty"`
	Error          uint32  `protobuf:"varint,8,opt,name=error,proto3" json:"error,omitempty"`
	SamplesIndex   uint32  `protobuf:"varint,9,opt,name=samples_index,proto3" json:"samples_index,omitempty"`
	WfmBlock       uint32  `protobuf:"varint,10,opt,name=wfm_block,proto3" json:"wfm_block,omitempty"`
	WfmIndex       uint32  `protobuf:"varint,11,opt,name=wfm_index,proto3" json:"wfm_index,omitempty"`
	WfmSize        uint32  `protobuf:"varint,12,opt,name=wfm_size,proto3" json:"wfm_size,omitempty"`
	WfmGain        float32 `protobuf:"fixed32,13,opt,name=wfm_gain,proto3" json:"wfm_gain,omitempty"`
	WfmOffset      float32 `protobuf:"fixed32,14,opt,name=wfm_offset,proto3" json:"wfm_offset,omitempty"`
}

// NewMessage implements Message.
func (m *PSStatus) NewMessage() fx.Message { return &PSStatus{} }

// TypeID implements SerializableMessage.
func (m *PSStatus) TypeID() uint32 { return PSStatusEventTypeID }

// Serializable implements SerializableMessage.
func (m *PSStatus) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *PSStatus) ProtoMessage() {}

// Reset implements proto.Message.
func (m *PSStatus) Reset() { *m = PSStatus{} }

// String implements proto.Message.
func (m *PSStatus) String() string { return proto.CompactTextString(m) }

// PSWaveform is a waveform curve. Block 0 targets the block not being
// played back, 1 and 2 select block 0 and block 1.
type PSWaveform struct {
	Gain    float32   `protobuf:"fixed32,1,opt,name=gain,proto3" json:"gain,omitempty"`
	Offset  float32   `protobuf:"fixed32,2,opt,name=offset,proto3" json:"offset,omitempty"`
	Block   uint32    `protobuf:"varint,3,opt,name=block,proto3" json:"block,omitempty"`
	Samples []float32 `protobuf:"fixed32,4,rep,packed,name=samples,proto3" json:"samples,omitempty"`
}

// PSParam is a named parameter value.
type PSParam struct {
	Name  string  `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
	Value float32 `protobuf:"fixed32,2,opt,name=value,proto3" json:"value,omitempty"`
}

// GroupPS defines the custom group.
const GroupPS = msgs.GroupCustom

// TypeIDs
const (
	PSStatusEventTypeID     uint32 = GroupPS | msgs.TypeIDKindEvent | 0x0000
	PSStatusQueryTypeID     uint32 = GroupPS | 0x0000
	PSStatusReplyTypeID     uint32 = GroupPS | msgs.TypeIDMaskReply | 0x0000
	PSOnOffTypeID           uint32 = GroupPS | 0x0001
	PSOperatingModeTypeID   uint32 = GroupPS | 0x0002
	PSOpenLoopTypeID        uint32 = GroupPS | 0x0003
	PSSlowRefTypeID         uint32 = GroupPS | 0x0004
	PSSigGenEnableTypeID    uint32 = GroupPS | 0x0005
	PSSigGenConfigTypeID    uint32 = GroupPS | 0x0006
	PSDPModuleConfigTypeID  uint32 = GroupPS | 0x0007
	PSSamplesBufferTypeID   uint32 = GroupPS | 0x0008
	PSResetInterlocksTypeID uint32 = GroupPS | 0x0009
	PSWfmSyncTypeID         uint32 = GroupPS | 0x000a
	PSInterlockTypeID       uint32 = GroupPS | 0x000b
	PSParamsConfigTypeID    uint32 = GroupPS | 0x000c
)

func init() {
	msgs.MessageTypes[PSOnOffTypeID] = (*PSOnOff)(nil)
	msgs.MessageTypes[PSOperatingModeTypeID] = (*PSOperatingMode)(nil)
	msgs.MessageTypes[PSOpenLoopTypeID] = (*PSOpenLoop)(nil)
	msgs.MessageTypes[PSSlowRefTypeID] = (*PSSlowRef)(nil)
	msgs.MessageTypes[PSSigGenEnableTypeID] = (*PSSigGenEnable)(nil)
	msgs.MessageTypes[PSSigGenConfigTypeID] = (*PSSigGenConfig)(nil)
	msgs.MessageTypes[PSDPModuleConfigTypeID] = (*PSDPModuleConfig)(nil)
	msgs.MessageTypes[PSSamplesBufferTypeID] = (*PSSamplesBuffer)(nil)
	msgs.MessageTypes[PSResetInterlocksTypeID] = (*PSResetInterlocks)(nil)
	msgs.MessageTypes[PSWfmSyncTypeID] = (*PSWfmSync)(nil)
	msgs.MessageTypes[PSInterlockTypeID] = (*PSInterlock)(nil)
	msgs.MessageTypes[PSParamsConfigTypeID] = (*PSParamsConfig)(nil)
	msgs.MessageTypes[PSStatusQueryTypeID] = (*PSStatusQuery)(nil)
	msgs.MessageTypes[PSStatusReplyTypeID] = (*PSStatusReply)(nil)
	msgs.MessageTypes[PSStatusEventTypeID] = (*PSStatus)(nil)
}

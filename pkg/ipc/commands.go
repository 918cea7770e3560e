package ipc

import "fmt"

// Command is a bit pattern in the MtoC status register.
// Bit n-1 corresponds to IPCn.
type Command uint32

// Channel 1 commands, IPC1 plus a selector bit.
const (
	CmdPSOnOff            Command = 0x00000011
	CmdOperatingMode      Command = 0x00000021
	CmdOpenCloseLoop      Command = 0x00000041
	CmdSlowRefUpdate      Command = 0x00000081
	CmdSigGenEnable       Command = 0x00000101
	CmdSigGenConfig       Command = 0x00000201
	CmdDPModulesConfig    Command = 0x00000401
	CmdSamplesBufferOnOff Command = 0x00000801
	CmdResetInterlocks    Command = 0x00001001
	CmdCtoMMessageError   Command = 0x80000001
)

// Commands on dedicated channels.
const (
	CmdWfmRefSync    Command = 0x00000002
	CmdSoftInterlock Command = 0x00000004
	CmdHardInterlock Command = 0x00000008
)

// CommandMask selects the command channel bits, excluding the
// dedicated channels.
const CommandMask Command = 0xFFFFFFF1

var commandNames = map[Command]string{
	CmdPSOnOff:            "PSOnOff",
	CmdOperatingMode:      "OperatingMode",
	CmdOpenCloseLoop:      "OpenCloseLoop",
	CmdSlowRefUpdate:      "SlowRefUpdate",
	CmdSigGenEnable:       "SigGenEnable",
	CmdSigGenConfig:       "SigGenConfig",
	CmdDPModulesConfig:    "DPModulesConfig",
	CmdSamplesBufferOnOff: "SamplesBufferOnOff",
	CmdResetInterlocks:    "ResetInterlocks",
	CmdCtoMMessageError:   "CtoMMessageError",
	CmdWfmRefSync:         "WfmRefSync",
	CmdSoftInterlock:      "SoftInterlock",
	CmdHardInterlock:      "HardInterlock",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Command(0x%08x)", uint32(c))
}

// Known reports whether c is exactly one defined command.
func (c Command) Known() bool {
	_, ok := commandNames[c]
	return ok
}

// Line returns the interrupt line the command is delivered on.
func (c Command) Line() Line {
	switch c {
	case CmdWfmRefSync:
		return LineSync
	case CmdSoftInterlock:
		return LineSoftInterlock
	case CmdHardInterlock:
		return LineHardInterlock
	}
	return LineCommand
}

// Line is an interrupt line from the supervisor to the control core.
type Line int

// Interrupt lines, in register bit order.
const (
	LineCommand Line = iota
	LineSync
	LineSoftInterlock
	LineHardInterlock

	NumLines int = iota
)

func (l Line) String() string {
	switch l {
	case LineCommand:
		return "command"
	case LineSync:
		return "sync"
	case LineSoftInterlock:
		return "soft-interlock"
	case LineHardInterlock:
		return "hard-interlock"
	}
	return "line(?)"
}

// linesOf returns the lines raised by setting bits.
func linesOf(bits uint32) []Line {
	var lines []Line
	for l := LineCommand; int(l) < NumLines; l++ {
		if bits&(1<<uint(l)) != 0 {
			lines = append(lines, l)
		}
	}
	return lines
}

// Flag is a bit in the CtoM flag register.
type Flag uint32

// CtoM flags.
const (
	// FlagMtoCMessageError indicates an error code was posted for the
	// last MtoC message.
	FlagMtoCMessageError Flag = 0x00000001
)

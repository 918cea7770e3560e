// Package ps provides shell commands for the power supply controller.
package ps

import (
	"fmt"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/drs.go/pkg/cli/sh"
	fx "github.com/robotalks/drs.go/pkg/framework"
	"github.com/robotalks/drs.go/pkg/supervisor/msgs"
)

func switchCmd(name, alias, help string, build func(bool) fx.Message) *ishell.Cmd {
	return &ishell.Cmd{
		Name:    name,
		Aliases: []string{alias},
		Help:    help,
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("on|off required"))
				return
			}
			on, err := parseSwitch(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			sh.DoCommand(c, build(on))
		}),
	}
}

var (
	// OnCmd turns the power supply on.
	OnCmd = ishell.Cmd{
		Name: "ps.on",
		Help: "turn power supply on",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			sh.DoCommand(c, &msgs.PSOnOff{On: true})
		}),
	}

	// OffCmd turns the power supply off.
	OffCmd = ishell.Cmd{
		Name: "ps.off",
		Help: "turn power supply off",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			sh.DoCommand(c, &msgs.PSOnOff{On: false})
		}),
	}

	// ModeCmd exposes PSOperatingMode command.
	ModeCmd = ishell.Cmd{
		Name:    "ps.mode",
		Aliases: []string{"psm"},
		Help:    "MODE [[@BLOCK] GAIN OFFSET SAMPLES...]",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("MODE required"))
				return
			}
			mode, err := parseMode(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			msg := msgs.PSOperatingMode{Mode: mode}
			if len(c.Args) > 1 {
				if msg.Wfm, err = parseWaveform(c.Args[1:]); err != nil {
					c.Err(err)
					return
				}
			}
			sh.DoCommand(c, &msg)
		}),
	}

	// LoopCmd exposes PSOpenLoop command.
	LoopCmd = ishell.Cmd{
		Name: "ps.loop",
		Help: "open|closed",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("open|closed required"))
				return
			}
			var msg msgs.PSOpenLoop
			switch c.Args[0] {
			case "open":
				msg.Open = true
			case "closed", "close":
			default:
				c.Err(fmt.Errorf("Invalid loop %q, expect open|closed", c.Args[0]))
				return
			}
			sh.DoCommand(c, &msg)
		}),
	}

	// SlowRefCmd exposes PSSlowRef command.
	SlowRefCmd = ishell.Cmd{
		Name:    "ps.slowref",
		Aliases: []string{"psr"},
		Help:    "SETPOINT",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("SETPOINT required"))
				return
			}
			val, err := parseFloat("SETPOINT", c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			sh.DoCommand(c, &msgs.PSSlowRef{Setpoint: val})
		}),
	}

	// SigGenCmd exposes PSSigGenEnable command.
	SigGenCmd = switchCmd("ps.siggen", "psg", "on|off", func(on bool) fx.Message {
		return &msgs.PSSigGenEnable{Enable: on}
	})

	// SigGenConfigCmd exposes PSSigGenConfig command.
	SigGenConfigCmd = ishell.Cmd{
		Name:    "ps.siggen.config",
		Aliases: []string{"psgc"},
		Help:    "TYPE CYCLES FREQ AMPLITUDE OFFSET [AUX [PHASE-START PHASE-END]]",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) < 5 {
				c.Err(fmt.Errorf("TYPE CYCLES FREQ AMPLITUDE OFFSET required"))
				return
			}
			var msg msgs.PSSigGenConfig
			var err error
			if msg.Type, err = parseSigGenType(c.Args[0]); err != nil {
				c.Err(err)
				return
			}
			if msg.NumCycles, err = parseUint("CYCLES", c.Args[1]); err != nil {
				c.Err(err)
				return
			}
			vals, err := parseFloats("value", c.Args[2:])
			if err != nil {
				c.Err(err)
				return
			}
			msg.Freq, msg.Amplitude, msg.Offset = vals[0], vals[1], vals[2]
			if len(vals) > 3 {
				msg.Aux = vals[3]
			}
			if len(vals) > 5 {
				msg.PhaseStart, msg.PhaseEnd = vals[4], vals[5]
			}
			sh.DoCommand(c, &msg)
		}),
	}

	// DPCmd exposes PSDPModuleConfig command.
	DPCmd = ishell.Cmd{
		Name:    "ps.dp",
		Aliases: []string{"psdp"},
		Help:    "ID CLASS COEFFS...",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) < 2 {
				c.Err(fmt.Errorf("ID CLASS required"))
				return
			}
			var msg msgs.PSDPModuleConfig
			var err error
			if msg.ID, err = parseUint("ID", c.Args[0]); err != nil {
				c.Err(err)
				return
			}
			if msg.Class, err = parseUint("CLASS", c.Args[1]); err != nil {
				c.Err(err)
				return
			}
			if msg.Coeffs, err = parseFloats("COEFF", c.Args[2:]); err != nil {
				c.Err(err)
				return
			}
			sh.DoCommand(c, &msg)
		}),
	}

	// BufferCmd exposes PSSamplesBuffer command.
	BufferCmd = switchCmd("ps.buffer", "psb", "on|off", func(on bool) fx.Message {
		return &msgs.PSSamplesBuffer{On: on}
	})

	// ResetCmd exposes PSResetInterlocks command.
	ResetCmd = ishell.Cmd{
		Name: "ps.reset",
		Help: "reset interlocks",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			sh.DoCommand(c, &msgs.PSResetInterlocks{})
		}),
	}

	// SyncCmd exposes PSWfmSync command.
	SyncCmd = ishell.Cmd{
		Name:    "ps.sync",
		Aliases: []string{"pss"},
		Help:    "[[@BLOCK] GAIN OFFSET SAMPLES...]",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			var msg msgs.PSWfmSync
			if len(c.Args) > 0 {
				wfm, err := parseWaveform(c.Args)
				if err != nil {
					c.Err(err)
					return
				}
				msg.Wfm = wfm
			}
			sh.DoCommand(c, &msg)
		}),
	}

	// InterlockCmd exposes PSInterlock command.
	InterlockCmd = ishell.Cmd{
		Name:    "ps.interlock",
		Aliases: []string{"psi"},
		Help:    "soft|hard BITS",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) < 2 {
				c.Err(fmt.Errorf("soft|hard BITS required"))
				return
			}
			var msg msgs.PSInterlock
			switch c.Args[0] {
			case "soft":
			case "hard":
				msg.Hard = true
			default:
				c.Err(fmt.Errorf("Invalid interlock %q, expect soft|hard", c.Args[0]))
				return
			}
			bits, err := parseUint("BITS", c.Args[1])
			if err != nil {
				c.Err(err)
				return
			}
			msg.Bits = bits
			sh.DoCommand(c, &msg)
		}),
	}

	// ParamsCmd exposes PSParamsConfig command.
	ParamsCmd = ishell.Cmd{
		Name:    "ps.params",
		Aliases: []string{"psp"},
		Help:    "NAME=VALUE...",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("NAME=VALUE required"))
				return
			}
			params, err := parseParams(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			sh.DoCommand(c, &msgs.PSParamsConfig{Params: params})
		}),
	}

	// StatusCmd exposes PSStatusQuery command.
	StatusCmd = ishell.Cmd{
		Name:    "ps.status",
		Aliases: []string{"pst"},
		Help:    "",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			sh.DoCommand(c, &msgs.PSStatusQuery{})
		}),
	}
)

func init() {
	sh.AddCmds(
		&OnCmd,
		&OffCmd,
		&ModeCmd,
		&LoopCmd,
		&SlowRefCmd,
		SigGenCmd,
		&SigGenConfigCmd,
		&DPCmd,
		BufferCmd,
		&ResetCmd,
		&SyncCmd,
		&InterlockCmd,
		&ParamsCmd,
		&StatusCmd,
	)
}

package ps

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/robotalks/drs.go/pkg/psmodule"
	"github.com/robotalks/drs.go/pkg/siggen"
	"github.com/robotalks/drs.go/pkg/supervisor/msgs"
)

func parseFloat(name, s string) (float32, error) {
	val, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, fmt.Errorf("Invalid %s: %v", name, err)
	}
	return float32(val), nil
}

func parseFloats(name string, args []string) ([]float32, error) {
	vals := make([]float32, 0, len(args))
	for _, arg := range args {
		val, err := parseFloat(name, arg)
		if err != nil {
			return nil, err
		}
		vals = append(vals, val)
	}
	return vals, nil
}

func parseUint(name, s string) (uint32, error) {
	val, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("Invalid %s: %v", name, err)
	}
	return uint32(val), nil
}

func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "1", "true", "enable":
		return true, nil
	case "off", "0", "false", "disable":
		return false, nil
	}
	return false, fmt.Errorf("Invalid switch %q, expect on|off", s)
}

// parseMode accepts a state name (case-insensitive) or its number.
func parseMode(s string) (uint32, error) {
	for n := psmodule.Off; n.Known(); n++ {
		if strings.EqualFold(n.String(), s) {
			return uint32(n), nil
		}
	}
	return parseUint("MODE", s)
}

func parseSigGenType(s string) (uint32, error) {
	for t := siggen.Sine; t <= siggen.DampedSquaredSine; t++ {
		if strings.EqualFold(t.String(), s) {
			return uint32(t), nil
		}
	}
	return parseUint("TYPE", s)
}

// parseWaveform parses GAIN OFFSET SAMPLES... with optional @BLOCK first.
func parseWaveform(args []string) (*msgs.PSWaveform, error) {
	wfm := &msgs.PSWaveform{}
	if len(args) > 0 && strings.HasPrefix(args[0], "@") {
		block, err := parseUint("BLOCK", args[0][1:])
		if err != nil {
			return nil, err
		}
		wfm.Block = block
		args = args[1:]
	}
	if len(args) < 3 {
		return nil, fmt.Errorf("GAIN OFFSET SAMPLES... required")
	}
	var err error
	if wfm.Gain, err = parseFloat("GAIN", args[0]); err != nil {
		return nil, err
	}
	if wfm.Offset, err = parseFloat("OFFSET", args[1]); err != nil {
		return nil, err
	}
	if wfm.Samples, err = parseFloats("SAMPLE", args[2:]); err != nil {
		return nil, err
	}
	return wfm, nil
}

func parseParams(args []string) ([]*msgs.PSParam, error) {
	params := make([]*msgs.PSParam, 0, len(args))
	for _, arg := range args {
		pos := strings.Index(arg, "=")
		if pos <= 0 {
			return nil, fmt.Errorf("Invalid param %q, expect NAME=VALUE", arg)
		}
		val, err := parseFloat(arg[:pos], arg[pos+1:])
		if err != nil {
			return nil, err
		}
		params = append(params, &msgs.PSParam{Name: arg[:pos], Value: val})
	}
	return params, nil
}

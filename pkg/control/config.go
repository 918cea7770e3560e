package control

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/robotalks/drs.go/pkg/buffer"
	"github.com/robotalks/drs.go/pkg/dp"
	"github.com/robotalks/drs.go/pkg/ipc"
	"github.com/robotalks/drs.go/pkg/psmodule"
)

// Config defines the control core configurations.
type Config struct {
	// Model is the power supply model name, e.g. FBP.
	Model string
	// Period is the control tick period.
	Period time.Duration

	WfmBlockSize      int
	SamplesBufferSize int
	NumDPModules      int
	// WfmRatio is the number of control ticks per waveform sample.
	WfmRatio uint
}

// DefaultSamplesBufferSize is the capacity of the samples buffer.
const DefaultSamplesBufferSize = 4096

var defaultConfig = Config{
	Model:             psmodule.ModelFBP.String(),
	Period:            time.Millisecond,
	WfmBlockSize:      buffer.DefaultBlockSize,
	SamplesBufferSize: DefaultSamplesBufferSize,
	NumDPModules:      dp.DefaultNumModules,
	WfmRatio:          1,
}

func init() {
	if val := os.Getenv("DRS_MODEL"); val != "" {
		defaultConfig.Model = val
	}
	if val := os.Getenv("DRS_CONTROL_PERIOD"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			defaultConfig.Period = d
		}
	}
	if val := os.Getenv("DRS_WFM_RATIO"); val != "" {
		if n, err := strconv.ParseUint(val, 10, 32); err == nil {
			defaultConfig.WfmRatio = uint(n)
		}
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Model, "model", defaultConfig.Model, "Power supply model")
	flag.DurationVar(&defaultConfig.Period, "control-period", defaultConfig.Period, "Control tick period")
	flag.IntVar(&defaultConfig.WfmBlockSize, "wfm-block-size", defaultConfig.WfmBlockSize, "Waveform curve block size")
	flag.IntVar(&defaultConfig.SamplesBufferSize, "samples-buffer-size", defaultConfig.SamplesBufferSize, "Samples buffer size")
	flag.IntVar(&defaultConfig.NumDPModules, "dp-modules", defaultConfig.NumDPModules, "Number of DP modules")
	flag.UintVar(&defaultConfig.WfmRatio, "wfm-ratio", defaultConfig.WfmRatio, "Control ticks per waveform sample")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

func (c *Config) controlFreq() float32 {
	if c.Period <= 0 {
		return 0
	}
	return float32(time.Second) / float32(c.Period)
}

// NewCore creates a Core using the config.
func (c *Config) NewCore(ch *ipc.Channel, handlers psmodule.Handlers) (*Core, error) {
	model, ok := psmodule.ParseModel(c.Model)
	if !ok {
		return nil, fmt.Errorf("unknown power supply model %q", c.Model)
	}
	if c.WfmBlockSize <= 0 || c.SamplesBufferSize <= 0 {
		return nil, fmt.Errorf("buffer sizes must be positive")
	}
	return newCore(ch, psmodule.New(model, handlers), c), nil
}

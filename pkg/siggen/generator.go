// Package siggen is the signal generator collaborator of the control core.
// Only its control surface is implemented, the generated output is
// the bound offset.
package siggen

import "github.com/golang/glog"

// Type selects the generated waveform.
type Type uint16

// Signal types.
const (
	Sine Type = iota
	DampedSine
	Trapezoidal
	DampedSquaredSine
)

func (t Type) String() string {
	switch t {
	case Sine:
		return "Sine"
	case DampedSine:
		return "DampedSine"
	case Trapezoidal:
		return "Trapezoidal"
	case DampedSquaredSine:
		return "DampedSquaredSine"
	}
	return "Type(?)"
}

// Config is the shape of the generated signal.
type Config struct {
	Type       Type
	PhaseStart float32
	PhaseEnd   float32
	NumCycles  uint16
	SampleFreq float32
}

// Params are the live signal parameters.
type Params struct {
	Freq      float32
	Amplitude float32
	Offset    float32
	Aux       float32
}

// Bindings are references kept across Reinit.
type Bindings struct {
	Params *Params
	Output *float32
}

// Generator is a signal generator.
type Generator struct {
	config   Config
	bindings Bindings
	enabled  bool
	samples  uint32
}

// New creates a Generator, disabled.
func New(bindings Bindings) *Generator {
	if bindings.Params == nil {
		bindings.Params = &Params{}
	}
	return &Generator{bindings: bindings}
}

// Enable starts generating.
func (g *Generator) Enable() {
	g.enabled = true
}

// Disable stops generating.
func (g *Generator) Disable() {
	g.enabled = false
}

// Reset restarts the signal from its first sample.
func (g *Generator) Reset() {
	g.samples = 0
}

// Reinit replaces the signal shape and restarts the signal, keeping
// bindings and the enable state.
func (g *Generator) Reinit(config Config) {
	glog.V(2).Infof("siggen reinit %s cycles=%d phase=[%v,%v]",
		config.Type, config.NumCycles, config.PhaseStart, config.PhaseEnd)
	g.config = config
	g.samples = 0
}

// Config returns the signal shape.
func (g *Generator) Config() Config {
	return g.config
}

// Bindings returns the bound references.
func (g *Generator) Bindings() Bindings {
	return g.bindings
}

// Enabled reports whether the generator runs.
func (g *Generator) Enabled() bool {
	return g.enabled
}

// Samples returns the samples generated since Reset.
func (g *Generator) Samples() uint32 {
	return g.samples
}

// Step produces one sample into Output when enabled.
func (g *Generator) Step() (float32, bool) {
	if !g.enabled {
		return 0, false
	}
	g.samples++
	v := g.bindings.Params.Offset
	if out := g.bindings.Output; out != nil {
		*out = v
	}
	return v, true
}

package psmodule

// State is the operating state of a power supply module.
type State int

// Operating states.
const (
	Off State = iota
	Interlock
	Initializing
	SlowRef
	SlowRefSync
	Cycle
	RmpWfm
	MigWfm
	FastRef
)

var stateNames = [...]string{
	Off:          "Off",
	Interlock:    "Interlock",
	Initializing: "Initializing",
	SlowRef:      "SlowRef",
	SlowRefSync:  "SlowRefSync",
	Cycle:        "Cycle",
	RmpWfm:       "RmpWfm",
	MigWfm:       "MigWfm",
	FastRef:      "FastRef",
}

func (s State) String() string {
	if s.Known() {
		return stateNames[s]
	}
	return "State(?)"
}

// Known reports whether s is a defined state.
func (s State) Known() bool {
	return s >= Off && int(s) < len(stateNames)
}

// Reserved reports states which are accepted but have no transition logic yet.
func (s State) Reserved() bool {
	return s == FastRef
}

// IsWaveform reports whether the state tracks a waveform reference curve.
func (s State) IsWaveform() bool {
	return s == RmpWfm || s == MigWfm
}

// ParseState finds a state by name.
func ParseState(name string) (State, bool) {
	for n, str := range stateNames {
		if str == name {
			return State(n), true
		}
	}
	return 0, false
}

// Interface is the communication interface commanding the module.
type Interface int

// Interfaces.
const (
	Remote Interface = iota
	Local
	PCHost
)

func (i Interface) String() string {
	switch i {
	case Remote:
		return "Remote"
	case Local:
		return "Local"
	case PCHost:
		return "PCHost"
	}
	return "Interface(?)"
}

// Model identifies the power supply hardware.
type Model int

// Supported models.
const (
	ModelUninitialized Model = iota
	ModelFBP
	ModelFBPDCLink
	ModelFACACDC
	ModelFACDCDC
	ModelFAC2SACDC
	ModelFAC2SDCDC
	ModelFAP
)

var modelNames = map[Model]string{
	ModelUninitialized: "Uninitialized",
	ModelFBP:           "FBP",
	ModelFBPDCLink:     "FBP_DCLink",
	ModelFACACDC:       "FAC_ACDC",
	ModelFACDCDC:       "FAC_DCDC",
	ModelFAC2SACDC:     "FAC_2S_ACDC",
	ModelFAC2SDCDC:     "FAC_2S_DCDC",
	ModelFAP:           "FAP",
}

func (m Model) String() string {
	if name, ok := modelNames[m]; ok {
		return name
	}
	return "Model(?)"
}

// ParseModel finds a model by name.
func ParseModel(name string) (Model, bool) {
	for m, str := range modelNames {
		if str == name {
			return m, true
		}
	}
	return ModelUninitialized, false
}

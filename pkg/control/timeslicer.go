package control

// TimeSlicer divides the control period into sub-task periods.
// Slot i runs once every FreqRatio[i] control ticks.
type TimeSlicer struct {
	Counter   []uint32
	FreqRatio []uint32
}

// NewTimeSlicer creates a TimeSlicer with one slot per ratio.
// Zero ratios are treated as 1.
func NewTimeSlicer(ratios ...uint32) *TimeSlicer {
	s := &TimeSlicer{
		Counter:   make([]uint32, len(ratios)),
		FreqRatio: make([]uint32, len(ratios)),
	}
	for n, r := range ratios {
		if r == 0 {
			r = 1
		}
		s.FreqRatio[n] = r
	}
	return s
}

// Rearm makes slot i run on the next tick.
func (s *TimeSlicer) Rearm(i int) {
	s.Counter[i] = s.FreqRatio[i]
}

// Tick advances slot i and reports whether it runs in this tick.
func (s *TimeSlicer) Tick(i int) bool {
	s.Counter[i]++
	if s.Counter[i] >= s.FreqRatio[i] {
		s.Counter[i] = 0
		return true
	}
	return false
}

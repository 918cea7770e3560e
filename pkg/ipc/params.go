package ipc

import (
	"sort"
	"sync"
)

// Well-known parameter names.
const (
	ParamControlFreq   = "ControlFreq"
	ParamSigGenMaxFreq = "SigGenMaxFreq"
	ParamRefMax        = "RefMax"
	ParamRefMin        = "RefMin"
)

// ParamTable is the supervisor parameter table. It is read-only for
// the control core and only changes inside Configure.
type ParamTable struct {
	values map[string]float32
	lock   sync.RWMutex
}

// Configure runs fn as one configuration session.
func (t *ParamTable) Configure(fn func(values map[string]float32) error) error {
	t.lock.Lock()
	defer t.lock.Unlock()
	values := make(map[string]float32, len(t.values))
	for k, v := range t.values {
		values[k] = v
	}
	if err := fn(values); err != nil {
		return err
	}
	t.values = values
	return nil
}

// Get reads one parameter.
func (t *ParamTable) Get(name string) (float32, bool) {
	t.lock.RLock()
	defer t.lock.RUnlock()
	v, ok := t.values[name]
	return v, ok
}

// GetOr reads one parameter with a fallback.
func (t *ParamTable) GetOr(name string, def float32) float32 {
	if v, ok := t.Get(name); ok {
		return v
	}
	return def
}

// Names lists parameter names in order.
func (t *ParamTable) Names() []string {
	t.lock.RLock()
	names := make([]string, 0, len(t.values))
	for name := range t.values {
		names = append(names, name)
	}
	t.lock.RUnlock()
	sort.Strings(names)
	return names
}

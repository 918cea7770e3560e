// Package dp is the digital processing module framework collaborator.
// It validates and stores module coefficients. The control laws
// themselves are not implemented here.
package dp

import (
	"errors"
	"fmt"
)

// Class is the kind of a digital processing module.
type Class uint16

// Module classes.
const (
	ClassELPPI Class = iota
	ClassELPIIR2P2Z
	ClassELPIIR3P3Z
	ClassDCLPI
	ClassDCLPID
	ClassDCL2P2Z
	ClassDCL3P3Z
)

// coeffCounts is the exact number of coefficients of each class.
var coeffCounts = map[Class]int{
	ClassELPPI:      4,
	ClassELPIIR2P2Z: 7,
	ClassELPIIR3P3Z: 9,
	ClassDCLPI:      4,
	ClassDCLPID:     7,
	ClassDCL2P2Z:    7,
	ClassDCL3P3Z:    9,
}

// CoeffCount returns the number of coefficients of class.
func (c Class) CoeffCount() (int, bool) {
	n, ok := coeffCounts[c]
	return n, ok
}

// DefaultNumModules is the number of module slots.
const DefaultNumModules = 16

var (
	// ErrModuleID indicates an out of range module id.
	ErrModuleID = errors.New("dp module id out of range")
	// ErrModuleClass indicates an unknown module class.
	ErrModuleClass = errors.New("unknown dp module class")
)

// CoeffCountError indicates a wrong number of coefficients for a class.
type CoeffCountError struct {
	Class    Class
	Expected int
	Actual   int
}

// Error implements error.
func (e *CoeffCountError) Error() string {
	return fmt.Sprintf("dp class %d expects %d coefficients, got %d", e.Class, e.Expected, e.Actual)
}

// Module is one configured module.
type Module struct {
	ID         uint16
	Class      Class
	Coeffs     []float32
	Configured bool
}

// Framework holds all module slots.
type Framework struct {
	// Ref is the reference input shared by the modules.
	Ref float32

	modules []Module
}

// New creates a Framework with n module slots.
func New(n int) *Framework {
	if n <= 0 {
		n = DefaultNumModules
	}
	f := &Framework{modules: make([]Module, n)}
	for i := range f.modules {
		f.modules[i].ID = uint16(i)
	}
	return f
}

// Configure validates and applies a module configuration. Nothing is
// changed when validation fails.
func (f *Framework) Configure(id uint16, class Class, coeffs []float32) error {
	if int(id) >= len(f.modules) {
		return ErrModuleID
	}
	n, ok := class.CoeffCount()
	if !ok {
		return ErrModuleClass
	}
	if len(coeffs) != n {
		return &CoeffCountError{Class: class, Expected: n, Actual: len(coeffs)}
	}
	m := &f.modules[id]
	m.Class = class
	m.Coeffs = append(m.Coeffs[:0], coeffs...)
	m.Configured = true
	return nil
}

// Module returns a copy of the module at id.
func (f *Framework) Module(id uint16) (Module, bool) {
	if int(id) >= len(f.modules) {
		return Module{}, false
	}
	m := f.modules[id]
	m.Coeffs = append([]float32(nil), m.Coeffs...)
	return m, true
}

// NumModules returns the number of slots.
func (f *Framework) NumModules() int {
	return len(f.modules)
}

// Package psmodule holds the state of a power supply module
// owned by the control core.
package psmodule

// Password unlocks protected module settings.
const Password uint16 = 0xCAFE

// Status is the set of independently settable module flags.
type Status struct {
	State     State
	OpenLoop  bool
	Interface Interface
	Active    bool
	Model     Model
	Unlocked  bool
	Reserved  uint8
}

// Module is a power supply module.
type Module struct {
	Status    Status
	SetPoint  float32
	Reference float32

	handlers Handlers
}

// New creates a Module bound to the hardware handlers of model.
// The handlers can't be rebound afterwards.
func New(model Model, handlers Handlers) *Module {
	if handlers == nil {
		handlers = nopHandlers{}
	}
	return &Module{
		Status: Status{
			State:     Off,
			OpenLoop:  true,
			Interface: Remote,
			Active:    true,
			Model:     model,
		},
		handlers: handlers,
	}
}

// Handlers returns the bound handlers.
func (m *Module) Handlers() Handlers {
	return m.handlers
}

// Model returns the hardware model.
func (m *Module) Model() Model {
	return m.Status.Model
}

// IsOff reports whether the module is in Off state.
func (m *Module) IsOff() bool {
	return m.Status.State == Off
}

func (m *Module) loopChangeAllowed() bool {
	return m.Status.State == Off || m.Status.Unlocked
}

// OpenLoop treats the reference as duty cycle. It's only allowed when
// the module is off or unlocked, and reports whether it was applied.
func (m *Module) OpenLoop() bool {
	if !m.loopChangeAllowed() {
		return false
	}
	m.Status.OpenLoop = true
	return true
}

// CloseLoop treats the reference as input of the main control loop.
// The same restrictions as OpenLoop apply.
func (m *Module) CloseLoop() bool {
	if !m.loopChangeAllowed() {
		return false
	}
	m.Status.OpenLoop = false
	return true
}

// SetInterface selects the commanding interface.
func (m *Module) SetInterface(i Interface) {
	m.Status.Interface = i
}

// Activate marks the module active. Requires unlocked.
func (m *Module) Activate() bool {
	if !m.Status.Unlocked {
		return false
	}
	m.Status.Active = true
	return true
}

// Deactivate marks the module inactive. Requires unlocked.
func (m *Module) Deactivate() bool {
	if !m.Status.Unlocked {
		return false
	}
	m.Status.Active = false
	return true
}

// Lock protects module settings.
func (m *Module) Lock() {
	m.Status.Unlocked = false
}

// Unlock unprotects module settings if password matches.
func (m *Module) Unlock(password uint16) bool {
	if password != Password {
		return false
	}
	m.Status.Unlocked = true
	return true
}

// ZeroReference clears both setpoint and reference.
func (m *Module) ZeroReference() {
	m.SetPoint, m.Reference = 0, 0
}

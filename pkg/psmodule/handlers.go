package psmodule

// Handlers are the hardware specific actions of a power supply model.
// They are invoked from dispatch handlers and must not block.
type Handlers interface {
	TurnOn()
	TurnOff()
	SoftInterlock()
	HardInterlock()
	ResetInterlocks()
}

// HandlerFuncs is the func form of Handlers. Nil funcs are no-ops.
type HandlerFuncs struct {
	TurnOnFunc          func()
	TurnOffFunc         func()
	SoftInterlockFunc   func()
	HardInterlockFunc   func()
	ResetInterlocksFunc func()
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

// TurnOn implements Handlers.
func (h *HandlerFuncs) TurnOn() { call(h.TurnOnFunc) }

// TurnOff implements Handlers.
func (h *HandlerFuncs) TurnOff() { call(h.TurnOffFunc) }

// SoftInterlock implements Handlers.
func (h *HandlerFuncs) SoftInterlock() { call(h.SoftInterlockFunc) }

// HardInterlock implements Handlers.
func (h *HandlerFuncs) HardInterlock() { call(h.HardInterlockFunc) }

// ResetInterlocks implements Handlers.
func (h *HandlerFuncs) ResetInterlocks() { call(h.ResetInterlocksFunc) }

// nopHandlers is bound when no handlers are given.
type nopHandlers struct{}

func (nopHandlers) TurnOn()          {}
func (nopHandlers) TurnOff()         {}
func (nopHandlers) SoftInterlock()   {}
func (nopHandlers) HardInterlock()   {}
func (nopHandlers) ResetInterlocks() {}

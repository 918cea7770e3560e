package ipc

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/golang/glog"
)

// Interrupter delivers an interrupt line to the control core.
type Interrupter interface {
	Interrupt(Line)
}

// InterruptFunc is the func form of Interrupter.
type InterruptFunc func(Line)

// Interrupt implements Interrupter.
func (f InterruptFunc) Interrupt(l Line) {
	f(l)
}

// Registers emulates the IPC register file between the two cores.
type Registers struct {
	status    uint32
	lastAck   uint32
	flags     uint32
	groupAcks [NumLines]uint32

	irq     Interrupter
	waiters map[*AckWaiter]struct{}
	lock    sync.Mutex
}

// BindInterrupter connects the interrupt lines, done once at start-up.
func (r *Registers) BindInterrupter(irq Interrupter) {
	r.lock.Lock()
	r.irq = irq
	r.lock.Unlock()
}

// Set sets command bits in the MtoC status register and raises the
// interrupt lines they belong to.
func (r *Registers) Set(cmd Command) {
	bits := uint32(cmd)
	for {
		old := atomic.LoadUint32(&r.status)
		if atomic.CompareAndSwapUint32(&r.status, old, old|bits) {
			break
		}
	}
	glog.V(2).Infof("IPC SET %s", cmd)
	r.lock.Lock()
	irq := r.irq
	r.lock.Unlock()
	if irq == nil {
		return
	}
	for _, l := range linesOf(bits) {
		irq.Interrupt(l)
	}
}

// Withdraw clears command bits the control core never acknowledged.
// Nothing is acknowledged and no line is raised.
func (r *Registers) Withdraw(cmd Command) {
	bits := uint32(cmd)
	for {
		old := atomic.LoadUint32(&r.status)
		if atomic.CompareAndSwapUint32(&r.status, old, old&^bits) {
			break
		}
	}
	glog.V(2).Infof("IPC WITHDRAW %s", cmd)
}

// Status reads the MtoC status register.
func (r *Registers) Status() uint32 {
	return atomic.LoadUint32(&r.status)
}

// Pending reads the MtoC status register masked.
func (r *Registers) Pending(mask Command) Command {
	return Command(r.Status()) & mask
}

// Ack clears exactly the bits of code and wakes supervisors waiting for it.
func (r *Registers) Ack(code Command) {
	bits := uint32(code)
	for {
		old := atomic.LoadUint32(&r.status)
		if atomic.CompareAndSwapUint32(&r.status, old, old&^bits) {
			break
		}
	}
	atomic.StoreUint32(&r.lastAck, bits)
	glog.V(2).Infof("IPC ACK %s", code)
	r.lock.Lock()
	for w := range r.waiters {
		if bits&w.code == w.code {
			delete(r.waiters, w)
			w.acked = code
			close(w.doneCh)
		}
	}
	r.lock.Unlock()
}

// LastAck returns the most recent acknowledged code.
func (r *Registers) LastAck() Command {
	return Command(atomic.LoadUint32(&r.lastAck))
}

// GroupAck records the end-of-dispatch acknowledgment of a line.
func (r *Registers) GroupAck(l Line) {
	atomic.AddUint32(&r.groupAcks[l], 1)
}

// GroupAcks returns how many times the line was group acknowledged.
func (r *Registers) GroupAcks(l Line) uint32 {
	return atomic.LoadUint32(&r.groupAcks[l])
}

// RaiseFlag sets a bit in the CtoM flag register.
func (r *Registers) RaiseFlag(f Flag) {
	for {
		old := atomic.LoadUint32(&r.flags)
		if atomic.CompareAndSwapUint32(&r.flags, old, old|uint32(f)) {
			return
		}
	}
}

// TakeFlag clears a CtoM flag and reports whether it was set.
func (r *Registers) TakeFlag(f Flag) bool {
	for {
		old := atomic.LoadUint32(&r.flags)
		if atomic.CompareAndSwapUint32(&r.flags, old, old&^uint32(f)) {
			return old&uint32(f) != 0
		}
	}
}

// Flags reads the CtoM flag register.
func (r *Registers) Flags() Flag {
	return Flag(atomic.LoadUint32(&r.flags))
}

// Expect registers interest in the acknowledgment of code. It must be
// called before the code is Set so the acknowledgment can't be missed.
func (r *Registers) Expect(code Command) *AckWaiter {
	w := &AckWaiter{code: uint32(code), regs: r, doneCh: make(chan struct{})}
	r.lock.Lock()
	if r.waiters == nil {
		r.waiters = make(map[*AckWaiter]struct{})
	}
	r.waiters[w] = struct{}{}
	r.lock.Unlock()
	return w
}

// AckWaiter waits for an acknowledgment.
type AckWaiter struct {
	code   uint32
	acked  Command
	regs   *Registers
	doneCh chan struct{}
}

// Done is closed once acknowledged.
func (w *AckWaiter) Done() <-chan struct{} {
	return w.doneCh
}

// Acked returns the acknowledged code, valid after Done.
func (w *AckWaiter) Acked() Command {
	return w.acked
}

// Wait blocks until acknowledged or ctx is done.
func (w *AckWaiter) Wait(ctx context.Context) error {
	select {
	case <-w.doneCh:
		return nil
	case <-ctx.Done():
		w.Cancel()
		return ctx.Err()
	}
}

// Cancel stops waiting.
func (w *AckWaiter) Cancel() {
	w.regs.lock.Lock()
	delete(w.regs.waiters, w)
	w.regs.lock.Unlock()
}

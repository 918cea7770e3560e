package ipc

import "sync"

// MtoCMailbox holds the SupervisorToControl message.
type MtoCMailbox struct {
	msg  SupervisorToControl
	lock sync.RWMutex
}

// Publish updates the message inside the owner's critical section.
// Readers never observe a partially applied update.
func (b *MtoCMailbox) Publish(fn func(*SupervisorToControl)) {
	b.lock.Lock()
	defer b.lock.Unlock()
	fn(&b.msg)
}

// Snapshot returns a deep copy of the message.
func (b *MtoCMailbox) Snapshot() SupervisorToControl {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.msg.Clone()
}

// CtoMMailbox holds the ControlToSupervisor message.
type CtoMMailbox struct {
	msg  ControlToSupervisor
	lock sync.RWMutex
}

// Publish updates the message inside the owner's critical section.
func (b *CtoMMailbox) Publish(fn func(*ControlToSupervisor)) {
	b.lock.Lock()
	defer b.lock.Unlock()
	fn(&b.msg)
}

// Snapshot returns a copy of the message.
func (b *CtoMMailbox) Snapshot() ControlToSupervisor {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.msg
}

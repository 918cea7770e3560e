// Package ipc provides the shared-memory message channel between the
// supervisor core and the control core.
//
// Each direction has a mailbox owned by one side. The owner writes
// through Publish, which holds the mailbox for the duration of the
// update, and the other side only reads Snapshot copies. Commands are
// bits in the MtoC status register. Setting a bit raises the interrupt
// line of its channel on the control core, and the control core writes
// the served code to the acknowledgment register when it is done.
package ipc

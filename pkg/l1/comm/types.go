// Package comm carries typed L1 messages over packet transports.
package comm

import "errors"

// PacketReader reads packets in bytes.
type PacketReader interface {
	ReadPacket() ([]byte, error)
}

// PacketWriter writes packets in bytes.
type PacketWriter interface {
	WritePacket([]byte) error
}

// PacketReadWriter reads/writes packets in bytes.
type PacketReadWriter interface {
	PacketReader
	PacketWriter
}

var (
	// ErrNotCommand indicates a command was expected.
	ErrNotCommand = errors.New("message is not a command")
	// ErrNotEvent indicates an event was expected.
	ErrNotEvent = errors.New("message is not an event")
	// ErrConnClosed indicates the connection is closed before the reply.
	ErrConnClosed = errors.New("connection closed")
)

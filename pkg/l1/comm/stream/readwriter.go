// Package stream frames packets over byte streams.
package stream

import (
	"encoding/binary"
	"fmt"
	"io"
)

// DefaultMaxPacketSize is large enough for a full waveform curve block.
const DefaultMaxPacketSize = 64 * 1024

// PacketSizeError is returned when the length prefix exceeds the limit,
// usually because the stream is out of sync.
type PacketSizeError struct {
	Size uint32
	Max  uint32
}

// Error implements error.
func (e *PacketSizeError) Error() string {
	return fmt.Sprintf("packet size %d exceeds %d", e.Size, e.Max)
}

// ReadWriter implements PacketReadWriter.
// Each packet is prefixed by 4-byte (little-endian) indicate the length.
type ReadWriter struct {
	io.ReadWriter
	MaxPacketSize uint32
}

// New creates a ReadWriter with io.ReadWriter.
func New(s io.ReadWriter) *ReadWriter {
	return &ReadWriter{ReadWriter: s, MaxPacketSize: DefaultMaxPacketSize}
}

// ReadPacket implements PacketReader.
func (p *ReadWriter) ReadPacket() ([]byte, error) {
	var size uint32
	if err := binary.Read(p.ReadWriter, binary.LittleEndian, &size); err != nil {
		return nil, err
	}
	if p.MaxPacketSize > 0 && size > p.MaxPacketSize {
		return nil, &PacketSizeError{Size: size, Max: p.MaxPacketSize}
	}
	pkt := make([]byte, size)
	_, err := io.ReadFull(p.ReadWriter, pkt)
	return pkt, err
}

// WritePacket implements PacketWriter. The prefix and the packet are
// written at once so a packet never interleaves on the stream.
func (p *ReadWriter) WritePacket(pkt []byte) error {
	size := uint32(len(pkt))
	if p.MaxPacketSize > 0 && size > p.MaxPacketSize {
		return &PacketSizeError{Size: size, Max: p.MaxPacketSize}
	}
	buf := make([]byte, 4+len(pkt))
	binary.LittleEndian.PutUint32(buf, size)
	copy(buf[4:], pkt)
	_, err := p.ReadWriter.Write(buf)
	return err
}

// Close closes the underlying stream if it's an io.Closer.
func (p *ReadWriter) Close() error {
	if closer, ok := p.ReadWriter.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

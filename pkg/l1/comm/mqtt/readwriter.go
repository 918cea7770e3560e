package mqtt

import (
	"context"
	"io"

	"github.com/golang/glog"

	"github.com/robotalks/drs.go/pkg/l1"
)

// Topic suffixes under the controller name.
const (
	TopicMeta = "meta"
	TopicCmd  = "cmd"
	TopicMsg  = "msg"
)

// DefaultPacketQueueSize is the number of received packets buffered.
const DefaultPacketQueueSize = 16

// ReadWriter implements PacketReadWriter.
type ReadWriter struct {
	Queue    *Queue
	SubTopic string
	PubTopic string

	packetCh chan []byte
	doneCh   chan struct{}
}

// NewPacketReadWriter creates the ReadWriter.
func NewPacketReadWriter(q *Queue) *ReadWriter {
	return &ReadWriter{
		Queue:    q,
		packetCh: make(chan []byte, DefaultPacketQueueSize),
		doneCh:   make(chan struct{}),
	}
}

// WithTopics specifies the topics.
func (p *ReadWriter) WithTopics(sub, pub string) *ReadWriter {
	p.SubTopic, p.PubTopic = sub, pub
	return p
}

// ForConnector sets topics using default convention for connector:
// SubTopic = prefix/msg
// PubTopic = prefix/cmd
func (p *ReadWriter) ForConnector(ref l1.ControllerRef) *ReadWriter {
	prefix := ref.Name() + "/"
	return p.WithTopics(prefix+TopicMsg, prefix+TopicCmd)
}

// ForController sets topics using default convention for L1 controller:
// SubTopic = prefix/cmd
// PubTopic = prefix/msg
func (p *ReadWriter) ForController(ref l1.ControllerRef) *ReadWriter {
	prefix := ref.Name() + "/"
	return p.WithTopics(prefix+TopicCmd, prefix+TopicMsg)
}

// ReadPacket implements PacketReader.
func (p *ReadWriter) ReadPacket() ([]byte, error) {
	select {
	case pkt := <-p.packetCh:
		return pkt, nil
	case <-p.doneCh:
		return nil, io.EOF
	}
}

// WritePacket implements PacketWriter.
func (p *ReadWriter) WritePacket(pkt []byte) error {
	token := p.Queue.Pub(p.PubTopic, pkt)
	token.Wait()
	return token.Error()
}

// Run implements Runnable.
func (p *ReadWriter) Run(ctx context.Context) error {
	sub := p.Queue.Sub(p.SubTopic, Handler(p.handleMsg))
	defer sub.Close()
	defer close(p.doneCh)
	<-ctx.Done()
	return ctx.Err()
}

// handleMsg runs in the paho callback. A packet is dropped rather than
// stalling the client when the pipe falls behind.
func (p *ReadWriter) handleMsg(topic string, payload []byte) {
	select {
	case p.packetCh <- payload:
	case <-p.doneCh:
	default:
		glog.Warningf("%s: packet dropped, queue full", topic)
	}
}

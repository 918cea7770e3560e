package comm

import (
	"context"

	"github.com/golang/glog"

	fx "github.com/robotalks/drs.go/pkg/framework"
	"github.com/robotalks/drs.go/pkg/l1"
	"github.com/robotalks/drs.go/pkg/l1/msgs"
)

// Registrar implements l1.Registrar over a single Pipe. Received
// commands are posted to the loop as l1.CommandMsg.
type Registrar struct {
	pipe Pipe
}

// Init initializes the Registrar with defaults.
func (r *Registrar) Init(name string, rw PacketReadWriter) {
	r.pipe.Name = name
	r.pipe.ReadWriter = rw
	r.pipe.Handler = msgs.HandleTypedMsgFunc(r.handleTypedMsg)
}

// SendEvent implements Registrar.
func (r *Registrar) SendEvent(ctx context.Context, msg fx.Message) error {
	return r.pipe.SendEventMsg(msg)
}

// Close closes the underlying transport.
func (r *Registrar) Close() error {
	return r.pipe.Close()
}

// Run runs the pipe directly, for transports accepted after the loop
// started. ctx must come from a Loop.
func (r *Registrar) Run(ctx context.Context) error {
	return r.pipe.Run(ctx)
}

// AddToLoop implements LoopAdder.
func (r *Registrar) AddToLoop(loop *fx.Loop) {
	loop.Add(&r.pipe)
}

func (r *Registrar) handleTypedMsg(ctx context.Context, msg fx.Message, typed *msgs.Typed) error {
	loopCtl := fx.LoopCtlFrom(ctx)
	if loopCtl == nil {
		return nil
	}
	switch {
	case typed.IsReply():
		glog.V(2).Infof("%s ignored reply %08x", r.pipe.Name, typed.TypeId)
		return nil
	case typed.IsCommand():
		loopCtl.PostMessage(&l1.CommandMsg{Command: &command{seq: typed.Sequence, msg: msg, pipe: &r.pipe}})
	default:
		loopCtl.PostMessage(msg)
	}
	loopCtl.TriggerNext()
	return nil
}

type command struct {
	seq  uint32
	msg  fx.Message
	pipe *Pipe
}

func (c *command) Msg() fx.Message {
	return c.msg
}

func (c *command) Done(msg fx.Message) error {
	return c.pipe.SendCommandMsg(msg, c.seq)
}

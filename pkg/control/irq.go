package control

import (
	fx "github.com/robotalks/drs.go/pkg/framework"
	"github.com/robotalks/drs.go/pkg/ipc"
)

// IRQMsg is an interrupt delivered to the control loop.
type IRQMsg struct {
	Line ipc.Line
}

// NewMessage implements Message.
func (m *IRQMsg) NewMessage() fx.Message { return &IRQMsg{} }

// IRQLine implements ipc.Interrupter by posting IRQMsg to a loop.
type IRQLine struct {
	Loop fx.LoopControl
}

// Interrupt implements ipc.Interrupter.
func (l *IRQLine) Interrupt(line ipc.Line) {
	l.Loop.PostMessage(&IRQMsg{Line: line})
	l.Loop.TriggerNext()
}

// AddToLoop implements LoopAdder.
func (c *Core) AddToLoop(loop *fx.Loop) {
	c.Channel.Regs.BindInterrupter(&IRQLine{Loop: loop})
	loop.AddController(fx.PrLvIRQ, fx.ControlFunc(c.serveIRQs))
	// wake-ups closer than half a period to the last tick are skipped.
	loop.AddController(fx.PrLvControl, fx.Every(loop.Interval/2, fx.ControlFunc(c.controlTick)))
}

func (c *Core) serveIRQs(cc fx.ControlContext) error {
	cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mctx fx.MessageProcessingContext) {
		if msg, ok := mctx.CurrentMessage().(*IRQMsg); ok {
			mctx.MessageTaken()
			c.HandleIRQ(msg.Line)
		}
	}))
	return nil
}

func (c *Core) controlTick(fx.ControlContext) error {
	c.Step()
	return nil
}

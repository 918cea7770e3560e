package supervisor

import (
	"context"
	"errors"

	"github.com/golang/glog"

	fx "github.com/robotalks/drs.go/pkg/framework"
	"github.com/robotalks/drs.go/pkg/ipc"
	"github.com/robotalks/drs.go/pkg/l1"
	l1msgs "github.com/robotalks/drs.go/pkg/l1/msgs"
	"github.com/robotalks/drs.go/pkg/supervisor/msgs"
)

// DefaultQueueSize is the number of remote commands waiting for the
// control core.
const DefaultQueueSize = 16

// ErrBusy indicates the command queue is full.
var ErrBusy = errors.New("too many pending commands")

// Controller is the L1 controller of the power supply. It runs in the
// supervisor loop, forwards remote commands to the control core and
// publishes status changes as events.
type Controller struct {
	Client    *Client
	Registrar l1.Registrar

	cmdCh  chan *l1.CommandMsg
	status *msgs.PSStatus
}

// NewController creates a Controller.
func NewController(client *Client, registrar l1.Registrar) *Controller {
	return &Controller{
		Client:    client,
		Registrar: registrar,
		cmdCh:     make(chan *l1.CommandMsg, DefaultQueueSize),
	}
}

// AddToLoop implements LoopAdder. Being a Runnable, the Controller is
// also started by the loop.
func (c *Controller) AddToLoop(loop *fx.Loop) {
	loop.AddController(fx.PrLvControl, c)
	loop.AddController(fx.PrLvPostProc, fx.ControlFunc(c.notifyStatusChange))
}

// Run implements Runnable. Commands wait for acknowledgments here so
// the supervisor loop never blocks on the control core.
func (c *Controller) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-c.cmdCh:
			reply := c.Execute(ctx, msg.Command.Msg())
			if err := msg.Command.Done(reply); err != nil {
				glog.Errorf("Reply error: %v", err)
			}
			if loopCtl := fx.LoopCtlFrom(ctx); loopCtl != nil {
				loopCtl.TriggerNext()
			}
		}
	}
}

// Control implements Controller.
func (c *Controller) Control(cc fx.ControlContext) error {
	cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mctx fx.MessageProcessingContext) {
		msg, ok := mctx.CurrentMessage().(*l1.CommandMsg)
		if !ok || !IsCommand(msg.Command.Msg()) {
			return
		}
		mctx.MessageTaken()
		select {
		case c.cmdCh <- msg:
		default:
			msg.Command.Done(l1msgs.NewCommandErr(ErrBusy))
		}
	}))
	return nil
}

// IsCommand reports whether msg is a power supply command.
func IsCommand(msg fx.Message) bool {
	switch msg.(type) {
	case *msgs.PSOnOff, *msgs.PSOperatingMode, *msgs.PSOpenLoop,
		*msgs.PSSlowRef, *msgs.PSSigGenEnable, *msgs.PSSigGenConfig,
		*msgs.PSDPModuleConfig, *msgs.PSSamplesBuffer, *msgs.PSResetInterlocks,
		*msgs.PSWfmSync, *msgs.PSInterlock, *msgs.PSParamsConfig,
		*msgs.PSStatusQuery:
		return true
	}
	return false
}

// Execute performs a power supply command and returns the reply.
func (c *Controller) Execute(ctx context.Context, msg fx.Message) fx.Message {
	var err error
	switch m := msg.(type) {
	case *msgs.PSOnOff:
		if m.On {
			err = c.Client.TurnOn(ctx)
		} else {
			err = c.Client.TurnOff(ctx)
		}
	case *msgs.PSOperatingMode:
		err = c.Client.SetOperatingMode(ctx, modeFrom(m.Mode), PayloadFrom(m.Wfm))
	case *msgs.PSOpenLoop:
		err = c.Client.SetOpenLoop(ctx, m.Open)
	case *msgs.PSSlowRef:
		err = c.Client.SetSlowRef(ctx, m.Setpoint)
	case *msgs.PSSigGenEnable:
		err = c.Client.EnableSigGen(ctx, m.Enable)
	case *msgs.PSSigGenConfig:
		err = c.Client.ConfigSigGen(ctx, sigGenParamsFrom(m))
	case *msgs.PSDPModuleConfig:
		err = c.Client.ConfigDPModule(ctx, ipc.DPModuleRequest{
			ID:     uint16(m.ID),
			Class:  uint16(m.Class),
			Coeffs: m.Coeffs,
		})
	case *msgs.PSSamplesBuffer:
		err = c.Client.SetSamplesBuffer(ctx, m.On)
	case *msgs.PSResetInterlocks:
		err = c.Client.ResetInterlocks(ctx)
	case *msgs.PSWfmSync:
		err = c.Client.SyncWaveform(ctx, PayloadFrom(m.Wfm))
	case *msgs.PSInterlock:
		if m.Hard {
			err = c.Client.HardInterlock(ctx, m.Bits)
		} else {
			err = c.Client.SoftInterlock(ctx, m.Bits)
		}
	case *msgs.PSParamsConfig:
		values := make(map[string]float32)
		for _, p := range m.Params {
			values[p.Name] = p.Value
		}
		err = c.Client.ConfigParams(values)
	case *msgs.PSStatusQuery:
		return &msgs.PSStatusReply{Status: StatusFrom(c.Client.Status())}
	default:
		return l1msgs.NewCommandErr(l1msgs.ErrUnsupportedCommand)
	}
	if err != nil {
		glog.Warningf("%T rejected: %v", msg, err)
		reply := l1msgs.NewCommandErr(err)
		if cmdErr, ok := err.(*CommandError); ok {
			reply.Code = uint32(cmdErr.Code)
		}
		return reply
	}
	return l1msgs.NewCommandOK()
}

func (c *Controller) notifyStatusChange(cc fx.ControlContext) error {
	status := StatusFrom(c.Client.Status())
	if c.status != nil && *c.status == *status {
		return nil
	}
	c.status = status
	if c.Registrar == nil {
		return nil
	}
	return c.Registrar.SendEvent(cc.Context(), status)
}

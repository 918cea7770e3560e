package comm_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	fx "github.com/robotalks/drs.go/pkg/framework"
	"github.com/robotalks/drs.go/pkg/l1"
	"github.com/robotalks/drs.go/pkg/l1/comm"
	"github.com/robotalks/drs.go/pkg/l1/comm/stream"
	l1msgs "github.com/robotalks/drs.go/pkg/l1/msgs"
	"github.com/robotalks/drs.go/pkg/supervisor/msgs"
)

type pipeTestEnv struct {
	t       *testing.T
	reg     comm.Registrar
	conn    comm.ControllerConn
	eventCh chan fx.Message
	cancel  func()
	runner  *fx.Runner
	closers []net.Conn
}

func newPipeTestEnv(t *testing.T) *pipeTestEnv {
	env := &pipeTestEnv{t: t, eventCh: make(chan fx.Message, 4)}
	a, b := net.Pipe()
	env.closers = []net.Conn{a, b}
	env.reg.Init("ctl", stream.New(a))
	env.conn.Init("conn", stream.New(b))

	regLoop := fx.NewLoop().Add(&env.reg, &comm.UnsupportedCommands{})
	regLoop.AddController(fx.PrLvControl, fx.ControlFunc(func(cc fx.ControlContext) error {
		cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mctx fx.MessageProcessingContext) {
			if cmdMsg, ok := mctx.CurrentMessage().(*l1.CommandMsg); ok {
				if _, ok := cmdMsg.Command.Msg().(*msgs.PSStatusQuery); ok {
					mctx.MessageTaken()
					cmdMsg.Command.Done(&msgs.PSStatusReply{Status: &msgs.PSStatus{Reference: 3}})
				}
			}
		}))
		return nil
	}))

	connLoop := fx.NewLoop().Add(&env.conn)
	connLoop.AddController(fx.PrLvControl, fx.ControlFunc(func(cc fx.ControlContext) error {
		cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mctx fx.MessageProcessingContext) {
			mctx.MessageTaken()
			env.eventCh <- mctx.CurrentMessage()
		}))
		return nil
	}))

	var ctx context.Context
	ctx, env.cancel = context.WithCancel(context.Background())
	env.runner = fx.NewRunnerWith(ctx).Go(regLoop, connLoop)
	return env
}

func (e *pipeTestEnv) close() {
	e.cancel()
	for _, c := range e.closers {
		c.Close()
	}
	e.runner.Wait()
}

func (e *pipeTestEnv) do(msg fx.Message) l1.Result {
	select {
	case res := <-e.conn.DoCommand(msg).ResultChan():
		return res
	case <-time.After(time.Second):
		e.t.Fatalf("%T not replied", msg)
	}
	return l1.Result{}
}

func TestPipeCommands(t *testing.T) {
	env := newPipeTestEnv(t)
	defer env.close()

	res := env.do(&msgs.PSStatusQuery{})
	require.NoError(t, res.Err)
	reply, ok := res.Msg.(*msgs.PSStatusReply)
	require.True(t, ok)
	require.Equal(t, float32(3), reply.Status.Reference)

	res = env.do(&msgs.PSOnOff{On: true})
	require.Error(t, res.Err)
	require.Equal(t, l1msgs.ErrUnsupportedCommand.Error(), res.Err.Error())
	require.Zero(t, env.conn.Pending())
}

func TestPipeEvents(t *testing.T) {
	env := newPipeTestEnv(t)
	defer env.close()

	require.Equal(t, comm.ErrNotEvent, env.reg.SendEvent(context.Background(), &msgs.PSOnOff{}))
	require.NoError(t, env.reg.SendEvent(context.Background(), &msgs.PSStatus{Reference: 5}))
	select {
	case ev := <-env.eventCh:
		status, ok := ev.(*msgs.PSStatus)
		require.True(t, ok)
		require.Equal(t, float32(5), status.Reference)
	case <-time.After(time.Second):
		t.Fatal("event not received")
	}
}

func TestControllerConnClosed(t *testing.T) {
	env := newPipeTestEnv(t)
	env.close()
	res := <-env.conn.DoCommand(&msgs.PSStatusQuery{}).ResultChan()
	require.Error(t, res.Err)
}

type failingRegistrar struct{ err error }

func (r *failingRegistrar) SendEvent(context.Context, fx.Message) error { return r.err }

func TestRegistrarMux(t *testing.T) {
	var mux comm.RegistrarMux
	require.NoError(t, mux.SendEvent(context.Background(), &msgs.PSStatus{}))
	mux.Add(&failingRegistrar{}, &failingRegistrar{err: comm.ErrConnClosed})
	require.Equal(t, 2, mux.Len())
	err := mux.SendEvent(context.Background(), &msgs.PSStatus{})
	require.Error(t, err)
	require.Len(t, err.(*fx.AggregatedError).Errors, 1)
}

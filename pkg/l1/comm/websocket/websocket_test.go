package websocket

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	fx "github.com/robotalks/drs.go/pkg/framework"
	"github.com/robotalks/drs.go/pkg/l1"
	"github.com/robotalks/drs.go/pkg/l1/comm"
	"github.com/robotalks/drs.go/pkg/supervisor/msgs"
)

func TestRegistrarConnector(t *testing.T) {
	info := l1.ControllerInfo{
		Ref:  l1.ControllerRef{Type: "drs", ID: "ws-test"},
		Meta: l1.ControllerMeta{Labels: map[string]string{"model": "FBP"}},
	}
	reg := NewRegistrar("127.0.0.1:0", info)
	addr, err := reg.Listen()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	runner := fx.NewRunnerWith(ctx).Go(fx.NewLoop().Add(reg, &comm.UnsupportedCommands{}))

	connector, err := NewConnector("ws://" + addr.String())
	require.NoError(t, err)
	infos, err := connector.Discover(ctx)
	require.NoError(t, err)
	require.Equal(t, []l1.ControllerInfo{info}, infos)

	conn, err := connector.Connect(ctx, info.Ref)
	require.NoError(t, err)
	wsConn := conn.(*ControllerConn)
	eventCh := make(chan fx.Message, 1)
	connLoop := fx.NewLoop().Add(wsConn)
	connLoop.AddController(fx.PrLvControl, fx.ControlFunc(func(cc fx.ControlContext) error {
		cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mctx fx.MessageProcessingContext) {
			mctx.MessageTaken()
			select {
			case eventCh <- mctx.CurrentMessage():
			default:
			}
		}))
		return nil
	}))
	runner.Go(connLoop)
	defer func() {
		cancel()
		wsConn.Close()
		runner.Wait()
	}()

	select {
	case res := <-conn.DoCommand(&msgs.PSOnOff{On: true}).ResultChan():
		require.Error(t, res.Err)
	case <-time.After(time.Second):
		t.Fatal("command not replied")
	}
	require.Equal(t, 1, reg.Peers())

	require.NoError(t, reg.SendEvent(ctx, &msgs.PSStatus{On: true}))
	select {
	case ev := <-eventCh:
		require.Equal(t, &msgs.PSStatus{On: true}, ev)
	case <-time.After(time.Second):
		t.Fatal("event not received")
	}
}

func TestNewConnector(t *testing.T) {
	_, err := NewConnector("mqtt://localhost")
	require.Error(t, err)
	c, err := NewConnector("wss://ps.local:8443")
	require.NoError(t, err)
	require.Equal(t, "https://ps.local:8443/meta", c.urlOf("https", PathMeta))
}

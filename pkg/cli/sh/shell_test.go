package sh

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	fx "github.com/robotalks/drs.go/pkg/framework"
	"github.com/robotalks/drs.go/pkg/l1"
	"github.com/robotalks/drs.go/pkg/supervisor/msgs"
)

func TestFormatInfo(t *testing.T) {
	testCases := []struct {
		info l1.ControllerInfo
		out  string
	}{
		{l1.ControllerInfo{Ref: l1.ControllerRef{Type: "drs", ID: "1"}}, "drs/1"},
		{l1.ControllerInfo{
			Ref:  l1.ControllerRef{Type: "drs", ID: "1"},
			Meta: l1.ControllerMeta{Description: "booster", Labels: map[string]string{"model": "FBP", "bus": "2"}},
		}, "drs/1: booster [bus=2,model=FBP]"},
	}
	for _, tc := range testCases {
		t.Run(tc.out, func(t *testing.T) {
			require.Equal(t, tc.out, FormatInfo(tc.info))
		})
	}
}

func TestEventLog(t *testing.T) {
	events := NewEventLog()
	loop := fx.NewLoop()
	loop.AddController(fx.PrLvControl, events)
	ctx, cancel := context.WithCancel(context.Background())
	doneCh := make(chan struct{})
	go func() {
		loop.Run(ctx)
		close(doneCh)
	}()
	defer func() {
		cancel()
		<-doneCh
	}()

	loop.PostMessage(&msgs.PSStatus{Reference: 1})
	loop.PostMessage(&msgs.PSStatus{Reference: 2})
	loop.TriggerNext()
	timeout := time.After(time.Second)
	names, last := events.Last()
	for len(last) == 0 || last[0].(*msgs.PSStatus).Reference != 2 {
		select {
		case <-timeout:
			t.Fatal("events not processed")
		case <-time.After(10 * time.Millisecond):
		}
		names, last = events.Last()
	}
	require.Equal(t, []string{"PSStatus"}, names)
	require.Equal(t, float32(2), last[0].(*msgs.PSStatus).Reference)
}

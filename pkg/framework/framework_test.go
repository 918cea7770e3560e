package framework

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type testMsg struct{ n int }

func (m *testMsg) NewMessage() Message { return &testMsg{} }

func TestLoopMessages(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gotCh := make(chan []int, 1)
	var got []int
	loop := NewLoop()
	loop.Interval = time.Hour
	loop.AddController(PrLvTop, ControlFunc(func(cc ControlContext) error {
		cc.Messages().ProcessMessages(ProcessMessageFunc(func(mc MessageProcessingContext) {
			if msg, ok := mc.CurrentMessage().(*testMsg); ok {
				mc.MessageTaken()
				got = append(got, msg.n)
			}
		}))
		if len(got) == 3 {
			select {
			case gotCh <- got:
			default:
			}
		}
		return nil
	}))

	errCh := make(chan error, 1)
	go func() { errCh <- loop.Run(ctx) }()
	for i := 1; i <= 3; i++ {
		loop.PostMessage(&testMsg{n: i})
	}
	deadline := time.After(time.Second)
	for done := false; !done; {
		loop.TriggerNext()
		select {
		case res := <-gotCh:
			require.Equal(t, []int{1, 2, 3}, res)
			done = true
		case <-deadline:
			t.Fatal("messages not processed")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	require.Equal(t, context.Canceled, <-errCh)
}

func TestLoopName(t *testing.T) {
	require.Equal(t, "loop", NewLoop().Name())
	loop := NewLoop().WithName("control")
	require.Equal(t, "control", loop.Name())

	failure := errors.New("failure")
	err := NewRunner().Go(loop, RunnableFunc(func(context.Context) error { return failure })).Wait()
	require.True(t, errors.Is(err, failure))
	require.Equal(t, "1", err.(*AggregatedError).Errors[0].(*RunnerError).Name)
}

func TestStopProcessing(t *testing.T) {
	iter := &loopIteration{}
	iter.AddMessages(&testMsg{n: 1}, &testMsg{n: 2}, &testMsg{n: 3})
	var seen []int
	iter.ProcessMessages(ProcessMessageFunc(func(mc MessageProcessingContext) {
		seen = append(seen, mc.CurrentMessage().(*testMsg).n)
		mc.MessageTaken()
		mc.StopProcessing()
	}))
	require.Equal(t, []int{1}, seen)

	seen = nil
	iter.ProcessMessages(ProcessMessageFunc(func(mc MessageProcessingContext) {
		seen = append(seen, mc.CurrentMessage().(*testMsg).n)
	}))
	require.Equal(t, []int{2, 3}, seen)
}

type fakeCC struct {
	ControlContext
	now time.Time
}

func (c *fakeCC) Time() time.Time { return c.now }

func TestPeriodic(t *testing.T) {
	var calls int
	p := Every(10*time.Millisecond, ControlFunc(func(ControlContext) error {
		calls++
		return nil
	}))
	start := time.Unix(1000, 0)
	testCases := []struct {
		offset time.Duration
		calls  int
	}{
		{0, 1},
		{5 * time.Millisecond, 1},
		{10 * time.Millisecond, 2},
		{19 * time.Millisecond, 2},
		{25 * time.Millisecond, 3},
	}
	for _, tc := range testCases {
		require.NoError(t, p.Control(&fakeCC{now: start.Add(tc.offset)}))
		require.Equal(t, tc.calls, calls, "at %v", tc.offset)
	}
}

func TestAggregatedError(t *testing.T) {
	var errs AggregatedError
	require.NoError(t, errs.Aggregate())
	errA, errB := errors.New("a"), errors.New("b")
	errs.Add(nil, errA)
	require.Equal(t, "a", errs.Aggregate().Error())
	errs.Add(&RunnerError{Name: "r", Err: errB})
	err := errs.Aggregate()
	require.Equal(t, "Multiple errors:\na\nr: b", err.Error())
	require.True(t, errors.Is(err, errA))
	require.True(t, errors.Is(err, errB))
	require.False(t, errors.Is(err, context.Canceled))
}

func TestRunnerErrors(t *testing.T) {
	failure := errors.New("failure")
	err := NewRunner().Go(
		NamedRun("fail", RunnableFunc(func(context.Context) error { return failure })),
		NamedRun("wait", RunnableFunc(func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		})),
	).Wait()
	require.Error(t, err)
	require.True(t, errors.Is(err, failure))
	agg := err.(*AggregatedError)
	require.Len(t, agg.Errors, 1)
	require.Equal(t, "fail", agg.Errors[0].(*RunnerError).Name)
}

func TestRunWithContextCloser(t *testing.T) {
	closer := &countCloser{}
	require.NoError(t, RunWithContextCloser(context.Background(), closer, func() error { return nil }))
	require.Equal(t, 1, closer.n)

	ctx, cancel := context.WithCancel(context.Background())
	closer = &countCloser{}
	unblock := make(chan struct{})
	closer.onClose = func() { close(unblock) }
	cancel()
	err := RunWithContextCloser(ctx, closer, func() error {
		<-unblock
		return nil
	})
	require.Equal(t, context.Canceled, err)
	require.Equal(t, 1, closer.n)
}

type countCloser struct {
	n       int
	onClose func()
}

func (c *countCloser) Close() error {
	c.n++
	if c.onClose != nil {
		c.onClose()
	}
	return nil
}

package comm

import (
	"container/list"
	"context"
	"sync"
	"time"

	fx "github.com/robotalks/drs.go/pkg/framework"
	"github.com/robotalks/drs.go/pkg/l1"
	"github.com/robotalks/drs.go/pkg/l1/msgs"
)

// DefaultCommandExpiration is the default expiration expecting a result.
// It is longer than the acknowledgment timeout of the supervisor so
// a CommandErr for a timed out command still arrives.
const DefaultCommandExpiration = 2 * time.Second

// ControllerConn provides base implementation for l1.ControllerConn using Pipe.
// Pending commands are kept in sending order, which is also the order
// they expire.
type ControllerConn struct {
	Expiration time.Duration

	pipe     Pipe
	seq      uint32
	commands list.List
	seqMap   map[uint32]*commandFuture
	closed   bool
	lock     sync.Mutex
}

// Init initializes ControllerConn with defaults.
func (c *ControllerConn) Init(name string, rw PacketReadWriter) {
	c.Expiration = DefaultCommandExpiration
	c.pipe.Name = name
	c.pipe.ReadWriter = rw
	c.pipe.Handler = msgs.HandleTypedMsgFunc(c.handleTypedMsg)
	c.seqMap = make(map[uint32]*commandFuture)
}

// DoCommand implements ControllerConn.
func (c *ControllerConn) DoCommand(msg fx.Message) l1.CommandFuture {
	f := &commandFuture{result: make(chan l1.Result, 1)}
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.closed {
		f.complete(l1.Result{Err: ErrConnClosed})
		return f
	}
	if c.seq++; c.seq == 0 {
		c.seq++
	}
	f.seq, f.expireAt = c.seq, time.Now().Add(c.Expiration)
	if err := c.pipe.SendCommandMsg(msg, f.seq); err != nil {
		f.complete(l1.Result{Err: err})
		return f
	}
	f.elem = c.commands.PushBack(f)
	c.seqMap[f.seq] = f
	return f
}

// Pending returns the number of commands waiting for replies.
func (c *ControllerConn) Pending() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.commands.Len()
}

// Run implements Runnable. All pending commands fail once the pipe ends.
func (c *ControllerConn) Run(ctx context.Context) error {
	err := c.pipe.Run(ctx)
	c.lock.Lock()
	c.closed = true
	c.failAll(ErrConnClosed)
	c.lock.Unlock()
	return err
}

// Close closes the underlying transport.
func (c *ControllerConn) Close() error {
	return c.pipe.Close()
}

// AddToLoop implements LoopAdder.
func (c *ControllerConn) AddToLoop(l *fx.Loop) {
	if adder, ok := c.pipe.ReadWriter.(fx.LoopAdder); ok {
		l.Add(adder)
	} else if runnable, ok := c.pipe.ReadWriter.(fx.Runnable); ok {
		l.AddRunnable(runnable)
	}
	l.AddRunnable(c)
	l.AddController(fx.PrLvIdle, fx.ControlFunc(c.purgeExpired))
}

func (c *ControllerConn) handleTypedMsg(ctx context.Context, msg fx.Message, typed *msgs.Typed) error {
	if typed.IsEvent() {
		if loopCtl := fx.LoopCtlFrom(ctx); loopCtl != nil {
			loopCtl.PostMessage(msg)
			loopCtl.TriggerNext()
		}
		return nil
	}
	c.lock.Lock()
	defer c.lock.Unlock()
	f := c.seqMap[typed.Sequence]
	if f == nil {
		return nil
	}
	c.commands.Remove(f.elem)
	delete(c.seqMap, typed.Sequence)
	result := l1.Result{Msg: msg}
	if cmdErr, ok := msg.(*msgs.CommandErr); ok {
		result.Err = cmdErr
	}
	f.complete(result)
	return nil
}

func (c *ControllerConn) purgeExpired(cc fx.ControlContext) error {
	now := cc.Time()
	c.lock.Lock()
	defer c.lock.Unlock()
	for c.commands.Len() > 0 {
		elem := c.commands.Front()
		f := elem.Value.(*commandFuture)
		if f.expireAt.After(now) {
			break
		}
		c.commands.Remove(elem)
		delete(c.seqMap, f.seq)
		f.complete(l1.Result{Err: context.DeadlineExceeded})
	}
	return nil
}

func (c *ControllerConn) failAll(err error) {
	for elem := c.commands.Front(); elem != nil; elem = elem.Next() {
		f := elem.Value.(*commandFuture)
		delete(c.seqMap, f.seq)
		f.complete(l1.Result{Err: err})
	}
	c.commands.Init()
}

type commandFuture struct {
	seq      uint32
	expireAt time.Time
	elem     *list.Element
	result   chan l1.Result
}

func (f *commandFuture) ResultChan() <-chan l1.Result {
	return f.result
}

func (f *commandFuture) complete(res l1.Result) {
	f.result <- res
	close(f.result)
}

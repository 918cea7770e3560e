// Package serial carries L1 packets over a serial line, the local
// maintenance link of the power supply.
package serial

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/tarm/serial"

	fx "github.com/robotalks/drs.go/pkg/framework"
	"github.com/robotalks/drs.go/pkg/l1/comm"
	"github.com/robotalks/drs.go/pkg/l1/comm/stream"
)

// DefaultBaud is the baud rate of the maintenance link.
const DefaultBaud = 115200

// Config holds serial port configuration.
type Config struct {
	// Device path, e.g. /dev/ttyUSB0.
	Device string
	Baud   int
	// ReadTimeout of 0 blocks reading.
	ReadTimeout time.Duration
}

// ConfigFromURL parses serial:///dev/ttyUSB0?baud=115200.
func ConfigFromURL(portURL string) (*Config, error) {
	u, err := url.Parse(portURL)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "serial" {
		return nil, fmt.Errorf("unsupported serial URL scheme %q", u.Scheme)
	}
	conf := &Config{Device: u.Path, Baud: DefaultBaud}
	if conf.Device == "" {
		return nil, fmt.Errorf("serial device missing in %q", portURL)
	}
	if val := u.Query().Get("baud"); val != "" {
		if conf.Baud, err = strconv.Atoi(val); err != nil {
			return nil, fmt.Errorf("invalid baud %q: %v", val, err)
		}
	}
	return conf, nil
}

// Open opens the port with length-prefixed framing.
func Open(conf *Config) (*stream.ReadWriter, error) {
	port, err := serial.OpenPort(&serial.Config{
		Name:        conf.Device,
		Baud:        conf.Baud,
		ReadTimeout: conf.ReadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %v", conf.Device, err)
	}
	return stream.New(port), nil
}

// Registrar implements l1.Registrar over a serial port. The port is
// reopened after errors.
type Registrar struct {
	Config     Config
	RetryDelay time.Duration

	current *comm.Registrar
	lock    sync.Mutex
}

// DefaultRetryDelay is the delay before reopening the port.
const DefaultRetryDelay = time.Second

// NewRegistrar creates a Registrar.
func NewRegistrar(conf *Config) *Registrar {
	return &Registrar{Config: *conf, RetryDelay: DefaultRetryDelay}
}

// SendEvent implements Registrar. Events are dropped while the port is closed.
func (r *Registrar) SendEvent(ctx context.Context, msg fx.Message) error {
	r.lock.Lock()
	reg := r.current
	r.lock.Unlock()
	if reg == nil {
		return nil
	}
	return reg.SendEvent(ctx, msg)
}

// AddToLoop implements LoopAdder.
func (r *Registrar) AddToLoop(loop *fx.Loop) {
	loop.AddRunnable(r)
}

// Run implements Runnable.
func (r *Registrar) Run(ctx context.Context) error {
	for {
		rw, err := Open(&r.Config)
		if err == nil {
			reg := &comm.Registrar{}
			reg.Init("serial:"+r.Config.Device, rw)
			r.setCurrent(reg)
			err = fx.RunWithContextCloser(ctx, reg, func() error { return reg.Run(ctx) })
			r.setCurrent(nil)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		glog.Warningf("serial %s: %v", r.Config.Device, err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.RetryDelay):
		}
	}
}

func (r *Registrar) setCurrent(reg *comm.Registrar) {
	r.lock.Lock()
	r.current = reg
	r.lock.Unlock()
}

package websocket

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"sync"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"

	fx "github.com/robotalks/drs.go/pkg/framework"
	"github.com/robotalks/drs.go/pkg/l1"
	"github.com/robotalks/drs.go/pkg/l1/comm"
)

// Paths served by Registrar.
const (
	PathMeta = "/meta"
	PathConn = "/conn"
)

// Registrar implements l1.Registrar as a websocket server. Every peer
// gets its own pipe, events are sent to all of them.
type Registrar struct {
	Addr string
	Info l1.ControllerInfo

	listener net.Listener
	peers    map[*comm.Registrar]struct{}
	lock     sync.RWMutex
}

// NewRegistrar creates a Registrar listening on addr.
func NewRegistrar(addr string, info l1.ControllerInfo) *Registrar {
	return &Registrar{Addr: addr, Info: info, peers: make(map[*comm.Registrar]struct{})}
}

// SendEvent implements Registrar.
func (r *Registrar) SendEvent(ctx context.Context, msg fx.Message) error {
	var errs fx.AggregatedError
	r.lock.RLock()
	for peer := range r.peers {
		errs.Add(peer.SendEvent(ctx, msg))
	}
	r.lock.RUnlock()
	return errs.Aggregate()
}

// Peers returns the number of connected peers.
func (r *Registrar) Peers() int {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return len(r.peers)
}

// Listen opens the listener. Run calls it if not done yet.
func (r *Registrar) Listen() (net.Addr, error) {
	ln, err := net.Listen("tcp", r.Addr)
	if err != nil {
		return nil, err
	}
	r.listener = ln
	return ln.Addr(), nil
}

// AddToLoop implements LoopAdder.
func (r *Registrar) AddToLoop(loop *fx.Loop) {
	loop.AddRunnable(r)
}

// Run implements Runnable. ctx must come from a Loop.
func (r *Registrar) Run(ctx context.Context) error {
	if r.listener == nil {
		if _, err := r.Listen(); err != nil {
			return err
		}
	}
	mux := http.NewServeMux()
	mux.HandleFunc(PathMeta, r.serveMeta)
	mux.Handle(PathConn, websocket.Handler(func(conn *websocket.Conn) {
		r.servePeer(ctx, conn)
	}))
	server := &http.Server{Handler: mux}
	err := fx.RunWithContextCancel(ctx, func() { server.Close() }, func() error {
		return server.Serve(r.listener)
	})
	if err == http.ErrServerClosed {
		err = nil
	}
	r.lock.RLock()
	for peer := range r.peers {
		peer.Close()
	}
	r.lock.RUnlock()
	return err
}

func (r *Registrar) serveMeta(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(&r.Info)
}

func (r *Registrar) servePeer(ctx context.Context, conn *websocket.Conn) {
	conn.PayloadType = websocket.BinaryFrame
	peer := &comm.Registrar{}
	name := "ws:" + conn.Request().RemoteAddr
	peer.Init(name, New(conn))
	r.lock.Lock()
	r.peers[peer] = struct{}{}
	r.lock.Unlock()
	glog.Infof("%s connected", name)

	err := peer.Run(ctx)

	r.lock.Lock()
	delete(r.peers, peer)
	r.lock.Unlock()
	glog.Infof("%s disconnected: %v", name, err)
}

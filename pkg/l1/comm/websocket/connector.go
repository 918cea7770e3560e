package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/net/websocket"

	"github.com/robotalks/drs.go/pkg/l1"
	"github.com/robotalks/drs.go/pkg/l1/comm"
)

// Connector implements l1.Connector to a Registrar.
type Connector struct {
	URL *url.URL
}

// NewConnector creates a Connector from ws://host:port.
func NewConnector(serverURL string) (*Connector, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return nil, fmt.Errorf("unsupported websocket URL scheme %q", u.Scheme)
	}
	return &Connector{URL: u}, nil
}

func (c *Connector) urlOf(scheme, path string) string {
	u := *c.URL
	u.Scheme, u.Path = scheme, path
	return u.String()
}

// Discover implements Connector. The server hosts a single controller.
func (c *Connector) Discover(ctx context.Context) ([]l1.ControllerInfo, error) {
	scheme := "http"
	if c.URL.Scheme == "wss" {
		scheme = "https"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.urlOf(scheme, PathMeta), nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("discover: %s", resp.Status)
	}
	var info l1.ControllerInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return []l1.ControllerInfo{info}, nil
}

// Connect implements Connector. The ref isn't checked against the server.
func (c *Connector) Connect(ctx context.Context, ref l1.ControllerRef) (l1.ControllerConn, error) {
	origin := c.urlOf("http", "/")
	conn, err := websocket.Dial(c.urlOf(c.URL.Scheme, PathConn), "", origin)
	if err != nil {
		return nil, err
	}
	conn.PayloadType = websocket.BinaryFrame
	cc := &ControllerConn{}
	cc.Init("ws:"+ref.Name(), New(conn))
	return cc, nil
}

// ControllerConn implements ControllerConn over websocket.
type ControllerConn struct {
	comm.ControllerConn
}

package connector

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/drs.go/pkg/l1/comm/mqtt"
	"github.com/robotalks/drs.go/pkg/l1/comm/websocket"
)

func TestNewConnector(t *testing.T) {
	conf := NewConfig()
	conf.RegistryURL = "mqtt://localhost:1883/drs/"
	c, err := conf.NewConnector()
	require.NoError(t, err)
	require.IsType(t, &mqtt.Connector{}, c)

	conf.RegistryURL = "ws://localhost:8080"
	c, err = conf.NewConnector()
	require.NoError(t, err)
	require.IsType(t, &websocket.Connector{}, c)

	conf.RegistryURL = "serial:///dev/ttyUSB0"
	_, err = conf.NewConnector()
	require.Error(t, err)

	conf.Ref.Type = ""
	_, err = conf.Connect()
	require.Error(t, err)
}

// Package controller sets up the registrars of an L1 controller from
// flags and environment variables.
package controller

import (
	"flag"
	"fmt"
	"log"
	"os"

	fx "github.com/robotalks/drs.go/pkg/framework"
	"github.com/robotalks/drs.go/pkg/l1"
	"github.com/robotalks/drs.go/pkg/l1/comm"
	"github.com/robotalks/drs.go/pkg/l1/comm/mqtt"
	"github.com/robotalks/drs.go/pkg/l1/comm/serial"
	"github.com/robotalks/drs.go/pkg/l1/comm/websocket"
	"github.com/robotalks/drs.go/pkg/l1/env"
)

// Config provides common options to setup an env for L1 controllers.
// Every non-empty endpoint adds a registrar.
type Config struct {
	Info l1.ControllerInfo

	// MQTTBrokerURL specifies the MQTT broker to use.
	// e.g. mqtt://host:port/topic-prefix
	MQTTBrokerURL string
	// WebSocketAddr is the listen address of the websocket server.
	WebSocketAddr string
	// SerialURL is the maintenance serial link.
	// e.g. serial:///dev/ttyUSB0?baud=115200
	SerialURL string
}

var defaultConfig = Config{
	MQTTBrokerURL: "mqtt://localhost:1883/drs/",
}

func init() {
	if val, ok := os.LookupEnv("DRS_MQTT_URL"); ok {
		defaultConfig.MQTTBrokerURL = val
	}
	if val := os.Getenv("DRS_WS_ADDR"); val != "" {
		defaultConfig.WebSocketAddr = val
	}
	if val := os.Getenv("DRS_SERIAL_URL"); val != "" {
		defaultConfig.SerialURL = val
	}
	if val := os.Getenv("DRS_ID"); val != "" {
		defaultConfig.Info.Ref.ID = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Info.Ref.Type, "type", defaultConfig.Info.Ref.Type, "Controller type")
	flag.StringVar(&defaultConfig.Info.Ref.ID, "id", defaultConfig.Info.Ref.ID, "Controller ID, machine id if empty")
	flag.StringVar(&defaultConfig.MQTTBrokerURL, "mqtt", defaultConfig.MQTTBrokerURL, "MQTT broker URL")
	flag.StringVar(&defaultConfig.WebSocketAddr, "ws", defaultConfig.WebSocketAddr, "Websocket listen address")
	flag.StringVar(&defaultConfig.SerialURL, "serial", defaultConfig.SerialURL, "Serial maintenance link URL")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// SetControllerType should be called in init with basic info about the controller.
func SetControllerType(typ string, meta l1.ControllerMeta) {
	defaultConfig.Info.Ref.Type = typ
	defaultConfig.Info.Meta = meta
}

// SetLabel adds a label to the controller meta.
func (c *Config) SetLabel(key, value string) {
	labels := make(map[string]string)
	for k, v := range c.Info.Meta.Labels {
		labels[k] = v
	}
	labels[key] = value
	c.Info.Meta.Labels = labels
}

// Env is the env for L1 controllers.
type Env struct {
	Config       *Config
	RegistryURLs []string
	Registrar    *comm.RegistrarMux
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewEnv creates Env from config.
func (c *Config) NewEnv() (*Env, error) {
	if c.Info.Ref.ID == "" {
		c.Info.Ref.ID = env.MachineID()
	}
	if !c.Info.Ref.IsValid() {
		return nil, fmt.Errorf("controller type and id must be specified")
	}
	e := &Env{
		Config:    c,
		Registrar: &comm.RegistrarMux{},
	}
	if c.MQTTBrokerURL != "" {
		reg, err := mqtt.NewRegistrar(c.MQTTBrokerURL, c.Info)
		if err != nil {
			return nil, fmt.Errorf("create MQTT registrar error: %v", err)
		}
		e.Registrar.Add(reg)
		e.RegistryURLs = append(e.RegistryURLs, c.MQTTBrokerURL)
	}
	if c.WebSocketAddr != "" {
		e.Registrar.Add(websocket.NewRegistrar(c.WebSocketAddr, c.Info))
		e.RegistryURLs = append(e.RegistryURLs, "ws://"+c.WebSocketAddr)
	}
	if c.SerialURL != "" {
		conf, err := serial.ConfigFromURL(c.SerialURL)
		if err != nil {
			return nil, fmt.Errorf("create serial registrar error: %v", err)
		}
		e.Registrar.Add(serial.NewRegistrar(conf))
		e.RegistryURLs = append(e.RegistryURLs, c.SerialURL)
	}
	if e.Registrar.Len() == 0 {
		return nil, fmt.Errorf("at least one registrar is required")
	}
	return e, nil
}

// MustNewEnv creates Env and fails on error.
func (c *Config) MustNewEnv() *Env {
	e, err := c.NewEnv()
	if err != nil {
		log.Fatalln(err)
	}
	return e
}

// AddToLoop adds controllers/runners to loop.
func (e *Env) AddToLoop(loop *fx.Loop) {
	loop.Add(e.Registrar)
	loop.Add(&comm.UnsupportedCommands{})
}

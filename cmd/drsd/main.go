package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"log"

	"github.com/golang/glog"

	"github.com/robotalks/drs.go/pkg/control"
	fx "github.com/robotalks/drs.go/pkg/framework"
	"github.com/robotalks/drs.go/pkg/ipc"
	"github.com/robotalks/drs.go/pkg/l1"
	env "github.com/robotalks/drs.go/pkg/l1/env/controller"
	"github.com/robotalks/drs.go/pkg/psmodule"
	"github.com/robotalks/drs.go/pkg/supervisor"
)

func init() {
	env.SetControllerType("drs", l1.ControllerMeta{Description: "DRS power supply controller"})
	env.SetupFlags()
	control.SetupFlags()
}

func logHandlers() psmodule.Handlers {
	return &psmodule.HandlerFuncs{
		TurnOnFunc:          func() { glog.Info("power supply on") },
		TurnOffFunc:         func() { glog.Info("power supply off") },
		SoftInterlockFunc:   func() { glog.Warning("soft interlock") },
		HardInterlockFunc:   func() { glog.Warning("hard interlock") },
		ResetInterlocksFunc: func() { glog.Info("interlocks reset") },
	}
}

func main() {
	flag.Parse()

	conf := control.NewConfig()
	envConf := env.NewConfig()
	envConf.SetLabel("model", conf.Model)
	e := envConf.MustNewEnv()

	ch := ipc.NewChannel()
	core, err := conf.NewCore(ch, logHandlers())
	if err != nil {
		log.Fatalln(err)
	}

	controlLoop := fx.NewLoop().WithName("control")
	controlLoop.Interval = conf.Period
	controlLoop.Add(core)

	supervisorLoop := fx.NewLoop().WithName("supervisor").Add(
		e,
		supervisor.NewController(supervisor.NewClient(ch), e.Registrar),
	)

	err = fx.NewRunner().
		HandleSignals().
		Go(controlLoop, supervisorLoop).
		Wait()
	if err != nil {
		log.Fatalln(err)
	}
}

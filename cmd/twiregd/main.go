package main

//go-build: CGO_ENABLED=0

import (
	"flag"

	"github.com/wirelab/twislave/pkg/device"
	"github.com/wirelab/twislave/pkg/fw"
	"github.com/wirelab/twislave/pkg/slave/sim"
	"github.com/wirelab/twislave/pkg/telemetry"
)

func init() {
	device.SetDeviceType("twireg", telemetry.Meta{Description: "Register Bank Slave"})
	device.SetupFlags()
}

func main() {
	flag.Parse()

	env := device.NewConfig().MustNewEnv()
	ctl := device.NewController(env, env.Config.NewResponder(sim.NewPort()))
	fw.NewLoop().Add(env, ctl).RunOrFail()
}

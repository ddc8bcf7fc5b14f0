// Package device hosts a register-bank slave as a connected device:
// it polls the responder's drain path and bridges the register file to
// remote operators through telemetry.
package device

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/wirelab/twislave/pkg/fw"
	"github.com/wirelab/twislave/pkg/slave"
	"github.com/wirelab/twislave/pkg/telemetry"
	"github.com/wirelab/twislave/pkg/telemetry/mqtt"
)

// Config provides common options to set up a device env.
type Config struct {
	Info telemetry.DeviceInfo

	// MQTTBrokerURL specifies the MQTT broker to use,
	// e.g. mqtt://host:port/topic-prefix.
	MQTTBrokerURL string

	// BusAddr is the 7-bit slave address on the two-wire bus.
	BusAddr uint
	// Registers is the size of the register bank.
	Registers int
	// WriteMask is the global write mask applied to every register.
	WriteMask uint
	// StartTimeout bounds the clock wait on a start condition.
	StartTimeout time.Duration
}

var defaultConfig = Config{
	MQTTBrokerURL: "mqtt://localhost:1883/twi/",
	BusAddr:       0x40,
	Registers:     16,
	WriteMask:     0xff,
}

func init() {
	if val := os.Getenv("TWI_MQTT_URL"); val != "" {
		defaultConfig.MQTTBrokerURL = val
	}
	defaultConfig.Info.Ref.ID = MachineID()
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Info.Ref.Type, "type", defaultConfig.Info.Ref.Type, "Device type")
	flag.StringVar(&defaultConfig.Info.Ref.ID, "id", defaultConfig.Info.Ref.ID, "Device ID")
	flag.StringVar(&defaultConfig.MQTTBrokerURL, "mqtt", defaultConfig.MQTTBrokerURL, "MQTT broker URL")
	flag.UintVar(&defaultConfig.BusAddr, "addr", defaultConfig.BusAddr, "7-bit bus slave address")
	flag.IntVar(&defaultConfig.Registers, "regs", defaultConfig.Registers, "Register bank size")
	flag.UintVar(&defaultConfig.WriteMask, "mask", defaultConfig.WriteMask, "Global write mask for bus writes")
}

// Default gets the default config.
func Default() *Config {
	return &defaultConfig
}

// SetDeviceType should be called in init with basic info about the
// device.
func SetDeviceType(typ string, meta telemetry.Meta) {
	defaultConfig.Info.Ref.Type = typ
	defaultConfig.Info.Meta = meta
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Env is the env for register-bank devices.
type Env struct {
	Config       *Config
	RegistryURLs []string
	Registrar    *telemetry.RegistrarMux
}

// NewEnv creates Env from config.
func (c *Config) NewEnv() (*Env, error) {
	if !c.Info.Ref.IsValid() {
		return nil, fmt.Errorf("device type and id must be specified")
	}
	if c.BusAddr > 0x7f {
		return nil, fmt.Errorf("bus address %#x out of 7-bit range", c.BusAddr)
	}
	env := &Env{
		Config:    c,
		Registrar: &telemetry.RegistrarMux{},
	}
	if c.MQTTBrokerURL != "" {
		reg, err := mqtt.NewRegistrar(c.MQTTBrokerURL, c.Info)
		if err != nil {
			return nil, fmt.Errorf("create MQTT registrar error: %v", err)
		}
		env.Registrar.Add(reg)
		env.RegistryURLs = append(env.RegistryURLs, c.MQTTBrokerURL)
	}
	if len(env.Registrar.Registrars) == 0 {
		return nil, fmt.Errorf("at least one registrar is required")
	}
	return env, nil
}

// MustNewEnv creates Env and fails on error.
func (c *Config) MustNewEnv() *Env {
	env, err := c.NewEnv()
	if err != nil {
		log.Fatalln(err)
	}
	return env
}

// NewResponder builds the slave responder from the bus settings.
func (c *Config) NewResponder(port slave.Port) *slave.Responder {
	return slave.NewResponder(port, slave.Config{
		Addr:         slave.Addr7(c.BusAddr),
		Regs:         slave.NewRegisterFileGlobalMask(c.Registers, byte(c.WriteMask)),
		StartTimeout: c.StartTimeout,
	})
}

// AddToLoop adds env components to the loop.
func (e *Env) AddToLoop(loop *fw.Loop) {
	loop.Add(e.Registrar)
	loop.Add(&telemetry.UnsupportedCommands{})
}

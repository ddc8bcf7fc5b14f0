// Package sh provides the ishell backed interactive shell acting as a
// bus master against an in-process simulated slave.
package sh

import (
	"encoding/json"
	"flag"
	"fmt"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/wirelab/twislave/pkg/slave"
	"github.com/wirelab/twislave/pkg/slave/sim"
)

// Bus bundles the simulated bus endpoints the commands operate on.
type Bus struct {
	Addr      slave.Addr7
	Port      *sim.Port
	Responder *slave.Responder
	Master    *sim.Master
}

// NewBus creates a simulated bus with a slave at addr exposing regs.
func NewBus(addr slave.Addr7, regs *slave.RegisterFile) *Bus {
	port := sim.NewPort()
	resp := slave.NewResponder(port, slave.Config{Addr: addr, Regs: regs})
	return &Bus{
		Addr:      addr,
		Port:      port,
		Responder: resp,
		Master:    sim.NewMaster(port, resp),
	}
}

// Shell provides the interactive shell.
type Shell struct {
	Interactive bool
	OutputJSON  bool

	Shell *ishell.Shell
	Bus   *Bus
}

const (
	shellKey = "$shell"
	busKey   = "$bus"
)

var (
	// flags

	evalOnly   bool
	outputJSON bool
	busAddr    uint = 0x40
	busRegs    int  = 16
	busMask    uint = 0xff

	// commands
	commands []*ishell.Cmd
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
	flag.UintVar(&busAddr, "addr", busAddr, "7-bit bus slave address")
	flag.IntVar(&busRegs, "regs", busRegs, "Register bank size")
	flag.UintVar(&busMask, "mask", busMask, "Global write mask for bus writes")
}

// AddCmds is used by command providers during their init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell over the bus.
func New(bus *Bus) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,

		Shell: ishell.New(),
		Bus:   bus,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.Set(busKey, bus)
	s.Shell.SetPrompt(fmt.Sprintf("twi[%#02x] > ", bus.Addr.Addr()))
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// Run runs the shell: interactively, or evaluating the remaining
// command line arguments.
func (s *Shell) Run() {
	if s.Interactive {
		s.Shell.Run()
		return
	}
	if err := s.Shell.Process(flag.Args()...); err != nil {
		fmt.Println(err)
	}
}

// Main is the entry point of the shell command.
func Main() {
	flag.Parse()
	regs := slave.NewRegisterFileGlobalMask(busRegs, byte(busMask))
	New(NewBus(slave.Addr7(busAddr), regs)).Run()
}

// ShellFrom extracts the Shell from command context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// BusFrom extracts the Bus from command context.
func BusFrom(c *ishell.Context) *Bus {
	return c.Get(busKey).(*Bus)
}

// Print writes a command result honoring the output mode.
func Print(c *ishell.Context, v interface{}) {
	if ShellFrom(c).OutputJSON {
		encoded, err := json.Marshal(v)
		if err != nil {
			c.Err(err)
			return
		}
		c.Println(string(encoded))
		return
	}
	c.Println(v)
}

// HexBytes formats a byte slice the way the dump commands print it.
func HexBytes(b []byte) string {
	parts := make([]string, len(b))
	for i, v := range b {
		parts[i] = fmt.Sprintf("%02x", v)
	}
	return strings.Join(parts, " ")
}

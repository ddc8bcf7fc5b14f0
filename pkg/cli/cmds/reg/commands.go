package reg

import (
	"fmt"
	"strconv"

	"github.com/abiosoft/ishell"

	"github.com/wirelab/twislave/pkg/cli/sh"
)

func parseByte(arg string) (byte, error) {
	val, err := strconv.ParseUint(arg, 0, 8)
	return byte(val), err
}

var (
	// ReadCmd reads registers over the bus.
	ReadCmd = ishell.Cmd{
		Name:    "reg.read",
		Aliases: []string{"r"},
		Help:    "OFFSET [COUNT]",
		Func: func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("OFFSET required"))
				return
			}
			offset, err := parseByte(c.Args[0])
			if err != nil {
				c.Err(fmt.Errorf("Invalid OFFSET: %v", err))
				return
			}
			count := 1
			if len(c.Args) > 1 {
				val, err := strconv.ParseUint(c.Args[1], 0, 16)
				if err != nil || val == 0 {
					c.Err(fmt.Errorf("Invalid COUNT: %s", c.Args[1]))
					return
				}
				count = int(val)
			}
			bus := sh.BusFrom(c)
			buf := make([]byte, count)
			if err := bus.Master.ReadRegsAt(bus.Addr, offset, buf); err != nil {
				c.Err(err)
				return
			}
			sh.Print(c, sh.HexBytes(buf))
		},
	}

	// WriteCmd writes registers over the bus.
	WriteCmd = ishell.Cmd{
		Name:    "reg.write",
		Aliases: []string{"w"},
		Help:    "OFFSET BYTE...",
		Func: func(c *ishell.Context) {
			if len(c.Args) < 2 {
				c.Err(fmt.Errorf("OFFSET and at least one BYTE required"))
				return
			}
			offset, err := parseByte(c.Args[0])
			if err != nil {
				c.Err(fmt.Errorf("Invalid OFFSET: %v", err))
				return
			}
			data := make([]byte, len(c.Args)-1)
			for i, arg := range c.Args[1:] {
				if data[i], err = parseByte(arg); err != nil {
					c.Err(fmt.Errorf("Invalid BYTE %s: %v", arg, err))
					return
				}
			}
			bus := sh.BusFrom(c)
			if err := bus.Master.WriteRegs(bus.Addr, offset, data...); err != nil {
				c.Err(err)
				return
			}
			sh.Print(c, fmt.Sprintf("wrote %d", len(data)))
		},
	}

	// DumpCmd dumps the register bank from the slave side, without a
	// bus transaction.
	DumpCmd = ishell.Cmd{
		Name:    "reg.dump",
		Aliases: []string{"d"},
		Help:    "",
		Func: func(c *ishell.Context) {
			bus := sh.BusFrom(c)
			if bus.Responder.TransactionOngoing() {
				c.Err(fmt.Errorf("transaction ongoing"))
				return
			}
			sh.Print(c, sh.HexBytes(bus.Responder.Registers().Snapshot()))
		},
	}

	// DrainCmd runs the stop-condition drain once.
	DrainCmd = ishell.Cmd{
		Name: "drain",
		Help: "",
		Func: func(c *ishell.Context) {
			sh.Print(c, fmt.Sprintf("drained %d", sh.BusFrom(c).Responder.CheckAndDrain()))
		},
	}

	// StateCmd shows the responder state.
	StateCmd = ishell.Cmd{
		Name: "state",
		Help: "",
		Func: func(c *ishell.Context) {
			sh.Print(c, sh.BusFrom(c).Responder.State().String())
		},
	}

	// PokeCmd sets a register directly on the slave side, bypassing
	// the bus and the write masks.
	PokeCmd = ishell.Cmd{
		Name: "poke",
		Help: "OFFSET VALUE",
		Func: func(c *ishell.Context) {
			if len(c.Args) < 2 {
				c.Err(fmt.Errorf("OFFSET and VALUE required"))
				return
			}
			offset, err := parseByte(c.Args[0])
			if err != nil {
				c.Err(fmt.Errorf("Invalid OFFSET: %v", err))
				return
			}
			value, err := parseByte(c.Args[1])
			if err != nil {
				c.Err(fmt.Errorf("Invalid VALUE: %v", err))
				return
			}
			bus := sh.BusFrom(c)
			regs := bus.Responder.Registers()
			if int(offset) >= regs.Len() {
				c.Err(fmt.Errorf("OFFSET out of range"))
				return
			}
			regs.Set(int(offset), value)
		},
	}
)

func init() {
	sh.AddCmds(
		&ReadCmd,
		&WriteCmd,
		&DumpCmd,
		&DrainCmd,
		&StateCmd,
		&PokeCmd,
	)
}

package device

import (
	"github.com/golang/glog"

	"github.com/wirelab/twislave/pkg/fw"
	"github.com/wirelab/twislave/pkg/slave"
	"github.com/wirelab/twislave/pkg/telemetry"
	"github.com/wirelab/twislave/pkg/telemetry/msgs"
)

// Controller bridges a slave responder and the telemetry loop. Each
// iteration it drains completed bus write transactions and publishes a
// RegisterUpdate; commands from operators touch the register file only
// between transactions.
type Controller struct {
	Events telemetry.EventSender

	resp    *slave.Responder
	pending *msgs.RegisterUpdate
}

// NewController creates a Controller for resp publishing through env.
func NewController(env *Env, resp *slave.Responder) *Controller {
	return &Controller{Events: env.Registrar, resp: resp}
}

// Responder returns the wrapped responder.
func (c *Controller) Responder() *slave.Responder {
	return c.resp
}

// AddToLoop implements LoopAdder.
func (c *Controller) AddToLoop(loop *fw.Loop) {
	loop.AddController(fw.StageSense, fw.ControlFunc(c.drain))
	loop.AddController(fw.StageControl, c)
	loop.AddController(fw.StagePublish, fw.ControlFunc(c.publish))
}

// drain polls the stop-condition monitor. Runs every iteration at the
// sense stage.
func (c *Controller) drain(cc fw.ControlContext) error {
	n := c.resp.CheckAndDrain()
	if n == 0 {
		return nil
	}
	glog.V(2).Infof("drained %d register writes", n)
	update := &msgs.RegisterUpdate{Changed: uint32(n)}
	if !c.resp.TransactionOngoing() {
		update.Values = c.resp.Registers().Snapshot()
	}
	if c.pending != nil {
		// Publish stage hasn't caught up; fold the counts together.
		update.Changed += c.pending.Changed
	}
	c.pending = update
	return nil
}

// Control implements Controller: handle operator commands.
func (c *Controller) Control(cc fw.ControlContext) error {
	cc.Drain(func(msg fw.Message) bool {
		cmdMsg, ok := msg.(*telemetry.CommandMsg)
		if !ok {
			return false
		}
		switch m := cmdMsg.Command.Msg().(type) {
		case *msgs.RegisterQuery:
			cmdMsg.Command.Done(c.query(m))
		case *msgs.RegisterWrite:
			cmdMsg.Command.Done(c.write(m))
		default:
			return false
		}
		return true
	})
	return nil
}

func (c *Controller) publish(cc fw.ControlContext) error {
	update := c.pending
	c.pending = nil
	if update == nil {
		return nil
	}
	return c.Events.SendEvent(cc.Context(), update)
}

func (c *Controller) query(m *msgs.RegisterQuery) fw.Message {
	regs := c.resp.Registers()
	if int(m.Offset) >= regs.Len() {
		return msgs.NewCommandErrFromMsg("offset out of range")
	}
	if c.resp.TransactionOngoing() {
		return msgs.NewCommandErrFromMsg("transaction ongoing")
	}
	count := int(m.Count)
	if count == 0 || int(m.Offset)+count > regs.Len() {
		count = regs.Len() - int(m.Offset)
	}
	values := make([]byte, count)
	for i := range values {
		values[i] = regs.At(int(m.Offset) + i)
	}
	return &msgs.RegisterData{Offset: m.Offset, Values: values}
}

func (c *Controller) write(m *msgs.RegisterWrite) fw.Message {
	regs := c.resp.Registers()
	if int(m.Offset)+len(m.Values) > regs.Len() {
		return msgs.NewCommandErrFromMsg("write beyond register bank")
	}
	if c.resp.TransactionOngoing() {
		return msgs.NewCommandErrFromMsg("transaction ongoing")
	}
	for i, v := range m.Values {
		regs.Set(int(m.Offset)+i, v)
	}
	return msgs.NewCommandOK()
}

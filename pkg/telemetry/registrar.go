package telemetry

import (
	"context"

	"github.com/wirelab/twislave/pkg/fw"
	"github.com/wirelab/twislave/pkg/telemetry/msgs"
)

// Registrar publishes device events and feeds received commands into
// the loop as CommandMsg.
type Registrar struct {
	pipe Pipe
}

// Init initializes the Registrar over a PacketReadWriter.
func (r *Registrar) Init(rw PacketReadWriter) {
	r.pipe.ReadWriter = rw
	r.pipe.Handler = msgs.HandleTypedMsgFunc(func(ctx context.Context, msg fw.Message, typed *msgs.Typed) error {
		loopCtl := fw.LoopCtlFrom(ctx)
		switch typed.Kind() {
		case msgs.TypeIDKindCommand:
			loopCtl.PostMessage(&CommandMsg{Command: &command{seq: typed.Sequence, msg: msg, pipe: &r.pipe}})
			loopCtl.TriggerNext()
		case msgs.TypeIDKindEvent:
			loopCtl.PostMessage(msg)
			loopCtl.TriggerNext()
		}
		return nil
	})
}

// SendEvent publishes an event message.
func (r *Registrar) SendEvent(ctx context.Context, msg fw.Message) error {
	return r.pipe.SendEventMsg(msg)
}

// AddToLoop implements LoopAdder.
func (r *Registrar) AddToLoop(loop *fw.Loop) {
	loop.Add(&r.pipe)
}

type command struct {
	seq  uint32
	msg  fw.Message
	pipe *Pipe
}

func (c *command) Msg() fw.Message {
	return c.msg
}

func (c *command) Done(msg fw.Message) error {
	return c.pipe.SendCommandMsg(msg, c.seq)
}

// EventSender is the device-facing side of a registrar.
type EventSender interface {
	SendEvent(context.Context, fw.Message) error
}

// RegistrarMux fans events out to multiple registrars.
type RegistrarMux struct {
	Registrars []EventSender
}

// SendEvent implements EventSender.
func (r *RegistrarMux) SendEvent(ctx context.Context, msg fw.Message) error {
	var errs fw.AggregatedError
	for _, reg := range r.Registrars {
		errs.Add(reg.SendEvent(ctx, msg))
	}
	return errs.Aggregate()
}

// AddToLoop implements LoopAdder.
func (r *RegistrarMux) AddToLoop(l *fw.Loop) {
	for _, reg := range r.Registrars {
		if adder, ok := reg.(fw.LoopAdder); ok {
			l.Add(adder)
		}
	}
}

// Add adds more registrars.
func (r *RegistrarMux) Add(regs ...EventSender) {
	r.Registrars = append(r.Registrars, regs...)
}

// UnsupportedCommands replies to left-over commands as unsupported.
type UnsupportedCommands struct {
}

// Control implements Controller.
func (c *UnsupportedCommands) Control(cc fw.ControlContext) error {
	cc.Drain(func(msg fw.Message) bool {
		if cmdMsg, ok := msg.(*CommandMsg); ok {
			cmdMsg.Command.Done(msgs.NewCommandErr(msgs.ErrUnsupportedCommand))
			return true
		}
		return false
	})
	return nil
}

// AddToLoop implements LoopAdder.
func (c *UnsupportedCommands) AddToLoop(loop *fw.Loop) {
	loop.AddController(fw.StageIdle, c)
}

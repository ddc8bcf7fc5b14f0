package device

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wirelab/twislave/pkg/fw"
	"github.com/wirelab/twislave/pkg/slave"
	"github.com/wirelab/twislave/pkg/slave/sim"
	"github.com/wirelab/twislave/pkg/telemetry"
	"github.com/wirelab/twislave/pkg/telemetry/msgs"
)

type testCC struct {
	messages []fw.Message
}

func (c *testCC) Context() context.Context   { return context.Background() }
func (c *testCC) Time() time.Time            { return time.Now() }
func (c *testCC) PostMessage(msg fw.Message) { c.messages = append(c.messages, msg) }
func (c *testCC) TriggerNext()               {}

func (c *testCC) Drain(visit func(fw.Message) bool) {
	remains := c.messages[:0]
	for _, msg := range c.messages {
		if !visit(msg) {
			remains = append(remains, msg)
		}
	}
	c.messages = remains
}

type testEvents struct {
	sent []fw.Message
}

func (e *testEvents) SendEvent(_ context.Context, msg fw.Message) error {
	e.sent = append(e.sent, msg)
	return nil
}

type testCommand struct {
	msg   fw.Message
	reply fw.Message
}

func (c *testCommand) Msg() fw.Message { return c.msg }

func (c *testCommand) Done(msg fw.Message) error {
	c.reply = msg
	return nil
}

const testAddr slave.Addr7 = 0x2a

func newTestController(regs int) (*Controller, *sim.Master, *testEvents) {
	port := sim.NewPort()
	resp := slave.NewResponder(port, slave.Config{
		Addr: testAddr,
		Regs: slave.NewRegisterFile(regs, nil),
	})
	events := &testEvents{}
	ctl := &Controller{Events: events, resp: resp}
	return ctl, sim.NewMaster(port, resp), events
}

func TestControllerDrainPublish(t *testing.T) {
	ctl, master, events := newTestController(4)
	require.NoError(t, master.WriteRegs(testAddr, 1, 0x11, 0x22))

	cc := &testCC{}
	require.NoError(t, ctl.drain(cc))
	require.NoError(t, ctl.publish(cc))
	require.Len(t, events.sent, 1)
	update, ok := events.sent[0].(*msgs.RegisterUpdate)
	require.True(t, ok)
	require.Equal(t, uint32(2), update.Changed)
	require.Equal(t, []byte{0x00, 0x11, 0x22, 0x00}, update.Values)

	// Nothing new drained, nothing published.
	require.NoError(t, ctl.drain(cc))
	require.NoError(t, ctl.publish(cc))
	require.Len(t, events.sent, 1)
}

func TestControllerDrainFoldsUnpublished(t *testing.T) {
	ctl, master, events := newTestController(4)
	cc := &testCC{}

	require.NoError(t, master.WriteRegs(testAddr, 0, 0xaa))
	require.NoError(t, ctl.drain(cc))
	require.NoError(t, master.WriteRegs(testAddr, 1, 0xbb, 0xcc))
	require.NoError(t, ctl.drain(cc))

	require.NoError(t, ctl.publish(cc))
	require.Len(t, events.sent, 1)
	update := events.sent[0].(*msgs.RegisterUpdate)
	require.Equal(t, uint32(3), update.Changed)
}

func TestControllerQuery(t *testing.T) {
	ctl, master, _ := newTestController(4)
	require.NoError(t, master.WriteRegs(testAddr, 1, 0x11, 0x22))

	cmd := &testCommand{msg: &msgs.RegisterQuery{Offset: 1, Count: 2}}
	cc := &testCC{messages: []fw.Message{&telemetry.CommandMsg{Command: cmd}}}
	require.NoError(t, ctl.Control(cc))
	require.Empty(t, cc.messages)
	data, ok := cmd.reply.(*msgs.RegisterData)
	require.True(t, ok)
	require.Equal(t, uint32(1), data.Offset)
	require.Equal(t, []byte{0x11, 0x22}, data.Values)

	// Count 0 reads to the end of the bank.
	cmd = &testCommand{msg: &msgs.RegisterQuery{Offset: 2}}
	cc = &testCC{messages: []fw.Message{&telemetry.CommandMsg{Command: cmd}}}
	require.NoError(t, ctl.Control(cc))
	data = cmd.reply.(*msgs.RegisterData)
	require.Equal(t, []byte{0x22, 0x00}, data.Values)

	cmd = &testCommand{msg: &msgs.RegisterQuery{Offset: 9}}
	cc = &testCC{messages: []fw.Message{&telemetry.CommandMsg{Command: cmd}}}
	require.NoError(t, ctl.Control(cc))
	_, ok = cmd.reply.(*msgs.CommandErr)
	require.True(t, ok)
}

func TestControllerWrite(t *testing.T) {
	ctl, _, _ := newTestController(4)

	cmd := &testCommand{msg: &msgs.RegisterWrite{Offset: 2, Values: []byte{0xde, 0xad}}}
	cc := &testCC{messages: []fw.Message{&telemetry.CommandMsg{Command: cmd}}}
	require.NoError(t, ctl.Control(cc))
	_, ok := cmd.reply.(*msgs.CommandOK)
	require.True(t, ok)
	regs := ctl.Responder().Registers()
	require.Equal(t, byte(0xde), regs.At(2))
	require.Equal(t, byte(0xad), regs.At(3))

	cmd = &testCommand{msg: &msgs.RegisterWrite{Offset: 3, Values: []byte{1, 2}}}
	cc = &testCC{messages: []fw.Message{&telemetry.CommandMsg{Command: cmd}}}
	require.NoError(t, ctl.Control(cc))
	_, ok = cmd.reply.(*msgs.CommandErr)
	require.True(t, ok)
}

func TestControllerLeavesOtherMessages(t *testing.T) {
	ctl, _, _ := newTestController(4)
	other := &msgs.RegisterUpdate{}
	cc := &testCC{messages: []fw.Message{other}}
	require.NoError(t, ctl.Control(cc))
	require.Equal(t, []fw.Message{fw.Message(other)}, cc.messages)
}

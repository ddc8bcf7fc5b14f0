package fw

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type testMsg struct {
	tag string
}

func (m *testMsg) NewMessage() Message { return &testMsg{} }

func TestLoopStageOrder(t *testing.T) {
	loop := NewLoop()
	var order []string
	record := func(name string) Controller {
		return ControlFunc(func(ControlContext) error {
			order = append(order, name)
			return nil
		})
	}
	loop.AddController(StagePublish, record("publish"))
	loop.AddController(StageIdle, record("idle"))
	loop.AddController(StageSense, record("sense"))
	loop.AddController(StageControl, record("control"))
	loop.runIteration(context.Background())
	require.Equal(t, []string{"sense", "control", "publish", "idle"}, order)
}

func TestLoopMessageCarryOver(t *testing.T) {
	loop := NewLoop()
	var taken []string
	take := func(tag string) Controller {
		return ControlFunc(func(cc ControlContext) error {
			cc.Drain(func(msg Message) bool {
				m := msg.(*testMsg)
				if tag != "" && m.tag != tag {
					return false
				}
				taken = append(taken, m.tag)
				return true
			})
			return nil
		})
	}
	loop.AddController(StageControl, take("a"))
	loop.PostMessage(&testMsg{tag: "a"})
	loop.PostMessage(&testMsg{tag: "b"})

	loop.runIteration(context.Background())
	require.Equal(t, []string{"a"}, taken)
	require.Len(t, loop.queue, 1)

	loop.stages[StageControl] = []Controller{take("")}
	loop.runIteration(context.Background())
	require.Equal(t, []string{"a", "b"}, taken)
	require.Empty(t, loop.queue)
}

type testPoster struct {
	msg Message
}

func (p *testPoster) Run(ctx context.Context) error {
	loopCtl := LoopCtlFrom(ctx)
	loopCtl.PostMessage(p.msg)
	loopCtl.TriggerNext()
	<-ctx.Done()
	return ctx.Err()
}

func TestLoopPostFromRunnable(t *testing.T) {
	loop := NewLoop()
	loop.Interval = time.Hour
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var got *testMsg
	loop.AddController(StageControl, ControlFunc(func(cc ControlContext) error {
		cc.Drain(func(msg Message) bool {
			got = msg.(*testMsg)
			cancel()
			return true
		})
		return nil
	}))
	loop.AddRunnable(&testPoster{msg: &testMsg{tag: "posted"}})

	err := loop.Run(ctx)
	require.Equal(t, context.Canceled, err)
	require.NotNil(t, got)
	require.Equal(t, "posted", got.tag)
}

func TestLoopTriggerNextNonBlocking(t *testing.T) {
	loop := NewLoop()
	loop.TriggerNext()
	loop.TriggerNext()
}

package fw

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/golang/glog"
)

// Message is the abstract message consumed in a controlling loop.
type Message interface {
	// NewMessage creates an empty message of the same type.
	NewMessage() Message
}

// Controller defines one unit of per-iteration controlling logic.
type Controller interface {
	Control(ControlContext) error
}

// ControlFunc is the func form of Controller.
type ControlFunc func(ControlContext) error

// Control implements Controller.
func (f ControlFunc) Control(cc ControlContext) error {
	return f(cc)
}

// Stage orders controllers within one loop iteration.
type Stage int

// Stages, executed in order each iteration.
const (
	StageSense Stage = iota
	StageControl
	StagePublish
	StageIdle

	numStages
)

// LoopControl exposes access to the loop from runnables.
type LoopControl interface {
	// PostMessage enqueues a message for the next iteration.
	PostMessage(Message)
	// TriggerNext schedules an immediate iteration.
	TriggerNext()
}

// ControlContext is the per-iteration context handed to controllers.
type ControlContext interface {
	// Context retrieves context.Context.
	Context() context.Context
	// Time is the iteration start time.
	Time() time.Time
	// Drain visits the messages collected when the iteration started.
	// The visitor returns true to take a message; untaken messages
	// stay queued for the next iteration.
	Drain(func(Message) bool)

	LoopControl
}

// LoopAdder provides specific logic to add components to a loop.
type LoopAdder interface {
	AddToLoop(*Loop)
}

// Loop runs registered controllers stage by stage on a polling
// interval, waking early when triggered.
type Loop struct {
	Interval time.Duration

	stages  [numStages][]Controller
	runners []Runnable

	mu     sync.Mutex
	queue  []Message
	wakeCh chan struct{}
}

var loopCtxKey = &Loop{}

// LoopCtlFrom gets LoopControl from a context passed to a Runnable.
func LoopCtlFrom(ctx context.Context) LoopControl {
	return ctx.Value(loopCtxKey).(LoopControl)
}

// NewLoop creates a Loop with the default interval.
func NewLoop() *Loop {
	return &Loop{
		Interval: 100 * time.Millisecond,
		wakeCh:   make(chan struct{}, 1),
	}
}

// Add adds LoopAdders.
func (l *Loop) Add(adders ...LoopAdder) *Loop {
	for _, adder := range adders {
		adder.AddToLoop(l)
	}
	return l
}

// AddController registers controllers at a stage. Controllers that are
// also Runnable are spawned alongside the loop.
func (l *Loop) AddController(stage Stage, ctls ...Controller) *Loop {
	l.stages[stage] = append(l.stages[stage], ctls...)
	for _, ctl := range ctls {
		if runner, ok := ctl.(Runnable); ok {
			l.runners = append(l.runners, runner)
		}
	}
	return l
}

// AddRunnable adds Runnable implementations.
func (l *Loop) AddRunnable(runnables ...Runnable) *Loop {
	l.runners = append(l.runners, runnables...)
	return l
}

// PostMessage implements LoopControl.
func (l *Loop) PostMessage(msg Message) {
	l.mu.Lock()
	l.queue = append(l.queue, msg)
	l.mu.Unlock()
}

// TriggerNext implements LoopControl.
func (l *Loop) TriggerNext() {
	select {
	case l.wakeCh <- struct{}{}:
	default:
	}
}

// Run implements Runnable.
func (l *Loop) Run(ctx context.Context) error {
	if l.wakeCh == nil {
		l.wakeCh = make(chan struct{}, 1)
	}

	runner := NewRunnerWith(context.WithValue(ctx, loopCtxKey, l))
	runner.Go(l.runners...)
	defer runner.Wait()

	interval := l.Interval
	if interval == 0 {
		interval = 100 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			l.runIteration(ctx)
		case <-l.wakeCh:
			l.runIteration(ctx)
		}
	}
}

// RunOrFail is intended to be used in main to simply run the loop.
func (l *Loop) RunOrFail() {
	if err := l.Run(context.TODO()); err != nil && err != context.Canceled {
		log.Fatalln(err)
	}
}

func (l *Loop) runIteration(ctx context.Context) {
	iter := &loopIteration{loop: l, time: time.Now()}
	l.mu.Lock()
	iter.messages, l.queue = l.queue, nil
	l.mu.Unlock()
	iter.ctx = context.WithValue(ctx, loopCtxKey, iter)
	for stage := Stage(0); stage < numStages; stage++ {
		for _, ctl := range l.stages[stage] {
			if err := ctl.Control(iter); err != nil {
				glog.Errorf("controller error: %v", err)
			}
		}
	}
	// Untaken messages carry over.
	if len(iter.messages) > 0 {
		l.mu.Lock()
		l.queue = append(iter.messages, l.queue...)
		l.mu.Unlock()
	}
}

type loopIteration struct {
	loop     *Loop
	ctx      context.Context
	time     time.Time
	messages []Message
}

func (t *loopIteration) Context() context.Context { return t.ctx }
func (t *loopIteration) Time() time.Time          { return t.time }
func (t *loopIteration) PostMessage(msg Message)  { t.loop.PostMessage(msg) }
func (t *loopIteration) TriggerNext()             { t.loop.TriggerNext() }

func (t *loopIteration) Drain(visit func(Message) bool) {
	remains := t.messages[:0]
	for _, msg := range t.messages {
		if !visit(msg) {
			remains = append(remains, msg)
		}
	}
	t.messages = remains
}

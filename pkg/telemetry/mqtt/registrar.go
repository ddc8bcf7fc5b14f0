package mqtt

import (
	"context"
	"encoding/json"

	"github.com/wirelab/twislave/pkg/fw"
	"github.com/wirelab/twislave/pkg/telemetry"
)

// Registrar announces a device on the broker and bridges its typed
// messages: a retained meta document under <type>/<id>/meta, commands
// in on .../cmd, events out on .../msg.
type Registrar struct {
	Queue *Queue
	Info  telemetry.DeviceInfo

	metaJSON  string
	registrar telemetry.Registrar
}

// NewRegistrar creates a Registrar.
func NewRegistrar(brokerURL string, info telemetry.DeviceInfo) (*Registrar, error) {
	meta, err := json.Marshal(&info.Meta)
	if err != nil {
		panic(err)
	}
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	opts.SetBinaryWill(topicPrefix+info.Ref.Name()+"/meta", nil, 1, true)
	if opts.ClientID == "" {
		opts.SetClientID("twi:" + info.Ref.Name())
	}
	r := &Registrar{
		Queue:    NewQueue(opts, topicPrefix),
		Info:     info,
		metaJSON: string(meta),
	}
	r.Queue.OnConnect = func(*Queue) { r.onConnected() }
	r.registrar.Init(NewPacketReadWriter(r.Queue).ForDevice(info.Ref))
	return r, nil
}

// SendEvent implements EventSender.
func (r *Registrar) SendEvent(ctx context.Context, msg fw.Message) error {
	return r.registrar.SendEvent(ctx, msg)
}

// AddToLoop implements LoopAdder.
func (r *Registrar) AddToLoop(loop *fw.Loop) {
	loop.Add(&r.registrar)
	loop.AddRunnable(r)
}

// Run implements Runnable.
func (r *Registrar) Run(ctx context.Context) error {
	r.Queue.Connect()
	<-ctx.Done()
	r.Queue.PubWith(r.Info.Ref.Name()+"/meta", nil, 1, true)
	r.Queue.Close()
	return ctx.Err()
}

func (r *Registrar) onConnected() {
	r.Queue.PubWith(r.Info.Ref.Name()+"/meta", []byte(r.metaJSON), 1, true)
}

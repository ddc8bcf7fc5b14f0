package msgs

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang/protobuf/proto"

	"github.com/wirelab/twislave/pkg/fw"
)

// TypeID masks
const (
	TypeIDMaskKind  uint32 = 0x80000000
	TypeIDMaskGroup uint32 = 0x7fff0000
	TypeIDMaskID    uint32 = 0x0000ffff
	TypeIDMaskReply uint32 = 0x00008000
)

// Message kinds
const (
	TypeIDKindCommand uint32 = 0x00000000
	TypeIDKindEvent   uint32 = 0x80000000
)

// Typed wraps an encoded message with type information.
type Typed struct {
	TypeId   uint32 `protobuf:"varint,1,opt,name=type_id,json=typeId,proto3" json:"type_id,omitempty"`
	Sequence uint32 `protobuf:"varint,2,opt,name=sequence,proto3" json:"sequence,omitempty"`
	Message  []byte `protobuf:"bytes,3,opt,name=message,proto3" json:"message,omitempty"`
}

// Reset implements proto.Message.
func (p *Typed) Reset() { *p = Typed{} }

// String implements proto.Message.
func (p *Typed) String() string { return proto.CompactTextString(p) }

// ProtoMessage implements proto.Message.
func (*Typed) ProtoMessage() {}

// TypedMsgHandler handles a decoded message.
type TypedMsgHandler interface {
	HandleTypedMsg(context.Context, fw.Message, *Typed) error
}

// HandleTypedMsgFunc is func form of TypedMsgHandler.
type HandleTypedMsgFunc func(context.Context, fw.Message, *Typed) error

// HandleTypedMsg implements TypedMsgHandler.
func (f HandleTypedMsgFunc) HandleTypedMsg(ctx context.Context, msg fw.Message, typed *Typed) error {
	return f(ctx, msg, typed)
}

// ErrUnknownType indicates an unknown type id.
type ErrUnknownType struct {
	TypeID uint32
}

// Error implements error.
func (e *ErrUnknownType) Error() string {
	return fmt.Sprintf("unknown type: %x", e.TypeID)
}

var (
	// ErrNotSerializable indicates the message is not serializable.
	ErrNotSerializable = errors.New("not serializable message")
	// ErrUnsupportedCommand indicates the command is unsupported.
	ErrUnsupportedCommand = errors.New("unsupported command")
)

// SerializableMessage can be serialized over the wire.
type SerializableMessage interface {
	fw.Message
	TypeID() uint32
	Serializable() proto.Message
}

// MessageTypes are predefined mapping of type ID to messages.
var MessageTypes = map[uint32]SerializableMessage{
	CommandOKTypeID:      (*CommandOK)(nil),
	CommandErrTypeID:     (*CommandErr)(nil),
	RegisterQueryTypeID:  (*RegisterQuery)(nil),
	RegisterDataTypeID:   (*RegisterData)(nil),
	RegisterWriteTypeID:  (*RegisterWrite)(nil),
	RegisterUpdateTypeID: (*RegisterUpdate)(nil),
}

// TypedFrom creates a Typed from a serializable message.
func TypedFrom(msg fw.Message) (*Typed, error) {
	s, ok := msg.(SerializableMessage)
	if !ok {
		return nil, ErrNotSerializable
	}
	data, err := proto.Marshal(s.Serializable())
	if err != nil {
		return nil, err
	}
	return &Typed{TypeId: s.TypeID(), Message: data}, nil
}

// Decode decodes the payload into the actual message.
func (p *Typed) Decode() (fw.Message, error) {
	msgType, ok := MessageTypes[p.TypeId]
	if !ok {
		return nil, &ErrUnknownType{TypeID: p.TypeId}
	}
	msg := msgType.NewMessage()
	if err := proto.Unmarshal(p.Message, msg.(SerializableMessage).Serializable()); err != nil {
		return nil, err
	}
	return msg, nil
}

// Encode encodes the Typed to bytes.
func (p *Typed) Encode() ([]byte, error) {
	return proto.Marshal(p)
}

// Kind gets the message kind from the type ID.
func (p *Typed) Kind() uint32 {
	return p.TypeId & TypeIDMaskKind
}

// IsCommand determines if the message is a command.
func (p *Typed) IsCommand() bool {
	return p.Kind() == TypeIDKindCommand
}

// IsEvent determines if the message is an event.
func (p *Typed) IsEvent() bool {
	return p.Kind() == TypeIDKindEvent
}

// DecodeTyped decodes bytes into Typed.
func DecodeTyped(data []byte) (*Typed, error) {
	var typed Typed
	if err := proto.Unmarshal(data, &typed); err != nil {
		return nil, err
	}
	return &typed, nil
}

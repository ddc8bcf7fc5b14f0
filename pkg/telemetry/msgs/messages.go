package msgs

import (
	"github.com/golang/protobuf/proto"

	"github.com/wirelab/twislave/pkg/fw"
)

// Type IDs. Group 0x0000 is generic replies, group 0x0001 the
// register bank.
const (
	CommandOKTypeID      uint32 = 0x00008001
	CommandErrTypeID     uint32 = 0x00008002
	RegisterQueryTypeID  uint32 = 0x00010001
	RegisterDataTypeID   uint32 = 0x00018001
	RegisterWriteTypeID  uint32 = 0x00010002
	RegisterUpdateTypeID uint32 = 0x80010001
)

// CommandOK is the generic reply indicating success.
type CommandOK struct {
}

// NewCommandOK creates a CommandOK.
func NewCommandOK() *CommandOK {
	return &CommandOK{}
}

// Reset implements proto.Message.
func (m *CommandOK) Reset() { *m = CommandOK{} }

// String implements proto.Message.
func (m *CommandOK) String() string { return proto.CompactTextString(m) }

// ProtoMessage implements proto.Message.
func (*CommandOK) ProtoMessage() {}

// NewMessage implements Message.
func (m *CommandOK) NewMessage() fw.Message { return &CommandOK{} }

// TypeID implements SerializableMessage.
func (m *CommandOK) TypeID() uint32 { return CommandOKTypeID }

// Serializable implements SerializableMessage.
func (m *CommandOK) Serializable() proto.Message { return m }

// CommandErr is the generic reply representing a command error.
type CommandErr struct {
	Message string `protobuf:"bytes,1,opt,name=message,proto3" json:"message,omitempty"`
}

// NewCommandErr creates a CommandErr from an error.
func NewCommandErr(err error) *CommandErr {
	return NewCommandErrFromMsg(err.Error())
}

// NewCommandErrFromMsg creates a CommandErr.
func NewCommandErrFromMsg(message string) *CommandErr {
	return &CommandErr{Message: message}
}

// Reset implements proto.Message.
func (m *CommandErr) Reset() { *m = CommandErr{} }

// String implements proto.Message.
func (m *CommandErr) String() string { return proto.CompactTextString(m) }

// ProtoMessage implements proto.Message.
func (*CommandErr) ProtoMessage() {}

// NewMessage implements Message.
func (m *CommandErr) NewMessage() fw.Message { return &CommandErr{} }

// TypeID implements SerializableMessage.
func (m *CommandErr) TypeID() uint32 { return CommandErrTypeID }

// Serializable implements SerializableMessage.
func (m *CommandErr) Serializable() proto.Message { return m }

// Error implements error.
func (m *CommandErr) Error() string { return m.Message }

// RegisterQuery requests a range of register values.
type RegisterQuery struct {
	Offset uint32 `protobuf:"varint,1,opt,name=offset,proto3" json:"offset,omitempty"`
	Count  uint32 `protobuf:"varint,2,opt,name=count,proto3" json:"count,omitempty"`
}

// Reset implements proto.Message.
func (m *RegisterQuery) Reset() { *m = RegisterQuery{} }

// String implements proto.Message.
func (m *RegisterQuery) String() string { return proto.CompactTextString(m) }

// ProtoMessage implements proto.Message.
func (*RegisterQuery) ProtoMessage() {}

// NewMessage implements Message.
func (m *RegisterQuery) NewMessage() fw.Message { return &RegisterQuery{} }

// TypeID implements SerializableMessage.
func (m *RegisterQuery) TypeID() uint32 { return RegisterQueryTypeID }

// Serializable implements SerializableMessage.
func (m *RegisterQuery) Serializable() proto.Message { return m }

// RegisterData is the reply to RegisterQuery.
type RegisterData struct {
	Offset uint32 `protobuf:"varint,1,opt,name=offset,proto3" json:"offset,omitempty"`
	Values []byte `protobuf:"bytes,2,opt,name=values,proto3" json:"values,omitempty"`
}

// Reset implements proto.Message.
func (m *RegisterData) Reset() { *m = RegisterData{} }

// String implements proto.Message.
func (m *RegisterData) String() string { return proto.CompactTextString(m) }

// ProtoMessage implements proto.Message.
func (*RegisterData) ProtoMessage() {}

// NewMessage implements Message.
func (m *RegisterData) NewMessage() fw.Message { return &RegisterData{} }

// TypeID implements SerializableMessage.
func (m *RegisterData) TypeID() uint32 { return RegisterDataTypeID }

// Serializable implements SerializableMessage.
func (m *RegisterData) Serializable() proto.Message { return m }

// RegisterWrite sets a range of register values from the firmware
// side, bypassing the bus write masks.
type RegisterWrite struct {
	Offset uint32 `protobuf:"varint,1,opt,name=offset,proto3" json:"offset,omitempty"`
	Values []byte `protobuf:"bytes,2,opt,name=values,proto3" json:"values,omitempty"`
}

// Reset implements proto.Message.
func (m *RegisterWrite) Reset() { *m = RegisterWrite{} }

// String implements proto.Message.
func (m *RegisterWrite) String() string { return proto.CompactTextString(m) }

// ProtoMessage implements proto.Message.
func (*RegisterWrite) ProtoMessage() {}

// NewMessage implements Message.
func (m *RegisterWrite) NewMessage() fw.Message { return &RegisterWrite{} }

// TypeID implements SerializableMessage.
func (m *RegisterWrite) TypeID() uint32 { return RegisterWriteTypeID }

// Serializable implements SerializableMessage.
func (m *RegisterWrite) Serializable() proto.Message { return m }

// RegisterUpdate is the event emitted after a drained bus write
// transaction: how many register writes were drained and a snapshot
// of the whole bank.
type RegisterUpdate struct {
	Changed uint32 `protobuf:"varint,1,opt,name=changed,proto3" json:"changed,omitempty"`
	Values  []byte `protobuf:"bytes,2,opt,name=values,proto3" json:"values,omitempty"`
}

// Reset implements proto.Message.
func (m *RegisterUpdate) Reset() { *m = RegisterUpdate{} }

// String implements proto.Message.
func (m *RegisterUpdate) String() string { return proto.CompactTextString(m) }

// ProtoMessage implements proto.Message.
func (*RegisterUpdate) ProtoMessage() {}

// NewMessage implements Message.
func (m *RegisterUpdate) NewMessage() fw.Message { return &RegisterUpdate{} }

// TypeID implements SerializableMessage.
func (m *RegisterUpdate) TypeID() uint32 { return RegisterUpdateTypeID }

// Serializable implements SerializableMessage.
func (m *RegisterUpdate) Serializable() proto.Message { return m }

// Package telemetry connects a register-bank device to remote
// operators: typed messages over pluggable packet transports.
package telemetry

import (
	"github.com/wirelab/twislave/pkg/fw"
)

// PacketReader reads packets in bytes.
type PacketReader interface {
	ReadPacket() ([]byte, error)
}

// PacketWriter writes packets in bytes.
type PacketWriter interface {
	WritePacket([]byte) error
}

// PacketReadWriter reads/writes packets in bytes.
type PacketReadWriter interface {
	PacketReader
	PacketWriter
}

// Ref is a reference to a device.
type Ref struct {
	// Type is the device type.
	Type string
	// ID is the unique ID of the device.
	ID string
}

// Name retrieves the name from ref.
func (r Ref) Name() string {
	return r.Type + "/" + r.ID
}

// IsValid indicates Ref is valid.
func (r Ref) IsValid() bool {
	return r.Type != "" && r.ID != ""
}

// Meta provides metadata for a device.
type Meta struct {
	Description string            `json:"description,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
}

// DeviceInfo provides information about a device.
type DeviceInfo struct {
	Ref  Ref
	Meta Meta
}

// Command represents a received command to be processed.
type Command interface {
	Msg() fw.Message
	Done(fw.Message) error
}

// CommandMsg wraps a Command as a Message.
type CommandMsg struct {
	Command Command
}

// NewMessage implements Message.
func (m *CommandMsg) NewMessage() fw.Message { return &CommandMsg{} }

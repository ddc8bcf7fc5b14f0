// Package stream carries telemetry packets over any byte stream with
// 4-byte little-endian length prefixes.
package stream

import (
	"encoding/binary"
	"io"
)

// ReadWriter implements PacketReadWriter over an io.ReadWriter.
type ReadWriter struct {
	io.ReadWriter
}

// New creates a ReadWriter.
func New(s io.ReadWriter) *ReadWriter {
	return &ReadWriter{s}
}

// ReadPacket implements PacketReader.
func (p *ReadWriter) ReadPacket() ([]byte, error) {
	var head [4]byte
	if _, err := io.ReadFull(p, head[:]); err != nil {
		return nil, err
	}
	pkt := make([]byte, binary.LittleEndian.Uint32(head[:]))
	_, err := io.ReadFull(p, pkt)
	return pkt, err
}

// WritePacket implements PacketWriter.
func (p *ReadWriter) WritePacket(pkt []byte) error {
	var head [4]byte
	binary.LittleEndian.PutUint32(head[:], uint32(len(pkt)))
	if _, err := p.Write(head[:]); err != nil {
		return err
	}
	_, err := p.Write(pkt)
	return err
}

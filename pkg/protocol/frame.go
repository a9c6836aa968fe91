package protocol

import (
	"errors"
	"io"
)

const (
	// FrameHeaderSize is the size of the frame header in bytes.
	FrameHeaderSize = 6

	// MaxPayloadSize is the largest payload ReadFrame accepts (16MB).
	MaxPayloadSize = 16 * 1024 * 1024
)

// FrameType identifies the type of frame.
type FrameType uint8

const (
	FrameSnapshot  FrameType = 0x00 // Server → Client full HTML
	FrameMutations FrameType = 0x01 // Server → Client mutation batch
	FrameEvent     FrameType = 0x02 // Client → Server event
	FrameError     FrameType = 0x03 // Error message
)

// String returns the string representation of the frame type.
func (ft FrameType) String() string {
	switch ft {
	case FrameSnapshot:
		return "Snapshot"
	case FrameMutations:
		return "Mutations"
	case FrameEvent:
		return "Event"
	case FrameError:
		return "Error"
	default:
		return "Unknown"
	}
}

// FrameFlags are optional flags for frame processing.
type FrameFlags uint8

const (
	FlagFinal FrameFlags = 0x01 // Last frame of a step
)

// Has returns true if the flags contain the specified flag.
func (ff FrameFlags) Has(flag FrameFlags) bool {
	return ff&flag != 0
}

// Frame errors.
var (
	ErrFrameTooLarge    = errors.New("protocol: frame payload too large")
	ErrInvalidFrameType = errors.New("protocol: invalid frame type")
)

// Frame is a protocol frame with header and payload.
type Frame struct {
	Type    FrameType
	Flags   FrameFlags
	Payload []byte
}

// NewFrame creates a new frame with the given type and payload.
func NewFrame(ft FrameType, payload []byte) *Frame {
	return &Frame{Type: ft, Payload: payload}
}

// Encode encodes the frame to bytes including the header.
func (f *Frame) Encode() []byte {
	e := &Encoder{buf: make([]byte, 0, FrameHeaderSize+len(f.Payload))}
	e.WriteByte(byte(f.Type))
	e.WriteByte(byte(f.Flags))
	e.WriteUint32(uint32(len(f.Payload)))
	e.WriteBytes(f.Payload)
	return e.Bytes()
}

// DecodeFrame decodes a frame from bytes. data must hold the header and the
// full payload.
func DecodeFrame(data []byte) (*Frame, error) {
	d := NewDecoder(data)
	ft, flags, length, err := readHeader(d)
	if err != nil {
		return nil, err
	}
	if d.Remaining() < length {
		return nil, io.ErrUnexpectedEOF
	}
	payload := make([]byte, length)
	copy(payload, data[FrameHeaderSize:FrameHeaderSize+length])
	return &Frame{Type: ft, Flags: flags, Payload: payload}, nil
}

// ReadFrame reads a complete frame from r.
func ReadFrame(r io.Reader) (*Frame, error) {
	header := make([]byte, FrameHeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}
	ft, flags, length, err := readHeader(NewDecoder(header))
	if err != nil {
		return nil, err
	}
	payload := make([]byte, length)
	if length > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, err
		}
	}
	return &Frame{Type: ft, Flags: flags, Payload: payload}, nil
}

// WriteFrame writes a complete frame to w.
func WriteFrame(w io.Writer, f *Frame) error {
	if len(f.Payload) > MaxPayloadSize {
		return ErrFrameTooLarge
	}
	_, err := w.Write(f.Encode())
	return err
}

func readHeader(d *Decoder) (FrameType, FrameFlags, int, error) {
	t, err := d.ReadByte()
	if err != nil {
		return 0, 0, 0, err
	}
	if FrameType(t) > FrameError {
		return 0, 0, 0, ErrInvalidFrameType
	}
	f, err := d.ReadByte()
	if err != nil {
		return 0, 0, 0, err
	}
	n, err := d.ReadUint32()
	if err != nil {
		return 0, 0, 0, err
	}
	if n > MaxPayloadSize {
		return 0, 0, 0, ErrFrameTooLarge
	}
	return FrameType(t), FrameFlags(f), int(n), nil
}

package protocol

import (
	"encoding/binary"
	"errors"
	"io"
)

const (
	// MaxStringSize caps a single decoded string (4MB).
	MaxStringSize = 4 * 1024 * 1024

	// MaxBatchSize caps the number of mutations in a decoded batch.
	MaxBatchSize = 100_000
)

// Decoding errors.
var (
	ErrVarintOverflow = errors.New("protocol: varint overflow")
	ErrStringTooLarge = errors.New("protocol: string exceeds size limit")
	ErrBatchTooLarge  = errors.New("protocol: batch exceeds mutation limit")
)

// Encoder appends frame payload fields to a reusable buffer.
type Encoder struct {
	buf []byte
}

// NewEncoder returns an Encoder with a small preallocated buffer.
func NewEncoder() *Encoder {
	return &Encoder{buf: make([]byte, 0, 256)}
}

// Reset empties the buffer, keeping its capacity.
func (e *Encoder) Reset() { e.buf = e.buf[:0] }

// Bytes returns the encoded payload. It aliases the buffer until the next
// write or Reset.
func (e *Encoder) Bytes() []byte { return e.buf }

// Len returns the payload size so far.
func (e *Encoder) Len() int { return len(e.buf) }

func (e *Encoder) WriteByte(b byte) {
	e.buf = append(e.buf, b)
}

func (e *Encoder) WriteBytes(b []byte) {
	e.buf = append(e.buf, b...)
}

func (e *Encoder) WriteUvarint(v uint64) {
	e.buf = binary.AppendUvarint(e.buf, v)
}

// WriteString writes len(s) as a uvarint followed by the bytes of s.
func (e *Encoder) WriteString(s string) {
	e.WriteUvarint(uint64(len(s)))
	e.buf = append(e.buf, s...)
}

// WriteUint32 writes v big-endian.
func (e *Encoder) WriteUint32(v uint32) {
	e.buf = binary.BigEndian.AppendUint32(e.buf, v)
}

// Decoder reads payload fields in the order an Encoder wrote them. Every
// read fails with io.ErrUnexpectedEOF when the payload is cut short.
type Decoder struct {
	buf []byte
	pos int
}

// NewDecoder returns a Decoder over buf. buf is not copied.
func NewDecoder(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int { return len(d.buf) - d.pos }

// EOF reports whether the payload was fully read.
func (d *Decoder) EOF() bool { return d.Remaining() <= 0 }

func (d *Decoder) ReadByte() (byte, error) {
	if d.EOF() {
		return 0, io.ErrUnexpectedEOF
	}
	b := d.buf[d.pos]
	d.pos++
	return b, nil
}

func (d *Decoder) ReadUvarint() (uint64, error) {
	v, n := binary.Uvarint(d.buf[d.pos:])
	if n == 0 {
		return 0, io.ErrUnexpectedEOF
	}
	if n < 0 {
		return 0, ErrVarintOverflow
	}
	d.pos += n
	return v, nil
}

func (d *Decoder) ReadString() (string, error) {
	n, err := d.ReadUvarint()
	if err != nil {
		return "", err
	}
	if n > MaxStringSize {
		return "", ErrStringTooLarge
	}
	if n > uint64(d.Remaining()) {
		return "", io.ErrUnexpectedEOF
	}
	s := string(d.buf[d.pos : d.pos+int(n)])
	d.pos += int(n)
	return s, nil
}

func (d *Decoder) ReadUint32() (uint32, error) {
	if d.Remaining() < 4 {
		return 0, io.ErrUnexpectedEOF
	}
	v := binary.BigEndian.Uint32(d.buf[d.pos:])
	d.pos += 4
	return v, nil
}

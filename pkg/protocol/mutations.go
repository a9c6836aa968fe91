package protocol

import (
	"fmt"

	"github.com/vango-dev/reconcile/pkg/host/memhost"
)

// Batch is a sequenced list of host mutations produced by one render step.
type Batch struct {
	Seq       uint64
	Mutations []memhost.Mutation
}

// EncodeBatch encodes a batch to bytes.
func EncodeBatch(b *Batch) []byte {
	e := NewEncoder()
	EncodeBatchTo(e, b)
	return e.Bytes()
}

// EncodeBatchTo encodes a batch using the provided encoder.
func EncodeBatchTo(e *Encoder, b *Batch) {
	e.WriteUvarint(b.Seq)
	e.WriteUvarint(uint64(len(b.Mutations)))
	for i := range b.Mutations {
		encodeMutation(e, &b.Mutations[i])
	}
}

func encodeMutation(e *Encoder, m *memhost.Mutation) {
	e.WriteByte(byte(m.Op))
	e.WriteUvarint(m.Target)

	switch m.Op {
	case memhost.OpCreateElement:
		e.WriteString(m.Name)
		e.WriteString(m.Value)
	case memhost.OpCreateText, memhost.OpSetText, memhost.OpSetInnerHTML:
		e.WriteString(m.Value)
	case memhost.OpSetAttr, memhost.OpSetProp:
		e.WriteString(m.Name)
		e.WriteString(m.Value)
	case memhost.OpRemoveAttr, memhost.OpSetListener, memhost.OpRemoveListener:
		e.WriteString(m.Name)
	case memhost.OpInsert:
		e.WriteUvarint(m.Parent)
		e.WriteUvarint(m.Before)
	case memhost.OpRemove:
		e.WriteUvarint(m.Parent)
	}
}

// DecodeBatch decodes a batch from bytes.
func DecodeBatch(data []byte) (*Batch, error) {
	return DecodeBatchFrom(NewDecoder(data))
}

// DecodeBatchFrom decodes a batch using the provided decoder.
func DecodeBatchFrom(d *Decoder) (*Batch, error) {
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	count, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	if count > MaxBatchSize {
		return nil, ErrBatchTooLarge
	}

	b := &Batch{Seq: seq, Mutations: make([]memhost.Mutation, count)}
	for i := range b.Mutations {
		if err := decodeMutation(d, &b.Mutations[i]); err != nil {
			return nil, fmt.Errorf("mutation %d: %w", i, err)
		}
	}
	return b, nil
}

func decodeMutation(d *Decoder, m *memhost.Mutation) error {
	op, err := d.ReadByte()
	if err != nil {
		return err
	}
	m.Op = memhost.Op(op)
	if m.Target, err = d.ReadUvarint(); err != nil {
		return err
	}

	switch m.Op {
	case memhost.OpCreateElement, memhost.OpSetAttr, memhost.OpSetProp:
		if m.Name, err = d.ReadString(); err != nil {
			return err
		}
		m.Value, err = d.ReadString()
	case memhost.OpCreateText, memhost.OpSetText, memhost.OpSetInnerHTML:
		m.Value, err = d.ReadString()
	case memhost.OpRemoveAttr, memhost.OpSetListener, memhost.OpRemoveListener:
		m.Name, err = d.ReadString()
	case memhost.OpInsert:
		if m.Parent, err = d.ReadUvarint(); err != nil {
			return err
		}
		m.Before, err = d.ReadUvarint()
	case memhost.OpRemove:
		m.Parent, err = d.ReadUvarint()
	default:
		return fmt.Errorf("protocol: unknown mutation op 0x%02x", op)
	}
	return err
}

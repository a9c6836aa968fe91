package protocol

// Snapshot is the full markup of the container after Step steps, sent when
// a client connects. Element tags carry data-rid attributes holding their
// host node ids, which later events and mutations refer to.
type Snapshot struct {
	Seq  uint64
	Step uint64
	HTML string
}

// EncodeSnapshot encodes a snapshot to bytes.
func EncodeSnapshot(s *Snapshot) []byte {
	e := NewEncoder()
	e.WriteUvarint(s.Seq)
	e.WriteUvarint(s.Step)
	e.WriteString(s.HTML)
	return e.Bytes()
}

// DecodeSnapshot decodes a snapshot from bytes.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	d := NewDecoder(data)
	var s Snapshot
	var err error
	if s.Seq, err = d.ReadUvarint(); err != nil {
		return nil, err
	}
	if s.Step, err = d.ReadUvarint(); err != nil {
		return nil, err
	}
	if s.HTML, err = d.ReadString(); err != nil {
		return nil, err
	}
	return &s, nil
}

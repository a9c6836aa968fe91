package protocol

// Event is a client interaction aimed at one host node.
type Event struct {
	Seq    uint64
	Target uint64 // memhost node id
	Name   string // event name without the "on" prefix, e.g. "click"
	Value  string // input value for input/change events
}

// EncodeEvent encodes an event to bytes.
func EncodeEvent(ev *Event) []byte {
	e := NewEncoder()
	e.WriteUvarint(ev.Seq)
	e.WriteUvarint(ev.Target)
	e.WriteString(ev.Name)
	e.WriteString(ev.Value)
	return e.Bytes()
}

// DecodeEvent decodes an event from bytes.
func DecodeEvent(data []byte) (*Event, error) {
	d := NewDecoder(data)
	var ev Event
	var err error
	if ev.Seq, err = d.ReadUvarint(); err != nil {
		return nil, err
	}
	if ev.Target, err = d.ReadUvarint(); err != nil {
		return nil, err
	}
	if ev.Name, err = d.ReadString(); err != nil {
		return nil, err
	}
	if ev.Value, err = d.ReadString(); err != nil {
		return nil, err
	}
	return &ev, nil
}

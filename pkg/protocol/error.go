package protocol

// ErrorMessage is sent when the server rejects a frame or a step fails.
type ErrorMessage struct {
	Code    string // registered error code, e.g. "V170"
	Message string
	Fatal   bool // the connection will be closed
}

// EncodeErrorMessage encodes an error message to bytes.
func EncodeErrorMessage(em *ErrorMessage) []byte {
	e := NewEncoder()
	e.WriteString(em.Code)
	e.WriteString(em.Message)
	if em.Fatal {
		e.WriteByte(1)
	} else {
		e.WriteByte(0)
	}
	return e.Bytes()
}

// DecodeErrorMessage decodes an error message from bytes.
func DecodeErrorMessage(data []byte) (*ErrorMessage, error) {
	d := NewDecoder(data)
	var em ErrorMessage
	var err error
	if em.Code, err = d.ReadString(); err != nil {
		return nil, err
	}
	if em.Message, err = d.ReadString(); err != nil {
		return nil, err
	}
	fatal, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	em.Fatal = fatal != 0
	return &em, nil
}

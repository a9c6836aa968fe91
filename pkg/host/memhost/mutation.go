package memhost

import (
	"fmt"
	"strconv"
)

// Op is the kind of a recorded host mutation.
type Op uint8

const (
	OpCreateElement  Op = 0x01 // Element created
	OpCreateText     Op = 0x02 // Text node created
	OpSetText        Op = 0x03 // Text payload overwritten
	OpSetAttr        Op = 0x04 // Attribute set/updated
	OpRemoveAttr     Op = 0x05 // Attribute removed
	OpSetProp        Op = 0x06 // Live property written
	OpSetListener    Op = 0x07 // Listener bound
	OpRemoveListener Op = 0x08 // Listener unbound
	OpInsert         Op = 0x09 // Node inserted (or moved) under a parent
	OpRemove         Op = 0x0A // Node detached from its parent
	OpSetInnerHTML   Op = 0x0B // Children replaced by raw markup
)

// String returns the string representation of the Op.
func (op Op) String() string {
	switch op {
	case OpCreateElement:
		return "CreateElement"
	case OpCreateText:
		return "CreateText"
	case OpSetText:
		return "SetText"
	case OpSetAttr:
		return "SetAttr"
	case OpRemoveAttr:
		return "RemoveAttr"
	case OpSetProp:
		return "SetProp"
	case OpSetListener:
		return "SetListener"
	case OpRemoveListener:
		return "RemoveListener"
	case OpInsert:
		return "Insert"
	case OpRemove:
		return "Remove"
	case OpSetInnerHTML:
		return "SetInnerHTML"
	default:
		return "Unknown"
	}
}

// Mutation is a single recorded host operation.
type Mutation struct {
	Op     Op
	Target uint64 // Node the operation applies to
	Parent uint64 // Parent for Insert/Remove
	Before uint64 // Insert reference node, 0 = append
	Name   string // Tag, attribute, property or event name
	Value  string // Text, attribute value, property value or markup
}

// String formats m as one log line, e.g. `Insert #4 into #1 before #3`.
func (m Mutation) String() string {
	switch m.Op {
	case OpCreateElement:
		return fmt.Sprintf("%s #%d <%s>", m.Op, m.Target, m.Name)
	case OpCreateText, OpSetText:
		return fmt.Sprintf("%s #%d %s", m.Op, m.Target, strconv.Quote(m.Value))
	case OpSetAttr, OpSetProp:
		return fmt.Sprintf("%s #%d %s=%s", m.Op, m.Target, m.Name, strconv.Quote(m.Value))
	case OpRemoveAttr, OpSetListener, OpRemoveListener:
		return fmt.Sprintf("%s #%d %s", m.Op, m.Target, m.Name)
	case OpInsert:
		if m.Before == 0 {
			return fmt.Sprintf("%s #%d into #%d", m.Op, m.Target, m.Parent)
		}
		return fmt.Sprintf("%s #%d into #%d before #%d", m.Op, m.Target, m.Parent, m.Before)
	case OpRemove:
		return fmt.Sprintf("%s #%d from #%d", m.Op, m.Target, m.Parent)
	case OpSetInnerHTML:
		return fmt.Sprintf("%s #%d %d bytes", m.Op, m.Target, len(m.Value))
	default:
		return fmt.Sprintf("%s #%d", m.Op, m.Target)
	}
}

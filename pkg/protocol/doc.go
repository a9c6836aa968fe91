// Package protocol implements the binary wire format used to stream host
// mutations to a live preview client and events back to the server.
//
// All messages are framed with a 6-byte header:
//
//	┌─────────────┬──────────────┬───────────────────────────────┐
//	│ Frame Type  │ Flags        │ Payload Length                │
//	│ (1 byte)    │ (1 byte)     │ (4 bytes, big-endian)         │
//	└─────────────┴──────────────┴───────────────────────────────┘
//
// # Frame Types
//
//   - FrameSnapshot (0x00): sequenced full HTML of the container, sent on connect
//   - FrameMutations (0x01): a sequenced batch of recorded host mutations
//   - FrameEvent (0x02): client to server event aimed at a host node id
//   - FrameError (0x03): coded error
//
// # Encoding
//
// Integers are protobuf-style varints, strings are varint length-prefixed
// UTF-8. Each mutation is its op byte, the target node id and the fields
// that op uses:
//
//	CreateElement  name ns
//	CreateText     value
//	SetText        value
//	SetAttr        name value
//	RemoveAttr     name
//	SetProp        name value
//	SetListener    name
//	RemoveListener name
//	Insert         parent before
//	Remove         parent
//	SetInnerHTML   value
package protocol

// Package pdu defines the opaque protocol-data-unit handle that flows
// through the copper core. Per spec.md §3 it is a shared-ownership
// reference to an upper-layer frame payload, exposing only a
// length-in-bits accessor; equality of handles (by identity) is used as
// a map key by the Wire. This mirrors wns::osi::PDUPtr in
// original_source/src/Transmission.hpp, reimplemented with plain Go
// shared ownership (a refcount) rather than intrusive C++ smart
// pointers, per the design note in spec.md §9.
package pdu

import "sync/atomic"

// PDU is the capability the wire core depends on. Any upper-layer frame
// representation satisfying this can be carried by a Transmission.
type PDU interface {
	// LengthInBits returns the size of the frame, used to derive
	// transmit duration from a transmitter's data rate.
	LengthInBits() uint64
}

// Frame is a reference-counted PDU backed by an opaque byte payload.
// Identity (used as the Wire's transmissions map key) is the *Frame
// pointer itself, never its contents.
type Frame struct {
	payload []byte
	refs    int32
}

// New creates a Frame wrapping payload with an initial refcount of 1.
// payload is not copied; callers must not mutate it after handing the
// Frame to a Transmitter.
func New(payload []byte) *Frame {
	return &Frame{payload: payload, refs: 1}
}

// LengthInBits implements PDU.
func (f *Frame) LengthInBits() uint64 {
	return uint64(len(f.payload)) * 8
}

// Payload returns the raw frame bytes.
func (f *Frame) Payload() []byte {
	return f.payload
}

// Retain increments the refcount, for a new joint owner (e.g. an
// end-of-transmission event holding the frame alongside the Wire).
func (f *Frame) Retain() {
	atomic.AddInt32(&f.refs, 1)
}

// Release decrements the refcount, returning true if this was the last
// reference. The copper core never inspects the result; release
// tracking exists so embedders that pool frame buffers know when reuse
// is safe.
func (f *Frame) Release() bool {
	return atomic.AddInt32(&f.refs, -1) == 0
}

package copper

import (
	"github.com/openwns/copper/address"
	"github.com/openwns/copper/logger"
	"github.com/openwns/copper/pdu"
)

// Transmission is a PDU while it is traversing the wire. Per spec.md
// §9's design note, this models the original source's two C++ subtypes
// (BroadcastTransmission / UnicastTransmission, dispatched via a
// scheduler-carried template parameter) as a single tagged variant
// dispatched once, at end-of-transmission event firing time; there is
// no reason to carry a type parameter through the Go scheduler.
type Transmission struct {
	PDU       pdu.PDU
	Sender    DataTransmissionFeedback
	Collision bool

	unicast bool
	target  address.UnicastAddress
}

// NewBroadcastTransmission constructs a broadcast Transmission. p and
// sender must be non-nil; violating this is a programming error (§7).
func NewBroadcastTransmission(p pdu.PDU, sender DataTransmissionFeedback) *Transmission {
	logger.AssertNotNil(p, "Transmission: pdu must be non-nil")
	logger.AssertNotNil(sender, "Transmission: sender must be non-nil")
	return &Transmission{PDU: p, Sender: sender}
}

// NewUnicastTransmission constructs a unicast Transmission addressed to
// target. p and sender must be non-nil, and target must be a valid
// address; all three are programming errors if violated.
func NewUnicastTransmission(target address.UnicastAddress, p pdu.PDU, sender DataTransmissionFeedback) *Transmission {
	logger.AssertNotNil(p, "Transmission: pdu must be non-nil")
	logger.AssertNotNil(sender, "Transmission: sender must be non-nil")
	logger.AssertTrue(target.IsValid(), "Transmission: target address must be valid")
	return &Transmission{PDU: p, Sender: sender, unicast: true, target: target}
}

// IsUnicast reports whether this transmission carries a target address.
func (t *Transmission) IsUnicast() bool {
	return t.unicast
}

// Target returns the destination address. Only meaningful if
// IsUnicast() is true.
func (t *Transmission) Target() address.UnicastAddress {
	return t.target
}

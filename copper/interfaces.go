// Package copper implements the shared-wire broadcast medium core:
// Transmission, Wire, WireBroker and the capability interfaces the
// Transmitter and Receiver (package transceiver) interact with the wire
// through. It is grounded on original_source/src/Wire.{hpp,cpp} and
// original_source/src/Transmission.{hpp,cpp} (the openWNS `copper`
// module this spec distills), reworked the way the teacher reworks a
// C++ interface-stack into separate narrow Go interfaces (spec.md §9):
// each capability (DataTransmission, DataTransmissionFeedback,
// Handler, CarrierSensing, Notification) is its own interface, and the
// Wire depends only on the narrow ReceiverInterface capability.
package copper

import (
	"github.com/openwns/copper/address"
	"github.com/openwns/copper/pdu"
	"github.com/openwns/copper/simtime"
)

// DataTransmission is the upstream service a MAC layer sends frames
// through (spec.md §6).
type DataTransmission interface {
	SendDataUnicast(target address.UnicastAddress, p pdu.PDU) simtime.Time
	SendDataBroadcast(p pdu.PDU) simtime.Time
	CancelData(p pdu.PDU) bool
	IsFree() bool
}

// DataTransmissionFeedback notifies a MAC layer that a frame it handed
// to the wire has finished transmitting (collision or not).
type DataTransmissionFeedback interface {
	OnDataSent(p pdu.PDU)
}

// Handler receives delivered frames, each annotated with the BER
// sampled for it and whether it collided in flight.
type Handler interface {
	OnData(p pdu.PDU, ber float64, collision bool)
}

// CarrierSensing receives delayed carrier-status notifications.
type CarrierSensing interface {
	OnCarrierIdle()
	OnCarrierBusy()
	OnCollision()
}

// Notification lets the DLL bind a receiver's unicast address.
type Notification interface {
	SetDLLUnicastAddress(addr address.UnicastAddress)
}

// ReceiverInterface is the narrow capability the Wire depends on to
// notify a connected receiver of delivery and carrier-status events.
// Mirrors original_source/src/ReceiverInterface.hpp.
type ReceiverInterface interface {
	// OnData delivers a finished transmission. Returns true if this
	// receiver accepted it (always true for broadcast; true only for
	// the address-matched receiver for unicast).
	OnData(t *Transmission) bool
	OnCopperFree()
	OnCopperBusy()
	OnCollision()
}

// Package transceiver implements the Transmitter and Receiver contracts
// of spec.md §4.2/§4.3, and the Transceiver glue of §4.4 that co-locates
// one of each on one named Wire. It is grounded on
// original_source/src/Transmitter.{hpp,cpp}, Receiver.{hpp,cpp} and
// Transceiver.{hpp,cpp} (the openWNS `copper` module).
package transceiver

import (
	"github.com/openwns/copper/address"
	"github.com/openwns/copper/copper"
	"github.com/openwns/copper/pdu"
	"github.com/openwns/copper/scheduler"
	"github.com/openwns/copper/simtime"
)

// WireInterface is the narrow capability a Transmitter and Receiver
// depend on, mirroring original_source/src/Wire.hpp's WireInterface
// abstract base: both bind to this rather than a concrete *copper.Wire,
// so tests can substitute a fake wire without a real scheduler.
type WireInterface interface {
	SendTransmission(t *copper.Transmission, duration simtime.Time) simtime.Time
	StopTransmission(p pdu.PDU) bool
	BlockedSince() simtime.Time
	AddReceiver(r copper.ReceiverInterface, addr address.UnicastAddress)
}

// EventScheduler is the delayed-callback facility a Receiver uses to
// impose its sensing-time delay before forwarding carrier events.
type EventScheduler interface {
	Schedule(fn func(), at simtime.Time) scheduler.Handle
	Cancel(h scheduler.Handle) bool
}

// Clock is the monotonic simulated-time source a Receiver reads `now`
// from when scheduling a delayed carrier notification.
type Clock interface {
	Now() simtime.Time
}

package transceiver

import (
	"github.com/openwns/copper/address"
	"github.com/openwns/copper/copper"
	"github.com/openwns/copper/distribution"
	"github.com/openwns/copper/logger"
	"github.com/openwns/copper/simtime"
)

// Transceiver co-locates one Transmitter and one Receiver on one named
// Wire and publishes them under typed accessors, per spec.md §4.4.
// Grounded on original_source/src/Transceiver.{hpp,cpp}. The original
// registers the transmitter/receiver under configured string service
// names looked up through its host component framework's service
// registry; that registry has no equivalent in this module's scope
// (spec.md §1 treats "the node/component system" as an external
// collaborator), so callers bind to whichever capability they need
// directly instead.
type Transceiver struct {
	wire        *copper.Wire
	transmitter *Transmitter
	receiver    *Receiver
}

// Config carries the per-Transceiver settings of spec.md §6's
// configuration surface.
type Config struct {
	WireName            string
	TransmitterDataRate float64
	TransmitterSensing  simtime.Time
	ReceiverSensing     simtime.Time
	ReceiverBER         distribution.Distribution
	UnicastAddress      uint32 // 0 leaves the receiver unaddressed until SetDLLUnicastAddress is called later
}

// New procures the named wire from broker, then constructs and wires
// together one Transmitter and one Receiver bound to it. If
// cfg.UnicastAddress is non-zero, the receiver's address is bound
// immediately (equivalent to an upper layer calling
// SetDLLUnicastAddress right after construction).
func New(broker *copper.Broker, clock Clock, sched EventScheduler, cfg Config) *Transceiver {
	logger.AssertNotNil(broker, "Transceiver: broker must be non-nil")
	wire := broker.Procure(cfg.WireName)

	tx := NewTransmitter(wire, cfg.TransmitterDataRate, cfg.TransmitterSensing)
	rx := NewReceiver(wire, clock, sched, cfg.ReceiverSensing, cfg.ReceiverBER)

	tc := &Transceiver{wire: wire, transmitter: tx, receiver: rx}
	if cfg.UnicastAddress != 0 {
		rx.SetDLLUnicastAddress(address.UnicastAddress(cfg.UnicastAddress))
	}
	return tc
}

// Wire returns the underlying Wire this transceiver is attached to.
func (tc *Transceiver) Wire() *copper.Wire {
	return tc.wire
}

// Transmitter returns the concrete Transmitter, for callers that need
// more than the DataTransmission/DataTransmissionFeedback capability
// views (e.g. tests).
func (tc *Transceiver) Transmitter() *Transmitter {
	return tc.transmitter
}

// Receiver returns the concrete Receiver, for callers that need more
// than the Notification capability view (e.g. tests).
func (tc *Transceiver) Receiver() *Receiver {
	return tc.receiver
}

// DataTransmission exposes the transmitter's upstream send capability.
func (tc *Transceiver) DataTransmission() copper.DataTransmission {
	return tc.transmitter
}

// DataTransmissionFeedback exposes the transmitter's send-feedback
// capability, for an upper layer that wants to subscribe to
// OnDataSent.
func (tc *Transceiver) DataTransmissionFeedback() copper.DataTransmissionFeedback {
	return tc.transmitter
}

// Notification exposes the receiver's address-binding capability.
func (tc *Transceiver) Notification() copper.Notification {
	return tc.receiver
}

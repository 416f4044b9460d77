package transceiver

import (
	"github.com/openwns/copper/address"
	"github.com/openwns/copper/copper"
	"github.com/openwns/copper/logger"
	"github.com/openwns/copper/pdu"
	"github.com/openwns/copper/simtime"
)

// Transmitter frames outgoing PDUs and submits them to a wire, per
// spec.md §4.2. Grounded on original_source/src/Transmitter.cpp.
type Transmitter struct {
	wire        WireInterface
	dataRate    float64 // bits/sec
	sensingTime simtime.Time

	feedbackObservers []copper.DataTransmissionFeedback
}

// NewTransmitter constructs a Transmitter bound to wire with the given
// data rate (bits/sec) and carrier-sense threshold (seconds). dataRate
// must be positive: a non-positive rate is a configuration error
// (spec.md §7) that should already have been rejected by package
// config before a Transmitter is ever constructed; this assertion is
// the last line of defense against a caller bypassing that check.
func NewTransmitter(wire WireInterface, dataRate, sensingTime float64) *Transmitter {
	logger.AssertNotNil(wire, "Transmitter: wire must be non-nil")
	logger.AssertTrue(dataRate > 0, "Transmitter: dataRate must be positive")
	logger.AssertTrue(sensingTime >= 0, "Transmitter: sensingTime must be non-negative")
	return &Transmitter{wire: wire, dataRate: dataRate, sensingTime: sensingTime}
}

// AddFeedbackObserver registers obs to be notified via OnDataSent once
// per frame this transmitter successfully hands off to the wire.
func (tr *Transmitter) AddFeedbackObserver(obs copper.DataTransmissionFeedback) {
	tr.feedbackObservers = append(tr.feedbackObservers, obs)
}

func (tr *Transmitter) duration(p pdu.PDU) simtime.Time {
	return float64(p.LengthInBits()) / tr.dataRate
}

// SendDataBroadcast implements copper.DataTransmission.
func (tr *Transmitter) SendDataBroadcast(p pdu.PDU) simtime.Time {
	t := copper.NewBroadcastTransmission(p, tr)
	return tr.wire.SendTransmission(t, tr.duration(p))
}

// SendDataUnicast implements copper.DataTransmission.
func (tr *Transmitter) SendDataUnicast(target address.UnicastAddress, p pdu.PDU) simtime.Time {
	t := copper.NewUnicastTransmission(target, p, tr)
	return tr.wire.SendTransmission(t, tr.duration(p))
}

// CancelData implements copper.DataTransmission, forwarding to the
// wire's StopTransmission. Per the resolved open question in
// copper.Wire.StopTransmission, cancelling a PDU the wire never saw
// in flight (including a nil PDU) is not an error: it simply returns
// false.
func (tr *Transmitter) CancelData(p pdu.PDU) bool {
	return tr.wire.StopTransmission(p)
}

// IsFree implements copper.DataTransmission: the wire looks free to
// this transmitter if it has been blocked for less time than this
// transmitter's sensing time (including "not blocked at all", a
// negative BlockedSince). A sensingTime of 0 makes the transmitter
// omniscient; sensingTime > 0 models a hidden-start window in which a
// short-lived transmission can go undetected.
func (tr *Transmitter) IsFree() bool {
	return tr.wire.BlockedSince() < tr.sensingTime
}

// OnDataSent implements copper.DataTransmissionFeedback: the Wire calls
// this exactly once per non-cancelled transmission this transmitter
// sent, and it fans the notification out to upper-layer observers.
func (tr *Transmitter) OnDataSent(p pdu.PDU) {
	for _, obs := range tr.feedbackObservers {
		obs.OnDataSent(p)
	}
}

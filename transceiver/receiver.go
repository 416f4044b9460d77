package transceiver

import (
	"github.com/openwns/copper/address"
	"github.com/openwns/copper/copper"
	"github.com/openwns/copper/distribution"
	"github.com/openwns/copper/logger"
	"github.com/openwns/copper/simtime"
)

// Receiver filters unicast frames by its own address, samples a BER
// per received frame, and forwards carrier events to upper-layer
// observers after a configurable sensing delay, per spec.md §4.3.
// Grounded on original_source/src/Receiver.{hpp,cpp}.
type Receiver struct {
	wire        WireInterface
	clock       Clock
	sched       EventScheduler
	ber         distribution.Distribution
	sensingTime simtime.Time

	addr address.UnicastAddress

	handlers         []copper.Handler
	carrierObservers []copper.CarrierSensing
}

// NewReceiver constructs a Receiver bound to wire, with ber sampled
// once per delivered frame and carrier events delayed by sensingTime
// seconds before reaching CarrierSensing observers.
func NewReceiver(wire WireInterface, clock Clock, sched EventScheduler, sensingTime simtime.Time, ber distribution.Distribution) *Receiver {
	logger.AssertNotNil(wire, "Receiver: wire must be non-nil")
	logger.AssertNotNil(clock, "Receiver: clock must be non-nil")
	logger.AssertNotNil(sched, "Receiver: scheduler must be non-nil")
	logger.AssertNotNil(ber, "Receiver: ber distribution must be non-nil")
	logger.AssertTrue(sensingTime >= 0, "Receiver: sensingTime must be non-negative")
	return &Receiver{wire: wire, clock: clock, sched: sched, sensingTime: sensingTime, ber: ber}
}

// AddHandler registers h to receive delivered frames.
func (r *Receiver) AddHandler(h copper.Handler) {
	r.handlers = append(r.handlers, h)
}

// AddCarrierSensingObserver registers obs to receive delayed carrier
// status notifications.
func (r *Receiver) AddCarrierSensingObserver(o copper.CarrierSensing) {
	r.carrierObservers = append(r.carrierObservers, o)
}

// Address returns the receiver's bound unicast address, or
// address.Invalid if SetDLLUnicastAddress has not yet been called.
func (r *Receiver) Address() address.UnicastAddress {
	return r.addr
}

// OnData implements copper.ReceiverInterface. For a unicast
// transmission not addressed to this receiver it returns false and
// does nothing: the Wire only delivers unicast to the address-matched
// receiver, but a test harness that broadcasts to all receivers must
// still be filtered correctly here. BER is sampled independent of
// collision state, per spec.md §4.3: the two are separate physical
// phenomena the MAC layer interprets on its own.
func (r *Receiver) OnData(t *copper.Transmission) bool {
	if t.IsUnicast() && t.Target() != r.addr {
		return false
	}
	ber := r.ber.Sample()
	for _, h := range r.handlers {
		h.OnData(t.PDU, ber, t.Collision)
	}
	return true
}

func (r *Receiver) notifyCarrierAfterDelay(fire func()) {
	r.sched.Schedule(fire, r.clock.Now()+r.sensingTime)
}

// OnCopperFree implements copper.ReceiverInterface.
func (r *Receiver) OnCopperFree() {
	r.notifyCarrierAfterDelay(func() {
		for _, o := range r.carrierObservers {
			o.OnCarrierIdle()
		}
	})
}

// OnCopperBusy implements copper.ReceiverInterface.
func (r *Receiver) OnCopperBusy() {
	r.notifyCarrierAfterDelay(func() {
		for _, o := range r.carrierObservers {
			o.OnCarrierBusy()
		}
	})
}

// OnCollision implements copper.ReceiverInterface.
func (r *Receiver) OnCollision() {
	r.notifyCarrierAfterDelay(func() {
		for _, o := range r.carrierObservers {
			o.OnCollision()
		}
	})
}

// SetDLLUnicastAddress implements copper.Notification: it binds this
// receiver's address exactly once and registers it on the wire under
// that address. Setting the address a second time, or to an invalid
// value, is a programming error (spec.md §7).
func (r *Receiver) SetDLLUnicastAddress(addr address.UnicastAddress) {
	logger.AssertFalse(r.addr.IsValid(), "Receiver: address may only be set once")
	logger.AssertTrue(addr.IsValid(), "Receiver: provided address must be valid")
	r.addr = addr
	r.wire.AddReceiver(r, r.addr)
}

package copper

import (
	"github.com/openwns/copper/address"
	"github.com/openwns/copper/logger"
	"github.com/openwns/copper/pdu"
	"github.com/openwns/copper/scheduler"
	"github.com/openwns/copper/simtime"
)

// Clock is the monotonic simulated-time source the Wire reads `now`
// from. spec.md §6 treats this as an externally supplied collaborator;
// package scheduler provides the reference implementation.
type Clock interface {
	Now() simtime.Time
}

// EventScheduler is the cancellable future-callback facility the Wire
// uses to arrange end-of-transmission delivery. spec.md §6 treats this
// as an externally supplied collaborator.
type EventScheduler interface {
	Schedule(fn func(), at simtime.Time) scheduler.Handle
	Cancel(h scheduler.Handle) bool
}

// Wire is the shared-medium state machine of spec.md §4.1. It is the
// only subsystem in this module with non-trivial state, grounded on
// original_source/src/Wire.{hpp,cpp}.
type Wire struct {
	name      string
	clock     Clock
	scheduler EventScheduler

	receivers      []ReceiverInterface
	addressMapping map[address.UnicastAddress]ReceiverInterface
	transmissions  map[pdu.PDU]*Transmission
	endEvents      map[pdu.PDU]scheduler.Handle

	timeWireBlocked simtime.Time
	rrCursor        int
}

// NewWire constructs an idle Wire named name, driven by clock and
// scheduler. Embedders normally obtain a Wire through a Broker rather
// than calling this directly, so that two Transceivers naming the same
// wire share one instance.
func NewWire(name string, clock Clock, sched EventScheduler) *Wire {
	logger.AssertNotNil(clock, "Wire: clock must be non-nil")
	logger.AssertNotNil(sched, "Wire: scheduler must be non-nil")
	logger.Debugf("copper: created wire %q", name)
	return &Wire{
		name:           name,
		clock:          clock,
		scheduler:      sched,
		addressMapping: map[address.UnicastAddress]ReceiverInterface{},
		transmissions:  map[pdu.PDU]*Transmission{},
		endEvents:      map[pdu.PDU]scheduler.Handle{},
		rrCursor:       -1,
	}
}

// Name returns the wire's broker-registered identity.
func (w *Wire) Name() string {
	return w.name
}

// IsBusy reports whether any transmission is currently on the wire.
func (w *Wire) IsBusy() bool {
	return len(w.transmissions) > 0
}

// BlockedSince returns how long, in simulated seconds, the wire has
// been continuously busy, or a negative value if it is idle, per
// spec.md §4.1.
func (w *Wire) BlockedSince() simtime.Time {
	if !w.IsBusy() {
		return -1
	}
	return w.clock.Now() - w.timeWireBlocked
}

// AddReceiver registers r on the wire under addr. addr must be valid
// (non-zero); registering a second receiver under an address already in
// use is a programming error (fatal), matching
// original_source/src/Wire.cpp's addReceiver.
func (w *Wire) AddReceiver(r ReceiverInterface, addr address.UnicastAddress) {
	logger.AssertNotNil(r, "Wire: receiver must be non-nil")
	logger.AssertTrue(addr.IsValid(), "Wire: receiver address must be valid")
	if _, exists := w.addressMapping[addr]; exists {
		logger.Panicf("copper: wire %q: address %s already registered", w.name, addr)
	}
	logger.Debugf("copper: wire %q: adding receiver with address %s", w.name, addr)
	w.receivers = append(w.receivers, r)
	w.addressMapping[addr] = r
}

// SendTransmission enqueues t onto the medium for duration simulated
// seconds, implementing the effects ordering of spec.md §4.1:
//  1. if idle, mark the blocked-since time and signal onCopperBusy to
//     every receiver immediately (no delay at this layer);
//  2. compute the arrival time;
//  3. if the wire was already busy, tag every active transmission and
//     t itself as collided, and signal onCollision to every receiver;
//  4. record t and schedule its end-of-transmission event.
//
// For a unicast t, t.Target() must already be registered on this wire
// (a programming error otherwise); scheduling a PDU already in flight
// is likewise a programming error.
func (w *Wire) SendTransmission(t *Transmission, duration simtime.Time) simtime.Time {
	logger.AssertNotNil(t, "Wire: transmission must be non-nil")
	if t.IsUnicast() {
		_, ok := w.addressMapping[t.Target()]
		logger.AssertTrue(ok, "copper: wire %q: target %s not registered on this wire", w.name, t.Target())
	}
	if _, dup := w.transmissions[t.PDU]; dup {
		logger.Panicf("copper: wire %q: pdu already in flight", w.name)
	}

	now := w.clock.Now()
	wasIdle := !w.IsBusy()
	if wasIdle {
		w.timeWireBlocked = now
		for _, r := range w.receivers {
			r.OnCopperBusy()
		}
	}

	arrivalTime := now + duration

	if !wasIdle {
		for _, active := range w.transmissions {
			active.Collision = true
		}
		t.Collision = true
		logger.Debugf("copper: wire %q: collision", w.name)
		for _, r := range w.receivers {
			r.OnCollision()
		}
	}

	w.transmissions[t.PDU] = t
	w.endEvents[t.PDU] = w.scheduler.Schedule(func() { w.endTransmission(t) }, arrivalTime)
	return arrivalTime
}

// StopTransmission cancels an in-flight transmission before its
// end-of-transmission event fires. No onDataSent and no delivery occurs
// for a cancelled transmission, preserved exactly from
// original_source/src/Wire.cpp's stopTransmission.
//
// Returns false, without side effects, if pdu names a transmission not
// currently in flight: this resolves the open question of spec.md §9
// ("whether cancelling an unknown PDU should be silent or fatal") per
// its own recommendation: callers get an explicit "was in flight"
// signal instead of a programming-error abort, since Transmitter.
// CancelData can legitimately be invoked with a PDU the wire never saw
// (e.g. a late cancel racing the end-of-transmission event).
func (w *Wire) StopTransmission(p pdu.PDU) bool {
	_, ok := w.transmissions[p]
	if !ok {
		return false
	}
	if h, ok := w.endEvents[p]; ok {
		w.scheduler.Cancel(h)
	}
	delete(w.transmissions, p)
	delete(w.endEvents, p)

	if !w.IsBusy() {
		w.signalFreeAgain()
	}
	return true
}

// endTransmission fires when a transmission's end-of-transmission event
// is executed by the scheduler: it removes the transmission from wire
// state, notifies the sender exactly once, delivers to the matched
// receiver(s), and, if the wire is now idle, runs the free-again
// fan-out. Per spec.md §4.1.1, delivery order is sender-first, then
// receiver(s), then (possibly) free-again.
func (w *Wire) endTransmission(t *Transmission) {
	delete(w.transmissions, t.PDU)
	delete(w.endEvents, t.PDU)

	t.Sender.OnDataSent(t.PDU)

	if t.IsUnicast() {
		r, ok := w.addressMapping[t.Target()]
		logger.AssertTrue(ok, "copper: wire %q: target %s no longer registered at delivery time", w.name, t.Target())
		r.OnData(t)
	} else {
		for _, r := range w.receivers {
			r.OnData(t)
		}
	}

	if !w.IsBusy() {
		w.signalFreeAgain()
	}
}

// signalFreeAgain implements the round-robin "wire free again" fan-out
// of spec.md §4.1.2: it resumes rotation from just after the last
// notified receiver, notifies at most one full rotation's worth of
// receivers, and stops early if a receiver's callback re-busies the
// wire. After an early stop the next free-again event starts after the
// last receiver actually notified; after a full rotation the starting
// position moves on by one, so across successive fan-outs every
// receiver is notified first in turn.
func (w *Wire) signalFreeAgain() {
	logger.Debugf("copper: wire %q: free again", w.name)
	visited := 0
	for w.IsBusy() == false && len(w.receivers) > 0 && visited < len(w.receivers) {
		w.rrCursor = (w.rrCursor + 1) % len(w.receivers)
		r := w.receivers[w.rrCursor]
		visited++
		r.OnCopperFree()
	}
	if len(w.receivers) > 0 && visited == len(w.receivers) {
		w.rrCursor = (w.rrCursor + 1) % len(w.receivers)
	}
}

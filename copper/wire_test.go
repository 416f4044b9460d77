package copper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openwns/copper/address"
	"github.com/openwns/copper/pdu"
	"github.com/openwns/copper/scheduler"
	"github.com/openwns/copper/simtime"
)

// dataEvent is one OnData call recorded against the simulated time it
// arrived at.
type dataEvent struct {
	p         pdu.PDU
	ber       float64
	collision bool
	at        simtime.Time
}

// recordingReceiver is a bare ReceiverInterface double: it records every
// call against the clock's current reading, with no sensing delay of
// its own (that delay is transceiver.Receiver's concern, exercised
// separately) so a Wire-level test can assert exact event ordering.
type recordingReceiver struct {
	addr  address.UnicastAddress
	clock *scheduler.Scheduler

	data      []dataEvent
	busyAt    []simtime.Time
	idleAt    []simtime.Time
	collideAt []simtime.Time

	// freeLog, if set, collects addr on every OnCopperFree; receivers
	// sharing one log capture the free-again fan-out order.
	freeLog *[]address.UnicastAddress
}

func newRecordingReceiver(clock *scheduler.Scheduler) *recordingReceiver {
	return &recordingReceiver{clock: clock}
}

func (r *recordingReceiver) OnData(t *Transmission) bool {
	if t.IsUnicast() && t.Target() != r.addr {
		return false
	}
	r.data = append(r.data, dataEvent{p: t.PDU, collision: t.Collision, at: r.clock.Now()})
	return true
}

func (r *recordingReceiver) OnCopperFree() {
	r.idleAt = append(r.idleAt, r.clock.Now())
	if r.freeLog != nil {
		*r.freeLog = append(*r.freeLog, r.addr)
	}
}
func (r *recordingReceiver) OnCopperBusy() { r.busyAt = append(r.busyAt, r.clock.Now()) }
func (r *recordingReceiver) OnCollision()  { r.collideAt = append(r.collideAt, r.clock.Now()) }

// recordingSender is a bare DataTransmissionFeedback double.
type recordingSender struct {
	clock *scheduler.Scheduler
	sent  []dataEvent
}

func newRecordingSender(clock *scheduler.Scheduler) *recordingSender {
	return &recordingSender{clock: clock}
}

func (s *recordingSender) OnDataSent(p pdu.PDU) {
	s.sent = append(s.sent, dataEvent{p: p, at: s.clock.Now()})
}

// testPDU is a *pointer* PDU, matching pdu.Frame's pointer-identity
// map-key semantics: two testPDUs with equal bits must still compare
// unequal as Wire map keys, the way two distinct Frames would.
type testPDU struct{ bits uint64 }

func (p *testPDU) LengthInBits() uint64 { return p.bits }

func newTestPDU(bits uint64) *testPDU { return &testPDU{bits: bits} }

func TestS1SingleBroadcast(t *testing.T) {
	sched := scheduler.New()
	w := NewWire("w1", sched, sched)

	r1 := newRecordingReceiver(sched)
	r2 := newRecordingReceiver(sched)
	w.AddReceiver(r1, address.UnicastAddress(1))
	w.AddReceiver(r2, address.UnicastAddress(2))

	sender := newRecordingSender(sched)
	a := newTestPDU(100)
	tr := NewBroadcastTransmission(a, sender)

	end := w.SendTransmission(tr, 0.1)
	assert.Equal(t, 0.1, end)
	assert.Equal(t, []simtime.Time{0}, r1.busyAt)
	assert.Equal(t, []simtime.Time{0}, r2.busyAt)

	sched.Run(0.1)

	assert.Len(t, sender.sent, 1)
	assert.Equal(t, 0.1, sender.sent[0].at)

	assert.Len(t, r1.data, 1)
	assert.False(t, r1.data[0].collision)
	assert.Equal(t, 0.1, r1.data[0].at)
	assert.Len(t, r2.data, 1)
	assert.False(t, r2.data[0].collision)

	assert.Equal(t, []simtime.Time{0.1}, r1.idleAt)
	assert.Equal(t, []simtime.Time{0.1}, r2.idleAt)
}

func TestS2OverlappingBroadcastsCollide(t *testing.T) {
	sched := scheduler.New()
	w := NewWire("w1", sched, sched)

	r1 := newRecordingReceiver(sched)
	r2 := newRecordingReceiver(sched)
	w.AddReceiver(r1, address.UnicastAddress(1))
	w.AddReceiver(r2, address.UnicastAddress(2))

	senderA := newRecordingSender(sched)
	senderB := newRecordingSender(sched)
	a := newTestPDU(100)
	b := newTestPDU(100)
	ta := NewBroadcastTransmission(a, senderA)
	tb := NewBroadcastTransmission(b, senderB)

	w.SendTransmission(ta, 0.1)
	w.SendTransmission(tb, 0.1)

	assert.True(t, ta.Collision)
	assert.True(t, tb.Collision)
	assert.Equal(t, []simtime.Time{0}, r1.collideAt)
	assert.Equal(t, []simtime.Time{0}, r2.collideAt)

	sched.Run(0.1)

	assert.Len(t, senderA.sent, 1)
	assert.Len(t, senderB.sent, 1)
	assert.Len(t, r1.data, 2)
	assert.True(t, r1.data[0].collision)
	assert.True(t, r1.data[1].collision)
}

func TestS3BlockedSinceProgression(t *testing.T) {
	sched := scheduler.New()
	w := NewWire("w1", sched, sched)
	sender := newRecordingSender(sched)
	a := newTestPDU(100)

	w.SendTransmission(NewBroadcastTransmission(a, sender), 0.1)
	assert.Equal(t, 0.0, w.BlockedSince())

	sched.Run(0.05)
	assert.Equal(t, 0.05, w.BlockedSince())

	sched.Run(0.1)
	assert.Less(t, w.BlockedSince(), 0.0)
}

func TestS4DoubleTransmissionNonConcurrentEnds(t *testing.T) {
	sched := scheduler.New()
	w := NewWire("w1", sched, sched)
	senderA := newRecordingSender(sched)
	senderB := newRecordingSender(sched)
	a := newTestPDU(100)
	b := newTestPDU(100)

	w.SendTransmission(NewBroadcastTransmission(a, senderA), 0.2)

	sched.Run(0.05)
	w.SendTransmission(NewBroadcastTransmission(b, senderB), 0.3)
	assert.Equal(t, 0.05, w.BlockedSince())

	sched.Run(0.2)
	assert.Equal(t, 0.2, w.BlockedSince())
	assert.Len(t, senderA.sent, 1)

	sched.Run(0.25)
	assert.Equal(t, 0.25, w.BlockedSince())

	sched.Run(0.35)
	assert.Less(t, w.BlockedSince(), 0.0)
	assert.Len(t, senderB.sent, 1)
	assert.Less(t, senderA.sent[0].at, senderB.sent[0].at)
}

func TestS5CancelBeforeEnd(t *testing.T) {
	sched := scheduler.New()
	w := NewWire("w1", sched, sched)
	r1 := newRecordingReceiver(sched)
	w.AddReceiver(r1, address.UnicastAddress(1))
	sender := newRecordingSender(sched)
	a := newTestPDU(100)

	w.SendTransmission(NewBroadcastTransmission(a, sender), 0.1)

	sched.Run(0.00005)
	assert.True(t, w.StopTransmission(a))

	sched.Run(2.0)
	assert.Empty(t, sender.sent)
	assert.Empty(t, r1.data)
	assert.Less(t, w.BlockedSince(), 0.0)
}

func TestS5CancelUnknownPDUReturnsFalse(t *testing.T) {
	sched := scheduler.New()
	w := NewWire("w1", sched, sched)
	assert.False(t, w.StopTransmission(newTestPDU(8)))
}

func TestS6UnicastFiltering(t *testing.T) {
	sched := scheduler.New()
	w := NewWire("w1", sched, sched)
	r1 := newRecordingReceiver(sched)
	r2 := newRecordingReceiver(sched)
	w.AddReceiver(r1, address.UnicastAddress(1))
	w.AddReceiver(r2, address.UnicastAddress(2))
	sender := newRecordingSender(sched)
	a := newTestPDU(100)

	w.SendTransmission(NewUnicastTransmission(address.UnicastAddress(2), a, sender), 0.0001)

	assert.Equal(t, []simtime.Time{0}, r1.busyAt)
	assert.Equal(t, []simtime.Time{0}, r2.busyAt)

	sched.Run(0.0001)

	assert.Empty(t, r1.data)
	assert.Len(t, r2.data, 1)

	assert.NotEmpty(t, r1.idleAt)
	assert.NotEmpty(t, r2.idleAt)
}

func TestRoundRobinFreeAgainFairness(t *testing.T) {
	sched := scheduler.New()
	w := NewWire("w1", sched, sched)
	r1 := newRecordingReceiver(sched)
	r2 := newRecordingReceiver(sched)
	r3 := newRecordingReceiver(sched)
	w.AddReceiver(r1, address.UnicastAddress(1))
	w.AddReceiver(r2, address.UnicastAddress(2))
	w.AddReceiver(r3, address.UnicastAddress(3))

	var freeOrder []address.UnicastAddress
	for i, r := range []*recordingReceiver{r1, r2, r3} {
		r.addr = address.UnicastAddress(i + 1)
		r.freeLog = &freeOrder
	}

	for i := 0; i < 3; i++ {
		sender := newRecordingSender(sched)
		p := newTestPDU(8)
		w.SendTransmission(NewBroadcastTransmission(p, sender), 0.01)
		sched.Run(sched.Now() + 0.01)
	}

	assert.Len(t, r1.idleAt, 3)
	assert.Len(t, r2.idleAt, 3)
	assert.Len(t, r3.idleAt, 3)

	// Each fan-out starts one receiver later than the one before it.
	assert.Equal(t, []address.UnicastAddress{1, 2, 3, 2, 3, 1, 3, 1, 2}, freeOrder)
}

func TestDuplicatePDUInFlightPanics(t *testing.T) {
	sched := scheduler.New()
	w := NewWire("w1", sched, sched)
	sender := newRecordingSender(sched)
	a := newTestPDU(8)

	w.SendTransmission(NewBroadcastTransmission(a, sender), 1.0)
	assert.Panics(t, func() {
		w.SendTransmission(NewBroadcastTransmission(a, sender), 1.0)
	})
}

func TestUnregisteredUnicastTargetPanics(t *testing.T) {
	sched := scheduler.New()
	w := NewWire("w1", sched, sched)
	sender := newRecordingSender(sched)
	a := newTestPDU(8)

	assert.Panics(t, func() {
		w.SendTransmission(NewUnicastTransmission(address.UnicastAddress(9), a, sender), 1.0)
	})
}

func TestDuplicateReceiverAddressPanics(t *testing.T) {
	sched := scheduler.New()
	w := NewWire("w1", sched, sched)
	r1 := newRecordingReceiver(sched)
	r2 := newRecordingReceiver(sched)
	w.AddReceiver(r1, address.UnicastAddress(1))
	assert.Panics(t, func() {
		w.AddReceiver(r2, address.UnicastAddress(1))
	})
}

package transceiver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openwns/copper/address"
	"github.com/openwns/copper/copper"
	"github.com/openwns/copper/distribution"
	"github.com/openwns/copper/pdu"
	"github.com/openwns/copper/scheduler"
)

func TestReceiverSetDLLUnicastAddressRegistersOnWire(t *testing.T) {
	w := newFakeWire()
	sched := scheduler.New()
	rx := NewReceiver(w, sched, sched, 0, distribution.Fixed(0))

	rx.SetDLLUnicastAddress(address.UnicastAddress(5))
	assert.Equal(t, address.UnicastAddress(5), rx.Address())
	assert.True(t, w.registeredTargets[address.UnicastAddress(5)])
}

func TestReceiverSetDLLUnicastAddressTwiceIsProgrammingError(t *testing.T) {
	w := newFakeWire()
	sched := scheduler.New()
	rx := NewReceiver(w, sched, sched, 0, distribution.Fixed(0))
	rx.SetDLLUnicastAddress(address.UnicastAddress(5))

	assert.Panics(t, func() {
		rx.SetDLLUnicastAddress(address.UnicastAddress(6))
	})
}

func TestReceiverOnDataFiltersUnicastByAddress(t *testing.T) {
	w := newFakeWire()
	sched := scheduler.New()
	rx := NewReceiver(w, sched, sched, 0, distribution.Fixed(0.3))
	rx.SetDLLUnicastAddress(address.UnicastAddress(2))

	var delivered []bool
	rx.AddHandler(handlerFunc(func(p pdu.PDU, ber float64, collision bool) {
		delivered = append(delivered, collision)
	}))

	sender := dummySender{}
	p := &fakePDU{bits: 8}

	mismatched := copper.NewUnicastTransmission(address.UnicastAddress(9), p, sender)
	assert.False(t, rx.OnData(mismatched))
	assert.Empty(t, delivered)

	matched := copper.NewUnicastTransmission(address.UnicastAddress(2), p, sender)
	assert.True(t, rx.OnData(matched))
	assert.Len(t, delivered, 1)
}

func TestReceiverOnDataAcceptsAllBroadcasts(t *testing.T) {
	w := newFakeWire()
	sched := scheduler.New()
	rx := NewReceiver(w, sched, sched, 0, distribution.Fixed(0))

	sender := dummySender{}
	p := &fakePDU{bits: 8}
	bcast := copper.NewBroadcastTransmission(p, sender)
	assert.True(t, rx.OnData(bcast))
}

func TestReceiverCarrierEventsAreDelayedBySensingTime(t *testing.T) {
	w := newFakeWire()
	sched := scheduler.New()
	rx := NewReceiver(w, sched, sched, 0.05, distribution.Fixed(0))

	rec := NewCarrierSensingRecorder(sched)
	rx.AddCarrierSensingObserver(rec)

	rx.OnCopperBusy()
	assert.Empty(t, rec.Records)

	sched.Run(0.05)
	assert.Len(t, rec.Records, 1)
	assert.Equal(t, CarrierBusy, rec.Records[0].Event)
	assert.Equal(t, 0.05, rec.Records[0].At)
}

type handlerFunc func(p pdu.PDU, ber float64, collision bool)

func (h handlerFunc) OnData(p pdu.PDU, ber float64, collision bool) {
	h(p, ber, collision)
}

type dummySender struct{}

func (dummySender) OnDataSent(p pdu.PDU) {}

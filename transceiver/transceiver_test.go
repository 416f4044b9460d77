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

func TestNewBindsAddressWhenConfigured(t *testing.T) {
	sched := scheduler.New()
	broker := copper.NewBroker(sched, sched)

	tc := New(broker, sched, sched, Config{
		WireName:            "w1",
		TransmitterDataRate: 1e6,
		TransmitterSensing:  0,
		ReceiverSensing:     0,
		ReceiverBER:         distribution.Fixed(0),
		UnicastAddress:      7,
	})

	assert.Equal(t, address.UnicastAddress(7), tc.Receiver().Address())
}

func TestNewLeavesAddressUnboundWhenZero(t *testing.T) {
	sched := scheduler.New()
	broker := copper.NewBroker(sched, sched)

	tc := New(broker, sched, sched, Config{
		WireName:            "w1",
		TransmitterDataRate: 1e6,
		ReceiverBER:         distribution.Fixed(0),
	})

	assert.Equal(t, address.Invalid, tc.Receiver().Address())
}

func TestTwoTransceiversOnSameWireCanExchangeUnicast(t *testing.T) {
	sched := scheduler.New()
	broker := copper.NewBroker(sched, sched)

	a := New(broker, sched, sched, Config{
		WireName:            "lan",
		TransmitterDataRate: 1e6,
		ReceiverBER:         distribution.Fixed(0),
		UnicastAddress:      1,
	})
	b := New(broker, sched, sched, Config{
		WireName:            "lan",
		TransmitterDataRate: 1e6,
		ReceiverBER:         distribution.Fixed(0),
		UnicastAddress:      2,
	})

	assert.Same(t, a.Wire(), b.Wire())

	var got bool
	b.Receiver().AddHandler(handlerFunc(func(p pdu.PDU, ber float64, collision bool) {
		got = true
	}))

	a.DataTransmission().SendDataUnicast(address.UnicastAddress(2), &fakePDU{bits: 80})
	sched.Run(sched.Now() + 1.0)

	assert.True(t, got)
}

package copper

import "github.com/openwns/copper/logger"

// Broker is the process-wide registry mapping wire names to singleton
// Wire instances, grounded on the wns::Broker<Wire> typedef of
// original_source/src/Wire.hpp ("WireBroker"). Per spec.md §9, this is
// made explicit dependency-injected state rather than a hidden package-
// level singleton: callers construct one Broker and share it among all
// Transceivers that should be able to find each other's wires.
type Broker struct {
	wires map[string]*Wire
	clock Clock
	sched EventScheduler
}

// NewBroker constructs an empty Broker. Every Wire it procures is
// driven by the same clock and scheduler.
func NewBroker(clock Clock, sched EventScheduler) *Broker {
	logger.AssertNotNil(clock, "Broker: clock must be non-nil")
	logger.AssertNotNil(sched, "Broker: scheduler must be non-nil")
	return &Broker{
		wires: map[string]*Wire{},
		clock: clock,
		sched: sched,
	}
}

// Procure returns the Wire registered under name, creating it on first
// use. Two Transceivers configured with the same wire name and sharing
// a Broker therefore always resolve to the same Wire instance: the
// mechanism by which a simulated medium connects nodes (spec.md §4.4).
func (b *Broker) Procure(name string) *Wire {
	if w, ok := b.wires[name]; ok {
		return w
	}
	w := NewWire(name, b.clock, b.sched)
	b.wires[name] = w
	return w
}

package transceiver

import "github.com/openwns/copper/simtime"

// CarrierSensingEvent names one of the three delayed carrier-status
// notifications a Receiver forwards to its CarrierSensing observers.
type CarrierSensingEvent int

const (
	CarrierIdle CarrierSensingEvent = iota
	CarrierBusy
	CarrierCollision
)

func (e CarrierSensingEvent) String() string {
	switch e {
	case CarrierIdle:
		return "idle"
	case CarrierBusy:
		return "busy"
	case CarrierCollision:
		return "collision"
	default:
		return "unknown"
	}
}

// CarrierSensingRecord pairs one forwarded carrier event with the
// simulated time it was delivered at.
type CarrierSensingRecord struct {
	Event CarrierSensingEvent
	At    simtime.Time
}

// CarrierSensingRecorder is a copper.CarrierSensing implementation used
// only by tests: it appends every event it receives along with the
// clock's current reading, so the round-robin fairness property
// (spec.md §8 invariant 7) and the literal-timestamp scenarios S1-S7
// can be asserted against exact scheduled times rather than
// wall-clock ordering.
type CarrierSensingRecorder struct {
	clock   Clock
	Records []CarrierSensingRecord
}

// NewCarrierSensingRecorder constructs a recorder that stamps each
// observed event with clock.Now().
func NewCarrierSensingRecorder(clock Clock) *CarrierSensingRecorder {
	return &CarrierSensingRecorder{clock: clock}
}

func (c *CarrierSensingRecorder) OnCarrierIdle() {
	c.Records = append(c.Records, CarrierSensingRecord{Event: CarrierIdle, At: c.clock.Now()})
}

func (c *CarrierSensingRecorder) OnCarrierBusy() {
	c.Records = append(c.Records, CarrierSensingRecord{Event: CarrierBusy, At: c.clock.Now()})
}

func (c *CarrierSensingRecorder) OnCollision() {
	c.Records = append(c.Records, CarrierSensingRecord{Event: CarrierCollision, At: c.clock.Now()})
}

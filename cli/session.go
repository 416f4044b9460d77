package cli

import (
	"github.com/pkg/errors"

	"github.com/openwns/copper/pdu"
	"github.com/openwns/copper/scheduler"
	"github.com/openwns/copper/simtime"
	"github.com/openwns/copper/transceiver"
)

// Session binds one Transceiver to a scheduler the CLI can drive
// forward by hand, and keeps a name table of the PDUs it has sent so a
// human operator can refer to "the pdu I sent a moment ago" instead
// of a pointer. A name stays taken after its frame finishes; only
// Cancel releases it. Grounded on the teacher's simulation.Simulation, which
// a CmdRunner drives the same way, here reduced to the single
// Transceiver this module's scope calls for.
type Session struct {
	sched *scheduler.Scheduler
	tc    *transceiver.Transceiver
	pdus  map[string]*pdu.Frame
	speed float64
}

// NewSession constructs a Session around an already-configured
// Transceiver and the Scheduler driving its wire and receiver delays.
// It runs unthrottled (scheduler.MaxSimulateSpeed) until SetSpeed is
// called.
func NewSession(tc *transceiver.Transceiver, sched *scheduler.Scheduler) *Session {
	return &Session{tc: tc, sched: sched, pdus: make(map[string]*pdu.Frame), speed: scheduler.MaxSimulateSpeed}
}

// SetSpeed paces future Advance calls to roughly speed simulated
// seconds per wall-clock second, mirroring cmd/copperd's -speed flag.
func (s *Session) SetSpeed(speed float64) {
	s.speed = speed
}

// Now returns the session's current simulated time.
func (s *Session) Now() simtime.Time {
	return s.sched.Now()
}

func (s *Session) newNamedFrame(name string, bits uint64) (*pdu.Frame, error) {
	if _, exists := s.pdus[name]; exists {
		return nil, errors.Errorf("pdu name %q already in use", name)
	}
	f := pdu.New(make([]byte, (bits+7)/8))
	s.pdus[name] = f
	return f, nil
}

// SendBroadcast hands a freshly named frame of the given bit length,
// rounded up to whole bytes, to the transmitter as a broadcast.
func (s *Session) SendBroadcast(name string, bits uint64) (simtime.Time, error) {
	f, err := s.newNamedFrame(name, bits)
	if err != nil {
		return 0, err
	}
	return s.tc.Transmitter().SendDataBroadcast(f), nil
}

// SendUnicast hands a freshly named frame of the given bit length,
// rounded up to whole bytes, to the transmitter addressed to target.
func (s *Session) SendUnicast(target uint32, name string, bits uint64) (simtime.Time, error) {
	f, err := s.newNamedFrame(name, bits)
	if err != nil {
		return 0, err
	}
	addr, err := addressOf(target)
	if err != nil {
		return 0, err
	}
	return s.tc.Transmitter().SendDataUnicast(addr, f), nil
}

// Cancel cancels the named in-flight PDU, reporting whether it was
// still in flight. An unknown name is reported as an error rather than
// silently treated as "not in flight", since it most likely reflects a
// typo rather than a PDU that already finished.
func (s *Session) Cancel(name string) (bool, error) {
	f, ok := s.pdus[name]
	if !ok {
		return false, errors.Errorf("no such pdu %q", name)
	}
	delete(s.pdus, name)
	return s.tc.Transmitter().CancelData(f), nil
}

// Status reports the session's current time and whether the wire and
// transmitter currently see the medium as free.
func (s *Session) Status() string {
	return statusLine(s.Now(), s.tc.Wire().IsBusy(), s.tc.Transmitter().IsFree())
}

// Advance runs the scheduler forward by the given number of simulated
// seconds, throttled against wall-clock time at the session's speed.
func (s *Session) Advance(seconds float64) {
	s.sched.RunAtSpeed(s.Now()+seconds, s.speed)
}

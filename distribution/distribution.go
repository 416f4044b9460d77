// Package distribution samples the per-frame bit-error-rate (BER) a
// Receiver applies to a delivered frame. It is grounded on
// radiomodel/ber_model.go (IEEE 802.15.4 binomial-coefficient BER
// model) and prng/prng.go (named, independently seeded math/rand
// generators, one per concern, so a run is reproducible end to end).
//
// Unlike the rest of the domain stack, this package asserts through
// github.com/simonlingoogle/go-simplelogger directly rather than
// through this module's own logger package, matching how the
// teacher's own radiomodel files bypass its newer structured logger and
// assert with the older library the codebase never finished migrating
// off of.
package distribution

import (
	"math"
	"math/rand"

	simplelogger "github.com/simonlingoogle/go-simplelogger"
)

// Distribution samples a probability value in [0, 1] each time it is
// called, per spec.md §6's "distribution sampler yielding f64 in [0,1]".
type Distribution interface {
	Sample() float64
}

// reference: IEEE 802.15.4-2006, E.4.1.8 Bit Error Rate calculations.
var binomialCoeff = []float64{120, -560, 1820, -4368, 8008, -11440, 12870, -11440, 8008, -4368, 1820, -560, 120, -16, 1}

// Fixed always returns the same configured value. Useful for tests that
// want deterministic BER.
type Fixed float64

func (f Fixed) Sample() float64 { return float64(f) }

// Uniform samples uniformly from [lo, hi) using its own seeded
// generator, independent of any other distribution in the simulation.
type Uniform struct {
	lo, hi float64
	rng    *rand.Rand
}

// NewUniform constructs a Uniform sampler. lo must be <= hi.
func NewUniform(lo, hi float64, seed int64) *Uniform {
	simplelogger.AssertTrue(lo <= hi, "Uniform: lo must be <= hi")
	return &Uniform{lo: lo, hi: hi, rng: rand.New(rand.NewSource(seed))}
}

func (u *Uniform) Sample() float64 {
	if u.lo == u.hi {
		return u.lo
	}
	return u.lo + u.rng.Float64()*(u.hi-u.lo)
}

// BinomialBER derives a per-frame BER from a configured signal-to-
// interference ratio (in dB), using the same IEEE 802.15.4
// binomial-coefficient bit-error model the teacher's radio model uses
// to decide whether a frame survives interference, repurposed here to
// produce a continuous BER value instead of a pass/fail draw, since
// spec.md calls for "a distribution sampler yielding f64 in [0, 1]"
// rather than a boolean outcome. The configured frame length is
// checked and stored but does not enter the result: Sample depends on
// sirDb alone and returns the same value on every call.
type BinomialBER struct {
	sirDb        float64
	bitsPerFrame int
}

// NewBinomialBER constructs a BinomialBER sampler. sirDb is the assumed
// signal-to-interference ratio in dB; bitsPerFrame must be positive.
func NewBinomialBER(sirDb float64, bitsPerFrame int) *BinomialBER {
	simplelogger.AssertTrue(bitsPerFrame > 0, "BinomialBER: bitsPerFrame must be positive")
	return &BinomialBER{sirDb: sirDb, bitsPerFrame: bitsPerFrame}
}

func (b *BinomialBER) Sample() float64 {
	if b.sirDb >= 6.0 {
		// At this SIR the per-bit error rate is negligible; skip the
		// binomial sum to save cycles, matching the teacher's model.
		return 0.0
	}
	ber := 0.0
	snr := math.Pow(10, b.sirDb/10.0)
	for idx, coeff := range binomialCoeff {
		k := float64(idx + 2)
		ber += coeff * math.Exp(20.0*snr*(1.0/k-1.0))
	}
	ber = ber * 8.0 / 15.0 / 16.0
	return math.Min(math.Max(ber, 0.0), 1.0)
}

// NewFromConfig builds a Distribution from a config-file "kind" plus
// parameters, resolving the receiver.ber configuration key of spec.md
// §6. An unknown kind is a configuration error (§7) rather than a
// panic, since it can be discovered and reported at load time before
// any simulation state exists.
func NewFromConfig(kind string, params map[string]float64, seed int64) (Distribution, error) {
	switch kind {
	case "fixed":
		return Fixed(params["value"]), nil
	case "uniform":
		return NewUniform(params["lo"], params["hi"], seed), nil
	case "binomialBER":
		bits := int(params["bitsPerFrame"])
		if bits <= 0 {
			bits = 1
		}
		return NewBinomialBER(params["sirDb"], bits), nil
	default:
		return nil, &UnknownDistributionError{Kind: kind}
	}
}

// UnknownDistributionError reports a receiver.ber config key naming a
// distribution kind this package does not implement.
type UnknownDistributionError struct {
	Kind string
}

func (e *UnknownDistributionError) Error() string {
	return "distribution: unknown kind " + e.Kind
}

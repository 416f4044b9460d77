// Package address defines the unicast addressing scheme used by the
// wire core, grounded on wns::service::dll::UnicastAddress
// (original_source/src/Transmission.hpp, Receiver.cpp).
package address

import "strconv"

// UnicastAddress is an opaque link-layer address. The zero value is the
// invalid address: a Receiver's address may be set exactly once to a
// valid (non-zero) value, and a Wire rejects registering the invalid
// address or registering the same valid address twice.
type UnicastAddress uint32

// Invalid is the default, unset address.
const Invalid UnicastAddress = 0

// IsValid reports whether a is usable for registration and delivery.
func (a UnicastAddress) IsValid() bool {
	return a != Invalid
}

func (a UnicastAddress) String() string {
	if !a.IsValid() {
		return "addr(invalid)"
	}
	return "addr(" + strconv.FormatUint(uint64(a), 10) + ")"
}

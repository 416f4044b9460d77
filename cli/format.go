package cli

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/openwns/copper/address"
	"github.com/openwns/copper/simtime"
)

func addressOf(target uint32) (address.UnicastAddress, error) {
	addr := address.UnicastAddress(target)
	if !addr.IsValid() {
		return 0, errors.Errorf("%d is not a valid unicast address", target)
	}
	return addr, nil
}

func statusLine(now simtime.Time, busy, free bool) string {
	return fmt.Sprintf("t=%g wire.busy=%t transmitter.free=%t", now, busy, free)
}

package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvalidIsNotValid(t *testing.T) {
	assert.False(t, Invalid.IsValid())
	assert.Equal(t, "addr(invalid)", Invalid.String())
}

func TestNonZeroIsValid(t *testing.T) {
	a := UnicastAddress(42)
	assert.True(t, a.IsValid())
	assert.Equal(t, "addr(42)", a.String())
}

package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmitInConnectionOrder(t *testing.T) {
	var sig Signal[int]
	var got []string
	sig.Connect(func(v int) { got = append(got, "a") })
	sig.Connect(func(v int) { got = append(got, "b") })

	sig.Emit(1)

	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, 2, sig.Len())
}

func TestDisconnectIsIdempotent(t *testing.T) {
	var sig Signal[bool]
	calls := 0
	conn := sig.Connect(func(bool) { calls++ })

	conn.Disconnect()
	conn.Disconnect()
	sig.Emit(true)

	assert.Zero(t, calls)
	assert.False(t, conn.Connected())
	assert.Zero(t, sig.Len())
}

func TestSlotMayDisconnectItself(t *testing.T) {
	var sig Signal[bool]
	calls := 0
	var conn Connection
	conn = sig.Connect(func(bool) {
		calls++
		conn.Disconnect()
	})

	sig.Emit(false)
	sig.Emit(false)

	assert.Equal(t, 1, calls)
}

func TestZeroConnection(t *testing.T) {
	var conn Connection
	assert.False(t, conn.Connected())
	assert.NotPanics(t, conn.Disconnect)
}

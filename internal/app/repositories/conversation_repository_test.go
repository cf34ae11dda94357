package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderPair(t *testing.T) {
	u1, u2 := orderPair("bbb", "aaa")
	assert.Equal(t, "aaa", u1)
	assert.Equal(t, "bbb", u2)

	// Already ordered pairs pass through unchanged
	u1, u2 = orderPair("aaa", "bbb")
	assert.Equal(t, "aaa", u1)
	assert.Equal(t, "bbb", u2)

	// Both argument orders land on the same storage row
	a1, a2 := orderPair("user-9", "user-10")
	b1, b2 := orderPair("user-10", "user-9")
	assert.Equal(t, a1, b1)
	assert.Equal(t, a2, b2)
}

package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeClocker_Now(t *testing.T) {
	before := time.Now()
	got := New().Now()
	assert.False(t, got.Before(before))
}

func TestFixed_Now(t *testing.T) {
	at := time.Unix(1_700_000_000, 0)
	c := Fixed(at)

	assert.True(t, c.Now().Equal(at))
	assert.True(t, c.Now().Equal(c.Now()))
}

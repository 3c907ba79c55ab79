package board

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionsReturnSameBoard(t *testing.T) {
	s := NewSessions(seeded(), time.Minute, nil)

	a := s.Get("a")
	assert.Same(t, a, s.Get("a"))
	assert.NotSame(t, a, s.Get("b"))
	assert.Equal(t, 2, s.Len())
}

func TestSessionsExpire(t *testing.T) {
	s := NewSessions(seeded(), 20*time.Millisecond, nil)

	first := s.Get("a")
	time.Sleep(50 * time.Millisecond)

	assert.NotSame(t, first, s.Get("a"))
}

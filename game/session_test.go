package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreLabel(t *testing.T) {
	tests := []struct {
		hits int
		want string
	}{
		{0, ""},
		{1, "Hole in One"},
		{2, "Birdie"},
		{3, "Par"},
		{4, "Bogey"},
		{5, "Double Bogey"},
		{6, "Triple Bogey"},
		{7, "+4"},
		{12, "+9"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ScoreLabel(tt.hits), "hits %d", tt.hits)
	}
}

func TestSessionSwingFlight(t *testing.T) {
	s := NewSession(DefaultConfig().Session)
	s.Advance(0)

	tr, ok := s.Swing()
	require.True(t, ok)
	assert.Equal(t, Transition{From: StatusReady, To: StatusSwinging}, tr)

	_, ok = s.Swing()
	assert.False(t, ok, "swing only starts from ready")

	out := s.Tick(0.1, true, false)
	assert.Equal(t, []Transition{{From: StatusSwinging, To: StatusMoving}}, out)

	assert.Empty(t, s.Tick(2, true, false))

	out = s.Tick(3, false, false)
	assert.Equal(t, []Transition{{From: StatusMoving, To: StatusReady}}, out)
	assert.Equal(t, 0, s.HitCount(), "swings are not counted")
}

func TestSessionSwingSettlesWithoutMotion(t *testing.T) {
	s := NewSession(DefaultConfig().Session)
	s.Advance(10)
	_, ok := s.Swing()
	require.True(t, ok)

	assert.Empty(t, s.Tick(10.5, false, false))
	assert.Equal(t, StatusSwinging, s.Status())

	out := s.Tick(11, false, false)
	assert.Equal(t, []Transition{{From: StatusSwinging, To: StatusReady}}, out)
}

func TestSessionHitAndHole(t *testing.T) {
	s := NewSession(DefaultConfig().Session)

	_, ok := s.Hole()
	assert.False(t, ok, "cannot hole from ready")

	_, ok = s.RegisterHit()
	require.True(t, ok)
	assert.Equal(t, 1, s.HitCount())

	_, ok = s.RegisterHit()
	assert.False(t, ok)
	assert.Equal(t, 1, s.HitCount())

	s.Tick(1, true, false)
	require.Equal(t, StatusMoving, s.Status())

	s.Advance(2)
	tr, ok := s.Hole()
	require.True(t, ok)
	assert.Equal(t, StatusCelebration, tr.To)
	assert.Equal(t, "Hole in One", s.State().ScoreLabel)

	// the ball stopping does not end the celebration early
	assert.Empty(t, s.Tick(3, false, true))
	assert.False(t, s.CelebrationFinished())

	out := s.Tick(7, false, false)
	assert.Equal(t, []Transition{{From: StatusCelebration, To: StatusReady}}, out)
	assert.Equal(t, 0, s.HitCount())
	assert.True(t, s.CelebrationFinished())
	assert.False(t, s.CelebrationFinished())
}

func TestSessionStopNearHoleCelebrates(t *testing.T) {
	s := NewSession(DefaultConfig().Session)
	s.RegisterHit()
	s.RegisterHit()
	s.Tick(0.5, true, false)

	out := s.Tick(4, false, true)
	assert.Equal(t, []Transition{{From: StatusMoving, To: StatusCelebration}}, out)
}

func TestSessionAim(t *testing.T) {
	s := NewSession(DefaultConfig().Session)
	assert.Equal(t, ShotIntent{Power: 50, AngleDegrees: 0}, s.Aim())

	s.AdjustPower(3)
	s.AdjustAngle(-2)
	assert.Equal(t, ShotIntent{Power: 65, AngleDegrees: -10}, s.Aim())

	s.AdjustPower(100)
	s.AdjustAngle(-100)
	assert.Equal(t, ShotIntent{Power: 100, AngleDegrees: -180}, s.Aim())

	s.SetAim(ShotIntent{Power: -1, AngleDegrees: 500})
	assert.Equal(t, ShotIntent{Power: 0, AngleDegrees: 180}, s.Aim())
}

func TestSessionReset(t *testing.T) {
	s := NewSession(DefaultConfig().Session)
	s.AdjustPower(2)
	s.RegisterHit()

	tr, ok := s.Reset()
	require.True(t, ok)
	assert.Equal(t, Transition{From: StatusSwinging, To: StatusReady}, tr)
	assert.Equal(t, 0, s.HitCount())
	assert.Equal(t, 50, s.Aim().Power)

	_, ok = s.Reset()
	assert.False(t, ok)
}

package countdown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(secs int) (target, now time.Time) {
	now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	return now.Add(time.Duration(secs) * time.Second), now
}

func TestEvaluateReconstruction(t *testing.T) {
	cases := []int{0, 1, 59, 60, 3599, 3600, 86399, 86400, 90061, 123456789}

	for _, secs := range cases {
		target, now := at(secs)
		v := Evaluate(target, now)

		got := v.Days*86400 + v.Hours*3600 + v.Minutes*60 + v.Seconds
		assert.Equal(t, secs, got, "reconstruction identity for %d", secs)
		assert.GreaterOrEqual(t, v.Hours, 0)
		assert.LessOrEqual(t, v.Hours, 23)
		assert.GreaterOrEqual(t, v.Minutes, 0)
		assert.LessOrEqual(t, v.Minutes, 59)
		assert.GreaterOrEqual(t, v.Seconds, 0)
		assert.LessOrEqual(t, v.Seconds, 59)
	}
}

func TestEvaluateRegimeBoundary(t *testing.T) {
	target, now := at(1800)
	assert.Equal(t, RegimeAmbient, Evaluate(target, now).Regime)

	target, now = at(1799)
	assert.Equal(t, RegimeWarning, Evaluate(target, now).Regime)
}

func TestEvaluateNeverNegative(t *testing.T) {
	target, now := at(-30)
	v := Evaluate(target, now)
	assert.Equal(t, View{Regime: RegimeWarning}, v)
}

func TestEvaluateFloorsSubsecond(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	target := now.Add(4900 * time.Millisecond)
	v := Evaluate(target, now)
	assert.Equal(t, 4, v.Seconds)
}

func TestFieldsZeroPadded(t *testing.T) {
	v := View{Days: 3, Hours: 4, Minutes: 5, Seconds: 6}
	assert.Equal(t, [4]string{"03", "04", "05", "06"}, v.Fields())
}

func TestFieldsUnboundedDays(t *testing.T) {
	// Events centuries away widen the day field instead of capping it.
	target, now := at(40000 * 86400)
	v := Evaluate(target, now)
	assert.Equal(t, "40000", v.Fields()[0])
}

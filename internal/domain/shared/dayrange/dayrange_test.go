package dayrange

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandInclusiveAscending(t *testing.T) {
	start := NewDay(2025, time.June, 1)
	end := NewDay(2025, time.June, 3)

	days := Expand(start, end)
	require.Len(t, days, 3)
	assert.Equal(t, "2025-06-01", days[0].String())
	assert.Equal(t, "2025-06-02", days[1].String())
	assert.Equal(t, "2025-06-03", days[2].String())
}

func TestExpandSingleDay(t *testing.T) {
	d := NewDay(2025, time.June, 1)
	days := Expand(d, d)
	require.Len(t, days, 1)
	assert.True(t, days[0].Equal(d))
}

func TestExpandInvertedRangeIsEmpty(t *testing.T) {
	days := Expand(NewDay(2025, time.June, 3), NewDay(2025, time.June, 1))
	assert.Empty(t, days)
}

func TestExpandCrossesMonthBoundary(t *testing.T) {
	days := Expand(NewDay(2025, time.June, 29), NewDay(2025, time.July, 2))
	require.Len(t, days, 4)
	assert.Equal(t, "2025-06-30", days[1].String())
	assert.Equal(t, "2025-07-01", days[2].String())
}

func TestDedupKeepsFirstOccurrence(t *testing.T) {
	a := NewDay(2025, time.June, 1)
	b := NewDay(2025, time.June, 2)

	days := Dedup([]Day{a, b, a, b, a})
	require.Len(t, days, 2)
	assert.True(t, days[0].Equal(a))
	assert.True(t, days[1].Equal(b))
}

func TestDayOfNormalizesClockAndZone(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	ts := time.Date(2025, time.June, 1, 23, 30, 0, 0, loc)

	d := DayOf(ts)
	assert.Equal(t, "2025-06-01", d.String())
	assert.True(t, d.Equal(NewDay(2025, time.June, 1)))
}

func TestParseDayRejectsBadInput(t *testing.T) {
	for _, raw := range []string{"", "June 1", "2025-13-01", "01-06-2025"} {
		_, err := ParseDay(raw)
		assert.ErrorIs(t, err, ErrInvalidDay, "input %q", raw)
	}
}

func TestDayJSONRoundTrip(t *testing.T) {
	d := NewDay(2025, time.June, 1)
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-06-01"`, string(data))

	var parsed Day
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.True(t, parsed.Equal(d))
}

func TestNewStayRequiresAtLeastOneNight(t *testing.T) {
	d := NewDay(2025, time.June, 1)

	_, err := NewStay(d, d)
	assert.ErrorIs(t, err, ErrInvalidStay)

	_, err = NewStay(d.Next(), d)
	assert.ErrorIs(t, err, ErrInvalidStay)
}

func TestStayNightsExcludeCheckoutDay(t *testing.T) {
	stay, err := NewStay(NewDay(2025, time.June, 1), NewDay(2025, time.June, 4))
	require.NoError(t, err)

	nights := stay.Nights()
	require.Len(t, nights, 3)
	assert.Equal(t, "2025-06-01", nights[0].String())
	assert.Equal(t, "2025-06-03", nights[2].String())
}

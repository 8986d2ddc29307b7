package food

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sustainbite/domain"
)

func TestClassifyUrgency_Sweep(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	now := time.Date(2025, 3, 10, 23, 30, 0, 0, kolkata)

	want := map[int]string{
		-3: domain.UrgencyExpired,
		-2: domain.UrgencyExpired,
		-1: domain.UrgencyExpired,
		0:  domain.UrgencyToday,
		1:  domain.UrgencyUrgent,
		2:  domain.UrgencyUrgent,
		3:  domain.UrgencySoon,
		4:  domain.UrgencySoon,
		5:  domain.UrgencySoon,
		6:  domain.UrgencyFresh,
		7:  domain.UrgencyFresh,
		10: domain.UrgencyFresh,
	}
	for d := -3; d <= 10; d++ {
		bestBefore := time.Date(2025, 3, 10+d, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, d, DaysUntil(bestBefore, now), "d=%d", d)
		if label, ok := want[d]; ok {
			assert.Equal(t, label, ClassifyUrgency(bestBefore, now), "d=%d", d)
		}
	}
}

func TestDaysUntil_UsesCallerCalendarDay(t *testing.T) {
	bestBefore := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)

	// 20:00 UTC on the 10th is already the 11th in Kolkata.
	utcEvening := time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	assert.Equal(t, 1, DaysUntil(bestBefore, utcEvening))
	assert.Equal(t, 0, DaysUntil(bestBefore, utcEvening.In(kolkata)))
}

func TestParseBestBefore(t *testing.T) {
	got, err := ParseBestBefore("2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseBestBefore("2025-06-01T18:45:00+05:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseBestBefore("01/06/2025")
	assert.Error(t, err)
}

func TestMarkerPosition(t *testing.T) {
	lat1, lng1 := MarkerPosition("65f1c0ffee0000000000abcd")
	lat2, lng2 := MarkerPosition("65f1c0ffee0000000000abcd")
	assert.Equal(t, lat1, lat2)
	assert.Equal(t, lng1, lng2)

	assert.InDelta(t, ReferenceLatitude, lat1, markerSpread)
	assert.InDelta(t, ReferenceLongitude, lng1, markerSpread)

	lat3, lng3 := MarkerPosition("65f1c0ffee0000000000abce")
	assert.False(t, lat1 == lat3 && lng1 == lng3, "distinct ids should not share a marker position")
}

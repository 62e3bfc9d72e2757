package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var clock = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

func TestParseWhenAbsolute(t *testing.T) {
	at, err := ParseWhen("15/12/2026 14:30", clock)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.December, 15, 14, 30, 0, 0, time.UTC), at)
}

func TestParseWhenAbsoluteDefaultsToTen(t *testing.T) {
	at, err := ParseWhen("15/12/2026", clock)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.December, 15, 10, 0, 0, 0, time.UTC), at)
}

func TestParseWhenRelativeHours(t *testing.T) {
	at, err := ParseWhen("3 hours", clock)
	require.NoError(t, err)
	assert.Equal(t, clock.Add(3*time.Hour), at)

	at, err = ParseWhen("1 hour", clock)
	require.NoError(t, err)
	assert.Equal(t, clock.Add(time.Hour), at)
}

func TestParseWhenRelativeDays(t *testing.T) {
	at, err := ParseWhen("2 days", clock)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.March, 12, 10, 0, 0, 0, time.UTC), at)
}

func TestParseWhenRejects(t *testing.T) {
	cases := map[string]string{
		"empty":           "",
		"gibberish":       "whenever",
		"past date":       "01/01/2020",
		"impossible date": "31/02/2026",
		"bad time of day": "15/12/2026 25:00",
		"too many days":   "120 days",
		"too many hours":  "5000 hours",
		"zero amount":     "0 days",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseWhen(input, clock)
			assert.Error(t, err)
		})
	}
}

func TestFormatWhen(t *testing.T) {
	assert.Equal(t, "", FormatWhen(nil, clock))

	today := time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, "today 15:30", FormatWhen(&today, clock))

	tomorrow := today.AddDate(0, 0, 1)
	assert.Equal(t, "tomorrow 15:30", FormatWhen(&tomorrow, clock))

	later := time.Date(2026, time.April, 2, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "02/04/2026 10:00", FormatWhen(&later, clock))

	past := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "overdue (01/03/2026 10:00)", FormatWhen(&past, clock))
}

package helper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidHHMM(t *testing.T) {
	valid := []string{"00:00", "06:30", "18:00", "23:59"}
	for _, s := range valid {
		assert.True(t, ValidHHMM(s), s)
	}

	invalid := []string{"", "24:00", "12:60", "8:30", "08:5", "8h30", "08:30:00", "ab:cd"}
	for _, s := range invalid {
		assert.False(t, ValidHHMM(s), s)
	}
}

func TestHHMMRoundTrip(t *testing.T) {
	assert.Equal(t, 0, HHMMToMinutes("00:00"))
	assert.Equal(t, 390, HHMMToMinutes("06:30"))
	assert.Equal(t, "06:30", MinutesToHHMM(390))

	// Término depois da meia-noite dá a volta no relógio.
	assert.Equal(t, "00:15", MinutesToHHMM(HHMMToMinutes("23:45")+30))
}

func TestParseFlexibleDate(t *testing.T) {
	rfc, err := ParseFlexibleDate("2026-09-15T10:30:00-03:00")
	require.NoError(t, err)
	assert.Equal(t, 10, rfc.Hour())

	plain, err := ParseFlexibleDate(" 2026-09-15 ")
	require.NoError(t, err)
	assert.Equal(t, 2026, plain.Year())
	assert.Equal(t, time.September, plain.Month())
	assert.Equal(t, 15, plain.Day())
	assert.Zero(t, plain.Hour())

	_, err = ParseFlexibleDate("15/09/2026")
	assert.Error(t, err)
}

func TestMondayOfWeek(t *testing.T) {
	// 2026-08-24 é segunda-feira.
	monday := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		ref  time.Time
	}{
		{"a própria segunda", monday},
		{"quarta no meio da semana", monday.AddDate(0, 0, 2).Add(15 * time.Hour)},
		{"sábado", monday.AddDate(0, 0, 5)},
		{"domingo volta 6 dias", monday.AddDate(0, 0, 6).Add(23 * time.Hour)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, monday, MondayOfWeek(tc.ref))
		})
	}
}

func TestWeekdayName(t *testing.T) {
	assert.Equal(t, "Domingo", WeekdayName(0))
	assert.Equal(t, "Segunda-feira", WeekdayName(1))
	assert.Equal(t, "Sábado", WeekdayName(6))
	assert.Equal(t, "Dia 9", WeekdayName(9))
}

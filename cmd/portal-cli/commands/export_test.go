package commands

import (
	"bytes"
	"courseportal-backend/lib/scrapers/uust"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderedWeeksMarshalNumericOrder(t *testing.T) {
	monday := uust.Week{
		{
			Weekday: "Понедельник",
			Date:    "01.09.2025",
			Lessons: []uust.Lesson{{Number: 1, TimeSlot: "08:00-09:20", Subject: "Matan"}},
		},
	}
	weeks := orderedWeeks{
		{WeekNumber: 1, Days: monday},
		{WeekNumber: 2, Days: monday},
		{WeekNumber: 10, Days: monday},
	}

	encoded, err := json.Marshal(weeks)
	require.NoError(t, err)

	// week 10 must follow week 2, lexicographic key order would
	// put "10" between "1" and "2"
	var keys []string
	dec := json.NewDecoder(bytes.NewReader(encoded))
	tok, err := dec.Token()
	require.NoError(t, err)
	require.Equal(t, json.Delim('{'), tok)
	for dec.More() {
		tok, err := dec.Token()
		require.NoError(t, err)
		keys = append(keys, tok.(string))
		var skip json.RawMessage
		require.NoError(t, dec.Decode(&skip))
	}
	require.Equal(t, []string{"1", "2", "10"}, keys)
}

func TestOrderedWeeksMarshalEmpty(t *testing.T) {
	encoded, err := json.Marshal(orderedWeeks(nil))
	require.NoError(t, err)
	require.Equal(t, `{}`, string(encoded))

	encoded, err = json.Marshal(orderedWeeks{{WeekNumber: 3, Days: uust.Week{}}})
	require.NoError(t, err)
	require.Equal(t, `{"3":{}}`, string(encoded))
}

package models

import (
	"encoding/json"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonth_StringAndParse(t *testing.T) {
	m := MonthOf(time.Date(2024, time.March, 31, 23, 0, 0, 0, time.UTC))
	assert.Equal(t, "2024-03", m.String())

	parsed, err := ParseMonth("2024-03")
	require.NoError(t, err)
	assert.Equal(t, m, parsed)

	_, err = ParseMonth("March")
	assert.Error(t, err)
}

func TestMonth_ChronologicalOrder(t *testing.T) {
	months := []Month{
		{Year: 2024, Month: time.February},
		{Year: 2023, Month: time.December},
		{Year: 2024, Month: time.January},
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })
	assert.Equal(t, []string{"2023-12", "2024-01", "2024-02"},
		[]string{months[0].String(), months[1].String(), months[2].String()})
}

func TestMonth_TextMarshalling(t *testing.T) {
	data, err := json.Marshal(map[string]Month{"peak": {Year: 2024, Month: time.July}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"peak":"2024-07"}`, string(data))

	var back map[string]Month
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, Month{Year: 2024, Month: time.July}, back["peak"])
	assert.True(t, Month{}.IsZero())
}

func TestDateRange_Extend(t *testing.T) {
	var r DateRange
	assert.True(t, r.IsZero())
	assert.Equal(t, "", r.String())

	r = r.Extend(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC))
	r = r.Extend(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))
	r = r.Extend(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "2024-01-05 to 2024-03-01", r.String())
}

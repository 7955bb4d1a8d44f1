package scheduling

import (
	"testing"

	"warrantydesk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDayGroupedArray(t *testing.T) {
	payload := []byte(`[
		{"workDate":"2024-06-10","slots":[
			{"id":"s2","startTime":"10:00","endTime":"10:30","status":"FREE"},
			{"id":"s1","startTime":"09:00","endTime":"09:30","status":"BOOKED"}
		]},
		{"workDate":"2024-06-11","slots":[
			{"id":"s3","startTime":"08:00","endTime":"08:30"}
		]}
	]`)

	out, err := NormalizeSlotsResponse(payload)
	require.NoError(t, err)
	require.Len(t, out, 2)

	day := out["2024-06-10"]
	require.Len(t, day, 2)
	assert.Equal(t, "s1", day[0].SlotID, "days are sorted ascending by start time")
	assert.Equal(t, models.SlotBooked, day[0].Status)
	assert.Equal(t, "s2", day[1].SlotID)

	assert.Equal(t, models.SlotFree, out["2024-06-11"][0].Status, "missing status defaults to FREE")
}

func TestNormalizeFlatArrayWithHistoricalDateFields(t *testing.T) {
	payload := []byte(`[
		{"slotId":"s1","startTime":"09:00","workDate":"2024-06-10"},
		{"slotId":"s2","startTime":"10:00","date":"2024-06-10"},
		{"slotId":"s3","startTime":"11:00","slotDate":"2024-06-11"}
	]`)

	out, err := NormalizeSlotsResponse(payload)
	require.NoError(t, err)
	require.Len(t, out["2024-06-10"], 2)
	require.Len(t, out["2024-06-11"], 1)
	assert.Equal(t, "s1", out["2024-06-10"][0].SlotID, "slotId is accepted when id is absent")
}

func TestNormalizeDaysWrapper(t *testing.T) {
	payload := []byte(`{"days":[
		{"date":"2024-06-10","slots":[{"id":"s1","startTime":"09:00"}]}
	]}`)

	out, err := NormalizeSlotsResponse(payload)
	require.NoError(t, err)
	require.Len(t, out["2024-06-10"], 1)
	assert.Equal(t, "s1", out["2024-06-10"][0].SlotID)
}

func TestNormalizeDropsDuplicateStartTimes(t *testing.T) {
	payload := []byte(`[
		{"id":"first","startTime":"09:00","workDate":"2024-06-10"},
		{"id":"second","startTime":"09:00","workDate":"2024-06-10"}
	]`)

	out, err := NormalizeSlotsResponse(payload)
	require.NoError(t, err)
	day := out["2024-06-10"]
	require.Len(t, day, 1)
	assert.Equal(t, "first", day[0].SlotID)
}

func TestNormalizeSkipsEntriesWithoutDateOrStart(t *testing.T) {
	payload := []byte(`[
		{"id":"no-date","startTime":"09:00"},
		{"id":"no-start","workDate":"2024-06-10"},
		{"id":"ok","startTime":"10:00","workDate":"2024-06-10"}
	]`)

	out, err := NormalizeSlotsResponse(payload)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Len(t, out["2024-06-10"], 1)
	assert.Equal(t, "ok", out["2024-06-10"][0].SlotID)
}

func TestNormalizeEmptyBody(t *testing.T) {
	out, err := NormalizeSlotsResponse([]byte("  "))
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	_, err := NormalizeSlotsResponse([]byte(`"not a slots payload"`))
	assert.Error(t, err)
}

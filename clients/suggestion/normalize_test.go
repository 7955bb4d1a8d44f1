package suggestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeWrapperAndBareArrayAgree(t *testing.T) {
	entry := `{"technicianId":"tech-a","technicianName":"Ada","availableSlots":[
		{"workDate":"2024-06-10","startTime":"09:00","endTime":"09:30","slotId":"s1"}
	]}`

	wrapped, err := NormalizeSuggestionResponse([]byte(`{"suggestions":[` + entry + `]}`))
	require.NoError(t, err)
	bare, err := NormalizeSuggestionResponse([]byte(`[` + entry + `]`))
	require.NoError(t, err)

	assert.Equal(t, wrapped, bare)
	require.Len(t, wrapped, 1)
	assert.Equal(t, "tech-a", wrapped[0].TechnicianID)
}

func TestNormalizeRecomputesAvailableCount(t *testing.T) {
	payload := []byte(`[{"technicianId":"tech-a","availableCount":99,"availableSlots":[
		{"workDate":"2024-06-10","startTime":"09:00","slotId":"s1"},
		{"workDate":"2024-06-10","startTime":"10:00","slotId":"s2"}
	]}]`)

	entries, err := NormalizeSuggestionResponse(payload)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].AvailableCount, "the delivered count is not trusted")
}

func TestNormalizeKeepsEntriesOnDuplicateSlotID(t *testing.T) {
	payload := []byte(`[
		{"technicianId":"tech-a","availableSlots":[{"workDate":"2024-06-10","startTime":"09:00","slotId":"shared"}]},
		{"technicianId":"tech-b","availableSlots":[{"workDate":"2024-06-10","startTime":"10:00","slotId":"shared"}]}
	]`)

	entries, err := NormalizeSuggestionResponse(payload)
	require.NoError(t, err)
	require.Len(t, entries, 2, "the anomaly is logged, not dropped")
	assert.Equal(t, 1, entries[0].AvailableCount)
	assert.Equal(t, 1, entries[1].AvailableCount)
}

func TestNormalizeEmptyBody(t *testing.T) {
	entries, err := NormalizeSuggestionResponse([]byte(""))
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	_, err := NormalizeSuggestionResponse([]byte(`12`))
	assert.Error(t, err)
}

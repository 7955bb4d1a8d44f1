package reconcile

import (
	"testing"

	"warrantydesk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleFlipsMembership(t *testing.T) {
	set := NewSelectionSet()
	slot := models.SlotDescriptor{SlotID: "s1", Date: "2024-06-10", StartTime: "09:00", Status: models.SlotFree}

	added, err := set.Toggle(slot, "2024-06-10")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, 1, set.Len())

	added, err = set.Toggle(slot, "2024-06-10")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, 0, set.Len())
}

func TestToggleRejectsUnselectableStatuses(t *testing.T) {
	for _, status := range []models.SlotStatus{models.SlotBlocked, models.SlotHold, models.SlotCancelledByTech} {
		set := NewSelectionSet()
		slot := models.SlotDescriptor{SlotID: "s1", Date: "2024-06-10", StartTime: "09:00", Status: status}

		before := set.Len()
		_, err := set.Toggle(slot, "2024-06-10")
		assert.ErrorIs(t, err, ErrNotSelectable, "status %s", status)
		assert.Equal(t, before, set.Len(), "membership must not change for %s", status)
	}
}

func TestToggleUsesCompositeKeyWithoutSlotID(t *testing.T) {
	set := NewSelectionSet()
	slot := models.SlotDescriptor{StartTime: "09:00", Status: models.SlotFree}

	added, err := set.Toggle(slot, "2024-06-10")
	require.NoError(t, err)
	require.True(t, added)

	keys := set.Keys()
	require.Len(t, keys, 1)
	assert.Equal(t, models.KeyKindComposite, keys[0].Kind)
	assert.Equal(t, "2024-06-10", keys[0].Date)
	assert.Equal(t, "09:00", keys[0].StartTime)
	assert.Equal(t, "2024-06-10|09:00", keys[0].String())
}

func TestClearEmptiesSet(t *testing.T) {
	set := NewSelectionSet()
	_, err := set.Toggle(models.SlotDescriptor{SlotID: "s1", StartTime: "09:00", Status: models.SlotFree}, "2024-06-10")
	require.NoError(t, err)
	_, err = set.Toggle(models.SlotDescriptor{SlotID: "s2", StartTime: "10:00", Status: models.SlotFree}, "2024-06-10")
	require.NoError(t, err)

	set.Clear()
	assert.Equal(t, 0, set.Len())
}

func TestRestoreDropsDuplicateKeys(t *testing.T) {
	set := NewSelectionSet()
	set.Restore([]models.SelectionKey{
		models.IDKey("s1"),
		models.IDKey("s1"),
		models.CompositeKey("2024-06-10", "09:00"),
	})
	assert.Equal(t, 2, set.Len())
}

package reconcile

import (
	"context"
	"testing"
	"time"

	"warrantydesk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSelectionMixedSources(t *testing.T) {
	sched := newFakeSchedulingAPI()
	sched.perTech["tech-x"] = models.MonthSlots{
		"2024-06-10": {
			{SlotID: "s7", Date: "2024-06-10", StartTime: "09:00", Status: models.SlotFree},
		},
	}
	sugg := &fakeSuggestionAPI{entries: []models.SuggestionEntry{
		{
			TechnicianID: "tech-x",
			AvailableSlots: []models.SuggestionSlotRef{
				ref("2024-06-10", "09:00", "09:30", ""),
				ref("2024-06-10", "10:00", "10:30", "s9"),
			},
			AvailableCount: 2,
		},
	}}
	e := newTestEngine(sched, sugg, nil, time.Minute)
	e.SetSkills(models.Session{}, []string{"CHARGING"})
	e.SetActiveDate(models.Session{}, "2024-06-10")
	_, err := e.Suggest(context.Background(), models.Session{}, true)
	require.NoError(t, err)

	selections := []models.SlotDescriptor{
		{Date: "2024-06-10", StartTime: "09:00", Status: models.SlotFree},               // via tech calendar
		{Date: "2024-06-10", StartTime: "10:00", Status: models.SlotFree},               // via suggestion ref
		{SlotID: "direct", Date: "2024-06-10", StartTime: "11:00", Status: models.SlotFree},
		{Date: "2024-06-10", StartTime: "12:00", Status: models.SlotFree},               // nowhere
	}
	for _, slot := range selections {
		_, err := e.ToggleSlot(models.Session{}, slot)
		require.NoError(t, err)
	}
	require.NoError(t, e.ChooseTechnician(context.Background(), models.Session{}, "tech-x"))

	res := e.ResolveSelection()
	assert.Equal(t, []string{"s7", "s9", "direct"}, res.SlotIDs)
	assert.Equal(t, []string{"2024-06-10|12:00"}, res.Unresolved)
}

func TestResolveSelectionTrimsIDKeys(t *testing.T) {
	e := newTestEngine(nil, nil, nil, time.Minute)
	e.SetActiveDate(models.Session{}, "2024-06-10")
	_, err := e.ToggleSlot(models.Session{}, models.SlotDescriptor{SlotID: "  padded-id ", StartTime: "09:00", Status: models.SlotFree})
	require.NoError(t, err)

	res := e.ResolveSelection()
	assert.Equal(t, []string{"padded-id"}, res.SlotIDs)
	assert.Empty(t, res.Unresolved)
}

func TestSubmitHappyPath(t *testing.T) {
	appts := &fakeAppointmentAPI{}
	sugg := &fakeSuggestionAPI{entries: []models.SuggestionEntry{
		{
			TechnicianID:   "X",
			AvailableSlots: []models.SuggestionSlotRef{ref("2024-06-10", "09:00", "09:30", "s1")},
			AvailableCount: 1,
		},
	}}
	e := newTestEngine(nil, sugg, appts, time.Minute)
	e.SetClaim("claim-7")
	e.SetNote("check HV battery")
	e.SetSkills(models.Session{}, []string{"CHARGING"})
	e.SetActiveDate(models.Session{}, "2024-06-10")
	_, err := e.Suggest(context.Background(), models.Session{}, true)
	require.NoError(t, err)

	merged := e.MergedSlotsForDate("2024-06-10")
	require.Len(t, merged, 1)
	_, err = e.ToggleSlot(models.Session{}, merged[0])
	require.NoError(t, err)
	require.NoError(t, e.ChooseTechnician(context.Background(), models.Session{}, "X"))

	appt, err := e.Submit(context.Background(), models.Session{})
	require.NoError(t, err)
	require.NotNil(t, appt)
	assert.Equal(t, "claim-7", appt.ClaimID)

	reqs := appts.createdRequests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "claim-7", reqs[0].ClaimID)
	assert.Equal(t, "X", reqs[0].TechnicianID)
	assert.Equal(t, []string{"s1"}, reqs[0].SlotIDs)
	assert.Equal(t, "check HV battery", reqs[0].Note)
	assert.Equal(t, "CHARGING", reqs[0].RequiredSkill)
}

func TestSubmitResolvesCompositeFromLaterCalendarLoad(t *testing.T) {
	appts := &fakeAppointmentAPI{}
	sched := newFakeSchedulingAPI()
	sched.perTech["X"] = models.MonthSlots{
		"2024-06-10": {
			{SlotID: "s7", Date: "2024-06-10", StartTime: "09:00", Status: models.SlotFree},
		},
	}
	sugg := &fakeSuggestionAPI{entries: []models.SuggestionEntry{
		{
			TechnicianID:   "X",
			AvailableSlots: []models.SuggestionSlotRef{ref("2024-06-10", "09:00", "09:30", "")},
			AvailableCount: 1,
		},
	}}
	e := newTestEngine(sched, sugg, appts, time.Minute)
	e.SetClaim("claim-9")
	e.SetSkills(models.Session{}, []string{"BATTERY"})
	e.SetActiveDate(models.Session{}, "2024-06-10")
	_, err := e.Suggest(context.Background(), models.Session{}, true)
	require.NoError(t, err)

	// The suggestion ref carries no slot id, so the toggle records a
	// composite key. The id only becomes known once the technician's own
	// calendar is loaded.
	merged := e.MergedSlotsForDate("2024-06-10")
	require.Len(t, merged, 1)
	require.Empty(t, merged[0].SlotID)
	_, err = e.ToggleSlot(models.Session{}, merged[0])
	require.NoError(t, err)

	require.NoError(t, e.ChooseTechnician(context.Background(), models.Session{}, "X"))

	_, err = e.Submit(context.Background(), models.Session{})
	require.NoError(t, err)

	reqs := appts.createdRequests()
	require.Len(t, reqs, 1)
	assert.Equal(t, []string{"s7"}, reqs[0].SlotIDs)
}

func TestSubmitIsAllOrNothing(t *testing.T) {
	appts := &fakeAppointmentAPI{}
	e := newTestEngine(nil, nil, appts, time.Minute)
	e.SetClaim("claim-1")
	e.SetActiveDate(models.Session{}, "2024-06-10")

	_, err := e.ToggleSlot(models.Session{}, models.SlotDescriptor{SlotID: "ok", StartTime: "09:00", Status: models.SlotFree})
	require.NoError(t, err)
	_, err = e.ToggleSlot(models.Session{}, models.SlotDescriptor{StartTime: "10:00", Status: models.SlotFree})
	require.NoError(t, err)
	require.NoError(t, e.ChooseTechnician(context.Background(), models.Session{}, "tech-a"))

	_, err = e.Submit(context.Background(), models.Session{})
	var rErr *ResolutionError
	require.ErrorAs(t, err, &rErr)
	assert.Equal(t, []string{"2024-06-10|10:00"}, rErr.Unresolved)
	assert.Empty(t, appts.createdRequests(), "no partial appointment may be created")
}

func TestSubmitValidation(t *testing.T) {
	tests := []struct {
		name  string
		setup func(e *Engine)
	}{
		{name: "missing claim", setup: func(e *Engine) {
			e.SetActiveDate(models.Session{}, "2024-06-10")
			_, _ = e.ToggleSlot(models.Session{}, models.SlotDescriptor{SlotID: "s1", StartTime: "09:00", Status: models.SlotFree})
			_ = e.ChooseTechnician(context.Background(), models.Session{}, "tech-a")
		}},
		{name: "missing technician", setup: func(e *Engine) {
			e.SetClaim("claim-1")
			e.SetActiveDate(models.Session{}, "2024-06-10")
			_, _ = e.ToggleSlot(models.Session{}, models.SlotDescriptor{SlotID: "s1", StartTime: "09:00", Status: models.SlotFree})
		}},
		{name: "empty selection", setup: func(e *Engine) {
			e.SetClaim("claim-1")
			e.SetActiveDate(models.Session{}, "2024-06-10")
			_ = e.ChooseTechnician(context.Background(), models.Session{}, "tech-a")
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			appts := &fakeAppointmentAPI{}
			e := newTestEngine(nil, nil, appts, time.Minute)
			tc.setup(e)

			_, err := e.Submit(context.Background(), models.Session{})
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Empty(t, appts.createdRequests())
		})
	}
}

package reconcile

import (
	"context"
	"sync"

	"warrantydesk/models"
)

type fakeSchedulingAPI struct {
	mu      sync.Mutex
	calls   int
	perTech map[string]models.MonthSlots
	errs    map[string]error
	// block, when set for a technician, is closed by the test to release an
	// in-flight call.
	block map[string]chan struct{}
}

func newFakeSchedulingAPI() *fakeSchedulingAPI {
	return &fakeSchedulingAPI{
		perTech: make(map[string]models.MonthSlots),
		errs:    make(map[string]error),
		block:   make(map[string]chan struct{}),
	}
}

func (f *fakeSchedulingAPI) GetTechnicianSlots(_ context.Context, _ models.Session, technicianID, _, _ string) (models.MonthSlots, error) {
	f.mu.Lock()
	f.calls++
	gate := f.block[technicianID]
	err := f.errs[technicianID]
	months := f.perTech[technicianID]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	out := models.MonthSlots{}
	for date, day := range months {
		out[date] = append([]models.SlotDescriptor(nil), day...)
	}
	return out, nil
}

func (f *fakeSchedulingAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type suggestQuery struct {
	Skills   []string
	WorkDate string
}

type fakeSuggestionAPI struct {
	mu      sync.Mutex
	calls   []suggestQuery
	entries []models.SuggestionEntry
	err     error
	block   chan struct{}
}

func (f *fakeSuggestionAPI) SuggestTechnicians(_ context.Context, _ models.Session, skills []string, workDate string) ([]models.SuggestionEntry, error) {
	f.mu.Lock()
	f.calls = append(f.calls, suggestQuery{Skills: append([]string(nil), skills...), WorkDate: workDate})
	gate := f.block
	err := f.err
	entries := append([]models.SuggestionEntry(nil), f.entries...)
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (f *fakeSuggestionAPI) queries() []suggestQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]suggestQuery(nil), f.calls...)
}

type fakeAppointmentAPI struct {
	mu      sync.Mutex
	created []models.CreateAppointmentRequest
	err     error
}

func (f *fakeAppointmentAPI) Create(_ context.Context, _ models.Session, req models.CreateAppointmentRequest) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, req)
	return &models.Appointment{
		ID:           "appt-1",
		ClaimID:      req.ClaimID,
		TechnicianID: req.TechnicianID,
		Status:       models.AppointmentPending,
	}, nil
}

func (f *fakeAppointmentAPI) Update(_ context.Context, _ models.Session, id string, _ models.UpdateAppointmentRequest) (*models.Appointment, error) {
	return &models.Appointment{ID: id}, nil
}

func (f *fakeAppointmentAPI) UpdateStatus(_ context.Context, _ models.Session, id string, status models.AppointmentStatus) (*models.Appointment, error) {
	return &models.Appointment{ID: id, Status: status}, nil
}

func (f *fakeAppointmentAPI) GetByClaim(_ context.Context, _ models.Session, _ string) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentAPI) GetByStatus(_ context.Context, _ models.Session, _ models.AppointmentStatus) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentAPI) GetByTechnician(_ context.Context, _ models.Session, _ string) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentAPI) GetAll(_ context.Context, _ models.Session) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentAPI) createdRequests() []models.CreateAppointmentRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.CreateAppointmentRequest(nil), f.created...)
}

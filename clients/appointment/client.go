package appointment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"warrantydesk/models"
)

// HTTPAppointmentAPI implements AppointmentAPI over the appointment backend's
// REST surface.
type HTTPAppointmentAPI struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPAppointmentAPI(baseURL string, timeout time.Duration) *HTTPAppointmentAPI {
	return &HTTPAppointmentAPI{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

func (a *HTTPAppointmentAPI) Create(ctx context.Context, sess models.Session, req models.CreateAppointmentRequest) (*models.Appointment, error) {
	var created models.Appointment
	if err := a.do(ctx, sess, http.MethodPost, "/api/appointments", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (a *HTTPAppointmentAPI) Update(ctx context.Context, sess models.Session, id string, req models.UpdateAppointmentRequest) (*models.Appointment, error) {
	var updated models.Appointment
	path := "/api/appointments/" + url.PathEscape(id)
	if err := a.do(ctx, sess, http.MethodPut, path, req, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (a *HTTPAppointmentAPI) UpdateStatus(ctx context.Context, sess models.Session, id string, status models.AppointmentStatus) (*models.Appointment, error) {
	var updated models.Appointment
	path := "/api/appointments/" + url.PathEscape(id) + "/status"
	body := map[string]models.AppointmentStatus{"status": status}
	if err := a.do(ctx, sess, http.MethodPut, path, body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (a *HTTPAppointmentAPI) GetByClaim(ctx context.Context, sess models.Session, claimID string) ([]models.Appointment, error) {
	var out []models.Appointment
	path := "/api/appointments/claim/" + url.PathEscape(claimID)
	if err := a.do(ctx, sess, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *HTTPAppointmentAPI) GetByStatus(ctx context.Context, sess models.Session, status models.AppointmentStatus) ([]models.Appointment, error) {
	var out []models.Appointment
	path := "/api/appointments/status/" + url.PathEscape(string(status))
	if err := a.do(ctx, sess, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *HTTPAppointmentAPI) GetByTechnician(ctx context.Context, sess models.Session, technicianID string) ([]models.Appointment, error) {
	var out []models.Appointment
	path := "/api/appointments/technician/" + url.PathEscape(technicianID)
	if err := a.do(ctx, sess, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *HTTPAppointmentAPI) GetAll(ctx context.Context, sess models.Session) ([]models.Appointment, error) {
	var out []models.Appointment
	if err := a.do(ctx, sess, http.MethodGet, "/api/appointments", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *HTTPAppointmentAPI) do(ctx context.Context, sess models.Session, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal appointment request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build appointment request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sess.Token != "" {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	resp, err := a.Client.Do(req)
	if err != nil {
		return fmt.Errorf("appointment request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("appointment backend returned status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode appointment response: %w", err)
	}
	return nil
}

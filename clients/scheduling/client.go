package scheduling

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"warrantydesk/models"
)

// HTTPSchedulingAPI implements SchedulingAPI over the scheduling backend's
// REST surface.
type HTTPSchedulingAPI struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPSchedulingAPI(baseURL string, timeout time.Duration) *HTTPSchedulingAPI {
	return &HTTPSchedulingAPI{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

func (a *HTTPSchedulingAPI) GetTechnicianSlots(ctx context.Context, sess models.Session, technicianID, fromDate, toDate string) (models.MonthSlots, error) {
	endpoint := fmt.Sprintf("%s/api/technicians/%s/slots?from=%s&to=%s",
		a.BaseURL, url.PathEscape(technicianID), url.QueryEscape(fromDate), url.QueryEscape(toDate))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build slots request: %w", err)
	}
	if sess.Token != "" {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scheduling request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scheduling backend returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read slots response: %w", err)
	}

	slots, err := NormalizeSlotsResponse(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse slots response: %w", err)
	}
	return slots, nil
}

package suggestion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"warrantydesk/models"
)

// HTTPSuggestionAPI implements SuggestionAPI over the suggestion backend's
// REST surface.
type HTTPSuggestionAPI struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPSuggestionAPI(baseURL string, timeout time.Duration) *HTTPSuggestionAPI {
	return &HTTPSuggestionAPI{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

type suggestRequest struct {
	RequiredSkill string `json:"requiredSkill"`
	WorkDate      string `json:"workDate"`
}

func (a *HTTPSuggestionAPI) SuggestTechnicians(ctx context.Context, sess models.Session, skills []string, workDate string) ([]models.SuggestionEntry, error) {
	payload, err := json.Marshal(suggestRequest{
		RequiredSkill: strings.Join(skills, ","),
		WorkDate:      workDate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal suggestion request: %w", err)
	}

	endpoint := a.BaseURL + "/api/technicians/suggest"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build suggestion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if sess.Token != "" {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("suggestion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("suggestion backend returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read suggestion response: %w", err)
	}

	entries, err := NormalizeSuggestionResponse(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse suggestion response: %w", err)
	}
	return entries, nil
}

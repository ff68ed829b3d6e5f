package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"cep-loader/internal/models"
)

// ErrNotFound is returned when the lookup service does not know the requested
// postal code.
var ErrNotFound = errors.New("lookup: postal code not found")

// Client performs postal-code lookups against a ViaCEP-compatible service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a lookup client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch retrieves the record for the given postal code and returns it as an
// Address with CreatedAt set to the moment of construction. Fields missing
// from the response stay at their zero value.
func (c *Client) Fetch(ctx context.Context, cep string) (*models.Address, error) {
	url := fmt.Sprintf("%s/ws/%s/json/", c.baseURL, cep)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("lookup: failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lookup: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("lookup: service returned status %d: %s", resp.StatusCode, string(body))
	}

	// ViaCEP answers 200 with {"erro": true} for an unknown code.
	var payload struct {
		models.Address
		Erro bool `json:"erro"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("lookup: failed to decode response: %w", err)
	}

	if payload.Erro {
		return nil, ErrNotFound
	}

	addr := payload.Address
	addr.CreatedAt = time.Now().UTC()
	return &addr, nil
}

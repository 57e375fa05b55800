package hubspot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.hubapi.com"

// Contact is the subset of HubSpot contact properties the lead form captures.
type Contact struct {
	Email   string
	Name    string
	Company string
	Phone   string
	Message string
}

// Client talks to the HubSpot CRM v3 contacts API.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a HubSpot client. Callers should skip CRM sync
// entirely when no access token is configured.
func NewClient(token string) (*Client, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("HUBSPOT_ACCESS_TOKEN is required")
	}
	return &Client{
		token:   token,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

type contactProperties struct {
	Email     string `json:"email"`
	FirstName string `json:"firstname,omitempty"`
	LastName  string `json:"lastname,omitempty"`
	Company   string `json:"company,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Message   string `json:"message,omitempty"`
}

type contactRequest struct {
	Properties contactProperties `json:"properties"`
}

// UpsertContact updates the contact keyed by email, creating it when it
// does not exist yet.
func (c *Client) UpsertContact(ctx context.Context, contact Contact) error {
	props := contactProperties{
		Email:   contact.Email,
		Company: contact.Company,
		Phone:   contact.Phone,
		Message: contact.Message,
	}
	props.FirstName, props.LastName = splitName(contact.Name)

	payload, err := json.Marshal(contactRequest{Properties: props})
	if err != nil {
		return fmt.Errorf("hubspot marshal: %w", err)
	}

	patchURL := fmt.Sprintf("%s/crm/v3/objects/contacts/%s?idProperty=email", c.baseURL, url.PathEscape(contact.Email))
	status, body, err := c.send(ctx, http.MethodPatch, patchURL, payload)
	if err != nil {
		return err
	}
	if status == http.StatusNotFound {
		status, body, err = c.send(ctx, http.MethodPost, c.baseURL+"/crm/v3/objects/contacts", payload)
		if err != nil {
			return err
		}
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("hubspot status %d: %s", status, truncate(body, 200))
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, rawURL string, payload []byte) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, bytes.NewReader(payload))
	if err != nil {
		return 0, "", fmt.Errorf("hubspot request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("hubspot call: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, "", fmt.Errorf("hubspot read body: %w", err)
	}
	return resp.StatusCode, string(body), nil
}

func splitName(full string) (first, last string) {
	full = strings.TrimSpace(full)
	if full == "" {
		return "", ""
	}
	parts := strings.Fields(full)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/mrshanahan/student-notes/pkg/notes"
)

const NotesPath = "/api/notes"

// APIError is returned for any non-2xx response. Message holds the server's
// "message" field when the body carried one.
type APIError struct {
	StatusCode int
	Message    string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("invalid status code: %d", e.StatusCode)
	}
	if e.Detail == "" {
		return fmt.Sprintf("%s (status: %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s (status: %d): %s", e.Message, e.StatusCode, e.Detail)
}

type Client struct {
	URL        string
	HTTPClient *http.Client
}

func NewClient(url string) *Client {
	return &Client{URL: url, HTTPClient: http.DefaultClient}
}

func (c *Client) ListNotes(ctx context.Context) ([]*notes.Note, error) {
	resp, err := c.invoke(ctx, http.MethodGet, NotesPath, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBytes, err := validateResponse(resp)
	if err != nil {
		return nil, err
	}

	var found []*notes.Note
	if err := json.Unmarshal(respBytes, &found); err != nil {
		return nil, fmt.Errorf("error JSON-decoding response body: %w", err)
	}
	return found, nil
}

func (c *Client) CreateNote(ctx context.Context, title, description string) (*notes.Note, error) {
	payload, err := json.Marshal(notes.NoteRequest{Title: title, Description: description})
	if err != nil {
		return nil, fmt.Errorf("error JSON-encoding note: %w", err)
	}

	resp, err := c.invoke(ctx, http.MethodPost, NotesPath, payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBytes, err := validateResponse(resp)
	if err != nil {
		return nil, err
	}

	var note *notes.Note
	if err := json.Unmarshal(respBytes, &note); err != nil {
		return nil, fmt.Errorf("error JSON-decoding response body: %w", err)
	}
	return note, nil
}

// Private functions

func (c *Client) invoke(ctx context.Context, method string, path string, payload []byte) (*http.Response, error) {
	requestUrl, err := url.JoinPath(c.URL, path)
	if err != nil {
		return nil, fmt.Errorf("error building URL path: %w", err)
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, requestUrl, body)
	if err != nil {
		return nil, fmt.Errorf("error building API request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error invoking API: %w", err)
	}
	return resp, nil
}

func validateResponse(resp *http.Response) ([]byte, error) {
	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var body notes.ErrorResponse
		if err := json.Unmarshal(respBytes, &body); err == nil {
			apiErr.Message = body.Message
			apiErr.Detail = body.Error
		} else {
			apiErr.Detail = strings.TrimSpace(string(respBytes))
		}
		return nil, apiErr
	}

	return respBytes, nil
}

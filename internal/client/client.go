// Package client talks to the chat backend's HTTP API: room entry,
// history, image upload, and the two delete operations. The live message
// feed is not here; see internal/live.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/adamavenir/murmur/internal/types"
)

// APIError represents a non-2xx response from the backend.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" && e.Message != "" {
		return fmt.Sprintf("chat api error: %s (%d): %s", e.Code, e.Status, e.Message)
	}
	if e.Code != "" {
		return fmt.Sprintf("chat api error: %s (%d)", e.Code, e.Status)
	}
	if e.Message != "" {
		return fmt.Sprintf("chat api error (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("chat api error (%d)", e.Status)
}

type apiErrorPayload struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Client is the backend HTTP API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New constructs a client for the given backend base URL.
func New(baseURL string) (*Client, error) {
	normalized, err := NormalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: normalized,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}, nil
}

// NormalizeBaseURL normalizes a backend base URL and ensures it has a scheme.
func NormalizeBaseURL(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", fmt.Errorf("server url cannot be empty")
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return "", fmt.Errorf("invalid server url: %w", err)
	}
	if parsed.Scheme == "" {
		return "", fmt.Errorf("server url must include scheme (http:// or https://)")
	}
	return strings.TrimRight(value, "/"), nil
}

// BaseURL returns the normalized backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchHistory returns the room's stored messages, oldest first. A failure
// here is non-fatal to the caller: the session starts empty and fills from
// the live feed alone.
func (c *Client) FetchHistory(ctx context.Context, roomID string) ([]types.Message, error) {
	var messages []types.Message
	path := fmt.Sprintf("/api/v1/rooms/%s/messages", url.PathEscape(roomID))
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// CreateRoom creates a new room with the given id.
func (c *Client) CreateRoom(ctx context.Context, roomID string) (types.Room, error) {
	var room types.Room
	body := map[string]string{"roomId": roomID}
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/rooms", nil, body, &room); err != nil {
		return types.Room{}, err
	}
	return room, nil
}

// JoinRoom verifies the room exists before the session starts.
func (c *Client) JoinRoom(ctx context.Context, roomID string) (types.Room, error) {
	var room types.Room
	path := "/api/v1/rooms/" + url.PathEscape(roomID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &room); err != nil {
		return types.Room{}, err
	}
	return room, nil
}

// DeleteForMe asks the backend to hide the message for the acting user.
// The local store is not touched; the resulting state arrives over the
// live feed. Repeating the call is idempotent on the backend.
func (c *Client) DeleteForMe(ctx context.Context, roomID, messageID, user string) error {
	path := fmt.Sprintf("/api/v1/rooms/%s/messages/%s/deleteForMe",
		url.PathEscape(roomID), url.PathEscape(messageID))
	query := url.Values{}
	query.Set("user", user)
	return c.doJSON(ctx, http.MethodDelete, path, query, nil, nil)
}

// DeleteForEveryone asks the backend to permanently suppress the message
// for all users.
func (c *Client) DeleteForEveryone(ctx context.Context, roomID, messageID string) error {
	path := fmt.Sprintf("/api/v1/rooms/%s/messages/%s/deleteForEveryone",
		url.PathEscape(roomID), url.PathEscape(messageID))
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, nil)
}

// UploadImage posts image bytes out of band. The stored message, image URL
// included, arrives over the live feed rather than in this response.
func (c *Client) UploadImage(ctx context.Context, roomID, filename string, data []byte, sender string, replyTo *string) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return err
	}
	if _, err := part.Write(data); err != nil {
		return err
	}
	if err := writer.WriteField("sender", sender); err != nil {
		return err
	}
	reply := ""
	if replyTo != nil {
		reply = *replyTo
	}
	if err := writer.WriteField("replyToMessageId", reply); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	endpoint, err := c.buildURL(fmt.Sprintf("/api/v1/rooms/%s/images", url.PathEscape(roomID)), nil)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, reqBody any, respBody any) error {
	endpoint, err := c.buildURL(path, query)
	if err != nil {
		return err
	}

	var body io.Reader
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respData, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload apiErrorPayload
		if err := json.Unmarshal(respData, &payload); err == nil {
			apiErr.Code = payload.Error
			apiErr.Message = payload.Message
		} else {
			apiErr.Message = strings.TrimSpace(string(respData))
		}
		return apiErr
	}

	if respBody == nil || len(respData) == 0 {
		return nil
	}
	return json.Unmarshal(respData, respBody)
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	apiErr := &APIError{Status: resp.StatusCode}
	data, err := io.ReadAll(resp.Body)
	if err == nil {
		var payload apiErrorPayload
		if err := json.Unmarshal(data, &payload); err == nil {
			apiErr.Code = payload.Error
			apiErr.Message = payload.Message
		} else {
			apiErr.Message = strings.TrimSpace(string(data))
		}
	}
	return apiErr
}

func (c *Client) buildURL(path string, query url.Values) (string, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(path)
	if err != nil {
		return "", err
	}
	endpoint := base.ResolveReference(ref)
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}
	return endpoint.String(), nil
}

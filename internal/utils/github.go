package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrFileNotFound marks a 404 on the contents endpoint. Push treats
// it as "first write"; pull treats it as a missing backup.
var ErrFileNotFound = errors.New("file not found")

// GitHubClient talks to the GitHub contents API for a single JSON
// document. BaseURL is overridable so tests can point it at a fake.
type GitHubClient struct {
	Token   string
	BaseURL string
	client  *http.Client
}

func NewGitHubClient(token, baseURL string) *GitHubClient {
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}
	return &GitHubClient{
		Token:   token,
		BaseURL: baseURL,
		client:  &http.Client{},
	}
}

// ContentsResponse is the subset of the contents API we consume:
// base64 file content plus the sha version token used for
// compare-and-swap on write.
type ContentsResponse struct {
	Content string `json:"content"`
	SHA     string `json:"sha"`
}

type putContentsRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
}

func (g *GitHubClient) contentsURL(ownerRepo, path string) string {
	return fmt.Sprintf("%s/repos/%s/contents/%s", g.BaseURL, ownerRepo, path)
}

func (g *GitHubClient) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "token "+g.Token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
}

// GetFile fetches the document and its current sha. 404 maps to
// ErrFileNotFound, any other non-2xx to the remote-supplied message.
func (g *GitHubClient) GetFile(ownerRepo, path string) (*ContentsResponse, error) {
	req, err := http.NewRequest(http.MethodGet, g.contentsURL(ownerRepo, path), nil)
	if err != nil {
		return nil, err
	}
	g.setHeaders(req)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github get: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrFileNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, remoteError(resp.StatusCode, body)
	}

	var out ContentsResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("parse github response: %w", err)
	}
	return &out, nil
}

// PutFile writes the document. sha carries the previously read
// version token; empty sha means first write. A sha mismatch comes
// back as a 409 with the remote message intact.
func (g *GitHubClient) PutFile(ownerRepo, path, message, contentB64, sha string) error {
	payload := putContentsRequest{Message: message, Content: contentB64, SHA: sha}
	b, _ := json.Marshal(payload)

	req, err := http.NewRequest(http.MethodPut, g.contentsURL(ownerRepo, path), bytes.NewReader(b))
	if err != nil {
		return err
	}
	g.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("github put: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return remoteError(resp.StatusCode, body)
	}
	return nil
}

func remoteError(status int, body []byte) error {
	var apiErr apiError
	_ = json.Unmarshal(body, &apiErr)
	if apiErr.Message != "" {
		return fmt.Errorf("github status %d: %s", status, apiErr.Message)
	}
	return fmt.Errorf("github status %d", status)
}

package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"
)

// FileUpload is one file destined for a repository.
type FileUpload struct {
	Name    string
	Content []byte
}

// UploadSummary aggregates the per-file outcomes of an upload batch.
type UploadSummary struct {
	Created        int
	Updated        int
	InvalidPath    int
	BadCredentials int
	Failed         int
}

// Messages renders the summary the way the upload dialog reported it: one
// combined line for successes, one line per failure class.
func (s UploadSummary) Messages() []string {
	var messages []string
	if s.Created > 0 || s.Updated > 0 {
		combined := ""
		if s.Updated > 0 {
			combined += fmt.Sprintf("%d file(s) updated. ", s.Updated)
		}
		if s.Created > 0 {
			combined += fmt.Sprintf("%d file(s) created.", s.Created)
		}
		messages = append(messages, trimTrailingSpace(combined))
	}
	if s.InvalidPath > 0 {
		messages = append(messages, "Invalid directory name.")
	}
	if s.Failed > 0 {
		messages = append(messages, "Repository name not found.")
	}
	if s.BadCredentials > 0 {
		messages = append(messages, "Session token has expired or is invalid, please log in again.")
	}
	return messages
}

func trimTrailingSpace(s string) string {
	for len(s) > 0 && s[len(s)-1] == ' ' {
		s = s[:len(s)-1]
	}
	return s
}

type contentsPayload struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha,omitempty"`
}

// UploadFiles creates or updates each file under the repository's contents
// endpoint. An existing file is looked up first so its blob SHA can be sent
// with the update. A transport failure stops the batch; the summary covers
// the files processed up to that point.
func (c *Client) UploadFiles(ctx context.Context, token, owner, repo, dir, commitTitle string, files []FileUpload) (UploadSummary, error) {
	var summary UploadSummary
	for _, file := range files {
		path := file.Name
		if dir != "" {
			path = dir + "/" + file.Name
		}

		sha, err := c.fileSHA(ctx, token, owner, repo, path)
		if err != nil {
			return summary, fmt.Errorf("[Client UploadFiles] %w", err)
		}

		status, err := c.putContents(ctx, token, owner, repo, path, contentsPayload{
			Message: commitTitle,
			Content: base64.StdEncoding.EncodeToString(file.Content),
			SHA:     sha,
		})
		if err != nil {
			return summary, fmt.Errorf("[Client UploadFiles] %w", err)
		}

		switch status {
		case http.StatusOK:
			summary.Updated++
		case http.StatusCreated:
			summary.Created++
		case http.StatusUnprocessableEntity:
			summary.InvalidPath++
		case http.StatusUnauthorized:
			summary.BadCredentials++
		default:
			summary.Failed++
		}
	}
	return summary, nil
}

// fileSHA returns the blob SHA when the file already exists, empty otherwise.
func (c *Client) fileSHA(ctx context.Context, token, owner, repo, path string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.contentsURL(owner, repo, path), nil)
	if err != nil {
		return "", fmt.Errorf("build contents request: %w", err)
	}
	c.setAPIHeaders(req, token)

	resp, err := c.do(req)
	if err != nil {
		return "", err
	}
	if resp.Status != http.StatusOK {
		return "", nil
	}
	return gjson.GetBytes(resp.Body, "sha").String(), nil
}

func (c *Client) putContents(ctx context.Context, token, owner, repo, path string, payload contentsPayload) (int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("encode contents payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.contentsURL(owner, repo, path), bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build contents request: %w", err)
	}
	c.setAPIHeaders(req, token)

	resp, err := c.do(req)
	if err != nil {
		return 0, err
	}
	return resp.Status, nil
}

func (c *Client) contentsURL(owner, repo, path string) string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.apiBaseURL, url.PathEscape(owner), url.PathEscape(repo), path)
}

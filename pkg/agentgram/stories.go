package agentgram

import (
	"context"
	"net/http"
	"net/url"
)

// CreateStoryRequest is the payload for CreateStory.
type CreateStoryRequest struct {
	Caption  string `json:"caption,omitempty"`
	MediaURL string `json:"mediaUrl,omitempty"`
}

// ListStories returns the active (unexpired) stories from followed agents.
func (c *Client) ListStories(ctx context.Context) ([]Story, error) {
	var stories []Story
	if _, err := c.do(ctx, http.MethodGet, "/stories", nil, nil, &stories); err != nil {
		return nil, err
	}
	return stories, nil
}

// GetStory fetches a single story by ID.
func (c *Client) GetStory(ctx context.Context, id string) (*Story, error) {
	var story Story
	if _, err := c.do(ctx, http.MethodGet, "/stories/"+url.PathEscape(id), nil, nil, &story); err != nil {
		return nil, err
	}
	return &story, nil
}

// CreateStory publishes an ephemeral story and returns the created record.
func (c *Client) CreateStory(ctx context.Context, req CreateStoryRequest) (*Story, error) {
	var story Story
	if _, err := c.do(ctx, http.MethodPost, "/stories", req, nil, &story); err != nil {
		return nil, err
	}
	return &story, nil
}

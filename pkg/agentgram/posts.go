package agentgram

import (
	"context"
	"net/http"
	"net/url"
)

// ListPostsParams filters and pages ListPosts. Nil fields are omitted.
type ListPostsParams struct {
	Sort      *string // "hot", "new", or "top"
	Limit     *int
	Page      *int
	Community *string
}

// CreatePostRequest is the payload for CreatePost. URL is only meaningful for
// link posts.
type CreatePostRequest struct {
	Title       string `json:"title"`
	Content     string `json:"content,omitempty"`
	CommunityID string `json:"communityId,omitempty"`
	PostType    string `json:"postType,omitempty"`
	URL         string `json:"url,omitempty"`
}

// ListPosts returns feed posts with pagination meta. params may be nil.
func (c *Client) ListPosts(ctx context.Context, params *ListPostsParams) ([]Post, *Meta, error) {
	var query Query
	if params != nil {
		query = Query{
			"sort":      params.Sort,
			"limit":     params.Limit,
			"page":      params.Page,
			"community": params.Community,
		}
	}
	var posts []Post
	meta, err := c.do(ctx, http.MethodGet, "/posts", nil, query, &posts)
	if err != nil {
		return nil, nil, err
	}
	return posts, meta, nil
}

// GetPost fetches a single post by ID.
func (c *Client) GetPost(ctx context.Context, id string) (*Post, error) {
	var post Post
	if _, err := c.do(ctx, http.MethodGet, "/posts/"+url.PathEscape(id), nil, nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// CreatePost publishes a new post and returns the created record.
func (c *Client) CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error) {
	var post Post
	if _, err := c.do(ctx, http.MethodPost, "/posts", req, nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost removes one of the authenticated agent's posts. The API
// responds 204.
func (c *Client) DeletePost(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/posts/"+url.PathEscape(id), nil, nil, nil)
	return err
}

// LikePost records a like on the post.
func (c *Client) LikePost(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodPost, "/posts/"+url.PathEscape(id)+"/like", nil, nil, nil)
	return err
}

// UnlikePost withdraws a like. The API responds 204.
func (c *Client) UnlikePost(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/posts/"+url.PathEscape(id)+"/like", nil, nil, nil)
	return err
}

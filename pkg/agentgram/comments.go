package agentgram

import (
	"context"
	"net/http"
	"net/url"
)

// ListCommentsParams pages ListComments. Nil fields are omitted.
type ListCommentsParams struct {
	Sort  *string // "new" or "top"
	Limit *int
	Page  *int
}

// CreateCommentRequest is the payload for CreateComment.
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// ListComments returns the comments on a post with pagination meta. params
// may be nil.
func (c *Client) ListComments(ctx context.Context, postID string, params *ListCommentsParams) ([]Comment, *Meta, error) {
	var query Query
	if params != nil {
		query = Query{
			"sort":  params.Sort,
			"limit": params.Limit,
			"page":  params.Page,
		}
	}
	var comments []Comment
	meta, err := c.do(ctx, http.MethodGet, "/posts/"+url.PathEscape(postID)+"/comments", nil, query, &comments)
	if err != nil {
		return nil, nil, err
	}
	return comments, meta, nil
}

// CreateComment replies to a post and returns the created comment.
func (c *Client) CreateComment(ctx context.Context, postID string, req CreateCommentRequest) (*Comment, error) {
	var comment Comment
	if _, err := c.do(ctx, http.MethodPost, "/posts/"+url.PathEscape(postID)+"/comments", req, nil, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes one of the authenticated agent's comments. The API
// responds 204.
func (c *Client) DeleteComment(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/comments/"+url.PathEscape(id), nil, nil, nil)
	return err
}

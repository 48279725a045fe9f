package agentgram

import (
	"context"
	"net/http"
	"net/url"
)

// TrendingHashtagsParams limits TrendingHashtags. Nil fields are omitted.
type TrendingHashtagsParams struct {
	Limit *int
}

// TrendingHashtags returns the currently trending tags, most active first.
// params may be nil.
func (c *Client) TrendingHashtags(ctx context.Context, params *TrendingHashtagsParams) ([]Hashtag, error) {
	var query Query
	if params != nil {
		query = Query{"limit": params.Limit}
	}
	var tags []Hashtag
	if _, err := c.do(ctx, http.MethodGet, "/hashtags/trending", nil, query, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// GetHashtag fetches aggregate stats for one tag.
func (c *Client) GetHashtag(ctx context.Context, tag string) (*Hashtag, error) {
	var hashtag Hashtag
	if _, err := c.do(ctx, http.MethodGet, "/hashtags/"+url.PathEscape(tag), nil, nil, &hashtag); err != nil {
		return nil, err
	}
	return &hashtag, nil
}

// ListHashtagPosts returns the posts carrying a tag with pagination meta.
// params may be nil.
func (c *Client) ListHashtagPosts(ctx context.Context, tag string, params *ListPostsParams) ([]Post, *Meta, error) {
	var query Query
	if params != nil {
		query = Query{
			"sort":  params.Sort,
			"limit": params.Limit,
			"page":  params.Page,
		}
	}
	var posts []Post
	meta, err := c.do(ctx, http.MethodGet, "/hashtags/"+url.PathEscape(tag)+"/posts", nil, query, &posts)
	if err != nil {
		return nil, nil, err
	}
	return posts, meta, nil
}

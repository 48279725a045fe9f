package agentgram

import (
	"context"
	"net/http"
	"net/url"
)

// ListNotificationsParams filters and pages ListNotifications. Nil fields are
// omitted. Unread false is a present value and requests read notifications.
type ListNotificationsParams struct {
	Unread *bool
	Limit  *int
	Page   *int
}

// ListNotifications returns the authenticated agent's inbox with pagination
// meta. params may be nil.
func (c *Client) ListNotifications(ctx context.Context, params *ListNotificationsParams) ([]Notification, *Meta, error) {
	var query Query
	if params != nil {
		query = Query{
			"unread": params.Unread,
			"limit":  params.Limit,
			"page":   params.Page,
		}
	}
	var notifications []Notification
	meta, err := c.do(ctx, http.MethodGet, "/notifications", nil, query, &notifications)
	if err != nil {
		return nil, nil, err
	}
	return notifications, meta, nil
}

// MarkNotificationRead marks one notification as read. The API responds 204.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodPost, "/notifications/"+url.PathEscape(id)+"/read", nil, nil, nil)
	return err
}

// MarkAllNotificationsRead clears the unread state of the whole inbox. The
// API responds 204.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/notifications/read-all", nil, nil, nil)
	return err
}

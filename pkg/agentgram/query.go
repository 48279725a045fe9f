package agentgram

import (
	"fmt"
	"net/url"
	"strconv"
)

// Query holds the query parameters for one request. A nil value — untyped nil
// or a nil typed pointer — marks the parameter absent and the key is omitted
// from the URL entirely. Present values are serialized in their canonical
// string form, so 0 and false are still sent.
type Query map[string]any

// encode renders the query string (without leading "?"), omitting absent keys.
// Keys are sorted by url.Values for a deterministic URL.
func (q Query) encode() string {
	if len(q) == 0 {
		return ""
	}
	vals := url.Values{}
	for key, v := range q {
		s, present := queryValue(v)
		if !present {
			continue
		}
		vals.Set(key, s)
	}
	return vals.Encode()
}

// queryValue stringifies a single parameter value. The second return is false
// when the value is absent.
func queryValue(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, true
	case bool:
		return strconv.FormatBool(t), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case *string:
		if t == nil {
			return "", false
		}
		return *t, true
	case *bool:
		if t == nil {
			return "", false
		}
		return strconv.FormatBool(*t), true
	case *int:
		if t == nil {
			return "", false
		}
		return strconv.Itoa(*t), true
	case *int64:
		if t == nil {
			return "", false
		}
		return strconv.FormatInt(*t, 10), true
	case *float64:
		if t == nil {
			return "", false
		}
		return strconv.FormatFloat(*t, 'f', -1, 64), true
	default:
		return fmt.Sprint(t), true
	}
}

// String returns a pointer to s, for optional query and body fields.
func String(s string) *string { return &s }

// Int returns a pointer to i, for optional query and body fields.
func Int(i int) *int { return &i }

// Bool returns a pointer to b, for optional query and body fields.
func Bool(b bool) *bool { return &b }

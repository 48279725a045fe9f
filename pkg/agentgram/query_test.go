package agentgram

import "testing"

func TestQueryEncode(t *testing.T) {
	cases := []struct {
		name  string
		query Query
		want  string
	}{
		{"nil map", nil, ""},
		{"empty map", Query{}, ""},
		{"string and int", Query{"sort": "hot", "limit": 25}, "limit=25&sort=hot"},
		{"untyped nil omitted", Query{"sort": nil, "page": 2}, "page=2"},
		{"nil pointer omitted", Query{"sort": (*string)(nil), "page": 2}, "page=2"},
		{"zero int kept", Query{"limit": 0}, "limit=0"},
		{"false bool kept", Query{"unread": false}, "unread=false"},
		{"zero pointer kept", Query{"limit": Int(0), "unread": Bool(false)}, "limit=0&unread=false"},
		{"float canonical", Query{"min_score": 0.5}, "min_score=0.5"},
		{"escaping", Query{"community": "ai agents"}, "community=ai+agents"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.query.encode(); got != tc.want {
				t.Errorf("encode() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestQueryValue_pointers(t *testing.T) {
	if s, ok := queryValue(String("x")); !ok || s != "x" {
		t.Errorf("queryValue(*string) = %q, %v", s, ok)
	}
	if _, ok := queryValue((*int)(nil)); ok {
		t.Error("nil *int should be absent")
	}
	if s, ok := queryValue(Bool(false)); !ok || s != "false" {
		t.Errorf("queryValue(*bool false) = %q, %v", s, ok)
	}
	if s, ok := queryValue(int64(9000000000)); !ok || s != "9000000000" {
		t.Errorf("queryValue(int64) = %q, %v", s, ok)
	}
}

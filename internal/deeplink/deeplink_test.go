package deeplink

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		uri     string
		want    Route
		wantErr bool
	}{
		{"anchor://today", Route{Tab: TabToday}, false},
		{"anchor://schedule", Route{Tab: TabSchedule}, false},
		{"anchor://progress/view_summary", Route{Tab: TabProgress, Action: ActionViewSummary}, false},
		{"anchor://settings", Route{Tab: TabSettings}, false},
		{"anchor://today/complete/abc-123", Route{Tab: TabToday, Action: ActionComplete, BlockID: "abc-123"}, false},
		{"anchor://today/skip/abc-123", Route{Tab: TabToday, Action: ActionSkip, BlockID: "abc-123"}, false},
		{"anchor://schedule/add_block", Route{Tab: TabSchedule, Action: ActionAddBlock}, false},
		// missing block id, unknown tab, unknown action, wrong scheme,
		// not a URI
		{"anchor://today/complete", Route{}, true},
		{"anchor://nowhere", Route{}, true},
		{"anchor://today/explode", Route{}, true},
		{"https://today", Route{}, true},
		{"://", Route{}, true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.uri)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Parse(%q): expected error, got %+v", tt.uri, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.uri, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.uri, got, tt.want)
		}
	}
}

func TestRegistryDispatch(t *testing.T) {
	reg := NewRegistry()

	var got Route
	reg.Register(TabToday, func(r Route) error {
		got = r
		return nil
	})

	route := Route{Tab: TabToday, Action: ActionComplete, BlockID: "abc"}
	if err := reg.Dispatch(route); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if got != route {
		t.Errorf("handler received %+v, want %+v", got, route)
	}

	if err := reg.Dispatch(Route{Tab: TabSettings}); err == nil {
		t.Error("expected error dispatching to an unregistered tab")
	}
}

func TestFromNotificationAction(t *testing.T) {
	r, err := FromNotificationAction("complete", "abc")
	if err != nil {
		t.Fatalf("FromNotificationAction failed: %v", err)
	}
	if r.Tab != TabToday || r.Action != ActionComplete || r.BlockID != "abc" {
		t.Errorf("unexpected route: %+v", r)
	}

	r, err = FromNotificationAction("view_summary", "")
	if err != nil {
		t.Fatalf("FromNotificationAction failed: %v", err)
	}
	if r.Tab != TabProgress {
		t.Errorf("view_summary must route to progress, got %+v", r)
	}

	if _, err := FromNotificationAction("skip", ""); err == nil {
		t.Error("skip without block id must fail")
	}
	if _, err := FromNotificationAction("launch", "abc"); err == nil {
		t.Error("unknown action must fail")
	}
}

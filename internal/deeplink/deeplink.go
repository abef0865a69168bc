// Package deeplink maps anchor:// URIs and notification actions onto
// in-process routes: a target tab plus an optional pending action.
package deeplink

import (
	"fmt"
	"net/url"
	"strings"
)

// Tab is a navigation target in the original app; the CLI keeps the same
// names so notification payloads stay compatible.
type Tab string

const (
	TabToday    Tab = "today"
	TabSchedule Tab = "schedule"
	TabProgress Tab = "progress"
	TabSettings Tab = "settings"
)

// Action is a pending operation carried by a route.
type Action string

const (
	ActionNone        Action = ""
	ActionComplete    Action = "complete"
	ActionSkip        Action = "skip"
	ActionViewSummary Action = "view_summary"
	ActionAddBlock    Action = "add_block"
)

// Route is a resolved deep link.
type Route struct {
	Tab     Tab
	Action  Action
	BlockID string
}

func validTab(t Tab) bool {
	switch t {
	case TabToday, TabSchedule, TabProgress, TabSettings:
		return true
	}
	return false
}

func validAction(a Action) bool {
	switch a {
	case ActionNone, ActionComplete, ActionSkip, ActionViewSummary, ActionAddBlock:
		return true
	}
	return false
}

// Parse resolves an anchor://<tab>[/<action>[/<block-id>]] URI.
func Parse(raw string) (Route, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Route{}, fmt.Errorf("invalid deep link %q: %w", raw, err)
	}
	if u.Scheme != "anchor" {
		return Route{}, fmt.Errorf("unsupported deep link scheme: %q", u.Scheme)
	}

	route := Route{Tab: Tab(u.Host)}
	if !validTab(route.Tab) {
		return Route{}, fmt.Errorf("unknown deep link tab: %q", u.Host)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) > 0 && parts[0] != "" {
		route.Action = Action(parts[0])
		if !validAction(route.Action) {
			return Route{}, fmt.Errorf("unknown deep link action: %q", parts[0])
		}
	}
	if len(parts) > 1 {
		route.BlockID = parts[1]
	}

	if (route.Action == ActionComplete || route.Action == ActionSkip) && route.BlockID == "" {
		return Route{}, fmt.Errorf("action %q requires a block id", route.Action)
	}

	return route, nil
}

// Handler runs whatever stands behind one tab, including any pending
// action carried by the route.
type Handler func(Route) error

// Registry maps tabs to handlers.
type Registry struct {
	handlers map[Tab]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[Tab]Handler)}
}

// Register binds a handler to a tab, replacing any previous binding.
func (r *Registry) Register(tab Tab, h Handler) {
	r.handlers[tab] = h
}

// Dispatch runs the handler registered for the route's tab.
func (r *Registry) Dispatch(route Route) error {
	h, ok := r.handlers[route.Tab]
	if !ok {
		return fmt.Errorf("no handler registered for tab %q", route.Tab)
	}
	return h(route)
}

// FromNotificationAction maps a notification action button press to a route.
func FromNotificationAction(action, blockID string) (Route, error) {
	switch Action(action) {
	case ActionComplete, ActionSkip:
		if blockID == "" {
			return Route{}, fmt.Errorf("action %q requires a block id", action)
		}
		return Route{Tab: TabToday, Action: Action(action), BlockID: blockID}, nil
	case ActionViewSummary:
		return Route{Tab: TabProgress, Action: ActionViewSummary}, nil
	default:
		return Route{}, fmt.Errorf("unknown notification action: %q", action)
	}
}

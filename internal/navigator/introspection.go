package navigator

import "github.com/aretw0/introspection"

// NavigatorState exposes internal state for observability.
type NavigatorState struct {
	Mode       string   `json:"mode"`
	Depth      int      `json:"depth"`
	Cursor     int      `json:"cursor"`
	Items      int      `json:"items"`
	Breadcrumb []string `json:"breadcrumb"`
}

// State implements introspection.Introspectable.
func (n *Navigator) State() any {
	crumbs := n.Breadcrumb()

	n.mu.RLock()
	defer n.mu.RUnlock()

	items := 0
	if top := n.top(); top != nil {
		items = top.Len()
	}
	return NavigatorState{
		Mode:       n.mode.String(),
		Depth:      len(n.stack),
		Cursor:     n.cursor,
		Items:      items,
		Breadcrumb: crumbs,
	}
}

// ComponentType implements introspection.Component.
func (n *Navigator) ComponentType() string {
	return "navigator"
}

var _ introspection.Introspectable = (*Navigator)(nil)
var _ introspection.Component = (*Navigator)(nil)

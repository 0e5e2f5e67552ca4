package group

import (
	"encoding/json"
	"fmt"

	"appdock/internal/appentry"
)

type wireGroup struct {
	Items    []json.RawMessage `json:"items"`
	Name     string            `json:"group_name"`
	Override string            `json:"override_group_icon_path,omitempty"`
}

// Marshal serializes a group with its members inline.
func Marshal(g *Group) ([]byte, error) {
	w := wireGroup{
		Name:     g.Name(),
		Override: g.OverrideIconPath(),
		Items:    make([]json.RawMessage, 0, g.Len()),
	}
	for _, item := range g.Items() {
		raw, err := appentry.MarshalEntry(item)
		if err != nil {
			return nil, fmt.Errorf("encoding group %q: %w", g.Name(), err)
		}
		w.Items = append(w.Items, raw)
	}
	return json.Marshal(w)
}

// Unmarshal decodes a group, rebuilding each member against rt.
func Unmarshal(data []byte, rt *appentry.Runtime) (*Group, error) {
	var w wireGroup
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decoding group: %w", err)
	}

	items := make([]appentry.Entry, 0, len(w.Items))
	for _, raw := range w.Items {
		entry, err := appentry.UnmarshalEntry(raw, rt)
		if err != nil {
			return nil, fmt.Errorf("decoding group %q: %w", w.Name, err)
		}
		items = append(items, entry)
	}

	g := New(rt, w.Name, items...)
	if w.Override != "" {
		g.SetOverrideIconPath(w.Override)
	}
	return g, nil
}

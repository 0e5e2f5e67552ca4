// Package group aggregates app entries into named groups with a
// composed tile icon.
package group

import (
	"context"
	"image"
	"os"

	"appdock/internal/appentry"
	"appdock/internal/async"
	"appdock/internal/icon"
	"appdock/internal/log"
)

// Group is a named collection of entries. Its icon is either a
// rendered override image or a grid composed from the member icons.
type Group struct {
	rt           *appentry.Runtime
	name         string
	items        []appentry.Entry
	overrideIcon string
	icon         *async.Value[image.Image]
}

// New builds a group over the given members and starts its icon
// computation dormant.
func New(rt *appentry.Runtime, name string, items ...appentry.Entry) *Group {
	g := &Group{
		rt:    rt,
		name:  name,
		items: append([]appentry.Entry(nil), items...),
	}
	g.UpdateIcon()
	return g
}

func (g *Group) Name() string        { return g.name }
func (g *Group) SetName(name string) { g.name = name }

// Items returns a copy of the member list.
func (g *Group) Items() []appentry.Entry {
	return append([]appentry.Entry(nil), g.items...)
}

func (g *Group) Len() int { return len(g.items) }

// Add appends an entry unless an equal one is already a member, then
// refreshes the composed icon.
func (g *Group) Add(entry appentry.Entry) bool {
	for _, existing := range g.items {
		if appentry.Equal(existing, entry) {
			return false
		}
	}
	g.items = append(g.items, entry)
	g.UpdateIcon()
	return true
}

// Remove drops the first member equal to entry and refreshes the
// composed icon. Reports whether anything was removed.
func (g *Group) Remove(entry appentry.Entry) bool {
	for i, existing := range g.items {
		if appentry.Equal(existing, entry) {
			g.items = append(g.items[:i], g.items[i+1:]...)
			g.UpdateIcon()
			return true
		}
	}
	return false
}

func (g *Group) OverrideIconPath() string { return g.overrideIcon }

// SetOverrideIconPath changes the override image and refreshes the
// icon.
func (g *Group) SetOverrideIconPath(path string) {
	g.overrideIcon = path
	g.UpdateIcon()
}

// Icon is the current observable icon computation.
func (g *Group) Icon() *async.Value[image.Image] { return g.icon }

// UpdateIcon replaces the icon computation with a fresh one over the
// current override path and member list. Futures already handed out
// keep their frozen results.
func (g *Group) UpdateIcon() {
	override := g.overrideIcon
	members := g.Items()
	rt := g.rt

	g.icon = async.NewValue(func(ctx context.Context) (image.Image, error) {
		return composeIcon(ctx, rt, override, members)
	}, async.WithDispatcher[image.Image](g.rt.Dispatcher))
}

// composeIcon renders the override image when one is set and present
// on disk, and otherwise lays the member icons out on a square grid.
// A member whose icon fails leaves its cell empty rather than failing
// the whole composition.
func composeIcon(ctx context.Context, rt *appentry.Runtime, override string, members []appentry.Entry) (image.Image, error) {
	if override != "" {
		if _, err := os.Stat(override); err == nil {
			return rt.Renderer.RenderPath(ctx, override, icon.GridCanvasSize)
		}
	}

	if len(members) == 0 {
		return nil, nil
	}

	tiles := make([]image.Image, len(members))
	for i, member := range members {
		tiles[i] = memberTile(ctx, member)
	}
	return icon.ComposeGrid(tiles, icon.GridCanvasSize), nil
}

func memberTile(ctx context.Context, member appentry.Entry) image.Image {
	v := member.Icon()
	if v.Task() == nil {
		// Dormant member icon; start it so the grid can wait on it.
		v.Reset()
	}
	img, err := v.Task().Await(ctx)
	if err != nil {
		log.ErrorErr(log.CatIcon, "member icon unavailable for group tile", err, "entry", member.Name())
		return nil
	}
	return img
}

// Clone deep-copies the group: members are cloned and the copy gets
// its own icon computation.
func (g *Group) Clone() *Group {
	items := make([]appentry.Entry, len(g.items))
	for i, item := range g.items {
		items[i] = item.Clone()
	}
	clone := &Group{
		rt:           g.rt,
		name:         g.name,
		items:        items,
		overrideIcon: g.overrideIcon,
	}
	clone.UpdateIcon()
	return clone
}

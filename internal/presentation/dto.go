// Package presentation renders entries and groups for CLI output.
package presentation

import (
	"appdock/internal/appentry"
	"appdock/internal/group"
)

// EntryDTO represents an entry for presentation.
type EntryDTO struct {
	Kind   string `json:"kind"`
	Name   string `json:"name"`
	Target string `json:"target,omitempty"`
}

// FromEntry converts an entry to a DTO.
func FromEntry(e appentry.Entry) EntryDTO {
	id := e.Identity()
	return EntryDTO{
		Kind:   string(id.Kind),
		Name:   e.Name(),
		Target: id.Target,
	}
}

// FromEntries converts a slice of entries to DTOs.
func FromEntries(entries []appentry.Entry) []EntryDTO {
	dtos := make([]EntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = FromEntry(e)
	}
	return dtos
}

// GroupDTO represents a group with its members for presentation.
type GroupDTO struct {
	Name             string     `json:"name"`
	OverrideIconPath string     `json:"override_icon_path,omitempty"`
	Items            []EntryDTO `json:"items"`
}

// FromGroup converts a group to a DTO.
func FromGroup(g *group.Group) GroupDTO {
	return GroupDTO{
		Name:             g.Name(),
		OverrideIconPath: g.OverrideIconPath(),
		Items:            FromEntries(g.Items()),
	}
}

// FromGroups converts a slice of groups to DTOs.
func FromGroups(groups []*group.Group) []GroupDTO {
	dtos := make([]GroupDTO, len(groups))
	for i, g := range groups {
		dtos[i] = FromGroup(g)
	}
	return dtos
}

package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
)

// Formatter handles output formatting
type Formatter struct {
	writer  io.Writer
	jsonOut bool
}

// NewFormatter creates a new formatter. With jsonOut set, everything
// is emitted as indented JSON instead of columns.
func NewFormatter(writer io.Writer, jsonOut bool) *Formatter {
	return &Formatter{
		writer:  writer,
		jsonOut: jsonOut,
	}
}

// FormatEntries writes an entry listing.
func (f *Formatter) FormatEntries(entries []EntryDTO) error {
	if f.jsonOut {
		return f.encode(entries)
	}

	tw := tabwriter.NewWriter(f.writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tNAME\tTARGET")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Kind, e.Name, e.Target)
	}
	return tw.Flush()
}

// FormatGroups writes a group listing with members indented.
func (f *Formatter) FormatGroups(groups []GroupDTO) error {
	if f.jsonOut {
		return f.encode(groups)
	}

	for _, g := range groups {
		if _, err := fmt.Fprintf(f.writer, "%s (%d)\n", g.Name, len(g.Items)); err != nil {
			return err
		}
		for _, item := range g.Items {
			if _, err := fmt.Fprintf(f.writer, "  %s\t%s\n", item.Kind, item.Name); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *Formatter) encode(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

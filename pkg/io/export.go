package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/yeargrid/pkg/event"
	"github.com/matzehuels/yeargrid/pkg/grid"
	"github.com/matzehuels/yeargrid/pkg/pipeline"
)

// WriteLayoutJSON encodes a pipeline result as indented JSON.
func WriteLayoutJSON(w io.Writer, result *pipeline.Result) error {
	return writeJSON(w, result)
}

// ExportLayoutJSON writes a pipeline result to a JSON file at path.
func ExportLayoutJSON(result *pipeline.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteLayoutJSON(f, result)
}

// WriteMonthsJSON encodes month cells as indented JSON.
func WriteMonthsJSON(w io.Writer, months []grid.MonthCell) error {
	return writeJSON(w, months)
}

// WriteEventsJSON writes events in the format read by [ReadJSON].
func WriteEventsJSON(w io.Writer, events []event.Event) error {
	return writeJSON(w, eventsDoc{Events: events})
}

// ExportEventsJSON writes events to a JSON file at path.
func ExportEventsJSON(events []event.Event, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteEventsJSON(f, events)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

package io

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/yeargrid/pkg/event"
	"github.com/matzehuels/yeargrid/pkg/grid"
	"github.com/matzehuels/yeargrid/pkg/pipeline"
)

func TestWriteLayoutJSON(t *testing.T) {
	r := pipeline.NewRunner(nil, nil, nil)
	result, err := r.Execute(context.Background(), pipeline.Options{
		Year:   2024,
		Now:    time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Events: []event.Event{{ID: "a", Start: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)}},
	})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteLayoutJSON(&buf, result); err != nil {
		t.Fatal(err)
	}

	var decoded struct {
		Year   int `json:"year"`
		Months []struct {
			IsCurrent bool `json:"is_current"`
		} `json:"months"`
		Pages []struct {
			Index int `json:"index"`
			Rows  []struct {
				Events []struct {
					Offset int `json:"offset"`
					Span   int `json:"span"`
				} `json:"events"`
			} `json:"rows"`
		} `json:"pages"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Year != 2024 || len(decoded.Months) != 12 || len(decoded.Pages) != 3 {
		t.Errorf("decoded = year %d, %d months, %d pages", decoded.Year, len(decoded.Months), len(decoded.Pages))
	}
	if !decoded.Months[4].IsCurrent {
		t.Error("May should be flagged current")
	}
	rows := decoded.Pages[0].Rows
	if len(rows) != 1 || rows[0].Events[0].Offset != 1 || rows[0].Events[0].Span != 1 {
		t.Errorf("page 0 rows = %+v", rows)
	}

	path := filepath.Join(t.TempDir(), "layout.json")
	if err := ExportLayoutJSON(result, path); err != nil {
		t.Errorf("ExportLayoutJSON() error = %v", err)
	}
}

func TestWriteMonthsJSON(t *testing.T) {
	months, err := grid.BuildYear(2024, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), []int{11})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteMonthsJSON(&buf, months); err != nil {
		t.Fatal(err)
	}

	var decoded []struct {
		Date      time.Time `json:"date"`
		IsYearEnd bool      `json:"is_year_end"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 12 {
		t.Fatalf("len = %d, want 12", len(decoded))
	}
	if !decoded[11].IsYearEnd || decoded[0].IsYearEnd {
		t.Errorf("year-end flags = %v, %v; want false, true", decoded[0].IsYearEnd, decoded[11].IsYearEnd)
	}
}

package io

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/matzehuels/yeargrid/pkg/errors"
	"github.com/matzehuels/yeargrid/pkg/event"
	"github.com/matzehuels/yeargrid/pkg/httputil"
)

// ReadEvents reads the events file at path, choosing the decoder by
// extension.
func ReadEvents(path string) ([]event.Event, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var events []event.Event
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".ics", ".ical":
		events, err = ReadICS(f)
	case ".toml":
		events, err = ReadTOML(f)
	case ".json":
		events, err = ReadJSON(f)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported events file %q (want .ics, .toml or .json)", ext)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return events, nil
}

// ReadJSON decodes events from r. The input is either an array of events or
// an object with an "events" array.
func ReadJSON(r io.Reader) ([]event.Event, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var events []event.Event
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &events); err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
	} else {
		var doc eventsDoc
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		events = doc.Events
	}
	return assignIDs(events), nil
}

// ReadTOML decodes an [[events]] array of tables from r.
func ReadTOML(r io.Reader) ([]event.Event, error) {
	var doc eventsDoc
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return assignIDs(doc.Events), nil
}

type eventsDoc struct {
	Events []event.Event `json:"events" toml:"events"`
}

// assignIDs gives every event without an ID a random UUID.
func assignIDs(events []event.Event) []event.Event {
	for i := range events {
		if events[i].ID == "" {
			events[i].ID = uuid.NewString()
		}
	}
	return events
}

// IsURL reports whether src names an http(s) feed rather than a file.
func IsURL(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// FetchICS downloads an iCalendar feed with client and decodes it.
func FetchICS(ctx context.Context, client *httputil.Client, url string) ([]event.Event, error) {
	body, err := client.Get(ctx, url)
	if err != nil {
		var se *httputil.StatusError
		if stderrors.As(err, &se) && se.Code == http.StatusNotFound {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "fetch %s", url)
		}
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	events, err := ReadICS(bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", url)
	}
	return events, nil
}

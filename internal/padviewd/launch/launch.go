// Package launch implements the launch event domain model and the sources
// that supply the next upcoming event.
package launch

import (
	"fmt"
	"time"
)

// Event describes one upcoming launch. Immutable once fetched: the display
// cycle owns it for the duration of a countdown session and replaces it
// wholesale on refresh, never mutating it in place.
type Event struct {
	// Name is the mission name as reported upstream.
	Name string `json:"name"`
	// Net is the scheduled launch instant in UTC.
	Net time.Time `json:"net"`
	// Provider is the launch service provider name.
	Provider string `json:"provider"`
	// Location is the pad location name.
	Location string `json:"location"`
	// Image references the mission thumbnail, if any.
	Image ImageRef `json:"image"`
}

// Validate checks that the record carries the fields a session needs.
func (e *Event) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("event name cannot be empty")
	}
	if e.Net.IsZero() {
		return fmt.Errorf("event start time cannot be zero")
	}
	return nil
}

// ImageRef is a tagged variant: either no image or a URL. Upstream payloads
// carry the reference in several shapes (object, bare string, null); sources
// resolve that ambiguity at the boundary so the core never sees it.
type ImageRef struct {
	url string
}

// NoImage returns the empty reference.
func NoImage() ImageRef {
	return ImageRef{}
}

// ImageURL returns a reference to the given URL.
func ImageURL(u string) ImageRef {
	return ImageRef{url: u}
}

// URL returns the referenced URL and whether one is present.
func (r ImageRef) URL() (string, bool) {
	return r.url, r.url != ""
}

// MarshalText makes the variant serialize as the plain URL (empty when absent).
func (r ImageRef) MarshalText() ([]byte, error) {
	return []byte(r.url), nil
}

// UnmarshalText restores the variant from its serialized form.
func (r *ImageRef) UnmarshalText(b []byte) error {
	r.url = string(b)
	return nil
}

// Package v1alpha1 contains API types for the padview daemon.
package v1alpha1

import (
	"time"

	"github.com/google/uuid"
)

// DaemonStatus is the full status report served by the daemon
type DaemonStatus struct {
	// State is the display cycle state (BOOTING, FETCHING, SESSION_ACTIVE,
	// COUNTDOWN_EXPIRED)
	State string `json:"state"`
	// Event is the launch currently on display, if any
	Event *LaunchEvent `json:"event,omitempty"`
	// Countdown is the most recent countdown evaluation, if a session is active
	Countdown *CountdownView `json:"countdown,omitempty"`
	// Session describes the active display session, if any
	Session *SessionInfo `json:"session,omitempty"`
	// Zones is the last committed color of each light zone
	Zones []ZoneColor `json:"zones,omitempty"`
	// Uptime is how long the daemon has been running
	Uptime time.Duration `json:"uptime"`
	// Version is the daemon build version
	Version string `json:"version"`
}

// LaunchEvent is the wire form of a launch record
type LaunchEvent struct {
	// Name is the mission name as reported by the source
	Name string `json:"name"`
	// Net is the scheduled liftoff time
	Net time.Time `json:"net"`
	// Provider is the launch service provider
	Provider string `json:"provider"`
	// Location is the launch pad location
	Location string `json:"location"`
	// ImageURL points to the mission image, if one exists
	ImageURL string `json:"imageUrl,omitempty"`
}

// CountdownView is the wire form of a countdown evaluation
type CountdownView struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
	// Regime is AMBIENT or WARNING
	Regime string `json:"regime"`
}

// SessionInfo identifies a display session
type SessionInfo struct {
	// ID uniquely identifies the session
	ID uuid.UUID `json:"id"`
	// StartedAt is when the session began
	StartedAt time.Time `json:"startedAt"`
}

// ZoneColor reports one light zone's committed color
type ZoneColor struct {
	Zone int   `json:"zone"`
	R    uint8 `json:"r"`
	G    uint8 `json:"g"`
	B    uint8 `json:"b"`
}

// HistoryEntry is one recorded display session
type HistoryEntry struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Net       time.Time  `json:"net"`
	Provider  string     `json:"provider"`
	Location  string     `json:"location"`
	HadImage  bool       `json:"hadImage"`
	StartedAt time.Time  `json:"startedAt"`
	EndedAt   *time.Time `json:"endedAt,omitempty"`
	Outcome   string     `json:"outcome,omitempty"`
}

// HistoryResponse wraps a history listing
type HistoryResponse struct {
	// Items contains the listed sessions, newest first
	Items []HistoryEntry `json:"items"`
}

// Error represents an API error response
type Error struct {
	// Code is a machine-readable error code
	Code string `json:"code"`
	// Message is a human-readable error description
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

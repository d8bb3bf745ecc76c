package v1alpha1

import "time"

// StreamMessageType defines types of status stream messages
type StreamMessageType string

const (
	// StreamMessageState carries a display cycle state transition
	StreamMessageState StreamMessageType = "STATE"
	// StreamMessageZones carries a light zone color update
	StreamMessageZones StreamMessageType = "ZONES"
)

// StreamMessage represents a message sent over the status WebSocket
type StreamMessage struct {
	// Type indicates the kind of stream message
	Type StreamMessageType `json:"type"`
	// Status contains the cycle status if Type is STATE
	Status *DaemonStatus `json:"status,omitempty"`
	// Zones contains zone colors if Type is ZONES
	Zones []ZoneColor `json:"zones,omitempty"`
	// Timestamp indicates when the message was created
	Timestamp time.Time `json:"timestamp"`
}

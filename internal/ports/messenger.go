package ports

import (
	"context"
)

// DestinationType distinguishes channels from direct-message users.
type DestinationType string

const (
	DestinationChannel DestinationType = "channel"
	DestinationUser    DestinationType = "user"
)

// Destination is a place a message can be delivered to.
type Destination struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Type DestinationType `json:"type"`
}

// PostReceipt acknowledges a delivered message.
type PostReceipt struct {
	Channel   string `json:"channel"`
	Timestamp string `json:"ts"`
}

// Messenger is the messaging-platform collaborator: destination discovery and
// message delivery (channels and DMs share one send operation).
type Messenger interface {
	// SearchDestinations returns channels and active human users matching
	// query (case-insensitive substring; empty matches all), channels first.
	SearchDestinations(ctx context.Context, query string) ([]Destination, error)

	// PostMessage delivers text to a channel or user ID.
	PostMessage(ctx context.Context, channelID, text string) (*PostReceipt, error)
}

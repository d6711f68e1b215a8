// Package gameapi exposes game sessions over HTTP.
package gameapi

import "github.com/google/uuid"

// NewSessionRequest represents a request to start a session.
type NewSessionRequest struct {
	Difficulty string `json:"difficulty" binding:"required"`
}

// NewSessionResponse carries the session id and the bearer token bound to it.
type NewSessionResponse struct {
	ID    uuid.UUID `json:"id"`
	Token string    `json:"token"`
}

// InputRequest represents one input event for a session.
type InputRequest struct {
	Input string `json:"input" binding:"required"`
}

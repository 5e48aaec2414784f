// Package model defines the core domain types for the event registration
// service.
package model

import "time"

// Registration statuses. An entry moves from waitlisted to registered via
// promotion, never the reverse.
const (
	StatusRegistered = "registered"
	StatusWaitlisted = "waitlisted"
)

// Event represents an event users can register for. CurrentRegistrations and
// CurrentWaitlist are denormalized counters over the registration entries for
// this event; only the registration engine may mutate them.
type Event struct {
	ID                   string    `json:"eventId"`
	Title                string    `json:"title"`
	Description          string    `json:"description"`
	Date                 string    `json:"date"`
	Location             string    `json:"location"`
	Organizer            string    `json:"organizer"`
	Status               string    `json:"status"`
	Capacity             int       `json:"capacity"`
	WaitlistEnabled      bool      `json:"waitlistEnabled"`
	CurrentRegistrations int       `json:"currentRegistrations"`
	CurrentWaitlist      int       `json:"currentWaitlist"`
	CreatedAt            time.Time `json:"createdAt"`
}

// Remaining returns the number of available seats.
func (e *Event) Remaining() int {
	return e.Capacity - e.CurrentRegistrations
}

// IsFull returns true when no seats remain.
func (e *Event) IsFull() bool {
	return e.CurrentRegistrations >= e.Capacity
}

// User represents a registered account. Registration state lives entirely in
// the registration entries, not here.
type User struct {
	ID        string    `json:"userId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Registration is a single (event, user) entry. Position is nil for
// registered entries; for waitlisted entries it is a dense 1-based rank among
// the event's waitlist.
type Registration struct {
	ID           string    `json:"registrationId"`
	EventID      string    `json:"eventId"`
	UserID       string    `json:"userId"`
	Status       string    `json:"status"`
	Position     *int      `json:"position"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// RegistrationID builds the composite identifier for an (event, user) pair.
func RegistrationID(eventID, userID string) string {
	return userID + "#" + eventID
}

// RegistrationOutcome is the engine's answer to a register call.
type RegistrationOutcome struct {
	Registration
	Message string `json:"message"`
}

// CreateEventRequest is the payload for creating a new event.
type CreateEventRequest struct {
	EventID         string `json:"eventId"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Date            string `json:"date"`
	Location        string `json:"location"`
	Organizer       string `json:"organizer"`
	Status          string `json:"status"`
	Capacity        int    `json:"capacity"`
	WaitlistEnabled bool   `json:"waitlistEnabled"`
}

// UpdateEventRequest carries a partial event update; nil fields are left
// unchanged.
type UpdateEventRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Location    *string `json:"location"`
	Organizer   *string `json:"organizer"`
	Status      *string `json:"status"`
	Capacity    *int    `json:"capacity"`
}

// CreateUserRequest is the payload for creating a new user.
type CreateUserRequest struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
}

// UpdateUserRequest carries a partial user update.
type UpdateUserRequest struct {
	Name *string `json:"name"`
}

// RegisterRequest is the payload for registering a user for an event.
type RegisterRequest struct {
	UserID string `json:"userId"`
}

// EventRegistrationDetail is a registration entry enriched with the user it
// belongs to.
type EventRegistrationDetail struct {
	Registration
	User *User `json:"user"`
}

// RegistrationCounts summarises an event's registration state.
type RegistrationCounts struct {
	Registered int `json:"registered"`
	Waitlisted int `json:"waitlisted"`
	Capacity   int `json:"capacity"`
}

// EventRegistrations groups an event's entries by status, the waitlist
// ordered by position.
type EventRegistrations struct {
	EventID    string                    `json:"eventId"`
	Registered []EventRegistrationDetail `json:"registered"`
	Waitlisted []EventRegistrationDetail `json:"waitlisted"`
	Counts     RegistrationCounts        `json:"counts"`
}

// UserRegistrationDetail is a registration entry enriched with its event.
type UserRegistrationDetail struct {
	Registration
	Event *Event `json:"event"`
}

// UserRegistrations lists everything a user is registered or waitlisted for.
type UserRegistrations struct {
	UserID        string                   `json:"userId"`
	Registrations []UserRegistrationDetail `json:"registrations"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

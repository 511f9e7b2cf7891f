package event

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/zona2/backend/internal/domain/shared"
)

// Status represents the lifecycle state of an event
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPublished Status = "PUBLISHED"
	StatusClosed    Status = "CLOSED"
	StatusCancelled Status = "CANCELLED"
)

// IsValid returns true if the status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusClosed, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// Event represents a race or group run that runners register for, possibly
// against a paid fee.
type Event struct {
	shared.BaseEntity
	Title       string
	Description string
	Location    string
	StartsAt    time.Time
	Capacity    int
	Fee         decimal.Decimal // Zero means free registration
	Currency    string
	Status      Status
}

// NewEvent creates a new event in draft state
func NewEvent(title, description, location string, startsAt time.Time, capacity int, fee decimal.Decimal, currency string) (*Event, error) {
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if startsAt.IsZero() {
		return nil, shared.NewDomainError("INVALID_START", "Start time cannot be zero")
	}
	if capacity <= 0 {
		return nil, shared.NewDomainError("INVALID_CAPACITY", "Capacity must be positive")
	}
	if fee.IsNegative() {
		return nil, shared.NewDomainError("INVALID_FEE", "Fee cannot be negative")
	}
	if fee.IsPositive() && currency == "" {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency is required for paid events")
	}

	return &Event{
		BaseEntity:  shared.NewBaseEntity(),
		Title:       title,
		Description: description,
		Location:    location,
		StartsAt:    startsAt,
		Capacity:    capacity,
		Fee:         fee,
		Currency:    currency,
		Status:      StatusDraft,
	}, nil
}

// UpdateDetails edits the event. Closed and cancelled events are immutable.
func (e *Event) UpdateDetails(title, description, location string, startsAt time.Time, capacity int) error {
	if e.Status != StatusDraft && e.Status != StatusPublished {
		return shared.ErrInvalidState
	}
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if startsAt.IsZero() {
		return shared.NewDomainError("INVALID_START", "Start time cannot be zero")
	}
	if capacity <= 0 {
		return shared.NewDomainError("INVALID_CAPACITY", "Capacity must be positive")
	}

	e.Title = title
	e.Description = description
	e.Location = location
	e.StartsAt = startsAt
	e.Capacity = capacity
	e.Touch()
	return nil
}

// Publish opens the event for registration
func (e *Event) Publish() error {
	if e.Status != StatusDraft {
		return shared.ErrInvalidState
	}
	e.Status = StatusPublished
	e.Touch()
	return nil
}

// Close stops further registrations
func (e *Event) Close() error {
	if e.Status != StatusPublished {
		return shared.ErrInvalidState
	}
	e.Status = StatusClosed
	e.Touch()
	return nil
}

// Cancel cancels the event
func (e *Event) Cancel() error {
	if e.Status == StatusCancelled {
		return shared.ErrInvalidState
	}
	e.Status = StatusCancelled
	e.Touch()
	return nil
}

// IsFree returns true if registration requires no payment
func (e *Event) IsFree() bool {
	return e.Fee.IsZero()
}

// AcceptsRegistrations returns true if runners may currently register
func (e *Event) AcceptsRegistrations() bool {
	return e.Status == StatusPublished && time.Now().Before(e.StartsAt)
}

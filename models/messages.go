package models

import (
	"time"

	"github.com/google/uuid"
)

type StatusType int

const (
	StatusInfo StatusType = iota
	StatusSuccess
	StatusWarning
	StatusError
)

// Message is a notification that can be published on a dispatcher,
// typically the outcome of a program refresh.
type Message struct {
	ID     uuid.UUID  // uuid
	Status StatusType // Status Success/Error/Info...
	When   time.Time  // creation / update time
	Text   string     // Textual message
}

func NewMessage(t string) *Message {
	return &Message{
		When: time.Now(),
		ID:   uuid.New(),
		Text: t,
	}
}

func (m *Message) SetStatus(s StatusType) *Message { m.Status = s; return m }
func (m *Message) SetText(t string) *Message       { m.Text = t; return m }

func (m Message) UUID() uuid.UUID { return m.ID }
func (m Message) String() string  { return m.Text }

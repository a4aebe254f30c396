package domain

import (
	"fmt"
	"strings"
)

// Client is a customer that owns projects. Clients are immutable after
// creation; there is no update operation.
type Client struct {
	ID    string `json:"id" bson:"-"`
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
	Phone string `json:"phone" bson:"phone"`
}

// Project is a unit of work for a client. ClientID is the stored reference to
// the owning client and is never re-assigned after creation. Nothing checks
// that it points at a live client.
//
// Name and Description are nil once cleared by an update; the key is then
// absent from the stored document. An empty string is a stored value.
type Project struct {
	ID          string  `json:"id" bson:"-"`
	Name        *string `json:"name,omitempty" bson:"name,omitempty"`
	Description *string `json:"description,omitempty" bson:"description,omitempty"`
	Status      Status  `json:"status" bson:"status"`
	ClientID    string  `json:"clientId" bson:"clientId"`
}

// Validate mirrors the required-field rules of the client collection.
func (c *Client) Validate() error {
	switch {
	case strings.TrimSpace(c.Name) == "":
		return ValidationError("Please add a name")
	case strings.TrimSpace(c.Email) == "":
		return ValidationError("Please add an email")
	case strings.TrimSpace(c.Phone) == "":
		return ValidationError("Please add a phone number")
	}
	return nil
}

// Validate checks the fields a project needs before it is stored. The status
// must be an enum member or the legacy default.
func (p *Project) Validate() error {
	if strings.TrimSpace(p.ClientID) == "" {
		return ValidationError("Please add a client id")
	}
	if !p.Status.Valid() && p.Status != StatusLegacyNotStarted {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, string(p.Status))
	}
	return nil
}

func (c *Client) SetID(id string)  { c.ID = id }
func (p *Project) SetID(id string) { p.ID = id }

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T { return &v }

// Deref returns *p, or the zero value when p is nil.
func Deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

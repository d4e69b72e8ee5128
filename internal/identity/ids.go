// Package identity holds the typed id wrappers that keep owner-profile
// ids and user-account ids from being mixed up. A Property references an
// OwnerProfile (ProfileID); authorization and notifications always work
// on the underlying account (AccountID). The two are distinct types so a
// profile id can never be handed to something expecting an account id.
package identity

import (
	"database/sql/driver"

	"github.com/google/uuid"
)

// AccountID identifies a user account (users.id).
type AccountID uuid.UUID

// ProfileID identifies an owner profile (owner_profiles.id).
type ProfileID uuid.UUID

// NewAccountID returns a random AccountID.
func NewAccountID() AccountID { return AccountID(uuid.New()) }

// NewProfileID returns a random ProfileID.
func NewProfileID() ProfileID { return ProfileID(uuid.New()) }

func (id AccountID) String() string { return uuid.UUID(id).String() }
func (id AccountID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

func (id AccountID) Value() (driver.Value, error) { return uuid.UUID(id).Value() }

func (id *AccountID) Scan(src interface{}) error { return (*uuid.UUID)(id).Scan(src) }

func (id AccountID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *AccountID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

func (id ProfileID) String() string { return uuid.UUID(id).String() }
func (id ProfileID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

func (id ProfileID) Value() (driver.Value, error) { return uuid.UUID(id).Value() }

func (id *ProfileID) Scan(src interface{}) error { return (*uuid.UUID)(id).Scan(src) }

func (id ProfileID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *ProfileID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

// ParseAccountID parses the canonical UUID string form.
func ParseAccountID(s string) (AccountID, error) {
	u, err := uuid.Parse(s)
	return AccountID(u), err
}

// ParseProfileID parses the canonical UUID string form.
func ParseProfileID(s string) (ProfileID, error) {
	u, err := uuid.Parse(s)
	return ProfileID(u), err
}

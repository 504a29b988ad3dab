package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already exists")
	ErrInvalidInput = errors.New("name, email, and phone are required")
)

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserStore is the persistence contract shared by the SQL repository and the
// local file store. Create and Update fill in the store-assigned fields of u.
type UserStore interface {
	Initialize(ctx context.Context, seed bool) error
	List(ctx context.Context) ([]User, error)
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
	Name() string
	Close() error
}

// SampleUsers are inserted by Initialize when seeding is requested.
var SampleUsers = []User{
	{Name: "John Doe", Email: "john.doe@example.com", Phone: "+1-555-0123"},
	{Name: "Jane Smith", Email: "jane.smith@example.com", Phone: "+1-555-0456"},
	{Name: "Bob Johnson", Email: "bob.johnson@example.com", Phone: "+1-555-0789"},
	{Name: "Alice Brown", Email: "alice.brown@example.com", Phone: "+1-555-0321"},
	{Name: "Charlie Wilson", Email: "charlie.wilson@example.com", Phone: "+1-555-0654"},
}

// Validate checks that every required field is present. Whitespace is not
// trimmed.
func (u *User) Validate() error {
	if u.Name == "" || u.Email == "" || u.Phone == "" {
		return ErrInvalidInput
	}
	return nil
}

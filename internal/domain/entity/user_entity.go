package entity

import (
	"time"
)

// User is the aggregate root for the user domain.
// ID and CreatedAt are assigned by the store on insert and never change
// afterwards; Age is optional and nil when the caller did not provide it.
type User struct {
	ID        int64
	Name      string
	Email     string
	Age       *int
	CreatedAt time.Time
}

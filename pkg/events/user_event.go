package events

// Operation is the kind of user mutation an event describes.
type Operation string

const (
	OpCreate Operation = "CREATE"
	OpDelete Operation = "DELETE"
)

// UserEvent is the message published to the user-events queue after a
// successful create or delete. Email doubles as the routing key for
// downstream consumers.
type UserEvent struct {
	Operation Operation `json:"operation"`
	Email     string    `json:"email"`
}

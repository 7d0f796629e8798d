package handlers

// UserResponse exposes the unexported response type to the external test
// package, which cannot live in-package without creating an import cycle
// through the router.
type UserResponse = userResponse

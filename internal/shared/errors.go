package shared

type Error string

// Implement the error interface
func (e Error) Error() string { return string(e) }

//------------
// Definitions
//------------

// repository errors
const ErrUserNotFound = Error("user not found")
const ErrUserExists = Error("user already exists")
const ErrHouseholdNotFound = Error("household not found")
const ErrOrderNotFound = Error("work order not found")
const ErrItemNotFound = Error("inventory item not found")
const ErrSessionNotFound = Error("session not found")

// auth errors
const ErrInvalidRole = Error("invalid role")
const ErrInvalidCredentials = Error("invalid credentials")
const ErrRoleCannotLogin = Error("role has no login access")

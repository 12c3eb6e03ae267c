package service

import "errors"

// Business-rule failures surfaced to the API layer. Handlers translate
// these into HTTP statuses; anything else is treated as an internal error.
var (
	ErrNameTaken      = errors.New("name already exists")
	ErrEmailTaken     = errors.New("email already exists")
	ErrGroupNameTaken = errors.New("group name already exists")
	// ErrConflict covers storage-level duplicate-key violations where the
	// colliding column is not known (race with a concurrent writer).
	ErrConflict = errors.New("name or email already in use")

	ErrUserNotFound       = errors.New("user not found")
	ErrGroupNotFound      = errors.New("group not found")
	ErrMembershipNotFound = errors.New("membership not found")
	ErrNotDeleted         = errors.New("record is not deleted")

	ErrAlreadyMember = errors.New("user is already a member of this group")

	ErrInvalidCredential       = errors.New("invalid email or password")
	ErrCurrentPasswordRequired = errors.New("current password is required to change password")
)

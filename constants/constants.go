package constants

// Cookie and context keys
const (
	SessionCookieName = "token"
	ContextUserKey    = "user"
	ContextTokenKey   = "sessionToken"
)

// User-facing messages
const (
	MsgGoodbye      = "Goodbye!"
	MsgResetThanks  = "Thanks!"
	MsgResetSubject = "Your Password Reset Token"
)

// Error messages
const (
	ErrItemNotFound        = "Item not found"
	ErrUnexpected          = "Unexpected error"
	ErrInvalidID           = "Invalid id"
	ErrInvalidInput        = "Invalid input"
	ErrRecordNotFound      = "record not found"
	ErrNoSuchUser          = "No such user found"
	ErrInvalidPassword     = "Invalid Password!"
	ErrPasswordsDontMatch  = "Your passwords don't match!"
	ErrResetTokenInvalid   = "This token is either invalid or expired!"
	ErrNotLoggedIn         = "You must be logged in to do that!"
	ErrNoPermission        = "You don't have permission to do that!"
	ErrEmailTaken          = "Email already exists"
	ErrInvalidPermission   = "Invalid permission"
	ErrInvalidSession      = "invalid session token"
	ErrSessionRevoked      = "session token has been revoked"
	ErrUploadsNotAvailable = "image uploads are not configured"
)

package constants

// ContextKeyUserID is the gin context key holding the authenticated user ID.
const ContextKeyUserID = "user_id"

// ContextKeyUsername is the gin context key holding the authenticated username.
const ContextKeyUsername = "username"

// MinPasswordLength is the minimum accepted password length at registration.
const MinPasswordLength = 6

// MaxUploadBytes is the default upload size cap (10 MB).
const MaxUploadBytes = 10 << 20

// DateLayout is the wire format for calendar dates (deadlines, recurrence bounds).
const DateLayout = "2006-01-02"

// AllowedMimetypes lists the upload content types the service accepts.
var AllowedMimetypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"application/pdf": true,
	"text/plain":      true,
}

package users

import "time"

// User is an account keyed by the Telegram id supplied by the messaging
// platform. PasswordHash is empty for accounts created through bot
// first-contact; such accounts cannot log in over the REST API.
type User struct {
	ID           string
	TelegramID   string
	FullName     string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}

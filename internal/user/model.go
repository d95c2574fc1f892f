package user

import "time"

// User represents a registered account. PasswordHash holds the bcrypt digest
// of the password; the plaintext is never persisted.
type User struct {
	ID           string
	Email        string
	Mobile       string
	PasswordHash []byte
	CreatedAt    time.Time
}

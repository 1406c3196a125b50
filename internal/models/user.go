package models

// User is a login identity linked to exactly one person.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	PersonID     int64  `json:"personId"`
}

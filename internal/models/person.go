package models

// Person is a human record owning transactions and optionally one
// user account. The linked user account is never serialized.
type Person struct {
	ID           int64         `json:"id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Transactions []Transaction `json:"transactions"`
}

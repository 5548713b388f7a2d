// Package models defines the data types exchanged between savelinks
// repositories and services.
package models

// User is a stored credential record. Verifier is the digest of the derived
// key; neither the key nor the password is ever stored.
type User struct {
	ID       int64
	UserName string
	Salt     []byte
	Verifier []byte
}

// Link is a stored record: an opaque token owned by one user.
type Link struct {
	ID     int64
	UserID int64
	Data   []byte
}

// LinkView is a decrypted record, materialized only for display.
type LinkView struct {
	ID    int64
	Topic string
	Link  string
}

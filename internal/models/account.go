package models

import "time"

type Account struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FullName     string    `json:"fullName,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"-"`
}

// NewAccount is what the store needs to insert an account. PasswordHash
// must already be hashed.
type NewAccount struct {
	Username     string
	Email        string
	FullName     string
	PasswordHash string
}

// AccountView is the client-facing shape of an account.
type AccountView struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (a Account) View() AccountView {
	return AccountView{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		FullName:  a.FullName,
		CreatedAt: a.CreatedAt,
	}
}

// WithoutHash returns a copy safe to hand to anything but the login path.
func (a Account) WithoutHash() Account {
	a.PasswordHash = ""
	return a
}

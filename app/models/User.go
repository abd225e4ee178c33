package models

// User carries a sha256 hex digest in Password, never the plaintext.
type User struct {
	Id       string `json:"id"`
	Email    string `json:"email"`
	Password string `json:"-"`
}

type UserDto struct {
	Email string `json:"email"`
	Pass  string `json:"pass"`
}

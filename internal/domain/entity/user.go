package entity

// User representa al usuario que puede pasar la pantalla de login.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano
	Name         string
}

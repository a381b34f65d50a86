package ports

// PasswordHasher applies a salted one-way function to passwords. The hash
// blob embeds salt and cost, so Verify needs no external state.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

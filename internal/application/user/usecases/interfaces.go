package usecases

// PasswordHasher is the credential-hashing port, implemented by the bcrypt
// hasher in infrastructure/auth.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// TokenIssuer mints an authentication token for a user id, implemented by
// the JWT service in infrastructure/auth.
type TokenIssuer interface {
	Generate(userID uint) (string, error)
}

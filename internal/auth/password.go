package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword derives the stored bcrypt digest for an account password.
// Cost comes from AUTH_BCRYPT_COST; bcrypt substitutes its default for
// out-of-range values.
func HashPassword(password string, cost int) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// ComparePassword checks a login attempt against the stored digest.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}

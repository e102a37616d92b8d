package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a DJ account password with bcrypt at the given
// cost. The cost comes from configuration so deployments can trade
// hashing time for hardware.
func HashPassword(plain string, cost int) (string, error) {
    b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
    if err != nil {
        return "", err
    }
    return string(b), nil
}

// VerifyPassword compares a stored bcrypt hash against a candidate
// password in constant time.
func VerifyPassword(hash, plain string) bool {
    return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

package credentials

import (
	"crypto/rand"
	"math/big"
)

const pairingCodeLength = 6

// GeneratePairingCode generates a random 6-digit numeric pairing code.
// Leading zeros are allowed; the code is a string, never a number.
func GeneratePairingCode() (string, error) {
	digits := make([]byte, pairingCodeLength)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}

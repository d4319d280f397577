package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"math/big"

	"careerconnect/internal/domain/service"

	"github.com/pkg/errors"
)

const otpDigits = 6

// otpService implements service.OTPService on top of the package helpers.
type otpService struct{}

// NewOTPService is the constructor for otpService.
func NewOTPService() service.OTPService {
	return otpService{}
}

func (otpService) Generate() (string, error) {
	return GenerateOTP()
}

func (otpService) Hash(code string) string {
	return HashOTP(code)
}

// GenerateOTP returns a random numeric one-time code of fixed length,
// zero-padded, drawn from crypto/rand.
func GenerateOTP() (string, error) {
	max := big.NewInt(1)
	for range otpDigits {
		max.Mul(max, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate otp")
	}

	code := n.String()
	for len(code) < otpDigits {
		code = "0" + code
	}

	return code, nil
}

// HashOTP returns the hex-encoded SHA-256 hash of a raw code, the only form
// in which codes are persisted.
func HashOTP(code string) string {
	sum := sha256.Sum256([]byte(code))

	return hex.EncodeToString(sum[:])
}

package service

// OTPService issues and hashes one-time codes. Raw codes exist only in
// transit (the email to the user); storage and comparison go through the hash.
type OTPService interface {
	// Generate returns a fresh random code in its raw form.
	Generate() (string, error)

	// Hash returns the storable hash of a raw code.
	Hash(code string) string
}

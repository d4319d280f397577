package service

import "context"

// Mailer delivers transactional email. Implementations must be safe for
// concurrent use.
type Mailer interface {
	// SendOTP delivers a one-time code to the recipient.
	SendOTP(ctx context.Context, to, code string) error

	// SendApplicationStatus notifies a candidate that the status of one of
	// their applications changed.
	SendApplicationStatus(ctx context.Context, to, jobTitle, status string) error
}

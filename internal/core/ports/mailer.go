package ports

// Mailer abstracts the transactional mail provider. Send failures never roll
// back database state; callers treat delivery as best effort.
type Mailer interface {
	Send(to, subject, body string) error
}

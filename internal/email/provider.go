package email

// Message is an outbound email.
type Message struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// Provider sends transactional emails.
type Provider interface {
	Send(msg *Message) error

	// SendResetCode mails the password reset code with its validity
	// window.
	SendResetCode(to, code string, validMinutes int) error

	// SendWelcome greets a freshly registered account.
	SendWelcome(to, displayName string) error

	// SendCompanyVerified notifies a company of approved verification.
	SendCompanyVerified(to, companyName string) error
}

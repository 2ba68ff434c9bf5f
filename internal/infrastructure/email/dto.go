package email

// VerifiedEmailData fills the "you have been verified" notification.
type VerifiedEmailData struct {
	Email    string
	FullName string
}

type EmailRequest struct {
	To      []string
	Subject string
	Body    string // HTML or plain text
	IsHTML  bool
}

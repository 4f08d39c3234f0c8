package contact

import (
	"context"
	"net/url"
	"strings"

	"portfolio/pkg/utils"
)

// Mailto hands the message to the visitor's mail client.
type Mailto struct {
	Recipient string
}

func (m *Mailto) Mode() string { return utils.ContactModeMailto }

func (m *Mailto) Deliver(_ context.Context, p Payload) (Outcome, error) {
	return Outcome{Status: StatusHandedOff, HandoffURI: MailtoURI(m.Recipient, p)}, nil
}

// MailtoURI builds mailto:recipient?subject=...&body=... with the body laid
// out as Name, Email, then the message.
func MailtoURI(recipient string, p Payload) string {
	body := "Name: " + p.FromName + "\nEmail: " + p.FromEmail + "\n\nMessage:\n" + p.Message
	return "mailto:" + recipient + "?subject=" + encodeComponent(p.Subject) + "&body=" + encodeComponent(body)
}

// encodeComponent percent-encodes like a URI component: spaces become %20,
// not +.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

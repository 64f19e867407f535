package notify

import (
	"bytes"
	"context"
	"fmt"
	htmltemplate "html/template"
	"mime"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/guestbook-api/internal/config"
)

const dateLayout = "2 January 2006 15:04"

var htmlBody = htmltemplate.Must(htmltemplate.New("html").Parse(`<!DOCTYPE html>
<html>
  <head><meta charset="utf-8"></head>
  <body style="font-family: sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <div style="background: linear-gradient(to right, #ec4899, #8b5cf6); color: white; padding: 30px; border-radius: 10px 10px 0 0; text-align: center;">
      <h1 style="margin: 0; font-size: 24px;">New Guestbook Entry</h1>
    </div>
    <div style="background: #f9fafb; padding: 30px; border: 1px solid #e5e7eb; border-top: none; border-radius: 0 0 10px 10px;">
      <p>A new entry has been added to your guestbook!</p>
      <div style="background: white; padding: 20px; border-radius: 8px;">
        <div style="font-weight: 600; color: #8b5cf6;">From: {{.Name}}</div>
        <div style="color: #4b5563; white-space: pre-wrap; word-wrap: break-word;">{{.Message}}</div>
        <div style="color: #9ca3af; font-size: 14px; margin-top: 15px;">{{.Date}}</div>
      </div>
    </div>
    <p style="text-align: center; color: #9ca3af; font-size: 14px;">This is an automated notification from your guestbook.</p>
  </body>
</html>
`))

var textBody = texttemplate.Must(texttemplate.New("text").Parse(`New Guestbook Entry

From: {{.Name}}
Date: {{.Date}}

Message:
{{.Message}}

---
This is an automated notification from your guestbook.
`))

// SendMailFunc matches smtp.SendMail
type SendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPNotifier emails new entries to the guestbook owner
type SMTPNotifier struct {
	host     string
	port     string
	username string
	password string
	from     string
	to       []string
	send     SendMailFunc
}

// NewSMTPNotifier creates an SMTP notifier from configuration
func NewSMTPNotifier(cfg config.NotifyConfig) *SMTPNotifier {
	var to []string
	for _, addr := range strings.Split(cfg.To, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			to = append(to, addr)
		}
	}

	return &SMTPNotifier{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     cfg.From,
		to:       to,
		send:     smtp.SendMail,
	}
}

// WithSendMail replaces the transport, for tests
func (n *SMTPNotifier) WithSendMail(send SendMailFunc) *SMTPNotifier {
	n.send = send
	return n
}

// NotifyNewEntry sends the notification email.
// smtp.SendMail has no context support; ctx is only checked before sending.
func (n *SMTPNotifier) NotifyNewEntry(ctx context.Context, entry NewEntry) error {
	if n.host == "" || n.from == "" || len(n.to) == 0 {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := n.buildMessage(entry)
	if err != nil {
		return fmt.Errorf("failed to build email: %w", err)
	}

	var auth smtp.Auth
	if n.username != "" {
		auth = smtp.PlainAuth("", n.username, n.password, n.host)
	}

	if err := n.send(net.JoinHostPort(n.host, n.port), auth, n.from, n.to, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (n *SMTPNotifier) buildMessage(entry NewEntry) ([]byte, error) {
	data := struct {
		Name    string
		Message string
		Date    string
	}{
		Name:    entry.Name,
		Message: entry.Message,
		Date:    entry.CreatedAt.UTC().Format(dateLayout) + " UTC",
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", n.from)
	fmt.Fprintf(&buf, "To: %s\r\n", strings.Join(n.to, ", "))
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject(entry.Name))
	fmt.Fprintf(&buf, "Date: %s\r\n", time.Now().UTC().Format(time.RFC1123Z))
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", mw.Boundary())

	textPart, err := mw.CreatePart(textproto.MIMEHeader{"Content-Type": {"text/plain; charset=utf-8"}})
	if err != nil {
		return nil, err
	}
	if err := textBody.Execute(textPart, data); err != nil {
		return nil, err
	}

	htmlPart, err := mw.CreatePart(textproto.MIMEHeader{"Content-Type": {"text/html; charset=utf-8"}})
	if err != nil {
		return nil, err
	}
	if err := htmlBody.Execute(htmlPart, data); err != nil {
		return nil, err
	}

	if err := mw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// subject strips line breaks so a name cannot inject headers, and
// RFC 2047 encodes the result when it is not plain ASCII.
func subject(name string) string {
	name = strings.NewReplacer("\r", " ", "\n", " ").Replace(name)
	return mime.QEncoding.Encode("utf-8", "New Guestbook Entry from "+name)
}

package email

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"net/url"
	texttemplate "text/template"
)

// PasswordResetData feeds the password reset message.
type PasswordResetData struct {
	FullName      string
	Email         string
	ResetURL      string // frontend page; email and token are appended as query params
	Token         string
	ExpiryMinutes int
}

// Link builds the reset link the user clicks.
func (d PasswordResetData) Link() string {
	u, err := url.Parse(d.ResetURL)
	if err != nil {
		return d.ResetURL
	}
	q := u.Query()
	q.Set("email", d.Email)
	q.Set("token", d.Token)
	u.RawQuery = q.Encode()
	return u.String()
}

const resetText = `Halo {{.Name}},

Kami menerima permintaan untuk mengatur ulang password akun RoxyDental Anda.
Buka tautan berikut untuk membuat password baru:
{{.Link}}

Tautan ini berlaku selama {{.Expiry}} menit. Abaikan email ini jika Anda tidak meminta reset password.

Salam,
Tim RoxyDental`

const resetHTML = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #db2777;">Halo {{.Name}},</h2>
    <p>Kami menerima permintaan untuk mengatur ulang password akun RoxyDental Anda.</p>
    <p style="text-align: center; margin: 30px 0;">
        <a href="{{.Link}}" style="background-color: #db2777; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Reset Password</a>
    </p>
    <p style="color: #6b7280; font-size: 14px;">Tautan ini berlaku selama {{.Expiry}} menit. Abaikan email ini jika Anda tidak meminta reset password.</p>
    <p style="color: #6b7280; font-size: 14px; margin-top: 30px;">Salam,<br>Tim RoxyDental</p>
</body>
</html>`

var (
	resetTextTmpl = texttemplate.Must(texttemplate.New("reset.txt").Parse(resetText))
	resetHTMLTmpl = htmltemplate.Must(htmltemplate.New("reset.html").Parse(resetHTML))
)

// BuildPasswordResetEmail renders the reset message in Indonesian.
func BuildPasswordResetEmail(data PasswordResetData) (Message, error) {
	name := data.FullName
	if name == "" {
		name = data.Email
	}
	expiry := data.ExpiryMinutes
	if expiry <= 0 {
		expiry = 30
	}
	view := struct {
		Name   string
		Link   string
		Expiry int
	}{name, data.Link(), expiry}

	var text, html bytes.Buffer
	if err := resetTextTmpl.Execute(&text, view); err != nil {
		return Message{}, fmt.Errorf("render reset text: %w", err)
	}
	if err := resetHTMLTmpl.Execute(&html, view); err != nil {
		return Message{}, fmt.Errorf("render reset html: %w", err)
	}

	return Message{
		To:       []string{data.Email},
		Subject:  "Reset Password RoxyDental",
		TextBody: text.String(),
		HTMLBody: html.String(),
	}, nil
}

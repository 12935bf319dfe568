// Package waitlist implements the waitlist capture endpoint and its mail delivery.
package waitlist

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"regexp"
	"strings"
	"time"
)

// Signup validation errors.
var (
	ErrEmailRequired = errors.New("email is required")
	ErrInvalidEmail  = errors.New("invalid email address")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Signup is the request body accepted by the endpoint.
type Signup struct {
	Email   string `json:"email"`
	Message string `json:"message,omitempty"`
}

// Validate checks the email field.
func (s Signup) Validate() error {
	if s.Email == "" {
		return ErrEmailRequired
	}
	if !emailPattern.MatchString(s.Email) {
		return ErrInvalidEmail
	}
	return nil
}

// Email is an outbound notification message.
type Email struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	HTML    string
}

const signupSubject = "New Waitlist Signup"

var signupTemplate = template.Must(template.New("signup").Funcs(template.FuncMap{
	"lines": func(s string) []string { return strings.Split(s, "\n") },
}).Parse(`
<h2>New Waitlist Signup</h2>
<p><strong>Email:</strong> {{.Email}}</p>
{{- if .Message}}
<p><strong>Message:</strong></p>
<p>{{range $i, $line := lines .Message}}{{if $i}}<br>{{end}}{{$line}}{{end}}</p>
{{- else}}
<p><em>No message provided</em></p>
{{- end}}
<hr>
<p><small>Submitted at: {{.SubmittedAt}}</small></p>
`))

// BuildEmail renders the notification sent to the team for a signup.
func BuildEmail(signup Signup, from, to string, submittedAt time.Time) (Email, error) {
	var body bytes.Buffer
	data := struct {
		Email       string
		Message     string
		SubmittedAt string
	}{
		Email:       signup.Email,
		Message:     signup.Message,
		SubmittedAt: submittedAt.UTC().Format(time.RFC3339),
	}
	if err := signupTemplate.Execute(&body, data); err != nil {
		return Email{}, fmt.Errorf("render signup email: %w", err)
	}

	return Email{
		From:    from,
		To:      to,
		ReplyTo: signup.Email,
		Subject: signupSubject,
		HTML:    body.String(),
	}, nil
}

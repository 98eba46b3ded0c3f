package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"strings"
)

var niceEmail = template.Must(template.New("email").Parse(`<div class="email" style="
    border: 1px solid black;
    padding: 20px;
    font-family: sans-serif;
    line-height: 2;
    font-size: 20px;
  ">
    <h2>Hello There!</h2>
    <p>{{.Intro}}</p>
    <p><a href="{{.Link}}">{{.LinkText}}</a></p>
    <p>😘, Sick Fits</p>
  </div>`))

// ResetLink builds <frontendURL>/reset?resetToken=<token>.
func ResetLink(frontendURL string, token string) string {
	return fmt.Sprintf("%s/reset?resetToken=%s", strings.TrimRight(frontendURL, "/"), url.QueryEscape(token))
}

// PasswordResetEmail renders the reset message for the given link.
func PasswordResetEmail(to string, subject string, link string) (Message, error) {
	var buf bytes.Buffer
	err := niceEmail.Execute(&buf, struct {
		Intro    string
		Link     string
		LinkText string
	}{
		Intro:    "Your Password Reset Token is here!",
		Link:     link,
		LinkText: "Click Here to Reset",
	})
	if err != nil {
		return Message{}, fmt.Errorf("render reset email: %w", err)
	}
	return Message{To: to, Subject: subject, HTML: buf.String()}, nil
}

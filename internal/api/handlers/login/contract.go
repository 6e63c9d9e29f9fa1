package login

import "net/http"

type AuthService interface {
	Authenticate(username, password string) error
	NewSessionCookie() *http.Cookie
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

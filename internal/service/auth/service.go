package auth

import (
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	// CookieName имя сессионной cookie админки
	CookieName = "auth-token"

	// sessionValue фиксированное значение сессионного токена.
	// Модель сессии намеренно минимальна: наличие cookie с этим значением
	// и есть вся сессия.
	sessionValue = "authenticated"
)

// Credential одна admin-пара из allow-list
type Credential struct {
	Username     string
	PasswordHash string // bcrypt
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Service проверяет админские учетные данные и управляет сессионной cookie
type Service struct {
	credentials []Credential
	sessionTTL  time.Duration
	secure      bool // Secure-флаг cookie, включается в production
	logger      Logger
}

// NewService создает новый экземпляр сервиса аутентификации
func NewService(credentials []Credential, sessionTTL time.Duration, secure bool, logger Logger) *Service {
	return &Service{
		credentials: credentials,
		sessionTTL:  sessionTTL,
		secure:      secure,
		logger:      logger,
	}
}

// Authenticate проверяет пару логин/пароль по allow-list.
// Ошибка не указывает, что именно неверно - логин или пароль.
func (s *Service) Authenticate(username, password string) error {
	for _, cred := range s.credentials {
		if cred.Username != username {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)) == nil {
			s.logger.Info("Authenticate: admin %q logged in", username)
			return nil
		}
	}

	s.logger.Warn("Authenticate: failed login attempt for %q", username)
	return ErrInvalidCredentials
}

// ValidateToken проверяет значение сессионного токена
func (s *Service) ValidateToken(token string) bool {
	return token == sessionValue
}

// NewSessionCookie возвращает cookie свежей админской сессии
func (s *Service) NewSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    sessionValue,
		Path:     "/",
		MaxAge:   int(s.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearSessionCookie возвращает cookie, удаляющую сессию
func (s *Service) ClearSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

package verification

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/barberbook/booking-service/internal/infra/cache"
)

// phoneRegexp международный формат: +<код страны><номер>
var phoneRegexp = regexp.MustCompile(`^\+[1-9]\d{0,3}\d{6,15}$`)

// session состояние одной верификации телефона, хранится в redis
// под ключом verify:{token} с TTL кода. Счетчик оставшихся попыток
// лежит отдельным ключом verify:{token}:attempts и списывается
// атомарным DECR
type session struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

// CustomerIdentity стабильная идентичность клиента по подтверждённому телефону
type CustomerIdentity struct {
	CustomerID string
	Phone      string
}

// Service управляет сессиями верификации телефона.
// Каждая сессия живёт независимо под своим token: параллельные
// верификации разных (и даже одного) телефонов не мешают друг другу.
type Service struct {
	redis       *redis.Client
	sender      SMSSender
	codeTTL     time.Duration
	maxAttempts int
	logger      Logger
}

// NewService создает новый экземпляр сервиса верификации
func NewService(redisClient *redis.Client, sender SMSSender, codeTTL time.Duration, maxAttempts int, logger Logger) *Service {
	return &Service{
		redis:       redisClient,
		sender:      sender,
		codeTTL:     codeTTL,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

// Start начинает верификацию телефона: генерирует 6-значный код,
// сохраняет сессию в redis и отправляет код по SMS.
// Возвращает token сессии для последующего Complete.
func (s *Service) Start(ctx context.Context, phone string) (string, error) {
	if !phoneRegexp.MatchString(phone) {
		return "", fmt.Errorf("%w: Start - phone %q", ErrInvalidPhone, phone)
	}

	code, err := generateCode()
	if err != nil {
		s.logger.Error("Start: failed to generate code: %v", err)
		return "", fmt.Errorf("%w: Start - generate code: %v", ErrInternal, err)
	}

	token := uuid.NewString()

	payload, err := json.Marshal(session{
		Phone: phone,
		Code:  code,
	})
	if err != nil {
		return "", fmt.Errorf("%w: Start - marshal session: %v", ErrInternal, err)
	}

	key := fmt.Sprintf(cache.KeyVerification, token)
	attemptsKey := fmt.Sprintf(cache.KeyVerificationAttempts, token)

	// Сессия и счетчик попыток живут ровно одинаково
	pipe := s.redis.TxPipeline()
	pipe.Set(ctx, key, payload, s.codeTTL)
	pipe.Set(ctx, attemptsKey, s.maxAttempts, s.codeTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.Error("Start: failed to store session: %v", err)
		return "", fmt.Errorf("%w: Start - store session: %v", ErrInternal, err)
	}

	body := fmt.Sprintf("Your BarberBook verification code: %s", code)
	if err := s.sender.Send(ctx, phone, body); err != nil {
		// Сессию подчищаем, чтобы не висел код, который никто не получил
		s.redis.Del(ctx, key, attemptsKey)
		s.logger.Error("Start: failed to send sms: %v", err)
		return "", fmt.Errorf("%w: Start - send sms: %v", ErrInternal, err)
	}

	s.logger.Info("Start: verification session %s created for phone %s", token, phone)
	return token, nil
}

// Complete завершает верификацию: сверяет код, списывает попытку
// при промахе и возвращает стабильную идентичность клиента при успехе.
func (s *Service) Complete(ctx context.Context, token, code string) (*CustomerIdentity, error) {
	key := fmt.Sprintf(cache.KeyVerification, token)
	attemptsKey := fmt.Sprintf(cache.KeyVerificationAttempts, token)

	raw, err := s.redis.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("%w: Complete - token %s", ErrSessionNotFound, token)
	}
	if err != nil {
		s.logger.Error("Complete: failed to load session: %v", err)
		return nil, fmt.Errorf("%w: Complete - load session: %v", ErrInternal, err)
	}

	var sess session
	if err := json.Unmarshal(raw, &sess); err != nil {
		// Битая сессия бесполезна, удаляем
		s.redis.Del(ctx, key, attemptsKey)
		return nil, fmt.Errorf("%w: Complete - corrupt session", ErrSessionNotFound)
	}

	if code != sess.Code {
		// DECR атомарен: параллельные промахи списывают ровно по одной
		// попытке каждый. TTL ключа при этом не продлевается
		remaining, derr := s.redis.Decr(ctx, attemptsKey).Result()
		if derr != nil {
			s.logger.Error("Complete: failed to burn attempt: %v", derr)
			return nil, fmt.Errorf("%w: Complete - burn attempt: %v", ErrInternal, derr)
		}

		if remaining <= 0 {
			s.redis.Del(ctx, key, attemptsKey)
			s.logger.Warn("Complete: attempts exhausted for session %s", token)
			return nil, fmt.Errorf("%w: Complete - session %s", ErrTooManyAttempts, token)
		}

		return nil, fmt.Errorf("%w: Complete - %d attempts left", ErrInvalidCode, remaining)
	}

	if err := s.redis.Del(ctx, key, attemptsKey).Err(); err != nil {
		s.logger.Warn("Complete: failed to delete session %s: %v", token, err)
	}

	customerID, err := s.customerID(ctx, sess.Phone)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Complete: phone %s verified, customer %s", sess.Phone, customerID)
	return &CustomerIdentity{
		CustomerID: customerID,
		Phone:      sess.Phone,
	}, nil
}

// customerID возвращает стабильный идентификатор клиента по телефону.
// Первый успешный Complete создает его, повторные возвращают тот же.
func (s *Service) customerID(ctx context.Context, phone string) (string, error) {
	key := fmt.Sprintf(cache.KeyCustomer, phone)

	// SetNX гарантирует один идентификатор на телефон даже при
	// одновременных верификациях
	candidate := uuid.NewString()
	if err := s.redis.SetNX(ctx, key, candidate, 0).Err(); err != nil {
		s.logger.Error("customerID: failed to store id: %v", err)
		return "", fmt.Errorf("%w: customerID - store: %v", ErrInternal, err)
	}

	id, err := s.redis.Get(ctx, key).Result()
	if err != nil {
		s.logger.Error("customerID: failed to load id: %v", err)
		return "", fmt.Errorf("%w: customerID - load: %v", ErrInternal, err)
	}

	return id, nil
}

// generateCode возвращает 6-значный код с ведущими нулями
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

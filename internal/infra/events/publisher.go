package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/barberbook/booking-service/internal/domain"
)

// Типы событий жизненного цикла записи
const (
	TypeAppointmentCreated       = "appointment.created"
	TypeAppointmentStatusChanged = "appointment.status_changed"
	TypeAppointmentDeleted       = "appointment.deleted"
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// AppointmentEvent событие об изменении записи, публикуется в Kafka
// для downstream-потребителей (уведомления, аналитика)
type AppointmentEvent struct {
	Type          string `json:"type"`
	AppointmentID int64  `json:"appointmentId"`
	Date          string `json:"date,omitempty"`
	Time          string `json:"time,omitempty"`
	Service       string `json:"service,omitempty"`
	Status        string `json:"status,omitempty"`
	OccurredAt    string `json:"occurredAt"`
}

// Publisher публикует события о записях в Kafka
type Publisher struct {
	writer *kafka.Writer
	log    Logger
}

// NewPublisher creates a kafka publisher for appointment events
func NewPublisher(brokers []string, topic string, log Logger) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
		},
		log: log,
	}
}

// AppointmentCreated publishes a creation event
func (p *Publisher) AppointmentCreated(ctx context.Context, appt *domain.Appointment) {
	p.publish(ctx, AppointmentEvent{
		Type:          TypeAppointmentCreated,
		AppointmentID: appt.ID,
		Date:          appt.Date.Format(domain.DateFormat),
		Time:          appt.Time.String(),
		Service:       string(appt.Service),
		Status:        string(appt.Status),
	})
}

// AppointmentStatusChanged publishes a status transition event
func (p *Publisher) AppointmentStatusChanged(ctx context.Context, id int64, status domain.AppointmentStatus) {
	p.publish(ctx, AppointmentEvent{
		Type:          TypeAppointmentStatusChanged,
		AppointmentID: id,
		Status:        string(status),
	})
}

// AppointmentDeleted publishes a deletion event
func (p *Publisher) AppointmentDeleted(ctx context.Context, id int64) {
	p.publish(ctx, AppointmentEvent{
		Type:          TypeAppointmentDeleted,
		AppointmentID: id,
	})
}

// publish сериализует и отправляет событие.
// Ошибка публикации не прерывает обработку запроса - только логируется.
func (p *Publisher) publish(ctx context.Context, event AppointmentEvent) {
	event.OccurredAt = time.Now().UTC().Format(time.RFC3339)

	value, err := json.Marshal(event)
	if err != nil {
		p.log.Error("events: marshal %s: %v", event.Type, err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.AppointmentID, 10)),
		Value: value,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Warn("events: publish %s for appointment id=%d failed: %v", event.Type, event.AppointmentID, err)
	}
}

// Close flushes and closes the underlying kafka writer
func (p *Publisher) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("events: close writer: %w", err)
	}
	return nil
}

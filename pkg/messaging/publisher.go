package messaging

import (
	"career_advisor_backend/internal/config"
	"career_advisor_backend/pkg/logger"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

const RoutingAssessmentCompleted = "assessment.completed"

// Publisher 向 topic exchange 投递 JSON 事件
type Publisher struct {
	conn     *amqp.Connection
	exchange string

	mu sync.Mutex
}

// NewPublisher 建立连接并声明 exchange
func NewPublisher(cfg config.MessagingConfig) (*Publisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("error connecting to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(
		cfg.Exchange, // name
		"topic",      // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,
	); err != nil {
		conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", cfg.Exchange, err)
	}

	logger.Log.Info("RabbitMQ publisher ready", zap.String("exchange", cfg.Exchange))
	return &Publisher{conn: conn, exchange: cfg.Exchange}, nil
}

// Publish 每次投递使用独立 channel，channel 不能跨 goroutine 共享
func (p *Publisher) Publish(routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	p.mu.Lock()
	ch, err := p.conn.Channel()
	p.mu.Unlock()
	if err != nil {
		return err
	}
	defer ch.Close()

	return ch.Publish(
		p.exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
}

func (p *Publisher) Close() error {
	if p == nil || p.conn == nil {
		return nil
	}
	return p.conn.Close()
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"eventhub-api/models"

	amqp "github.com/rabbitmq/amqp091-go"
)

// NotificationRoutingKey is the routing key every relayed notification is published with
const NotificationRoutingKey = "notification.created"

// NotificationEvent is the message body published for a stored notification
type NotificationEvent struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

func newNotificationEvent(notification models.Notification) NotificationEvent {
	return NotificationEvent{
		ID:        notification.ID,
		UserID:    notification.UserID,
		Username:  notification.User.Username,
		Email:     notification.User.Email,
		Title:     notification.Title,
		Body:      notification.Body,
		CreatedAt: notification.CreatedAt,
	}
}

// BrokerDispatcher publishes notifications to a RabbitMQ topic exchange
type BrokerDispatcher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	url      string
}

func NewBrokerDispatcher(rabbitMQURL, exchange string) (*BrokerDispatcher, error) {
	b := &BrokerDispatcher{exchange: exchange, url: rabbitMQURL}
	if err := b.connect(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *BrokerDispatcher) connect() error {
	conn, err := amqp.Dial(b.url)
	if err != nil {
		log.Printf("Failed to connect to RabbitMQ: %v", err)
		return err
	}

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("Failed to open channel: %v", err)
		conn.Close()
		return err
	}

	err = ch.ExchangeDeclare(
		b.exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.Printf("Failed to declare exchange: %v", err)
		ch.Close()
		conn.Close()
		return err
	}

	b.conn = conn
	b.channel = ch
	return nil
}

func (b *BrokerDispatcher) ensureConnection() error {
	if b.conn == nil || b.conn.IsClosed() || b.channel == nil || b.channel.IsClosed() {
		return b.connect()
	}
	return nil
}

func (b *BrokerDispatcher) Name() string {
	return "rabbitmq"
}

func (b *BrokerDispatcher) Dispatch(ctx context.Context, notification models.Notification) error {
	if err := b.ensureConnection(); err != nil {
		return err
	}

	body, err := json.Marshal(newNotificationEvent(notification))
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	err = b.channel.PublishWithContext(ctx,
		b.exchange,
		NotificationRoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    notification.ID,
			Timestamp:    notification.CreatedAt,
			Body:         body,
		},
	)
	if err != nil {
		log.Printf("Failed to publish notification %s: %v", notification.ID, err)
		return err
	}
	return nil
}

func (b *BrokerDispatcher) Close() error {
	if b.channel != nil {
		if err := b.channel.Close(); err != nil {
			log.Printf("Failed to close channel: %v", err)
			return err
		}
	}
	if b.conn != nil {
		if err := b.conn.Close(); err != nil {
			log.Printf("Failed to close connection: %v", err)
			return err
		}
	}
	return nil
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"
)

type eventPublisher interface {
	PublishEmail(ctx context.Context, to, subject, body string) error
}

type emailMessage struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type emailEventData struct {
	Message emailMessage `json:"message"`
}

// emailEvent is the envelope the downstream mailer consumes from the
// notifier queue.
type emailEvent struct {
	Pattern string         `json:"pattern"`
	Data    emailEventData `json:"data"`
}

// rabbitNotifier publishes one send_email event per demand, fire-and-forget.
// Each publish dials its own connection, so a broken broker loses only that
// demand's notification.
type rabbitNotifier struct {
	url    string
	queue  string
	logger *log.Logger
}

func newRabbitNotifier(url, queue string, logger *log.Logger) *rabbitNotifier {
	return &rabbitNotifier{url: url, queue: queue, logger: logger}
}

func rabbitURL(cfg config) string {
	if cfg.rabbitUser == "" {
		return fmt.Sprintf("amqp://%s:%d/", cfg.rabbitHost, cfg.rabbitPort)
	}
	return fmt.Sprintf("amqp://%s:%s@%s:%d/",
		url.QueryEscape(cfg.rabbitUser), url.QueryEscape(cfg.rabbitPassword),
		cfg.rabbitHost, cfg.rabbitPort)
}

func (n *rabbitNotifier) PublishEmail(ctx context.Context, to, subject, body string) error {
	conn, err := amqp.Dial(n.url)
	if err != nil {
		return fmt.Errorf("unable to connect with RabbitMQ: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(n.queue, false, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", n.queue, err)
	}

	payload, err := encodeEmailEvent(emailEvent{
		Pattern: "send_email",
		Data:    emailEventData{Message: emailMessage{To: to, Subject: subject, Body: body}},
	})
	if err != nil {
		return err
	}

	if err := ch.PublishWithContext(ctx, "", n.queue, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        payload,
	}); err != nil {
		return fmt.Errorf("publish to %s: %w", n.queue, err)
	}
	return nil
}

// encodeEmailEvent marshals without HTML escaping so the anchor tags and any
// non-ASCII text reach the mailer verbatim.
func encodeEmailEvent(ev emailEvent) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(ev); err != nil {
		return nil, fmt.Errorf("encode event: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// notificationBody builds the HTML fragment with one download link per
// artifact. The base URL is expected to end with a slash.
func notificationBody(baseURL string, fileNames []string) string {
	links := make([]string, 0, len(fileNames))
	for _, name := range fileNames {
		links = append(links, fmt.Sprintf("<a href='%s%s'>%s</a>", baseURL, name, name))
	}
	return "A demanda fechou e você pode baixar o consolidado de pedidos pelo link: " +
		strings.Join(links, " ")
}

package services

// Notification event types published to the message broker.
const (
	EventContactReceived = "contact.received"
	EventPasswordReset   = "auth.password_reset"
)

// EventPublisher publishes notification events for downstream consumers
// (the mail sender, audit log, ...). Implemented by rabbitmq.Client; a nil
// publisher disables publication.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

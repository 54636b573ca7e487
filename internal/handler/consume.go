package handler

import (
	"context"
	"encoding/json"

	"github.com/Astemirdum/circulation-service/pkg/kafka"
	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

type saveEvent func(ctx context.Context, event kafka.EventCirculation) error

// Consumer drains the circulation topic into the audit table.
type Consumer struct {
	saveEventHandler saveEvent
	log              *zap.Logger
	ready            chan bool
}

func NewConsumer(saveEvent saveEvent, log *zap.Logger) *Consumer {
	return &Consumer{
		saveEventHandler: saveEvent,
		log:              log.Named("consumer"),
		ready:            make(chan bool),
	}
}

func (consumer *Consumer) Setup(sarama.ConsumerGroupSession) error {
	close(consumer.ready)
	return nil
}

// Cleanup is run at the end of a session, once all ConsumeClaim goroutines have exited.
func (consumer *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (consumer *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				consumer.log.Warn("message channel was closed")
				return nil
			}
			var event kafka.EventCirculation
			if err := json.Unmarshal(message.Value, &event); err != nil {
				consumer.log.Error("unmarshal event", zap.Error(err))
				session.MarkMessage(message, "")
				continue
			}

			if err := consumer.saveEventHandler(context.Background(), event); err != nil {
				consumer.log.Error("consumer.saveEventHandler", zap.Error(err))
				continue
			}

			consumer.log.Debug("message claimed",
				zap.String("type", event.Type),
				zap.Time("timestamp", message.Timestamp),
				zap.String("topic", message.Topic))
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}

package kafka

import (
	"context"
	"time"

	"github.com/IBM/sarama"
)

const (
	CirculationTopic   = `circulation-events`
	StatsConsumerGroup = `circulation-stats`
)

type Config struct {
	Addrs []string `envconfig:"KAFKA_ADDRS" default:"localhost:9092"`
}

// EventCirculation is the audit payload published after every committed
// circulation operation.
type EventCirculation struct {
	Type           string    `json:"type"`
	MemberID       int       `json:"memberId,omitempty"`
	BookID         int       `json:"bookId,omitempty"`
	Barcode        string    `json:"barcode,omitempty"`
	LoanUID        string    `json:"loanUid,omitempty"`
	ReservationUID string    `json:"reservationUid,omitempty"`
	Amount         float64   `json:"amount,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}

func NewConsumer(cfg Config, group string) (sarama.ConsumerGroup, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	defaultCfg.Consumer.Offsets.Initial = sarama.OffsetOldest

	return sarama.NewConsumerGroup(cfg.Addrs, group, defaultCfg)
}

// Consume drives the consumer group loop until ctx is cancelled.
func Consume(ctx context.Context, consumer sarama.ConsumerGroup, handler sarama.ConsumerGroupHandler, topics ...string) {
	for {
		if err := consumer.Consume(ctx, topics, handler); err != nil {
			return
		}
		if ctx.Err() != nil {
			return
		}
	}
}

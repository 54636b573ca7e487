package service

import (
	"encoding/json"
	"time"

	"github.com/Astemirdum/circulation-service/pkg/breaker"
	"github.com/Astemirdum/circulation-service/pkg/kafka"
	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

// event types published after committed circulation operations.
const (
	eventLoanIssued           = "loan.issued"
	eventLoanReturned         = "loan.returned"
	eventLoanRenewed          = "loan.renewed"
	eventLoanLost             = "loan.lost"
	eventFineAssessed         = "fine.assessed"
	eventFinePaid             = "fine.paid"
	eventMemberBlocked        = "member.blocked"
	eventReservationCreated   = "reservation.created"
	eventReservationFulfilled = "reservation.fulfilled"
	eventReservationCancelled = "reservation.cancelled"
	eventReservationExpired   = "reservation.expired"
)

// publisher ships audit events to the circulation topic. Publishing is
// fire-and-forget behind a circuit breaker: a broker outage degrades the
// audit trail, never the desk operation that already committed.
type publisher struct {
	producer sarama.SyncProducer
	cb       breaker.CircuitBreaker
	log      *zap.Logger
}

func newPublisher(producer sarama.SyncProducer, log *zap.Logger) *publisher {
	return &publisher{
		producer: producer,
		cb:       breaker.New(10, 15*time.Second, 0.8, 2),
		log:      log.Named("events"),
	}
}

func (p *publisher) publish(events ...kafka.EventCirculation) {
	if p.producer == nil {
		return
	}
	for _, event := range events {
		data, err := json.Marshal(event)
		if err != nil {
			p.log.Error("marshal event", zap.String("type", event.Type), zap.Error(err))
			continue
		}
		err = p.cb.Call(func() error {
			_, _, sendErr := p.producer.SendMessage(&sarama.ProducerMessage{
				Topic: kafka.CirculationTopic,
				Value: sarama.ByteEncoder(data),
			})
			return sendErr
		})
		if err != nil {
			p.log.Warn("publish event", zap.String("type", event.Type), zap.Error(err))
		}
	}
}

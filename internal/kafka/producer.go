package kafka

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"guestlist/internal/logger"
	"guestlist/internal/models"
)

// Producer streams ticket lifecycle records to the audit topic. Audit writes
// are best-effort: a broker failure is logged, never surfaced to the request.
type Producer struct {
	Writer *kafka.Writer
	Logger *logger.Logger
}

func NewProducer(brokers []string, topic string, log *logger.Logger) *Producer {
	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers: brokers,
		Topic:   topic,
	})
	return &Producer{Writer: writer, Logger: log}
}

type auditRecord struct {
	Action   string         `json:"action"`
	Ticket   *models.Ticket `json:"ticket"`
	Recorded time.Time      `json:"recorded"`
}

func (p *Producer) publish(ctx context.Context, action string, ticket *models.Ticket) {
	msgBytes, err := json.Marshal(auditRecord{
		Action:   action,
		Ticket:   ticket,
		Recorded: time.Now().UTC(),
	})
	if err != nil {
		p.Logger.Error("KAFKA", "marshal audit record: "+err.Error())
		return
	}

	err = p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(ticket.ID, 10)),
		Value: msgBytes,
	})
	if err != nil {
		p.Logger.Error("KAFKA", "publish "+action+": "+err.Error())
		return
	}
	p.Logger.Info("KAFKA", "published "+action+" for ticket "+strconv.FormatInt(ticket.ID, 10))
}

func (p *Producer) TicketIssued(ctx context.Context, ticket *models.Ticket) {
	p.publish(ctx, "ticket_issued", ticket)
}

func (p *Producer) TicketUpdated(ctx context.Context, ticket *models.Ticket) {
	p.publish(ctx, "ticket_updated", ticket)
}

func (p *Producer) TicketDeleted(ctx context.Context, ticket *models.Ticket) {
	p.publish(ctx, "ticket_deleted", ticket)
}

func (p *Producer) Close() error {
	return p.Writer.Close()
}

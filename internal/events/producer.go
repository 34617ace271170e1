package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inventree/pos-service/internal/domain"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const saleEventsTopic = "sale-events"

type KafkaProducer struct {
	writer *kafka.Writer
	logger *zap.Logger
}

func NewKafkaProducer(brokers string, logger *zap.Logger) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokerAddresses(brokers)...),
		Topic:        saleEventsTopic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}

	return &KafkaProducer{
		writer: writer,
		logger: logger,
	}
}

// brokerAddresses parses a comma-separated broker list.
func brokerAddresses(brokers string) []string {
	parts := strings.Split(brokers, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if addr := strings.TrimSpace(part); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

func (p *KafkaProducer) PublishSaleCompleted(sale *domain.Sale) error {
	event := SaleCompletedEvent{
		EventID:       uuid.NewString(),
		SaleID:        sale.SaleID,
		Subtotal:      sale.Subtotal,
		Tax:           sale.Tax,
		Total:         sale.Total,
		PaymentMethod: sale.PaymentMethod,
		Items:         make([]SaleItemSold, 0, len(sale.Items)),
		CreatedBy:     sale.CreatedBy,
		Timestamp:     sale.CreatedAt,
	}
	for _, item := range sale.Items {
		event.Items = append(event.Items, SaleItemSold{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
		})
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal event", zap.Error(err))
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.SaleID),
		Value: eventBytes,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish message",
			zap.String("event_id", event.EventID),
			zap.Error(err))
		return err
	}

	p.logger.Info("Event published successfully",
		zap.String("event_id", event.EventID),
		zap.String("sale_id", event.SaleID))

	return nil
}

func (p *KafkaProducer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/asquebay/star-burger-service/internal/model"
	"github.com/asquebay/star-burger-service/internal/service"

	"github.com/segmentio/kafka-go"
)

// OrderCreator — это интерфейс, который абстрагирует консьюмер
// от конкретной реализации сервисного слоя
type OrderCreator interface {
	CreateOrder(ctx context.Context, payload model.OrderPayload) (model.Order, error)
}

// Consumer читает входящие заказы из топика Kafka
// это второй канал приёма заказов, рядом с HTTP API
type Consumer struct {
	reader  *kafka.Reader
	service OrderCreator
	log     *slog.Logger
}

// NewConsumer создает новый экземпляр консьюмера
func NewConsumer(brokers []string, topic, groupID string, service OrderCreator, log *slog.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		GroupID: groupID,
		Topic:   topic,
	})

	return &Consumer{
		reader:  reader,
		service: service,
		log:     log,
	}
}

// Run запускает цикл чтения сообщений из Kafka
// эта функция блокирующая, поэтому она запускается в отдельной горутине
func (c *Consumer) Run(ctx context.Context) {
	log := c.log.With(slog.String("component", "kafka_consumer"))
	log.Info("Kafka consumer started")

	for {
		// проверка на отмену контекста
		select {
		case <-ctx.Done():
			log.Info("Context cancelled, stopping consumer.")
			return
		default:
			// FetchMessage блокирует до тех пор, пока не придет новое сообщение или не возникнет ошибка
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				// если контекст был отменен во время ожидания, это нормальное завершение
				if errors.Is(err, context.Canceled) {
					return
				}
				// если ридер был закрыт, тоже выходим
				if errors.Is(err, io.EOF) {
					log.Info("Kafka reader closed")
					return
				}
				log.Error("failed to fetch message", slog.String("error", err.Error()))
				continue // пробуем снова
			}

			log.Info("received message", slog.String("topic", msg.Topic), slog.Int("partition", msg.Partition), slog.Int64("offset", msg.Offset))

			// 1. Пытаемся обработать
			if err := c.handleMessage(ctx, msg); err != nil {
				log.Error("failed to handle message", slog.String("error", err.Error()))
				// сообщение НЕ подтверждаем — пусть Kafka отдаст его снова
				continue
			}

			// 2. Всё прошло — фиксируем offset
			// это важно делать ПОСЛЕ успешной обработки,
			// иначе сбой между фиксацией и записью потеряет заказ
			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				log.Error("failed to commit message", slog.String("error", err.Error()))
			}
		}
	}
}

// handleMessage парсит и обрабатывает одно входящее сообщение с заказом
func (c *Consumer) handleMessage(ctx context.Context, msg kafka.Message) error {
	var payload model.OrderPayload

	// распарсим JSON
	if err := json.Unmarshal(msg.Value, &payload); err != nil {
		// сообщение невалидно — логируем и пропускаем,
		// перечитывать его бессмысленно
		c.log.Warn("failed to unmarshal message, skipping", slog.String("error", err.Error()))
		return nil
	}

	order, err := c.service.CreateOrder(ctx, payload)
	if err != nil {
		// ошибки валидации и недоступные товары не лечатся перечитыванием,
		// такие сообщения пропускаем
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) || errors.Is(err, service.ErrProductUnavailable) {
			c.log.Warn("order payload rejected, skipping", slog.String("error", err.Error()))
			return nil
		}
		// инфраструктурная ошибка — возвращаем её, offset не зафиксируется
		// и Kafka отдаст сообщение снова
		c.log.Error("failed to create order from message", slog.String("error", err.Error()))
		return err
	}

	c.log.Info("order successfully processed", slog.Int64("order_id", order.ID))
	return nil
}

// graceful shutdown консьюмера
func (c *Consumer) Close() error {
	c.log.Info("Closing kafka consumer")
	return c.reader.Close()
}

// этот код не зависит от приложения,
// и нужен только для ручной проверки приёма заказов через кафку
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/segmentio/kafka-go"
)

func main() {
	// конфигурация из config.yaml
	brokerAddress := "localhost:9092"
	topic := "orders"

	// JSON-сообщение с заказом в формате API витрины
	message := `{
           "products": [
               { "product": 1, "quantity": 2 },
               { "product": 3, "quantity": 1 }
           ],
           "firstname": "Иван",
           "lastname": "Иванов",
           "phonenumber": "+79991234567",
           "address": "Москва, ул. Мира, 15",
           "comment": "позвонить за час",
           "payment": "cash"
       }`

	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokerAddress),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	defer writer.Close()

	err := writer.WriteMessages(context.Background(), kafka.Message{
		Value: []byte(message),
	})
	if err != nil {
		log.Fatalf("failed to write message: %v", err)
	}

	fmt.Println("order message sent to topic", topic)
}

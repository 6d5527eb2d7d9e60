package pos

import (
	"encoding/json"
	"time"
)

const (
	EventTransactionCompleted = "TransactionCompleted"
)

type Envelope struct {
	EventID       string          `json:"event_id"`      // uuid
	EventType     string          `json:"event_type"`    // salah satu const di atas
	EventVersion  int             `json:"event_version"` // 1
	OccurredAt    time.Time       `json:"occurred_at"`   // RFC3339
	Producer      string          `json:"producer"`      // e.g., "pos-api"
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // biasanya transaction_id
	Payload       json.RawMessage `json:"payload"`
}

type SoldItem struct {
	ProductID   string `json:"product_id"`
	Qty         int    `json:"qty"`
	PriceAtTime int    `json:"price_at_time"`
}

type TransactionCompletedPayload struct {
	TransactionID string     `json:"transaction_id"`
	TotalPrice    int        `json:"total_price"`
	PaymentMethod string     `json:"payment_method"`
	Items         []SoldItem `json:"items"`
}

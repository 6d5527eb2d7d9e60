package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/ariefcatur/go-pos.git/internal/kafka"
	"github.com/ariefcatur/go-pos.git/internal/pos"
	"github.com/ariefcatur/go-pos.git/internal/redisx"
)

// Service melipat event TransactionCompleted jadi ringkasan pendapatan
// berjalan di Redis (hash report:revenue).
type Service struct {
	Redis       *redis.Client
	ServiceName string
}

type Summary struct {
	TotalRevenue      int            `json:"total_revenue"`
	TotalTransactions int            `json:"total_transactions"`
	ByPaymentMethod   map[string]int `json:"by_payment_method"`
}

// increment = satu field hash + delta. Dipisah supaya logika lipatannya
// bisa dites tanpa Redis.
type increment struct {
	field string
	delta int
}

func fold(p pos.TransactionCompletedPayload) []increment {
	return []increment{
		{field: "total_revenue", delta: p.TotalPrice},
		{field: "total_transactions", delta: 1},
		{field: "method:" + p.PaymentMethod, delta: 1},
	}
}

// HandleTransactionCompleted: dipasang sebagai handler consumer.
func (s *Service) HandleTransactionCompleted(ctx context.Context, m kafkago.Message) error {
	var env pos.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != pos.EventTransactionCompleted {
		return nil
	} // ignore

	// dedup via Redis (pakai event_id) supaya redelivery tidak dobel hitung
	dkey := fmt.Sprintf(redisx.KeyDedup, s.ServiceName, env.EventID)
	exists, _ := redisx.Exists(ctx, s.Redis, dkey)
	if exists {
		return nil
	}

	p, err := kafkax.UnwrapPayload[pos.TransactionCompletedPayload](env.Payload)
	if err != nil {
		return err
	}

	for _, inc := range fold(p) {
		if err := s.Redis.HIncrBy(ctx, redisx.KeyRevenueSummary, inc.field, int64(inc.delta)).Err(); err != nil {
			return err
		}
	}
	return s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()
}

// Read side untuk GET /reports/summary.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	fields, err := s.Redis.HGetAll(ctx, redisx.KeyRevenueSummary).Result()
	if err != nil {
		return Summary{}, err
	}
	out := Summary{ByPaymentMethod: map[string]int{}}
	for k, v := range fields {
		n, _ := strconv.Atoi(v)
		switch {
		case k == "total_revenue":
			out.TotalRevenue = n
		case k == "total_transactions":
			out.TotalTransactions = n
		case strings.HasPrefix(k, "method:"):
			out.ByPaymentMethod[strings.TrimPrefix(k, "method:")] = n
		}
	}
	return out, nil
}

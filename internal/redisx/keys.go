package redisx

import "time"

const (
	// Idempotency checkout: idem:checkout:{external_id} -> transaction_id
	KeyIdemCheckout = "idem:checkout:%s"

	// Cache katalog produk (JSON array): cache:products
	KeyProductCache = "cache:products"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"

	// Ringkasan pendapatan (hash): report:revenue
	KeyRevenueSummary = "report:revenue"
)

var (
	TTLIdempotency  = 24 * time.Hour
	TTLProductCache = 1 * time.Minute
	TTLDedup        = 48 * time.Hour
)

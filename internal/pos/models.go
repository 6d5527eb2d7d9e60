package pos

import "time"

type Product struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Price      int       `json:"price"`
	Stock      int       `json:"stock"`
	ImageURL   string    `json:"image_url,omitempty"`
	CategoryID string    `json:"category_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CartItem = snapshot produk saat masuk keranjang + qty.
// Stock di sini adalah stok yang tercatat waktu item ditambahkan,
// dipakai sebagai plafon qty (lihat cart.go).
type CartItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int    `json:"price"`
	Stock     int    `json:"stock"`
	Qty       int    `json:"qty"`
}

func (it CartItem) Subtotal() int { return it.Price * it.Qty }

type Transaction struct {
	ID            string        `json:"id"`
	ExternalID    string        `json:"external_id,omitempty"`
	TotalPrice    int           `json:"total_price"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	CreatedAt     time.Time     `json:"created_at"`
}

type TransactionItem struct {
	TransactionID string `json:"transaction_id"`
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name,omitempty"`
	Quantity      int    `json:"quantity"`
	PriceAtTime   int    `json:"price_at_time"`
}

// TransactionRecord = satu transaksi + line items, untuk halaman riwayat.
type TransactionRecord struct {
	Transaction
	Items []TransactionItem `json:"items"`
}

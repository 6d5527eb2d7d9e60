package pos

import (
	"context"
	"fmt"
)

// transactionItems: line items satu transaksi + nama produk.
func (r *Repo) transactionItems(ctx context.Context, transactionID string) ([]TransactionItem, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT ti.transaction_id, ti.product_id, COALESCE(p.name,''), ti.quantity, ti.price_at_time
		FROM transaction_items ti
		LEFT JOIN products p ON p.id = ti.product_id
		WHERE ti.transaction_id=$1`, transactionID)
	if err != nil {
		return nil, unavailable("list transaction items", err)
	}
	defer rows.Close()

	var out []TransactionItem
	for rows.Next() {
		var it TransactionItem
		if err := rows.Scan(&it.TransactionID, &it.ProductID, &it.ProductName, &it.Quantity, &it.PriceAtTime); err != nil {
			return nil, unavailable("scan transaction item", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// ListTransactions: riwayat terbaru dulu, beserta line items + nama produk.
// limit <= 0 dianggap 50.
func (r *Repo) ListTransactions(ctx context.Context, limit int) ([]TransactionRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.DB.Query(ctx, `SELECT id, COALESCE(external_id,''), total_price, payment_method, created_at
	                              FROM transactions ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, unavailable("list transactions", err)
	}
	defer rows.Close()

	var recs []TransactionRecord
	byID := map[string]int{} // transaction_id -> index di recs
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.ExternalID, &t.TotalPrice, &t.PaymentMethod, &t.CreatedAt); err != nil {
			return nil, unavailable("scan transaction", err)
		}
		byID[t.ID] = len(recs)
		recs = append(recs, TransactionRecord{Transaction: t})
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list transactions", err)
	}
	if len(recs) == 0 {
		return recs, nil
	}

	// satu query IN untuk semua item, join nama produk
	ids := make([]any, 0, len(recs))
	params := ""
	for i, rec := range recs {
		if i > 0 {
			params += ","
		}
		params += fmt.Sprintf("$%d", i+1)
		ids = append(ids, rec.ID)
	}
	itemRows, err := r.DB.Query(ctx, `
		SELECT ti.transaction_id, ti.product_id, COALESCE(p.name,''), ti.quantity, ti.price_at_time
		FROM transaction_items ti
		LEFT JOIN products p ON p.id = ti.product_id
		WHERE ti.transaction_id IN (`+params+`)`, ids...)
	if err != nil {
		return nil, unavailable("list transaction items", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var it TransactionItem
		if err := itemRows.Scan(&it.TransactionID, &it.ProductID, &it.ProductName, &it.Quantity, &it.PriceAtTime); err != nil {
			return nil, unavailable("scan transaction item", err)
		}
		if idx, ok := byID[it.TransactionID]; ok {
			recs[idx].Items = append(recs[idx].Items, it)
		}
	}
	return recs, itemRows.Err()
}

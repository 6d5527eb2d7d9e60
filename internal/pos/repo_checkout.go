package pos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CheckoutTx: idempotent via external_id (opsional).
// - jika external_id sudah ada -> return transaksi existing beserta line
//   items tersimpannya (existed=true).
// - insert transaksi + transaction_items + potong stok dalam SATU tx DB;
//   kalau ada stok kurang, tidak ada perubahan yang di-commit.
//
// price_at_time & total diambil dari harga produk saat ini di DB (baris
// di-lock FOR UPDATE), bukan dari snapshot keranjang. Line items yang
// dikembalikan memakai harga yang sama dengan yang di-commit, jadi struk
// dan event selalu cocok dengan record transaksinya.
func (r *Repo) CheckoutTx(ctx context.Context, externalID string, items []CartItem, method PaymentMethod) (rec TransactionRecord, existed bool, err error) {
	if len(items) == 0 {
		return TransactionRecord{}, false, Validationf("cart is empty")
	}
	if !method.Valid() {
		return TransactionRecord{}, false, Validationf("unknown payment method %q", method)
	}

	// cek existing by external_id
	if externalID != "" {
		row := r.DB.QueryRow(ctx, `SELECT id, total_price, payment_method, created_at
		                           FROM transactions WHERE external_id=$1`, externalID)
		err = row.Scan(&rec.ID, &rec.TotalPrice, &rec.PaymentMethod, &rec.CreatedAt)
		if err == nil {
			rec.ExternalID = externalID
			rec.Items, err = r.transactionItems(ctx, rec.ID)
			if err != nil {
				return TransactionRecord{}, false, err
			}
			return rec, true, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return TransactionRecord{}, false, unavailable("lookup external_id", err)
		}
	}

	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return TransactionRecord{}, false, unavailable("begin checkout", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// lock stok per produk, kumpulkan harga & kekurangan
	type locked struct {
		price int
		stock int
	}
	byID := make(map[string]locked, len(items))
	var shortages []StockShortage
	total := 0
	for _, it := range items {
		if it.Qty <= 0 {
			return TransactionRecord{}, false, Validationf("invalid qty for product %s", it.ProductID)
		}
		var l locked
		err := tx.QueryRow(ctx, `SELECT price, stock FROM products WHERE id=$1 FOR UPDATE`, it.ProductID).
			Scan(&l.price, &l.stock)
		if errors.Is(err, pgx.ErrNoRows) {
			return TransactionRecord{}, false, Conflictf("product not found: %s", it.ProductID)
		}
		if err != nil {
			return TransactionRecord{}, false, unavailable("lock product", err)
		}
		if l.stock < it.Qty {
			shortages = append(shortages, StockShortage{
				ProductID: it.ProductID, Required: it.Qty, Available: l.stock,
			})
			continue
		}
		byID[it.ProductID] = l
		total += l.price * it.Qty
	}
	if len(shortages) > 0 {
		return TransactionRecord{}, false, &StockShortageError{Details: shortages} // rollback via defer
	}

	txnID := uuid.NewString()
	row := tx.QueryRow(ctx, `
		INSERT INTO transactions(id, external_id, total_price, payment_method)
		VALUES ($1, NULLIF($2,''), $3, $4)
		RETURNING created_at
	`, txnID, externalID, total, string(method))
	if err := row.Scan(&rec.CreatedAt); err != nil {
		return TransactionRecord{}, false, unavailable("insert transaction", err)
	}

	for _, it := range items {
		l := byID[it.ProductID]
		if _, err := tx.Exec(ctx, `
			INSERT INTO transaction_items(transaction_id, product_id, quantity, price_at_time)
			VALUES ($1, $2, $3, $4)`,
			txnID, it.ProductID, it.Qty, l.price,
		); err != nil {
			return TransactionRecord{}, false, unavailable("insert transaction item", err)
		}
		if _, err := tx.Exec(ctx, `UPDATE products SET stock = stock - $2, updated_at = now() WHERE id=$1`,
			it.ProductID, it.Qty); err != nil {
			return TransactionRecord{}, false, unavailable("decrement stock", err)
		}
		rec.Items = append(rec.Items, TransactionItem{
			TransactionID: txnID,
			ProductID:     it.ProductID,
			ProductName:   it.Name,
			Quantity:      it.Qty,
			PriceAtTime:   l.price,
		})
	}

	if err := tx.Commit(ctx); err != nil {
		return TransactionRecord{}, false, unavailable("commit checkout", err)
	}

	rec.ID = txnID
	rec.ExternalID = externalID
	rec.TotalPrice = total
	rec.PaymentMethod = method
	return rec, false, nil
}

package pos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB = subset *pgxpool.Pool yang dipakai repo; test pakai pgxmock.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type Repo struct{ DB DB }

func (r *Repo) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, name, price, stock,
	                                     COALESCE(image_url,''), COALESCE(category_id,''),
	                                     created_at, updated_at
	                              FROM products ORDER BY name ASC`)
	if err != nil {
		return nil, unavailable("list products", err)
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.ImageURL, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, unavailable("scan product", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list products", err)
	}
	return out, nil
}

func (r *Repo) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, name FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, unavailable("list categories", err)
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, unavailable("scan category", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repo) GetProduct(ctx context.Context, id string) (Product, error) {
	var p Product
	err := r.DB.QueryRow(ctx, `SELECT id, name, price, stock,
	                                  COALESCE(image_url,''), COALESCE(category_id,''),
	                                  created_at, updated_at
	                           FROM products WHERE id=$1`, id).
		Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.ImageURL, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, unavailable("get product", err)
	}
	return p, nil
}

// ProductInput = field yang boleh diisi dari form admin.
type ProductInput struct {
	Name       string
	Price      int
	Stock      int
	CategoryID string
	ImageURL   string // kosong = tanpa gambar (insert) / pertahankan lama (update)
}

func (in ProductInput) validate() error {
	if in.Name == "" {
		return Validationf("name is required")
	}
	if in.Price < 0 {
		return Validationf("price must not be negative")
	}
	if in.Stock < 0 {
		return Validationf("stock must not be negative")
	}
	if in.CategoryID == "" {
		return Validationf("category is required")
	}
	return nil
}

func (r *Repo) InsertProduct(ctx context.Context, in ProductInput) (string, error) {
	if err := in.validate(); err != nil {
		return "", err
	}
	id := uuid.NewString()
	_, err := r.DB.Exec(ctx, `
		INSERT INTO products(id, name, price, stock, image_url, category_id)
		VALUES ($1, $2, $3, $4, NULLIF($5,''), $6)
	`, id, in.Name, in.Price, in.Stock, in.ImageURL, in.CategoryID)
	if err != nil {
		return "", unavailable("insert product", err)
	}
	return id, nil
}

// UpdateProduct: image_url lama dipertahankan kalau input kosong
// (admin tidak upload gambar baru).
func (r *Repo) UpdateProduct(ctx context.Context, id string, in ProductInput) error {
	if err := in.validate(); err != nil {
		return err
	}
	ct, err := r.DB.Exec(ctx, `
		UPDATE products
		SET name=$2, price=$3, stock=$4, category_id=$5,
		    image_url=COALESCE(NULLIF($6,''), image_url),
		    updated_at=now()
		WHERE id=$1
	`, id, in.Name, in.Price, in.Stock, in.CategoryID, in.ImageURL)
	if err != nil {
		return unavailable("update product", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) CountTransactionItems(ctx context.Context, productID string) (int, error) {
	var n int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM transaction_items WHERE product_id=$1`, productID).Scan(&n)
	if err != nil {
		return 0, unavailable("count transaction items", err)
	}
	return n, nil
}

// DeleteProduct menolak hapus kalau produk sudah punya riwayat transaksi,
// supaya data laporan tidak rusak.
func (r *Repo) DeleteProduct(ctx context.Context, id string) error {
	n, err := r.CountTransactionItems(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return Conflictf("product has transaction history (%d items)", n)
	}
	ct, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return unavailable("delete product", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

package pos

import (
	"errors"
	"fmt"
)

// Jenis error tertutup. Semua kegagalan dari backend di-map ke salah satu
// dari ini supaya handler HTTP cukup cek errors.Is.
var (
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("backend unavailable")
)

func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func Conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// unavailable membungkus kegagalan transport/storage jadi ErrUnavailable.
func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
}

// StockShortage = detail kekurangan stok per produk saat checkout.
type StockShortage struct {
	ProductID string `json:"product_id"`
	Required  int    `json:"required"`
	Available int    `json:"available"`
}

// StockShortageError membawa detail shortage dan tetap cocok dengan
// errors.Is(err, ErrConflict).
type StockShortageError struct {
	Details []StockShortage
}

func (e *StockShortageError) Error() string {
	return fmt.Sprintf("insufficient stock for %d product(s)", len(e.Details))
}

func (e *StockShortageError) Unwrap() error { return ErrConflict }

// Package session memetakan sesi kasir (cookie) ke keranjangnya.
// Keranjang hidup di memori proses saja: tidak ada identitas durable,
// restart = keranjang kosong.
package session

import (
	"sync"

	"github.com/ariefcatur/go-pos.git/internal/pos"
)

type Store struct {
	mu    sync.Mutex
	carts map[string]*pos.Cart
}

func NewStore() *Store {
	return &Store{carts: make(map[string]*pos.Cart)}
}

// Cart mengembalikan keranjang sesi, dibuat on-demand.
// Lock hanya menjaga map-nya; mutasi isi cart adalah urusan satu sesi
// (satu penulis per keranjang).
func (s *Store) Cart(sessionID string) *pos.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[sessionID]
	if !ok {
		c = &pos.Cart{}
		s.carts[sessionID] = c
	}
	return c
}

// Drop membuang keranjang sesi (logout / sesi kedaluwarsa).
func (s *Store) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.carts)
}

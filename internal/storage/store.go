// Package storage menyimpan gambar produk di disk dan mengembalikan URL
// publiknya. Nama file = timestamp + ekstensi asli, jadi upload ulang
// tidak pernah menimpa gambar lama.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Store struct {
	Dir     string
	BaseURL string

	// now bisa di-override di test
	now func() time.Time
}

func New(dir, baseURL string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image dir: %w", err)
	}
	return &Store{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/"), now: time.Now}, nil
}

// Save menulis bytes gambar dan mengembalikan URL publiknya.
// suggestedName hanya dipakai untuk ekstensinya.
func (s *Store) Save(data []byte, suggestedName string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty image")
	}
	ext := filepath.Ext(suggestedName)
	name := fmt.Sprintf("%d%s", s.now().UnixMilli(), ext)
	if err := os.WriteFile(filepath.Join(s.Dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return s.BaseURL + "/" + name, nil
}

package pos

// Cart = keranjang belanja satu sesi kasir. Urutan item dipertahankan
// sesuai urutan produk pertama kali ditambahkan. Tidak ada persistensi:
// keranjang hilang bersama sesinya.
//
// Cart tidak punya lock sendiri; satu sesi = satu penulis (lihat
// internal/session untuk pemetaan sesi -> cart).
type Cart struct {
	items []CartItem
}

// Add menambah produk ke keranjang.
// - stok habis -> no-op
// - sudah ada di keranjang -> qty+1, tapi jangan melebihi stok tercatat
// - belum ada -> entri baru qty 1
func (c *Cart) Add(p Product) {
	if p.Stock <= 0 {
		return
	}
	for i := range c.items {
		if c.items[i].ProductID == p.ID {
			if c.items[i].Qty >= p.Stock {
				return
			}
			// refresh plafon stok dari katalog
			c.items[i].Stock = p.Stock
			c.items[i].Qty++
			return
		}
	}
	c.items = append(c.items, CartItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Stock:     p.Stock,
		Qty:       1,
	})
}

// UpdateQuantity menggeser qty item dengan delta (bisa negatif).
// - qty baru > stok tercatat -> ditolak, qty tetap
// - qty baru < 1 -> item dihapus dari keranjang
// ProductID yang tidak ada di keranjang = no-op, bukan error.
func (c *Cart) UpdateQuantity(productID string, delta int) {
	for i := range c.items {
		if c.items[i].ProductID != productID {
			continue
		}
		newQty := c.items[i].Qty + delta
		if newQty > c.items[i].Stock {
			return // jangan melebihi stok
		}
		if newQty < 1 {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
		c.items[i].Qty = newQty
		return
	}
}

// Remove menghapus item tanpa syarat; no-op kalau tidak ada.
func (c *Cart) Remove(productID string) {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Total dihitung ulang setiap kali dipanggil, tidak pernah di-cache.
func (c *Cart) Total() int {
	total := 0
	for _, it := range c.items {
		total += it.Price * it.Qty
	}
	return total
}

// Items mengembalikan salinan supaya caller tidak bisa mutasi diam-diam.
func (c *Cart) Items() []CartItem {
	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Len() int { return len(c.items) }

func (c *Cart) Empty() bool { return len(c.items) == 0 }

// Clear dipanggil tepat sekali setelah checkout sukses.
func (c *Cart) Clear() { c.items = nil }

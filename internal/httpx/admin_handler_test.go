package httpx_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/go-pos.git/internal/catalog"
	"github.com/ariefcatur/go-pos.git/internal/httpx"
	"github.com/ariefcatur/go-pos.git/internal/pos"
)

type mockAdminStore struct {
	inserted  []pos.ProductInput
	updated   map[string]pos.ProductInput
	deleteErr error
	deleted   []string
}

func (m *mockAdminStore) InsertProduct(ctx context.Context, in pos.ProductInput) (string, error) {
	if err := validateInput(in); err != nil {
		return "", err
	}
	m.inserted = append(m.inserted, in)
	return "prod-1", nil
}

func (m *mockAdminStore) UpdateProduct(ctx context.Context, id string, in pos.ProductInput) error {
	if err := validateInput(in); err != nil {
		return err
	}
	if m.updated == nil {
		m.updated = map[string]pos.ProductInput{}
	}
	m.updated[id] = in
	return nil
}

func (m *mockAdminStore) DeleteProduct(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, id)
	return nil
}

// validasi yang sama dengan repo asli: field wajib harus ada
func validateInput(in pos.ProductInput) error {
	if in.Name == "" || in.CategoryID == "" {
		return pos.Validationf("missing required field")
	}
	return nil
}

type mockImageStore struct {
	saved []string
}

func (m *mockImageStore) Save(data []byte, suggestedName string) (string, error) {
	m.saved = append(m.saved, suggestedName)
	return "http://localhost:8080/images/123.png", nil
}

func newAdminEnv(t *testing.T, store *mockAdminStore) (*httptest.Server, *mockImageStore) {
	t.Helper()
	rdb := deadRedis()
	t.Cleanup(func() { _ = rdb.Close() })

	images := &mockImageStore{}
	h := &httpx.AdminHandler{
		Store:   store,
		Images:  images,
		Catalog: &catalog.Cache{Redis: rdb, Source: katalog()},
	}
	router := httpx.NewRouter()
	h.Register(router)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, images
}

func productForm(t *testing.T, fields map[string]string, imageName string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if imageName != "" {
		fw, err := mw.CreateFormFile("image", imageName)
		require.NoError(t, err)
		_, err = fw.Write([]byte("png-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestCreateProduct(t *testing.T) {
	store := &mockAdminStore{}
	srv, images := newAdminEnv(t, store)

	body, ctype := productForm(t, map[string]string{
		"name": "Kopi Susu", "price": "10000", "stock": "20", "category_id": "c1",
	}, "kopi.png")
	resp, err := http.Post(srv.URL+"/admin/products", ctype, body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "prod-1", out["id"])

	require.Len(t, store.inserted, 1)
	in := store.inserted[0]
	assert.Equal(t, "Kopi Susu", in.Name)
	assert.Equal(t, 10000, in.Price)
	assert.Equal(t, 20, in.Stock)
	// gambar di-upload dulu, URL-nya masuk ke record produk
	assert.Equal(t, "http://localhost:8080/images/123.png", in.ImageURL)
	assert.Equal(t, []string{"kopi.png"}, images.saved)
}

func TestCreateProductMissingField(t *testing.T) {
	store := &mockAdminStore{}
	srv, _ := newAdminEnv(t, store)

	// tanpa name
	body, ctype := productForm(t, map[string]string{
		"price": "10000", "stock": "20", "category_id": "c1",
	}, "")
	resp, err := http.Post(srv.URL+"/admin/products", ctype, body)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, store.inserted)
}

func TestUpdateProductKeepsImage(t *testing.T) {
	store := &mockAdminStore{}
	srv, images := newAdminEnv(t, store)

	// update tanpa gambar baru -> ImageURL kosong, repo pertahankan yang lama
	body, ctype := productForm(t, map[string]string{
		"name": "Kopi Susu", "price": "12000", "stock": "15", "category_id": "c1",
	}, "")
	req, err := http.NewRequest(http.MethodPut, srv.URL+"/admin/products/prod-1", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", ctype)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	in, ok := store.updated["prod-1"]
	require.True(t, ok)
	assert.Equal(t, "", in.ImageURL)
	assert.Empty(t, images.saved)
}

func TestDeleteProduct(t *testing.T) {
	t.Run("tanpa riwayat -> terhapus", func(t *testing.T) {
		store := &mockAdminStore{}
		srv, _ := newAdminEnv(t, store)

		req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/admin/products/prod-1", nil)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		assert.Equal(t, []string{"prod-1"}, store.deleted)
	})

	t.Run("punya riwayat transaksi -> 409", func(t *testing.T) {
		store := &mockAdminStore{deleteErr: pos.Conflictf("product has transaction history (3 items)")}
		srv, _ := newAdminEnv(t, store)

		req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/admin/products/prod-1", nil)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Empty(t, store.deleted)
	})
}

package httpx

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ariefcatur/go-pos.git/internal/catalog"
	"github.com/ariefcatur/go-pos.git/internal/pos"
)

type AdminStore interface {
	InsertProduct(ctx context.Context, in pos.ProductInput) (string, error)
	UpdateProduct(ctx context.Context, id string, in pos.ProductInput) error
	DeleteProduct(ctx context.Context, id string) error
}

type ImageStore interface {
	Save(data []byte, suggestedName string) (string, error)
}

type AdminHandler struct {
	Store   AdminStore
	Images  ImageStore
	Catalog *catalog.Cache
}

func (h *AdminHandler) Register(r *chi.Mux) {
	r.Route("/admin/products", func(r chi.Router) {
		r.Post("/", h.createProduct)
		r.Put("/{id}", h.updateProduct)
		r.Delete("/{id}", h.deleteProduct)
	})
}

const maxImageSize = 10 << 20

// parseProductForm: form multipart -> ProductInput. Gambar opsional;
// kalau ada, di-upload dulu dan URL-nya dipakai sebagai image_url.
func (h *AdminHandler) parseProductForm(r *http.Request) (pos.ProductInput, error) {
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		return pos.ProductInput{}, pos.Validationf("invalid form: %v", err)
	}
	price, err := strconv.Atoi(r.FormValue("price"))
	if err != nil {
		return pos.ProductInput{}, pos.Validationf("price must be a number")
	}
	stock, err := strconv.Atoi(r.FormValue("stock"))
	if err != nil {
		return pos.ProductInput{}, pos.Validationf("stock must be a number")
	}
	in := pos.ProductInput{
		Name:       r.FormValue("name"),
		Price:      price,
		Stock:      stock,
		CategoryID: r.FormValue("category_id"),
	}

	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return in, nil
	}
	if err != nil {
		return pos.ProductInput{}, pos.Validationf("invalid image: %v", err)
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, maxImageSize))
	if err != nil {
		return pos.ProductInput{}, pos.Validationf("read image: %v", err)
	}
	url, err := h.Images.Save(data, header.Filename)
	if err != nil {
		return pos.ProductInput{}, err
	}
	in.ImageURL = url
	return in, nil
}

func (h *AdminHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	in, err := h.parseProductForm(r)
	if err != nil {
		writeErr(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := h.Store.InsertProduct(ctx, in)
	if err != nil {
		writeErr(w, err)
		return
	}
	h.Catalog.Invalidate(ctx)
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *AdminHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	in, err := h.parseProductForm(r)
	if err != nil {
		writeErr(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// ImageURL kosong -> repo pertahankan gambar lama
	if err := h.Store.UpdateProduct(ctx, id, in); err != nil {
		writeErr(w, err)
		return
	}
	h.Catalog.Invalidate(ctx)
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (h *AdminHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Store.DeleteProduct(ctx, id); err != nil {
		writeErr(w, err)
		return
	}
	h.Catalog.Invalidate(ctx)
	w.WriteHeader(http.StatusNoContent)
}

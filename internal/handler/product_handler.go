package handler

import (
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"storefront/internal/service"
)

// ProductHandler handles the catalog endpoints.
type ProductHandler struct {
	catalog service.CatalogService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(catalog service.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// Create persists a new product from form fields and up to 50 image files.
func (h *ProductHandler) Create(c echo.Context) error {
	fields, files := formFields(c)

	price, ok := parsePrice(fields.Get("new_price"))
	if !ok {
		return failWith(c, http.StatusBadRequest, "new_price is required and must be numeric", "VALIDATION_ERROR")
	}
	oldPrice := decimal.Zero
	if v := fields.Get("old_price"); v != "" {
		if oldPrice, ok = parsePrice(v); !ok {
			return failWith(c, http.StatusBadRequest, "old_price must be numeric", "VALIDATION_ERROR")
		}
	}
	available := true
	if v := fields.Get("available"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return failWith(c, http.StatusBadRequest, "available must be a boolean", "VALIDATION_ERROR")
		}
		available = b
	}

	in := service.CreateProductInput{
		Name:          fields.Get("name"),
		Description:   fields.Get("description"),
		CurrentPrice:  price,
		PreviousPrice: oldPrice,
		Category:      fields.Get("category"),
		Available:     available,
		Attributes:    fields.Get("data"),
	}

	product, err := h.catalog.Create(c.Request().Context(), in, files)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "product": product})
}

// List returns all products.
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.catalog.List(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "products": products})
}

// Update patches a product: only supplied form fields are written, and the
// image set is replaced only when new files arrive.
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return failWith(c, http.StatusBadRequest, "invalid id", "VALIDATION_ERROR")
	}

	fields, files := formFields(c)

	var in service.UpdateProductInput
	if v, ok := formValue(fields, "name"); ok {
		in.Name = &v
	}
	if v, ok := formValue(fields, "description"); ok {
		in.Description = &v
	}
	if v, ok := formValue(fields, "category"); ok {
		in.Category = &v
	}
	if v, ok := formValue(fields, "data"); ok {
		in.Attributes = &v
	}
	if v, ok := formValue(fields, "new_price"); ok {
		price, valid := parsePrice(v)
		if !valid {
			return failWith(c, http.StatusBadRequest, "new_price must be numeric", "VALIDATION_ERROR")
		}
		in.CurrentPrice = &price
	}
	if v, ok := formValue(fields, "old_price"); ok {
		price, valid := parsePrice(v)
		if !valid {
			return failWith(c, http.StatusBadRequest, "old_price must be numeric", "VALIDATION_ERROR")
		}
		in.PreviousPrice = &price
	}
	if v, ok := formValue(fields, "available"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return failWith(c, http.StatusBadRequest, "available must be a boolean", "VALIDATION_ERROR")
		}
		in.Available = &b
	}

	product, err := h.catalog.Update(c.Request().Context(), uint(id), in, files)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "product": product})
}

// Delete removes a product and returns its last state.
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return failWith(c, http.StatusBadRequest, "invalid id", "VALIDATION_ERROR")
	}

	product, err := h.catalog.Delete(c.Request().Context(), uint(id))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "product": product})
}

// formFields extracts form values and the images file set from either a
// multipart or urlencoded request body.
func formFields(c echo.Context) (url.Values, []*multipart.FileHeader) {
	if form, err := c.MultipartForm(); err == nil && form != nil {
		return url.Values(form.Value), form.File["images"]
	}
	_ = c.Request().ParseForm()
	return c.Request().PostForm, nil
}

// formValue distinguishes an absent field from an empty one, which is what
// the patch contract needs.
func formValue(fields url.Values, key string) (string, bool) {
	vs, ok := fields[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

func parsePrice(raw string) (decimal.Decimal, bool) {
	if raw == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

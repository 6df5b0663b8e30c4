package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/HenriqueSydney/03-marketspace/internal/domain/product"
)

// productPayload is the metadata write shape: the backend accepts payment
// methods as plain keys even though it returns {key,name} objects.
type productPayload struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	IsNew          bool     `json:"is_new"`
	Price          int64    `json:"price"`
	AcceptTrade    bool     `json:"accept_trade"`
	PaymentMethods []string `json:"payment_methods"`
}

func metadataOf(p product.Product) productPayload {
	return productPayload{
		Name:           p.Name,
		Description:    p.Description,
		IsNew:          p.IsNew,
		Price:          p.Price,
		AcceptTrade:    p.AcceptTrade,
		PaymentMethods: p.PaymentMethods.Keys(),
	}
}

func criteriaValues(cr product.Criteria) url.Values {
	v := url.Values{}
	if cr.IsNew != nil {
		v.Set("is_new", strconv.FormatBool(*cr.IsNew))
	}
	if cr.AcceptTrade != nil {
		v.Set("accept_trade", strconv.FormatBool(*cr.AcceptTrade))
	}
	for _, key := range cr.PaymentMethods {
		v.Add("payment_methods[]", key)
	}
	if cr.Query != "" {
		v.Set("query", cr.Query)
	}
	return v
}

func (c *Client) ListProducts(ctx context.Context, cr product.Criteria) ([]product.Product, error) {
	var products []product.Product
	err := c.do(ctx, http.MethodGet, "/products", criteriaValues(cr), nil, "", &products)
	return products, err
}

func (c *Client) ListOwnProducts(ctx context.Context, cr product.Criteria) ([]product.Product, error) {
	var products []product.Product
	err := c.do(ctx, http.MethodGet, "/users/products", criteriaValues(cr), nil, "", &products)
	return products, err
}

func (c *Client) GetProduct(ctx context.Context, id string) (product.Product, error) {
	var p product.Product
	err := c.do(ctx, http.MethodGet, "/products/"+id, nil, nil, "", &p)
	return p, err
}

// CreateProduct registers the metadata of a new product and returns the id
// the backend assigned. Images go out separately as multipart.
func (c *Client) CreateProduct(ctx context.Context, p product.Product) (string, error) {
	var created struct {
		ID string `json:"id"`
	}
	err := c.doJSON(ctx, http.MethodPost, "/products", metadataOf(p), &created)
	return created.ID, err
}

func (c *Client) UpdateProduct(ctx context.Context, id string, p product.Product) error {
	return c.doJSON(ctx, http.MethodPut, "/products/"+id, metadataOf(p), nil)
}

func (c *Client) SetProductActive(ctx context.Context, id string, active bool) error {
	body := map[string]bool{"is_active": active}
	return c.doJSON(ctx, http.MethodPatch, "/products/"+id, body, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+id, nil, nil, "", nil)
}

package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"

	"github.com/HenriqueSydney/03-marketspace/internal/domain/product"
)

// UploadProductImages sends every staged photo plus the resolved product id
// as one multipart request. Callers must not invoke it with an empty photo
// list; an empty upload round trip is never issued.
func (c *Client) UploadProductImages(ctx context.Context, productID string, photos []product.StagedPhoto) error {
	if len(photos) == 0 {
		return product.ErrNoPhotos
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, ph := range photos {
		part, err := createImagePart(w, ph)
		if err != nil {
			return err
		}
		f, err := os.Open(ph.URI)
		if err != nil {
			return err
		}
		_, err = io.Copy(part, f)
		f.Close()
		if err != nil {
			return err
		}
	}
	if err := w.WriteField("product_id", productID); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return c.do(ctx, http.MethodPost, "/products/images", nil, &buf, w.FormDataContentType(), nil)
}

func createImagePart(w *multipart.Writer, ph product.StagedPhoto) (io.Writer, error) {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename=%q`, ph.Name))
	if ph.MIMEType != "" {
		h.Set("Content-Type", ph.MIMEType)
	}
	return w.CreatePart(h)
}

func (c *Client) DeleteProductImages(ctx context.Context, imageIDs []string) error {
	body := map[string][]string{"productImagesIds": imageIDs}
	return c.doJSON(ctx, http.MethodDelete, "/products/images", body, nil)
}

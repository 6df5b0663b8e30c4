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
	"github.com/HenriqueSydney/03-marketspace/internal/domain/user"
)

type SignUpForm struct {
	Name     string
	Email    string
	Tel      string
	Password string
}

// CreateUser registers an account. The backend only accepts multipart here
// because the avatar travels with the form fields.
func (c *Client) CreateUser(ctx context.Context, form SignUpForm, avatar product.StagedPhoto) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="avatar"; filename=%q`, avatar.Name))
	if avatar.MIMEType != "" {
		h.Set("Content-Type", avatar.MIMEType)
	}
	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}
	f, err := os.Open(avatar.URI)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, f)
	f.Close()
	if err != nil {
		return err
	}

	fields := map[string]string{
		"name":     form.Name,
		"email":    form.Email,
		"tel":      form.Tel,
		"password": form.Password,
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}

	return c.do(ctx, http.MethodPost, "/users", nil, &buf, w.FormDataContentType(), nil)
}

// CreateSession exchanges credentials for a session token and user summary.
func (c *Client) CreateSession(ctx context.Context, email, password string) (user.Session, error) {
	body := map[string]string{"email": email, "password": password}
	var session user.Session
	err := c.doJSON(ctx, http.MethodPost, "/sessions", body, &session)
	return session, err
}

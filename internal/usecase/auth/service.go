package auth

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/HenriqueSydney/03-marketspace/internal/domain/product"
	domuser "github.com/HenriqueSydney/03-marketspace/internal/domain/user"
	"github.com/HenriqueSydney/03-marketspace/internal/infra/api"
)

// Backend is the slice of the API client the auth flow needs.
type Backend interface {
	CreateUser(ctx context.Context, form api.SignUpForm, avatar product.StagedPhoto) error
	CreateSession(ctx context.Context, email, password string) (domuser.Session, error)
}

// TokenStorage persists the session token between invocations. Token
// returns "" for a missing or expired token.
type TokenStorage interface {
	Save(token string) error
	Token() (string, error)
	Clear() error
}

type Service struct {
	backend  Backend
	tokens   TokenStorage
	validate *validator.Validate

	session *domuser.Session
}

func NewService(backend Backend, tokens TokenStorage) *Service {
	return &Service{
		backend:  backend,
		tokens:   tokens,
		validate: validator.New(),
	}
}

type SignUpInput struct {
	Name     string `validate:"required,min=3"`
	Email    string `validate:"required,email"`
	Tel      string `validate:"required,min=8"`
	Password string `validate:"required,min=6"`
}

// SignUp creates the account and immediately signs the new user in, the way
// the sign-up screen behaves.
func (s *Service) SignUp(ctx context.Context, in SignUpInput, avatar product.StagedPhoto) (*domuser.Session, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	if avatar.URI == "" {
		return nil, domuser.ErrAvatarRequired
	}

	form := api.SignUpForm{Name: in.Name, Email: in.Email, Tel: in.Tel, Password: in.Password}
	if err := s.backend.CreateUser(ctx, form, avatar); err != nil {
		return nil, err
	}

	return s.SignIn(ctx, in.Email, in.Password)
}

func (s *Service) SignIn(ctx context.Context, email, password string) (*domuser.Session, error) {
	session, err := s.backend.CreateSession(ctx, strings.TrimSpace(strings.ToLower(email)), password)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Save(session.Token); err != nil {
		return nil, err
	}

	s.session = &session
	return &session, nil
}

func (s *Service) SignOut() error {
	s.session = nil
	return s.tokens.Clear()
}

// Current returns the live session, falling back to the stored token when
// the process was restarted since sign-in. The user summary is only known
// for sessions created in this process.
func (s *Service) Current() (*domuser.Session, error) {
	if s.session != nil {
		return s.session, nil
	}

	token, err := s.tokens.Token()
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, domuser.ErrNotSignedIn
	}
	return &domuser.Session{Token: token}, nil
}

// service/auth/authService_test.go
package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/Montardi/percini-moto-manager/model"
	authrepo "github.com/Montardi/percini-moto-manager/repository/auth"
	"github.com/Montardi/percini-moto-manager/util/hash"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	byEmailFn func(ctx context.Context, email string) (*model.User, error)
	createFn  func(ctx context.Context, u *model.User) error
}

var _ authrepo.Repo = (*mockRepo)(nil)

func (m *mockRepo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.byEmailFn == nil {
		return nil, nil
	}
	return m.byEmailFn(ctx, email)
}

func (m *mockRepo) Create(ctx context.Context, u *model.User) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, u)
}

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	h, err := hash.HashPassword(plain)
	require.NoError(t, err)
	return h
}

// --- tests ---

func TestRegister_Success(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			u.ID = 42
			return nil
		},
	}
	svc := New(m, "test-secret")

	req := model.RegisterReq{
		Name:            "João Silva",
		Email:           "USER@Percini.COM",
		Password:        "supersecret",
		ConfirmPassword: "supersecret",
	}

	u, tok, err := svc.Register(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, u)
	require.NotEmpty(t, tok)
	require.Equal(t, int64(42), u.ID)
	require.Equal(t, "user@percini.com", u.Email)
	require.Equal(t, model.RoleCliente, u.Role)
	require.NotEmpty(t, u.PasswordHash)
}

func TestRegister_BadInput(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockRepo{}, "test-secret")

	_, _, err := svc.Register(ctx, model.RegisterReq{
		Name:     "x",
		Email:    " ",
		Password: "123",
	})
	require.Error(t, err)
	require.Equal(t, ErrBadInput, Code(err))
}

func TestRegister_PasswordMismatch(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockRepo{}, "test-secret")

	_, _, err := svc.Register(ctx, model.RegisterReq{
		Name:            "João",
		Email:           "ok@percini.com",
		Password:        "supersecret",
		ConfirmPassword: "different",
	})
	require.Equal(t, ErrBadInput, Code(err))
}

func TestRegister_EmailTaken(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			return &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "users_email_key",
			}
		},
	}
	svc := New(m, "test-secret")

	_, _, err := svc.Register(ctx, model.RegisterReq{
		Name:     "João",
		Email:    "taken@percini.com",
		Password: "123456",
	})
	require.Error(t, err)
	require.Equal(t, ErrEmailTaken, Code(err))
}

func TestRegister_CreateError(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			return errors.New("db down")
		},
	}
	svc := New(m, "test-secret")

	_, _, err := svc.Register(ctx, model.RegisterReq{
		Name:     "João",
		Email:    "ok@percini.com",
		Password: "123456",
	})
	require.Error(t, err)
	require.Equal(t, ErrCode(""), Code(err))
}

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	pw := "supersecret"
	hashed := mustHash(t, pw)

	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{
				ID:           7,
				Name:         "Gestor",
				Email:        "gestor@percini.com",
				Role:         model.RoleGestor,
				PasswordHash: hashed,
			}, nil
		},
	}
	svc := New(m, "test-secret")

	u, tok, err := svc.Login(ctx, model.LoginReq{
		Email:    "Gestor@Percini.com",
		Password: pw,
	})
	require.NoError(t, err)
	require.NotNil(t, u)
	require.NotEmpty(t, tok)
	require.Equal(t, int64(7), u.ID)
	require.Equal(t, model.RoleGestor, u.Role)
}

func TestLogin_BadInput(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockRepo{}, "test-secret")

	_, _, err := svc.Login(ctx, model.LoginReq{Email: " ", Password: ""})
	require.Error(t, err)
	require.Equal(t, ErrBadInput, Code(err))
}

func TestLogin_UserNotFound(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return nil, errors.New("no rows")
		},
	}
	svc := New(m, "test-secret")

	_, _, err := svc.Login(ctx, model.LoginReq{
		Email:    "missing@percini.com",
		Password: "whatever",
	})
	require.Error(t, err)
	require.Equal(t, ErrInvalidCreds, Code(err))
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	hashed := mustHash(t, "correct-password")

	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{
				ID:           101,
				Email:        "user@percini.com",
				Role:         model.RoleCliente,
				PasswordHash: hashed,
			}, nil
		},
	}
	svc := New(m, "test-secret")

	_, _, err := svc.Login(ctx, model.LoginReq{
		Email:    "user@percini.com",
		Password: "wrong-password",
	})
	require.Error(t, err)
	require.Equal(t, ErrInvalidCreds, Code(err))
}

func TestCodeExtractor(t *testing.T) {
	require.Equal(t, ErrEmailTaken, Code(wrap(ErrEmailTaken, "x")))
	require.Equal(t, ErrCode(""), Code(errors.New("plain")))
}

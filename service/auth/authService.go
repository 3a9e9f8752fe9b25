package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/Montardi/percini-moto-manager/model"
	authrepo "github.com/Montardi/percini-moto-manager/repository/auth"
	"github.com/Montardi/percini-moto-manager/util/hash"
	jwtutil "github.com/Montardi/percini-moto-manager/util/jwt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// errors used by controllers

type ErrCode string

const (
	ErrEmailTaken   ErrCode = "EMAIL_TAKEN"
	ErrInvalidCreds ErrCode = "INVALID_CREDENTIALS"
	ErrBadInput     ErrCode = "BAD_INPUT"
)

type codedError struct {
	code ErrCode
	msg  string
}

func (e codedError) Error() string {
	if e.msg != "" {
		return e.msg
	}
	return string(e.code)
}
func (e codedError) Code() ErrCode     { return e.code }
func makeErr(c ErrCode) error          { return codedError{code: c} }
func wrap(c ErrCode, msg string) error { return codedError{code: c, msg: msg} }

// Code extracts the error code, or "" for uncoded errors.
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

const tokenTTLHours = 24

type Service interface {
	Register(ctx context.Context, req model.RegisterReq) (*model.User, string, error)
	Login(ctx context.Context, req model.LoginReq) (*model.User, string, error)
}

type service struct {
	ur     authrepo.Repo
	secret string
}

func New(ur authrepo.Repo, secret string) Service { return &service{ur: ur, secret: secret} }

// Register creates an account with the non-operator default role. Promotion
// to gestor/admin happens out of band, so a fresh sign-up sees the
// access-denied screen until someone grants the role.
func (s *service) Register(ctx context.Context, req model.RegisterReq) (*model.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)
	if email == "" || name == "" || len(req.Password) < 6 {
		return nil, "", makeErr(ErrBadInput)
	}
	if req.ConfirmPassword != "" && req.ConfirmPassword != req.Password {
		return nil, "", makeErr(ErrBadInput)
	}

	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	u := &model.User{
		Name:         name,
		Email:        email,
		Role:         model.RoleCliente,
		PasswordHash: hashed,
	}
	if err := s.ur.Create(ctx, u); err != nil {
		if derr := mapDuplicateErr(err); derr != nil {
			return nil, "", derr
		}
		return nil, "", err
	}

	token, err := jwtutil.Issue(s.secret, u.ID, u.Role, tokenTTLHours)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func mapDuplicateErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		cn := strings.ToLower(pgErr.ConstraintName)
		msg := strings.ToLower(pgErr.Message)
		if strings.Contains(cn, "users_email") || strings.Contains(msg, "email") {
			return wrap(ErrEmailTaken, "email already registered")
		}
		return makeErr(ErrBadInput)
	}
	return nil
}

func (s *service) Login(ctx context.Context, req model.LoginReq) (*model.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, "", makeErr(ErrBadInput)
	}

	u, err := s.ur.ByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, "", makeErr(ErrInvalidCreds)
	}
	if !hash.Check(u.PasswordHash, req.Password) {
		return nil, "", makeErr(ErrInvalidCreds)
	}

	token, err := jwtutil.Issue(s.secret, u.ID, u.Role, tokenTTLHours)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// app/echoServer/jwtx/claims.go
package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func claims(c echo.Context) (jwt.MapClaims, error) {
	tok, ok := c.Get("user").(*jwt.Token)
	if !ok || tok == nil {
		return nil, errors.New("no jwt token in context")
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid jwt claims")
	}
	return mc, nil
}

func UserIDFromContext(c echo.Context) (int64, error) {
	mc, err := claims(c)
	if err != nil {
		return 0, err
	}
	if f, ok := mc["sub"].(float64); ok {
		return int64(f), nil
	}
	return 0, errors.New("sub missing in claims")
}

func RoleFromContext(c echo.Context) (string, error) {
	mc, err := claims(c)
	if err != nil {
		return "", err
	}
	if s, ok := mc["role"].(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("role missing in claims")
}

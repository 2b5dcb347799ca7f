// Package token issues and validates HS256 access tokens.
//
// Tokens are stateless: validity is signature + expiry only, there is no
// revocation list. Logout is client-side cookie deletion; a stolen token
// stays valid until it expires. Known limitation, kept deliberately.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken 校验失败统一返回该错误，不区分签名/过期/格式，避免泄露细节
var ErrInvalidToken = errors.New("invalid token")

// Manager 签发与校验访问令牌
type Manager struct {
	secret     []byte
	defaultTTL time.Duration
}

func NewManager(secret string, defaultTTL time.Duration) *Manager {
	return &Manager{secret: []byte(secret), defaultTTL: defaultTTL}
}

// Issue 签发携带 sub/exp 的令牌；ttl 省略时用默认值
func (m *Manager) Issue(subject string, ttl ...time.Duration) (string, error) {
	d := m.defaultTTL
	if len(ttl) > 0 && ttl[0] > 0 {
		d = ttl[0]
	}
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(d)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Validate 返回令牌中的 subject。对任意输入都不会 panic。
func (m *Manager) Validate(tokenString string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

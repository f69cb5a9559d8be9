package auth

import (
	"errors"
	"time"
)

// ErrInvalidToken is returned for malformed, tampered or expired tokens.
var ErrInvalidToken = errors.New("invalid auth token")

const defaultTTL = 24 * time.Hour

// Claims identifies the dashboard operator a token was issued to.
type Claims struct {
	UserID int64
	Login  string
}

// Strategy issues and verifies dashboard auth tokens.
type Strategy interface {
	IssueToken(claims Claims) (string, error)
	ParseToken(token string) (Claims, error)
	Name() string
}

type Options struct {
	TTL    time.Duration
	Issuer string
}

func (o Options) ttl() time.Duration {
	if o.TTL <= 0 {
		return defaultTTL
	}
	return o.TTL
}

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var tokenEncoding = base64.RawURLEncoding

// HMACStrategy signs compact "payload.signature" tokens with HMAC-SHA256.
// The payload is "userID:expiresUnix:login" with the login base64 encoded.
type HMACStrategy struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewHMACStrategy builds HMACStrategy with provided secret and options.
func NewHMACStrategy(secret string, opts Options) *HMACStrategy {
	return &HMACStrategy{secret: []byte(secret), ttl: opts.ttl(), now: time.Now}
}

// IssueToken generates signed auth token for the user.
func (s *HMACStrategy) IssueToken(claims Claims) (string, error) {
	expires := s.now().Add(s.ttl).Unix()
	payload := fmt.Sprintf("%d:%d:%s", claims.UserID, expires, tokenEncoding.EncodeToString([]byte(claims.Login)))
	encoded := tokenEncoding.EncodeToString([]byte(payload))
	return encoded + "." + s.sign(encoded), nil
}

// ParseToken validates token and returns the claims it carries.
func (s *HMACStrategy) ParseToken(token string) (Claims, error) {
	encoded, sig, ok := strings.Cut(token, ".")
	if !ok || !hmac.Equal([]byte(s.sign(encoded)), []byte(sig)) {
		return Claims{}, ErrInvalidToken
	}

	raw, err := tokenEncoding.DecodeString(encoded)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	parts := strings.Split(string(raw), ":")
	if len(parts) != 3 {
		return Claims{}, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || userID <= 0 {
		return Claims{}, ErrInvalidToken
	}

	expires, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || time.Unix(expires, 0).Before(s.now()) {
		return Claims{}, ErrInvalidToken
	}

	login, err := tokenEncoding.DecodeString(parts[2])
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	return Claims{UserID: userID, Login: string(login)}, nil
}

func (s *HMACStrategy) Name() string {
	return "hmac"
}

func (s *HMACStrategy) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return tokenEncoding.EncodeToString(mac.Sum(nil))
}

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// TokenManager issues and verifies HMAC-signed bearer tokens of the form
// base64url(userID|expiryUnix).hexsig.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (m *TokenManager) Issue(userID uuid.UUID) (string, error) {
	payload := fmt.Sprintf("%s|%d", userID, m.now().Add(m.ttl).Unix())
	encoded := base64.RawURLEncoding.EncodeToString([]byte(payload))
	return encoded + "." + m.sign(encoded), nil
}

func (m *TokenManager) Verify(token string) (uuid.UUID, error) {
	encoded, sig, found := strings.Cut(token, ".")
	if !found {
		return uuid.Nil, ErrInvalidToken
	}
	if !hmac.Equal([]byte(m.sign(encoded)), []byte(sig)) {
		return uuid.Nil, ErrInvalidToken
	}

	payload, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	idPart, expiryPart, found := strings.Cut(string(payload), "|")
	if !found {
		return uuid.Nil, ErrInvalidToken
	}

	expiry, err := strconv.ParseInt(expiryPart, 10, 64)
	if err != nil || m.now().Unix() > expiry {
		return uuid.Nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(idPart)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return userID, nil
}

func (m *TokenManager) sign(encoded string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(encoded))
	return hex.EncodeToString(mac.Sum(nil))
}

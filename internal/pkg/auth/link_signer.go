package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidLink = errors.New("invalid download link")

// LinkSigner issues expiring HMAC signed download links for purchased beats.
type LinkSigner struct {
	secret  []byte
	baseURL string
	ttl     time.Duration
	now     func() time.Time
}

// NewLinkSigner builds LinkSigner for links rooted at baseURL.
func NewLinkSigner(secret, baseURL string, opts Options) *LinkSigner {
	opts = opts.withDefaults()
	return &LinkSigner{
		secret:  []byte(secret),
		baseURL: strings.TrimRight(baseURL, "/"),
		ttl:     opts.TTL,
		now:     opts.Now,
	}
}

// Token returns the signed token granting access to one beat of one order.
func (s *LinkSigner) Token(orderID, beatID string) string {
	expires := s.now().Add(s.ttl).Unix()
	payload := fmt.Sprintf("%d", expires)
	sig := s.sign(orderID, beatID, payload)
	return base64.RawURLEncoding.EncodeToString([]byte(payload + ":" + sig))
}

// Link returns the full download URL for the beat.
func (s *LinkSigner) Link(orderID, beatID string) string {
	return fmt.Sprintf("%s/%s/%s?token=%s",
		s.baseURL, url.PathEscape(orderID), url.PathEscape(beatID), url.QueryEscape(s.Token(orderID, beatID)))
}

// Links signs a link for every beat in the order.
func (s *LinkSigner) Links(orderID string, beatIDs []string) map[string]string {
	links := make(map[string]string, len(beatIDs))
	for _, id := range beatIDs {
		links[id] = s.Link(orderID, id)
	}
	return links
}

// Verify checks the token against the order and beat it was issued for.
func (s *LinkSigner) Verify(orderID, beatID, token string) error {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return ErrInvalidLink
	}

	payload, sig, ok := strings.Cut(string(raw), ":")
	if !ok {
		return ErrInvalidLink
	}

	expectedSig := s.sign(orderID, beatID, payload)
	if !hmac.Equal([]byte(expectedSig), []byte(sig)) {
		return ErrInvalidLink
	}

	expires, err := strconv.ParseInt(payload, 10, 64)
	if err != nil {
		return ErrInvalidLink
	}

	if time.Unix(expires, 0).Before(s.now()) {
		return ErrInvalidLink
	}

	return nil
}

func (s *LinkSigner) sign(orderID, beatID, payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(orderID + "\x00" + beatID + "\x00" + payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

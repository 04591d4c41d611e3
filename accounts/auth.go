package accounts

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// TokenAuthenticator verifies bearer tokens of the form "<uid>:<secret>"
// against per-uid bcrypt hashes.
type TokenAuthenticator struct {
	hashes map[string][]byte
}

// ParseAdminTokens reads "uid:bcrypt-hash,uid2:bcrypt-hash" as configured in
// ADMIN_TOKENS. An empty string yields an authenticator that rejects
// everything.
func ParseAdminTokens(raw string) (*TokenAuthenticator, error) {
	a := &TokenAuthenticator{hashes: map[string][]byte{}}
	for entry := range strings.SplitSeq(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		uid, hash, ok := strings.Cut(entry, ":")
		uid, hash = strings.TrimSpace(uid), strings.TrimSpace(hash)
		if !ok || uid == "" || hash == "" {
			return nil, fmt.Errorf("%w: entry %q", ErrMalformedTokens, entry)
		}
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, fmt.Errorf("%w: uid %s: %v", ErrMalformedTokens, uid, err)
		}
		a.hashes[uid] = []byte(hash)
	}
	return a, nil
}

// Authenticate returns the caller uid for a valid token, or "" otherwise.
func (a *TokenAuthenticator) Authenticate(token string) string {
	uid, secret, ok := strings.Cut(token, ":")
	if !ok || uid == "" || secret == "" {
		return ""
	}
	hash, ok := a.hashes[uid]
	if !ok {
		return ""
	}
	if bcrypt.CompareHashAndPassword(hash, []byte(secret)) != nil {
		return ""
	}
	return uid
}

package signer

import (
	"strings"
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"

	"github.com/xuperchain/xdapps/lib/logs"
)

const (
	SubModName = "signer"

	DefaultTokenTTL      = 10 * time.Minute
	defaultCleanInterval = time.Minute
)

// Service is the authorization side the web proxy consults for every request
type Service interface {
	IsValidWebProxyAccessToken(token string) bool
}

// TokenStore issues web proxy access tokens bound to a domain. Tokens expire after
// ttl and can be revoked earlier.
type TokenStore struct {
	tokens *cache.Cache
	ttl    time.Duration
	log    logs.Logger
}

func NewTokenStore(ttl time.Duration) *TokenStore {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	log, _ := logs.NewLogger("", SubModName)

	return &TokenStore{
		tokens: cache.New(ttl, defaultCleanInterval),
		ttl:    ttl,
		log:    log,
	}
}

// GenerateWebProxyAccessToken returns a fresh token for domain
func (t *TokenStore) GenerateWebProxyAccessToken(domain string) string {
	token := strings.ReplaceAll(uuid.New().String(), "-", "")
	t.tokens.Set(token, domain, cache.DefaultExpiration)
	t.log.Debug("generate web proxy token", "domain", domain, "ttl", t.ttl)

	return token
}

// Domain returns the domain a valid token was issued for
func (t *TokenStore) Domain(token string) (string, bool) {
	v, ok := t.tokens.Get(token)
	if !ok {
		return "", false
	}
	domain, ok := v.(string)
	return domain, ok
}

func (t *TokenStore) Revoke(token string) {
	t.tokens.Delete(token)
}

func (t *TokenStore) IsValidWebProxyAccessToken(token string) bool {
	if token == "" {
		return false
	}
	_, ok := t.tokens.Get(token)
	return ok
}

// Len counts tokens not yet purged, expired ones included
func (t *TokenStore) Len() int {
	return t.tokens.ItemCount()
}

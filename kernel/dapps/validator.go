package dapps

import "github.com/xuperchain/xdapps/kernel/signer"

// AccessTokenValidator asks the signer on every call
type AccessTokenValidator struct {
	signer signer.Service
}

func NewAccessTokenValidator(s signer.Service) *AccessTokenValidator {
	return &AccessTokenValidator{signer: s}
}

func (t *AccessTokenValidator) IsValid(token string) bool {
	if t.signer == nil {
		return false
	}
	return t.signer.IsValidWebProxyAccessToken(token)
}

// Package wgkey validates WireGuard public keys and domain names against
// the broker's configured allow-list.
package wgkey

import (
	"fmt"
	"regexp"
)

// wgPubkeyPattern matches a base64-encoded Curve25519 public key: 42 free
// characters, then a 43rd restricted to the set whose two low-order bits
// are zero, then the trailing "=" padding byte.
var wgPubkeyPattern = regexp.MustCompile(`^[A-Za-z0-9+/]{42}[AEIMQUYcgkosw480]=$`)

// ErrInvalidKey is returned when a string does not match the WireGuard
// public key pattern.
type ErrInvalidKey struct {
	Key string
}

func (e *ErrInvalidKey) Error() string {
	return fmt.Sprintf("not a valid WireGuard public key: %s", e.Key)
}

// ErrUnknownDomain is returned when a domain is not in the configured
// allow-list.
type ErrUnknownDomain struct {
	Domain string
}

func (e *ErrUnknownDomain) Error() string {
	return fmt.Sprintf("domain %s not in configured domains", e.Domain)
}

// ValidatePubkey returns key unchanged if it is a syntactically valid
// WireGuard public key, else an *ErrInvalidKey.
func ValidatePubkey(key string) (string, error) {
	if !wgPubkeyPattern.MatchString(key) {
		return "", &ErrInvalidKey{Key: key}
	}
	return key, nil
}

// IsValidDomain reports whether domain is present in domains.
func IsValidDomain(domain string, domains map[string]struct{}) bool {
	_, ok := domains[domain]
	return ok
}

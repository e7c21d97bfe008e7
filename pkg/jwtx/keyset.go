package jwtx

import (
	"crypto/ed25519"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"sync"
)

var ErrNoKey = errors.New("jwtx: key not found")

// KeySet holds the public verification keys in memory, indexed by kid.
// It's thread-safe so it can be refreshed while requests are verifying.
type KeySet struct {
	mu  sync.RWMutex
	pub map[string]any // kid: ed25519.PublicKey | etc.
}

// NewKeySet returns an empty KeySet.
func NewKeySet() *KeySet {
	return &KeySet{
		pub: make(map[string]any),
	}
}

// Add registers a public key under the given kid, replacing any previous key.
func (k *KeySet) Add(kid string, pub any) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.pub[kid] = pub
}

// Get returns the public key for the given kid.
func (k *KeySet) Get(kid string) (any, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if pk, ok := k.pub[kid]; ok {
		return pk, nil
	}
	return nil, ErrNoKey
}

// IsReady returns true if the KeySet has at least one key loaded.
func (k *KeySet) IsReady() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.pub) > 0
}

// AddEd25519PEMFile loads a PKIX "PUBLIC KEY" PEM file and registers the
// contained Ed25519 key under the given kid.
func (k *KeySet) AddEd25519PEMFile(kid, path string) error {
	pemBytes, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("jwtx: read public key: %w", err)
	}
	return k.AddEd25519PEM(kid, pemBytes)
}

// AddEd25519PEM parses a PKIX "PUBLIC KEY" PEM block and registers the
// contained Ed25519 key under the given kid.
func (k *KeySet) AddEd25519PEM(kid string, pemBytes []byte) error {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return errors.New("jwtx: invalid PEM for Ed25519 public key")
	}

	if block.Type != "PUBLIC KEY" {
		return fmt.Errorf("jwtx: expected PUBLIC KEY, got %q", block.Type)
	}

	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return fmt.Errorf("jwtx: parse PKIX: %w", err)
	}

	edPub, ok := pub.(ed25519.PublicKey)
	if !ok {
		return errors.New("jwtx: not an Ed25519 public key")
	}

	k.Add(kid, edPub)
	return nil
}

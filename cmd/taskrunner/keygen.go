package main

import (
	"crypto"
	"crypto/ed25519"
	"crypto/rand"
	_ "crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/capiscio/taskrunner/pkg/options"
	"github.com/capiscio/taskrunner/pkg/task"
	"github.com/go-jose/go-jose/v4"
)

const (
	privateKeyFile = "private.jwk"
	publicKeyFile  = "public.jwk"
)

func init() {
	task.Register(task.Descriptor{
		ID:          "keygen",
		Description: "Generate an Ed25519 key pair as JWK files",
		New: func(ctx task.Context, opts options.Map) task.Task {
			return &keygenTask{Base: task.NewBase(ctx, opts)}
		},
	})
}

// keygenTask writes private.jwk and public.jwk into out_dir. The key id is
// the RFC 7638 thumbprint of the public key.
type keygenTask struct {
	task.Base
}

func (k *keygenTask) Run() (any, error) {
	dir := k.Options.String("out_dir")
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}

	pubJwk := jose.JSONWebKey{
		Key:       pub,
		Algorithm: string(jose.EdDSA),
		Use:       "sig",
	}
	thumb, err := pubJwk.Thumbprint(crypto.SHA256)
	if err != nil {
		return nil, fmt.Errorf("failed to compute key thumbprint: %w", err)
	}
	kid := base64.RawURLEncoding.EncodeToString(thumb)
	pubJwk.KeyID = kid

	privJwk := jose.JSONWebKey{
		Key:       priv,
		KeyID:     kid,
		Algorithm: string(jose.EdDSA),
		Use:       "sig",
	}

	privPath := filepath.Join(dir, privateKeyFile)
	if err := writeJWK(privPath, privJwk, 0600); err != nil {
		return nil, fmt.Errorf("failed to write private key: %w", err)
	}
	k.Logger.Debug(fmt.Sprintf("Private key saved to %s", privPath))

	pubPath := filepath.Join(dir, publicKeyFile)
	if err := writeJWK(pubPath, pubJwk, 0644); err != nil {
		return nil, fmt.Errorf("failed to write public key: %w", err)
	}
	k.Logger.Debug(fmt.Sprintf("Public key saved to %s", pubPath))

	if k.Options.String("format") == "--json" {
		data, err := json.MarshalIndent(pubJwk, "", "  ")
		if err != nil {
			return nil, err
		}
		k.Logger.Message(string(data))
	} else {
		k.Logger.Message(kid)
	}
	return kid, nil
}

func writeJWK(path string, key jose.JSONWebKey, perm os.FileMode) error {
	data, err := json.MarshalIndent(key, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, perm)
}

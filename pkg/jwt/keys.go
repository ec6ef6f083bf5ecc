package jwt

import (
	"crypto/rsa"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// NewSymmetric returns a Manager signing with HS256.
func NewSymmetric(secret []byte, issuer string) (*Manager, error) {
	if len(secret) == 0 {
		return nil, errors.New("JWT secret cannot be empty")
	}
	return &Manager{method: jwt.SigningMethodHS256, signKey: secret, verifyKey: secret, issuer: issuer}, nil
}

// NewAsymmetric returns a Manager signing with RS256.
func NewAsymmetric(privateKey *rsa.PrivateKey, publicKey *rsa.PublicKey, issuer string) (*Manager, error) {
	if privateKey == nil {
		return nil, errors.New("private key cannot be nil")
	}
	if publicKey == nil {
		return nil, errors.New("public key cannot be nil")
	}
	return &Manager{method: jwt.SigningMethodRS256, signKey: privateKey, verifyKey: publicKey, issuer: issuer}, nil
}

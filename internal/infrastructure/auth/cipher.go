package auth

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	cipherKeySalt       = "akhmads:bot-token"
	cipherKeyIterations = 4096
	cipherKeyLength     = 32
)

// TokenCipher encrypts bot tokens at rest with AES-256-CBC. The key is
// derived from the configured passphrase with PBKDF2-SHA256; the IV comes
// from configuration and is fixed, so stored values stay stable across
// restarts and instances.
type TokenCipher struct {
	key []byte
	iv  []byte
}

// NewTokenCipher derives the cipher from the configured passphrase and IV.
// The IV must be exactly one AES block (16 bytes).
func NewTokenCipher(passphrase, iv string) (*TokenCipher, error) {
	if passphrase == "" {
		return nil, errors.New("encryption key cannot be empty")
	}
	if len(iv) != aes.BlockSize {
		return nil, fmt.Errorf("encryption iv must be exactly %d bytes, got %d", aes.BlockSize, len(iv))
	}

	key := pbkdf2.Key([]byte(passphrase), []byte(cipherKeySalt), cipherKeyIterations, cipherKeyLength, sha256.New)
	return &TokenCipher{key: key, iv: []byte(iv)}, nil
}

// Encrypt returns the base64 ciphertext of the plaintext token.
func (c *TokenCipher) Encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", fmt.Errorf("failed to init cipher: %w", err)
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	encrypted := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, c.iv).CryptBlocks(encrypted, padded)

	return base64.StdEncoding.EncodeToString(encrypted), nil
}

// Decrypt reverses Encrypt.
func (c *TokenCipher) Decrypt(ciphertext string) (string, error) {
	encrypted, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("failed to decode ciphertext: %w", err)
	}
	if len(encrypted) == 0 || len(encrypted)%aes.BlockSize != 0 {
		return "", errors.New("ciphertext is not a whole number of blocks")
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", fmt.Errorf("failed to init cipher: %w", err)
	}

	decrypted := make([]byte, len(encrypted))
	cipher.NewCBCDecrypter(block, c.iv).CryptBlocks(decrypted, encrypted)

	unpadded, err := pkcs7Unpad(decrypted, aes.BlockSize)
	if err != nil {
		return "", err
	}
	return string(unpadded), nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(padding)}, padding)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, errors.New("invalid padded length")
	}
	padding := int(data[len(data)-1])
	if padding == 0 || padding > blockSize {
		return nil, errors.New("invalid padding")
	}
	for _, b := range data[len(data)-padding:] {
		if int(b) != padding {
			return nil, errors.New("invalid padding")
		}
	}
	return data[:len(data)-padding], nil
}

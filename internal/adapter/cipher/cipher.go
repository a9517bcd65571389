package cipher

import (
	"crypto/aes"
	aescipher "crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/jsocialogs/socialshop/internal/adapter/config"
)

// AESCipher reversibly encodes account credentials with AES-CTR. The random
// IV is prepended to the ciphertext, so the same plaintext encodes
// differently every time.
type AESCipher struct {
	key []byte
}

func New(conf *config.Cipher) (*AESCipher, error) {
	key, err := hex.DecodeString(conf.Key)
	if err != nil {
		return nil, fmt.Errorf("credential key is not valid hex: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("credential key must be 32 bytes, got %d", len(key))
	}
	return &AESCipher{key: key}, nil
}

func (c *AESCipher) Encrypt(plain string) (string, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}

	buf := make([]byte, aes.BlockSize+len(plain))
	iv := buf[:aes.BlockSize]
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", err
	}

	stream := aescipher.NewCTR(block, iv)
	stream.XORKeyStream(buf[aes.BlockSize:], []byte(plain))

	return base64.StdEncoding.EncodeToString(buf), nil
}

func (c *AESCipher) Decrypt(encoded string) (string, error) {
	buf, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("bad encoded credential: %w", err)
	}
	if len(buf) < aes.BlockSize {
		return "", fmt.Errorf("encoded credential too short")
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}

	plain := make([]byte, len(buf)-aes.BlockSize)
	stream := aescipher.NewCTR(block, buf[:aes.BlockSize])
	stream.XORKeyStream(plain, buf[aes.BlockSize:])

	return string(plain), nil
}

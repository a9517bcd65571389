package cipher_test

import (
	"strings"
	"testing"

	"github.com/jsocialogs/socialshop/internal/adapter/cipher"
	"github.com/jsocialogs/socialshop/internal/adapter/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "6368616e676520746869732070617373776f726420746f206120736563726574"

func TestAESCipher_RoundTrip(t *testing.T) {
	c, err := cipher.New(&config.Cipher{Key: testKey})
	require.NoError(t, err)

	plains := []string{
		"user:hunter2",
		"",
		`{"login":"ada","password":"p@ss","2fa":"ABCDEF"}`,
		strings.Repeat("x", 4096),
	}

	for _, plain := range plains {
		encoded, err := c.Encrypt(plain)
		require.NoError(t, err)
		assert.NotEqual(t, plain, encoded)

		decoded, err := c.Decrypt(encoded)
		require.NoError(t, err)
		assert.Equal(t, plain, decoded)
	}
}

func TestAESCipher_RandomIV(t *testing.T) {
	c, err := cipher.New(&config.Cipher{Key: testKey})
	require.NoError(t, err)

	first, err := c.Encrypt("same input")
	require.NoError(t, err)
	second, err := c.Encrypt("same input")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestNew_BadKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"not hex", "zzzz"},
		{"too short", "deadbeef"},
		{"empty", ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := cipher.New(&config.Cipher{Key: test.key})
			assert.Error(t, err)
		})
	}
}

func TestAESCipher_DecryptGarbage(t *testing.T) {
	c, err := cipher.New(&config.Cipher{Key: testKey})
	require.NoError(t, err)

	_, err = c.Decrypt("not-base64!!!")
	assert.Error(t, err)

	_, err = c.Decrypt("c2hvcnQ=") // "short", below one block
	assert.Error(t, err)
}

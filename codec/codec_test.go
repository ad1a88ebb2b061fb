package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var key = []byte("0123456789abcdef0123456789abcdef")

func TestEncryptDecrypt(t *testing.T) {
	plaintext := []byte(`{"member_code":"ELV-482910","tier":"premium"}`)

	token, err := Encrypt(key, plaintext)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	decrypted, err := Decrypt(key, token)
	require.NoError(t, err)

	assert.Equal(t, plaintext, decrypted)
}

func TestEncryptProducesDistinctTokens(t *testing.T) {
	plaintext := []byte("same payload")

	first, err := Encrypt(key, plaintext)
	require.NoError(t, err)
	second, err := Encrypt(key, plaintext)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestDecryptRejectsShortCiphertext(t *testing.T) {
	_, err := Decrypt(key, "YWJj")

	require.Error(t, err)
}

func TestDecryptRejectsInvalidBase64(t *testing.T) {
	_, err := Decrypt(key, "%%%not base64%%%")

	require.Error(t, err)
}

func TestEncryptRejectsBadKey(t *testing.T) {
	_, err := Encrypt([]byte("short"), []byte("data"))

	require.Error(t, err)
}

package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidAddress(t *testing.T) {
	tests := []struct {
		name    string
		address string
		valid   bool
	}{
		{"lowercase", "0x1234567890123456789012345678901234567890", true},
		{"mixed case", "0xAbCdEf1234567890AbCdEf1234567890AbCdEf12", true},
		{"missing prefix", "1234567890123456789012345678901234567890", false},
		{"too short", "0x12345678901234567890123456789012345678", false},
		{"too long", "0x12345678901234567890123456789012345678901234", false},
		{"non-hex chars", "0xZZ34567890123456789012345678901234567890", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidAddress(tt.address))
		})
	}
}

func TestChecksumAddress(t *testing.T) {
	checksummed, err := ChecksumAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")
	require.NoError(t, err)
	assert.Equal(t, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", checksummed)

	_, err = ChecksumAddress("not-an-address")
	assert.Error(t, err)
}

func TestIsValidTxHash(t *testing.T) {
	hash := "0x" + strings.Repeat("ab", 32)
	assert.True(t, IsValidTxHash(hash))

	assert.False(t, IsValidTxHash("0x"+strings.Repeat("ab", 31)))
	assert.False(t, IsValidTxHash(strings.Repeat("ab", 32)))
	assert.False(t, IsValidTxHash(""))
}

func TestIsValidHexString(t *testing.T) {
	assert.True(t, IsValidHexString("0x02f8deadbeef", false))
	assert.False(t, IsValidHexString("02f8deadbeef", false))
	assert.False(t, IsValidHexString("0x", false))
	assert.True(t, IsValidHexString("0x", true))
	assert.False(t, IsValidHexString("0xnothex", false))
}

func TestValidateAmount(t *testing.T) {
	amount, err := ValidateAmount(" 1.5 ", true)
	require.NoError(t, err)
	assert.Equal(t, "1.5", amount)

	amount, err = ValidateAmount("MAX", true)
	require.NoError(t, err)
	assert.Equal(t, "MAX", amount)

	_, err = ValidateAmount("-1", true)
	assert.Error(t, err)

	_, err = ValidateAmount("0", false)
	assert.Error(t, err)

	amount, err = ValidateAmount("0", true)
	require.NoError(t, err)
	assert.Equal(t, "0", amount)

	_, err = ValidateAmount("abc", true)
	assert.Error(t, err)

	_, err = ValidateAmount("", true)
	assert.Error(t, err)
}

func TestValidateTokenName(t *testing.T) {
	name, err := ValidateTokenName("FETH")
	require.NoError(t, err)
	assert.Equal(t, "feth", name)

	_, err = ValidateTokenName("fe th")
	assert.Error(t, err)

	_, err = ValidateTokenName("")
	assert.Error(t, err)
}

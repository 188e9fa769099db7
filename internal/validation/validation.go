package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

var (
	addressPattern   = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)
	txHashPattern    = regexp.MustCompile(`^0x[a-fA-F0-9]{64}$`)
	hexPattern       = regexp.MustCompile(`^0x[a-fA-F0-9]+$`)
	tokenNamePattern = regexp.MustCompile(`^[a-z0-9_]+$`)
)

// IsValidAddress reports whether s looks like an Ethereum address. Checksum
// casing is not enforced here; ChecksumAddress normalizes it.
func IsValidAddress(s string) bool {
	return addressPattern.MatchString(s)
}

// ChecksumAddress validates s and returns it in EIP-55 checksum form
func ChecksumAddress(s string) (string, error) {
	if !IsValidAddress(s) {
		return "", fmt.Errorf("invalid Ethereum address format: %s", s)
	}
	return common.HexToAddress(s).Hex(), nil
}

// IsValidTxHash reports whether s is a 0x-prefixed 32-byte hash
func IsValidTxHash(s string) bool {
	return txHashPattern.MatchString(s)
}

// IsValidHexString reports whether s is a 0x-prefixed hex string. The empty
// payload "0x" is accepted when allowEmpty is set.
func IsValidHexString(s string, allowEmpty bool) bool {
	if allowEmpty && s == "0x" {
		return true
	}
	return hexPattern.MatchString(s)
}

// ValidateAmount checks a human-readable amount string. The literal "max"
// (any casing) passes; otherwise the value must parse as a non-negative
// decimal. Returns the trimmed amount.
func ValidateAmount(amount string, allowZero bool) (string, error) {
	trimmed := strings.TrimSpace(amount)
	if trimmed == "" {
		return "", fmt.Errorf("amount is required")
	}

	if strings.EqualFold(trimmed, "max") {
		return trimmed, nil
	}

	value, err := decimal.NewFromString(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid amount: %s", amount)
	}

	if value.IsNegative() {
		return "", fmt.Errorf("invalid amount: %s (must not be negative)", amount)
	}

	if !allowZero && value.IsZero() {
		return "", fmt.Errorf("invalid amount: %s (zero not allowed)", amount)
	}

	return trimmed, nil
}

// ValidateTokenName checks and lowercases a token symbol
func ValidateTokenName(name string) (string, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" || !tokenNamePattern.MatchString(lower) {
		return "", fmt.Errorf("invalid token name: %s", name)
	}
	return lower, nil
}

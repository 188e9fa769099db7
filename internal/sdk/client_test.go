package sdk

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToWei(t *testing.T) {
	wei, err := toWei("1.5")
	require.NoError(t, err)
	assert.Equal(t, "1500000000000000000", wei.String())

	wei, err = toWei("0")
	require.NoError(t, err)
	assert.Equal(t, "0", wei.String())

	_, err = toWei("-1")
	assert.Error(t, err)

	_, err = toWei("abc")
	assert.Error(t, err)
}

func TestToWeiMax(t *testing.T) {
	wei, err := toWei("max")
	require.NoError(t, err)

	expected := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	assert.Equal(t, expected, wei)

	upper, err := toWei("MAX")
	require.NoError(t, err)
	assert.Equal(t, expected, upper)
}

func TestToWeiOrZero(t *testing.T) {
	wei, err := toWeiOrZero("")
	require.NoError(t, err)
	assert.Equal(t, "0", wei.String())

	wei, err = toWeiOrZero("2")
	require.NoError(t, err)
	assert.Equal(t, "2000000000000000000", wei.String())
}

func TestToSignedWei(t *testing.T) {
	wei, err := toSignedWei("-0.5")
	require.NoError(t, err)
	assert.Equal(t, "-500000000000000000", wei.String())
}

func TestFromWei(t *testing.T) {
	value := fromWei(big.NewInt(2500000000000000000))
	assert.True(t, value.Equal(decimal.RequireFromString("2.5")))

	assert.True(t, fromWei("not a bigint").IsZero())
}

func TestEnsureHexPrefix(t *testing.T) {
	assert.Equal(t, "0xabcd", ensureHexPrefix("abcd"))
	assert.Equal(t, "0xabcd", ensureHexPrefix("0xabcd"))
}

func TestAddressEqual(t *testing.T) {
	assert.True(t, addressEqual(
		"0x365accfca291e7d3914637abf1f7635db165bb09",
		"0x365AccFCa291e7D3914637ABf1F7635dB165Bb09",
	))
	assert.False(t, addressEqual(FXN, FXUSD))
}

func TestABIFragmentsParse(t *testing.T) {
	// The package-level fragments panic on init if malformed; touch the
	// ones with the least common shapes to pin their method sets.
	_, ok := treasuryABI.Methods["getCurrentNav"]
	assert.True(t, ok)
	_, ok = convexVaultABI.Methods["earned"]
	assert.True(t, ok)
	_, ok = gaugeControllerABI.Methods["gauge_relative_weight"]
	assert.True(t, ok)
	_, ok = veFXNABI.Methods["create_lock"]
	assert.True(t, ok)
}

package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/chrisstampar/fx-api/internal/sdk"
)

// tokenSpec binds a token symbol to its contract address. Balances for
// every supported token are plain ERC-20 reads; the symbol registry is
// the single source of truth for what "supported" means.
type tokenSpec struct {
	Address string
}

// supportedTokens is the closed token registry. Symbols are lowercase.
var supportedTokens = map[string]tokenSpec{
	"fxusd":   {Address: sdk.FXUSD},
	"fxn":     {Address: sdk.FXN},
	"feth":    {Address: sdk.FETH},
	"rusd":    {Address: sdk.RUSD},
	"arusd":   {Address: sdk.ARUSD},
	"btcusd":  {Address: sdk.BTCUSD},
	"cvxusd":  {Address: sdk.CVXUSD},
	"xeth":    {Address: sdk.XETH},
	"xcvx":    {Address: sdk.XCVX},
	"xwbtc":   {Address: sdk.XWBTC},
	"xeeth":   {Address: sdk.XEETH},
	"xezeth":  {Address: sdk.XEZETH},
	"xsteth":  {Address: sdk.XSTETH},
	"xfrxeth": {Address: sdk.XFRXETH},
	"fxsave":  {Address: sdk.SavingFxUSD},
	"fxsp":    {Address: sdk.FXSP},
	"vefxn":   {Address: sdk.VEFXN},
	"cvxfxn":  {Address: sdk.CVXFXN},
}

// navTokens maps NAV-priced tokens to which NAV leg they track
var navTokens = map[string]string{
	"feth":    "f_nav",
	"xeth":    "x_nav",
	"xcvx":    "x_nav",
	"xwbtc":   "x_nav",
	"xeeth":   "x_nav",
	"xezeth":  "x_nav",
	"xsteth":  "x_nav",
	"xfrxeth": "x_nav",
}

// SupportedTokenNames returns the registry symbols in sorted order
func SupportedTokenNames() []string {
	names := make([]string, 0, len(supportedTokens))
	for name := range supportedTokens {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveToken looks up a symbol in the registry, case-insensitively
func ResolveToken(name string) (string, tokenSpec, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	spec, ok := supportedTokens[lower]
	if !ok {
		return "", tokenSpec{}, fmt.Errorf("unsupported token: %s. Supported tokens: %s",
			name, strings.Join(SupportedTokenNames(), ", "))
	}
	return lower, spec, nil
}

// IsNavToken reports whether a symbol prices off the protocol NAV and
// which leg it follows
func IsNavToken(name string) (string, bool) {
	leg, ok := navTokens[strings.ToLower(name)]
	return leg, ok
}

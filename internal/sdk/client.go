package sdk

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/shopspring/decimal"
)

// tokenDecimals is the precision shared by every f(x) token
const tokenDecimals = 18

var (
	errUnexpectedOutput = errors.New("unexpected contract output shape")
	errUnknownPool      = errors.New("pool not in catalog")
)

// Client is the concrete ProtocolClient backed by a single JSON-RPC
// endpoint. Failover across endpoints lives a layer above.
type Client struct {
	eth *ethclient.Client
	url string
}

var _ ProtocolClient = (*Client)(nil)

// Dial connects to a JSON-RPC endpoint
func Dial(ctx context.Context, url string) (*Client, error) {
	eth, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return &Client{eth: eth, url: url}, nil
}

// EndpointURL returns the endpoint this client is connected to
func (c *Client) EndpointURL() string { return c.url }

// Close releases the underlying RPC connection
func (c *Client) Close() {
	c.eth.Close()
}

// Connected probes the endpoint with a chain id request
func (c *Client) Connected(ctx context.Context) bool {
	_, err := c.eth.ChainID(ctx)
	return err == nil
}

// BlockNumber returns the latest block number
func (c *Client) BlockNumber(ctx context.Context) (int64, error) {
	n, err := c.eth.BlockNumber(ctx)
	if err != nil {
		return 0, &ContractCallError{Op: "blockNumber", Err: err}
	}
	return int64(n), nil
}

// call performs an eth_call against a contract and unpacks the outputs
func (c *Client) call(ctx context.Context, contract string, parsed abi.ABI, method string, args ...interface{}) ([]interface{}, error) {
	data, err := parsed.Pack(method, args...)
	if err != nil {
		return nil, &ContractCallError{Op: method, Err: err}
	}

	to := common.HexToAddress(contract)
	raw, err := c.eth.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		return nil, &ContractCallError{Op: method, Err: err}
	}

	out, err := parsed.Unpack(method, raw)
	if err != nil {
		return nil, &ContractCallError{Op: method, Err: err}
	}
	return out, nil
}

// TokenBalance reads an ERC-20 balance in token units
func (c *Client) TokenBalance(ctx context.Context, tokenAddress, account string) (decimal.Decimal, error) {
	out, err := c.call(ctx, tokenAddress, erc20ABI, "balanceOf", common.HexToAddress(account))
	if err != nil {
		return decimal.Zero, err
	}
	return fromWei(out[0]), nil
}

// TokenTotalSupply reads an ERC-20 total supply in token units
func (c *Client) TokenTotalSupply(ctx context.Context, tokenAddress string) (decimal.Decimal, error) {
	out, err := c.call(ctx, tokenAddress, erc20ABI, "totalSupply")
	if err != nil {
		return decimal.Zero, err
	}
	return fromWei(out[0]), nil
}

// BroadcastRawTransaction submits a signed transaction and returns its hash
func (c *Client) BroadcastRawTransaction(ctx context.Context, rawTx string) (string, error) {
	payload, err := hexutil.Decode(ensureHexPrefix(rawTx))
	if err != nil {
		return "", &BroadcastError{Err: fmt.Errorf("invalid transaction hex: %w", err)}
	}

	var tx types.Transaction
	if err := tx.UnmarshalBinary(payload); err != nil {
		return "", &BroadcastError{Err: fmt.Errorf("invalid transaction encoding: %w", err)}
	}

	if err := c.eth.SendTransaction(ctx, &tx); err != nil {
		return "", &BroadcastError{Err: err}
	}
	return tx.Hash().Hex(), nil
}

// TransactionReceipt fetches the receipt for a mined transaction. Returns
// ethereum.NotFound while the transaction is still pending or unknown.
func (c *Client) TransactionReceipt(ctx context.Context, txHash string) (*Receipt, error) {
	receipt, err := c.eth.TransactionReceipt(ctx, common.HexToHash(txHash))
	if err != nil {
		return nil, err
	}
	return &Receipt{
		Status:            receipt.Status,
		BlockNumber:       receipt.BlockNumber.Int64(),
		GasUsed:           int64(receipt.GasUsed),
		EffectiveGasPrice: receipt.EffectiveGasPrice,
	}, nil
}

// EstimateGas estimates gas for a call and prices it at the current gas
// price. A missing gas price degrades to a nil cost, not an error.
func (c *Client) EstimateGas(ctx context.Context, from, to, data string, value *big.Int) (*GasEstimate, error) {
	toAddr := common.HexToAddress(to)
	msg := ethereum.CallMsg{To: &toAddr, Value: value}

	if from != "" {
		msg.From = common.HexToAddress(from)
	}
	if data != "" {
		payload, err := hexutil.Decode(ensureHexPrefix(data))
		if err != nil {
			return nil, &ContractCallError{Op: "estimateGas", Err: fmt.Errorf("invalid calldata: %w", err)}
		}
		msg.Data = payload
	}

	gas, err := c.eth.EstimateGas(ctx, msg)
	if err != nil {
		return nil, &ContractCallError{Op: "estimateGas", Err: err}
	}

	estimate := &GasEstimate{Gas: int64(gas)}
	if gasPrice, err := c.eth.SuggestGasPrice(ctx); err == nil {
		estimate.CostWei = new(big.Int).Mul(big.NewInt(estimate.Gas), gasPrice)
	}
	return estimate, nil
}

// buildTx assembles an unsigned transaction for the given calldata. Fees
// prefer EIP-1559; legacy gas price is the fallback. Gas is estimated when
// a sender is known, otherwise the default limit applies.
func (c *Client) buildTx(ctx context.Context, from, to string, value *big.Int, data []byte, fallbackGas int64) (*TxData, error) {
	if value == nil {
		value = big.NewInt(0)
	}

	tx := &TxData{
		To:      common.HexToAddress(to).Hex(),
		Data:    hexutil.Encode(data),
		Value:   value.String(),
		Gas:     fallbackGas,
		ChainID: ChainID,
	}

	if chainID, err := c.eth.ChainID(ctx); err == nil {
		tx.ChainID = chainID.Int64()
	}

	if from != "" {
		fromAddr := common.HexToAddress(from)
		nonce, err := c.eth.PendingNonceAt(ctx, fromAddr)
		if err != nil {
			return nil, &ContractCallError{Op: "pendingNonce", Err: err}
		}
		tx.Nonce = int64(nonce)

		toAddr := common.HexToAddress(to)
		if gas, err := c.eth.EstimateGas(ctx, ethereum.CallMsg{
			From:  fromAddr,
			To:    &toAddr,
			Value: value,
			Data:  data,
		}); err == nil {
			// 20% headroom over the node estimate
			tx.Gas = int64(gas) * 12 / 10
		}
	}

	tip, tipErr := c.eth.SuggestGasTipCap(ctx)
	head, headErr := c.eth.HeaderByNumber(ctx, nil)
	if tipErr == nil && headErr == nil && head.BaseFee != nil {
		maxFee := new(big.Int).Add(new(big.Int).Mul(head.BaseFee, big.NewInt(2)), tip)
		tx.MaxFeePerGas = maxFee.String()
		tx.MaxPriorityFeePerGas = tip.String()
	} else if gasPrice, err := c.eth.SuggestGasPrice(ctx); err == nil {
		tx.GasPrice = gasPrice.String()
	}

	return tx, nil
}

// packAndBuild packs a contract call and assembles the unsigned transaction
func (c *Client) packAndBuild(ctx context.Context, from, contract string, parsed abi.ABI, value *big.Int, fallbackGas int64, method string, args ...interface{}) (*TxData, error) {
	data, err := parsed.Pack(method, args...)
	if err != nil {
		return nil, &ContractCallError{Op: method, Err: err}
	}
	return c.buildTx(ctx, from, contract, value, data, fallbackGas)
}

// fromWei converts a raw uint256 output to token units
func fromWei(v interface{}) decimal.Decimal {
	b, ok := v.(*big.Int)
	if !ok {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(b, -tokenDecimals)
}

// toWei converts a human-readable amount to wei. The literal "max" (any
// casing) maps to 2^256-1.
func toWei(amount string) (*big.Int, error) {
	if strings.EqualFold(strings.TrimSpace(amount), "max") {
		max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
		return max, nil
	}

	value, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	if value.IsNegative() {
		return nil, fmt.Errorf("invalid amount %q: negative", amount)
	}
	return value.Shift(tokenDecimals).BigInt(), nil
}

func ensureHexPrefix(s string) string {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return s
	}
	return "0x" + s
}

// addressOrDefault resolves an optional recipient to the sender
func addressOrDefault(addr, fallback string) common.Address {
	if addr == "" {
		return common.HexToAddress(fallback)
	}
	return common.HexToAddress(addr)
}

// addressEqual compares two hex addresses case-insensitively
func addressEqual(a, b string) bool {
	return common.HexToAddress(a) == common.HexToAddress(b)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"go.uber.org/zap"

	"github.com/chrisstampar/fx-api/internal/models"
	"github.com/chrisstampar/fx-api/internal/sdk"
	"github.com/chrisstampar/fx-api/internal/validation"
	"github.com/chrisstampar/fx-api/pkg/logger"
)

// TxBuilder produces an unsigned transaction against a chain client
type TxBuilder func(ctx context.Context, client sdk.ProtocolClient) (*sdk.TxData, error)

// Broadcast submits a signed raw transaction and starts tracking it
func (s *GatewayService) Broadcast(ctx context.Context, rawTx string) (*models.TransactionResponse, error) {
	if !validation.IsValidHexString(rawTx, false) {
		return nil, models.NewAppError(models.ErrInvalidTransactionFormat,
			"rawTransaction must be a 0x-prefixed hex string", nil)
	}

	var hash string
	err := s.call(ctx, "broadcast", func(client sdk.ProtocolClient) error {
		var callErr error
		hash, callErr = client.BroadcastRawTransaction(ctx, rawTx)
		return callErr
	})
	if err != nil {
		return nil, toAppError(err)
	}

	s.tracker.Track(hash, "", "")
	if s.collector != nil {
		s.collector.RecordBroadcast()
	}
	logger.GetLogger().Info("transaction broadcast", zap.String("tx_hash", hash))

	return &models.TransactionResponse{
		Success:         true,
		TransactionHash: hash,
		Status:          sdk.StatusPending,
	}, nil
}

// TransactionStatus resolves the lifecycle state of a transaction. The
// local tracker answers first for anything broadcast through this API;
// the chain receipt is consulted for everything else and to promote
// pending entries.
func (s *GatewayService) TransactionStatus(ctx context.Context, txHash string) (*models.TransactionStatusResponse, error) {
	if !validation.IsValidTxHash(txHash) {
		return nil, models.NewAppError(models.ErrInvalidTransactionHash,
			fmt.Sprintf("invalid transaction hash: %s", txHash), nil)
	}

	tracked := s.tracker.Get(txHash)
	if tracked != nil && tracked.Status != sdk.StatusPending {
		return &models.TransactionStatusResponse{
			TransactionHash: txHash,
			Status:          tracked.Status,
			BlockNumber:     tracked.BlockNumber,
			Confirmations:   tracked.Confirmations,
			GasUsed:         tracked.GasUsed,
			Error:           tracked.Error,
		}, nil
	}

	var receipt *sdk.Receipt
	var head int64
	err := s.call(ctx, "transaction_status", func(client sdk.ProtocolClient) error {
		r, callErr := client.TransactionReceipt(ctx, txHash)
		if callErr != nil {
			return callErr
		}
		receipt = r
		head, callErr = client.BlockNumber(ctx)
		return callErr
	})
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			if tracked != nil {
				return &models.TransactionStatusResponse{
					TransactionHash: txHash,
					Status:          sdk.StatusPending,
				}, nil
			}
			return &models.TransactionStatusResponse{
				TransactionHash: txHash,
				Status:          sdk.StatusNotFound,
			}, nil
		}
		return nil, toAppError(err)
	}

	status := sdk.StatusConfirmed
	var errMsg string
	if receipt.Status == 0 {
		status = sdk.StatusFailed
		errMsg = "transaction reverted"
	}

	confirmations := head - receipt.BlockNumber + 1
	if confirmations < 0 {
		confirmations = 0
	}

	if tracked != nil {
		s.tracker.Update(txHash, status, &receipt.BlockNumber, &confirmations, &receipt.GasUsed, errMsg)
	}

	resp := &models.TransactionStatusResponse{
		TransactionHash: txHash,
		Status:          status,
		BlockNumber:     &receipt.BlockNumber,
		Confirmations:   &confirmations,
		GasUsed:         &receipt.GasUsed,
		Error:           errMsg,
	}
	if receipt.EffectiveGasPrice != nil {
		resp.EffectiveGasPrice = receipt.EffectiveGasPrice.String()
	}
	return resp, nil
}

// PrepareTx builds one unsigned transaction. When estimateFrom is set a
// gas estimate is attached; estimation failures degrade to the built
// transaction without the estimate.
func (s *GatewayService) PrepareTx(ctx context.Context, estimateFrom string, build TxBuilder) (*models.TransactionDataResponse, error) {
	var tx *sdk.TxData
	err := s.call(ctx, "prepare_tx", func(client sdk.ProtocolClient) error {
		var callErr error
		tx, callErr = build(ctx, client)
		return callErr
	})
	if err != nil {
		return nil, toAppError(err)
	}

	resp := txDataToResponse(tx)
	if estimateFrom != "" {
		s.attachGasEstimate(ctx, estimateFrom, resp)
	}
	return resp, nil
}

// PrepareTxs builds a sequence of unsigned transactions, in order
func (s *GatewayService) PrepareTxs(ctx context.Context, estimateFrom string, builds []TxBuilder) (*models.PreparedTransactionsResponse, error) {
	transactions := make([]*models.TransactionDataResponse, 0, len(builds))
	for _, build := range builds {
		resp, err := s.PrepareTx(ctx, estimateFrom, build)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, resp)
	}
	return &models.PreparedTransactionsResponse{
		Transactions: transactions,
		Count:        len(transactions),
	}, nil
}

func txDataToResponse(tx *sdk.TxData) *models.TransactionDataResponse {
	return &models.TransactionDataResponse{
		To:                   tx.To,
		Data:                 tx.Data,
		Value:                tx.Value,
		Gas:                  tx.Gas,
		GasPrice:             tx.GasPrice,
		MaxFeePerGas:         tx.MaxFeePerGas,
		MaxPriorityFeePerGas: tx.MaxPriorityFeePerGas,
		Nonce:                tx.Nonce,
		ChainID:              tx.ChainID,
	}
}

func (s *GatewayService) attachGasEstimate(ctx context.Context, from string, resp *models.TransactionDataResponse) {
	account, appErr := checksummedAddress(from)
	if appErr != nil {
		logger.GetLogger().Warn("skipping gas estimate, invalid from address",
			zap.String("from", from))
		return
	}

	value := new(big.Int)
	if resp.Value != "" {
		if _, ok := value.SetString(resp.Value, 10); !ok {
			value = big.NewInt(0)
		}
	}

	var estimate *sdk.GasEstimate
	err := s.call(ctx, "estimate_gas", func(client sdk.ProtocolClient) error {
		var callErr error
		estimate, callErr = client.EstimateGas(ctx, account, resp.To, resp.Data, value)
		return callErr
	})
	if err != nil {
		logger.GetLogger().Warn("gas estimation failed",
			zap.String("to", resp.To), zap.Error(err))
		return
	}

	resp.EstimatedGas = &estimate.Gas
	if estimate.CostWei != nil {
		resp.EstimatedGasCostWei = estimate.CostWei.String()
	}
}

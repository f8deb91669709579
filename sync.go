// Copyright 2026 The ethwire Authors
// This file is part of the ethwire library.
//
// The ethwire library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The ethwire library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the ethwire library. If not, see <http://www.gnu.org/licenses/>.

package contract

import (
	"context"
	"errors"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// TransactionResult is what a synchronized transaction resolves to: the hash,
// the provider's receipt passed through untouched, and the receipt's logs
// decoded in order against the event schema in effect.
type TransactionResult struct {
	Tx      common.Hash
	Receipt *types.Receipt
	Logs    []Log
}

// Failed reports whether the mined transaction reverted.
func (r *TransactionResult) Failed() bool {
	return r.Receipt != nil && r.Receipt.Status == types.ReceiptStatusFailed
}

// Event returns the first decoded log with the given event name, or nil.
func (r *TransactionResult) Event(name string) *Log {
	for i := range r.Logs {
		if r.Logs[i].Name == name {
			return &r.Logs[i]
		}
	}
	return nil
}

// wait polls the provider until hash has a mined receipt, then assembles the
// result. The poll suspends on a ticker between lookups, so concurrent
// operations interleave freely. If cfg.Timeout elapses first the wait is
// abandoned with a TimeoutError carrying the hash; the transaction itself
// stays pending and remains recoverable through GetTransaction or
// SyncTransaction. Once submitted, a transaction cannot be withdrawn — only
// the client-side wait is cancellable.
func (a *Abstraction) wait(ctx context.Context, provider Provider, cfg Config, hash common.Hash, schema eventSchema) (*TransactionResult, error) {
	var (
		ticker   = time.NewTicker(cfg.PollInterval)
		deadline = time.NewTimer(cfg.Timeout)
		logger   = a.log.New("hash", hash)
	)
	defer ticker.Stop()
	defer deadline.Stop()

	for {
		receipt, err := provider.TransactionReceipt(ctx, hash)
		switch {
		case err == nil && mined(receipt):
			logger.Trace("Transaction confirmed", "block", receipt.BlockNumber)
			return assemble(hash, receipt, schema), nil
		case err == nil || errors.Is(err, ethereum.NotFound):
			logger.Trace("Transaction not yet mined")
		default:
			// Provider failures are terminal for the wait; they pass through
			// unmodified per the error contract.
			logger.Trace("Receipt retrieval failed", "err", err)
			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline.C:
			return nil, &TimeoutError{
				Contract: a.artifact.ContractName,
				Tx:       hash,
				Timeout:  cfg.Timeout,
			}
		case <-ticker.C:
		}
	}
}

// mined reports receipt finality: a receipt counts only once it carries a
// block reference. Some providers return pending receipts without one.
func mined(receipt *types.Receipt) bool {
	return receipt != nil && receipt.BlockNumber != nil
}

func assemble(hash common.Hash, receipt *types.Receipt, schema eventSchema) *TransactionResult {
	return &TransactionResult{
		Tx:      hash,
		Receipt: receipt,
		Logs:    schema.decodeAll(receipt.Logs),
	}
}

// GetTransaction performs a single receipt lookup for hash. It returns
// (nil, nil) while the transaction is unmined, and the assembled result as
// soon as a mined receipt exists — no waiting. Logs are decoded against the
// abstraction's current merged schema.
func (a *Abstraction) GetTransaction(ctx context.Context, hash common.Hash) (*TransactionResult, error) {
	provider, _, _ := a.snapshot()
	if provider == nil {
		return nil, ErrNoProvider
	}
	receipt, err := provider.TransactionReceipt(ctx, hash)
	if errors.Is(err, ethereum.NotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !mined(receipt) {
		return nil, nil
	}
	return assemble(hash, receipt, a.currentSchema()), nil
}

// SyncTransaction runs the synchronization wait against an already-submitted
// hash, typically to resume after a TimeoutError.
func (a *Abstraction) SyncTransaction(ctx context.Context, hash common.Hash) (*TransactionResult, error) {
	provider, cfg, _ := a.snapshot()
	if provider == nil {
		return nil, ErrNoProvider
	}
	return a.wait(ctx, provider, cfg, hash, a.currentSchema())
}

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

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Provider is the node-side surface the runtime drives. Every method is one
// round trip; implementations must honor the context for cancellation.
//
// Submission is account-managed: SendTransaction hands an unsigned message to
// the provider, which signs with the sender's account. Key management is the
// provider's concern, not the runtime's.
type Provider interface {
	// CallContract executes a free (non-mined) call against the latest state
	// and returns the raw ABI-encoded result.
	CallContract(ctx context.Context, msg ethereum.CallMsg) ([]byte, error)

	// SendTransaction submits msg for mining and returns the transaction
	// hash. A nil msg.To deploys the bytecode carried in msg.Data.
	SendTransaction(ctx context.Context, msg ethereum.CallMsg) (common.Hash, error)

	// EstimateGas returns a gas estimate for executing msg.
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)

	// CodeAt returns the code deployed at account in the latest state. An
	// empty result means no contract lives there.
	CodeAt(ctx context.Context, account common.Address) ([]byte, error)

	// TransactionReceipt returns the receipt of a mined transaction, or
	// ethereum.NotFound while the transaction is still pending.
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)

	// NetworkID returns the identifier of the network the provider is
	// connected to.
	NetworkID(ctx context.Context) (string, error)
}

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

// Package rpcprovider implements the contract runtime's Provider over a
// JSON-RPC connection. Transactions are submitted unsigned through
// eth_sendTransaction; the node's account manager signs for the sender.
package rpcprovider

import (
	"context"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/ethwire/contract"
)

// Client adapts a JSON-RPC connection to the contract.Provider surface.
type Client struct {
	c *rpc.Client
}

var _ contract.Provider = (*Client)(nil)

// Dial connects a provider to the given URL.
func Dial(rawurl string) (*Client, error) {
	return DialContext(context.Background(), rawurl)
}

// DialContext connects a provider to the given URL with ctx bounding the
// connection setup.
func DialContext(ctx context.Context, rawurl string) (*Client, error) {
	c, err := rpc.DialContext(ctx, rawurl)
	if err != nil {
		return nil, err
	}
	return NewClient(c), nil
}

// NewClient wraps an existing rpc connection.
func NewClient(c *rpc.Client) *Client {
	return &Client{c: c}
}

// Close shuts down the underlying connection.
func (p *Client) Close() {
	p.c.Close()
}

// RPC returns the underlying rpc client for requests outside the provider
// surface.
func (p *Client) RPC() *rpc.Client {
	return p.c
}

// CallContract executes a free call against the latest state.
func (p *Client) CallContract(ctx context.Context, msg ethereum.CallMsg) ([]byte, error) {
	var result hexutil.Bytes
	err := p.c.CallContext(ctx, &result, "eth_call", toCallArg(msg), "latest")
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SendTransaction submits msg for signing and mining by the node.
func (p *Client) SendTransaction(ctx context.Context, msg ethereum.CallMsg) (common.Hash, error) {
	var hash common.Hash
	err := p.c.CallContext(ctx, &hash, "eth_sendTransaction", toCallArg(msg))
	return hash, err
}

// EstimateGas returns the node's gas estimate for executing msg.
func (p *Client) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	var estimate hexutil.Uint64
	err := p.c.CallContext(ctx, &estimate, "eth_estimateGas", toCallArg(msg))
	if err != nil {
		return 0, err
	}
	return uint64(estimate), nil
}

// CodeAt returns the code deployed at account in the latest state.
func (p *Client) CodeAt(ctx context.Context, account common.Address) ([]byte, error) {
	var code hexutil.Bytes
	err := p.c.CallContext(ctx, &code, "eth_getCode", account, "latest")
	return code, err
}

// TransactionReceipt returns the receipt of a mined transaction. A null
// response maps to ethereum.NotFound so callers can poll on it.
func (p *Client) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	var receipt *types.Receipt
	err := p.c.CallContext(ctx, &receipt, "eth_getTransactionReceipt", txHash)
	if err == nil && receipt == nil {
		return nil, ethereum.NotFound
	}
	return receipt, err
}

// NetworkID returns the identifier reported by the connected node.
func (p *Client) NetworkID(ctx context.Context) (string, error) {
	var version string
	err := p.c.CallContext(ctx, &version, "net_version")
	return version, err
}

func toCallArg(msg ethereum.CallMsg) interface{} {
	arg := map[string]interface{}{
		"from": msg.From,
	}
	if msg.To != nil {
		arg["to"] = *msg.To
	}
	if len(msg.Data) > 0 {
		arg["data"] = hexutil.Bytes(msg.Data)
	}
	if msg.Value != nil {
		arg["value"] = (*hexutil.Big)(msg.Value)
	}
	if msg.Gas != 0 {
		arg["gas"] = hexutil.Uint64(msg.Gas)
	}
	if msg.GasPrice != nil {
		arg["gasPrice"] = (*hexutil.Big)(msg.GasPrice)
	}
	return arg
}

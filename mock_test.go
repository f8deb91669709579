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
	"encoding/binary"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/ethwire/contract/artifact"
)

// valueStoreJSON is the artifact of a contract with one view function, one
// mutating function and one event, the minimal surface exercising both
// invocation modes.
const valueStoreJSON = `{
	"contractName": "ValueStore",
	"abi": [
		{"type": "constructor", "stateMutability": "nonpayable", "inputs": [
			{"name": "initial", "type": "uint256"}]},
		{"type": "function", "name": "getValue", "stateMutability": "view",
			"inputs": [], "outputs": [{"name": "", "type": "uint256"}]},
		{"type": "function", "name": "setValue", "stateMutability": "nonpayable",
			"inputs": [{"name": "newValue", "type": "uint256"}], "outputs": []},
		{"type": "function", "name": "stats", "stateMutability": "view",
			"inputs": [], "outputs": [
				{"name": "value", "type": "uint256"},
				{"name": "writes", "type": "uint256"}]},
		{"type": "event", "name": "ValueSet", "anonymous": false, "inputs": [
			{"name": "value", "type": "uint256", "indexed": false}]}
	],
	"unlinked_binary": "0x6080604052600080fd",
	"networks": {
		"1": {"address": "0x1111111111111111111111111111111111111111"}
	}
}`

// mathLibJSON is a library artifact whose events should be merged into
// consumers that link it as an instance.
const mathLibJSON = `{
	"contractName": "MathLib",
	"abi": [
		{"type": "function", "name": "square", "stateMutability": "pure",
			"inputs": [{"name": "x", "type": "uint256"}],
			"outputs": [{"name": "", "type": "uint256"}]},
		{"type": "event", "name": "Computed", "anonymous": false, "inputs": [
			{"name": "caller", "type": "address", "indexed": true},
			{"name": "result", "type": "uint256", "indexed": false}]}
	],
	"unlinked_binary": "0x60806040526000600055",
	"networks": {
		"1": {"address": "0x2222222222222222222222222222222222222222"}
	}
}`

// calculatorJSON consumes MathLib: its bytecode carries an unresolved
// placeholder slot for it.
const calculatorJSON = `{
	"contractName": "Calculator",
	"abi": [
		{"type": "constructor", "stateMutability": "nonpayable", "inputs": []},
		{"type": "function", "name": "compute", "stateMutability": "nonpayable",
			"inputs": [{"name": "x", "type": "uint256"}], "outputs": []}
	],
	"unlinked_binary": "0x6080__MathLib_______________________________604052"
}`

func parseArtifact(t *testing.T, blob string) *artifact.Artifact {
	t.Helper()
	art, err := artifact.FromJSON([]byte(blob))
	require.NoError(t, err)
	return art
}

// fastConfig keeps synchronization waits test-sized.
func fastConfig() *Config {
	return &Config{
		Timeout:      250 * time.Millisecond,
		PollInterval: time.Millisecond,
	}
}

// mockProvider is a scripted in-memory Provider. Receipts can be made
// visible only after a number of polls to exercise the synchronization loop.
type mockProvider struct {
	mu        sync.Mutex
	networkID string
	code      map[common.Address][]byte
	receipts  map[common.Hash]*types.Receipt
	notBefore map[common.Hash]int // receipt hidden for the first N polls
	polls     map[common.Hash]int
	sent       []ethereum.CallMsg
	nonce      uint64
	callFn     func(msg ethereum.CallMsg) ([]byte, error)
	estimate   uint64
	receiptErr error // forced failure for receipt lookups
	// mine, when set, produces the receipt for each submitted transaction.
	mine func(msg ethereum.CallMsg, hash common.Hash) *types.Receipt
}

func newMockProvider() *mockProvider {
	return &mockProvider{
		networkID: "1",
		code:      make(map[common.Address][]byte),
		receipts:  make(map[common.Hash]*types.Receipt),
		notBefore: make(map[common.Hash]int),
		polls:     make(map[common.Hash]int),
		estimate:  21000,
	}
}

func (p *mockProvider) setCode(addr common.Address, code []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.code[addr] = code
}

func (p *mockProvider) setReceipt(hash common.Hash, receipt *types.Receipt, afterPolls int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.receipts[hash] = receipt
	p.notBefore[hash] = afterPolls
}

func (p *mockProvider) sentMessages() []ethereum.CallMsg {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]ethereum.CallMsg, len(p.sent))
	copy(out, p.sent)
	return out
}

func (p *mockProvider) lastSent() ethereum.CallMsg {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sent[len(p.sent)-1]
}

func (p *mockProvider) CallContract(_ context.Context, msg ethereum.CallMsg) ([]byte, error) {
	p.mu.Lock()
	fn := p.callFn
	p.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(msg)
}

func (p *mockProvider) SendTransaction(_ context.Context, msg ethereum.CallMsg) (common.Hash, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nonce++
	var seed [8]byte
	binary.BigEndian.PutUint64(seed[:], p.nonce)
	hash := crypto.Keccak256Hash(append(seed[:], msg.Data...))
	p.sent = append(p.sent, msg)
	if p.mine != nil {
		p.receipts[hash] = p.mine(msg, hash)
	}
	return hash, nil
}

func (p *mockProvider) EstimateGas(_ context.Context, msg ethereum.CallMsg) (uint64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.estimate, nil
}

func (p *mockProvider) CodeAt(_ context.Context, account common.Address) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.code[account], nil
}

func (p *mockProvider) TransactionReceipt(_ context.Context, txHash common.Hash) (*types.Receipt, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.receiptErr != nil {
		return nil, p.receiptErr
	}
	p.polls[txHash]++
	if p.polls[txHash] <= p.notBefore[txHash] {
		return nil, ethereum.NotFound
	}
	receipt, ok := p.receipts[txHash]
	if !ok {
		return nil, ethereum.NotFound
	}
	return receipt, nil
}

func (p *mockProvider) NetworkID(_ context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.networkID, nil
}

// minedReceipt builds a successful receipt carrying the given logs.
func minedReceipt(hash common.Hash, logs ...*types.Log) *types.Receipt {
	return &types.Receipt{
		Status:      types.ReceiptStatusSuccessful,
		TxHash:      hash,
		BlockNumber: big.NewInt(1),
		Logs:        logs,
	}
}

// valueSetLog encodes a ValueSet(uint256) log as the node would emit it.
func valueSetLog(t *testing.T, art *artifact.Artifact, emitter common.Address, value int64) *types.Log {
	t.Helper()
	ev, ok := art.ABI.Events["ValueSet"]
	require.True(t, ok)
	data, err := ev.Inputs.NonIndexed().Pack(big.NewInt(value))
	require.NoError(t, err)
	return &types.Log{
		Address: emitter,
		Topics:  []common.Hash{ev.ID},
		Data:    data,
	}
}

// computedLog encodes MathLib's Computed(address indexed, uint256) log.
func computedLog(t *testing.T, lib *artifact.Artifact, emitter, caller common.Address, result int64) *types.Log {
	t.Helper()
	ev, ok := lib.ABI.Events["Computed"]
	require.True(t, ok)
	data, err := ev.Inputs.NonIndexed().Pack(big.NewInt(result))
	require.NoError(t, err)
	return &types.Log{
		Address: emitter,
		Topics: []common.Hash{
			ev.ID,
			common.BytesToHash(common.LeftPadBytes(caller.Bytes(), 32)),
		},
		Data: data,
	}
}

// encodeUint256 is the raw return payload of a single uint256 output.
func encodeUint256(v int64) []byte {
	return common.LeftPadBytes(big.NewInt(v).Bytes(), 32)
}

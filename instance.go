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
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Instance is a live contract handle bound to exactly one address. Its
// address, method table and event decode schema are fixed at construction;
// an instance never mutates abstraction-level state. Instances are created
// with At, Deployed or Deploy and need no teardown.
type Instance struct {
	abstraction *Abstraction
	address     common.Address
	schema      eventSchema
	methods     map[string]*BoundMethod
}

// invocationKind selects once, at bind time, whether a method's default
// invocation is a free call or a synchronized transaction. It is never
// re-derived per call.
type invocationKind int

const (
	readInvocation invocationKind = iota
	writeInvocation
)

// BoundMethod is the invocation surface of one contract function on one
// instance. Invoke follows the function's declared mutability; Call,
// SendTransaction and EstimateGas force a specific mode.
type BoundMethod struct {
	instance *Instance
	name     string // ABI lookup name, carries the overload suffix
	kind     invocationKind
}

// bindMethods synthesizes the dispatch table from the artifact's ABI.
// Overloaded functions appear under geth's overload names (foo, foo0, ...).
func (in *Instance) bindMethods() {
	methods := make(map[string]*BoundMethod, len(in.abstraction.artifact.ABI.Methods))
	for name, m := range in.abstraction.artifact.ABI.Methods {
		kind := writeInvocation
		if m.IsConstant() {
			kind = readInvocation
		}
		methods[name] = &BoundMethod{instance: in, name: name, kind: kind}
	}
	in.methods = methods
}

// Address returns the address this instance is bound to.
func (in *Instance) Address() common.Address {
	return in.address
}

// Abstraction returns the abstraction this instance was created from.
func (in *Instance) Abstraction() *Abstraction {
	return in.abstraction
}

// Method looks up the bound surface for the named function.
func (in *Instance) Method(name string) (*BoundMethod, error) {
	m, ok := in.methods[name]
	if !ok {
		return nil, fmt.Errorf("contract: %s has no method %q", in.abstraction.artifact.ContractName, name)
	}
	return m, nil
}

// Invoke dispatches the named function by its declared mutability, like
// Method(name).Invoke. It exists for callers that carry method names as data.
func (in *Instance) Invoke(ctx context.Context, name string, args ...interface{}) (interface{}, error) {
	m, err := in.Method(name)
	if err != nil {
		return nil, err
	}
	return m.Invoke(ctx, args...)
}

// Fallback sends a plain value transfer to the instance address, synchronized
// like any other write. params may be nil when the defaults carry everything.
func (in *Instance) Fallback(ctx context.Context, params *TxParams) (*TransactionResult, error) {
	provider, cfg, defaults := in.abstraction.snapshot()
	if provider == nil {
		return nil, ErrNoProvider
	}
	to := in.address
	hash, err := provider.SendTransaction(ctx, defaults.merge(params).message(&to, nil))
	if err != nil {
		return nil, err
	}
	return in.abstraction.wait(ctx, provider, cfg, hash, in.schema)
}

// Send is the value-only shorthand for Fallback.
func (in *Instance) Send(ctx context.Context, amount *big.Int) (*TransactionResult, error) {
	return in.Fallback(ctx, &TxParams{Value: amount})
}

// split separates the ABI arguments from an optional trailing *TxParams and
// enforces the declared arity.
func (m *BoundMethod) split(args []interface{}) ([]interface{}, *TxParams, error) {
	callArgs, override, err := splitParams(args)
	if err != nil {
		return nil, nil, err
	}
	inputs := m.instance.abstraction.artifact.ABI.Methods[m.name].Inputs
	if len(callArgs) != len(inputs) {
		return nil, nil, &ArgumentCountError{
			Contract: m.instance.abstraction.artifact.ContractName,
			Method:   m.name,
			Want:     len(inputs),
			Got:      len(callArgs),
		}
	}
	return callArgs, override, nil
}

// splitParams peels a trailing transaction parameter record, passed either by
// pointer or by value, off an argument list.
func splitParams(args []interface{}) ([]interface{}, *TxParams, error) {
	if n := len(args); n > 0 {
		switch p := args[n-1].(type) {
		case *TxParams:
			return args[:n-1], p, nil
		case TxParams:
			return args[:n-1], &p, nil
		}
	}
	return args, nil, nil
}

// pack ABI-encodes the invocation and assembles the provider message against
// the layered parameters.
func (m *BoundMethod) pack(args []interface{}) ([]byte, *TxParams, error) {
	callArgs, override, err := m.split(args)
	if err != nil {
		return nil, nil, err
	}
	data, err := m.instance.abstraction.artifact.ABI.Pack(m.name, callArgs...)
	if err != nil {
		return nil, nil, err
	}
	return data, override, nil
}

// Invoke runs the method in its default mode: a free call resolving to the
// decoded return values for view and pure functions, a synchronized
// transaction resolving to a *TransactionResult for everything else. An
// optional trailing *TxParams overrides the abstraction's defaults per field.
//
// A single declared output is returned bare; multiple outputs come back as a
// []interface{} in declaration order.
func (m *BoundMethod) Invoke(ctx context.Context, args ...interface{}) (interface{}, error) {
	if m.kind == readInvocation {
		return m.Call(ctx, args...)
	}
	return m.Transact(ctx, args...)
}

// Call executes the method as a free call regardless of mutability and
// returns the decoded outputs. State changes it makes are not persisted by
// the network.
func (m *BoundMethod) Call(ctx context.Context, args ...interface{}) (interface{}, error) {
	data, override, err := m.pack(args)
	if err != nil {
		return nil, err
	}
	provider, _, defaults := m.instance.abstraction.snapshot()
	if provider == nil {
		return nil, ErrNoProvider
	}
	to := m.instance.address
	ret, err := provider.CallContract(ctx, defaults.merge(override).message(&to, data))
	if err != nil {
		return nil, err
	}
	outputs, err := m.instance.abstraction.artifact.ABI.Unpack(m.name, ret)
	if err != nil {
		return nil, err
	}
	switch len(outputs) {
	case 0:
		return nil, nil
	case 1:
		return outputs[0], nil
	default:
		return outputs, nil
	}
}

// Transact submits the method as a transaction and synchronizes on its
// receipt, decoding the emitted logs against the instance's event schema.
func (m *BoundMethod) Transact(ctx context.Context, args ...interface{}) (*TransactionResult, error) {
	hash, err := m.SendTransaction(ctx, args...)
	if err != nil {
		return nil, err
	}
	provider, cfg, _ := m.instance.abstraction.snapshot()
	return m.instance.abstraction.wait(ctx, provider, cfg, hash, m.instance.schema)
}

// SendTransaction submits the method as a raw transaction and returns the
// hash without waiting for it to be mined.
func (m *BoundMethod) SendTransaction(ctx context.Context, args ...interface{}) (common.Hash, error) {
	data, override, err := m.pack(args)
	if err != nil {
		return common.Hash{}, err
	}
	provider, _, defaults := m.instance.abstraction.snapshot()
	if provider == nil {
		return common.Hash{}, ErrNoProvider
	}
	to := m.instance.address
	return provider.SendTransaction(ctx, defaults.merge(override).message(&to, data))
}

// EstimateGas asks the provider for a gas estimate of the invocation.
func (m *BoundMethod) EstimateGas(ctx context.Context, args ...interface{}) (uint64, error) {
	data, override, err := m.pack(args)
	if err != nil {
		return 0, err
	}
	provider, _, defaults := m.instance.abstraction.snapshot()
	if provider == nil {
		return 0, ErrNoProvider
	}
	to := m.instance.address
	return provider.EstimateGas(ctx, defaults.merge(override).message(&to, data))
}

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
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
)

// TxParams holds the transaction parameters of an invocation. A zero field is
// unset: the abstraction-level default applies, or the provider picks a value
// (gas estimation, suggested price). A TxParams passed as the final argument
// of an invocation overrides the abstraction's defaults field by field.
type TxParams struct {
	From     common.Address // sender account, signed for by the provider
	Gas      uint64         // gas limit
	GasPrice *big.Int       // wei per gas
	Value    *big.Int       // wei sent along with the invocation
}

// merge layers override on top of p: every field set in override wins, unset
// fields keep p's value. Neither receiver nor argument is mutated.
func (p TxParams) merge(override *TxParams) TxParams {
	if override == nil {
		return p
	}
	out := p
	if override.From != (common.Address{}) {
		out.From = override.From
	}
	if override.Gas != 0 {
		out.Gas = override.Gas
	}
	if override.GasPrice != nil {
		out.GasPrice = override.GasPrice
	}
	if override.Value != nil {
		out.Value = override.Value
	}
	return out
}

// message assembles the provider call message for an invocation of the
// contract at to with the given input data. A nil to deploys.
func (p TxParams) message(to *common.Address, data []byte) ethereum.CallMsg {
	return ethereum.CallMsg{
		From:     p.From,
		To:       to,
		Gas:      p.Gas,
		GasPrice: p.GasPrice,
		Value:    p.Value,
		Data:     data,
	}
}

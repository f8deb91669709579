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
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ethereum/go-ethereum/common"
)

// addressTable tracks where one contract lives on each known network. Exactly
// one network identifier is current at a time; switching is always explicit
// via Abstraction.SetNetwork, never inferred from the provider.
type addressTable struct {
	contract string
	current  string
	bindings map[string]common.Address
}

func newAddressTable(contract string) *addressTable {
	return &addressTable{
		contract: contract,
		bindings: make(map[string]common.Address),
	}
}

func (t *addressTable) set(id string, addr common.Address) {
	t.bindings[id] = addr
}

func (t *addressTable) has(id string) bool {
	_, ok := t.bindings[id]
	return ok
}

// address resolves the deployed address for the current network. It fails
// with NoAddressError when the current network has no binding, including when
// no network has been selected at all.
func (t *addressTable) address() (common.Address, error) {
	addr, ok := t.bindings[t.current]
	if !ok {
		return common.Address{}, &NoAddressError{Contract: t.contract, NetworkID: t.current}
	}
	return addr, nil
}

// ids returns the set of all network identifiers with a binding.
func (t *addressTable) ids() mapset.Set[string] {
	s := mapset.NewSet[string]()
	for id := range t.bindings {
		s.Add(id)
	}
	return s
}

// forNetwork returns a fresh table whose current network is id and which
// carries no bindings. Used by Abstraction.Clone.
func (t *addressTable) forNetwork(id string) *addressTable {
	fresh := newAddressTable(t.contract)
	fresh.current = id
	return fresh
}

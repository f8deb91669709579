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
	"encoding/hex"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ethwire/contract/artifact"
)

// linkEntry is one resolved library binding. A binding made from a live
// library instance keeps a reference to it so the library's events can be
// merged into the decode schema of instances created afterwards.
type linkEntry struct {
	address     common.Address
	source      *Instance // nil for plain name/address bindings
	mergeEvents bool
}

// linkTable maps library names to their resolved bindings. Relinking a name
// overwrites the whole entry, merge flag included; last write wins and
// applying the same binding twice is a no-op.
type linkTable map[string]linkEntry

func (lt linkTable) set(name string, entry linkEntry) {
	lt[name] = entry
}

func (lt linkTable) clone() linkTable {
	out := make(linkTable, len(lt))
	for name, entry := range lt {
		out[name] = entry
	}
	return out
}

// resolve substitutes every placeholder slot of every linked library in the
// bytecode template and returns the result. Substitution is order independent
// because each name owns distinct slots.
func (lt linkTable) resolve(template string) string {
	bin := template
	for name, entry := range lt {
		slot := artifact.Placeholder(name)
		addr := hex.EncodeToString(entry.address.Bytes())
		bin = strings.ReplaceAll(bin, slot, addr)
	}
	return bin
}

// mustResolve is resolve plus the deploy-time completeness check: any slot
// left over fails with UnlinkedLibraryError naming the missing libraries.
func (lt linkTable) mustResolve(contract, template string) (string, error) {
	bin := lt.resolve(template)
	if missing := artifact.Placeholders(bin); len(missing) > 0 {
		sort.Strings(missing)
		return "", &UnlinkedLibraryError{Contract: contract, Libraries: missing}
	}
	return bin, nil
}

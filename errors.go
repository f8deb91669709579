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
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrNoProvider is returned by any operation that needs a live connection
	// before SetProvider has been called.
	ErrNoProvider = errors.New("contract: no provider configured")

	// ErrNoCodeAfterDeploy is returned when a creation transaction is mined
	// but leaves no code behind, e.g. a constructor that ran out of gas on a
	// chain without status reporting.
	ErrNoCodeAfterDeploy = errors.New("contract: no code after deployment")
)

// NoAddressError is returned when the current network has no deployed address
// bound for the contract.
type NoAddressError struct {
	Contract  string
	NetworkID string
}

func (e *NoAddressError) Error() string {
	if e.NetworkID == "" {
		return fmt.Sprintf("contract: %s has no deployed address and no network has been selected", e.Contract)
	}
	return fmt.Sprintf("contract: %s has no deployed address on network %s", e.Contract, e.NetworkID)
}

// InvalidNetworkError is returned when an address is bound for the selected
// network but the provider reports a different network identifier.
type InvalidNetworkError struct {
	Contract  string
	Bound     string // network the abstraction is bound to
	Connected string // network the provider reports
}

func (e *InvalidNetworkError) Error() string {
	return fmt.Sprintf("contract: %s is bound to network %s but the provider is connected to network %s",
		e.Contract, e.Bound, e.Connected)
}

// NotDeployedError is returned when no executable code exists at the address
// a contract handle resolves to.
type NotDeployedError struct {
	Contract string
	Address  common.Address
}

func (e *NotDeployedError) Error() string {
	return fmt.Sprintf("contract: no code at %s (%s)", e.Address.Hex(), e.Contract)
}

// UnlinkedLibraryError is returned when bytecode still contains unresolved
// library placeholders at deployment time.
type UnlinkedLibraryError struct {
	Contract  string
	Libraries []string
}

func (e *UnlinkedLibraryError) Error() string {
	return fmt.Sprintf("contract: %s has unlinked libraries: %s", e.Contract, strings.Join(e.Libraries, ", "))
}

// ArgumentCountError is returned when an invocation supplies the wrong number
// of arguments for the method's declared inputs. A trailing *TxParams record
// is not counted.
type ArgumentCountError struct {
	Contract string
	Method   string
	Want     int
	Got      int
}

func (e *ArgumentCountError) Error() string {
	return fmt.Sprintf("contract: %s.%s expects %d argument(s), got %d", e.Contract, e.Method, e.Want, e.Got)
}

// TimeoutError is returned when a submitted transaction is not mined within
// the configured synchronization timeout. The transaction itself is still
// pending: its outcome can be recovered later with GetTransaction or
// SyncTransaction using the carried hash.
type TimeoutError struct {
	Contract string
	Tx       common.Hash
	Timeout  time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("contract: transaction %s was not mined within %v (%s); it may still be pending",
		e.Tx.Hex(), e.Timeout, e.Contract)
}

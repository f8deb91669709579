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

// Package artifact parses contract build artifacts: the JSON records produced
// by a compile step, carrying a contract's ABI, its (possibly unlinked)
// creation bytecode and the addresses it has been deployed to per network.
//
// The artifact is the static input of the contract runtime. It is immutable
// after parsing; all mutable state (link resolution, network selection) lives
// on the abstractions built on top of it.
package artifact

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// placeholderRE matches an unresolved library slot inside hex bytecode: a
// 40 character hole starting with "__", the library name padded out with
// underscores. The slot width equals one ABI-encoded address (20 bytes).
var placeholderRE = regexp.MustCompile(`__[A-Za-z0-9_$]{38}`)

// Deployment is the per-network record of a deployed contract.
type Deployment struct {
	Address common.Address `json:"address"`
}

// Artifact is a parsed contract artifact. The zero value is not usable;
// construct one with Parse or FromJSON.
type Artifact struct {
	ContractName string
	ABI          abi.ABI
	RawABI       json.RawMessage
	// Binary is the hex creation bytecode template, 0x-prefixed. It may
	// contain named placeholder slots for not-yet-linked libraries.
	Binary string
	// Networks maps a network identifier to the deployment on that network.
	Networks map[string]Deployment
	// Address is the legacy single-network deployment field, set only when
	// the artifact carries a top-level address.
	Address *common.Address
}

type artifactJSON struct {
	ContractName   string                `json:"contractName"`
	ABI            json.RawMessage       `json:"abi"`
	UnlinkedBinary string                `json:"unlinked_binary"`
	Bytecode       string                `json:"bytecode"`
	Address        string                `json:"address"`
	Networks       map[string]Deployment `json:"networks"`
}

// Parse reads a contract artifact from r.
func Parse(r io.Reader) (*Artifact, error) {
	blob, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return FromJSON(blob)
}

// FromJSON parses a contract artifact from its JSON encoding. The ABI is
// decoded eagerly so that signature hashes are available without touching a
// provider.
func FromJSON(blob []byte) (*Artifact, error) {
	var raw artifactJSON
	if err := json.Unmarshal(blob, &raw); err != nil {
		return nil, fmt.Errorf("artifact: invalid JSON: %w", err)
	}
	if len(raw.ABI) == 0 {
		return nil, errors.New("artifact: missing abi")
	}
	parsed, err := abi.JSON(bytes.NewReader(raw.ABI))
	if err != nil {
		return nil, fmt.Errorf("artifact: invalid abi: %w", err)
	}
	binary := raw.UnlinkedBinary
	if binary == "" {
		binary = raw.Bytecode
	}
	art := &Artifact{
		ContractName: raw.ContractName,
		ABI:          parsed,
		RawABI:       raw.ABI,
		Binary:       binary,
		Networks:     make(map[string]Deployment, len(raw.Networks)),
	}
	for id, dep := range raw.Networks {
		art.Networks[id] = dep
	}
	if raw.Address != "" {
		if !common.IsHexAddress(raw.Address) {
			return nil, fmt.Errorf("artifact: invalid address %q", raw.Address)
		}
		addr := common.HexToAddress(raw.Address)
		art.Address = &addr
	}
	return art, nil
}

// Placeholders returns the distinct library names of all unresolved slots in
// bin, in order of first occurrence.
func Placeholders(bin string) []string {
	var (
		names []string
		seen  = make(map[string]bool)
	)
	for _, slot := range placeholderRE.FindAllString(bin, -1) {
		name := strings.TrimRight(slot[2:], "_")
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// Placeholder returns the 40 character slot a linker must substitute for the
// named library. Names longer than the slot are truncated, matching the way
// compilers emit them.
func Placeholder(name string) string {
	if len(name) > 38 {
		name = name[:38]
	}
	return "__" + name + strings.Repeat("_", 38-len(name))
}

// Linked reports whether bin contains no unresolved library slots.
func Linked(bin string) bool {
	return !placeholderRE.MatchString(bin)
}

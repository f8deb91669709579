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
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Log is one event record reconstructed from a transaction receipt. When the
// emitting event is known to the decode schema, Name and Args carry the
// decoded form; otherwise they are left empty and only the raw log remains.
// Unknown logs are passed through, never dropped.
type Log struct {
	Name    string
	Args    map[string]interface{}
	Address common.Address // emitting contract
	Raw     *types.Log
}

// Decoded reports whether the log was matched against the schema.
func (l Log) Decoded() bool {
	return l.Name != ""
}

// eventSchema maps event signature hashes (topic zero) to their specs. An
// instance captures one schema at construction and keeps it for life: links
// applied to the abstraction afterwards never affect existing instances.
type eventSchema map[common.Hash]abi.Event

// newEventSchema unions the abstraction's own events with those of every
// linked library whose merge flag is set. Libraries are applied first so the
// contract's own events win signature collisions.
func newEventSchema(own abi.ABI, links linkTable) eventSchema {
	schema := make(eventSchema)
	for _, entry := range links {
		if !entry.mergeEvents || entry.source == nil {
			continue
		}
		for _, ev := range entry.source.abstraction.artifact.ABI.Events {
			schema[ev.ID] = ev
		}
	}
	for _, ev := range own.Events {
		schema[ev.ID] = ev
	}
	return schema
}

// decode reconstructs a structured event from one raw log. Logs whose
// signature hash is unknown, and anonymous logs without topics, come back
// undecoded with the raw fields preserved.
func (s eventSchema) decode(raw *types.Log) Log {
	entry := Log{Address: raw.Address, Raw: raw}
	if len(raw.Topics) == 0 {
		return entry
	}
	ev, ok := s[raw.Topics[0]]
	if !ok {
		return entry
	}
	args := make(map[string]interface{})
	if err := ev.Inputs.NonIndexed().UnpackIntoMap(args, raw.Data); err != nil {
		return entry
	}
	var indexed abi.Arguments
	for _, arg := range ev.Inputs {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	if len(indexed) > 0 {
		if err := abi.ParseTopicsIntoMap(args, indexed, raw.Topics[1:]); err != nil {
			return entry
		}
	}
	entry.Name = ev.RawName
	entry.Args = args
	return entry
}

// decodeAll decodes a receipt's logs in receipt order.
func (s eventSchema) decodeAll(raw []*types.Log) []Log {
	logs := make([]Log, len(raw))
	for i, l := range raw {
		logs[i] = s.decode(l)
	}
	return logs
}

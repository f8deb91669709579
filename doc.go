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

// Package contract turns a static contract artifact into a live handle for a
// deployed contract: method invocations that dispatch to a free call or a
// synchronized transaction by declared mutability, receipt waits bounded by a
// timeout, event reconstruction from raw logs (including events of linked
// libraries), library linkage, and per-network address binding.
//
//	art, _ := artifact.Parse(f)
//	box := contract.FromArtifact(art, nil)
//	box.SetProvider(provider)
//	box.SetNetwork("1")
//
//	inst, err := box.Deployed(ctx)
//	if err != nil { ... }
//	setValue, _ := inst.Method("setValue")
//	res, err := setValue.Transact(ctx, big.NewInt(5))   // mined and decoded
//	getValue, _ := inst.Method("getValue")
//	v, err := getValue.Invoke(ctx)                      // free call, no tx
//
// A wait that outlives the configured timeout fails with TimeoutError but
// leaves the transaction pending; GetTransaction and SyncTransaction recover
// its outcome once mined.
package contract

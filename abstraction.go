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
	"errors"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"

	"github.com/ethwire/contract/artifact"
)

const (
	// DefaultTimeout bounds how long a synchronized transaction waits for a
	// mined receipt before failing with TimeoutError.
	DefaultTimeout = 120 * time.Second

	// DefaultPollInterval is the pause between receipt lookups while waiting.
	DefaultPollInterval = time.Second
)

// Config carries the per-abstraction runtime settings. The zero value selects
// the defaults.
type Config struct {
	// Timeout bounds synchronized waits; DefaultTimeout when zero.
	Timeout time.Duration
	// PollInterval spaces receipt lookups; DefaultPollInterval when zero.
	PollInterval time.Duration
	// Logger receives trace output; log.Root() when nil.
	Logger log.Logger
}

func (c Config) withDefaults() Config {
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.PollInterval == 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.Logger == nil {
		c.Logger = log.Root()
	}
	return c
}

// Abstraction is the live handle for one contract type: an artifact plus
// everything mutable around it — the provider connection, the selected
// network, library links, and transaction parameter defaults. Instances
// created from it are bound to a single address and read a snapshot of the
// abstraction's state; they never mutate it.
//
// An Abstraction is safe for concurrent use. Mutators (SetProvider,
// SetNetwork, Link, SetDefaults) take the write lock; invocations only read.
type Abstraction struct {
	artifact *artifact.Artifact

	mu       sync.RWMutex
	provider Provider
	addrs    *addressTable
	links    linkTable
	defaults TxParams
	cfg      Config
	log      log.Logger
}

// FromArtifact builds an Abstraction from a parsed artifact. Known per-network
// deployments are seeded into the address table; no network is selected and no
// provider is bound until the caller says so. A nil cfg selects the defaults.
func FromArtifact(art *artifact.Artifact, cfg *Config) *Abstraction {
	c := Config{}
	if cfg != nil {
		c = *cfg
	}
	c = c.withDefaults()
	a := &Abstraction{
		artifact: art,
		addrs:    newAddressTable(art.ContractName),
		links:    make(linkTable),
		cfg:      c,
		log:      c.Logger.New("contract", art.ContractName),
	}
	for id, dep := range art.Networks {
		a.addrs.set(id, dep.Address)
	}
	return a
}

// Name returns the contract type name from the artifact.
func (a *Abstraction) Name() string {
	return a.artifact.ContractName
}

// Artifact returns the shared, read-only artifact backing this abstraction.
func (a *Abstraction) Artifact() *artifact.Artifact {
	return a.artifact
}

// SetProvider binds the provider used for all subsequent operations.
func (a *Abstraction) SetProvider(p Provider) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.provider = p
}

// SetNetwork selects the current network. The identifier does not need a
// deployed address bound yet; resolution only fails at the point of use.
func (a *Abstraction) SetNetwork(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.addrs.current = id
}

// NetworkID returns the currently selected network identifier, "" if none.
func (a *Abstraction) NetworkID() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.addrs.current
}

// HasNetwork reports whether a deployed address is bound for id.
func (a *Abstraction) HasNetwork(id string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.addrs.has(id)
}

// Networks returns the set of all network identifiers with a bound address.
func (a *Abstraction) Networks() mapset.Set[string] {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.addrs.ids()
}

// SetAddress binds addr as the deployment on network id.
func (a *Abstraction) SetAddress(id string, addr common.Address) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.addrs.set(id, addr)
}

// Address resolves the deployed address for the current network, failing with
// NoAddressError when none is bound.
func (a *Abstraction) Address() (common.Address, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.addrs.address()
}

// Defaults returns the current transaction parameter defaults.
func (a *Abstraction) Defaults() TxParams {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.defaults
}

// SetDefaults layers p onto the current defaults: fields set in p win, fields
// left unset keep their previous value.
func (a *Abstraction) SetDefaults(p TxParams) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.defaults = a.defaults.merge(&p)
}

// SetTimeout adjusts the synchronization timeout for subsequent waits.
func (a *Abstraction) SetTimeout(d time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cfg.Timeout = d
}

// Link binds a deployed library instance. The library name is taken from the
// instance's artifact and its address from the instance itself; the library's
// events are merged into the decode schema of instances created afterwards.
func (a *Abstraction) Link(lib *Instance) error {
	name := lib.abstraction.artifact.ContractName
	if name == "" {
		return errors.New("contract: cannot link a library with no contract name")
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.links.set(name, linkEntry{address: lib.address, source: lib, mergeEvents: true})
	return nil
}

// LinkAddress binds the named library to a plain address. No event merging
// happens for bindings made this way. Relinking a name overwrites the prior
// binding entirely.
func (a *Abstraction) LinkAddress(name string, addr common.Address) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.links.set(name, linkEntry{address: addr})
}

// LinkAddresses applies a batch of name to address bindings.
func (a *Abstraction) LinkAddresses(libs map[string]common.Address) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for name, addr := range libs {
		a.links.set(name, linkEntry{address: addr})
	}
}

// Binary returns the creation bytecode with all current links applied. It
// fails with UnlinkedLibraryError if any placeholder remains unresolved.
func (a *Abstraction) Binary() (string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.links.mustResolve(a.artifact.ContractName, a.artifact.Binary)
}

// Clone derives a new Abstraction for another network: the artifact is
// shared, links and defaults are copied by value, the address table starts
// empty with networkID selected, and no provider is bound.
func (a *Abstraction) Clone(networkID string) *Abstraction {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return &Abstraction{
		artifact: a.artifact,
		addrs:    a.addrs.forNetwork(networkID),
		links:    a.links.clone(),
		defaults: a.defaults,
		cfg:      a.cfg,
		log:      a.log.New("network", networkID),
	}
}

// snapshot captures the state an operation runs against, so that concurrent
// mutation of the abstraction cannot tear a single invocation.
func (a *Abstraction) snapshot() (Provider, Config, TxParams) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.provider, a.cfg, a.defaults
}

// instance builds the live handle for the contract at addr, capturing the
// merged event schema and the bound method table at this moment.
func (a *Abstraction) instance(addr common.Address) *Instance {
	a.mu.RLock()
	schema := newEventSchema(a.artifact.ABI, a.links)
	a.mu.RUnlock()
	in := &Instance{
		abstraction: a,
		address:     addr,
		schema:      schema,
	}
	in.bindMethods()
	return in
}

// At returns the handle for the contract at address after verifying that
// executable code actually lives there; NotDeployedError otherwise.
func (a *Abstraction) At(ctx context.Context, address common.Address) (*Instance, error) {
	provider, _, _ := a.snapshot()
	if provider == nil {
		return nil, ErrNoProvider
	}
	code, err := provider.CodeAt(ctx, address)
	if err != nil {
		return nil, err
	}
	if len(code) == 0 {
		return nil, &NotDeployedError{Contract: a.artifact.ContractName, Address: address}
	}
	return a.instance(address), nil
}

// Deployed resolves the current network's bound address and returns the
// handle there. Beyond the code check of At it cross-checks that the provider
// is actually connected to the selected network, failing with
// InvalidNetworkError on a mismatch.
func (a *Abstraction) Deployed(ctx context.Context) (*Instance, error) {
	addr, err := a.Address()
	if err != nil {
		return nil, err
	}
	provider, _, _ := a.snapshot()
	if provider == nil {
		return nil, ErrNoProvider
	}
	connected, err := provider.NetworkID(ctx)
	if err != nil {
		return nil, err
	}
	if bound := a.NetworkID(); connected != bound {
		return nil, &InvalidNetworkError{
			Contract:  a.artifact.ContractName,
			Bound:     bound,
			Connected: connected,
		}
	}
	return a.At(ctx, addr)
}

// Deploy submits a contract creation transaction with the given constructor
// arguments and waits for it to be mined. On success the receipt's contract
// address is bound to the current network and the new instance is returned.
// Linking must be complete beforehand: unresolved placeholders fail fast with
// UnlinkedLibraryError, without touching the provider.
//
// An optional trailing *TxParams overrides the abstraction's defaults, the
// same way it does on method invocations.
func (a *Abstraction) Deploy(ctx context.Context, args ...interface{}) (*Instance, error) {
	bin, err := a.Binary()
	if err != nil {
		return nil, err
	}
	provider, cfg, defaults := a.snapshot()
	if provider == nil {
		return nil, ErrNoProvider
	}
	ctorArgs, override, err := splitParams(args)
	if err != nil {
		return nil, err
	}
	if want := len(a.artifact.ABI.Constructor.Inputs); len(ctorArgs) != want {
		return nil, &ArgumentCountError{
			Contract: a.artifact.ContractName,
			Method:   "constructor",
			Want:     want,
			Got:      len(ctorArgs),
		}
	}
	packed, err := a.artifact.ABI.Pack("", ctorArgs...)
	if err != nil {
		return nil, err
	}
	data := append(common.FromHex(bin), packed...)
	params := defaults.merge(override)
	hash, err := provider.SendTransaction(ctx, params.message(nil, data))
	if err != nil {
		return nil, err
	}
	a.log.Debug("Submitted contract creation", "hash", hash)
	result, err := a.wait(ctx, provider, cfg, hash, a.currentSchema())
	if err != nil {
		return nil, err
	}
	addr := result.Receipt.ContractAddress
	if addr == (common.Address{}) {
		return nil, ErrNoCodeAfterDeploy
	}
	// OOG in a constructor can leave an empty account behind; check that the
	// creation actually took.
	code, err := provider.CodeAt(ctx, addr)
	if err != nil {
		return nil, err
	}
	if len(code) == 0 {
		return nil, ErrNoCodeAfterDeploy
	}
	a.mu.Lock()
	if a.addrs.current != "" {
		a.addrs.set(a.addrs.current, addr)
	}
	a.mu.Unlock()
	a.log.Debug("Contract deployed", "address", addr, "hash", hash)
	return a.instance(addr), nil
}

// currentSchema merges the decode schema as of now. Used for waits that are
// not anchored to an instance (Deploy, GetTransaction, SyncTransaction).
func (a *Abstraction) currentSchema() eventSchema {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return newEventSchema(a.artifact.ABI, a.links)
}

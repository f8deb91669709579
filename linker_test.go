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
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkAddressResolvesBinary(t *testing.T) {
	box := FromArtifact(parseArtifact(t, calculatorJSON), fastConfig())

	// Unlinked bytecode is rejected with the missing library names.
	_, err := box.Binary()
	var unlinked *UnlinkedLibraryError
	require.ErrorAs(t, err, &unlinked)
	assert.Equal(t, "Calculator", unlinked.Contract)
	assert.Equal(t, []string{"MathLib"}, unlinked.Libraries)

	addr := common.HexToAddress("0x2222222222222222222222222222222222222222")
	box.LinkAddress("MathLib", addr)

	bin, err := box.Binary()
	require.NoError(t, err)
	assert.Contains(t, bin, "2222222222222222222222222222222222222222")
	assert.NotContains(t, bin, "__")
}

func TestLinkIsIdempotent(t *testing.T) {
	box := FromArtifact(parseArtifact(t, calculatorJSON), fastConfig())
	addr := common.HexToAddress("0x2222222222222222222222222222222222222222")

	box.LinkAddress("MathLib", addr)
	once, err := box.Binary()
	require.NoError(t, err)

	box.LinkAddress("MathLib", addr)
	twice, err := box.Binary()
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestRelinkReplacesBinding(t *testing.T) {
	box := FromArtifact(parseArtifact(t, calculatorJSON), fastConfig())

	box.LinkAddress("MathLib", common.HexToAddress("0x2222222222222222222222222222222222222222"))
	box.LinkAddress("MathLib", common.HexToAddress("0x3333333333333333333333333333333333333333"))

	bin, err := box.Binary()
	require.NoError(t, err)
	// The later binding fully replaces the earlier one, no partial bytes.
	assert.Contains(t, bin, "3333333333333333333333333333333333333333")
	assert.NotContains(t, bin, "2222")
}

func TestLinkAddressesBatch(t *testing.T) {
	box := FromArtifact(parseArtifact(t, calculatorJSON), fastConfig())
	box.LinkAddresses(map[string]common.Address{
		"MathLib": common.HexToAddress("0x4444444444444444444444444444444444444444"),
	})

	bin, err := box.Binary()
	require.NoError(t, err)
	assert.Contains(t, bin, "4444444444444444444444444444444444444444")
}

func TestLinkInstanceOverridesMergeFlag(t *testing.T) {
	provider := newMockProvider()

	lib := FromArtifact(parseArtifact(t, mathLibJSON), fastConfig())
	lib.SetProvider(provider)
	libAddr := common.HexToAddress("0x2222222222222222222222222222222222222222")
	provider.setCode(libAddr, []byte{0x60})
	libInst, err := lib.At(context.Background(), libAddr)
	require.NoError(t, err)

	box := FromArtifact(parseArtifact(t, calculatorJSON), fastConfig())

	// Instance link: address inferred, events merged.
	require.NoError(t, box.Link(libInst))
	assert.Len(t, box.currentSchema(), 1)

	// Relinking by plain address drops the merge flag again.
	box.LinkAddress("MathLib", libAddr)
	assert.Len(t, box.currentSchema(), 0)
}

func TestDeployFailsUnlinked(t *testing.T) {
	provider := newMockProvider()
	box := FromArtifact(parseArtifact(t, calculatorJSON), fastConfig())
	box.SetProvider(provider)

	_, err := box.Deploy(context.Background())
	var unlinked *UnlinkedLibraryError
	require.True(t, errors.As(err, &unlinked))
	// Failing fast: the provider was never touched.
	assert.Empty(t, provider.sentMessages())
}

func TestPlaceholderSlotWidth(t *testing.T) {
	art := parseArtifact(t, calculatorJSON)
	// The address substitution must preserve the byte layout around the slot.
	box := FromArtifact(art, fastConfig())
	box.LinkAddress("MathLib", common.HexToAddress("0x5555555555555555555555555555555555555555"))
	bin, err := box.Binary()
	require.NoError(t, err)
	assert.Equal(t, len(art.Binary), len(bin))
	assert.True(t, strings.HasPrefix(bin, "0x6080"))
	assert.True(t, strings.HasSuffix(bin, "604052"))
}

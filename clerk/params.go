// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package clerk

// Constants of the lock wire formats.
const (
	MaxIdentityWidth = 255   // identity_width is a single byte.
	MaxIdentities    = 255   // identity_count is a single byte in the deployed setup.
	MaxAggregators   = 65535 // aggregator_index is 16-bit in round state.

	LockHashSize = 32
)

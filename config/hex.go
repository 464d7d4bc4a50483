// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package config

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Hex is a byte string written as 0x-prefixed hex.
// YAML values are taken verbatim, so short values are never read as integers.
type Hex []byte

// MarshalText implements encoding.TextMarshaler.
func (h Hex) MarshalText() ([]byte, error) {
	return []byte(hexutil.Encode(h)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Hex) UnmarshalText(text []byte) error {
	b, err := hexutil.Decode(string(text))
	if err != nil {
		return errors.Wrapf(err, "hex %q", text)
	}
	*h = b
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (h Hex) MarshalYAML() (any, error) {
	return hexutil.Encode(h), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (h *Hex) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return errors.Errorf("line %d: hex value expected", node.Line)
	}
	return h.UnmarshalText([]byte(node.Value))
}

func (h Hex) String() string {
	return hexutil.Encode(h)
}

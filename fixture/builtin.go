// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package fixture

import (
	"embed"
	"io/fs"
	"path"
	"sort"

	"github.com/pkg/errors"
)

//go:embed conformance/*.yaml
var conformance embed.FS

// Builtin returns the conformance fixtures shipped with the binary, sorted by file name.
func Builtin() ([]*Fixture, error) {
	names, err := fs.Glob(conformance, "conformance/*.yaml")
	if err != nil {
		return nil, errors.Wrap(err, "glob")
	}
	sort.Strings(names)

	fixtures := make([]*Fixture, 0, len(names))
	for _, name := range names {
		data, err := conformance.ReadFile(name)
		if err != nil {
			return nil, errors.Wrap(err, "read builtin")
		}
		f, err := Parse(data, path.Base(name))
		if err != nil {
			return nil, err
		}
		fixtures = append(fixtures, f)
	}
	return fixtures, nil
}

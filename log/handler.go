// Copyright 2017 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"sync"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

type discard struct{}

func (discard) Handle(context.Context, slog.Record) error { return nil }
func (discard) Enabled(context.Context, slog.Level) bool  { return false }
func (d discard) WithGroup(string) slog.Handler           { return d }
func (d discard) WithAttrs([]slog.Attr) slog.Handler      { return d }

// DiscardHandler returns a handler dropping every record.
func DiscardHandler() slog.Handler {
	return discard{}
}

// TerminalHandler writes human readable records, one per line:
//
//	LEVEL[TIME] MESSAGE key=value key=value ...
//
// e.g.
//
//	DEBUG[10-16|20:58:45.120] verification rejected                    pkg=script lock=poa exit=-3
//
// Groups are flattened into dotted keys.
type TerminalHandler struct {
	mu       sync.Mutex
	wr       io.Writer
	lvl      *slog.LevelVar
	useColor bool
	attrs    []slog.Attr
	group    string
	// widest value seen per key, for column alignment
	fieldPadding map[string]int

	buf []byte
}

// NewTerminalHandler returns a terminal handler printing every level.
func NewTerminalHandler(wr io.Writer, useColor bool) *TerminalHandler {
	var level slog.LevelVar
	level.Set(levelMaxVerbosity)
	return NewTerminalHandlerWithLevel(wr, &level, useColor)
}

// NewTerminalHandlerWithLevel returns a terminal handler printing records at or above lvl.
func NewTerminalHandlerWithLevel(wr io.Writer, lvl *slog.LevelVar, useColor bool) *TerminalHandler {
	return &TerminalHandler{
		wr:           wr,
		lvl:          lvl,
		useColor:     useColor,
		fieldPadding: make(map[string]int),
	}
}

func (h *TerminalHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	buf := h.format(h.buf, r, h.useColor)
	_, err := h.wr.Write(buf)
	h.buf = buf[:0]
	return err
}

func (h *TerminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.lvl.Level()
}

func (h *TerminalHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := h.clone(nil)
	c.group = h.group + name + "."
	return c
}

func (h *TerminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.clone(attrs)
}

// clone copies the handler sharing its writer and level, appending attrs under the current group.
func (h *TerminalHandler) clone(attrs []slog.Attr) *TerminalHandler {
	c := &TerminalHandler{
		wr:           h.wr,
		lvl:          h.lvl,
		useColor:     h.useColor,
		group:        h.group,
		attrs:        make([]slog.Attr, 0, len(h.attrs)+len(attrs)),
		fieldPadding: make(map[string]int),
	}
	c.attrs = append(c.attrs, h.attrs...)
	for _, a := range attrs {
		a.Key = h.group + a.Key
		c.attrs = append(c.attrs, a)
	}
	return c
}

type leveler struct{ minLevel *slog.LevelVar }

func (l *leveler) Level() slog.Level {
	return l.minLevel.Level()
}

// JSONHandler returns a handler printing every record as a JSON object.
func JSONHandler(wr io.Writer) slog.Handler {
	var level slog.LevelVar
	level.Set(levelMaxVerbosity)
	return JSONHandlerWithLevel(wr, &level)
}

// JSONHandlerWithLevel returns a JSON handler printing records at or above level.
// The time and level keys are shortened to t and lvl.
func JSONHandlerWithLevel(wr io.Writer, level *slog.LevelVar) slog.Handler {
	return slog.NewJSONHandler(wr, &slog.HandlerOptions{
		ReplaceAttr: builtinReplace,
		Level:       &leveler{level},
	})
}

func builtinReplace(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) == 0 {
		switch attr.Key {
		case slog.TimeKey:
			if attr.Value.Kind() == slog.KindTime {
				return slog.Attr{Key: "t", Value: attr.Value}
			}
		case slog.LevelKey:
			if l, ok := attr.Value.Any().(slog.Level); ok {
				return slog.String("lvl", LevelString(l))
			}
		}
	}
	if attr.Value.Kind() != slog.KindAny {
		return attr
	}
	if s, ok := stringify(attr.Value.Any()); ok {
		attr.Value = slog.StringValue(s)
	}
	return attr
}

// stringify renders the values the JSON encoder would otherwise print
// structurally: big integers, byte strings and Stringers.
func stringify(v any) (string, bool) {
	if v == nil {
		return "<nil>", true
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return "<nil>", true
	}
	switch v := v.(type) {
	case *uint256.Int:
		return v.Dec(), true
	case []byte:
		return hexutil.Encode(v), true
	case error:
		return v.Error(), true
	case fmt.Stringer:
		return v.String(), true
	}
	return "", false
}

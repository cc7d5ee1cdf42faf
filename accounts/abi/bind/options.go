// Copyright 2025 The go-ethereum Authors
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

package bind

import (
	"github.com/sunyihoo/contractcall/common"
	"github.com/sunyihoo/contractcall/common/bignum"
)

// Options is the collection of caller-supplied parameters forwarded to the
// transport along with a call or transaction. Zero fields mean "not set" and
// leave the decision to the transport or the remote node.
//
// Options 是随调用一起转发给传输层的调用方参数集合，零值字段表示未设置。
type Options struct {
	From     *common.Address // Sender of the call or transaction (nil = node default)
	GasLimit uint64          // Gas limit to set for the execution (0 = node decides)
	GasPrice *bignum.Int     // Gas price to use for the execution (nil = node decides)
	Value    *bignum.Int     // Funds to transfer along with the call (nil = no funds)
	Block    string          // Block tag to execute calls against (empty = latest)

	// Extra carries transport specific parameters verbatim.
	Extra map[string]interface{}
}

// BlockTag returns the block the call should be executed against, defaulting
// to "latest".
func (o *Options) BlockTag() string {
	if o == nil || o.Block == "" {
		return "latest"
	}
	return o.Block
}

// Merge returns a new Options holding o with every non-zero field of override
// applied on top. Extra maps are merged key by key, override winning. Neither
// receiver nor override is modified; both may be nil.
//
// Merge 以 o 为基础叠加 override 中的非零字段并返回新对象，两者均不被修改。
func (o *Options) Merge(override *Options) *Options {
	merged := new(Options)
	if o != nil {
		*merged = *o
		merged.Extra = copyExtra(o.Extra, len(o.Extra))
	}
	if override == nil {
		return merged
	}
	if override.From != nil {
		from := *override.From
		merged.From = &from
	}
	if override.GasLimit != 0 {
		merged.GasLimit = override.GasLimit
	}
	if override.GasPrice != nil {
		merged.GasPrice = override.GasPrice
	}
	if override.Value != nil {
		merged.Value = override.Value
	}
	if override.Block != "" {
		merged.Block = override.Block
	}
	if len(override.Extra) > 0 {
		if merged.Extra == nil {
			merged.Extra = make(map[string]interface{}, len(override.Extra))
		}
		for k, v := range override.Extra {
			merged.Extra[k] = v
		}
	}
	return merged
}

func copyExtra(extra map[string]interface{}, size int) map[string]interface{} {
	if extra == nil {
		return nil
	}
	cpy := make(map[string]interface{}, size)
	for k, v := range extra {
		cpy[k] = v
	}
	return cpy
}

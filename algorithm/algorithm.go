/*
 * Copyright 2021. Go-Sharding Author All Rights Reserved.
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
 *
 *  File author: Anders Xiao
 */

// Package algorithm holds the sharding algorithms, pure functions mapping column values to target names.
//
// An algorithm implements one or more capability interfaces, a strategy checks the capability it
// needs when the rule is loaded.
package algorithm

import "github.com/endink/go-sharding-router/core"

type ShardingAlgorithm interface {
	Type() string
}

// PreciseShardingAlgorithm shards one exact value, false means no target matches the value.
type PreciseShardingAlgorithm interface {
	ShardingAlgorithm
	DoPreciseSharding(targets []string, value *core.PreciseShardingValue) (string, bool, error)
}

// RangeShardingAlgorithm returns every target whose partition intersects the range.
// Unbounded endpoints extend to the first or last available target.
type RangeShardingAlgorithm interface {
	ShardingAlgorithm
	DoRangeSharding(targets []string, value *core.RangeShardingValue) ([]string, error)
}

// ComplexKeysShardingAlgorithm evaluates all sharding columns of a table jointly.
type ComplexKeysShardingAlgorithm interface {
	ShardingAlgorithm
	DoComplexSharding(targets []string, value *core.ComplexKeysShardingValue) ([]string, error)
}

// HintShardingAlgorithm shards the values forced by a hint manager.
type HintShardingAlgorithm interface {
	ShardingAlgorithm
	DoHintSharding(targets []string, value *core.HintShardingValue) ([]string, error)
}

// AutoShardingAlgorithm knows how many actual tables an auto table needs.
type AutoShardingAlgorithm interface {
	ShardingAlgorithm
	AutoTablesAmount() int
}

// ColumnBinder is implemented by algorithms that need the sharding column before they can run.
type ColumnBinder interface {
	BindColumn(column string) error
}

const (
	TypeMod           = "MOD"
	TypeHashMod       = "HASH_MOD"
	TypeInline        = "INLINE"
	TypeComplexInline = "COMPLEX_INLINE"
	TypeHintInline    = "HINT_INLINE"
	TypeInterval      = "INTERVAL"
	TypeBoundaryRange = "BOUNDARY_RANGE"
)

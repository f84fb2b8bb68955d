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

package algorithm

import (
	"math"
	"strconv"

	"github.com/endink/go-sharding-router/core"
	"github.com/pkg/errors"
	"github.com/scylladb/go-set/strset"
)

type modProps struct {
	ShardingCount int `yaml:"sharding-count"`
}

// ModAlgorithm routes value % sharding-count to the target with that suffix.
type ModAlgorithm struct {
	shardingCount int64
}

var _ PreciseShardingAlgorithm = &ModAlgorithm{}
var _ RangeShardingAlgorithm = &ModAlgorithm{}
var _ AutoShardingAlgorithm = &ModAlgorithm{}

func NewModAlgorithm(props core.Properties) (ShardingAlgorithm, error) {
	p := &modProps{}
	if err := props.PopulateValue(p); err != nil {
		return nil, err
	}
	if p.ShardingCount <= 0 {
		return nil, errors.New("'sharding-count' property must be greater than zero")
	}
	return &ModAlgorithm{shardingCount: int64(p.ShardingCount)}, nil
}

func (m *ModAlgorithm) Type() string {
	return TypeMod
}

func (m *ModAlgorithm) AutoTablesAmount() int {
	return int(m.shardingCount)
}

func (m *ModAlgorithm) mod(v int64) int64 {
	r := v % m.shardingCount
	if r < 0 {
		r += m.shardingCount
	}
	return r
}

func (m *ModAlgorithm) DoPreciseSharding(targets []string, value *core.PreciseShardingValue) (string, bool, error) {
	v, err := ToInt64(value.Value)
	if err != nil {
		return "", false, err
	}
	t, ok := MatchSuffix(targets, strconv.FormatInt(m.mod(v), 10))
	return t, ok, nil
}

func (m *ModAlgorithm) DoRangeSharding(targets []string, value *core.RangeShardingValue) ([]string, error) {
	lower, upper, bounded, err := integerBounds(value.Value)
	if err != nil {
		return nil, err
	}
	if !bounded {
		return allTargets(targets), nil
	}
	if lower > upper {
		return []string{}, nil
	}
	// computed unsigned so the width of [MinInt64, MaxInt64] does not wrap
	span := uint64(upper) - uint64(lower)
	if span >= uint64(m.shardingCount-1) {
		return allTargets(targets), nil
	}
	suffixes := strset.New()
	for i := int64(0); i <= int64(span); i++ {
		suffixes.Add(strconv.FormatInt(m.mod(lower+i), 10))
	}
	return pickTargets(targets, suffixes), nil
}

// integerBounds returns the closed integer interval of a range, bounded is false when either end is open-ended.
// An interval without integers comes back with lower > upper.
func integerBounds(r core.Range) (lower int64, upper int64, bounded bool, err error) {
	if !r.HasLower() || !r.HasUpper() {
		return 0, 0, false, nil
	}
	if lower, err = ToInt64(r.LowerBound()); err != nil {
		return
	}
	if upper, err = ToInt64(r.UpperBound()); err != nil {
		return
	}
	if r.LowerType() == core.BoundOpen {
		if lower == math.MaxInt64 {
			return 1, 0, true, nil
		}
		lower++
	}
	if r.UpperType() == core.BoundOpen {
		if upper == math.MinInt64 {
			return 1, 0, true, nil
		}
		upper--
	}
	return lower, upper, true, nil
}

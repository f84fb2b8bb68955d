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
	"strconv"

	"github.com/endink/go-sharding-router/core"
	"github.com/pkg/errors"
	"github.com/spaolacci/murmur3"
)

// HashModAlgorithm routes murmur3(value text) % sharding-count, ranges can not be narrowed.
type HashModAlgorithm struct {
	shardingCount uint32
}

var _ PreciseShardingAlgorithm = &HashModAlgorithm{}
var _ RangeShardingAlgorithm = &HashModAlgorithm{}
var _ AutoShardingAlgorithm = &HashModAlgorithm{}

func NewHashModAlgorithm(props core.Properties) (ShardingAlgorithm, error) {
	p := &modProps{}
	if err := props.PopulateValue(p); err != nil {
		return nil, err
	}
	if p.ShardingCount <= 0 {
		return nil, errors.New("'sharding-count' property must be greater than zero")
	}
	return &HashModAlgorithm{shardingCount: uint32(p.ShardingCount)}, nil
}

func (h *HashModAlgorithm) Type() string {
	return TypeHashMod
}

func (h *HashModAlgorithm) AutoTablesAmount() int {
	return int(h.shardingCount)
}

func (h *HashModAlgorithm) DoPreciseSharding(targets []string, value *core.PreciseShardingValue) (string, bool, error) {
	if value.Value == nil {
		return "", false, errors.New("null value can not be used as a sharding value")
	}
	sum := murmur3.Sum32([]byte(valueText(value.Value)))
	t, ok := MatchSuffix(targets, strconv.FormatUint(uint64(sum%h.shardingCount), 10))
	return t, ok, nil
}

func (h *HashModAlgorithm) DoRangeSharding(targets []string, _ *core.RangeShardingValue) ([]string, error) {
	return allTargets(targets), nil
}

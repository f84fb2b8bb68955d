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
	"sort"
	"strconv"

	"github.com/endink/go-sharding-router/core"
	"github.com/pkg/errors"
	"github.com/scylladb/go-set/strset"
)

type boundaryRangeProps struct {
	ShardingRanges string `yaml:"sharding-ranges"`
}

// BoundaryRangeAlgorithm splits numbers by ascending boundaries 'b1,b2,...,bn' into
// n+1 partitions (-inf,b1), [b1,b2) ... [bn,+inf), partition i is the target with suffix i.
type BoundaryRangeAlgorithm struct {
	boundaries []int64
}

var _ PreciseShardingAlgorithm = &BoundaryRangeAlgorithm{}
var _ RangeShardingAlgorithm = &BoundaryRangeAlgorithm{}
var _ AutoShardingAlgorithm = &BoundaryRangeAlgorithm{}

func NewBoundaryRangeAlgorithm(props core.Properties) (ShardingAlgorithm, error) {
	p := &boundaryRangeProps{}
	if err := props.PopulateValue(p); err != nil {
		return nil, err
	}
	parts := core.SplitAndTrim(p.ShardingRanges)
	if len(parts) == 0 {
		return nil, errors.New("'sharding-ranges' property is required")
	}
	boundaries := make([]int64, len(parts))
	for i, part := range parts {
		b, err := parseInt64(part)
		if err != nil {
			return nil, errors.Wrap(err, "invalid 'sharding-ranges' property")
		}
		if i > 0 && b <= boundaries[i-1] {
			return nil, errors.Errorf("'sharding-ranges' must be strictly ascending, %d follows %d", b, boundaries[i-1])
		}
		boundaries[i] = b
	}
	return &BoundaryRangeAlgorithm{boundaries: boundaries}, nil
}

func (a *BoundaryRangeAlgorithm) Type() string {
	return TypeBoundaryRange
}

func (a *BoundaryRangeAlgorithm) AutoTablesAmount() int {
	return len(a.boundaries) + 1
}

func (a *BoundaryRangeAlgorithm) partition(v int64) int {
	return sort.Search(len(a.boundaries), func(i int) bool {
		return a.boundaries[i] > v
	})
}

func (a *BoundaryRangeAlgorithm) DoPreciseSharding(targets []string, value *core.PreciseShardingValue) (string, bool, error) {
	v, err := ToInt64(value.Value)
	if err != nil {
		return "", false, err
	}
	t, ok := MatchSuffix(targets, strconv.Itoa(a.partition(v)))
	return t, ok, nil
}

func (a *BoundaryRangeAlgorithm) DoRangeSharding(targets []string, value *core.RangeShardingValue) ([]string, error) {
	r := value.Value
	first, last := 0, len(a.boundaries)
	var lower, upper int64
	if r.HasLower() {
		v, err := ToInt64(r.LowerBound())
		if err != nil {
			return nil, err
		}
		if r.LowerType() == core.BoundOpen {
			if v == math.MaxInt64 {
				return []string{}, nil
			}
			v++
		}
		lower = v
		first = a.partition(v)
	}
	if r.HasUpper() {
		v, err := ToInt64(r.UpperBound())
		if err != nil {
			return nil, err
		}
		if r.UpperType() == core.BoundOpen {
			if v == math.MinInt64 {
				return []string{}, nil
			}
			v--
		}
		upper = v
		last = a.partition(v)
	}
	if r.HasLower() && r.HasUpper() && lower > upper {
		return []string{}, nil
	}
	suffixes := strset.New()
	for i := first; i <= last; i++ {
		suffixes.Add(strconv.Itoa(i))
	}
	return pickTargets(targets, suffixes), nil
}

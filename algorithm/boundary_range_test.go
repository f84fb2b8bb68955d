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
	"testing"

	"github.com/endink/go-sharding-router/core"
	"github.com/endink/go-sharding-router/testkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boundaryRange(t *testing.T) *BoundaryRangeAlgorithm {
	return createAlgorithm(t, TypeBoundaryRange, map[string]interface{}{"sharding-ranges": "10, 20, 30"}).(*BoundaryRangeAlgorithm)
}

func TestBoundaryRangePrecise(t *testing.T) {
	a := boundaryRange(t)
	assert.Equal(t, 4, a.AutoTablesAmount())

	cases := map[interface{}]string{
		-5: "t_order_0",
		9:  "t_order_0",
		10: "t_order_1",
		25: "t_order_2",
		30: "t_order_3",
		99: "t_order_3",
	}
	for v, want := range cases {
		got, ok, err := a.DoPreciseSharding(fourTables, preciseValue("order_id", v))
		require.Nil(t, err)
		assert.True(t, ok)
		assert.Equal(t, want, got, "value %v", v)
	}
}

func TestBoundaryRangeRange(t *testing.T) {
	a := boundaryRange(t)
	value := rangeValue(t, "order_id")

	r, err := a.DoRangeSharding(fourTables, value(core.NewRange(12, 25)))
	require.Nil(t, err)
	testkit.AssertStrArrayOrdered(t, []string{"t_order_1", "t_order_2"}, r)

	r, err = a.DoRangeSharding(fourTables, value(core.NewClosedOpenRange(5, 10)))
	require.Nil(t, err)
	testkit.AssertStrArrayOrdered(t, []string{"t_order_0"}, r)

	r, err = a.DoRangeSharding(fourTables, value(core.NewAtLeastRange(20)))
	require.Nil(t, err)
	testkit.AssertStrArrayOrdered(t, []string{"t_order_2", "t_order_3"}, r)

	r, err = a.DoRangeSharding(fourTables, value(core.NewLessThanRange(10)))
	require.Nil(t, err)
	testkit.AssertStrArrayOrdered(t, []string{"t_order_0"}, r)
}

func TestBoundaryRangeExtremeOpenBounds(t *testing.T) {
	a := boundaryRange(t)
	value := rangeValue(t, "order_id")

	r, err := a.DoRangeSharding(fourTables, value(core.NewGreaterThanRange(int64(math.MaxInt64))))
	require.Nil(t, err)
	assert.Empty(t, r)

	r, err = a.DoRangeSharding(fourTables, value(core.NewLessThanRange(int64(math.MinInt64))))
	require.Nil(t, err)
	assert.Empty(t, r)
}

func TestBoundaryRangeInvalidProps(t *testing.T) {
	for _, ranges := range []string{"", "10,a", "20,10"} {
		p, err := core.NewPropertiesFromMap(map[string]interface{}{"sharding-ranges": ranges})
		require.Nil(t, err)
		_, err = NewBoundaryRangeAlgorithm(p)
		assert.NotNil(t, err, "ranges '%s'", ranges)
	}
}

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

func TestModPrecise(t *testing.T) {
	a := createAlgorithm(t, TypeMod, map[string]interface{}{"sharding-count": 4}).(*ModAlgorithm)
	assert.Equal(t, 4, a.AutoTablesAmount())

	cases := map[interface{}]string{
		0:    "t_order_0",
		5:    "t_order_1",
		"10": "t_order_2",
		-1:   "t_order_3",
	}
	for v, want := range cases {
		got, ok, err := a.DoPreciseSharding(fourTables, preciseValue("order_id", v))
		require.Nil(t, err)
		assert.True(t, ok)
		assert.Equal(t, want, got, "value %v", v)
	}
}

func TestModPreciseNoMatch(t *testing.T) {
	a := createAlgorithm(t, TypeMod, map[string]interface{}{"sharding-count": 4}).(*ModAlgorithm)
	_, ok, err := a.DoPreciseSharding([]string{"t_order_0", "t_order_1"}, preciseValue("order_id", 3))
	assert.Nil(t, err)
	assert.False(t, ok)
}

func TestModPreciseInvalidValue(t *testing.T) {
	a := createAlgorithm(t, TypeMod, map[string]interface{}{"sharding-count": 4}).(*ModAlgorithm)
	_, _, err := a.DoPreciseSharding(fourTables, preciseValue("order_id", "abc"))
	assert.NotNil(t, err)
}

func TestModRange(t *testing.T) {
	a := createAlgorithm(t, TypeMod, map[string]interface{}{"sharding-count": 4}).(*ModAlgorithm)
	rv := rangeValue(t, "order_id")

	r, err := a.DoRangeSharding(fourTables, rv(core.NewRange(1, 2)))
	require.Nil(t, err)
	testkit.AssertStrArrayEquals(t, []string{"t_order_1", "t_order_2"}, r)

	r, err = a.DoRangeSharding(fourTables, rv(core.NewRangeWithBound(1, core.BoundOpen, 3, core.BoundOpen)))
	require.Nil(t, err)
	testkit.AssertStrArrayEquals(t, []string{"t_order_2"}, r)

	r, err = a.DoRangeSharding(fourTables, rv(core.NewRange(2, 10)))
	require.Nil(t, err)
	testkit.AssertStrArrayEquals(t, fourTables, r)

	r, err = a.DoRangeSharding(fourTables, rv(core.NewAtLeastRange(100)))
	require.Nil(t, err)
	testkit.AssertStrArrayEquals(t, fourTables, r)
}

func TestHashMod(t *testing.T) {
	a := createAlgorithm(t, TypeHashMod, map[string]interface{}{"sharding-count": 4}).(*HashModAlgorithm)
	assert.Equal(t, 4, a.AutoTablesAmount())

	first, ok, err := a.DoPreciseSharding(fourTables, preciseValue("user_name", "anders"))
	require.Nil(t, err)
	require.True(t, ok)
	assert.Contains(t, fourTables, first)

	again, _, err := a.DoPreciseSharding(fourTables, preciseValue("user_name", "anders"))
	require.Nil(t, err)
	assert.Equal(t, first, again)

	r, err := a.DoRangeSharding(fourTables, rangeValue(t, "user_name")(core.NewRange("a", "b")))
	require.Nil(t, err)
	assert.Equal(t, fourTables, r)

	_, _, err = a.DoPreciseSharding(fourTables, preciseValue("user_name", nil))
	assert.NotNil(t, err)
}

func TestModWideRanges(t *testing.T) {
	a := createAlgorithm(t, TypeMod, map[string]interface{}{"sharding-count": 4}).(*ModAlgorithm)
	value := rangeValue(t, "order_id")

	r, err := a.DoRangeSharding(fourTables, value(core.NewRange(int64(-5e18), int64(5e18))))
	require.Nil(t, err)
	testkit.AssertStrArrayOrdered(t, fourTables, r)

	r, err = a.DoRangeSharding(fourTables, value(core.NewRange(int64(math.MinInt64), int64(math.MaxInt64))))
	require.Nil(t, err)
	testkit.AssertStrArrayOrdered(t, fourTables, r)

	r, err = a.DoRangeSharding(fourTables, value(core.NewRange(int64(math.MaxInt64-1), int64(math.MaxInt64))))
	require.Nil(t, err)
	// MaxInt64 % 4 == 3
	testkit.AssertStrArrayOrdered(t, []string{"t_order_2", "t_order_3"}, r)

	r, err = a.DoRangeSharding(fourTables, value(core.NewRangeWithBound(int64(math.MaxInt64-1), core.BoundOpen, int64(math.MaxInt64), core.BoundClosed)))
	require.Nil(t, err)
	testkit.AssertStrArrayOrdered(t, []string{"t_order_3"}, r)

	r, err = a.DoRangeSharding(fourTables, value(core.NewRangeWithBound(int64(5), core.BoundOpen, int64(6), core.BoundOpen)))
	require.Nil(t, err)
	assert.Empty(t, r)
}

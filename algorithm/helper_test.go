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
	"testing"

	"github.com/endink/go-sharding-router/core"
	"github.com/stretchr/testify/require"
)

func createAlgorithm(t *testing.T, algorithmType string, props map[string]interface{}) ShardingAlgorithm {
	p, err := core.NewPropertiesFromMap(props)
	require.Nil(t, err)
	a, err := DefaultRegistry().Create(algorithmType, p)
	require.Nil(t, err, "create algorithm '%s' fault", algorithmType)
	return a
}

func rangeValue(t *testing.T, column string) func(core.Range, error) *core.RangeShardingValue {
	return func(r core.Range, err error) *core.RangeShardingValue {
		require.Nil(t, err)
		return core.NewRangeShardingValue("t_order", column, r)
	}
}

func preciseValue(column string, value interface{}) *core.PreciseShardingValue {
	return core.NewPreciseShardingValue("t_order", column, value)
}

var fourTables = []string{"t_order_0", "t_order_1", "t_order_2", "t_order_3"}

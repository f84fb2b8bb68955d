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

package routing

import (
	"sort"
	"testing"

	"github.com/endink/go-sharding-router/core"
	"github.com/endink/go-sharding-router/rule"
	"github.com/stretchr/testify/require"
)

func standard(column string, algorithm string) *rule.StrategyConfiguration {
	return &rule.StrategyConfiguration{Standard: &rule.StandardStrategyConfiguration{ShardingColumn: column, AlgorithmName: algorithm}}
}

func testConfiguration() *rule.Configuration {
	return &rule.Configuration{
		DataSources:       []string{"ds_${0..1}"},
		DefaultDataSource: "ds_0",
		Rule: rule.RuleConfiguration{
			Tables: map[string]*rule.TableConfiguration{
				"t_order": {
					ActualDataNodes:  "ds_${0..1}.t_order_${0..1}",
					DatabaseStrategy: standard("user_id", "mod_2"),
					TableStrategy:    standard("order_id", "mod_2"),
				},
				"t_order_item": {
					ActualDataNodes:  "ds_${0..1}.t_order_item_${0..1}",
					DatabaseStrategy: standard("user_id", "mod_2"),
					TableStrategy:    standard("order_id", "mod_2"),
				},
				"t_user": {
					ActualDataNodes: "ds_${0..1}.t_user_${0..1}",
					TableStrategy:   standard("user_id", "mod_2"),
				},
				"t_sparse": {
					ActualDataNodes:  "ds_0.t_sparse_0, ds_0.t_sparse_1, ds_1.t_sparse_1",
					DatabaseStrategy: &rule.StrategyConfiguration{Hint: &rule.HintStrategyConfiguration{AlgorithmName: "mod_2"}},
					TableStrategy:    &rule.StrategyConfiguration{Hint: &rule.HintStrategyConfiguration{AlgorithmName: "mod_2"}},
				},
				"t_range": {
					ActualDataNodes: "ds_0.t_range_${0..3}",
					TableStrategy:   standard("id", "boundary"),
				},
				"t_inline": {
					ActualDataNodes: "ds_0.t_inline_${0..1}",
					TableStrategy:   standard("id", "inline_4"),
				},
				"t_complex": {
					ActualDataNodes: "ds_0.t_complex_${0..3}",
					TableStrategy: &rule.StrategyConfiguration{Complex: &rule.ComplexStrategyConfiguration{
						ShardingColumns: "a, b",
						AlgorithmName:   "complex",
					}},
				},
				"t_archive": {
					ActualDataNodes: "ds_1.t_archive",
				},
			},
			BindingTables:   []string{"t_order, t_order_item"},
			BroadcastTables: []string{"t_config"},
			ShardingAlgorithms: map[string]*rule.AlgorithmConfiguration{
				"mod_2":    {Type: "MOD", Props: map[string]interface{}{"sharding-count": 2}},
				"boundary": {Type: "BOUNDARY_RANGE", Props: map[string]interface{}{"sharding-ranges": "10,20,30"}},
				"inline_4": {Type: "INLINE", Props: map[string]interface{}{"algorithm-expression": "t_inline_${id % 4}"}},
				"complex": {Type: "COMPLEX_INLINE", Props: map[string]interface{}{
					"sharding-columns":     "a,b",
					"algorithm-expression": "t_complex_${(a + b) % 4}",
				}},
			},
		},
	}
}

func newTestRule(t *testing.T) *rule.ShardingRule {
	r, err := rule.Build(testConfiguration(), nil)
	require.Nil(t, err)
	return r
}

func newTestRouter(t *testing.T) *Router {
	return NewRouter(rule.NewHolder(newTestRule(t)))
}

type valuesBuilder struct {
	t *testing.T
	b *core.ShardingValuesBuilder
}

func values(t *testing.T, table string) *valuesBuilder {
	return &valuesBuilder{t: t, b: core.NewShardingValuesBuilder(table)}
}

func (v *valuesBuilder) value(column string, values ...interface{}) *valuesBuilder {
	v.b.AddValue(column, values...)
	return v
}

func (v *valuesBuilder) closedOpen(column string, lower interface{}, upper interface{}) *valuesBuilder {
	r, err := core.NewClosedOpenRange(lower, upper)
	require.Nil(v.t, err)
	require.Nil(v.t, v.b.AddRange(column, r))
	return v
}

func (v *valuesBuilder) atLeast(column string, lower interface{}) *valuesBuilder {
	r, err := core.NewAtLeastRange(lower)
	require.Nil(v.t, err)
	require.Nil(v.t, v.b.AddRange(column, r))
	return v
}

func (v *valuesBuilder) build() *core.ShardingValues {
	return v.b.Build()
}

func targets(ctx *RouteContext) []string {
	list := ctx.Targets().List()
	sort.Strings(list)
	return list
}

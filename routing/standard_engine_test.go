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
	"testing"

	"github.com/endink/go-sharding-router/core"
	"github.com/endink/go-sharding-router/hint"
	"github.com/endink/go-sharding-router/rule"
	"github.com/endink/go-sharding-router/testkit"
	"github.com/scylladb/go-set/strset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func routeTable(t *testing.T, r *rule.ShardingRule, table string, values *core.ShardingValues, hints *hint.Manager) *RouteContext {
	tr, ok := r.TableRule(table)
	require.True(t, ok, "table rule of %s", table)
	ctx, err := NewStandardEngine(r).Route(tr, values, hints)
	require.Nil(t, err)
	return ctx
}

func unitStrings(ctx *RouteContext) []string {
	list := make([]string, len(ctx.Units))
	for i, u := range ctx.Units {
		list[i] = u.String()
	}
	return list
}

func TestNoConditionRoutesAllNodes(t *testing.T) {
	r := newTestRule(t)
	ctx := routeTable(t, r, "t_order", nil, nil)
	assert.Equal(t, 4, len(ctx.Units))
	testkit.AssertStrArrayOrdered(t, []string{
		"ds_0[t_order->t_order_0]",
		"ds_0[t_order->t_order_1]",
		"ds_1[t_order->t_order_0]",
		"ds_1[t_order->t_order_1]",
	}, unitStrings(ctx))
}

func TestRouteIsDeterministic(t *testing.T) {
	r := newTestRule(t)
	v := values(t, "t_order").value("user_id", 1, 2).value("order_id", 3).build()
	first := routeTable(t, r, "t_order", v, nil)
	second := routeTable(t, r, "t_order", v, nil)
	assert.Equal(t, unitStrings(first), unitStrings(second))
	assert.True(t, first.Targets().IsEqual(second.Targets()))
}

func TestPreciseNarrowing(t *testing.T) {
	r := newTestRule(t)

	ctx := routeTable(t, r, "t_order", values(t, "t_order").value("user_id", 1).value("order_id", 1).build(), nil)
	assert.Equal(t, []string{"ds_1.t_order_1"}, targets(ctx))

	ctx = routeTable(t, r, "t_user", values(t, "t_user").value("user_id", 1).build(), nil)
	assert.Equal(t, []string{"ds_0.t_user_1", "ds_1.t_user_1"}, targets(ctx))

	ctx = routeTable(t, r, "t_order", values(t, "t_order").value("order_id", 4).build(), nil)
	assert.Equal(t, []string{"ds_0.t_order_0", "ds_1.t_order_0"}, targets(ctx))
}

func TestRangeCoverage(t *testing.T) {
	r := newTestRule(t)
	left := routeTable(t, r, "t_range", values(t, "t_range").closedOpen("id", 5, 20).build(), nil).Targets()
	right := routeTable(t, r, "t_range", values(t, "t_range").closedOpen("id", 20, 35).build(), nil).Targets()
	whole := routeTable(t, r, "t_range", values(t, "t_range").closedOpen("id", 5, 35).build(), nil).Targets()

	assert.True(t, strset.Union(left, right).IsEqual(whole))
	assert.True(t, strset.Intersection(left, right).IsEmpty())
	assert.Equal(t, 4, whole.Size())
}

func TestRangeUnboundedExtendsToLast(t *testing.T) {
	r := newTestRule(t)
	ctx := routeTable(t, r, "t_range", values(t, "t_range").atLeast("id", 25).build(), nil)
	assert.Equal(t, []string{"ds_0.t_range_2", "ds_0.t_range_3"}, targets(ctx))
}

func TestPreciseAndRangeAreUnioned(t *testing.T) {
	r := newTestRule(t)
	v := values(t, "t_range").value("id", 1).closedOpen("id", 30, 40).build()
	ctx := routeTable(t, r, "t_range", v, nil)
	assert.Equal(t, []string{"ds_0.t_range_0", "ds_0.t_range_3"}, targets(ctx))
}

func TestHintOverridesConditions(t *testing.T) {
	r := newTestRule(t)
	hints := hint.NewManager()
	hints.AddDatabaseShardingValue("t_order", 1)
	hints.AddTableShardingValue("t_order", 1)

	conditions := values(t, "t_order").value("user_id", 0).value("order_id", 0).build()
	forced := routeTable(t, r, "t_order", conditions, hints)
	precise := routeTable(t, r, "t_order", values(t, "t_order").value("user_id", 1).value("order_id", 1).build(), nil)

	assert.Equal(t, targets(precise), targets(forced))
	assert.Equal(t, []string{"ds_1.t_order_1"}, targets(forced))
}

func TestHintMultiValueCartesian(t *testing.T) {
	r := newTestRule(t)
	hints := hint.NewManager()
	hints.AddDatabaseShardingValue("t_order", 0, 1)
	hints.AddTableShardingValue("t_order", 0, 1)
	hints.AddDatabaseShardingValue("t_sparse", 0, 1)
	hints.AddTableShardingValue("t_sparse", 0, 1)

	ctx := routeTable(t, r, "t_order", nil, hints)
	testkit.AssertStrArrayOrdered(t, []string{
		"ds_0[t_order->t_order_0]",
		"ds_0[t_order->t_order_1]",
		"ds_1[t_order->t_order_0]",
		"ds_1[t_order->t_order_1]",
	}, unitStrings(ctx))

	ctx = routeTable(t, r, "t_sparse", nil, hints)
	assert.Equal(t, []string{"ds_0.t_sparse_0", "ds_0.t_sparse_1", "ds_1.t_sparse_1"}, targets(ctx))
	assert.False(t, ctx.Targets().Has("ds_1.t_sparse_0"))
}

func TestHintStrategyWithoutValues(t *testing.T) {
	r := newTestRule(t)
	ctx := routeTable(t, r, "t_sparse", values(t, "t_sparse").value("id", 1).build(), nil)
	assert.Equal(t, 3, len(ctx.Units))

	hints := hint.NewManager()
	hints.AddTableShardingValue("t_sparse", 0)
	ctx = routeTable(t, r, "t_sparse", nil, hints)
	assert.Equal(t, []string{"ds_0.t_sparse_0"}, targets(ctx))
}

func TestDatabaseOnlyHint(t *testing.T) {
	r := newTestRule(t)
	hints := hint.NewManager()
	hints.SetDatabaseShardingValue(1)

	ctx := routeTable(t, r, "t_order", values(t, "t_order").value("order_id", 0).build(), hints)
	assert.Equal(t, []string{"ds_1.t_order_0", "ds_1.t_order_1"}, targets(ctx))

	ctx = routeTable(t, r, "t_user", nil, hints)
	assert.Equal(t, 4, len(ctx.Units), "none database strategy ignores forced values")
}

func TestEmptyMatchIsNotAnError(t *testing.T) {
	r := newTestRule(t)
	ctx := routeTable(t, r, "t_inline", values(t, "t_inline").value("id", 3).build(), nil)
	assert.True(t, ctx.IsEmpty())

	ctx = routeTable(t, r, "t_inline", values(t, "t_inline").value("id", 3, 5).build(), nil)
	assert.Equal(t, []string{"ds_0.t_inline_1"}, targets(ctx))
}

func TestComplexStrategy(t *testing.T) {
	r := newTestRule(t)
	ctx := routeTable(t, r, "t_complex", values(t, "t_complex").value("a", 1).value("b", 2).build(), nil)
	assert.Equal(t, []string{"ds_0.t_complex_3"}, targets(ctx))

	ctx = routeTable(t, r, "t_complex", values(t, "t_complex").value("a", 1, 2).value("b", 2).build(), nil)
	assert.Equal(t, []string{"ds_0.t_complex_0", "ds_0.t_complex_3"}, targets(ctx))

	ctx = routeTable(t, r, "t_complex", values(t, "t_complex").value("a", 1).build(), nil)
	assert.Equal(t, 4, len(ctx.Units))
}

func TestAlgorithmErrorPropagates(t *testing.T) {
	r := newTestRule(t)
	tr, _ := r.TableRule("t_order")
	_, err := NewStandardEngine(r).Route(tr, values(t, "t_order").value("order_id", "not-a-number").build(), nil)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "t_order")
}

func TestClearRestoresBroadcast(t *testing.T) {
	r := newTestRule(t)
	hints := hint.NewManager()
	hints.AddDatabaseShardingValue("t_order", 0)
	assert.Equal(t, 2, len(routeTable(t, r, "t_order", nil, hints).Units))

	hints.Clear()
	assert.Equal(t, 4, len(routeTable(t, r, "t_order", nil, hints).Units))
	hints.Clear()
	assert.Equal(t, 4, len(routeTable(t, r, "t_order", nil, hints).Units))
}

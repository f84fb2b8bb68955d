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

package rule

import (
	"errors"
	"testing"

	"github.com/endink/go-sharding-router/core"
	"github.com/endink/go-sharding-router/strategy"
	"github.com/endink/go-sharding-router/testkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func standardStrategy(column string, algorithm string) *StrategyConfiguration {
	return &StrategyConfiguration{Standard: &StandardStrategyConfiguration{ShardingColumn: column, AlgorithmName: algorithm}}
}

func modAlgorithm(count int) *AlgorithmConfiguration {
	return &AlgorithmConfiguration{Type: "MOD", Props: map[string]interface{}{"sharding-count": count}}
}

func orderConfiguration() *Configuration {
	return &Configuration{
		DataSources:       []string{"ds_${0..1}"},
		DefaultDataSource: "ds_0",
		Rule: RuleConfiguration{
			Tables: map[string]*TableConfiguration{
				"t_order": {
					ActualDataNodes:  "ds_${0..1}.t_order_${0..1}",
					Columns:          []string{"order_id", "user_id"},
					DatabaseStrategy: standardStrategy("user_id", "db_mod"),
					TableStrategy:    standardStrategy("order_id", "table_mod"),
				},
				"t_order_item": {
					ActualDataNodes:  "ds_${0..1}.t_order_item_${0..1}",
					DatabaseStrategy: standardStrategy("user_id", "db_mod"),
					TableStrategy:    standardStrategy("order_id", "table_mod"),
				},
			},
			AutoTables: map[string]*AutoTableConfiguration{
				"t_log": {
					ShardingStrategy: standardStrategy("id", "log_mod"),
				},
			},
			BindingTables:   []string{"t_order, t_order_item"},
			BroadcastTables: []string{"t_config"},
			ShardingAlgorithms: map[string]*AlgorithmConfiguration{
				"db_mod":    modAlgorithm(2),
				"table_mod": modAlgorithm(2),
				"log_mod":   modAlgorithm(5),
			},
		},
	}
}

func TestParseDataNodes(t *testing.T) {
	nodes, err := ParseDataNodes("ds_${0..1}.t_order_${[0,1]}")
	require.Nil(t, err)
	assert.Equal(t, []DataNode{
		{"ds_0", "t_order_0"}, {"ds_0", "t_order_1"},
		{"ds_1", "t_order_0"}, {"ds_1", "t_order_1"},
	}, nodes)

	nodes, err = ParseDataNodes("ds_0.t_order_0, ds_1.t_order_1")
	require.Nil(t, err)
	assert.Equal(t, 2, len(nodes))

	for _, bad := range []string{"t_order_0", "ds_${0..1}", "ds_0.", "ds_0.t.x", "ds_${0..1"} {
		_, err = ParseDataNodes(bad)
		assert.NotNil(t, err, "expression: %s", bad)
	}
}

func TestTableRuleSparseNodes(t *testing.T) {
	nodes, err := ParseDataNodes("ds_0.t_order_0, ds_0.t_order_1, ds_1.t_order_1")
	require.Nil(t, err)
	tr, err := NewTableRule("T_Order", nodes, nil, nil, nil)
	require.Nil(t, err)

	assert.Equal(t, "t_order", tr.LogicTable)
	assert.Equal(t, []string{"ds_0", "ds_1"}, tr.ActualDataSourceNames())
	assert.Equal(t, []string{"t_order_0", "t_order_1"}, tr.ActualTableNames("ds_0"))
	assert.Equal(t, []string{"t_order_1"}, tr.ActualTableNames("ds_1"))
	assert.Equal(t, []string{"t_order_0", "t_order_1"}, tr.AllActualTableNames())
	assert.True(t, tr.HasDataNode("ds_1", "t_order_1"))
	assert.False(t, tr.HasDataNode("ds_1", "t_order_0"))

	assert.Equal(t, 0, tr.ActualTableIndex("ds_1", "t_order_1"))
	assert.Equal(t, -1, tr.ActualTableIndex("ds_1", "t_order_0"))
	name, ok := tr.ActualTableByIndex("ds_0", 1)
	assert.True(t, ok)
	assert.Equal(t, "t_order_1", name)
	_, ok = tr.ActualTableByIndex("ds_1", 1)
	assert.False(t, ok)
}

func TestTableRuleEmptyNodes(t *testing.T) {
	_, err := NewTableRule("t_order", nil, nil, nil, nil)
	assert.NotNil(t, err)
}

func TestBuild(t *testing.T) {
	r, err := Build(orderConfiguration(), nil)
	require.Nil(t, err)

	assert.Equal(t, []string{"ds_0", "ds_1"}, r.DataSourceNames())
	assert.Equal(t, "ds_0", r.DefaultDataSource())
	assert.True(t, r.IsShardingTable("T_ORDER"))
	assert.False(t, r.IsShardingTable("t_config"))
	assert.True(t, r.IsBroadcastTable("t_config"))
	assert.Equal(t, []string{"t_config"}, r.BroadcastTables())

	order, ok := r.TableRule("t_order")
	require.True(t, ok)
	assert.Equal(t, 4, len(order.DataNodes))
	assert.Equal(t, strategy.Standard, r.DatabaseStrategy(order).Type)
	assert.Equal(t, []string{"order_id"}, r.TableStrategy(order).GetShardingColumns())

	binding, ok := r.BindingTableRule("t_order_item")
	require.True(t, ok)
	assert.Equal(t, []string{"t_order", "t_order_item"}, binding.LogicTables())
	actual, err := binding.BindingActualTable("ds_1", "t_order_item", "t_order", "t_order_1")
	require.Nil(t, err)
	assert.Equal(t, "t_order_item_1", actual)

	tables := r.TableRules()
	require.Equal(t, 3, len(tables))
	assert.Equal(t, "t_log", tables[0].LogicTable)
}

func TestBuildAutoTable(t *testing.T) {
	r, err := Build(orderConfiguration(), nil)
	require.Nil(t, err)

	log, ok := r.TableRule("t_log")
	require.True(t, ok)
	assert.True(t, log.AutoTable)
	testkit.MustMatch(t, []DataNode{
		{"ds_0", "t_log_0"}, {"ds_1", "t_log_1"}, {"ds_0", "t_log_2"}, {"ds_1", "t_log_3"}, {"ds_0", "t_log_4"},
	}, log.DataNodes)
	assert.Equal(t, []string{"t_log_0", "t_log_2", "t_log_4"}, log.ActualTableNames("ds_0"))
	assert.Equal(t, []string{"t_log_1", "t_log_3"}, log.ActualTableNames("ds_1"))
	assert.Equal(t, strategy.None, r.DatabaseStrategy(log).Type)
}

func TestDefaultStrategies(t *testing.T) {
	cfg := orderConfiguration()
	cfg.Rule.DefaultDatabaseStrategy = standardStrategy("user_id", "db_mod")
	cfg.Rule.Tables["t_user"] = &TableConfiguration{}
	r, err := Build(cfg, nil)
	require.Nil(t, err)

	user, ok := r.TableRule("t_user")
	require.True(t, ok)
	assert.Equal(t, []DataNode{{"ds_0", "t_user"}, {"ds_1", "t_user"}}, user.DataNodes)
	assert.Equal(t, strategy.Standard, r.DatabaseStrategy(user).Type)
	assert.Equal(t, strategy.None, r.TableStrategy(user).Type)
}

func TestBuildCollectsAllErrors(t *testing.T) {
	cfg := orderConfiguration()
	cfg.Rule.Tables["t_bad_nodes"] = &TableConfiguration{ActualDataNodes: "ds_${0..1"}
	cfg.Rule.Tables["t_unknown_ds"] = &TableConfiguration{ActualDataNodes: "ds_9.t_x"}
	cfg.Rule.Tables["t_unknown_column"] = &TableConfiguration{
		Columns:       []string{"id"},
		TableStrategy: standardStrategy("order_id", "table_mod"),
	}
	cfg.Rule.Tables["t_unknown_algorithm"] = &TableConfiguration{TableStrategy: standardStrategy("id", "nope")}
	cfg.Rule.ShardingAlgorithms["bad_type"] = &AlgorithmConfiguration{Type: "NOPE"}

	_, err := Build(cfg, nil)
	require.NotNil(t, err)
	errs := multierr.Errors(err)
	assert.Equal(t, 5, len(errs), err.Error())
	for _, e := range errs {
		var ce *core.ConfigurationError
		assert.True(t, errors.As(e, &ce), e.Error())
	}
}

func TestBuildBindingCardinality(t *testing.T) {
	cfg := orderConfiguration()
	cfg.Rule.Tables["t_order_item"].ActualDataNodes = "ds_${0..1}.t_order_item_${0..2}"
	_, err := Build(cfg, nil)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "different actual table count")
}

func TestBuildBindingDataSources(t *testing.T) {
	cfg := orderConfiguration()
	cfg.Rule.Tables["t_order_item"].ActualDataNodes = "ds_0.t_order_item_${0..1}"
	_, err := Build(cfg, nil)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "different data sources")
}

func TestBuildInvalidStrategies(t *testing.T) {
	cfg := orderConfiguration()
	cfg.Rule.Tables["t_order"].TableStrategy = &StrategyConfiguration{
		Complex: &ComplexStrategyConfiguration{ShardingColumns: "order_id", AlgorithmName: "table_mod"},
	}
	cfg.Rule.DefaultTableStrategy = &StrategyConfiguration{
		None: &NoneStrategyConfiguration{},
		Hint: &HintStrategyConfiguration{AlgorithmName: "table_mod"},
	}
	_, err := Build(cfg, nil)
	require.NotNil(t, err)
	assert.Equal(t, 2, len(multierr.Errors(err)))
}

func TestBuildBroadcastConflict(t *testing.T) {
	cfg := orderConfiguration()
	cfg.Rule.BroadcastTables = append(cfg.Rule.BroadcastTables, "t_order")
	_, err := Build(cfg, nil)
	assert.NotNil(t, err)
}

func TestBuildDefaultDataSource(t *testing.T) {
	cfg := orderConfiguration()
	cfg.DefaultDataSource = "ds_7"
	_, err := Build(cfg, nil)
	assert.NotNil(t, err)

	cfg = orderConfiguration()
	cfg.DefaultDataSource = ""
	r, err := Build(cfg, nil)
	require.Nil(t, err)
	assert.Equal(t, "", r.DefaultDataSource())
}

func TestDataSourceNamesIgnoreCase(t *testing.T) {
	cfg := orderConfiguration()
	cfg.DataSources = []string{"DS_${0..1}"}
	cfg.DefaultDataSource = "DS_0"
	cfg.Rule.Tables["t_order"].ActualDataNodes = "DS_${0..1}.t_order_${0..1}"
	cfg.Rule.AutoTables["t_log"].ActualDataSources = "Ds_1"

	r, err := Build(cfg, nil)
	require.Nil(t, err)
	assert.Equal(t, []string{"ds_0", "ds_1"}, r.DataSourceNames())
	assert.Equal(t, "ds_0", r.DefaultDataSource())

	order, ok := r.TableRule("t_order")
	require.True(t, ok)
	assert.Equal(t, []string{"ds_0", "ds_1"}, order.ActualDataSourceNames())
	log, ok := r.TableRule("t_log")
	require.True(t, ok)
	assert.Equal(t, []string{"ds_1"}, log.ActualDataSourceNames())
}

func TestAutoTableRequiresAutoAlgorithm(t *testing.T) {
	cfg := orderConfiguration()
	cfg.Rule.ShardingAlgorithms["log_inline"] = &AlgorithmConfiguration{
		Type:  "INLINE",
		Props: map[string]interface{}{"algorithm-expression": "t_log_${id % 2}"},
	}
	cfg.Rule.AutoTables["t_log"].ShardingStrategy = standardStrategy("id", "log_inline")
	_, err := Build(cfg, nil)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "can not size auto tables")
}

func TestHolder(t *testing.T) {
	first, err := Build(orderConfiguration(), nil)
	require.Nil(t, err)
	h := NewHolder(first)
	snapshot := h.Load()

	second, err := Build(orderConfiguration(), nil)
	require.Nil(t, err)
	prev := h.Swap(second)

	assert.Same(t, first, prev)
	assert.Same(t, first, snapshot)
	assert.Same(t, second, h.Load())
}

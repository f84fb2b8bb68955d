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
	"sort"

	"github.com/endink/go-sharding-router/algorithm"
	"github.com/endink/go-sharding-router/core"
	"github.com/endink/go-sharding-router/strategy"
	"github.com/scylladb/go-set/strset"
)

// ShardingRule is the read-only routing metadata of a schema, replace it as a whole to reload.
type ShardingRule struct {
	DefaultDatabaseStrategy *strategy.Strategy
	DefaultTableStrategy    *strategy.Strategy

	dataSources       []string
	defaultDataSource string
	tableRules        map[string]*TableRule
	tableNames        []string
	bindingRules      []*BindingTableRule
	bindingIndex      map[string]*BindingTableRule
	broadcastTables   *strset.Set
	algorithms        map[string]algorithm.ShardingAlgorithm
}

func (r *ShardingRule) DataSourceNames() []string {
	return r.dataSources
}

// DefaultDataSource is where unconfigured tables live, empty when none is known.
func (r *ShardingRule) DefaultDataSource() string {
	if r.defaultDataSource != "" {
		return r.defaultDataSource
	}
	if len(r.dataSources) == 1 {
		return r.dataSources[0]
	}
	return ""
}

func (r *ShardingRule) TableRule(logicTable string) (*TableRule, bool) {
	t, ok := r.tableRules[core.TrimAndLower(logicTable)]
	return t, ok
}

// TableRules returns the rules ordered by logic table name.
func (r *ShardingRule) TableRules() []*TableRule {
	list := make([]*TableRule, len(r.tableNames))
	for i, name := range r.tableNames {
		list[i] = r.tableRules[name]
	}
	return list
}

func (r *ShardingRule) IsShardingTable(logicTable string) bool {
	_, ok := r.TableRule(logicTable)
	return ok
}

func (r *ShardingRule) BindingTableRules() []*BindingTableRule {
	return r.bindingRules
}

func (r *ShardingRule) BindingTableRule(logicTable string) (*BindingTableRule, bool) {
	b, ok := r.bindingIndex[core.TrimAndLower(logicTable)]
	return b, ok
}

func (r *ShardingRule) IsBroadcastTable(logicTable string) bool {
	return r.broadcastTables.Has(core.TrimAndLower(logicTable))
}

func (r *ShardingRule) BroadcastTables() []string {
	list := r.broadcastTables.List()
	sort.Strings(list)
	return list
}

// DatabaseStrategy returns the strategy of the table or the default one.
func (r *ShardingRule) DatabaseStrategy(t *TableRule) *strategy.Strategy {
	if t != nil && t.DatabaseStrategy != nil {
		return t.DatabaseStrategy
	}
	if r.DefaultDatabaseStrategy != nil {
		return r.DefaultDatabaseStrategy
	}
	return strategy.NoneStrategy
}

// TableStrategy returns the strategy of the table or the default one.
func (r *ShardingRule) TableStrategy(t *TableRule) *strategy.Strategy {
	if t != nil && t.TableStrategy != nil {
		return t.TableStrategy
	}
	if r.DefaultTableStrategy != nil {
		return r.DefaultTableStrategy
	}
	return strategy.NoneStrategy
}

func (r *ShardingRule) Algorithm(name string) (algorithm.ShardingAlgorithm, bool) {
	a, ok := r.algorithms[name]
	return a, ok
}

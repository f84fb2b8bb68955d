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
	"github.com/endink/go-sharding-router/core"
	"github.com/endink/go-sharding-router/hint"
	"github.com/endink/go-sharding-router/rule"
	"github.com/pkg/errors"
)

// StandardEngine routes a single logic table of a sharding rule.
type StandardEngine struct {
	rule *rule.ShardingRule
}

func NewStandardEngine(r *rule.ShardingRule) *StandardEngine {
	return &StandardEngine{rule: r}
}

// Route returns one unit per matching data node, data source major and in data node order.
// Forced hint values replace the conditions of their level, an empty context means no data node can match.
func (e *StandardEngine) Route(t *rule.TableRule, values *core.ShardingValues, hints *hint.Manager) (*RouteContext, error) {
	if values == nil {
		values = core.EmptyShardingValues(t.LogicTable)
	}

	dataSources, err := e.rule.DatabaseStrategy(t).Shard(t.ActualDataSourceNames(), values, hints.DatabaseShardingValues(t.LogicTable))
	if err != nil {
		return nil, errors.Wrapf(err, "route data sources of table '%s' fault", t.LogicTable)
	}
	if len(dataSources) == 0 {
		return newRouteContext(), nil
	}

	var tables []string
	if hints.IsDatabaseShardingOnly() {
		tables = t.AllActualTableNames()
	} else {
		tables, err = e.rule.TableStrategy(t).Shard(t.AllActualTableNames(), values, hints.TableShardingValues(t.LogicTable))
		if err != nil {
			return nil, errors.Wrapf(err, "route tables of table '%s' fault", t.LogicTable)
		}
	}

	units := make([]*RouteUnit, 0, len(dataSources)*len(tables))
	for _, ds := range dataSources {
		for _, table := range tables {
			if t.HasDataNode(ds, table) {
				units = append(units, newRouteUnit(ds, RouteMapper{LogicName: t.LogicTable, ActualName: table}))
			}
		}
	}
	return newRouteContext(units...), nil
}

// isFullRoute reports whether a sharded table is routed without anything to narrow it.
func (e *StandardEngine) isFullRoute(t *rule.TableRule, values *core.ShardingValues, hints *hint.Manager) bool {
	if !values.IsEmpty() || hints.HasValues(t.LogicTable) {
		return false
	}
	return len(t.DataNodes) > 1
}

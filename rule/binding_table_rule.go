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
	"strings"

	"github.com/pkg/errors"
	"github.com/scylladb/go-set/strset"
)

// BindingTableRule groups tables sharded identically, they are routed in lock-step by table index.
type BindingTableRule struct {
	TableRules []*TableRule
}

// NewBindingTableRule fails when members do not share the data sources or the table count per data source.
func NewBindingTableRule(tables ...*TableRule) (*BindingTableRule, error) {
	if len(tables) < 2 {
		return nil, errors.New("binding table group requires at least two tables")
	}
	first := tables[0]
	firstSources := strset.New(first.ActualDataSourceNames()...)
	for _, t := range tables[1:] {
		if !firstSources.IsEqual(strset.New(t.ActualDataSourceNames()...)) {
			return nil, errors.Errorf("binding tables '%s' and '%s' have different data sources: [%s] and [%s]",
				first.LogicTable, t.LogicTable,
				strings.Join(first.ActualDataSourceNames(), ", "), strings.Join(t.ActualDataSourceNames(), ", "))
		}
		for _, ds := range first.ActualDataSourceNames() {
			if len(first.ActualTableNames(ds)) != len(t.ActualTableNames(ds)) {
				return nil, errors.Errorf("binding tables '%s' and '%s' have different actual table count on data source '%s': %d and %d",
					first.LogicTable, t.LogicTable, ds, len(first.ActualTableNames(ds)), len(t.ActualTableNames(ds)))
			}
		}
	}
	return &BindingTableRule{TableRules: tables}, nil
}

func (b *BindingTableRule) LogicTables() []string {
	names := make([]string, len(b.TableRules))
	for i, t := range b.TableRules {
		names[i] = t.LogicTable
	}
	return names
}

func (b *BindingTableRule) HasLogicTable(table string) bool {
	_, ok := b.TableRule(table)
	return ok
}

func (b *BindingTableRule) TableRule(table string) (*TableRule, bool) {
	for _, t := range b.TableRules {
		if t.LogicTable == table {
			return t, true
		}
	}
	return nil, false
}

// BindingActualTable maps an actual table of one member to the actual table of another member on the same data source.
func (b *BindingTableRule) BindingActualTable(dataSource string, logicTable string, otherLogicTable string, otherActualTable string) (string, error) {
	other, ok := b.TableRule(otherLogicTable)
	if !ok {
		return "", errors.Errorf("table '%s' is not in binding group [%s]", otherLogicTable, strings.Join(b.LogicTables(), ", "))
	}
	target, ok := b.TableRule(logicTable)
	if !ok {
		return "", errors.Errorf("table '%s' is not in binding group [%s]", logicTable, strings.Join(b.LogicTables(), ", "))
	}
	index := other.ActualTableIndex(dataSource, otherActualTable)
	if index < 0 {
		return "", errors.Errorf("actual table '%s.%s' is not a node of table '%s'", dataSource, otherActualTable, otherLogicTable)
	}
	actual, ok := target.ActualTableByIndex(dataSource, index)
	if !ok {
		return "", errors.Errorf("binding table '%s' has no actual table at index %d on data source '%s'", logicTable, index, dataSource)
	}
	return actual, nil
}

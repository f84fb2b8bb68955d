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
	"fmt"
	"strings"

	"github.com/endink/go-sharding-router/core"
	"github.com/endink/go-sharding-router/strategy"
	"github.com/pkg/errors"
	"github.com/scylladb/go-set/strset"
)

// TableRule is the immutable sharding metadata of one logical table.
type TableRule struct {
	LogicTable string
	DataNodes  []DataNode
	// nil strategies fall back to the defaults of the sharding rule
	DatabaseStrategy *strategy.Strategy
	TableStrategy    *strategy.Strategy
	Columns          []string
	AutoTable        bool

	dataSources        []string
	tablesByDataSource map[string][]string
	allTables          []string
	nodeSet            map[DataNode]struct{}
}

func NewTableRule(logicTable string, nodes []DataNode, databaseStrategy *strategy.Strategy, tableStrategy *strategy.Strategy, columns []string) (*TableRule, error) {
	name := core.TrimAndLower(logicTable)
	if name == "" {
		return nil, errors.New("logic table name can not be empty")
	}
	if len(nodes) == 0 {
		return nil, errors.Errorf("table '%s' has no actual data node", name)
	}

	t := &TableRule{
		LogicTable:         name,
		DatabaseStrategy:   databaseStrategy,
		TableStrategy:      tableStrategy,
		Columns:            core.DistinctSliceAndTrim(core.TrimAndLowerArray(columns)),
		tablesByDataSource: make(map[string][]string),
		nodeSet:            make(map[DataNode]struct{}, len(nodes)),
	}
	tableSet := strset.New()
	for _, n := range nodes {
		if _, ok := t.nodeSet[n]; ok {
			continue
		}
		t.nodeSet[n] = core.Nothing
		t.DataNodes = append(t.DataNodes, n)
		if _, ok := t.tablesByDataSource[n.DataSource]; !ok {
			t.dataSources = append(t.dataSources, n.DataSource)
		}
		t.tablesByDataSource[n.DataSource] = append(t.tablesByDataSource[n.DataSource], n.Table)
		if !tableSet.Has(n.Table) {
			tableSet.Add(n.Table)
			t.allTables = append(t.allTables, n.Table)
		}
	}

	if err := t.checkColumns(databaseStrategy); err != nil {
		return nil, err
	}
	if err := t.checkColumns(tableStrategy); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *TableRule) checkColumns(s *strategy.Strategy) error {
	if s == nil || len(t.Columns) == 0 {
		return nil
	}
	for _, c := range s.GetShardingColumns() {
		if !t.HasColumn(c) {
			return errors.Errorf("sharding column '%s' is not a column of table '%s', columns: %s", c, t.LogicTable, strings.Join(t.Columns, ", "))
		}
	}
	return nil
}

func (t *TableRule) HasColumn(column string) bool {
	c := core.TrimAndLower(column)
	for _, s := range t.Columns {
		if s == c {
			return true
		}
	}
	return false
}

// ActualDataSourceNames returns data sources in node order.
func (t *TableRule) ActualDataSourceNames() []string {
	return t.dataSources
}

// ActualTableNames returns the tables of a data source in node order.
func (t *TableRule) ActualTableNames(dataSource string) []string {
	return t.tablesByDataSource[dataSource]
}

// AllActualTableNames returns the distinct tables of all data sources in node order.
func (t *TableRule) AllActualTableNames() []string {
	return t.allTables
}

func (t *TableRule) HasDataNode(dataSource string, table string) bool {
	_, ok := t.nodeSet[DataNode{DataSource: dataSource, Table: table}]
	return ok
}

// ActualTableIndex is the position of a table among the tables of its data source, -1 when absent.
func (t *TableRule) ActualTableIndex(dataSource string, table string) int {
	for i, name := range t.tablesByDataSource[dataSource] {
		if name == table {
			return i
		}
	}
	return -1
}

func (t *TableRule) ActualTableByIndex(dataSource string, index int) (string, bool) {
	tables := t.tablesByDataSource[dataSource]
	if index < 0 || index >= len(tables) {
		return "", false
	}
	return tables[index], true
}

func (t *TableRule) String() string {
	return fmt.Sprintf("%s(%d nodes on %s)", t.LogicTable, len(t.DataNodes), strings.Join(t.dataSources, ","))
}

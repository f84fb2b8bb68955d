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
	"fmt"
	"strings"
)

// RouteMapper maps a logic name to the actual name it is routed to.
type RouteMapper struct {
	LogicName  string
	ActualName string
}

func (m RouteMapper) String() string {
	if m.LogicName == m.ActualName {
		return m.ActualName
	}
	return fmt.Sprint(m.LogicName, "->", m.ActualName)
}

// RouteUnit is one physical execution target of a statement: a data source and the actual tables used on it.
type RouteUnit struct {
	DataSource RouteMapper
	Tables     []RouteMapper
}

func newRouteUnit(dataSource string, tables ...RouteMapper) *RouteUnit {
	return &RouteUnit{
		DataSource: RouteMapper{LogicName: dataSource, ActualName: dataSource},
		Tables:     tables,
	}
}

// ActualTable returns the actual table name of a logic table in this unit.
func (u *RouteUnit) ActualTable(logicTable string) (string, bool) {
	for _, t := range u.Tables {
		if t.LogicName == logicTable {
			return t.ActualName, true
		}
	}
	return "", false
}

func (u *RouteUnit) LogicTableNames() []string {
	names := make([]string, len(u.Tables))
	for i, t := range u.Tables {
		names[i] = t.LogicName
	}
	return names
}

func (u *RouteUnit) ActualTableNames() []string {
	names := make([]string, len(u.Tables))
	for i, t := range u.Tables {
		names[i] = t.ActualName
	}
	return names
}

func (u *RouteUnit) hasTable(logicTable string) bool {
	_, ok := u.ActualTable(logicTable)
	return ok
}

// merge returns a new unit holding the tables of both units, the data source of u is kept.
func (u *RouteUnit) merge(other *RouteUnit) *RouteUnit {
	tables := make([]RouteMapper, 0, len(u.Tables)+len(other.Tables))
	tables = append(tables, u.Tables...)
	for _, t := range other.Tables {
		if !u.hasTable(t.LogicName) {
			tables = append(tables, t)
		}
	}
	return &RouteUnit{DataSource: u.DataSource, Tables: tables}
}

func (u *RouteUnit) withTables(tables ...RouteMapper) *RouteUnit {
	return u.merge(&RouteUnit{DataSource: u.DataSource, Tables: tables})
}

func (u *RouteUnit) String() string {
	tables := make([]string, len(u.Tables))
	for i, t := range u.Tables {
		tables[i] = t.String()
	}
	return fmt.Sprintf("%s[%s]", u.DataSource, strings.Join(tables, ", "))
}

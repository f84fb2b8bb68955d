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
)

// TableReference is one occurrence of a logic table in a statement.
// Scope 0 is the outer query, a greater scope is a nested or correlated subquery.
type TableReference struct {
	Table  string
	Alias  string
	Scope  int
	Values *core.ShardingValues
}

// Statement is what the parsing layer hands to the router: every table occurrence with its own conditions.
type Statement struct {
	Tables []TableReference
}

func NewStatement(tables ...TableReference) *Statement {
	return &Statement{Tables: tables}
}

// Table adds an outer query occurrence.
func (s *Statement) Table(table string, values *core.ShardingValues) *Statement {
	return s.add(table, 0, values)
}

// Nested adds a subquery occurrence at the scope.
func (s *Statement) Nested(table string, scope int, values *core.ShardingValues) *Statement {
	return s.add(table, scope, values)
}

func (s *Statement) add(table string, scope int, values *core.ShardingValues) *Statement {
	s.Tables = append(s.Tables, TableReference{Table: table, Scope: scope, Values: values})
	return s
}

func (r TableReference) logicTable() string {
	return core.TrimAndLower(r.Table)
}

func (r TableReference) values() *core.ShardingValues {
	if r.Values == nil {
		return core.EmptyShardingValues(r.logicTable())
	}
	if r.Values.TableName == "" {
		v := *r.Values
		v.TableName = r.logicTable()
		return &v
	}
	return r.Values
}

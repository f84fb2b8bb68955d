/*
 *
 *  * Copyright 2021. Go-Sharding Author All Rights Reserved.
 *  *
 *  *  Licensed under the Apache License, Version 2.0 (the "License");
 *  *  you may not use this file except in compliance with the License.
 *  *  You may obtain a copy of the License at
 *  *
 *  *      http://www.apache.org/licenses/LICENSE-2.0
 *  *
 *  *  Unless required by applicable law or agreed to in writing, software
 *  *  distributed under the License is distributed on an "AS IS" BASIS,
 *  *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  *  See the License for the specific language governing permissions and
 *  *  limitations under the License.
 *  *
 *  *  File author: Anders Xiao
 *
 */

package core

import (
	"sort"
	"strings"
)

// ShardingValues holds the sharding conditions of one logic table, already extracted from the predicates.
// Several values of one column are alternatives: routing unions their results.
// A table without any value is unconditioned and routes to every data node.
type ShardingValues struct {
	TableName    string
	ScalarValues map[string][]interface{} //key: column, value: values
	RangeValues  map[string][]Range
}

// EmptyShardingValues returns an unconditioned value set for the table.
func EmptyShardingValues(tableName string) *ShardingValues {
	return &ShardingValues{
		TableName:    tableName,
		ScalarValues: make(map[string][]interface{}),
		RangeValues:  make(map[string][]Range),
	}
}

func (values *ShardingValues) IsEmpty() bool {
	if values == nil {
		return true
	}
	for _, v := range values.ScalarValues {
		if len(v) > 0 {
			return false
		}
	}
	for _, v := range values.RangeValues {
		if len(v) > 0 {
			return false
		}
	}
	return true
}

func (values *ShardingValues) HasScalar(column string) bool {
	return values != nil && len(values.ScalarValues[column]) > 0
}

func (values *ShardingValues) HasRange(column string) bool {
	return values != nil && len(values.RangeValues[column]) > 0
}

// HasColumn reports whether any scalar or range condition exists for the column.
func (values *ShardingValues) HasColumn(column string) bool {
	return values.HasScalar(column) || values.HasRange(column)
}

func (values *ShardingValues) Scalars(column string) []interface{} {
	if values == nil {
		return nil
	}
	return values.ScalarValues[column]
}

func (values *ShardingValues) Ranges(column string) []Range {
	if values == nil {
		return nil
	}
	return values.RangeValues[column]
}

func (values *ShardingValues) ScalarCount(column string) int {
	return len(values.Scalars(column))
}

func (values *ShardingValues) RangeCount(column string) int {
	return len(values.Ranges(column))
}

// Columns returns the conditioned columns in name order.
func (values *ShardingValues) Columns() []string {
	if values == nil {
		return nil
	}
	set := make(map[string]struct{})
	for c, v := range values.ScalarValues {
		if len(v) > 0 {
			set[c] = Nothing
		}
	}
	for c, v := range values.RangeValues {
		if len(v) > 0 {
			set[c] = Nothing
		}
	}
	columns := make([]string, 0, len(set))
	for c := range set {
		columns = append(columns, c)
	}
	sort.Strings(columns)
	return columns
}

func (values *ShardingValues) String() string {
	if values.IsEmpty() {
		return values.TableName + ":<none>"
	}
	sb := NewStringBuilder(values.TableName, ":")
	parts := make([]string, 0)
	for _, c := range values.Columns() {
		for _, v := range values.Scalars(c) {
			parts = append(parts, NewPreciseShardingValue(values.TableName, c, v).String())
		}
		for _, r := range values.Ranges(c) {
			parts = append(parts, NewRangeShardingValue(values.TableName, c, r).String())
		}
	}
	sb.Write(strings.Join(parts, ", "))
	return sb.String()
}

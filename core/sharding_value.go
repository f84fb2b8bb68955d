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

package core

import "fmt"

// ShardingValue is what a sharding algorithm receives for one logic table.
type ShardingValue interface {
	fmt.Stringer
	GetTable() string
}

// PreciseShardingValue carries a single value of a sharding column, from '=' or 'IN'.
type PreciseShardingValue struct {
	Table  string
	Column string
	Value  interface{}
}

func NewPreciseShardingValue(table string, column string, value interface{}) *PreciseShardingValue {
	return &PreciseShardingValue{
		Table:  table,
		Column: column,
		Value:  value,
	}
}

func (s *PreciseShardingValue) GetTable() string {
	return s.Table
}

func (s *PreciseShardingValue) String() string {
	return fmt.Sprintf("%s.%s:%v", s.Table, s.Column, s.Value)
}

// RangeShardingValue carries an interval of a sharding column, from 'BETWEEN', '<', '>=' ...
type RangeShardingValue struct {
	Table  string
	Column string
	Value  Range
}

func NewRangeShardingValue(table string, column string, value Range) *RangeShardingValue {
	return &RangeShardingValue{
		Table:  table,
		Column: column,
		Value:  value,
	}
}

func (s *RangeShardingValue) GetTable() string {
	return s.Table
}

func (s *RangeShardingValue) String() string {
	return fmt.Sprintf("%s.%s:%s", s.Table, s.Column, s.Value)
}

// ComplexKeysShardingValue carries every configured sharding column at once.
type ComplexKeysShardingValue struct {
	Table        string
	ScalarValues map[string][]interface{}
	RangeValues  map[string][]Range
}

func (s *ComplexKeysShardingValue) GetTable() string {
	return s.Table
}

func (s *ComplexKeysShardingValue) String() string {
	return fmt.Sprintf("%s:%v%v", s.Table, s.ScalarValues, s.RangeValues)
}

// HintShardingValue carries the values forced by a hint manager.
type HintShardingValue struct {
	Table  string
	Values []interface{}
}

func (s *HintShardingValue) GetTable() string {
	return s.Table
}

func (s *HintShardingValue) String() string {
	return fmt.Sprintf("%s:hint%v", s.Table, s.Values)
}

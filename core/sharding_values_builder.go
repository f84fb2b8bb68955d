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

import (
	"errors"
	"fmt"
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/endink/go-sharding-router/core/collection"
	"sync"
)

// ShardingValuesBuilder collects the sharding conditions of one table, column names are trimmed and lower-cased.
type ShardingValuesBuilder struct {
	tableName    string
	valueSync    sync.Mutex
	scalarValues map[string]*collection.HashSet //key: column, value: value
	rangeValues  map[string]*arraylist.List     //key: column, value: value range
}

func NewShardingValuesBuilder(tableName string) *ShardingValuesBuilder {
	return &ShardingValuesBuilder{
		tableName:    TrimAndLower(tableName),
		scalarValues: make(map[string]*collection.HashSet),
		rangeValues:  make(map[string]*arraylist.List),
	}
}

func (b *ShardingValuesBuilder) Reset() {
	b.valueSync.Lock()
	defer b.valueSync.Unlock()
	b.scalarValues = make(map[string]*collection.HashSet)
	b.rangeValues = make(map[string]*arraylist.List)
}

func (b *ShardingValuesBuilder) Build() *ShardingValues {
	b.valueSync.Lock()
	defer b.valueSync.Unlock()

	var smap = make(map[string][]interface{}, len(b.scalarValues))
	var rmap = make(map[string][]Range, len(b.rangeValues))

	for column, values := range b.scalarValues {
		smap[column] = values.Values()
	}

	for column, values := range b.rangeValues {
		array := make([]Range, values.Size())
		values.Each(func(i int, value interface{}) {
			array[i] = value.(Range)
		})
		rmap[column] = array
	}

	return &ShardingValues{
		TableName:    b.tableName,
		ScalarValues: smap,
		RangeValues:  rmap,
	}
}

// AddValue adds alternative values of a column, duplicates are ignored.
func (b *ShardingValuesBuilder) AddValue(column string, values ...interface{}) *ShardingValuesBuilder {
	c := TrimAndLower(column)
	if c == "" || len(values) == 0 {
		return b
	}
	b.valueSync.Lock()
	defer b.valueSync.Unlock()

	set, ok := b.scalarValues[c]
	if !ok {
		set = collection.NewHashSet()
		b.scalarValues[c] = set
	}
	set.Add(values...)
	return b
}

// AddRange adds alternative ranges of a column.
func (b *ShardingValuesBuilder) AddRange(column string, values ...Range) error {
	c := TrimAndLower(column)
	if c == "" {
		return errors.New("column name of range sharding value can not be empty")
	}
	b.valueSync.Lock()
	defer b.valueSync.Unlock()

	list, ok := b.rangeValues[c]
	if !ok {
		list = arraylist.New()
		b.rangeValues[c] = list
	}
	for _, r := range values {
		if r == nil {
			return fmt.Errorf("range sharding value of %s.%s can not be nil", b.tableName, c)
		}
		list.Add(r)
	}
	return nil
}

func (b *ShardingValuesBuilder) ContainsValue(column string, value interface{}) bool {
	b.valueSync.Lock()
	defer b.valueSync.Unlock()
	if set, ok := b.scalarValues[TrimAndLower(column)]; ok {
		return set.Contains(value)
	}
	return false
}

func (b *ShardingValuesBuilder) ContainsRange(column string, lower interface{}, upper interface{}) bool {
	b.valueSync.Lock()
	defer b.valueSync.Unlock()
	if list, ok := b.rangeValues[TrimAndLower(column)]; ok {
		return list.Any(func(_ int, value interface{}) bool {
			r := value.(Range)
			return r.LowerBound() == lower && r.UpperBound() == upper
		})
	}
	return false
}

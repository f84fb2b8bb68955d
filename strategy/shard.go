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

package strategy

import (
	"github.com/endink/go-sharding-router/algorithm"
	"github.com/endink/go-sharding-router/core"
	"github.com/pkg/errors"
	"github.com/scylladb/go-set/strset"
)

// Shard narrows targets with the values of one table reference, forced hint values take precedence over them.
// The result keeps the order of targets, an empty result means no target can hold a matching row.
func (s *Strategy) Shard(targets []string, values *core.ShardingValues, forced []interface{}) ([]string, error) {
	if s == nil || s.Type == None {
		return all(targets), nil
	}
	tableName := ""
	if values != nil {
		tableName = values.TableName
	}
	if len(forced) > 0 {
		return s.shardForced(targets, tableName, forced)
	}
	switch s.Type {
	case Standard:
		return s.shardStandard(targets, values)
	case Complex:
		return s.shardComplex(targets, values)
	}
	// hint strategy without forced values does not narrow
	return all(targets), nil
}

func (s *Strategy) column() string {
	if len(s.Columns) > 0 {
		return s.Columns[0]
	}
	return ""
}

func (s *Strategy) shardForced(targets []string, tableName string, forced []interface{}) ([]string, error) {
	switch s.Type {
	case Hint:
		if h, ok := s.Algorithm.(algorithm.HintShardingAlgorithm); ok {
			r, err := h.DoHintSharding(targets, &core.HintShardingValue{Table: tableName, Values: forced})
			if err != nil {
				return nil, err
			}
			return inTargetOrder(targets, r), nil
		}
		return s.precise(targets, tableName, s.column(), forced)
	case Standard:
		return s.precise(targets, tableName, s.column(), forced)
	case Complex:
		value := &core.ComplexKeysShardingValue{
			Table:        tableName,
			ScalarValues: make(map[string][]interface{}, len(s.Columns)),
		}
		for _, c := range s.Columns {
			value.ScalarValues[c] = forced
		}
		return s.complex(targets, value)
	}
	return all(targets), nil
}

func (s *Strategy) shardStandard(targets []string, values *core.ShardingValues) ([]string, error) {
	column := s.column()
	if !values.HasColumn(column) {
		return all(targets), nil
	}
	result := strset.New()
	if values.HasScalar(column) {
		r, err := s.precise(targets, values.TableName, column, values.Scalars(column))
		if err != nil {
			return nil, err
		}
		result.Add(r...)
	}
	if values.HasRange(column) {
		ra, ok := s.Algorithm.(algorithm.RangeShardingAlgorithm)
		if !ok {
			return nil, errors.Errorf("algorithm '%s' (%s) does not support range sharding, table: %s, column: %s", s.AlgorithmName, s.Algorithm.Type(), values.TableName, column)
		}
		for _, rv := range values.Ranges(column) {
			r, err := ra.DoRangeSharding(targets, core.NewRangeShardingValue(values.TableName, column, rv))
			if err != nil {
				return nil, errors.Wrapf(err, "range sharding fault, table: %s, column: %s, range: %s", values.TableName, column, rv)
			}
			result.Add(r...)
		}
	}
	return inTargetOrder(targets, result.List()), nil
}

func (s *Strategy) shardComplex(targets []string, values *core.ShardingValues) ([]string, error) {
	value := &core.ComplexKeysShardingValue{
		ScalarValues: make(map[string][]interface{}, len(s.Columns)),
		RangeValues:  make(map[string][]core.Range),
	}
	if values != nil {
		value.Table = values.TableName
	}
	for _, c := range s.Columns {
		if !values.HasColumn(c) {
			return all(targets), nil
		}
		if values.HasScalar(c) {
			value.ScalarValues[c] = values.Scalars(c)
		}
		if values.HasRange(c) {
			value.RangeValues[c] = values.Ranges(c)
		}
	}
	return s.complex(targets, value)
}

func (s *Strategy) complex(targets []string, value *core.ComplexKeysShardingValue) ([]string, error) {
	r, err := s.Algorithm.(algorithm.ComplexKeysShardingAlgorithm).DoComplexSharding(targets, value)
	if err != nil {
		return nil, errors.Wrapf(err, "complex sharding fault, table: %s", value.Table)
	}
	return inTargetOrder(targets, r), nil
}

func (s *Strategy) precise(targets []string, tableName string, column string, values []interface{}) ([]string, error) {
	pa := s.Algorithm.(algorithm.PreciseShardingAlgorithm)
	result := strset.New()
	for _, v := range values {
		t, ok, err := pa.DoPreciseSharding(targets, core.NewPreciseShardingValue(tableName, column, v))
		if err != nil {
			return nil, errors.Wrapf(err, "precise sharding fault, table: %s, column: %s, value: %v", tableName, column, v)
		}
		if ok {
			result.Add(t)
		}
	}
	return inTargetOrder(targets, result.List()), nil
}

// inTargetOrder drops names that are not targets and orders the rest like targets.
func inTargetOrder(targets []string, names []string) []string {
	set := strset.New(names...)
	r := make([]string, 0, set.Size())
	for _, t := range targets {
		if set.Has(t) {
			r = append(r, t)
			set.Remove(t)
		}
	}
	return r
}

func all(targets []string) []string {
	r := make([]string, len(targets))
	copy(r, targets)
	return r
}

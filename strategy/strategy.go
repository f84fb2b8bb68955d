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
	"fmt"
	"strings"

	"github.com/endink/go-sharding-router/algorithm"
	"github.com/endink/go-sharding-router/core"
	"github.com/pkg/errors"
	"github.com/scylladb/go-set/strset"
)

type Type int

const (
	None Type = iota
	Hint
	Standard
	Complex
)

func (t Type) String() string {
	switch t {
	case Hint:
		return "hint"
	case Standard:
		return "standard"
	case Complex:
		return "complex"
	default:
		return "none"
	}
}

func ParseType(text string) (Type, error) {
	switch core.TrimAndLower(text) {
	case "", "none":
		return None, nil
	case "hint":
		return Hint, nil
	case "standard":
		return Standard, nil
	case "complex":
		return Complex, nil
	}
	return None, errors.Errorf("unknown sharding strategy type '%s'", text)
}

// Strategy decides which targets of one level (data sources or tables) a table reference resolves to.
type Strategy struct {
	Type          Type
	Columns       []string
	AlgorithmName string
	Algorithm     algorithm.ShardingAlgorithm
}

// NoneStrategy never narrows.
var NoneStrategy = &Strategy{Type: None}

type columnsAware interface {
	Columns() []string
}

// New validates the strategy shape and the algorithm capabilities it needs.
func New(tp Type, columns []string, algorithmName string, a algorithm.ShardingAlgorithm) (*Strategy, error) {
	s := &Strategy{
		Type:          tp,
		Columns:       core.DistinctSliceAndTrim(core.TrimAndLowerArray(columns)),
		AlgorithmName: algorithmName,
		Algorithm:     a,
	}
	if tp == None {
		return NoneStrategy, nil
	}
	if a == nil {
		return nil, errors.Errorf("%s sharding strategy requires a sharding algorithm", tp)
	}
	switch tp {
	case Hint:
		_, isHint := a.(algorithm.HintShardingAlgorithm)
		_, isPrecise := a.(algorithm.PreciseShardingAlgorithm)
		if !isHint && !isPrecise {
			return nil, errors.Errorf("algorithm '%s' (%s) can not be used by hint sharding strategy", algorithmName, a.Type())
		}
	case Standard:
		if len(s.Columns) != 1 {
			return nil, errors.Errorf("standard sharding strategy requires exactly one sharding column, given %d", len(s.Columns))
		}
		if _, ok := a.(algorithm.PreciseShardingAlgorithm); !ok {
			return nil, errors.Errorf("algorithm '%s' (%s) can not be used by standard sharding strategy", algorithmName, a.Type())
		}
		if binder, ok := a.(algorithm.ColumnBinder); ok {
			if err := binder.BindColumn(s.Columns[0]); err != nil {
				return nil, errors.Wrapf(err, "algorithm '%s' (%s) can not shard column '%s'", algorithmName, a.Type(), s.Columns[0])
			}
		}
	case Complex:
		if len(s.Columns) < 2 {
			return nil, errors.Errorf("complex sharding strategy requires at least two sharding columns, given %d", len(s.Columns))
		}
		if _, ok := a.(algorithm.ComplexKeysShardingAlgorithm); !ok {
			return nil, errors.Errorf("algorithm '%s' (%s) can not be used by complex sharding strategy", algorithmName, a.Type())
		}
		if aware, ok := a.(columnsAware); ok {
			if !strset.New(aware.Columns()...).IsEqual(strset.New(s.Columns...)) {
				return nil, errors.Errorf("sharding columns [%s] of the strategy do not match [%s] of algorithm '%s'",
					strings.Join(s.Columns, ", "), strings.Join(aware.Columns(), ", "), algorithmName)
			}
		}
	default:
		return nil, errors.Errorf("unknown sharding strategy type %d", int(tp))
	}
	return s, nil
}

func (s *Strategy) GetShardingColumns() []string {
	return s.Columns
}

func (s *Strategy) IsScalarValueSupported() bool {
	return s.Type == Standard || s.Type == Complex
}

func (s *Strategy) IsRangeValueSupported() bool {
	switch s.Type {
	case Standard:
		_, ok := s.Algorithm.(algorithm.RangeShardingAlgorithm)
		return ok
	case Complex:
		return true
	}
	return false
}

func (s *Strategy) String() string {
	if s.Type == None {
		return "none"
	}
	return fmt.Sprintf("%s(%s: %s)", s.Type, strings.Join(s.Columns, ","), s.AlgorithmName)
}

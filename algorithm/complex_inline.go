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

package algorithm

import (
	"github.com/emirpasic/gods/sets/linkedhashset"
	"github.com/endink/go-sharding-router/core"
	"github.com/endink/go-sharding-router/core/script"
	"github.com/pkg/errors"
)

// ComplexInlineAlgorithm evaluates one expression over every combination of the sharding column values.
type ComplexInlineAlgorithm struct {
	columns         []string
	expression      script.InlineExpression
	allowRangeQuery bool
}

var _ ComplexKeysShardingAlgorithm = &ComplexInlineAlgorithm{}

func NewComplexInlineAlgorithm(props core.Properties) (ShardingAlgorithm, error) {
	p := &inlineProps{}
	if err := props.PopulateValue(p); err != nil {
		return nil, err
	}
	columns := core.TrimAndLowerArray(core.SplitAndTrim(p.ShardingColumns))
	if len(columns) == 0 {
		return nil, errors.New("'sharding-columns' property is required")
	}
	exprText := normalizeExpression(p.Expression)
	if exprText == "" {
		return nil, errors.New("'algorithm-expression' property is required")
	}
	expr, err := script.NewInlineExpression(exprText, columns...)
	if err != nil {
		return nil, err
	}
	return &ComplexInlineAlgorithm{
		columns:         columns,
		expression:      expr,
		allowRangeQuery: p.AllowRangeQuery,
	}, nil
}

func (a *ComplexInlineAlgorithm) Type() string {
	return TypeComplexInline
}

func (a *ComplexInlineAlgorithm) Columns() []string {
	return a.columns
}

func (a *ComplexInlineAlgorithm) DoComplexSharding(targets []string, value *core.ComplexKeysShardingValue) ([]string, error) {
	if len(value.RangeValues) > 0 {
		if !a.allowRangeQuery {
			return nil, errors.Errorf("range query on table '%s' is not allowed with complex inline sharding, set 'allow-range-query-with-inline-sharding' to route it to all targets", value.Table)
		}
		return allTargets(targets), nil
	}

	lists := make([][]interface{}, len(a.columns))
	for i, column := range a.columns {
		values, ok := value.ScalarValues[column]
		if !ok || len(values) == 0 {
			return nil, errors.Errorf("complex inline algorithm needs %d sharding columns, but no value found for column '%s'", len(a.columns), column)
		}
		lists[i] = values
	}

	names := linkedhashset.New()
	for _, combination := range core.Permute(lists) {
		vars := make(map[string]interface{}, len(a.columns))
		for i, column := range a.columns {
			vars[column] = combination[i]
		}
		list, err := a.expression.Flat(vars)
		if err != nil {
			return nil, err
		}
		for _, n := range list {
			names.Add(n)
		}
	}
	return pickNames(targets, toStringSlice(names.Values())), nil
}

func toStringSlice(values []interface{}) []string {
	r := make([]string, len(values))
	for i, v := range values {
		r[i] = v.(string)
	}
	return r
}

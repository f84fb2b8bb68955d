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
	"strings"
	"sync"

	"github.com/endink/go-sharding-router/core"
	"github.com/endink/go-sharding-router/core/script"
	"github.com/pkg/errors"
)

type inlineProps struct {
	Expression      string `yaml:"algorithm-expression"`
	AllowRangeQuery bool   `yaml:"allow-range-query-with-inline-sharding"`
	ShardingColumns string `yaml:"sharding-columns"`
}

// normalizeExpression accepts the '$->{...}' form as well.
func normalizeExpression(expr string) string {
	return strings.ReplaceAll(strings.TrimSpace(expr), "$->{", "${")
}

// InlineAlgorithm evaluates an expression such as 't_order_${order_id % 2}' with the sharding column as variable.
type InlineAlgorithm struct {
	expression      string
	allowRangeQuery bool
	compiled        sync.Map
}

var _ PreciseShardingAlgorithm = &InlineAlgorithm{}
var _ RangeShardingAlgorithm = &InlineAlgorithm{}
var _ ColumnBinder = &InlineAlgorithm{}

func NewInlineAlgorithm(props core.Properties) (ShardingAlgorithm, error) {
	p := &inlineProps{}
	if err := props.PopulateValue(p); err != nil {
		return nil, err
	}
	expr := normalizeExpression(p.Expression)
	if expr == "" {
		return nil, errors.New("'algorithm-expression' property is required")
	}
	if err := script.CheckInlineExpression(expr); err != nil {
		return nil, err
	}
	return &InlineAlgorithm{
		expression:      expr,
		allowRangeQuery: p.AllowRangeQuery,
	}, nil
}

func (a *InlineAlgorithm) Type() string {
	return TypeInline
}

func (a *InlineAlgorithm) expressionFor(column string) (script.InlineExpression, error) {
	if v, ok := a.compiled.Load(column); ok {
		return v.(script.InlineExpression), nil
	}
	expr, err := script.NewInlineExpression(a.expression, column)
	if err != nil {
		return nil, err
	}
	v, _ := a.compiled.LoadOrStore(column, expr)
	return v.(script.InlineExpression), nil
}

// BindColumn compiles the expression with the column declared, an expression referencing another column fails here.
func (a *InlineAlgorithm) BindColumn(column string) error {
	_, err := a.expressionFor(column)
	return err
}

func (a *InlineAlgorithm) DoPreciseSharding(targets []string, value *core.PreciseShardingValue) (string, bool, error) {
	expr, err := a.expressionFor(value.Column)
	if err != nil {
		return "", false, err
	}
	name, err := expr.FlatScalar(map[string]interface{}{value.Column: value.Value})
	if err != nil {
		return "", false, err
	}
	t, ok := MatchTarget(targets, name)
	return t, ok, nil
}

func (a *InlineAlgorithm) DoRangeSharding(targets []string, value *core.RangeShardingValue) ([]string, error) {
	if !a.allowRangeQuery {
		return nil, errors.Errorf("range query on column '%s' of table '%s' is not allowed with inline sharding, set 'allow-range-query-with-inline-sharding' to route it to all targets", value.Column, value.Table)
	}
	return allTargets(targets), nil
}

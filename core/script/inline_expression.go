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

package script

import (
	"errors"
	"fmt"
	"sort"

	"github.com/emirpasic/gods/sets/linkedhashset"
	"github.com/endink/go-sharding-router/core"
)

var _ InlineExpression = &inlineExpr{}

// InlineExpression is a groovy-like template such as 'ds_${0..1}.t_order_${order_id % 4}'.
// An expression is immutable after creation and may be flattened concurrently.
type InlineExpression interface {
	Flat(variables map[string]interface{}) ([]string, error)
	FlatScalar(variables map[string]interface{}) (string, error)
	Raw() string
	Variables() []string
}

type inlineExpr struct {
	expression string
	segments   []*inlineSegmentGroup
	varsNames  []string
}

func (i *inlineExpr) Raw() string {
	return i.expression
}

func (i *inlineExpr) Variables() []string {
	return i.varsNames
}

// FlatScalar returns the first flattened value, an empty string when the expression yields nothing.
func (i *inlineExpr) FlatScalar(variables map[string]interface{}) (string, error) {
	list, err := i.Flat(variables)
	if err != nil {
		return "", err
	}
	if len(list) > 0 {
		return list[0], nil
	}
	return "", nil
}

func (i *inlineExpr) Flat(variables map[string]interface{}) ([]string, error) {
	result := linkedhashset.New()

	for _, g := range i.segments {
		var current []string
		for idx, s := range g.segments {
			var values []string
			if s.script != nil {
				l, err := s.script.Run(variables)
				if err != nil {
					return nil, i.wrapExecuteError(err, variables)
				}
				values = flatFill(s.prefix, l...)
			} else {
				values = []string{s.prefix}
			}
			if idx == 0 {
				current = values
			} else {
				current = outJoin(current, values)
			}
		}
		for _, c := range current {
			result.Add(c)
		}
	}
	return toStrings(result), nil
}

func (i *inlineExpr) wrapExecuteError(e error, vars map[string]interface{}) error {
	sb := core.NewStringBuilder()
	sb.WriteLine("inline sharding fault.")
	sb.WriteLine("Script: ", i.expression)
	sb.Write("Variables: ")
	if len(vars) > 0 {
		names := make([]string, 0, len(vars))
		for name := range vars {
			names = append(names, name)
		}
		sort.Strings(names)
		pairs := make([]interface{}, len(names))
		for idx, name := range names {
			pairs[idx] = fmt.Sprintf("%s=%v", name, vars[name])
		}
		sb.WriteJoin(", ", pairs...)
	} else {
		sb.Write("<none>")
	}
	sb.WriteLine()
	sb.WriteLine("Error:")
	sb.Write(e.Error())

	return errors.New(sb.String())
}

func NewInlineExpression(expression string, variables ...string) (InlineExpression, error) {
	return NewInlineExpressionWithValidator(expression, nil, variables...)
}

func NewInlineExpressionWithValidator(expression string, validator SegmentValidator, variables ...string) (InlineExpression, error) {
	segments, err := splitSegments(expression, validator, variables...)
	if err != nil {
		return nil, err
	}
	return &inlineExpr{
		expression: expression,
		segments:   segments,
		varsNames:  variables,
	}, nil
}

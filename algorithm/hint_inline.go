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
	"github.com/endink/go-sharding-router/core"
	"github.com/endink/go-sharding-router/core/script"
)

const hintValueVariable = "value"

// HintInlineAlgorithm evaluates 'algorithm-expression' with each forced value bound to 'value'.
type HintInlineAlgorithm struct {
	expression script.InlineExpression
}

var _ HintShardingAlgorithm = &HintInlineAlgorithm{}

func NewHintInlineAlgorithm(props core.Properties) (ShardingAlgorithm, error) {
	p := &inlineProps{}
	if err := props.PopulateValue(p); err != nil {
		return nil, err
	}
	exprText := core.IfBlankAndTrim(normalizeExpression(p.Expression), "${value}")
	expr, err := script.NewInlineExpression(exprText, hintValueVariable)
	if err != nil {
		return nil, err
	}
	return &HintInlineAlgorithm{expression: expr}, nil
}

func (a *HintInlineAlgorithm) Type() string {
	return TypeHintInline
}

func (a *HintInlineAlgorithm) DoHintSharding(targets []string, value *core.HintShardingValue) ([]string, error) {
	var names []string
	for _, v := range value.Values {
		list, err := a.expression.Flat(map[string]interface{}{hintValueVariable: v})
		if err != nil {
			return nil, err
		}
		names = append(names, list...)
	}
	return pickNames(targets, names), nil
}

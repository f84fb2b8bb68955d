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

package rule

import (
	"fmt"
	"strings"

	"github.com/endink/go-sharding-router/core"
	"github.com/endink/go-sharding-router/core/script"
	"github.com/pkg/errors"
)

// DataNode is one physical table, written 'data_source.table'. Data source names are lower-cased.
type DataNode struct {
	DataSource string
	Table      string
}

func (n DataNode) String() string {
	return fmt.Sprint(n.DataSource, ".", n.Table)
}

func ParseDataNode(text string) (DataNode, error) {
	parts := strings.Split(strings.TrimSpace(text), ".")
	if len(parts) != 2 {
		return DataNode{}, errors.Errorf("invalid data node '%s', format must be 'data_source.table'", text)
	}
	node := DataNode{
		DataSource: core.TrimAndLower(parts[0]),
		Table:      strings.TrimSpace(parts[1]),
	}
	if err := core.ValidateIdentifier(node.DataSource); err != nil {
		return DataNode{}, errors.Wrapf(err, "invalid data source of data node '%s'", text)
	}
	if err := core.ValidateIdentifier(node.Table); err != nil {
		return DataNode{}, errors.Wrapf(err, "invalid table of data node '%s'", text)
	}
	return node, nil
}

// ParseDataNodes expands an inline expression such as 'ds_${0..1}.t_order_${0..1}', database major.
func ParseDataNodes(expression string) ([]DataNode, error) {
	expr, err := script.NewInlineExpression(expression)
	if err != nil {
		return nil, err
	}
	list, err := expr.Flat(nil)
	if err != nil {
		return nil, err
	}
	nodes := make([]DataNode, 0, len(list))
	for _, item := range list {
		n, err := ParseDataNode(item)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// ParseNames expands an inline expression of data source names such as 'ds_${0..3}', names are lower-cased.
func ParseNames(expression string) ([]string, error) {
	expr, err := script.NewInlineExpression(expression)
	if err != nil {
		return nil, err
	}
	list, err := expr.Flat(nil)
	if err != nil {
		return nil, err
	}
	for i, name := range list {
		if err := core.ValidateIdentifier(name); err != nil {
			return nil, err
		}
		list[i] = core.TrimAndLower(name)
	}
	return list, nil
}

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

package routing

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/scylladb/go-set/strset"
)

var (
	ErrNoDataSourceIntersection     = errors.New("tables of the statement have no data source in common")
	ErrSingleTableAcrossDataSources = errors.New("unsharded table can not be joined with tables routed to other data sources")
	ErrTableRuleNotFound            = errors.New("table rule not found")
)

// RoutingInconsistencyError rejects a statement whose subquery routes a table elsewhere than the outer query.
type RoutingInconsistencyError struct {
	Table  string
	Outer  []string
	Nested []string
}

func newRoutingInconsistencyError(table string, outer *strset.Set, nested *strset.Set) *RoutingInconsistencyError {
	o := outer.List()
	n := nested.List()
	sort.Strings(o)
	sort.Strings(n)
	return &RoutingInconsistencyError{Table: table, Outer: o, Nested: n}
}

func (e *RoutingInconsistencyError) Error() string {
	return fmt.Sprintf("subquery routes table '%s' to [%s] but the outer query routes it to [%s]",
		e.Table, strings.Join(e.Nested, ", "), strings.Join(e.Outer, ", "))
}

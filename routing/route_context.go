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
	"strings"

	"github.com/scylladb/go-set/strset"
)

// RouteContext is the route of one statement. An empty context is a legal route: no data node can hold a matching row.
type RouteContext struct {
	Units []*RouteUnit
}

func newRouteContext(units ...*RouteUnit) *RouteContext {
	return &RouteContext{Units: units}
}

func (c *RouteContext) IsEmpty() bool {
	return c == nil || len(c.Units) == 0
}

// Targets returns every routed 'data_source.actual_table' pair.
func (c *RouteContext) Targets() *strset.Set {
	set := strset.New()
	if c == nil {
		return set
	}
	for _, u := range c.Units {
		for _, t := range u.Tables {
			set.Add(fmt.Sprint(u.DataSource.ActualName, ".", t.ActualName))
		}
	}
	return set
}

// TableTargets returns the routed 'data_source.actual_table' pairs of one logic table.
func (c *RouteContext) TableTargets(logicTable string) *strset.Set {
	set := strset.New()
	if c == nil {
		return set
	}
	for _, u := range c.Units {
		if actual, ok := u.ActualTable(logicTable); ok {
			set.Add(fmt.Sprint(u.DataSource.ActualName, ".", actual))
		}
	}
	return set
}

// DataSourceNames returns the actual data sources in route order.
func (c *RouteContext) DataSourceNames() []string {
	if c == nil {
		return nil
	}
	seen := strset.New()
	names := make([]string, 0, len(c.Units))
	for _, u := range c.Units {
		if !seen.Has(u.DataSource.ActualName) {
			seen.Add(u.DataSource.ActualName)
			names = append(names, u.DataSource.ActualName)
		}
	}
	return names
}

// TableMappers returns the distinct mappers of a logic table over all units.
func (c *RouteContext) TableMappers(logicTable string) []RouteMapper {
	if c == nil {
		return nil
	}
	seen := strset.New()
	var mappers []RouteMapper
	for _, u := range c.Units {
		if actual, ok := u.ActualTable(logicTable); ok && !seen.Has(actual) {
			seen.Add(actual)
			mappers = append(mappers, RouteMapper{LogicName: logicTable, ActualName: actual})
		}
	}
	return mappers
}

func (c *RouteContext) String() string {
	if c.IsEmpty() {
		return "<empty route>"
	}
	units := make([]string, len(c.Units))
	for i, u := range c.Units {
		units[i] = u.String()
	}
	return strings.Join(units, "; ")
}

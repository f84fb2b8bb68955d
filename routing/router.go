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
	"context"
	"sort"
	"strings"
	"time"

	"github.com/endink/go-sharding-router/hint"
	"github.com/endink/go-sharding-router/logging"
	"github.com/endink/go-sharding-router/rule"
	"github.com/endink/go-sharding-router/telemetry"
	"github.com/pkg/errors"
	"github.com/scylladb/go-set/strset"
)

var logger = logging.GetLogger("routing")

// Router routes whole statements against the rule currently held, every call works on one rule snapshot.
type Router struct {
	holder          *rule.Holder
	fullRouteLogger *logging.ThrottledLogger
}

func NewRouter(holder *rule.Holder) *Router {
	return &Router{
		holder:          holder,
		fullRouteLogger: logging.NewThrottledLogger("routing", logger, 10*time.Second),
	}
}

// RouteWithContext routes with the hint manager carried by ctx, if any.
func (r *Router) RouteWithContext(ctx context.Context, stmt *Statement) (*RouteContext, error) {
	hints, _ := hint.FromContext(ctx)
	return r.Route(stmt, hints)
}

// Route computes the data nodes a statement must run on. A nil hints routes on conditions only.
func (r *Router) Route(stmt *Statement, hints *hint.Manager) (*RouteContext, error) {
	start := time.Now()
	s := &statementRouter{
		rule:            r.holder.Load(),
		hints:           hints.Snapshot(),
		fullRouteLogger: r.fullRouteLogger,
		occurrences:     make(map[string][]TableReference),
		routes:          make(map[string]*RouteContext),
	}
	s.engine = NewStandardEngine(s.rule)

	ctx, err := s.route(stmt)
	switch {
	case err != nil:
		var inconsistency *RoutingInconsistencyError
		if errors.As(err, &inconsistency) {
			telemetry.RecordRoute(telemetry.OutcomeInconsistent, 0, start)
		} else {
			telemetry.RecordRoute(telemetry.OutcomeError, 0, start)
		}
		return nil, err
	case ctx.IsEmpty():
		telemetry.RecordRoute(telemetry.OutcomeEmpty, 0, start)
	default:
		telemetry.RecordRoute(telemetry.OutcomeOk, len(ctx.Units), start)
	}
	logger.Debugf("statement routed: %s", ctx)
	return ctx, nil
}

type statementRouter struct {
	rule            *rule.ShardingRule
	engine          *StandardEngine
	hints           *hint.Manager
	fullRouteLogger *logging.ThrottledLogger

	tables      []string
	occurrences map[string][]TableReference
	routes      map[string]*RouteContext
}

type tableGroup struct {
	binding *rule.BindingTableRule
	tables  []string
}

func (s *statementRouter) route(stmt *Statement) (*RouteContext, error) {
	if stmt == nil || len(stmt.Tables) == 0 {
		return newRouteContext(), nil
	}
	s.collect(stmt)

	var sharded, broadcast, single []string
	for _, table := range s.tables {
		switch {
		case s.rule.IsShardingTable(table):
			sharded = append(sharded, table)
		case s.rule.IsBroadcastTable(table):
			broadcast = append(broadcast, table)
		default:
			single = append(single, table)
		}
	}

	for _, table := range sharded {
		if err := s.checkSubqueries(table); err != nil {
			return nil, err
		}
	}

	var ctx *RouteContext
	if len(sharded) > 0 {
		var err error
		if ctx, err = s.routeSharded(sharded); err != nil {
			return nil, err
		}
		if ctx.IsEmpty() {
			return ctx, nil
		}
		ctx = attach(ctx, broadcast...)
	} else if len(single) == 0 {
		units := make([]*RouteUnit, 0, len(s.rule.DataSourceNames()))
		for _, ds := range s.rule.DataSourceNames() {
			units = append(units, newRouteUnit(ds, unchanged(broadcast)...))
		}
		return newRouteContext(units...), nil
	}

	if len(single) > 0 {
		return s.routeSingle(ctx, single, broadcast)
	}
	return ctx, nil
}

// collect de-duplicates tables by logic name, outer occurrences come first.
func (s *statementRouter) collect(stmt *Statement) {
	refs := make([]TableReference, len(stmt.Tables))
	copy(refs, stmt.Tables)
	sort.SliceStable(refs, func(i, j int) bool {
		return refs[i].Scope < refs[j].Scope
	})
	for _, ref := range refs {
		table := ref.logicTable()
		if _, ok := s.occurrences[table]; !ok {
			s.tables = append(s.tables, table)
		}
		s.occurrences[table] = append(s.occurrences[table], ref)
	}
}

// outerOccurrences are the occurrences at the lowest scope of a table, like a self join in the outer query.
func (s *statementRouter) outerOccurrences(table string) []TableReference {
	refs := s.occurrences[table]
	n := 1
	for n < len(refs) && refs[n].Scope == refs[0].Scope {
		n++
	}
	return refs[:n]
}

// routeTable routes the outer occurrences of a sharded table, several occurrences route to the union
// of their data nodes. The result is cached per statement.
func (s *statementRouter) routeTable(table string) (*RouteContext, error) {
	if ctx, ok := s.routes[table]; ok {
		return ctx, nil
	}
	t, ok := s.rule.TableRule(table)
	if !ok {
		return nil, errors.Wrapf(ErrTableRuleNotFound, "table '%s'", table)
	}
	refs := s.outerOccurrences(table)
	routes := make([]*RouteContext, len(refs))
	fullRoute := false
	for i, ref := range refs {
		values := ref.values()
		ctx, err := s.engine.Route(t, values, s.hints)
		if err != nil {
			return nil, err
		}
		routes[i] = ctx
		fullRoute = fullRoute || s.engine.isFullRoute(t, values, s.hints)
	}
	ctx := routes[0]
	if len(routes) > 1 {
		ctx = unionRoutes(t, routes)
	}
	if fullRoute {
		s.fullRouteLogger.Warnf("table '%s' has no sharding condition, routed to all %d data nodes", table, len(ctx.Units))
	}
	s.routes[table] = ctx
	return ctx, nil
}

// unionRoutes merges single table routes of one table keeping data source major node order.
func unionRoutes(t *rule.TableRule, routes []*RouteContext) *RouteContext {
	targets := strset.New()
	for _, r := range routes {
		targets.Merge(r.Targets())
	}
	var units []*RouteUnit
	for _, ds := range t.ActualDataSourceNames() {
		for _, table := range t.ActualTableNames(ds) {
			if targets.Has(rule.DataNode{DataSource: ds, Table: table}.String()) {
				units = append(units, newRouteUnit(ds, RouteMapper{LogicName: t.LogicTable, ActualName: table}))
			}
		}
	}
	return newRouteContext(units...)
}

func (s *statementRouter) groups(sharded []string) []*tableGroup {
	var groups []*tableGroup
	byBinding := make(map[*rule.BindingTableRule]*tableGroup)
	for _, table := range sharded {
		binding, ok := s.rule.BindingTableRule(table)
		if !ok {
			groups = append(groups, &tableGroup{tables: []string{table}})
			continue
		}
		g, exists := byBinding[binding]
		if !exists {
			g = &tableGroup{binding: binding}
			byBinding[binding] = g
			groups = append(groups, g)
		}
		g.tables = append(g.tables, table)
	}
	return groups
}

// primary is the first member carrying conditions or forced values, else the first member.
func (s *statementRouter) primary(g *tableGroup) string {
	for _, table := range g.tables {
		if !s.occurrences[table][0].values().IsEmpty() || s.hints.HasValues(table) {
			return table
		}
	}
	return g.tables[0]
}

// routeGroup routes the primary table and maps the other binding members onto its units by table index.
func (s *statementRouter) routeGroup(g *tableGroup) (*RouteContext, error) {
	primary := s.primary(g)
	ctx, err := s.routeTable(primary)
	if err != nil || len(g.tables) == 1 {
		return ctx, err
	}
	units := make([]*RouteUnit, 0, len(ctx.Units))
	for _, u := range ctx.Units {
		actual, _ := u.ActualTable(primary)
		mapped := make([]RouteMapper, 0, len(g.tables)-1)
		for _, table := range g.tables {
			if table == primary {
				continue
			}
			other, err := g.binding.BindingActualTable(u.DataSource.ActualName, table, primary, actual)
			if err != nil {
				return nil, err
			}
			mapped = append(mapped, RouteMapper{LogicName: table, ActualName: other})
		}
		units = append(units, u.withTables(mapped...))
	}
	return newRouteContext(units...), nil
}

// routeSharded combines independent groups as a cartesian product per data source.
func (s *statementRouter) routeSharded(sharded []string) (*RouteContext, error) {
	groups := s.groups(sharded)
	routes := make([]*RouteContext, len(groups))
	for i, g := range groups {
		ctx, err := s.routeGroup(g)
		if err != nil {
			return nil, err
		}
		routes[i] = ctx
	}

	units := routes[0].Units
	for _, next := range routes[1:] {
		if len(units) == 0 || next.IsEmpty() {
			return newRouteContext(), nil
		}
		var combined []*RouteUnit
		for _, left := range units {
			for _, right := range next.Units {
				if left.DataSource.ActualName == right.DataSource.ActualName {
					combined = append(combined, left.merge(right))
				}
			}
		}
		if len(combined) == 0 {
			return nil, errors.Wrapf(ErrNoDataSourceIntersection, "tables [%s]", strings.Join(sharded, ", "))
		}
		units = combined
	}
	return newRouteContext(units...), nil
}

// routeSingle places unconfigured tables on the default data source.
func (s *statementRouter) routeSingle(ctx *RouteContext, single []string, broadcast []string) (*RouteContext, error) {
	ds := s.rule.DefaultDataSource()
	if ds == "" {
		return nil, errors.Wrapf(ErrTableRuleNotFound, "table '%s' is not configured and there is no default data source", single[0])
	}
	if ctx == nil {
		return newRouteContext(newRouteUnit(ds, append(unchanged(single), unchanged(broadcast)...)...)), nil
	}
	for _, u := range ctx.Units {
		if u.DataSource.ActualName != ds {
			return nil, errors.Wrapf(ErrSingleTableAcrossDataSources, "table '%s' lives on '%s' but the statement is routed to '%s'", single[0], ds, u.DataSource.ActualName)
		}
	}
	return attach(ctx, single...), nil
}

func unchanged(tables []string) []RouteMapper {
	mappers := make([]RouteMapper, len(tables))
	for i, t := range tables {
		mappers[i] = RouteMapper{LogicName: t, ActualName: t}
	}
	return mappers
}

func attach(ctx *RouteContext, tables ...string) *RouteContext {
	if len(tables) == 0 {
		return ctx
	}
	units := make([]*RouteUnit, len(ctx.Units))
	for i, u := range ctx.Units {
		units[i] = u.withTables(unchanged(tables)...)
	}
	return newRouteContext(units...)
}

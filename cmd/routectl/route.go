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

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/endink/go-sharding-router/core"
	"github.com/endink/go-sharding-router/hint"
	"github.com/endink/go-sharding-router/routing"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var routeFlags struct {
	tables     []string
	nested     []string
	values     []string
	ranges     []string
	hintDB     []string
	hintTable  []string
	hintDBOnly []string
}

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Route a statement described by its tables and sharding conditions",
	Example: `  routectl route -c sharding.yaml --table t_order --value user_id=1 --range order_id=10..20
  routectl route -c sharding.yaml --table t_order --nested t_order_item --value t_order_item.order_id=3
  routectl route -c sharding.yaml --table t_order --hint-db t_order=1 --hint-table t_order=0`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadManager()
		if err != nil {
			return err
		}
		stmt, err := buildStatement(routeFlags.tables, routeFlags.nested, routeFlags.values, routeFlags.ranges)
		if err != nil {
			return err
		}
		hints, err := buildHints(routeFlags.hintDB, routeFlags.hintTable, routeFlags.hintDBOnly)
		if err != nil {
			return err
		}
		defer hints.Clear()

		ctx, err := routing.NewRouter(m.Holder()).Route(stmt, hints)
		if err != nil {
			return err
		}
		printRoute(cmd.OutOrStdout(), ctx)
		return nil
	},
}

func init() {
	f := routeCmd.Flags()
	f.StringArrayVarP(&routeFlags.tables, "table", "t", nil, "logic table of the outer query, repeatable")
	f.StringArrayVar(&routeFlags.nested, "nested", nil, "logic table of a subquery, repeatable")
	f.StringArrayVar(&routeFlags.values, "value", nil, "precise condition '[table.]column=value', repeatable")
	f.StringArrayVar(&routeFlags.ranges, "range", nil, "range condition '[table.]column=lower..upper', either end may be empty, repeatable")
	f.StringArrayVar(&routeFlags.hintDB, "hint-db", nil, "forced database value 'table=value', repeatable")
	f.StringArrayVar(&routeFlags.hintTable, "hint-table", nil, "forced table value 'table=value', repeatable")
	f.StringArrayVar(&routeFlags.hintDBOnly, "hint-db-only", nil, "forced database value for every table, table sharding is skipped")
	_ = routeCmd.MarkFlagRequired("table")
}

func printRoute(w io.Writer, ctx *routing.RouteContext) {
	if ctx.IsEmpty() {
		_, _ = fmt.Fprintln(w, "no data node matches the statement")
		return
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Data Source", "Logic Table", "Actual Table"})
	for i, u := range ctx.Units {
		for _, t := range u.Tables {
			table.Append([]string{fmt.Sprint(i + 1), u.DataSource.ActualName, t.LogicName, t.ActualName})
		}
	}
	table.SetAutoMergeCellsByColumnIndex([]int{0, 1})
	table.SetRowLine(true)
	table.Render()
}

// condition is '[table.]column=text', an empty table applies to every table of the statement.
type condition struct {
	table  string
	column string
	text   string
}

// splitAssignment splits 'name=text', the name is trimmed and lower-cased.
func splitAssignment(expr string) (string, string, error) {
	pos := strings.Index(expr, "=")
	if pos <= 0 || core.TrimAndLower(expr[:pos]) == "" {
		return "", "", fmt.Errorf("invalid assignment '%s', format must be 'name=value'", expr)
	}
	return core.TrimAndLower(expr[:pos]), strings.TrimSpace(expr[pos+1:]), nil
}

func parseCondition(expr string) (condition, error) {
	name, text, err := splitAssignment(expr)
	if err != nil {
		return condition{}, err
	}
	c := condition{text: text}
	if dot := strings.LastIndex(name, "."); dot >= 0 {
		c.table, c.column = name[:dot], name[dot+1:]
	} else {
		c.column = name
	}
	if c.column == "" {
		return condition{}, fmt.Errorf("invalid condition '%s', column is missing", expr)
	}
	return c, nil
}

func (c condition) appliesTo(table string) bool {
	return c.table == "" || c.table == table
}

func parseValue(text string) interface{} {
	if v, err := strconv.ParseInt(text, 10, 64); err == nil {
		return v
	}
	return text
}

func parseRange(text string) (core.Range, error) {
	parts := strings.SplitN(text, "..", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid range '%s', format must be 'lower..upper'", text)
	}
	lower, upper := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	switch {
	case lower == "" && upper == "":
		return nil, fmt.Errorf("invalid range '%s', at least one end is required", text)
	case lower == "":
		return core.NewAtMostRange(parseValue(upper))
	case upper == "":
		return core.NewAtLeastRange(parseValue(lower))
	}
	return core.NewRange(parseValue(lower), parseValue(upper))
}

func buildStatement(tables []string, nested []string, values []string, ranges []string) (*routing.Statement, error) {
	var scalarConditions, rangeConditions []condition
	for _, v := range values {
		c, err := parseCondition(v)
		if err != nil {
			return nil, err
		}
		scalarConditions = append(scalarConditions, c)
	}
	for _, v := range ranges {
		c, err := parseCondition(v)
		if err != nil {
			return nil, err
		}
		rangeConditions = append(rangeConditions, c)
	}

	stmt := routing.NewStatement()
	add := func(name string, scope int) error {
		table := core.TrimAndLower(name)
		b := core.NewShardingValuesBuilder(table)
		for _, c := range scalarConditions {
			if c.appliesTo(table) {
				b.AddValue(c.column, parseValue(c.text))
			}
		}
		for _, c := range rangeConditions {
			if c.appliesTo(table) {
				r, err := parseRange(c.text)
				if err != nil {
					return err
				}
				if err = b.AddRange(c.column, r); err != nil {
					return err
				}
			}
		}
		stmt.Nested(table, scope, b.Build())
		return nil
	}
	for _, t := range core.SplitAndTrim(strings.Join(tables, ",")) {
		if err := add(t, 0); err != nil {
			return nil, err
		}
	}
	for i, t := range core.SplitAndTrim(strings.Join(nested, ",")) {
		if err := add(t, i+1); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

func buildHints(database []string, table []string, databaseOnly []string) (*hint.Manager, error) {
	hints := hint.NewManager()
	for _, v := range database {
		name, text, err := splitAssignment(v)
		if err != nil {
			return nil, err
		}
		hints.AddDatabaseShardingValue(name, parseValue(text))
	}
	for _, v := range table {
		name, text, err := splitAssignment(v)
		if err != nil {
			return nil, err
		}
		hints.AddTableShardingValue(name, parseValue(text))
	}
	if len(databaseOnly) > 0 {
		values := make([]interface{}, len(databaseOnly))
		for i, v := range databaseOnly {
			values[i] = parseValue(v)
		}
		hints.SetDatabaseShardingValue(values...)
	}
	return hints, nil
}

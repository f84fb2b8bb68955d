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
	"strings"

	"github.com/endink/go-sharding-router/rule"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a sharding configuration and print its tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadManager()
		if err != nil {
			errs := multierr.Errors(err)
			for _, e := range errs {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "-", e)
			}
			return fmt.Errorf("%d problem(s) found in sharding configuration", len(errs))
		}
		printRule(cmd.OutOrStdout(), m.Rule())
		return nil
	},
}

func printRule(w io.Writer, r *rule.ShardingRule) {
	_, _ = fmt.Fprintf(w, "data sources: %s, default: %s\n", strings.Join(r.DataSourceNames(), ", "), r.DefaultDataSource())

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Logic Table", "Data Nodes", "Database Strategy", "Table Strategy", "Binding"})
	for _, t := range r.TableRules() {
		binding := ""
		if b, ok := r.BindingTableRule(t.LogicTable); ok {
			binding = strings.Join(b.LogicTables(), ", ")
		}
		table.Append([]string{
			t.LogicTable,
			fmt.Sprint(len(t.DataNodes)),
			r.DatabaseStrategy(t).String(),
			r.TableStrategy(t).String(),
			binding,
		})
	}
	for _, name := range r.BroadcastTables() {
		table.Append([]string{name, "broadcast", "", "", ""})
	}
	table.Render()
}

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
	"sort"
	"strings"

	"github.com/endink/go-sharding-router/algorithm"
	"github.com/endink/go-sharding-router/core"
	"github.com/endink/go-sharding-router/logging"
	"github.com/endink/go-sharding-router/strategy"
	"github.com/pkg/errors"
	"github.com/scylladb/go-set/strset"
	"go.uber.org/multierr"
)

var logger = logging.GetLogger("rule")

type builder struct {
	cfg      *Configuration
	registry algorithm.Registry
	rule     *ShardingRule
	dsSet    *strset.Set
	err      error
}

// Build validates the configuration and creates the sharding rule, every problem found is reported
// as a *core.ConfigurationError combined with multierr.
func Build(cfg *Configuration, registry algorithm.Registry) (*ShardingRule, error) {
	if cfg == nil {
		return nil, core.NewConfigurationError("", "configuration is missing")
	}
	if registry == nil {
		registry = algorithm.DefaultRegistry()
	}
	b := &builder{
		cfg:      cfg,
		registry: registry,
		dsSet:    strset.New(),
		rule: &ShardingRule{
			tableRules:      make(map[string]*TableRule),
			bindingIndex:    make(map[string]*BindingTableRule),
			broadcastTables: strset.New(),
			algorithms:      make(map[string]algorithm.ShardingAlgorithm),
		},
	}

	b.buildDataSources()
	b.buildAlgorithms()
	b.rule.DefaultDatabaseStrategy = b.buildStrategy("default database strategy", cfg.Rule.DefaultDatabaseStrategy)
	b.rule.DefaultTableStrategy = b.buildStrategy("default table strategy", cfg.Rule.DefaultTableStrategy)
	b.buildTables()
	b.buildAutoTables()
	b.buildBindingTables()
	b.buildBroadcastTables()

	if b.err != nil {
		return nil, b.err
	}
	sort.Strings(b.rule.tableNames)
	logger.Infof("sharding rule loaded, data sources: %v, tables: %v, binding groups: %d, broadcast tables: %v",
		b.rule.dataSources, b.rule.tableNames, len(b.rule.bindingRules), b.rule.BroadcastTables())
	return b.rule, nil
}

func (b *builder) fail(cause error, subject string, format string, args ...interface{}) {
	if cause == nil {
		b.err = multierr.Append(b.err, core.NewConfigurationError(subject, format, args...))
	} else {
		b.err = multierr.Append(b.err, core.WrapConfigurationError(cause, subject, format, args...))
	}
}

func (b *builder) buildDataSources() {
	for _, expr := range core.DistinctSliceAndTrim(b.cfg.DataSources) {
		names, err := ParseNames(expr)
		if err != nil {
			b.fail(err, "data sources", "invalid data source '%s'", expr)
			continue
		}
		for _, n := range names {
			if !b.dsSet.Has(n) {
				b.dsSet.Add(n)
				b.rule.dataSources = append(b.rule.dataSources, n)
			}
		}
	}
	if len(b.rule.dataSources) == 0 {
		b.fail(nil, "data sources", "at least one data source is required")
	}
	if ds := core.TrimAndLower(b.cfg.DefaultDataSource); ds != "" {
		if !b.dsSet.Has(ds) {
			b.fail(nil, "data sources", "default data source '%s' is not configured", ds)
		}
		b.rule.defaultDataSource = ds
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (b *builder) buildAlgorithms() {
	for _, name := range sortedKeys(b.cfg.Rule.ShardingAlgorithms) {
		subject := fmt.Sprint("algorithm ", name)
		ac := b.cfg.Rule.ShardingAlgorithms[name]
		if ac == nil || strings.TrimSpace(ac.Type) == "" {
			b.fail(nil, subject, "algorithm type is required")
			continue
		}
		props, err := core.NewPropertiesFromMap(ac.Props)
		if err != nil {
			b.fail(err, subject, "invalid props")
			continue
		}
		a, err := b.registry.Create(ac.Type, props)
		if err != nil {
			b.fail(err, subject, "can not create algorithm")
			continue
		}
		b.rule.algorithms[name] = a
	}
}

// buildStrategy returns nil for a missing configuration so the defaults apply.
func (b *builder) buildStrategy(subject string, sc *StrategyConfiguration) *strategy.Strategy {
	if sc == nil {
		return nil
	}
	set := 0
	for _, isSet := range []bool{sc.None != nil, sc.Hint != nil, sc.Standard != nil, sc.Complex != nil} {
		if isSet {
			set++
		}
	}
	if set > 1 {
		b.fail(nil, subject, "only one of 'none', 'hint', 'standard' and 'complex' can be configured")
		return nil
	}

	var tp strategy.Type
	var columns []string
	var algorithmName string
	switch {
	case sc.Hint != nil:
		tp, algorithmName = strategy.Hint, sc.Hint.AlgorithmName
	case sc.Standard != nil:
		tp, algorithmName = strategy.Standard, sc.Standard.AlgorithmName
		columns = core.SplitAndTrim(sc.Standard.ShardingColumn)
	case sc.Complex != nil:
		tp, algorithmName = strategy.Complex, sc.Complex.AlgorithmName
		columns = core.SplitAndTrim(sc.Complex.ShardingColumns)
	default:
		return strategy.NoneStrategy
	}

	a, ok := b.rule.algorithms[algorithmName]
	if !ok {
		if _, configured := b.cfg.Rule.ShardingAlgorithms[algorithmName]; !configured {
			b.fail(nil, subject, "sharding algorithm '%s' is not configured", algorithmName)
		}
		return nil
	}
	s, err := strategy.New(tp, columns, algorithmName, a)
	if err != nil {
		b.fail(err, subject, "invalid %s strategy", tp)
		return nil
	}
	return s
}

func (b *builder) checkNodes(subject string, nodes []DataNode) bool {
	valid := true
	for _, n := range nodes {
		if !b.dsSet.Has(n.DataSource) {
			b.fail(nil, subject, "data source '%s' of data node '%s' is not configured", n.DataSource, n)
			valid = false
		}
	}
	return valid
}

func (b *builder) addTableRule(subject string, t *TableRule) {
	if _, exists := b.rule.tableRules[t.LogicTable]; exists {
		b.fail(nil, subject, "table is configured more than once")
		return
	}
	b.rule.tableRules[t.LogicTable] = t
	b.rule.tableNames = append(b.rule.tableNames, t.LogicTable)
}

func (b *builder) buildTables() {
	for _, name := range sortedKeys(b.cfg.Rule.Tables) {
		logicTable := core.TrimAndLower(name)
		subject := fmt.Sprint("table ", logicTable)
		tc := b.cfg.Rule.Tables[name]
		if tc == nil {
			tc = &TableConfiguration{}
		}

		var nodes []DataNode
		if expr := tc.ActualDataNodes; strings.TrimSpace(expr) != "" {
			var err error
			if nodes, err = ParseDataNodes(expr); err != nil {
				b.fail(err, subject, "malformed actual data nodes '%s'", expr)
				continue
			}
		} else {
			for _, ds := range b.rule.dataSources {
				nodes = append(nodes, DataNode{DataSource: ds, Table: logicTable})
			}
		}
		if !b.checkNodes(subject, nodes) {
			continue
		}

		dbStrategy := b.buildStrategy(subject+" database strategy", tc.DatabaseStrategy)
		tableStrategy := b.buildStrategy(subject+" table strategy", tc.TableStrategy)

		t, err := NewTableRule(logicTable, nodes, dbStrategy, tableStrategy, tc.Columns)
		if err != nil {
			b.fail(err, subject, "invalid table rule")
			continue
		}
		b.addTableRule(subject, t)
	}
}

func (b *builder) buildAutoTables() {
	for _, name := range sortedKeys(b.cfg.Rule.AutoTables) {
		logicTable := core.TrimAndLower(name)
		subject := fmt.Sprint("auto table ", logicTable)
		ac := b.cfg.Rule.AutoTables[name]
		if ac == nil || ac.ShardingStrategy == nil {
			b.fail(nil, subject, "sharding strategy is required")
			continue
		}

		dataSources := b.rule.dataSources
		if expr := ac.ActualDataSources; strings.TrimSpace(expr) != "" {
			var err error
			if dataSources, err = ParseNames(expr); err != nil {
				b.fail(err, subject, "malformed actual data sources '%s'", expr)
				continue
			}
		}
		if len(dataSources) == 0 {
			continue
		}

		s := b.buildStrategy(subject+" sharding strategy", ac.ShardingStrategy)
		if s == nil {
			continue
		}
		auto, ok := s.Algorithm.(algorithm.AutoShardingAlgorithm)
		if !ok {
			b.fail(nil, subject, "algorithm '%s' can not size auto tables", s.AlgorithmName)
			continue
		}

		amount := auto.AutoTablesAmount()
		nodes := make([]DataNode, amount)
		for i := 0; i < amount; i++ {
			nodes[i] = DataNode{
				DataSource: dataSources[i%len(dataSources)],
				Table:      fmt.Sprintf("%s_%d", logicTable, i),
			}
		}
		if !b.checkNodes(subject, nodes) {
			continue
		}
		t, err := NewTableRule(logicTable, nodes, strategy.NoneStrategy, s, ac.Columns)
		if err != nil {
			b.fail(err, subject, "invalid table rule")
			continue
		}
		t.AutoTable = true
		b.addTableRule(subject, t)
	}
}

func (b *builder) buildBindingTables() {
	for _, group := range b.cfg.Rule.BindingTables {
		names := core.TrimAndLowerArray(core.SplitAndTrim(group))
		subject := fmt.Sprint("binding tables ", names)
		var members []*TableRule
		valid := true
		for _, n := range names {
			t, ok := b.rule.tableRules[n]
			if !ok {
				b.fail(nil, subject, "table '%s' is not a sharding table", n)
				valid = false
				continue
			}
			if _, bound := b.rule.bindingIndex[n]; bound {
				b.fail(nil, subject, "table '%s' belongs to more than one binding group", n)
				valid = false
				continue
			}
			members = append(members, t)
		}
		if !valid {
			continue
		}
		bindingRule, err := NewBindingTableRule(members...)
		if err != nil {
			b.fail(err, subject, "invalid binding group")
			continue
		}
		b.rule.bindingRules = append(b.rule.bindingRules, bindingRule)
		for _, n := range names {
			b.rule.bindingIndex[n] = bindingRule
		}
	}
}

func (b *builder) buildBroadcastTables() {
	for _, n := range core.TrimAndLowerArray(core.DistinctSliceAndTrim(b.cfg.Rule.BroadcastTables)) {
		if _, ok := b.rule.tableRules[n]; ok {
			b.fail(errors.New("a table is either sharded or broadcast"), fmt.Sprint("broadcast table ", n), "table is also a sharding table")
			continue
		}
		b.rule.broadcastTables.Add(n)
	}
}

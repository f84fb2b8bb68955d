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

// Configuration is the yaml shape of a sharding rule.
type Configuration struct {
	DataSources       []string          `yaml:"data-sources"`
	DefaultDataSource string            `yaml:"default-data-source"`
	Rule              RuleConfiguration `yaml:"rule"`
}

type RuleConfiguration struct {
	Tables                  map[string]*TableConfiguration     `yaml:"tables"`
	AutoTables              map[string]*AutoTableConfiguration `yaml:"auto-tables"`
	BindingTables           []string                           `yaml:"binding-tables"`
	BroadcastTables         []string                           `yaml:"broadcast-tables"`
	DefaultDatabaseStrategy *StrategyConfiguration             `yaml:"default-database-strategy"`
	DefaultTableStrategy    *StrategyConfiguration             `yaml:"default-table-strategy"`
	ShardingAlgorithms      map[string]*AlgorithmConfiguration `yaml:"sharding-algorithms"`
}

type TableConfiguration struct {
	// ActualDataNodes is an inline expression, all data sources hold the logic table when it is empty.
	ActualDataNodes  string                 `yaml:"actual-data-nodes"`
	Columns          []string               `yaml:"columns"`
	DatabaseStrategy *StrategyConfiguration `yaml:"database-strategy"`
	TableStrategy    *StrategyConfiguration `yaml:"table-strategy"`
}

type AutoTableConfiguration struct {
	ActualDataSources string                 `yaml:"actual-data-sources"`
	Columns           []string               `yaml:"columns"`
	ShardingStrategy  *StrategyConfiguration `yaml:"sharding-strategy"`
}

// StrategyConfiguration sets exactly one of its members.
type StrategyConfiguration struct {
	None     *NoneStrategyConfiguration     `yaml:"none"`
	Hint     *HintStrategyConfiguration     `yaml:"hint"`
	Standard *StandardStrategyConfiguration `yaml:"standard"`
	Complex  *ComplexStrategyConfiguration  `yaml:"complex"`
}

type NoneStrategyConfiguration struct {
}

type HintStrategyConfiguration struct {
	AlgorithmName string `yaml:"sharding-algorithm-name"`
}

type StandardStrategyConfiguration struct {
	ShardingColumn string `yaml:"sharding-column"`
	AlgorithmName  string `yaml:"sharding-algorithm-name"`
}

type ComplexStrategyConfiguration struct {
	// ShardingColumns is a comma separated list.
	ShardingColumns string `yaml:"sharding-columns"`
	AlgorithmName   string `yaml:"sharding-algorithm-name"`
}

type AlgorithmConfiguration struct {
	Type  string                 `yaml:"type"`
	Props map[string]interface{} `yaml:"props"`
}

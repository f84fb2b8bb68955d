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

package config

import (
	"sync"

	"github.com/endink/go-sharding-router/algorithm"
	"github.com/endink/go-sharding-router/core"
	"github.com/endink/go-sharding-router/rule"
	"github.com/endink/go-sharding-router/telemetry"
	"github.com/pkg/errors"
	"go.uber.org/config"
)

// ReloadListener is called after every reload attempt, err is nil when the new rule is serving.
type ReloadListener func(r *rule.ShardingRule, err error)

// Manager owns the sharding rule loaded from a source and replaces it copy-on-write on reload.
type Manager struct {
	source   Source
	registry algorithm.Registry
	holder   *rule.Holder

	mu        sync.Mutex
	cfg       *rule.Configuration
	listeners []ReloadListener
}

// NewManager loads the first configuration file found in DefaultConfigFileLocations.
func NewManager() (*Manager, error) {
	files := DefaultConfigFileLocations()

	var sb = core.NewStringBuilder()
	sb.WriteLine()
	sb.WriteLine("Search configuration locations:")
	found := ""
	for _, f := range files {
		if found == "" && core.FileExists(f) {
			found = f
			sb.WriteLine("[Found]:", f)
		} else {
			sb.WriteLine("[Not Found]:", f)
		}
	}
	logger.Info(sb.String())

	if found == "" {
		return nil, core.NewConfigurationError("", "no sharding configuration file found")
	}
	return NewManagerFromFile(found)
}

func NewManagerFromFile(path string) (*Manager, error) {
	return NewManagerFromSource(NewFileSource(path), nil)
}

func NewManagerFromString(ymlContent string) (*Manager, error) {
	return NewManagerFromSource(NewStaticSource(ymlContent), nil)
}

func NewManagerFromYAML(yaml *config.YAML) (*Manager, error) {
	if yaml == nil {
		return nil, core.NewConfigurationError("", "yaml configuration is missing")
	}
	return NewManagerFromSource(&yamlSource{yaml: yaml}, nil)
}

// NewManagerFromSource loads the rule once, a nil registry means the default algorithm registry.
func NewManagerFromSource(source Source, registry algorithm.Registry) (*Manager, error) {
	if registry == nil {
		registry = algorithm.DefaultRegistry()
	}
	m := &Manager{
		source:   source,
		registry: registry,
	}
	cfg, r, err := m.load()
	if err != nil {
		telemetry.RecordReload(telemetry.ReloadFailure)
		return nil, err
	}
	m.cfg = cfg
	m.holder = rule.NewHolder(r)
	telemetry.RecordReload(telemetry.ReloadSuccess)
	recordRule(r)
	return m, nil
}

// Parse decodes the yaml into the configuration shape without building a rule.
func Parse(yaml *config.YAML) (*rule.Configuration, error) {
	cfg := &rule.Configuration{}
	if err := yaml.Get(config.Root).Populate(cfg); err != nil {
		return nil, core.WrapConfigurationError(err, "", "malformed sharding configuration")
	}
	return cfg, nil
}

func (m *Manager) load() (*rule.Configuration, *rule.ShardingRule, error) {
	yaml, err := m.source.Load()
	if err != nil {
		return nil, nil, errors.Wrapf(err, "load configuration from %s source fault", m.source.GetName())
	}
	cfg, err := Parse(yaml)
	if err != nil {
		return nil, nil, err
	}
	r, err := rule.Build(cfg, m.registry)
	if err != nil {
		return nil, nil, err
	}
	return cfg, r, nil
}

func (m *Manager) Source() Source {
	return m.source
}

// Rule returns the rule serving now.
func (m *Manager) Rule() *rule.ShardingRule {
	return m.holder.Load()
}

func (m *Manager) Holder() *rule.Holder {
	return m.holder
}

func (m *Manager) Configuration() *rule.Configuration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cfg
}

func (m *Manager) OnReload(listener ReloadListener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, listener)
}

// Reload reads the source again and swaps the rule, the previous rule keeps serving when anything is wrong.
func (m *Manager) Reload() error {
	m.mu.Lock()
	cfg, r, err := m.load()
	if err == nil {
		m.cfg = cfg
		m.holder.Swap(r)
	}
	listeners := make([]ReloadListener, len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	if err != nil {
		telemetry.RecordReload(telemetry.ReloadFailure)
		logger.Errorf("reload sharding rule from %s source fault, the previous rule is kept: %v", m.source.GetName(), err)
	} else {
		telemetry.RecordReload(telemetry.ReloadSuccess)
		recordRule(r)
		logger.Infof("sharding rule reloaded from %s source", m.source.GetName())
	}
	for _, l := range listeners {
		l(r, err)
	}
	return err
}

func recordRule(r *rule.ShardingRule) {
	telemetry.RecordRuleTables(len(r.TableRules()), len(r.BroadcastTables()), len(r.BindingTableRules()))
}

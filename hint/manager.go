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

// Package hint holds forced sharding values of a session, they override the conditions of a statement.
package hint

import (
	"context"
	"sync"

	"github.com/endink/go-sharding-router/core"
	"github.com/endink/go-sharding-router/core/collection"
)

// Manager is owned by one session or statement and must be cleared by its owner, a nil manager holds no values.
type Manager struct {
	mu             sync.RWMutex
	databaseValues map[string]*collection.HashSet
	tableValues    map[string]*collection.HashSet
	databaseOnly   *collection.HashSet
}

func NewManager() *Manager {
	return &Manager{
		databaseValues: make(map[string]*collection.HashSet),
		tableValues:    make(map[string]*collection.HashSet),
	}
}

func addValues(m map[string]*collection.HashSet, table string, values []interface{}) {
	key := core.TrimAndLower(table)
	set, ok := m[key]
	if !ok {
		set = collection.NewHashSet()
		m[key] = set
	}
	set.Add(values...)
}

// AddDatabaseShardingValue accumulates forced database values of a table and leaves database-only mode.
func (m *Manager) AddDatabaseShardingValue(table string, values ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.databaseOnly = nil
	addValues(m.databaseValues, table, values)
}

// AddTableShardingValue accumulates forced table values of a table and leaves database-only mode.
func (m *Manager) AddTableShardingValue(table string, values ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.databaseOnly = nil
	addValues(m.tableValues, table, values)
}

// SetDatabaseShardingValue replaces every value with database values applied to all tables,
// table level sharding is skipped while the mode is on.
func (m *Manager) SetDatabaseShardingValue(values ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.databaseValues = make(map[string]*collection.HashSet)
	m.tableValues = make(map[string]*collection.HashSet)
	m.databaseOnly = collection.NewHashSet(values...)
}

func (m *Manager) IsDatabaseShardingOnly() bool {
	if m == nil {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.databaseOnly != nil
}

func (m *Manager) DatabaseShardingValues(table string) []interface{} {
	if m == nil {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.databaseOnly != nil {
		return m.databaseOnly.Values()
	}
	if set, ok := m.databaseValues[core.TrimAndLower(table)]; ok {
		return set.Values()
	}
	return nil
}

func (m *Manager) TableShardingValues(table string) []interface{} {
	if m == nil {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if set, ok := m.tableValues[core.TrimAndLower(table)]; ok {
		return set.Values()
	}
	return nil
}

// HasValues reports whether any level of the table is forced.
func (m *Manager) HasValues(table string) bool {
	return len(m.DatabaseShardingValues(table)) > 0 || len(m.TableShardingValues(table)) > 0
}

func (m *Manager) IsEmpty() bool {
	if m == nil {
		return true
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.databaseOnly == nil && len(m.databaseValues) == 0 && len(m.tableValues) == 0
}

func (m *Manager) Clear() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.databaseValues = make(map[string]*collection.HashSet)
	m.tableValues = make(map[string]*collection.HashSet)
	m.databaseOnly = nil
}

// Snapshot copies the values so one statement routes against a stable view.
func (m *Manager) Snapshot() *Manager {
	s := NewManager()
	if m == nil {
		return s
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for k, v := range m.databaseValues {
		s.databaseValues[k] = collection.NewHashSet(v.Values()...)
	}
	for k, v := range m.tableValues {
		s.tableValues[k] = collection.NewHashSet(v.Values()...)
	}
	if m.databaseOnly != nil {
		s.databaseOnly = collection.NewHashSet(m.databaseOnly.Values()...)
	}
	return s
}

type contextKey struct{}

func NewContext(ctx context.Context, m *Manager) context.Context {
	return context.WithValue(ctx, contextKey{}, m)
}

func FromContext(ctx context.Context) (*Manager, bool) {
	if ctx == nil {
		return nil, false
	}
	m, ok := ctx.Value(contextKey{}).(*Manager)
	return m, ok && m != nil
}

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

package hint

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddValuesAccumulate(t *testing.T) {
	m := NewManager()
	m.AddDatabaseShardingValue("t_order", 1)
	m.AddDatabaseShardingValue("T_ORDER", 2, 1)
	m.AddTableShardingValue("t_order", 3)

	assert.Equal(t, []interface{}{1, 2}, m.DatabaseShardingValues("t_order"))
	assert.Equal(t, []interface{}{3}, m.TableShardingValues("t_order"))
	assert.True(t, m.HasValues("t_order"))
	assert.False(t, m.HasValues("t_order_item"))
	assert.Nil(t, m.TableShardingValues("t_order_item"))
	assert.False(t, m.IsDatabaseShardingOnly())
}

func TestDatabaseShardingOnly(t *testing.T) {
	m := NewManager()
	m.AddTableShardingValue("t_order", 3)
	m.SetDatabaseShardingValue(1)

	assert.True(t, m.IsDatabaseShardingOnly())
	assert.Equal(t, []interface{}{1}, m.DatabaseShardingValues("t_order"))
	assert.Equal(t, []interface{}{1}, m.DatabaseShardingValues("t_user"))
	assert.Nil(t, m.TableShardingValues("t_order"))

	m.AddDatabaseShardingValue("t_order", 0)
	assert.False(t, m.IsDatabaseShardingOnly())
	assert.Equal(t, []interface{}{0}, m.DatabaseShardingValues("t_order"))
	assert.Nil(t, m.DatabaseShardingValues("t_user"))
}

func TestClear(t *testing.T) {
	m := NewManager()
	m.AddDatabaseShardingValue("t_order", 1)
	m.AddTableShardingValue("t_order", 1)
	m.SetDatabaseShardingValue(1)
	m.Clear()

	assert.True(t, m.IsEmpty())
	assert.False(t, m.IsDatabaseShardingOnly())
	assert.Nil(t, m.DatabaseShardingValues("t_order"))

	m.Clear()
	assert.True(t, m.IsEmpty())
}

func TestNilManager(t *testing.T) {
	var m *Manager
	assert.True(t, m.IsEmpty())
	assert.False(t, m.HasValues("t_order"))
	assert.False(t, m.IsDatabaseShardingOnly())
	m.Clear()
	assert.True(t, m.Snapshot().IsEmpty())
}

func TestSnapshotIsolated(t *testing.T) {
	m := NewManager()
	m.AddTableShardingValue("t_order", 1)
	s := m.Snapshot()
	m.AddTableShardingValue("t_order", 2)
	m.Clear()

	assert.Equal(t, []interface{}{1}, s.TableShardingValues("t_order"))
}

func TestManagersAreIndependent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			m := NewManager()
			m.AddDatabaseShardingValue("t_order", v)
			assert.Equal(t, []interface{}{v}, m.DatabaseShardingValues("t_order"))
			m.Clear()
		}(i)
	}
	wg.Wait()
}

func TestContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	m := NewManager()
	ctx := NewContext(context.Background(), m)
	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, m, got)

	_, ok = FromContext(NewContext(context.Background(), nil))
	assert.False(t, ok)
}

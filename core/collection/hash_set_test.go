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

package collection

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestHashSetKeepsInsertionOrder(t *testing.T) {
	set := NewHashSet(3, 1)
	set.Add(2, 3, 1, 5)

	assert.Equal(t, []interface{}{3, 1, 2, 5}, set.Values())
	assert.Equal(t, 4, set.Size())
	assert.True(t, set.Contains(1, 5))
	assert.False(t, set.Contains(1, 9))

	set.Remove(1)
	assert.Equal(t, []interface{}{3, 2, 5}, set.Values())

	set.Clear()
	assert.True(t, set.Empty())
}

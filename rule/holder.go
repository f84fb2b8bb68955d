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

import "go.uber.org/atomic"

// Holder publishes the current sharding rule, a reload swaps the whole rule so routing keeps a consistent snapshot.
type Holder struct {
	current *atomic.Pointer[ShardingRule]
}

func NewHolder(r *ShardingRule) *Holder {
	return &Holder{current: atomic.NewPointer(r)}
}

func (h *Holder) Load() *ShardingRule {
	return h.current.Load()
}

// Swap stores the new rule and returns the previous one.
func (h *Holder) Swap(r *ShardingRule) *ShardingRule {
	return h.current.Swap(r)
}

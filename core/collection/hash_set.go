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
	"fmt"
	"strings"

	"github.com/emirpasic/gods/sets/linkedhashset"
)

// HashSet holds comparable elements and remembers insertion order.
type HashSet struct {
	items *linkedhashset.Set
}

// NewHashSet instantiates a new set and adds the passed values, if any, to the set
func NewHashSet(values ...interface{}) *HashSet {
	return &HashSet{items: linkedhashset.New(values...)}
}

// Add adds the items (one or more) to the set.
func (set *HashSet) Add(items ...interface{}) {
	set.items.Add(items...)
}

// Remove removes the items (one or more) from the set.
func (set *HashSet) Remove(items ...interface{}) {
	set.items.Remove(items...)
}

// Contains check if items (one or more) are present in the set.
// Returns true if no arguments are passed at all, i.e. set is always superset of empty set.
func (set *HashSet) Contains(items ...interface{}) bool {
	return set.items.Contains(items...)
}

func (set *HashSet) Empty() bool {
	return set.items.Empty()
}

func (set *HashSet) Size() int {
	return set.items.Size()
}

func (set *HashSet) Clear() {
	set.items.Clear()
}

// Values returns all items in insertion order.
func (set *HashSet) Values() []interface{} {
	return set.items.Values()
}

func (set *HashSet) String() string {
	items := make([]string, 0, set.Size())
	for _, k := range set.items.Values() {
		items = append(items, fmt.Sprintf("%v", k))
	}
	return "HashSet\n" + strings.Join(items, ", ")
}

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

package script

import "github.com/emirpasic/gods/sets/linkedhashset"

// outJoin is the ordered cartesian join of two string lists, the prefix varies slowest.
func outJoin(prefix []string, suffix []string) []string {
	bucket := linkedhashset.New()
	for _, p := range prefix {
		for _, v := range suffix {
			if name := p + v; name != "" {
				bucket.Add(name)
			}
		}
	}
	return toStrings(bucket)
}

func flatFill(prefix string, suffix ...string) []string {
	if prefix == "" {
		return suffix
	}
	bucket := linkedhashset.New()
	for _, v := range suffix {
		bucket.Add(prefix + v)
	}
	return toStrings(bucket)
}

func toStrings(set *linkedhashset.Set) []string {
	r := make([]string, 0, set.Size())
	for _, v := range set.Values() {
		r = append(r, v.(string))
	}
	return r
}

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

package algorithm

import (
	"strings"

	"github.com/scylladb/go-set/strset"
)

// HasSuffix reports whether target is named by suffix, 't_1' has suffix '1' but 't_11' has not.
func HasSuffix(target string, suffix string) bool {
	if target == suffix {
		return true
	}
	if suffix == "" || !strings.HasSuffix(target, suffix) {
		return false
	}
	prev := target[len(target)-len(suffix)-1]
	return !isDigit(prev) || !isDigit(suffix[0])
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// MatchSuffix returns the first target named by suffix.
func MatchSuffix(targets []string, suffix string) (string, bool) {
	for _, t := range targets {
		if HasSuffix(t, suffix) {
			return t, true
		}
	}
	return "", false
}

// MatchTarget prefers an exact name and falls back to suffix matching.
func MatchTarget(targets []string, name string) (string, bool) {
	for _, t := range targets {
		if t == name {
			return t, true
		}
	}
	return MatchSuffix(targets, name)
}

// pickTargets keeps the targets named by any of the suffixes, in target order.
func pickTargets(targets []string, suffixes *strset.Set) []string {
	result := make([]string, 0, suffixes.Size())
	for _, t := range targets {
		matched := false
		suffixes.Each(func(s string) bool {
			matched = HasSuffix(t, s)
			return !matched
		})
		if matched {
			result = append(result, t)
		}
	}
	return result
}

// pickNames keeps the targets matched by name, in target order.
func pickNames(targets []string, names []string) []string {
	set := strset.New()
	for _, n := range names {
		if t, ok := MatchTarget(targets, n); ok {
			set.Add(t)
		}
	}
	result := make([]string, 0, set.Size())
	for _, t := range targets {
		if set.Has(t) {
			result = append(result, t)
		}
	}
	return result
}

func allTargets(targets []string) []string {
	result := make([]string, len(targets))
	copy(result, targets)
	return result
}

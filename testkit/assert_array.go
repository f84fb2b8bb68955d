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

package testkit

import (
	"github.com/emirpasic/gods/utils"
	"github.com/endink/go-sharding-router/core"
	"github.com/stretchr/testify/assert"
)

func sortedCopy(values []string) []interface{} {
	r := make([]interface{}, len(values))
	for i, v := range values {
		r[i] = v
	}
	utils.Sort(r, utils.StringComparator)
	return r
}

func differentMessage(excepted []interface{}, actual []interface{}) string {
	sb := core.NewStringBuilder()
	sb.WriteLine("string arrays differ")
	for _, part := range []struct {
		title  string
		values []interface{}
	}{{"excepted: ", excepted}, {"actual:   ", actual}} {
		sb.Write(part.title)
		if len(part.values) == 0 {
			sb.WriteLine("<empty array>")
			continue
		}
		sb.WriteJoin(", ", part.values...)
		sb.WriteLine()
	}
	return sb.String()
}

// AssertStrArrayEquals asserts both arrays hold the same strings, order is ignored.
func AssertStrArrayEquals(t assert.TestingT, excepted []string, actual []string, msgAndArgs ...interface{}) bool {
	e, a := sortedCopy(excepted), sortedCopy(actual)
	if len(e) != len(a) {
		return assert.Fail(t, differentMessage(e, a), msgAndArgs...)
	}
	for i := range e {
		if e[i] != a[i] {
			return assert.Fail(t, differentMessage(e, a), msgAndArgs...)
		}
	}
	return true
}

// AssertStrArrayOrdered asserts both arrays hold the same strings in the same order.
func AssertStrArrayOrdered(t assert.TestingT, excepted []string, actual []string, msgAndArgs ...interface{}) bool {
	if len(excepted) == 0 && len(actual) == 0 {
		return true
	}
	return assert.Equal(t, excepted, actual, msgAndArgs...)
}

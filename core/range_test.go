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

package core

import (
	"fmt"
	"github.com/stretchr/testify/assert"
	"testing"
)

func assertHasIntersection(t assert.TestingT, r1 Range, r2 Range, has bool) {
	i, err := r1.HasIntersection(r2)
	noErr := assert.Nil(t, err, fmt.Sprintf("can not intersect with %s and %s", r1, r2))
	if noErr {
		if has {
			assert.True(t, i, fmt.Sprintf("%s and %s should has intersection", r1, r2))
		} else {
			assert.False(t, i, fmt.Sprintf("%s and %s should has no intersection", r1, r2))
		}
	}
}

func testNewRangeWithValue(t *testing.T, min interface{}, max interface{}, hasError bool) {
	r, err := NewRange(min, max)

	if hasError {
		assert.Error(t, err)
		return
	}

	if ok := assert.Nil(t, err); !ok {
		return
	}
	assert.True(t, r.HasLower())
	assert.True(t, r.HasUpper())

	r, err = NewRange(nil, max)
	if ok := assert.Nil(t, err); !ok {
		return
	}
	assert.False(t, r.HasLower())
	assert.True(t, r.HasUpper())

	r, err = NewRange(min, nil)
	if ok := assert.Nil(t, err); !ok {
		return
	}
	assert.True(t, r.HasLower())
	assert.False(t, r.HasUpper())
}

func TestNewRange(t *testing.T) {
	testNewRangeWithValue(t, -100, 12323, false)
	testNewRangeWithValue(t, -3.333, 5.33333, false)
	testNewRangeWithValue(t, "a", "z", false)
	testNewRangeWithValue(t, 3, 3, false)
	testNewRangeWithValue(t, 100, 3, true)
	testNewRangeWithValue(t, 3.00001, 3, true)
	testNewRangeWithValue(t, "b", "a", true)
	testNewRangeWithValue(t, "a", "a", false)
	testNewRangeWithValue(t, "a", 3, true)
}

func TestNewRangeWithOpenBound(t *testing.T) {
	_, err := NewClosedOpenRange(3, 3)
	assert.Equal(t, ErrRangeInvalidBound, err)

	_, err = NewRangeWithBound(3, BoundOpen, 3, BoundClosed)
	assert.Equal(t, ErrRangeInvalidBound, err)

	r, err := NewClosedOpenRange(3, nil)
	assert.Nil(t, err)
	assert.False(t, r.HasUpper())
	assert.Equal(t, BoundClosed, r.LowerType())

	_, err = NewAtLeastRange([]int{1})
	assert.Equal(t, ErrRangeBoundTypeUnsupported, err)
}

func testContainsWithValue(t *testing.T, r Range, value interface{}, contains bool) {
	c, err := r.ContainsValue(value)
	assert.Nil(t, err)

	if contains {
		assert.True(t, c, fmt.Sprintf("%v should be in %s", value, r))
	} else {
		assert.False(t, c, fmt.Sprintf("%v should not in %s", value, r))
	}
}

func rangeMust(t *testing.T) func(r Range, err error) Range {
	return func(r Range, err error) Range {
		if err != nil {
			t.Fatalf("create range fault: %v", err)
		}
		return r
	}
}

func TestContainsValue(t *testing.T) {
	mustRange := rangeMust(t)
	r := mustRange(NewRange(-100, 100))
	testContainsWithValue(t, r, 99, true)
	testContainsWithValue(t, r, 100, true)
	testContainsWithValue(t, r, 101, false)
	testContainsWithValue(t, r, -101, false)

	r = mustRange(NewRange(3.3, 5.5))
	testContainsWithValue(t, r, 4.4, true)
	testContainsWithValue(t, r, 3.29, false)
	testContainsWithValue(t, r, 5.51, false)

	r = mustRange(NewRange("d", "h"))
	testContainsWithValue(t, r, "e", true)
	testContainsWithValue(t, r, "i", false)
	testContainsWithValue(t, r, "c", false)

	r = mustRange(NewClosedOpenRange(10, 20))
	testContainsWithValue(t, r, 10, true)
	testContainsWithValue(t, r, 19, true)
	testContainsWithValue(t, r, 20, false)

	r = mustRange(NewGreaterThanRange(10))
	testContainsWithValue(t, r, 10, false)
	testContainsWithValue(t, r, int64(11), true)

	r = mustRange(NewLessThanRange(10))
	testContainsWithValue(t, r, 10, false)
	testContainsWithValue(t, r, -1000, true)

	r = mustRange(NewAtMostRange(10))
	testContainsWithValue(t, r, 10, true)
}

func TestHasIntersection(t *testing.T) {
	var r1, r2 Range

	r1, _ = NewRange(100, 200)
	r2, _ = NewRange(20, 30)
	assertHasIntersection(t, r1, r2, false)

	r1, _ = NewRange(100, 200)
	r2, _ = NewRange(20, nil)
	assertHasIntersection(t, r1, r2, true)

	r1, _ = NewRange(nil, 200)
	r2, _ = NewRange(20, nil)
	assertHasIntersection(t, r1, r2, true)

	r1, _ = NewRange(nil, nil)
	r2, _ = NewRange(nil, nil)
	assertHasIntersection(t, r1, r2, true)

	r1, _ = NewRange(nil, 30)
	r2, _ = NewRange(50, nil)
	assertHasIntersection(t, r1, r2, false)

	r1, _ = NewRange(nil, 60)
	r2, _ = NewRange(50, nil)
	assertHasIntersection(t, r1, r2, true)

	r1, _ = NewClosedOpenRange(10, 20)
	r2, _ = NewClosedOpenRange(20, 30)
	assertHasIntersection(t, r1, r2, false)

	r1, _ = NewRange(10, 20)
	r2, _ = NewRange(20, 30)
	assertHasIntersection(t, r1, r2, true)
}

func TestIntRangeIntersect(t *testing.T) {
	var r1, r2 Range

	r1, _ = NewRange(100, 200)
	r2, _ = NewRange(20, 30)
	testIntersectWithValue(t, r1, r2, nil, nil)

	r1, _ = NewRange(100, 200)
	r2, _ = NewRange(20, 150)
	testIntersectWithValue(t, r1, r2, 100, 150)

	r1, _ = NewRange(nil, 1000)
	r2, _ = NewRange(101, nil)
	testIntersectWithValue(t, r1, r2, 101, 1000)

	r1, _ = NewRange(20, 30)
	r2, _ = NewRange(30, 40)
	testIntersectWithValue(t, r1, r2, 30, 30)

	r1, _ = NewRange(nil, nil)
	r2, _ = NewRange(30, 40)
	testIntersectWithValue(t, r1, r2, 30, 40)

	r1, _ = NewRange(nil, 50)
	r2, _ = NewRange(45, nil)
	testIntersectWithValue(t, r1, r2, 45, 50)
}

func TestFloatRangeIntersect(t *testing.T) {
	var r1, r2 Range

	r1, _ = NewRange(100.3, 200.4)
	r2, _ = NewRange(20.3, 150.8)
	testIntersectWithValue(t, r1, r2, 100.3, 150.8)

	r1, _ = NewRange(20.1, 30.2)
	r2, _ = NewRange(31.3, 40.4)
	testIntersectWithValue(t, r1, r2, nil, nil)
}

func TestIntersectKeepsTighterBound(t *testing.T) {
	r1, _ := NewRangeWithBound(10, BoundOpen, 20, BoundClosed)
	r2, _ := NewRangeWithBound(10, BoundClosed, 20, BoundOpen)

	r, err := r1.Intersect(r2)
	assert.Nil(t, err)
	if assert.NotNil(t, r) {
		assert.Equal(t, BoundOpen, r.LowerType())
		assert.Equal(t, BoundOpen, r.UpperType())
		assert.Equal(t, "(10..20)", r.String())
	}
}

func testIntersectWithValue(t *testing.T, r1 Range, r2 Range, resultMin, resultMax interface{}) {
	r, err := r1.Intersect(r2)
	assert.Nil(t, err)

	if resultMin == nil && resultMax == nil {
		assert.Nil(t, r, fmt.Sprintf("%s & %s result should be nil range", r1, r2))
		return
	}

	if !assert.NotNil(t, r, fmt.Sprintf("%s & %s result should not be nil range", r1, r2)) {
		return
	}
	assert.Equal(t, resultMin, r.LowerBound(), fmt.Sprintf("%s & %s lower bound", r1, r2))
	assert.Equal(t, resultMax, r.UpperBound(), fmt.Sprintf("%s & %s upper bound", r1, r2))
}

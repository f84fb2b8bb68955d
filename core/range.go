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
	"errors"
	"fmt"
	"github.com/endink/go-sharding-router/core/comparison"
)

type BoundType int

const (
	BoundUnbounded BoundType = iota
	BoundClosed
	BoundOpen
)

func (b BoundType) String() string {
	switch b {
	case BoundClosed:
		return "closed"
	case BoundOpen:
		return "open"
	}
	return "unbounded"
}

// Range is an interval over comparable values (numbers, strings, time.Time).
// A missing bound is unbounded; a present bound is closed or open.
type Range interface {
	fmt.Stringer
	LowerBound() interface{}
	UpperBound() interface{}
	HasLower() bool
	HasUpper() bool
	LowerType() BoundType
	UpperType() BoundType
	ContainsValue(value interface{}) (bool, error)
	// Intersect returns nil when the ranges have no common value.
	Intersect(value Range) (Range, error)
	HasIntersection(v Range) (bool, error)
}

var (
	ErrRangeBoundTypeNotSame     = errors.New("different types of boundary values cannot create range")
	ErrRangeInvalidBound         = errors.New("the lower bound of the range cannot be greater than the upper bound")
	ErrRangeBoundTypeUnsupported = errors.New("boundary value types for the range are not supported")
)

type defaultRange struct {
	lower     interface{}
	upper     interface{}
	lowerType BoundType
	upperType BoundType
}

// NewRange creates a closed range, nil means unbounded.
func NewRange(min interface{}, max interface{}) (Range, error) {
	return NewRangeWithBound(min, closedOrUnbounded(min), max, closedOrUnbounded(max))
}

// NewClosedOpenRange creates [min, max), the shape used for time buckets.
func NewClosedOpenRange(min interface{}, max interface{}) (Range, error) {
	upperType := BoundOpen
	if max == nil {
		upperType = BoundUnbounded
	}
	return NewRangeWithBound(min, closedOrUnbounded(min), max, upperType)
}

func NewAtLeastRange(min interface{}) (Range, error) {
	return NewRangeWithBound(min, BoundClosed, nil, BoundUnbounded)
}

func NewGreaterThanRange(min interface{}) (Range, error) {
	return NewRangeWithBound(min, BoundOpen, nil, BoundUnbounded)
}

func NewAtMostRange(max interface{}) (Range, error) {
	return NewRangeWithBound(nil, BoundUnbounded, max, BoundClosed)
}

func NewLessThanRange(max interface{}) (Range, error) {
	return NewRangeWithBound(nil, BoundUnbounded, max, BoundOpen)
}

func closedOrUnbounded(v interface{}) BoundType {
	if v == nil {
		return BoundUnbounded
	}
	return BoundClosed
}

func NewRangeWithBound(lower interface{}, lowerType BoundType, upper interface{}, upperType BoundType) (Range, error) {
	r := &defaultRange{}

	if lower != nil && lowerType != BoundUnbounded {
		if !comparison.IsCompareSupported(lower) {
			return nil, ErrRangeBoundTypeUnsupported
		}
		r.lower = lower
		r.lowerType = lowerType
	}

	if upper != nil && upperType != BoundUnbounded {
		if !comparison.IsCompareSupported(upper) {
			return nil, ErrRangeBoundTypeUnsupported
		}
		r.upper = upper
		r.upperType = upperType
	}

	if r.HasLower() && r.HasUpper() {
		c, err := comparison.Compare(r.lower, r.upper)
		if err != nil {
			return nil, ErrRangeBoundTypeNotSame
		}
		if c > 0 || (c == 0 && (r.lowerType == BoundOpen || r.upperType == BoundOpen)) {
			return nil, ErrRangeInvalidBound
		}
	}

	return r, nil
}

func (d *defaultRange) LowerBound() interface{} {
	return d.lower
}

func (d *defaultRange) UpperBound() interface{} {
	return d.upper
}

func (d *defaultRange) HasLower() bool {
	return d.lowerType != BoundUnbounded
}

func (d *defaultRange) HasUpper() bool {
	return d.upperType != BoundUnbounded
}

func (d *defaultRange) LowerType() BoundType {
	return d.lowerType
}

func (d *defaultRange) UpperType() BoundType {
	return d.upperType
}

func (d *defaultRange) ContainsValue(value interface{}) (bool, error) {
	if d.HasLower() {
		r, err := comparison.Compare(d.lower, value)
		if err != nil {
			return false, err
		}
		if r > 0 || (r == 0 && d.lowerType == BoundOpen) {
			return false, nil
		}
	}

	if d.HasUpper() {
		r, err := comparison.Compare(d.upper, value)
		if err != nil {
			return false, err
		}
		if r < 0 || (r == 0 && d.upperType == BoundOpen) {
			return false, nil
		}
	}

	return true, nil
}

func (d *defaultRange) HasIntersection(v Range) (bool, error) {
	r, err := d.Intersect(v)
	if err != nil {
		return false, err
	}
	return r != nil, nil
}

func (d *defaultRange) Intersect(v Range) (Range, error) {
	if v == nil {
		return nil, errors.New("the range used to intersect cannot be nil")
	}

	newRange := &defaultRange{}

	switch {
	case d.HasLower() && v.HasLower():
		c, err := comparison.Compare(d.lower, v.LowerBound())
		if err != nil {
			return nil, err
		}
		switch {
		case c > 0:
			newRange.lower, newRange.lowerType = d.lower, d.lowerType
		case c < 0:
			newRange.lower, newRange.lowerType = v.LowerBound(), v.LowerType()
		default:
			newRange.lower, newRange.lowerType = d.lower, tighter(d.lowerType, v.LowerType())
		}
	case d.HasLower():
		newRange.lower, newRange.lowerType = d.lower, d.lowerType
	case v.HasLower():
		newRange.lower, newRange.lowerType = v.LowerBound(), v.LowerType()
	}

	switch {
	case d.HasUpper() && v.HasUpper():
		c, err := comparison.Compare(d.upper, v.UpperBound())
		if err != nil {
			return nil, err
		}
		switch {
		case c < 0:
			newRange.upper, newRange.upperType = d.upper, d.upperType
		case c > 0:
			newRange.upper, newRange.upperType = v.UpperBound(), v.UpperType()
		default:
			newRange.upper, newRange.upperType = d.upper, tighter(d.upperType, v.UpperType())
		}
	case d.HasUpper():
		newRange.upper, newRange.upperType = d.upper, d.upperType
	case v.HasUpper():
		newRange.upper, newRange.upperType = v.UpperBound(), v.UpperType()
	}

	if newRange.HasLower() && newRange.HasUpper() {
		c, err := comparison.Compare(newRange.lower, newRange.upper)
		if err != nil {
			return nil, err
		}
		if c > 0 || (c == 0 && (newRange.lowerType == BoundOpen || newRange.upperType == BoundOpen)) {
			return nil, nil
		}
	}

	return newRange, nil
}

func tighter(a BoundType, b BoundType) BoundType {
	if a == BoundOpen || b == BoundOpen {
		return BoundOpen
	}
	return BoundClosed
}

func (d *defaultRange) String() string {
	left, right := "(", ")"
	var min, max string
	if d.HasLower() {
		min = fmt.Sprint(d.lower)
		if d.lowerType == BoundClosed {
			left = "["
		}
	}
	if d.HasUpper() {
		max = fmt.Sprint(d.upper)
		if d.upperType == BoundClosed {
			right = "]"
		}
	}
	return fmt.Sprintf("%s%s..%s%s", left, min, max, right)
}

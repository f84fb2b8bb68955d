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
	"time"

	"github.com/endink/go-sharding-router/core"
	"github.com/pkg/errors"
	"github.com/scylladb/go-set/strset"
)

const DefaultDatetimePattern = "2006-01-02 15:04:05"

type intervalProps struct {
	DatetimePattern string `yaml:"datetime-pattern"`
	DatetimeLower   string `yaml:"datetime-lower"`
	DatetimeUpper   string `yaml:"datetime-upper"`
	SuffixPattern   string `yaml:"sharding-suffix-pattern"`
	IntervalAmount  int    `yaml:"datetime-interval-amount"`
	IntervalUnit    string `yaml:"datetime-interval-unit"`
}

type intervalUnit struct {
	name   string
	approx time.Duration
	add    func(t time.Time, n int) time.Time
}

var intervalUnits = map[string]intervalUnit{
	"YEARS":   {"YEARS", 8766 * time.Hour, func(t time.Time, n int) time.Time { return t.AddDate(n, 0, 0) }},
	"MONTHS":  {"MONTHS", 730 * time.Hour, func(t time.Time, n int) time.Time { return t.AddDate(0, n, 0) }},
	"WEEKS":   {"WEEKS", 168 * time.Hour, func(t time.Time, n int) time.Time { return t.AddDate(0, 0, 7*n) }},
	"DAYS":    {"DAYS", 24 * time.Hour, func(t time.Time, n int) time.Time { return t.AddDate(0, 0, n) }},
	"HOURS":   {"HOURS", time.Hour, func(t time.Time, n int) time.Time { return t.Add(time.Duration(n) * time.Hour) }},
	"MINUTES": {"MINUTES", time.Minute, func(t time.Time, n int) time.Time { return t.Add(time.Duration(n) * time.Minute) }},
	"SECONDS": {"SECONDS", time.Second, func(t time.Time, n int) time.Time { return t.Add(time.Duration(n) * time.Second) }},
	"MILLIS":  {"MILLIS", time.Millisecond, func(t time.Time, n int) time.Time { return t.Add(time.Duration(n) * time.Millisecond) }},
}

// IntervalAlgorithm buckets datetimes into [lower + k*interval, lower + (k+1)*interval) partitions,
// each partition is the target whose suffix is the bucket start formatted with the suffix pattern.
type IntervalAlgorithm struct {
	pattern       string
	lower         time.Time
	upper         time.Time
	suffixPattern string
	amount        int
	unit          intervalUnit
}

var _ PreciseShardingAlgorithm = &IntervalAlgorithm{}
var _ RangeShardingAlgorithm = &IntervalAlgorithm{}

// NewIntervalAlgorithm reads Go time layouts, e.g. 'datetime-pattern: 2006-01-02 15:04:05' and 'sharding-suffix-pattern: 200601'.
func NewIntervalAlgorithm(props core.Properties) (ShardingAlgorithm, error) {
	p := &intervalProps{}
	if err := props.PopulateValue(p); err != nil {
		return nil, err
	}
	a := &IntervalAlgorithm{
		pattern:       core.IfBlankAndTrim(p.DatetimePattern, DefaultDatetimePattern),
		suffixPattern: strings.TrimSpace(p.SuffixPattern),
		amount:        p.IntervalAmount,
	}
	if a.suffixPattern == "" {
		return nil, errors.New("'sharding-suffix-pattern' property is required")
	}
	if a.amount == 0 {
		a.amount = 1
	}
	if a.amount < 0 {
		return nil, errors.New("'datetime-interval-amount' property must be greater than zero")
	}
	unitName := strings.ToUpper(core.IfBlankAndTrim(p.IntervalUnit, "DAYS"))
	unit, ok := intervalUnits[unitName]
	if !ok {
		return nil, errors.Errorf("unknown 'datetime-interval-unit' value '%s'", p.IntervalUnit)
	}
	a.unit = unit

	if strings.TrimSpace(p.DatetimeLower) == "" {
		return nil, errors.New("'datetime-lower' property is required")
	}
	var err error
	if a.lower, err = parseTime(p.DatetimeLower, a.pattern); err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.DatetimeUpper) == "" {
		a.upper = time.Now()
	} else if a.upper, err = parseTime(p.DatetimeUpper, a.pattern); err != nil {
		return nil, err
	}
	if a.upper.Before(a.lower) {
		return nil, errors.New("'datetime-upper' must not be earlier than 'datetime-lower'")
	}
	return a, nil
}

func (a *IntervalAlgorithm) Type() string {
	return TypeInterval
}

func (a *IntervalAlgorithm) bucketStart(k int) time.Time {
	return a.unit.add(a.lower, k*a.amount)
}

// bucketIndex returns k of the bucket containing t, t must not be before the lower datetime.
func (a *IntervalAlgorithm) bucketIndex(t time.Time) int {
	k := int(t.Sub(a.lower) / (a.unit.approx * time.Duration(a.amount)))
	for k > 0 && a.bucketStart(k).After(t) {
		k--
	}
	for !a.bucketStart(k + 1).After(t) {
		k++
	}
	return k
}

func (a *IntervalAlgorithm) suffix(k int) string {
	return a.bucketStart(k).Format(a.suffixPattern)
}

func (a *IntervalAlgorithm) DoPreciseSharding(targets []string, value *core.PreciseShardingValue) (string, bool, error) {
	t, err := ToTime(value.Value, a.pattern)
	if err != nil {
		return "", false, err
	}
	if t.Before(a.lower) || t.After(a.upper) {
		return "", false, nil
	}
	target, ok := MatchSuffix(targets, a.suffix(a.bucketIndex(t)))
	return target, ok, nil
}

func (a *IntervalAlgorithm) DoRangeSharding(targets []string, value *core.RangeShardingValue) ([]string, error) {
	r := value.Value
	from, to := a.lower, a.upper
	var queryLower, queryUpper time.Time
	var err error
	if r.HasLower() {
		if queryLower, err = ToTime(r.LowerBound(), a.pattern); err != nil {
			return nil, err
		}
		if queryLower.After(from) {
			from = queryLower
		}
	}
	if r.HasUpper() {
		if queryUpper, err = ToTime(r.UpperBound(), a.pattern); err != nil {
			return nil, err
		}
		if queryUpper.Before(to) {
			to = queryUpper
		}
	}
	if from.After(to) {
		return []string{}, nil
	}

	suffixes := strset.New()
	for k, last := a.bucketIndex(from), a.bucketIndex(to); k <= last; k++ {
		start, end := a.bucketStart(k), a.bucketStart(k+1)
		if r.HasLower() && !end.After(queryLower) {
			continue
		}
		if r.HasUpper() {
			if r.UpperType() == core.BoundOpen && !start.Before(queryUpper) {
				continue
			}
			if start.After(queryUpper) {
				continue
			}
		}
		suffixes.Add(a.suffix(k))
	}
	return pickTargets(targets, suffixes), nil
}

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

package telemetry

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestBuildMetricName(t *testing.T) {
	var name string
	name = BuildMetricName("a_")
	assert.Equal(t, "a", name)

	name = BuildMetricName("_-a._")
	assert.Equal(t, "a", name)

	name = BuildMetricName("db", "A")
	assert.Equal(t, "db_a", name)

	name = BuildMetricName("db", "AbcEdf")
	assert.Equal(t, "db_abc_edf", name)

	name = BuildMetricName("db", "...AbcEdf...")
	assert.Equal(t, "db_abc_edf", name)

	name = BuildMetricName("route.total")
	assert.Equal(t, "route_total", name)
}

func TestGetMeterIsShared(t *testing.T) {
	assert.Same(t, GetMeter("sharding"), GetMeter("Sharding"))
	c1 := GetMeter("test").NewCounter("calls", "calls", "kind")
	c2 := GetMeter("test").NewCounter("calls", "calls", "kind")
	assert.Same(t, c1, c2)
}

func TestRecordRoute(t *testing.T) {
	before := testutil.ToFloat64(routeTotal.WithLabelValues(OutcomeInconsistent))
	RecordRoute(OutcomeInconsistent, 0, time.Now())
	assert.Equal(t, before+1, testutil.ToFloat64(routeTotal.WithLabelValues(OutcomeInconsistent)))

	RecordReload(ReloadFailure)
	assert.True(t, testutil.ToFloat64(reloadTotal.WithLabelValues(ReloadFailure)) >= 1)

	RecordRuleTables(3, 1, 1)
	assert.Equal(t, float64(3), testutil.ToFloat64(ruleTables.WithLabelValues("sharding")))

	families, err := Registry().Gather()
	assert.Nil(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "sharding_route_total")
	assert.Contains(t, names, "sharding_rule_reload_total")
}

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

import "time"

const (
	OutcomeOk           = "ok"
	OutcomeEmpty        = "empty"
	OutcomeInconsistent = "inconsistent"
	OutcomeError        = "error"

	ReloadSuccess = "success"
	ReloadFailure = "failure"
)

var shardingMeter = GetMeter("sharding")

var (
	routeTotal = shardingMeter.NewCounter("route_total", "Statements routed, by outcome.", "outcome")
	routeUnits = shardingMeter.NewHistogram("route_units", "Route units produced per routed statement.",
		[]float64{1, 2, 4, 8, 16, 32, 64, 128})
	routeDuration = shardingMeter.NewDurationValueRecorder("route_duration", "Time spent routing one statement.")
	reloadTotal   = shardingMeter.NewCounter("rule_reload_total", "Sharding rule reloads, by result.", "result")
	ruleTables    = shardingMeter.NewGauge("rule_tables", "Tables of the active sharding rule, by kind.", "kind")
)

// RecordRoute counts one routed statement, units are observed for successful routes only.
func RecordRoute(outcome string, units int, startTime time.Time) {
	routeTotal.WithLabelValues(outcome).Inc()
	routeDuration.RecordLatency(startTime)
	if outcome == OutcomeOk || outcome == OutcomeEmpty {
		routeUnits.WithLabelValues().Observe(float64(units))
	}
}

func RecordReload(result string) {
	reloadTotal.WithLabelValues(result).Inc()
}

// RecordRuleTables publishes the table counts of the rule currently serving.
func RecordRuleTables(sharding int, broadcast int, bindingGroups int) {
	ruleTables.WithLabelValues("sharding").Set(float64(sharding))
	ruleTables.WithLabelValues("broadcast").Set(float64(broadcast))
	ruleTables.WithLabelValues("binding_group").Set(float64(bindingGroups))
}

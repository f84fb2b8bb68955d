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
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DurationValueRecorder observes durations in seconds on a histogram.
type DurationValueRecorder struct {
	histogram *prometheus.HistogramVec
}

func NewDurationValueRecorder(histogram *prometheus.HistogramVec) DurationValueRecorder {
	return DurationValueRecorder{
		histogram: histogram,
	}
}

func (d DurationValueRecorder) Record(duration time.Duration, labels ...string) {
	d.histogram.WithLabelValues(labels...).Observe(duration.Seconds())
}

func (d DurationValueRecorder) RecordLatency(startTime time.Time, labels ...string) {
	d.Record(time.Since(startTime), labels...)
}

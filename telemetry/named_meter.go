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
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type NamedMeter struct {
	namespace     string
	registerer    prometheus.Registerer
	recorderMutex sync.Mutex
	recorders     map[string]interface{}
}

func (m *NamedMeter) getOrPutRecorder(name string, factory func() prometheus.Collector) interface{} {
	m.recorderMutex.Lock()
	defer m.recorderMutex.Unlock()
	r, ok := m.recorders[name]
	if !ok {
		c := factory()
		m.registerer.MustRegister(c)
		r = c
		m.recorders[name] = r
	}
	return r
}

func (m *NamedMeter) NewCounter(name, desc string, labels ...string) *prometheus.CounterVec {
	fac := func() prometheus.Collector {
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: m.namespace,
			Name:      BuildMetricName(name),
			Help:      desc,
		}, labels)
	}
	return m.getOrPutRecorder(name, fac).(*prometheus.CounterVec)
}

func (m *NamedMeter) NewHistogram(name, desc string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	fac := func() prometheus.Collector {
		return prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: m.namespace,
			Name:      BuildMetricName(name),
			Help:      desc,
			Buckets:   buckets,
		}, labels)
	}
	return m.getOrPutRecorder(name, fac).(*prometheus.HistogramVec)
}

func (m *NamedMeter) NewGauge(name, desc string, labels ...string) *prometheus.GaugeVec {
	fac := func() prometheus.Collector {
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: m.namespace,
			Name:      BuildMetricName(name),
			Help:      desc,
		}, labels)
	}
	return m.getOrPutRecorder(name, fac).(*prometheus.GaugeVec)
}

func (m *NamedMeter) NewDurationValueRecorder(name, desc string, labels ...string) DurationValueRecorder {
	return NewDurationValueRecorder(m.NewHistogram(name+"_seconds", desc, prometheus.DefBuckets, labels...))
}

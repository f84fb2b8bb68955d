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
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

var registry = prometheus.NewRegistry()

var meterMap = make(map[string]*NamedMeter)
var meterMutex sync.Mutex

// Registry holds every collector created by the meters of this process.
func Registry() *prometheus.Registry {
	return registry
}

// GetMeter returns the meter of a namespace, metric names of the meter are prefixed with it.
func GetMeter(namespace string) *NamedMeter {
	meterMutex.Lock()
	defer meterMutex.Unlock()
	ns := BuildMetricName(namespace)
	if m, ok := meterMap[ns]; ok {
		return m
	}
	m := &NamedMeter{
		namespace:  ns,
		registerer: registry,
		recorders:  make(map[string]interface{}),
	}
	meterMap[ns] = m
	return m
}

// BuildMetricName joins the statements in snake case, 'db', 'AbcEdf' becomes 'db_abc_edf'.
func BuildMetricName(statement ...string) string {
	if len(statement) == 0 {
		panic(errors.New("name for 'BuildMetricName' can not be nil or empty"))
	}

	sb := &strings.Builder{}
	array := make([]string, 0, len(statement))
	for _, s := range statement {
		sb.Reset()
		prevUpper := true
		pendingSeparator := false
		for _, current := range []byte(s) {
			lower := 'a' <= current && current <= 'z'
			upper := 'A' <= current && current <= 'Z'
			digit := '0' <= current && current <= '9'
			if !lower && !upper && !digit {
				pendingSeparator = sb.Len() > 0
				continue
			}
			if sb.Len() > 0 && (pendingSeparator || (upper && !prevUpper)) {
				sb.WriteByte('_')
			}
			pendingSeparator = false
			prevUpper = upper
			if upper {
				current += 'a' - 'A'
			}
			sb.WriteByte(current)
		}
		if sb.Len() > 0 {
			array = append(array, sb.String())
		}
	}
	return strings.Join(array, "_")
}

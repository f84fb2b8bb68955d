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
	"sort"
	"strings"
	"sync"

	"github.com/endink/go-sharding-router/core"
	"github.com/endink/go-sharding-router/logging"
	"github.com/pkg/errors"
)

var logger = logging.GetLogger("algorithm")

// Factory builds an algorithm instance from its configured properties.
type Factory func(props core.Properties) (ShardingAlgorithm, error)

var onceReg sync.Once
var instance Registry

// Registry maps algorithm type names (case insensitive) to factories.
type Registry interface {
	Register(algorithmType string, factory Factory) error
	TryLoad(algorithmType string) (Factory, bool)
	Create(algorithmType string, props core.Properties) (ShardingAlgorithm, error)
	Types() []string
	Delete(algorithmType string)
}

// DefaultRegistry holds every built-in algorithm.
func DefaultRegistry() Registry {
	onceReg.Do(func() {
		r := NewRegistry()
		for tp, f := range builtins() {
			if err := r.Register(tp, f); err != nil {
				panic(err)
			}
		}
		instance = r
	})
	return instance
}

func builtins() map[string]Factory {
	return map[string]Factory{
		TypeMod:           NewModAlgorithm,
		TypeHashMod:       NewHashModAlgorithm,
		TypeInline:        NewInlineAlgorithm,
		TypeComplexInline: NewComplexInlineAlgorithm,
		TypeHintInline:    NewHintInlineAlgorithm,
		TypeInterval:      NewIntervalAlgorithm,
		TypeBoundaryRange: NewBoundaryRangeAlgorithm,
	}
}

func NewRegistry() Registry {
	return &registry{}
}

type registry struct {
	mp sync.Map
}

func getFullName(algorithmType string) (string, error) {
	n := strings.ToUpper(strings.TrimSpace(algorithmType))
	if n == "" {
		return "", errors.New("algorithm type can not be empty")
	}
	return n, nil
}

func (r *registry) TryLoad(algorithmType string) (Factory, bool) {
	fullName, err := getFullName(algorithmType)
	if err != nil {
		return nil, false
	}
	v, ok := r.mp.Load(fullName)
	if ok {
		f, ok := v.(Factory)
		return f, ok
	}
	return nil, false
}

func (r *registry) Register(algorithmType string, factory Factory) error {
	if factory == nil {
		return errors.New("algorithm factory can not be null")
	}
	fullName, err := getFullName(algorithmType)
	if err != nil {
		return err
	}
	if _, loaded := r.mp.LoadOrStore(fullName, factory); loaded {
		return errors.Errorf("algorithm type '%s' is already registered", fullName)
	}
	logger.Debugf("sharding algorithm type '%s' registered", fullName)
	return nil
}

func (r *registry) Create(algorithmType string, props core.Properties) (ShardingAlgorithm, error) {
	f, ok := r.TryLoad(algorithmType)
	if !ok {
		return nil, errors.Errorf("unknown sharding algorithm type '%s'", algorithmType)
	}
	if props == nil {
		props = core.EmptyProperties
	}
	a, err := f(props)
	if err != nil {
		return nil, errors.Wrapf(err, "create '%s' sharding algorithm fault", strings.ToUpper(algorithmType))
	}
	return a, nil
}

func (r *registry) Types() []string {
	var types []string
	r.mp.Range(func(key, value interface{}) bool {
		types = append(types, key.(string))
		return true
	})
	sort.Strings(types)
	return types
}

func (r *registry) Delete(algorithmType string) {
	if fullName, err := getFullName(algorithmType); err == nil {
		r.mp.Delete(fullName)
	}
}

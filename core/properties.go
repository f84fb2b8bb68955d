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

	"go.uber.org/config"
)

// Properties are the free-form key/value settings of a named algorithm.
type Properties interface {
	GetValues() map[string]string
	// PopulateValue decodes the raw properties into a struct with yaml tags.
	PopulateValue(instance interface{}) error
}

var EmptyProperties Properties = &emptyProperties{}

func NewProperties(value config.Value) (Properties, error) {
	values := make(map[string]string)
	if value.HasValue() {
		raw := make(map[string]interface{})
		if err := value.Populate(&raw); err != nil {
			return nil, err
		}
		for k, v := range raw {
			values[k] = fmt.Sprint(v)
		}
	}
	return &properties{
		values:   values,
		rawValue: value,
	}, nil
}

// NewPropertiesFromMap keeps the value types of the map, so numbers populate numeric fields.
func NewPropertiesFromMap(values map[string]interface{}) (Properties, error) {
	if len(values) == 0 {
		return EmptyProperties, nil
	}
	yaml, err := config.NewYAML(config.Static(values))
	if err != nil {
		return nil, fmt.Errorf("invalid properties: %v", err)
	}
	return NewProperties(yaml.Get(config.Root))
}

type properties struct {
	values   map[string]string
	rawValue config.Value
}

func (props *properties) GetValues() map[string]string {
	return props.values
}

func (props *properties) PopulateValue(instance interface{}) error {
	if !props.rawValue.HasValue() {
		return nil
	}
	return props.rawValue.Populate(instance)
}

type emptyProperties struct {
}

func (props *emptyProperties) GetValues() map[string]string {
	return make(map[string]string, 0)
}

func (props *emptyProperties) PopulateValue(instance interface{}) error {
	return nil
}

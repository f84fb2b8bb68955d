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

package script

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/endink/go-sharding-router/core"
)

// CompiledScript is safe for concurrent use, every run works on its own copy of the compiled program.
type CompiledScript interface {
	Run(variables map[string]interface{}) ([]string, error)
	Raw() string
}

type tengoScript struct {
	raw       string
	compiled  *tengo.Compiled
	resultVar string
}

func (script *tengoScript) Raw() string {
	return script.raw
}

func (script *tengoScript) Run(variables map[string]interface{}) ([]string, error) {
	c := script.compiled.Clone()
	for name, value := range variables {
		if err := c.Set(name, normalizeValue(value)); err != nil {
			return nil, err
		}
	}
	if err := c.Run(); err != nil {
		return nil, err
	}

	v := c.Get(script.resultVar)
	golangValue := v.Value()
	if golangValue == nil {
		return nil, invalidReturnTypeError(script.raw, v)
	}

	switch reflect.TypeOf(golangValue).Kind() {
	case reflect.Array, reflect.Slice:
		if array, ok := golangValue.([]interface{}); ok {
			return stringArray(array), nil
		}
	case reflect.Int,
		reflect.Int8,
		reflect.Int16,
		reflect.Int32,
		reflect.Int64,
		reflect.Uint,
		reflect.Uint8,
		reflect.Uint16,
		reflect.Uint32,
		reflect.Uint64,
		reflect.Float32,
		reflect.Float64,
		reflect.String:
		return []string{fmt.Sprint(golangValue)}, nil
	}
	return nil, invalidReturnTypeError(script.raw, v)
}

func stringArray(array []interface{}) []string {
	list := make([]string, len(array))
	for i, v := range array {
		list[i] = fmt.Sprint(v)
	}
	return list
}

func invalidReturnTypeError(raw string, v *tengo.Variable) error {
	return errors.New(fmt.Sprint("script return invalid type, excepted array that element is number or string, and primitive number or string", core.LineSeparator, "script: ", raw, core.LineSeparator, "return type:", v.ValueType()))
}

// normalizeValue converts column values into types tengo understands without surprises, int32 would become a char otherwise.
func normalizeValue(value interface{}) interface{} {
	switch v := value.(type) {
	case nil:
		return nil
	case int:
		return int64(v)
	case int8:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case uint:
		return int64(v)
	case uint8:
		return int64(v)
	case uint16:
		return int64(v)
	case uint32:
		return int64(v)
	case uint64:
		return int64(v)
	case float32:
		return float64(v)
	case float64, string, bool, time.Time:
		return v
	case []byte:
		return string(v)
	}
	return fmt.Sprint(value)
}

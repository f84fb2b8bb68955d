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

package comparison

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"
)

type valueClass int

const (
	classInvalid valueClass = iota
	classSigned
	classUnsigned
	classFloat
	classString
	classTime
)

func classOf(value interface{}) valueClass {
	if value == nil {
		return classInvalid
	}
	if _, ok := value.(time.Time); ok {
		return classTime
	}
	switch reflect.TypeOf(value).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return classSigned
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return classUnsigned
	case reflect.Float32, reflect.Float64:
		return classFloat
	case reflect.String:
		return classString
	}
	return classInvalid
}

func IsCompareSupported(value interface{}) bool {
	return classOf(value) != classInvalid
}

func IsNumber(value interface{}) bool {
	c := classOf(value)
	return c == classSigned || c == classUnsigned || c == classFloat
}

// Compare returns -1, 0 or 1. Numbers of different kinds are comparable with each other,
// strings only with strings and time.Time only with time.Time.
func Compare(a, b interface{}) (int, error) {
	ca, cb := classOf(a), classOf(b)
	if ca == classInvalid || cb == classInvalid {
		return 0, fmt.Errorf("unsupported type for comparison: %T, %T", a, b)
	}

	switch {
	case ca == classString && cb == classString:
		return strings.Compare(reflect.ValueOf(a).String(), reflect.ValueOf(b).String()), nil
	case ca == classTime && cb == classTime:
		ta, tb := a.(time.Time), b.(time.Time)
		if ta.Before(tb) {
			return -1, nil
		}
		if ta.After(tb) {
			return 1, nil
		}
		return 0, nil
	case isNumberClass(ca) && isNumberClass(cb):
		return compareNumber(a, ca, b, cb), nil
	}

	return 0, fmt.Errorf("values have different types cannot be compared, a: %#v, b: %#v", a, b)
}

func isNumberClass(c valueClass) bool {
	return c == classSigned || c == classUnsigned || c == classFloat
}

func compareNumber(a interface{}, ca valueClass, b interface{}, cb valueClass) int {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch {
	case ca == classSigned && cb == classSigned:
		return compareInt64(va.Int(), vb.Int())
	case ca == classUnsigned && cb == classUnsigned:
		return compareUint64(va.Uint(), vb.Uint())
	case ca == classSigned && cb == classUnsigned:
		if va.Int() < 0 {
			return -1
		}
		return compareUint64(uint64(va.Int()), vb.Uint())
	case ca == classUnsigned && cb == classSigned:
		if vb.Int() < 0 {
			return 1
		}
		return compareUint64(va.Uint(), uint64(vb.Int()))
	}
	return compareFloat64(toFloat64(va, ca), toFloat64(vb, cb))
}

func toFloat64(v reflect.Value, c valueClass) float64 {
	switch c {
	case classSigned:
		return float64(v.Int())
	case classUnsigned:
		return float64(v.Uint())
	}
	return v.Float()
}

func compareInt64(x, y int64) int {
	if x < y {
		return -1
	} else if x == y {
		return 0
	}
	return 1
}

func compareUint64(x, y uint64) int {
	if x < y {
		return -1
	} else if x == y {
		return 0
	}
	return 1
}

func compareFloat64(x, y float64) int {
	if math.IsNaN(x) || math.IsNaN(y) {
		return compareInt64(boolInt(!math.IsNaN(x)), boolInt(!math.IsNaN(y)))
	}
	if x < y {
		return -1
	} else if x == y {
		return 0
	}
	return 1
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func Min(a, b interface{}) (interface{}, error) {
	c, err := Compare(a, b)
	if err != nil {
		return nil, err
	}
	if c <= 0 {
		return a, nil
	}
	return b, nil
}

func Max(a, b interface{}) (interface{}, error) {
	c, err := Compare(a, b)
	if err != nil {
		return nil, err
	}
	if c >= 0 {
		return a, nil
	}
	return b, nil
}

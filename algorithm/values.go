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
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ToInt64 converts a column value to an integer, numeric text is accepted.
func ToInt64(value interface{}) (int64, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return 0, errors.Errorf("value %d overflows int64", v)
		}
		return int64(v), nil
	case float32:
		return floatToInt64(float64(v))
	case float64:
		return floatToInt64(v)
	case string:
		return parseInt64(v)
	case []byte:
		return parseInt64(string(v))
	case nil:
		return 0, errors.New("null value can not be used as a sharding value")
	}
	return 0, errors.Errorf("value '%v' (%T) is not an integer", value, value)
}

func floatToInt64(f float64) (int64, error) {
	if f != math.Trunc(f) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, errors.Errorf("value %v is not an integer", f)
	}
	return int64(f), nil
}

func parseInt64(s string) (int64, error) {
	i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "value '%s' is not an integer", s)
	}
	return i, nil
}

// ToTime converts a time value or text formatted with layout.
func ToTime(value interface{}, layout string) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case *time.Time:
		if v != nil {
			return *v, nil
		}
	case string:
		return parseTime(v, layout)
	case []byte:
		return parseTime(string(v), layout)
	}
	return time.Time{}, errors.Errorf("value '%v' (%T) is not a datetime", value, value)
}

func parseTime(s string, layout string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "datetime '%s' does not match pattern '%s'", s, layout)
	}
	return t, nil
}

func valueText(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	}
	return fmt.Sprint(value)
}

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
)

// ConfigurationError is raised while a sharding rule is loaded, never while a statement is routed.
type ConfigurationError struct {
	// Subject names the broken part, e.g. "table t_order" or "algorithm db_mod".
	Subject string
	Message string
	Cause   error
}

func NewConfigurationError(subject string, format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{
		Subject: subject,
		Message: fmt.Sprintf(format, args...),
	}
}

func WrapConfigurationError(cause error, subject string, format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{
		Subject: subject,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

func (e *ConfigurationError) Error() string {
	sb := NewStringBuilder("sharding configuration error")
	if e.Subject != "" {
		sb.Write(" (", e.Subject, ")")
	}
	sb.Write(": ", e.Message)
	if e.Cause != nil {
		sb.Write(": ", e.Cause.Error())
	}
	return sb.String()
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

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

package logging

import "fmt"

// chanLogger sends every entry as "[LEVEL]message" to a channel.
type chanLogger chan string

func newChanLogger(ch chan string) StandardLogger {
	return chanLogger(ch)
}

func (c chanLogger) send(level string, msg string) {
	c <- "[" + level + "]" + msg
}

func (c chanLogger) Debug(args ...interface{}) { c.send("DEBUG", fmt.Sprint(args...)) }
func (c chanLogger) Info(args ...interface{})  { c.send("INFO", fmt.Sprint(args...)) }
func (c chanLogger) Warn(args ...interface{})  { c.send("WARN", fmt.Sprint(args...)) }
func (c chanLogger) Error(args ...interface{}) { c.send("ERROR", fmt.Sprint(args...)) }
func (c chanLogger) Panic(args ...interface{}) { c.send("PANIC", fmt.Sprint(args...)) }
func (c chanLogger) Fatal(args ...interface{}) { c.send("FATAL", fmt.Sprint(args...)) }

func (c chanLogger) Debugf(template string, args ...interface{}) {
	c.send("DEBUG", fmt.Sprintf(template, args...))
}

func (c chanLogger) Infof(template string, args ...interface{}) {
	c.send("INFO", fmt.Sprintf(template, args...))
}

func (c chanLogger) Warnf(template string, args ...interface{}) {
	c.send("WARN", fmt.Sprintf(template, args...))
}

func (c chanLogger) Errorf(template string, args ...interface{}) {
	c.send("ERROR", fmt.Sprintf(template, args...))
}

func (c chanLogger) Panicf(template string, args ...interface{}) {
	c.send("PANIC", fmt.Sprintf(template, args...))
}

func (c chanLogger) Fatalf(template string, args ...interface{}) {
	c.send("FATAL", fmt.Sprintf(template, args...))
}

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
	"strings"

	"github.com/endink/go-sharding-router/core"
)

// SegmentValidator checks the literal text of a segment, e.g. identifier rules of data node names.
type SegmentValidator func(string) error

type inlineSegmentGroup struct {
	segments []*inlineSegment
}

type inlineSegment struct {
	rawScript string
	prefix    string
	script    CompiledScript
}

type splitContext struct {
	prefix          *strings.Builder
	rawScript       *strings.Builder
	variables       []string
	segments        []*inlineSegment
	includeSplitter bool
	syntaxOnly      bool
}

func (seg *inlineSegment) isBlank() bool {
	return seg.prefix == "" && seg.rawScript == ""
}

// splitSegments splits 'a_${x}.b_${y}, c' into comma separated groups of literal-prefixed script segments.
func splitSegments(exp string, validator SegmentValidator, variables ...string) ([]*inlineSegmentGroup, error) {
	return split(exp, validator, false, variables)
}

// CheckInlineExpression validates the template syntax only, scripts are not compiled so they may reference any variable.
func CheckInlineExpression(exp string) error {
	_, err := split(exp, nil, true, nil)
	return err
}

func split(exp string, validator SegmentValidator, syntaxOnly bool, variables []string) ([]*inlineSegmentGroup, error) {
	isScript := false
	scriptStart := false
	expLen := len(exp)

	groups := make([]*inlineSegmentGroup, 0)

	syntaxError := func(message string, index int) error {
		var sb = core.NewStringBuilder()
		sb.WriteLine("inline expression syntax error")
		sb.WriteLine(message)
		sb.WriteLineF("expression: %s", exp)
		if index >= 0 {
			sb.WriteLineF("char index: %d", index)
		}
		return errors.New(sb.String())
	}

	context := &splitContext{
		prefix:     &strings.Builder{},
		rawScript:  &strings.Builder{},
		variables:  variables,
		syntaxOnly: syntaxOnly,
	}

	prefix := context.prefix
	rawScript := context.rawScript

	for i, c := range exp {
		switch c {
		case '$':
			if isScript {
				return nil, syntaxError("should not appear symbol '$'", i)
			}
			if i < (expLen-1) && '{' == exp[i+1] {
				isScript = true
				scriptStart = true
			} else {
				return nil, syntaxError("'{' symbol is missing after the symbol '$'", i)
			}
		case '{':
			if isScript {
				if scriptStart {
					scriptStart = false
				} else {
					rawScript.WriteRune(c)
				}
			} else {
				prefix.WriteRune(c)
			}
		case '.':
			if i == 0 || i == (expLen-1) {
				return nil, syntaxError("should not appear symbol '.' at beginning and end of the inline expression", i)
			}
			if isScript {
				rawScript.WriteRune(c)
			} else {
				if context.includeSplitter {
					return nil, syntaxError("should not appear symbol '.'", i)
				}
				context.includeSplitter = true
				prefix.WriteRune(c)
			}
		case '}':
			if isScript {
				isScript = false
				if err := context.flushSegment(validator); err != nil {
					return nil, syntaxError(err.Error(), i)
				}
			} else {
				prefix.WriteRune(c)
			}
		case ',':
			if isScript {
				rawScript.WriteRune(c)
			} else {
				g, err := context.flushGroup(validator)
				if err != nil {
					return nil, syntaxError(err.Error(), i)
				}
				groups = append(groups, g)
			}
		default:
			if isScript {
				rawScript.WriteRune(c)
			} else {
				prefix.WriteRune(c)
			}
		}
	}

	if isScript {
		return nil, syntaxError("symbol '}' used to end the script are missing", -1)
	}

	g, err := context.flushGroup(validator)
	if err != nil {
		return nil, syntaxError(err.Error(), expLen)
	}
	groups = append(groups, g)
	return groups, nil
}

func (context *splitContext) flushGroup(validator SegmentValidator) (*inlineSegmentGroup, error) {
	if err := context.flushSegment(validator); err != nil {
		return nil, err
	}
	g := &inlineSegmentGroup{
		segments: context.segments,
	}
	context.segments = nil
	context.includeSplitter = false
	return g, nil
}

func (context *splitContext) flushSegment(validator SegmentValidator) error {
	seg := &inlineSegment{
		prefix:    strings.TrimSpace(context.prefix.String()),
		rawScript: strings.TrimSpace(context.rawScript.String()),
	}
	context.prefix.Reset()
	context.rawScript.Reset()

	if seg.isBlank() {
		return nil
	}
	if seg.rawScript != "" && !context.syntaxOnly {
		s, err := ParseScript(seg.rawScript, context.variables...)
		if err != nil {
			return err
		}
		seg.script = s
	}
	if validator != nil && seg.prefix != "" {
		if e := validator(seg.prefix); e != nil {
			return e
		}
	}
	context.segments = append(context.segments, seg)
	return nil
}

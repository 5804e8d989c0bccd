// -*- Mode: Go; indent-tabs-mode: t -*-

/*
 * Copyright (C) 2026 Canonical Ltd
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License version 3 as
 * published by the Free Software Foundation.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 */

package testutil

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"gopkg.in/check.v1"
)

type containsChecker struct {
	*check.CheckerInfo
}

// Contains checks that a string holds a substring, or that a slice holds
// an element equal to the needle.
var Contains check.Checker = &containsChecker{
	&check.CheckerInfo{Name: "Contains", Params: []string{"haystack", "needle"}},
}

func (*containsChecker) Check(params []interface{}, names []string) (bool, string) {
	if haystack, ok := params[0].(string); ok {
		needle, ok := params[1].(string)
		if !ok {
			return false, fmt.Sprintf("needle must be a string, got %T", params[1])
		}
		return strings.Contains(haystack, needle), ""
	}

	v := reflect.ValueOf(params[0])
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return false, fmt.Sprintf("haystack is of unsupported type %T", params[0])
	}
	if elem := v.Type().Elem(); elem != reflect.TypeOf(params[1]) {
		return false, fmt.Sprintf("haystack contains items of type %s but needle is a %T", elem, params[1])
	}
	for i := 0; i < v.Len(); i++ {
		if reflect.DeepEqual(v.Index(i).Interface(), params[1]) {
			return true, ""
		}
	}
	return false, ""
}

type errorIsChecker struct {
	*check.CheckerInfo
}

// ErrorIs checks errors.Is(error, target).
var ErrorIs check.Checker = &errorIsChecker{
	&check.CheckerInfo{Name: "ErrorIs", Params: []string{"error", "target"}},
}

func (*errorIsChecker) Check(params []interface{}, names []string) (bool, string) {
	if params[0] == nil {
		return params[1] == nil, ""
	}
	err, ok := params[0].(error)
	if !ok {
		return false, "first argument must be an error"
	}
	target, ok := params[1].(error)
	if !ok {
		return false, "second argument must be an error"
	}
	return errors.Is(err, target), ""
}

type fileEqualsChecker struct {
	*check.CheckerInfo
}

// FileEquals checks the exact content of a control file, compared against
// a string or a []byte.
var FileEquals check.Checker = &fileEqualsChecker{
	&check.CheckerInfo{Name: "FileEquals", Params: []string{"filename", "contents"}},
}

func (*fileEqualsChecker) Check(params []interface{}, names []string) (bool, string) {
	filename, ok := params[0].(string)
	if !ok {
		return false, "filename must be a string"
	}
	var want string
	switch content := params[1].(type) {
	case string:
		want = content
	case []byte:
		want = string(content)
	default:
		return false, fmt.Sprintf("cannot compare file contents with something of type %T", params[1])
	}
	buf, err := os.ReadFile(filename)
	if err != nil {
		return false, fmt.Sprintf("cannot read file %q: %v", filename, err)
	}
	return string(buf) == want, ""
}

type fileAbsentChecker struct {
	*check.CheckerInfo
}

// FileAbsent checks that nothing exists at the given path.
var FileAbsent check.Checker = &fileAbsentChecker{
	&check.CheckerInfo{Name: "FileAbsent", Params: []string{"filename"}},
}

func (*fileAbsentChecker) Check(params []interface{}, names []string) (bool, string) {
	filename, ok := params[0].(string)
	if !ok {
		return false, "filename must be a string"
	}
	if _, err := os.Stat(filename); err == nil {
		return false, fmt.Sprintf("file %q is present but should not exist", filename)
	}
	return true, ""
}

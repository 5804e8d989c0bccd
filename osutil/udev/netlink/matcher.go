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

package netlink

import (
	"fmt"
	"regexp"
)

// Matcher selects the uevents of interest.
type Matcher interface {
	Compile() error
	Evaluate(e UEvent) bool
}

// RuleDefinition matches uevents by action and by env values, each value
// being a regular expression anchored on both ends. A nil Action matches
// any action.
type RuleDefinition struct {
	Action *string
	Env    map[string]string

	rule *compiledRule
}

type compiledRule struct {
	action *regexp.Regexp
	env    map[string]*regexp.Regexp
}

func anchored(expr string) (*regexp.Regexp, error) {
	return regexp.Compile("^(?:" + expr + ")$")
}

// Compile prepares the rule for evaluation.
func (r *RuleDefinition) Compile() error {
	rule := &compiledRule{env: make(map[string]*regexp.Regexp, len(r.Env))}
	if r.Action != nil {
		re, err := anchored(*r.Action)
		if err != nil {
			return fmt.Errorf("invalid action matcher %q: %v", *r.Action, err)
		}
		rule.action = re
	}
	for k, expr := range r.Env {
		re, err := anchored(expr)
		if err != nil {
			return fmt.Errorf("invalid %s matcher %q: %v", k, expr, err)
		}
		rule.env[k] = re
	}
	r.rule = rule
	return nil
}

// Evaluate returns true if e matches the rule. Compile must have been
// called first.
func (r *RuleDefinition) Evaluate(e UEvent) bool {
	if r.rule == nil {
		return false
	}
	if r.rule.action != nil && !r.rule.action.MatchString(e.Action.String()) {
		return false
	}
	for k, re := range r.rule.env {
		v, ok := e.Env[k]
		if !ok || !re.MatchString(v) {
			return false
		}
	}
	return true
}

// RuleDefinitions matches when any of its rules does.
type RuleDefinitions struct {
	Rules []RuleDefinition
}

// Compile prepares all the rules.
func (rs *RuleDefinitions) Compile() error {
	for i := range rs.Rules {
		if err := rs.Rules[i].Compile(); err != nil {
			return err
		}
	}
	return nil
}

// Evaluate returns true if any rule matches e.
func (rs *RuleDefinitions) Evaluate(e UEvent) bool {
	for i := range rs.Rules {
		if rs.Rules[i].Evaluate(e) {
			return true
		}
	}
	return false
}

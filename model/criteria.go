// Copyright 2023 Arch Systems Inc.
//
//    Licensed under the Apache License, Version 2.0 (the "License");
//    you may not use this file except in compliance with the License.
//    You may obtain a copy of the License at
//
//        http://www.apache.org/licenses/LICENSE-2.0
//
//    Unless required by applicable law or agreed to in writing, software
//    distributed under the License is distributed on an "AS IS" BASIS,
//    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//    See the License for the specific language governing permissions and
//    limitations under the License.

package model

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Selection criterion operators
const (
	OpEq  = "eq"
	OpLt  = "lt"
	OpLte = "lte"
	OpGt  = "gt"
	OpGte = "gte"
)

// Selection criterion types
const (
	RuleTypeOSTag           = "os_tag"
	RuleTypeOSVersion       = "os_version"
	RuleTypeAppTag          = "app_tag"
	RuleTypeAppVersion      = "app_version"
	RuleTypeControllerHWTag = "controller_hw_tag"
)

// opsByRuleType is the closed vocabulary of criterion types and the
// operators each of them accepts.
var opsByRuleType = map[string][]string{
	RuleTypeOSTag:           {OpEq},
	RuleTypeOSVersion:       {OpLte, OpEq, OpLt, OpGt, OpGte},
	RuleTypeAppTag:          {OpEq},
	RuleTypeAppVersion:      {OpLte, OpEq, OpLt, OpGt, OpGte},
	RuleTypeControllerHWTag: {OpEq},
}

// SelectionRule is one parsed "type:op:value" criterion from a deployment
// request's selection criteria list.
type SelectionRule struct {
	Type  string
	Op    string
	Value string
}

// ParseSelectionRule parses and validates a single criterion string.
// Unknown types and operators are rejected so that a malformed criterion
// fails at request-creation time instead of silently matching nothing.
func ParseSelectionRule(criterion string) (SelectionRule, error) {
	parts := strings.Split(criterion, ":")
	if len(parts) != 3 {
		return SelectionRule{}, errors.Errorf(
			"criterion %q: expected format \"type:op:value\"", criterion,
		)
	}
	rule := SelectionRule{Type: parts[0], Op: parts[1], Value: parts[2]}

	ops, ok := opsByRuleType[rule.Type]
	if !ok {
		return SelectionRule{}, errors.Errorf(
			"criterion %q: unknown type %q", criterion, rule.Type,
		)
	}
	var opOK bool
	for _, op := range ops {
		if rule.Op == op {
			opOK = true
			break
		}
	}
	if !opOK {
		return SelectionRule{}, errors.Errorf(
			"criterion %q: operator %q not allowed for type %q",
			criterion, rule.Op, rule.Type,
		)
	}

	if strings.HasSuffix(rule.Type, "_tag") {
		if _, err := strconv.ParseUint(rule.Value, 10, 32); err != nil {
			return SelectionRule{}, errors.Errorf(
				"criterion %q: tag value %q is not an integer",
				criterion, rule.Value,
			)
		}
	}
	if strings.HasSuffix(rule.Type, "_version") {
		// Semantic versioning says "major.minor.patch", patch and
		// build are optional
		content := strings.Split(rule.Value, ".")
		if len(content) < 2 || len(content) > 4 {
			return SelectionRule{}, errors.Errorf(
				"criterion %q: version value %q must have 2-4 components",
				criterion, rule.Value,
			)
		}
		// Major and minor travel as 6 bit fields in the packed wire
		// value, so anything above that range could never match
		for _, c := range content[:2] {
			if _, err := strconv.ParseUint(c, 10, versionPartBits); err != nil {
				return SelectionRule{}, errors.Errorf(
					"criterion %q: version component %q is not an "+
						"integer below %d", criterion, c, 1<<versionPartBits,
				)
			}
		}
	}
	return rule, nil
}

// ParseSelectionCriteria parses an ordered criteria list, failing on the
// first invalid criterion.
func ParseSelectionCriteria(criteria []string) ([]SelectionRule, error) {
	rules := make([]SelectionRule, 0, len(criteria))
	for _, criterion := range criteria {
		rule, err := ParseSelectionRule(criterion)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// Kind derives the version kind the rule resolves against from its
// "os_"/"app_" prefix. Controller hardware tags live in the OS records.
func (r SelectionRule) Kind() VersionKind {
	if strings.HasPrefix(r.Type, "app_") {
		return VersionKindApp
	}
	return VersionKindOS
}

// Matches reports whether a single version history record satisfies the
// rule. The record is assumed to be of the rule's Kind.
func (r SelectionRule) Matches(attr DeviceVersionAttribute) bool {
	if strings.HasSuffix(r.Type, "_tag") {
		tag, _ := strconv.ParseUint(r.Value, 10, 32)
		return attr.Tag == uint32(tag)
	}

	major, minor := r.versionValue()
	// Major strictly dominates; the operator applies to minor only when
	// the majors are equal.
	switch r.Op {
	case OpEq:
		return attr.Major == major && attr.Minor == minor
	case OpLt:
		return attr.Major < major ||
			(attr.Major == major && attr.Minor < minor)
	case OpLte:
		return attr.Major < major ||
			(attr.Major == major && attr.Minor <= minor)
	case OpGt:
		return attr.Major > major ||
			(attr.Major == major && attr.Minor > minor)
	case OpGte:
		return attr.Major > major ||
			(attr.Major == major && attr.Minor >= minor)
	}
	return false
}

// versionValue extracts (major, minor) from the rule value. Minor
// defaults to zero when omitted; patch and build are ignored.
func (r SelectionRule) versionValue() (uint8, uint8) {
	parts := strings.Split(r.Value, ".")
	major, _ := strconv.ParseUint(parts[0], 10, 8)
	var minor uint64
	if len(parts) >= 2 {
		minor, _ = strconv.ParseUint(parts[1], 10, 8)
	}
	return uint8(major), uint8(minor)
}

func (r SelectionRule) String() string {
	return strings.Join([]string{r.Type, r.Op, r.Value}, ":")
}

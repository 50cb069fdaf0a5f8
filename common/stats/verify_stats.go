package stats

import (
	"bytes"
	"fmt"
	"testing"
)

// RuleChecker compares a rendered stat value ('got') against an expected one.
type RuleChecker struct {
	name    string
	checker func(got, expected interface{}) bool
}

func nilCheck(a, b interface{}) (nilFound, eqValues bool) {
	if a == nil && b == nil {
		return true, true
	} else if a == nil || b == nil {
		return true, false
	}
	return false, false
}

func int64EqTest(a, b interface{}) bool {
	if nilFound, eq := nilCheck(a, b); nilFound {
		return eq
	}
	return a.(int64) == int64(b.(int))
}

func floatEqTest(a, b interface{}) bool {
	if nilFound, eq := nilCheck(a, b); nilFound {
		return eq
	}
	return a.(float64) == b.(float64)
}

func floatGTTest(a, b interface{}) bool {
	if nilFound, eq := nilCheck(a, b); nilFound {
		return eq
	}
	return a.(float64) > b.(float64)
}

func doesNotExistTest(a, b interface{}) bool {
	return a == nil
}

var Int64EqTest = RuleChecker{name: "int64EqTest", checker: int64EqTest}
var FloatEqTest = RuleChecker{name: "floatEqTest", checker: floatEqTest}
var FloatGTTest = RuleChecker{name: "floatGTTest", checker: floatGTTest}
var DoesNotExistTest = RuleChecker{name: "doesNotExistTest", checker: doesNotExistTest}

type Rule struct {
	Checker RuleChecker
	Value   interface{}
}

// StatsOk checks that a finagle registry holds entries passing each rule,
// reporting every mismatch through t.Error.
func StatsOk(tag string, statsRegistry StatsRegistry, t testing.TB, contains map[string]Rule) bool {
	reg, ok := statsRegistry.(*finagleStatsRegistry)
	if !ok {
		t.Errorf("%s: stats registry is %T, expected a finagle registry", tag, statsRegistry)
		return false
	}
	asJson := reg.MarshalAll()

	passed := true
	var msg bytes.Buffer
	for key, rule := range contains {
		got := asJson[key]
		if rule.Checker.checker(got, rule.Value) {
			continue
		}
		passed = false
		if rule.Checker.name == DoesNotExistTest.name {
			fmt.Fprintf(&msg, "%s: found stat entry when there should not be one\n", key)
		} else {
			fmt.Fprintf(&msg, "%s: got %v, expected to pass %s with %v\n", key, got, rule.Checker.name, rule.Value)
		}
	}
	if !passed {
		pretty, _ := reg.MarshalJSONPretty()
		t.Errorf("%s: stats registry error:\n%s%s", tag, msg.String(), pretty)
	}
	return passed
}

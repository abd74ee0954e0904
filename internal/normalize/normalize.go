package normalize

// Package normalize maps the heterogeneous field-naming conventions of the
// reports API into the canonical view models in internal/domain/model.
// Alias resolution is table-driven: each canonical field owns an ordered
// list of JMESPath expressions, the first expression yielding a non-empty
// value wins, and a documented default applies when every alias is absent.
// The same tables serve list and detail paths so identical underlying data
// never renders differently depending on entry point. Every function here
// is total: bad input degrades to defaults, never to an error.

import (
	"strconv"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"

	"github.com/medisys/reports-ui-api/internal/ports"
)

// Evaluator abstracts JMESPath operations for testability.
type Evaluator interface {
	Validate(expr string) error
	Evaluate(expr string, data any) (any, error)
}

// jmespathLibEvaluator implements Evaluator using go-jmespath.
type jmespathLibEvaluator struct{}

func (j jmespathLibEvaluator) Validate(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return nil
	}
	_, err := jmespath.Compile(expr)
	return err
}

func (j jmespathLibEvaluator) Evaluate(expr string, data any) (any, error) {
	return jmespath.Search(expr, data)
}

// Normalizer resolves raw API records into canonical projections.
type Normalizer struct {
	eval Evaluator
}

// New constructs a Normalizer backed by the go-jmespath evaluator.
func New() *Normalizer {
	return &Normalizer{eval: jmespathLibEvaluator{}}
}

// NewWithEvaluator constructs a Normalizer with a custom evaluator.
func NewWithEvaluator(eval Evaluator) *Normalizer {
	if eval == nil {
		eval = jmespathLibEvaluator{}
	}
	return &Normalizer{eval: eval}
}

// ValidateTables compiles every alias expression in the tables.
// Exists so a test can pin the tables to valid JMESPath.
func (n *Normalizer) ValidateTables() error {
	for _, rules := range [][]fieldRule{reportRules, userRules, dashboardRules} {
		for _, r := range rules {
			for _, expr := range r.exprs {
				if err := n.eval.Validate(expr); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// resolve returns the first non-empty value among the rule's alias
// expressions, or the rule's default. Evaluation errors on one alias do not
// disturb the others; a record shaped badly for every alias hits the default.
func (n *Normalizer) resolve(rec ports.RawRecord, r fieldRule) string {
	for _, expr := range r.exprs {
		v, err := n.eval.Evaluate(expr, map[string]any(rec))
		if err != nil {
			continue
		}
		if s := asString(v); s != "" {
			return s
		}
	}
	return r.def
}

// resolveInt resolves a numeric field, defaulting to zero.
func (n *Normalizer) resolveInt(rec ports.RawRecord, r fieldRule) int {
	s := n.resolve(rec, r)
	if s == "" {
		return 0
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return i
}

// asString coerces a resolved JMESPath value into its display string.
// JSON numbers arrive as float64; integral values must not render as "7.0".
func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}

package querydoc

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cdtdelta/typedsql/query"
)

// Scalar is a literal value. A mapping {param: name} is a placeholder;
// anything else decodes to its natural Go value.
type Scalar struct {
	Value any
}

func (s *Scalar) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.MappingNode {
		var p struct {
			Param *string `yaml:"param"`
		}
		if err := n.Decode(&p); err != nil {
			return err
		}
		if p.Param == nil {
			return fmt.Errorf("line %d: only {param: name} mappings are allowed as values", n.Line)
		}
		s.Value = query.NewPlaceholder(*p.Param)
		return nil
	}
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: value must be a scalar", n.Line)
	}
	return n.Decode(&s.Value)
}

// Range is the operand of a between node.
type Range struct {
	Column string `yaml:"column"`
	Low    Scalar `yaml:"low"`
	High   Scalar `yaml:"high"`
}

// List is the operand of in and not_in nodes.
type List struct {
	Column string   `yaml:"column"`
	Values []Scalar `yaml:"values"`
}

// Pattern is the operand of a like node.
type Pattern struct {
	Column  string `yaml:"column"`
	Pattern string `yaml:"pattern"`
}

// Cond is one where node. Exactly one form is set.
type Cond struct {
	Column string `yaml:"column"`
	Op     string `yaml:"op"`
	Value  Scalar `yaml:"value"`

	Between   *Range   `yaml:"between"`
	In        *List    `yaml:"in"`
	NotIn     *List    `yaml:"not_in"`
	Like      *Pattern `yaml:"like"`
	IsNull    string   `yaml:"is_null"`
	IsNotNull string   `yaml:"is_not_null"`
	Raw       string   `yaml:"raw"`
	Exists    string   `yaml:"exists"`
	All       []Cond   `yaml:"all"`
	Any       []Cond   `yaml:"any"`
	Not       *Cond    `yaml:"not"`
}

var opAliases = map[string]query.Operator{
	"eq": query.Equal, "ne": query.NotEqual,
	"lt": query.Less, "le": query.LessOrEqual,
	"gt": query.Greater, "ge": query.GreaterOrEqual,
	"like": query.Like, "not_like": query.NotLike,
}

func operator(op string) query.Operator {
	if o, ok := opAliases[strings.ToLower(op)]; ok {
		return o
	}
	return query.Operator(strings.ToUpper(op))
}

// apply adds the node to b. Top-level IN lists go through the builder so
// its MaxInValues applies.
func (c *Cond) apply(b *query.Builder) error {
	switch {
	case c.In != nil:
		b.WhereIn(c.In.Column, scalars(c.In.Values)...)
		return nil
	case c.NotIn != nil:
		b.WhereNotIn(c.NotIn.Column, scalars(c.NotIn.Values)...)
		return nil
	case c.Column != "":
		b.WhereOp(c.Column, operator(c.Op), c.Value.Value)
		return nil
	case c.Exists != "":
		b.WhereExists(c.Exists)
		return nil
	}
	cond, err := c.Compile()
	if err != nil {
		return err
	}
	b.Where(cond)
	return nil
}

// Compile converts the node into a Condition.
func (c *Cond) Compile() (query.Condition, error) {
	switch {
	case c.Column != "":
		if c.Op == "" {
			return query.Condition{}, fmt.Errorf("%w: column %q has no op", ErrBadCondition, c.Column)
		}
		cond := query.Col(c.Column).Compare(operator(c.Op), c.Value.Value)
		if !cond.IsValid() {
			return cond, fmt.Errorf("%w: unknown operator %q", ErrBadCondition, c.Op)
		}
		return cond, nil
	case c.Between != nil:
		return query.Col(c.Between.Column).Between(c.Between.Low.Value, c.Between.High.Value), nil
	case c.In != nil:
		return query.Col(c.In.Column).In(scalars(c.In.Values)...), nil
	case c.NotIn != nil:
		return query.Col(c.NotIn.Column).NotIn(scalars(c.NotIn.Values)...), nil
	case c.Like != nil:
		return query.Col(c.Like.Column).Like(c.Like.Pattern), nil
	case c.IsNull != "":
		return query.Col(c.IsNull).IsNull(), nil
	case c.IsNotNull != "":
		return query.Col(c.IsNotNull).IsNotNull(), nil
	case c.Raw != "":
		return query.Raw(c.Raw), nil
	case c.Exists != "":
		return query.Raw("EXISTS (" + c.Exists + ")"), nil
	case len(c.All) > 0:
		return compileAll(c.All, query.AND)
	case len(c.Any) > 0:
		return compileAll(c.Any, query.OR)
	case c.Not != nil:
		inner, err := c.Not.Compile()
		if err != nil {
			return inner, err
		}
		return inner.Not(), nil
	}
	return query.Condition{}, fmt.Errorf("%w: empty node", ErrBadCondition)
}

func compileAll(nodes []Cond, logic query.Logic) (query.Condition, error) {
	conds := make([]query.Condition, 0, len(nodes))
	for i := range nodes {
		c, err := nodes[i].Compile()
		if err != nil {
			return c, err
		}
		conds = append(conds, c)
	}
	return query.Combine(conds, logic), nil
}

func scalars(ss []Scalar) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s.Value
	}
	return out
}

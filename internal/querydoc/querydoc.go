// Package querydoc describes statements as YAML documents and replays them
// onto a query.Builder.
//
//	name: active users
//	select: [id, name]
//	from: users
//	where:
//	  - column: active
//	    op: "="
//	    value: true
//	order_by:
//	  - column: name
//	limit: 10
package querydoc

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cdtdelta/typedsql/query"
)

var (
	// ErrUnknownStatement is returned when a document names no statement
	// kind, or more than one.
	ErrUnknownStatement = errors.New("document must name exactly one statement")

	// ErrBadCondition is returned for a where node that cannot be compiled.
	ErrBadCondition = errors.New("malformed condition")
)

// Document is one statement.
type Document struct {
	Name string `yaml:"name"`

	Select          *yaml.Node `yaml:"select"`
	Insert          string     `yaml:"insert"`
	InsertOrReplace string     `yaml:"insert_or_replace"`
	Update          string     `yaml:"update"`
	Delete          string     `yaml:"delete"`
	Truncate        string     `yaml:"truncate"`

	From     string      `yaml:"from"`
	Distinct bool        `yaml:"distinct"`
	Joins    []Join      `yaml:"joins"`
	Where    []Cond      `yaml:"where"`
	GroupBy  []string    `yaml:"group_by"`
	Having   string      `yaml:"having"`
	OrderBy  []OrderTerm `yaml:"order_by"`
	Limit    *int        `yaml:"limit"`
	Offset   *int        `yaml:"offset"`

	// Values and Set are mappings; their key order is kept.
	Values yaml.Node `yaml:"values"`
	Set    yaml.Node `yaml:"set"`
}

// Join is a join clause.
type Join struct {
	Kind  string `yaml:"kind"` // inner (default), left, right, full, cross
	Table string `yaml:"table"`
	On    string `yaml:"on"`
}

// OrderTerm is one ORDER BY column.
type OrderTerm struct {
	Column string `yaml:"column"`
	Desc   bool   `yaml:"desc"`
}

// SelectItem is a select-list entry: either a bare column name or a
// mapping with column, agg and as.
type SelectItem struct {
	Column string `yaml:"column"`
	Agg    string `yaml:"agg"`
	As     string `yaml:"as"`
}

func (s *SelectItem) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		s.Column = n.Value
		return nil
	}
	type plain SelectItem
	return n.Decode((*plain)(s))
}

// Decode reads every document of a YAML stream.
func Decode(r io.Reader) ([]Document, error) {
	dec := yaml.NewDecoder(r)
	var docs []Document
	for {
		var d Document
		err := dec.Decode(&d)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding document %d: %w", len(docs)+1, err)
		}
		docs = append(docs, d)
	}
	return docs, nil
}

// Kind returns the statement kind the document describes.
func (d *Document) Kind() (query.Statement, error) {
	var kinds []query.Statement
	if d.Select != nil {
		kinds = append(kinds, query.SelectStatement)
	}
	if d.Insert != "" {
		kinds = append(kinds, query.InsertStatement)
	}
	if d.InsertOrReplace != "" {
		kinds = append(kinds, query.InsertOrReplaceStatement)
	}
	if d.Update != "" {
		kinds = append(kinds, query.UpdateStatement)
	}
	if d.Delete != "" {
		kinds = append(kinds, query.DeleteStatement)
	}
	if d.Truncate != "" {
		kinds = append(kinds, query.TruncateStatement)
	}
	if len(kinds) != 1 {
		return 0, ErrUnknownStatement
	}
	return kinds[0], nil
}

// Apply replays the document onto b. It returns a document error, or else
// the builder's last error.
func (d *Document) Apply(b *query.Builder) error {
	kind, err := d.Kind()
	if err != nil {
		return err
	}

	switch kind {
	case query.SelectStatement:
		items, err := d.selectItems()
		if err != nil {
			return err
		}
		b.Select(items...)
		if d.From != "" {
			b.From(d.From)
		}
	case query.InsertStatement:
		b.Insert(d.Insert)
	case query.InsertOrReplaceStatement:
		b.InsertOrReplace(d.InsertOrReplace)
	case query.UpdateStatement:
		b.Update(d.Update)
	case query.DeleteStatement:
		b.DeleteFrom(d.Delete)
	case query.TruncateStatement:
		b.Truncate(d.Truncate)
	}

	if d.Distinct {
		b.Distinct()
	}
	for _, j := range d.Joins {
		if err := applyJoin(b, j); err != nil {
			return err
		}
	}
	for i := range d.Where {
		if err := d.Where[i].apply(b); err != nil {
			return err
		}
	}
	if len(d.GroupBy) > 0 {
		cols := make([]any, len(d.GroupBy))
		for i, c := range d.GroupBy {
			cols[i] = c
		}
		b.GroupBy(cols...)
	}
	if d.Having != "" {
		b.Having(d.Having)
	}
	for _, o := range d.OrderBy {
		b.OrderBy(o.Column, !o.Desc)
	}
	if d.Limit != nil {
		b.Limit(*d.Limit)
	}
	if d.Offset != nil {
		b.Offset(*d.Offset)
	}

	if err := applyPairs(d.Values, b.Value); err != nil {
		return fmt.Errorf("values: %w", err)
	}
	if err := applyPairs(d.Set, b.Set); err != nil {
		return fmt.Errorf("set: %w", err)
	}

	return b.LastError()
}

// Columns returns the columns the where nodes refer to, deduplicated, in
// order of first use. Nodes that do not compile are skipped.
func (d *Document) Columns() []string {
	seen := make(map[string]bool)
	var cols []string
	for i := range d.Where {
		c, err := d.Where[i].Compile()
		if err != nil {
			continue
		}
		for _, name := range c.Columns() {
			if !seen[name] {
				seen[name] = true
				cols = append(cols, name)
			}
		}
	}
	return cols
}

// Builder applies the document to a new builder configured with cfg.
func (d *Document) Builder(cfg query.Config) (*query.Builder, error) {
	b := query.NewWithConfig(cfg)
	if err := d.Apply(b); err != nil {
		return nil, err
	}
	return b, nil
}

func (d *Document) selectItems() ([]any, error) {
	var items []SelectItem
	switch d.Select.Kind {
	case yaml.ScalarNode:
		if d.Select.Value != "" {
			items = []SelectItem{{Column: d.Select.Value}}
		}
	default:
		if err := d.Select.Decode(&items); err != nil {
			return nil, fmt.Errorf("select: %w", err)
		}
	}

	out := make([]any, 0, len(items))
	for _, it := range items {
		ref, err := it.ref()
		if err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	return out, nil
}

func (it SelectItem) ref() (query.ColumnRef, error) {
	var r query.ColumnRef
	switch strings.ToLower(it.Agg) {
	case "":
		r = query.NewRef(it.Column)
	case "count":
		r = query.Count(it.Column)
	case "sum":
		r = query.Sum(it.Column)
	case "avg":
		r = query.Avg(it.Column)
	case "min":
		r = query.Min(it.Column)
	case "max":
		r = query.Max(it.Column)
	case "group_concat":
		r = query.GroupConcat(it.Column)
	default:
		return r, fmt.Errorf("select: unknown aggregate %q", it.Agg)
	}
	if it.As != "" {
		r = r.As(it.As)
	}
	return r, nil
}

func applyJoin(b *query.Builder, j Join) error {
	switch strings.ToLower(j.Kind) {
	case "", "inner":
		b.InnerJoin(j.Table, j.On)
	case "left":
		b.LeftJoin(j.Table, j.On)
	case "right":
		b.RightJoin(j.Table, j.On)
	case "full":
		b.FullJoin(j.Table, j.On)
	case "cross":
		b.CrossJoin(j.Table)
	default:
		return fmt.Errorf("unknown join kind %q", j.Kind)
	}
	return nil
}

// applyPairs feeds each key/value of a mapping node to add, in order.
func applyPairs(n yaml.Node, add func(col any, v any) *query.Builder) error {
	if n.Kind == 0 {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("expected a mapping, got %s", n.ShortTag())
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		var v Scalar
		if err := n.Content[i+1].Decode(&v); err != nil {
			return fmt.Errorf("column %s: %w", n.Content[i].Value, err)
		}
		add(n.Content[i].Value, v.Value)
	}
	return nil
}

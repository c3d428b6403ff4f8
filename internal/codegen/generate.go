package codegen

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"
)

const queryPkg = "github.com/cdtdelta/typedsql/query"

var goTypes = map[string]func() *jen.Statement{
	"int":     jen.Int,
	"int64":   jen.Int64,
	"float64": jen.Float64,
	"bool":    jen.Bool,
	"string":  jen.String,
	"any":     jen.Any,
	"time":    func() *jen.Statement { return jen.Qual("time", "Time") },
	"uuid":    func() *jen.Statement { return jen.Qual("github.com/google/uuid", "UUID") },
	"decimal": func() *jen.Statement { return jen.Qual("github.com/shopspring/decimal", "Decimal") },
}

// Generate renders the Go source for s. s is validated first.
func Generate(s *Schema) ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	f := jen.NewFile(s.Package)
	f.HeaderComment("Code generated by sqlqb gen. DO NOT EDIT.")
	f.ImportName(queryPkg, "query")

	for _, t := range s.Tables {
		genTable(f, t)
	}

	f.Comment("Tables lists every generated table.")
	f.Var().Id("Tables").Op("=").Index().Qual(queryPkg, "Table").ValuesFunc(func(g *jen.Group) {
		for _, t := range s.Tables {
			g.Id(GoName(t.Name)).Dot("Table")
		}
	})

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", s.Package, err)
	}
	return buf.Bytes(), nil
}

func genTable(f *jen.File, t Table) {
	name := GoName(t.Name)
	typeName := name + "Table"
	ctor := "new" + typeName

	f.Commentf("%s describes the %s table.", typeName, t.Name)
	f.Type().Id(typeName).StructFunc(func(g *jen.Group) {
		g.Qual(queryPkg, "Table")
		for _, c := range t.Columns {
			g.Id(GoName(c.Name)).Qual(queryPkg, "Column").Types(columnType(c))
		}
	})

	table := jen.Qual(queryPkg, "NewTable").Call(jen.Lit(t.Name))
	if t.Alias != "" {
		table = jen.Qual(queryPkg, "AliasedTable").Call(jen.Lit(t.Name), jen.Lit(t.Alias))
	}
	f.Commentf("%s is the %s table.", name, t.Name)
	f.Var().Id(name).Op("=").Id(ctor).Call(table)

	f.Func().Id(ctor).Params(jen.Id("t").Qual(queryPkg, "Table")).Id(typeName).Block(
		jen.Return(jen.Id(typeName).Values(jen.DictFunc(func(d jen.Dict) {
			d[jen.Id("Table")] = jen.Id("t")
			for _, c := range t.Columns {
				d[jen.Id(GoName(c.Name))] = jen.Qual(queryPkg, "NewColumn").Types(columnType(c)).Call(jen.Id("t"), jen.Lit(c.Name))
			}
		}))),
	)

	f.Comment("As returns the table under alias with every column qualified by it.")
	f.Func().Params(jen.Id(typeName)).Id("As").Params(jen.Id("alias").String()).Id(typeName).Block(
		jen.Return(jen.Id(ctor).Call(jen.Qual(queryPkg, "AliasedTable").Call(jen.Lit(t.Name), jen.Id("alias")))),
	)
}

func columnType(c Column) jen.Code {
	return goTypes[strings.ToLower(c.Type)]()
}

package domain

import (
	"go/ast"
	"go/token"
	"strings"

	m "github.com/docrun-dev/docrun/internal/model"
)

// ExtractModule walks a loaded module's declarations and builds an example
// group for every documentation comment containing example syntax. It also
// fills the module's member index so later lookups are plain map reads: the
// index records every documented-or-not top-level member and method, mapped
// to the positions of its non-empty groups.
func ExtractModule(mod *m.Module) {
	mod.Index = make(map[string][]int)

	addMember := func(member string) {
		if _, ok := mod.Index[member]; !ok {
			mod.Index[member] = nil
		}
	}

	addGroup := func(member string, doc *ast.CommentGroup) {
		if member != "" {
			addMember(member)
		}

		if doc == nil {
			return
		}

		group, ok := groupFromDoc(mod, member, doc)
		if !ok {
			return
		}

		mod.Groups = append(mod.Groups, group)
		if member != "" {
			mod.Index[member] = append(mod.Index[member], len(mod.Groups)-1)
		}
	}

	addGroup("", mod.File.Doc)

	for _, decl := range mod.File.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			addGroup(memberPath(d), d.Doc)

		case *ast.GenDecl:
			for _, spec := range d.Specs {
				switch s := spec.(type) {
				case *ast.TypeSpec:
					doc := s.Doc
					if doc == nil && len(d.Specs) == 1 {
						doc = d.Doc
					}

					addGroup(s.Name.Name, doc)
				case *ast.ValueSpec:
					if len(s.Names) == 0 {
						continue
					}

					doc := s.Doc
					if doc == nil && len(d.Specs) == 1 {
						doc = d.Doc
					}

					addGroup(s.Names[0].Name, doc)
				}
			}
		}
	}
}

// ExtractText parses one block of raw text directly. The second return is
// false when the text contains no examples.
func ExtractText(name string, path m.Path, text string) (m.ExampleGroup, bool) {
	examples := parseExamples(textLines(text), 1)
	if len(examples) == 0 {
		return m.ExampleGroup{}, false
	}

	return m.ExampleGroup{
		Name:      name,
		Filename:  path,
		StartLine: 1,
		Examples:  examples,
	}, true
}

// groupFromDoc builds a group from one doc comment, keeping the absolute
// file line of every snippet so reported locations land on the prompt line.
func groupFromDoc(mod *m.Module, member string, doc *ast.CommentGroup) (m.ExampleGroup, bool) {
	start := mod.FileSet.Position(doc.Pos()).Line

	examples := parseExamples(commentLines(mod.FileSet, doc), start)
	if len(examples) == 0 {
		return m.ExampleGroup{}, false
	}

	name := mod.Name
	if member != "" {
		name = mod.Name + "." + member
	}

	return m.ExampleGroup{
		Name:      name,
		Filename:  mod.Path,
		StartLine: start,
		Examples:  examples,
	}, true
}

// commentLines flattens a comment group into docLines, preserving the file
// line of every comment line and stripping comment markers.
func commentLines(fset *token.FileSet, doc *ast.CommentGroup) []docLine {
	var lines []docLine

	for _, c := range doc.List {
		start := fset.Position(c.Pos()).Line

		if strings.HasPrefix(c.Text, "//") {
			text := strings.TrimPrefix(strings.TrimPrefix(c.Text, "//"), " ")
			lines = append(lines, docLine{line: start, text: text})

			continue
		}

		body := strings.TrimSuffix(strings.TrimPrefix(c.Text, "/*"), "*/")
		for i, l := range strings.Split(body, "\n") {
			lines = append(lines, docLine{line: start + i, text: l})
		}
	}

	return lines
}

// memberPath names a function "Func" or a method "Recv.Func".
func memberPath(d *ast.FuncDecl) string {
	if d.Recv == nil || len(d.Recv.List) == 0 {
		return d.Name.Name
	}

	return receiverName(d.Recv.List[0].Type) + "." + d.Name.Name
}

func receiverName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return receiverName(t.X)
	case *ast.IndexExpr:
		return receiverName(t.X)
	case *ast.IndexListExpr:
		return receiverName(t.X)
	case *ast.Ident:
		return t.Name
	}

	return ""
}

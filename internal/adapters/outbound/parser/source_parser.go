package parser

import (
	"fmt"
	"go/ast"
	goparser "go/parser"
	"go/token"
	"os"
	"strings"

	"github.com/specgate/specgate/internal/adapters/outbound/scanner"
	"github.com/specgate/specgate/internal/domain"
)

// SourceParser implements domain.SourceAnalyzer. Go files go through
// go/ast; other languages get text-level analysis, which is enough for
// imports, function stubs and route declarations.
type SourceParser struct{}

func New() *SourceParser {
	return &SourceParser{}
}

func (p *SourceParser) AnalyzeFile(filePath string) (*domain.SourceUnit, error) {
	language := scanner.LanguageOf(filePath)
	if language == "go" {
		return p.analyzeGo(filePath)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	unit := &domain.SourceUnit{Path: filePath, Language: language}
	switch language {
	case "python":
		analyzePython(unit, string(data))
	case "javascript", "typescript":
		analyzeJS(unit, string(data))
	}
	return unit, nil
}

func (p *SourceParser) analyzeGo(filePath string) (*domain.SourceUnit, error) {
	fset := token.NewFileSet()
	file, err := goparser.ParseFile(fset, filePath, nil, goparser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filePath, err)
	}

	unit := &domain.SourceUnit{
		Path:     filePath,
		Language: "go",
		Package:  file.Name.Name,
	}

	for _, imp := range file.Imports {
		unit.Imports = append(unit.Imports, domain.ImportRef{
			Path: strings.Trim(imp.Path.Value, `"`),
			Line: fset.Position(imp.Pos()).Line,
		})
	}

	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Body == nil {
			continue
		}
		fd := domain.FunctionDecl{
			Name:           fn.Name.Name,
			Line:           fset.Position(fn.Pos()).Line,
			BodyStatements: len(fn.Body.List),
		}
		if fn.Recv != nil && len(fn.Recv.List) > 0 {
			fd.Receiver = receiverType(fn.Recv.List[0].Type)
		}
		if fd.BodyStatements == 0 && hasCommentInside(file, fset, fn.Body) {
			fd.OnlyPlaceholder = true
		}
		if fd.BodyStatements == 1 {
			fd.OnlyTrivialReturn = isTrivialReturn(fn.Body.List[0])
		}
		unit.Functions = append(unit.Functions, fd)
	}

	return unit, nil
}

func receiverType(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return "*" + receiverType(t.X)
	case *ast.Ident:
		return t.Name
	case *ast.IndexExpr:
		return receiverType(t.X)
	default:
		return ""
	}
}

// isTrivialReturn recognizes `return`, `return nil`, and returns of bare
// literals (0, "", false): the bodies code generators emit as filler.
func isTrivialReturn(stmt ast.Stmt) bool {
	ret, ok := stmt.(*ast.ReturnStmt)
	if !ok {
		return false
	}
	for _, res := range ret.Results {
		switch r := res.(type) {
		case *ast.BasicLit:
		case *ast.Ident:
			if r.Name != "nil" && r.Name != "true" && r.Name != "false" {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func hasCommentInside(file *ast.File, fset *token.FileSet, body *ast.BlockStmt) bool {
	for _, cg := range file.Comments {
		if cg.Pos() > body.Lbrace && cg.End() < body.Rbrace {
			return true
		}
	}
	return false
}

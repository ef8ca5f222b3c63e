package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/cdilga/ladder-logic-editor-sub000/internal/ast"
	"github.com/cdilga/ladder-logic-editor-sub000/internal/errors"
	"github.com/cdilga/ladder-logic-editor-sub000/internal/parser"
	"github.com/spf13/cobra"
)

var (
	parseExpression bool
	parseDumpAST    bool
	parseContext    int
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse ST source and display the AST",
	Long: `Parse a Structured Text program and display its Abstract Syntax Tree.

If no file is provided, reads from stdin.
Use -e to parse a single expression-bearing snippet from the command line.
Use --dump-ast to show the tree structure instead of the reconstructed source.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolVarP(&parseExpression, "expression", "e", false, "parse a snippet from the command line")
	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", false, "dump the tree structure")
	parseCmd.Flags().IntVar(&parseContext, "context", 0, "lines of source context to show around each parse error")
}

func runParse(_ *cobra.Command, args []string) error {
	var input, filename string

	switch {
	case parseExpression:
		if len(args) == 0 {
			return fmt.Errorf("no snippet provided")
		}
		input, filename = args[0], "<eval>"
	case len(args) > 0:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("error reading file: %w", err)
		}
		input, filename = string(data), args[0]
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("error reading stdin: %w", err)
		}
		input, filename = string(data), "<stdin>"
	}

	program := parser.Parse(input)

	if len(program.Errors) > 0 {
		compilerErrors := errors.ToCompilerErrors(program.Errors, input, filename)
		if parseContext > 0 {
			fmt.Fprintln(os.Stderr, errors.FormatErrorsWithContext(compilerErrors, parseContext, false))
		} else {
			fmt.Fprintln(os.Stderr, errors.FormatErrors(compilerErrors, false))
		}
		return fmt.Errorf("parsing produced %d error(s)", len(program.Errors))
	}

	if parseDumpAST {
		fmt.Println("Abstract Syntax Tree:")
		fmt.Println("=====================")
		for _, decl := range program.Declarations {
			dumpASTNode(decl, 0)
		}
		for _, stmt := range program.Statements {
			dumpASTNode(stmt, 0)
		}
	} else {
		fmt.Println(program.String())
	}

	return nil
}

func dumpASTNode(node any, indent int) {
	indentStr := ""
	for i := 0; i < indent; i++ {
		indentStr += "  "
	}

	switch n := node.(type) {
	case *ast.VariableBlock:
		fmt.Printf("%sVariableBlock %s (%d decls)\n", indentStr, n.Qualifier, len(n.Declarations))
		for _, v := range n.Declarations {
			dumpASTNode(v, indent+1)
		}
	case *ast.VariableDecl:
		fmt.Printf("%sVariableDecl: %s : %s\n", indentStr, joinNames(n.Names), n.Type.String())
	case *ast.TypeDefinition:
		fmt.Printf("%sTypeDefinition: %s\n", indentStr, n.Name)
	case *ast.Assignment:
		fmt.Printf("%sAssignment: %s\n", indentStr, n.Left.String())
		dumpASTNode(n.Value, indent+1)
	case *ast.IfStatement:
		fmt.Printf("%sIfStatement (%d elsif, else=%v)\n", indentStr, len(n.Elsifs), n.Else != nil)
		dumpASTNode(n.Condition, indent+1)
	case *ast.CaseStatement:
		fmt.Printf("%sCaseStatement (%d branches)\n", indentStr, len(n.Branches))
	case *ast.ForLoop:
		fmt.Printf("%sForLoop: %s\n", indentStr, n.Variable)
	case *ast.WhileLoop:
		fmt.Printf("%sWhileLoop\n", indentStr)
	case *ast.RepeatLoop:
		fmt.Printf("%sRepeatLoop\n", indentStr)
	case *ast.FunctionBlockCall:
		fmt.Printf("%sFunctionBlockCall: %s (%d args)\n", indentStr, n.Instance, len(n.Args))
	case *ast.BinaryExpr:
		fmt.Printf("%sBinaryExpr (%s)\n", indentStr, n.Operator)
		dumpASTNode(n.Left, indent+1)
		dumpASTNode(n.Right, indent+1)
	case *ast.UnaryExpr:
		fmt.Printf("%sUnaryExpr\n", indentStr)
		dumpASTNode(n.Operand, indent+1)
	case *ast.Literal:
		fmt.Printf("%sLiteral: %s (%v)\n", indentStr, n.Raw, n.Kind)
	case *ast.Variable:
		fmt.Printf("%sVariable: %s\n", indentStr, n.String())
	default:
		fmt.Printf("%s%T: %s\n", indentStr, node, node)
	}
}

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}

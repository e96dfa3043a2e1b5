// Package yul holds the typed AST of the Yul intermediate representation as
// emitted by solc in its JSON AST output, and the decoder that builds it.
package yul

// Node kind tags as they appear in the "nodeType" field of the JSON tree.
const (
	KindObject              = "YulObject"
	KindCode                = "YulCode"
	KindData                = "YulData"
	KindBlock               = "YulBlock"
	KindFunctionDefinition  = "YulFunctionDefinition"
	KindVariableDeclaration = "YulVariableDeclaration"
	KindAssignment          = "YulAssignment"
	KindExpressionStatement = "YulExpressionStatement"
	KindIf                  = "YulIf"
	KindSwitch              = "YulSwitch"
	KindCase                = "YulCase"
	KindForLoop             = "YulForLoop"
	KindBreak               = "YulBreak"
	KindContinue            = "YulContinue"
	KindLeave               = "YulLeave"
	KindFunctionCall        = "YulFunctionCall"
	KindIdentifier          = "YulIdentifier"
	KindLiteral             = "YulLiteral"
	KindTypedName           = "YulTypedName"
)

// Node is implemented by every AST node. Kind returns the IR tag of the node;
// unsupported nodes return the tag they were decoded from.
type Node interface {
	Kind() string
}

// --- Objects ---

// ObjectNode is an entry of an object's sub-object list.
type ObjectNode interface {
	Node
	objectNode()
}

// Object is a named unit combining one code body and nested sub-objects.
type Object struct {
	Name       string
	Code       *Code
	SubObjects []ObjectNode
	Src        Location
}

func (*Object) Kind() string { return KindObject }
func (*Object) objectNode()  {}

// Code wraps the top-level block of an object.
type Code struct {
	Block *Block
}

func (*Code) Kind() string { return KindCode }

// Data is a raw data section. It carries no executable semantics.
type Data struct {
	Name string
}

func (*Data) Kind() string { return KindData }
func (*Data) objectNode()  {}

// UnsupportedObject stands in for an object-level node of unknown kind.
type UnsupportedObject struct {
	Tag string
	Src Location
}

func (o *UnsupportedObject) Kind() string { return o.Tag }
func (*UnsupportedObject) objectNode()    {}

// --- Statements ---

// Stmt is the interface for all statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Block is an ordered sequence of statements opening a new scope.
type Block struct {
	Statements []Stmt
	Src        Location
}

func (*Block) Kind() string { return KindBlock }
func (*Block) stmtNode()    {}

// IsEmpty reports whether the block has no statements.
func (b *Block) IsEmpty() bool {
	return b == nil || len(b.Statements) == 0
}

// FunctionDefinition declares a function. It only appears as a direct
// statement of a top-level block.
type FunctionDefinition struct {
	Name            string
	Parameters      []string
	ReturnVariables []string
	Body            *Block
	Src             Location
}

func (*FunctionDefinition) Kind() string { return KindFunctionDefinition }
func (*FunctionDefinition) stmtNode()    {}

// VariableDeclaration binds new names. Value is nil when there is no
// initializer.
type VariableDeclaration struct {
	Variables []string
	Value     Expr
	Src       Location
}

func (*VariableDeclaration) Kind() string { return KindVariableDeclaration }
func (*VariableDeclaration) stmtNode()    {}

// Assignment updates existing bindings from one value expression.
type Assignment struct {
	VariableNames []string
	Value         Expr
	Src           Location
}

func (*Assignment) Kind() string { return KindAssignment }
func (*Assignment) stmtNode()    {}

// ExpressionStatement evaluates an expression for its effect.
type ExpressionStatement struct {
	Expression Expr
	Src        Location
}

func (*ExpressionStatement) Kind() string { return KindExpressionStatement }
func (*ExpressionStatement) stmtNode()    {}

// If runs Body when Condition is nonzero.
type If struct {
	Condition Expr
	Body      *Block
	Src       Location
}

func (*If) Kind() string { return KindIf }
func (*If) stmtNode()    {}

// Switch dispatches on the value of Expression.
type Switch struct {
	Expression Expr
	Cases      []*Case
	Src        Location
}

func (*Switch) Kind() string { return KindSwitch }
func (*Switch) stmtNode()    {}

// Default returns the default case, or nil if there is none.
func (s *Switch) Default() *Case {
	for _, c := range s.Cases {
		if c.IsDefault() {
			return c
		}
	}
	return nil
}

// Case is one arm of a switch. Value is nil for the default case.
// Unsupported holds a case value of an unknown node kind; Value is then nil.
type Case struct {
	Value       *Literal
	Unsupported *UnsupportedExpr
	Body        *Block
	Src         Location
}

func (*Case) Kind() string { return KindCase }

// IsDefault reports whether c is the default case.
func (c *Case) IsDefault() bool { return c.Value == nil && c.Unsupported == nil }

// ForLoop is `for { Pre } Condition { Post } { Body }`.
type ForLoop struct {
	Pre       *Block
	Condition Expr
	Post      *Block
	Body      *Block
	Src       Location
}

func (*ForLoop) Kind() string { return KindForLoop }
func (*ForLoop) stmtNode()    {}

// Break exits the innermost loop.
type Break struct {
	Src Location
}

func (*Break) Kind() string { return KindBreak }
func (*Break) stmtNode()    {}

// Continue jumps to the post block of the innermost loop.
type Continue struct {
	Src Location
}

func (*Continue) Kind() string { return KindContinue }
func (*Continue) stmtNode()    {}

// Leave returns from the enclosing function with the current values of its
// return variables.
type Leave struct {
	Src Location
}

func (*Leave) Kind() string { return KindLeave }
func (*Leave) stmtNode()    {}

// UnsupportedStmt stands in for a statement of unknown kind.
type UnsupportedStmt struct {
	Tag string
	Src Location
}

func (s *UnsupportedStmt) Kind() string { return s.Tag }
func (*UnsupportedStmt) stmtNode()      {}

// --- Expressions ---

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	exprNode()
}

// FunctionCall calls a user function or a builtin.
type FunctionCall struct {
	FunctionName string
	Arguments    []Expr
	Src          Location
}

func (*FunctionCall) Kind() string { return KindFunctionCall }
func (*FunctionCall) exprNode()    {}

// Identifier references a variable.
type Identifier struct {
	Name string
	Src  Location
}

func (*Identifier) Kind() string { return KindIdentifier }
func (*Identifier) exprNode()    {}

// LiteralKind is the kind of a literal.
type LiteralKind string

const (
	LiteralNumber LiteralKind = "number"
	LiteralString LiteralKind = "string"
	LiteralBool   LiteralKind = "bool"
)

// Literal is a constant. HexValue is set by solc for string literals and
// holds the hex encoding of their bytes.
type Literal struct {
	LiteralKind LiteralKind
	Value       string
	HexValue    string
	Src         Location
}

func (*Literal) Kind() string { return KindLiteral }
func (*Literal) exprNode()    {}

// UnsupportedExpr stands in for an expression of unknown kind.
type UnsupportedExpr struct {
	Tag string
	Src Location
}

func (e *UnsupportedExpr) Kind() string { return e.Tag }
func (*UnsupportedExpr) exprNode()      {}

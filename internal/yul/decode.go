package yul

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformed is returned when the input is not a Yul AST document at all.
// Unknown node kinds inside a well-formed document are not errors; they
// decode to the Unsupported* variants.
var ErrMalformed = errors.New("malformed Yul AST document")

type header struct {
	NodeType string `json:"nodeType"`
	Src      string `json:"src"`
}

type rawObject struct {
	Name       string            `json:"name"`
	Code       json.RawMessage   `json:"code"`
	SubObjects []json.RawMessage `json:"subObjects"`
}

type rawTypedName struct {
	Name string `json:"name"`
}

type rawFunctionDefinition struct {
	Name            string          `json:"name"`
	Parameters      []rawTypedName  `json:"parameters"`
	ReturnVariables []rawTypedName  `json:"returnVariables"`
	Body            json.RawMessage `json:"body"`
}

type rawCase struct {
	Value json.RawMessage `json:"value"`
	Body  json.RawMessage `json:"body"`
}

type rawLiteral struct {
	Kind     string `json:"kind"`
	Value    string `json:"value"`
	HexValue string `json:"hexValue"`
}

// Decode parses a JSON Yul AST document. The root is normally a YulObject.
func Decode(data []byte) (ObjectNode, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, fmt.Errorf("%w: empty document", ErrMalformed)
	}
	if trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: root is not a JSON object", ErrMalformed)
	}
	return decodeObject(trimmed)
}

func decodeHeader(raw json.RawMessage) (header, error) {
	var h header
	if err := json.Unmarshal(raw, &h); err != nil {
		return h, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return h, nil
}

func unmarshal(raw json.RawMessage, v any, kind string) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, kind, err)
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

func decodeObject(raw json.RawMessage) (ObjectNode, error) {
	h, err := decodeHeader(raw)
	if err != nil {
		return nil, err
	}
	switch h.NodeType {
	case KindObject:
		var ro rawObject
		if err := unmarshal(raw, &ro, h.NodeType); err != nil {
			return nil, err
		}
		code, err := decodeCode(ro.Code)
		if err != nil {
			return nil, err
		}
		obj := &Object{Name: ro.Name, Code: code, Src: ParseLocation(h.Src)}
		for _, sub := range ro.SubObjects {
			child, err := decodeObject(sub)
			if err != nil {
				return nil, err
			}
			obj.SubObjects = append(obj.SubObjects, child)
		}
		return obj, nil
	case KindData:
		var d struct {
			Name string `json:"name"`
		}
		if err := unmarshal(raw, &d, h.NodeType); err != nil {
			return nil, err
		}
		return &Data{Name: d.Name}, nil
	default:
		return &UnsupportedObject{Tag: h.NodeType, Src: ParseLocation(h.Src)}, nil
	}
}

func decodeCode(raw json.RawMessage) (*Code, error) {
	if isNull(raw) {
		return &Code{Block: &Block{}}, nil
	}
	h, err := decodeHeader(raw)
	if err != nil {
		return nil, err
	}
	if h.NodeType != KindCode {
		return &Code{Block: unsupportedBlock(h)}, nil
	}
	var rc struct {
		Block json.RawMessage `json:"block"`
	}
	if err := unmarshal(raw, &rc, h.NodeType); err != nil {
		return nil, err
	}
	block, err := decodeBlock(rc.Block)
	if err != nil {
		return nil, err
	}
	return &Code{Block: block}, nil
}

func unsupportedBlock(h header) *Block {
	loc := ParseLocation(h.Src)
	return &Block{
		Statements: []Stmt{&UnsupportedStmt{Tag: h.NodeType, Src: loc}},
		Src:        loc,
	}
}

// decodeBlock decodes a node expected to be a YulBlock. Any other kind
// becomes a block holding a single unsupported statement.
func decodeBlock(raw json.RawMessage) (*Block, error) {
	if isNull(raw) {
		return &Block{}, nil
	}
	h, err := decodeHeader(raw)
	if err != nil {
		return nil, err
	}
	if h.NodeType != KindBlock {
		return unsupportedBlock(h), nil
	}
	var rb struct {
		Statements []json.RawMessage `json:"statements"`
	}
	if err := unmarshal(raw, &rb, h.NodeType); err != nil {
		return nil, err
	}
	b := &Block{Src: ParseLocation(h.Src)}
	for _, s := range rb.Statements {
		stmt, err := decodeStmt(s)
		if err != nil {
			return nil, err
		}
		b.Statements = append(b.Statements, stmt)
	}
	return b, nil
}

func decodeStmt(raw json.RawMessage) (Stmt, error) {
	h, err := decodeHeader(raw)
	if err != nil {
		return nil, err
	}
	loc := ParseLocation(h.Src)

	switch h.NodeType {
	case KindBlock:
		return decodeBlock(raw)

	case KindFunctionDefinition:
		var rf rawFunctionDefinition
		if err := unmarshal(raw, &rf, h.NodeType); err != nil {
			return nil, err
		}
		body, err := decodeBlock(rf.Body)
		if err != nil {
			return nil, err
		}
		return &FunctionDefinition{
			Name:            rf.Name,
			Parameters:      typedNames(rf.Parameters),
			ReturnVariables: typedNames(rf.ReturnVariables),
			Body:            body,
			Src:             loc,
		}, nil

	case KindVariableDeclaration:
		var rv struct {
			Variables []rawTypedName `json:"variables"`
			Value     json.RawMessage `json:"value"`
		}
		if err := unmarshal(raw, &rv, h.NodeType); err != nil {
			return nil, err
		}
		decl := &VariableDeclaration{Variables: typedNames(rv.Variables), Src: loc}
		if !isNull(rv.Value) {
			if decl.Value, err = decodeExpr(rv.Value); err != nil {
				return nil, err
			}
		}
		return decl, nil

	case KindAssignment:
		var ra struct {
			VariableNames []rawTypedName  `json:"variableNames"`
			Value         json.RawMessage `json:"value"`
		}
		if err := unmarshal(raw, &ra, h.NodeType); err != nil {
			return nil, err
		}
		value, err := decodeExpr(ra.Value)
		if err != nil {
			return nil, err
		}
		return &Assignment{VariableNames: typedNames(ra.VariableNames), Value: value, Src: loc}, nil

	case KindExpressionStatement:
		var re struct {
			Expression json.RawMessage `json:"expression"`
		}
		if err := unmarshal(raw, &re, h.NodeType); err != nil {
			return nil, err
		}
		expr, err := decodeExpr(re.Expression)
		if err != nil {
			return nil, err
		}
		return &ExpressionStatement{Expression: expr, Src: loc}, nil

	case KindIf:
		var ri struct {
			Condition json.RawMessage `json:"condition"`
			Body      json.RawMessage `json:"body"`
		}
		if err := unmarshal(raw, &ri, h.NodeType); err != nil {
			return nil, err
		}
		cond, err := decodeExpr(ri.Condition)
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(ri.Body)
		if err != nil {
			return nil, err
		}
		return &If{Condition: cond, Body: body, Src: loc}, nil

	case KindSwitch:
		var rs struct {
			Expression json.RawMessage   `json:"expression"`
			Cases      []json.RawMessage `json:"cases"`
		}
		if err := unmarshal(raw, &rs, h.NodeType); err != nil {
			return nil, err
		}
		expr, err := decodeExpr(rs.Expression)
		if err != nil {
			return nil, err
		}
		sw := &Switch{Expression: expr, Src: loc}
		for _, c := range rs.Cases {
			cs, err := decodeCase(c)
			if err != nil {
				return nil, err
			}
			sw.Cases = append(sw.Cases, cs)
		}
		return sw, nil

	case KindForLoop:
		var rl struct {
			Pre       json.RawMessage `json:"pre"`
			Condition json.RawMessage `json:"condition"`
			Post      json.RawMessage `json:"post"`
			Body      json.RawMessage `json:"body"`
		}
		if err := unmarshal(raw, &rl, h.NodeType); err != nil {
			return nil, err
		}
		loop := &ForLoop{Src: loc}
		if loop.Pre, err = decodeBlock(rl.Pre); err != nil {
			return nil, err
		}
		if loop.Condition, err = decodeExpr(rl.Condition); err != nil {
			return nil, err
		}
		if loop.Post, err = decodeBlock(rl.Post); err != nil {
			return nil, err
		}
		if loop.Body, err = decodeBlock(rl.Body); err != nil {
			return nil, err
		}
		return loop, nil

	case KindBreak:
		return &Break{Src: loc}, nil
	case KindContinue:
		return &Continue{Src: loc}, nil
	case KindLeave:
		return &Leave{Src: loc}, nil
	}

	return &UnsupportedStmt{Tag: h.NodeType, Src: loc}, nil
}

func decodeCase(raw json.RawMessage) (*Case, error) {
	h, err := decodeHeader(raw)
	if err != nil {
		return nil, err
	}
	var rc rawCase
	if err := unmarshal(raw, &rc, KindCase); err != nil {
		return nil, err
	}
	body, err := decodeBlock(rc.Body)
	if err != nil {
		return nil, err
	}
	c := &Case{Body: body, Src: ParseLocation(h.Src)}

	// The default case carries the bare string "default" instead of a literal.
	value := bytes.TrimSpace(rc.Value)
	if isNull(value) || value[0] == '"' {
		return c, nil
	}
	expr, err := decodeExpr(value)
	if err != nil {
		return nil, err
	}
	switch v := expr.(type) {
	case *Literal:
		c.Value = v
	case *UnsupportedExpr:
		c.Unsupported = v
	default:
		return nil, fmt.Errorf("%w: switch case value is %s, not a literal", ErrMalformed, expr.Kind())
	}
	return c, nil
}

func decodeExpr(raw json.RawMessage) (Expr, error) {
	if isNull(raw) {
		return nil, fmt.Errorf("%w: missing expression", ErrMalformed)
	}
	h, err := decodeHeader(raw)
	if err != nil {
		return nil, err
	}
	loc := ParseLocation(h.Src)

	switch h.NodeType {
	case KindFunctionCall:
		var rc struct {
			FunctionName rawTypedName      `json:"functionName"`
			Arguments    []json.RawMessage `json:"arguments"`
		}
		if err := unmarshal(raw, &rc, h.NodeType); err != nil {
			return nil, err
		}
		call := &FunctionCall{FunctionName: rc.FunctionName.Name, Src: loc}
		for _, a := range rc.Arguments {
			arg, err := decodeExpr(a)
			if err != nil {
				return nil, err
			}
			call.Arguments = append(call.Arguments, arg)
		}
		return call, nil

	case KindIdentifier:
		var ri rawTypedName
		if err := unmarshal(raw, &ri, h.NodeType); err != nil {
			return nil, err
		}
		return &Identifier{Name: ri.Name, Src: loc}, nil

	case KindLiteral:
		var rl rawLiteral
		if err := unmarshal(raw, &rl, h.NodeType); err != nil {
			return nil, err
		}
		return &Literal{
			LiteralKind: LiteralKind(rl.Kind),
			Value:       rl.Value,
			HexValue:    rl.HexValue,
			Src:         loc,
		}, nil
	}

	return &UnsupportedExpr{Tag: h.NodeType, Src: loc}, nil
}

func typedNames(tn []rawTypedName) []string {
	names := make([]string, 0, len(tn))
	for _, n := range tn {
		names = append(names, n.Name)
	}
	return names
}

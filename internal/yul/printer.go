package yul

import (
	"fmt"
	"strings"
)

// Print returns a tree-like string representation of the AST for debugging
func Print(node Node) string {
	var sb strings.Builder
	printNode(&sb, node, 0)
	return sb.String()
}

func printBlock(sb *strings.Builder, label string, b *Block, indent int) {
	prefix := strings.Repeat("  ", indent)
	if b == nil || b.IsEmpty() {
		sb.WriteString(fmt.Sprintf("%s%s: empty\n", prefix, label))
		return
	}
	sb.WriteString(fmt.Sprintf("%s%s:\n", prefix, label))
	for _, s := range b.Statements {
		printNode(sb, s, indent+1)
	}
}

func printNode(sb *strings.Builder, node Node, indent int) {
	if node == nil {
		return
	}

	prefix := strings.Repeat("  ", indent)

	switch n := node.(type) {
	case *Object:
		sb.WriteString(fmt.Sprintf("%sObject: %s\n", prefix, n.Name))
		if n.Code != nil {
			printNode(sb, n.Code, indent+1)
		}
		for _, sub := range n.SubObjects {
			printNode(sb, sub, indent+1)
		}

	case *Code:
		printBlock(sb, "Code", n.Block, indent)

	case *Data:
		sb.WriteString(fmt.Sprintf("%sData: %s\n", prefix, n.Name))

	case *UnsupportedObject:
		sb.WriteString(fmt.Sprintf("%sUnsupported object: %s\n", prefix, n.Tag))

	case *Block:
		printBlock(sb, "Block", n, indent)

	case *FunctionDefinition:
		sb.WriteString(fmt.Sprintf("%sFunction: %s\n", prefix, n.Name))
		if len(n.Parameters) > 0 {
			sb.WriteString(fmt.Sprintf("%s  Params: %s\n", prefix, strings.Join(n.Parameters, ", ")))
		} else {
			sb.WriteString(fmt.Sprintf("%s  Params: none\n", prefix))
		}
		if len(n.ReturnVariables) > 0 {
			sb.WriteString(fmt.Sprintf("%s  Returns: %s\n", prefix, strings.Join(n.ReturnVariables, ", ")))
		}
		printBlock(sb, "Body", n.Body, indent+1)

	case *VariableDeclaration:
		sb.WriteString(fmt.Sprintf("%sLet: %s\n", prefix, strings.Join(n.Variables, ", ")))
		if n.Value != nil {
			printNode(sb, n.Value, indent+1)
		}

	case *Assignment:
		sb.WriteString(fmt.Sprintf("%sAssign: %s\n", prefix, strings.Join(n.VariableNames, ", ")))
		printNode(sb, n.Value, indent+1)

	case *ExpressionStatement:
		sb.WriteString(fmt.Sprintf("%sExprStmt\n", prefix))
		printNode(sb, n.Expression, indent+1)

	case *If:
		sb.WriteString(fmt.Sprintf("%sIf\n", prefix))
		sb.WriteString(fmt.Sprintf("%s  Condition:\n", prefix))
		printNode(sb, n.Condition, indent+2)
		printBlock(sb, "Then", n.Body, indent+1)

	case *Switch:
		sb.WriteString(fmt.Sprintf("%sSwitch\n", prefix))
		printNode(sb, n.Expression, indent+1)
		for _, c := range n.Cases {
			printNode(sb, c, indent+1)
		}

	case *Case:
		switch {
		case n.IsDefault():
			printBlock(sb, "Default", n.Body, indent)
		case n.Unsupported != nil:
			printBlock(sb, "Case <"+n.Unsupported.Tag+">", n.Body, indent)
		default:
			printBlock(sb, "Case "+n.Value.Value, n.Body, indent)
		}

	case *ForLoop:
		sb.WriteString(fmt.Sprintf("%sFor\n", prefix))
		printBlock(sb, "Init", n.Pre, indent+1)
		sb.WriteString(fmt.Sprintf("%s  Condition:\n", prefix))
		printNode(sb, n.Condition, indent+2)
		printBlock(sb, "Post", n.Post, indent+1)
		printBlock(sb, "Body", n.Body, indent+1)

	case *Break:
		sb.WriteString(fmt.Sprintf("%sBreak\n", prefix))

	case *Continue:
		sb.WriteString(fmt.Sprintf("%sContinue\n", prefix))

	case *Leave:
		sb.WriteString(fmt.Sprintf("%sLeave\n", prefix))

	case *UnsupportedStmt:
		sb.WriteString(fmt.Sprintf("%sUnsupported statement: %s\n", prefix, n.Tag))

	case *FunctionCall:
		sb.WriteString(fmt.Sprintf("%sCall: %s\n", prefix, n.FunctionName))
		for _, arg := range n.Arguments {
			printNode(sb, arg, indent+1)
		}

	case *Identifier:
		sb.WriteString(fmt.Sprintf("%sIdent: %s\n", prefix, n.Name))

	case *Literal:
		sb.WriteString(fmt.Sprintf("%sLiteral(%s): %s\n", prefix, n.LiteralKind, n.Value))

	case *UnsupportedExpr:
		sb.WriteString(fmt.Sprintf("%sUnsupported expression: %s\n", prefix, n.Tag))

	default:
		sb.WriteString(fmt.Sprintf("%s<unknown node %T>\n", prefix, node))
	}
}

package lower

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// --- Code Printer (output looks like lowered source) ---

// Printer renders a lowered definition as source text for the host
// compilation stage. Output is deterministic: fields, implementation
// blocks, and methods keep their normalized order.
type Printer struct {
	buf    bytes.Buffer
	indent int
}

func NewPrinter() *Printer {
	return &Printer{}
}

// Print renders a full definition.
func (p *Printer) Print(def *Definition) string {
	p.buf.Reset()
	p.indent = 0

	p.writeLine(fmt.Sprintf("class %s {", def.Name))
	p.indent++
	for _, f := range def.Fields {
		if f.Mutable {
			p.writeLine("mut " + f.Name)
		} else {
			p.writeLine("val " + f.Name)
		}
	}
	for _, impl := range def.Impls {
		p.writeLine("")
		p.writeLine(fmt.Sprintf("impl %s {", impl.Interface))
		p.indent++
		for i, m := range impl.Methods {
			if i > 0 {
				p.writeLine("")
			}
			p.printMethod(m)
		}
		p.indent--
		p.writeLine("}")
	}
	p.indent--
	p.writeLine("}")
	return p.buf.String()
}

// PrintNode renders a single lowered node (used by trace output and
// tests).
func (p *Printer) PrintNode(n Node) string {
	p.buf.Reset()
	p.indent = 0
	p.printNode(n)
	return p.buf.String()
}

func (p *Printer) printMethod(m Method) {
	p.writeLine(fmt.Sprintf("%s(%s) {", m.Name, strings.Join(m.Params, ", ")))
	p.indent++
	p.printBlockBody(m.Body)
	p.indent--
	p.writeLine("}")
}

func (p *Printer) printBlockBody(b *Block) {
	if b == nil {
		return
	}
	for _, n := range b.Nodes {
		p.printNode(n)
	}
}

func (p *Printer) printNode(n Node) {
	switch node := n.(type) {
	case *Block:
		p.printBlockBody(node)
	case *Let:
		switch {
		case !inline(node.Value):
			// Branching values (a specialized accessor, a cast chain)
			// print as a block-valued binding.
			p.writeLine(fmt.Sprintf("let %s = {", node.Name))
			p.indent++
			p.printNode(node.Value)
			p.indent--
			p.writeLine("}")
		case node.Class != nil:
			p.writeLine(fmt.Sprintf("let %s = %s as %s", node.Name, p.expr(node.Value), node.Class.Name))
		default:
			p.writeLine(fmt.Sprintf("let %s = %s", node.Name, p.expr(node.Value)))
		}
	case *TypeTest:
		p.writeLine(fmt.Sprintf("if %s is %s {", p.expr(node.Subject), node.Class.Name))
		p.indent++
		if node.Binder != "" {
			p.writeLine(fmt.Sprintf("let %s = %s as %s", node.Binder, p.expr(node.Subject), node.Class.Name))
		}
		p.printBlockBody(node.Then)
		p.indent--
		if node.Else == nil {
			p.writeLine("}")
		} else {
			p.writeLine("} else {")
			p.indent++
			p.printNode(node.Else)
			p.indent--
			p.writeLine("}")
		}
	case *ShapeSwitch:
		p.writeLine(fmt.Sprintf("if isEntity(%s) {", p.expr(node.Subject)))
		p.indent++
		if node.Binder != "" {
			p.writeLine(fmt.Sprintf("let %s = %s as Entity", node.Binder, p.expr(node.Subject)))
		}
		p.printBlockBody(node.Entity)
		p.indent--
		p.writeLine("} else {")
		p.indent++
		if node.Binder != "" {
			p.writeLine(fmt.Sprintf("let %s = %s as Component", node.Binder, p.expr(node.Subject)))
		}
		p.printBlockBody(node.Component)
		p.indent--
		p.writeLine("}")
	case *Noop:
		p.writeLine("pass")
	default:
		p.writeLine(p.expr(n))
	}
}

// inline reports whether a node renders on one line in value position.
func inline(n Node) bool {
	switch n.(type) {
	case *Block, *TypeTest, *ShapeSwitch:
		return false
	}
	return true
}

// expr renders a value-position node on one line.
func (p *Printer) expr(n Node) string {
	switch node := n.(type) {
	case *VarRef:
		return node.Name
	case *IntLit:
		return strconv.FormatInt(node.Value, 10)
	case *FloatLit:
		return strconv.FormatFloat(node.Value, 'g', -1, 64)
	case *StringLit:
		return strconv.Quote(node.Value)
	case *TypeLit:
		return node.Class.Name
	case *Member:
		return p.expr(node.Target) + "." + node.Name
	case *Call:
		args := make([]string, len(node.Args))
		for i, a := range node.Args {
			args[i] = p.expr(a)
		}
		return p.expr(node.Callee) + "(" + strings.Join(args, ", ") + ")"
	case *Noop:
		return "pass"
	default:
		return fmt.Sprintf("/* %T */", n)
	}
}

func (p *Printer) writeLine(s string) {
	if s == "" {
		p.buf.WriteString("\n")
		return
	}
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
	p.buf.WriteString(s)
	p.buf.WriteString("\n")
}

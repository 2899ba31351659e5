package ir

import (
	"fmt"
	"strings"
)

// Printer renders a Module back to a readable textual form, mirroring the
// wrapper/original split wrapper synthesis produces. It is a debugging aid
// only; internal/fixture owns the DSL that round-trips as real input.
type Printer struct {
	indent int
	output strings.Builder
}

// NewPrinter creates a new IR printer.
func NewPrinter() *Printer {
	return &Printer{}
}

// Print returns module's textual form.
func Print(module *Module) string {
	p := NewPrinter()
	p.printModule(module)
	return p.output.String()
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.output.WriteString("  ")
	}
}

func (p *Printer) writeLine(format string, args ...interface{}) {
	p.writeIndent()
	p.output.WriteString(fmt.Sprintf(format, args...))
	p.output.WriteString("\n")
}

func (p *Printer) printModule(module *Module) {
	p.writeLine("MODULE %s", module.Name)
	p.writeLine("")

	if len(module.Globals) > 0 {
		p.writeLine("GLOBALS:")
		p.indent++
		for _, g := range module.Globals {
			init := "null"
			if g.Initializer != nil {
				init = "@" + g.Initializer.Name
			}
			p.writeLine("@%s %s = %s", g.Name, g.Visibility, init)
		}
		p.indent--
		p.writeLine("")
	}

	if len(module.Aliases) > 0 {
		p.writeLine("ALIASES:")
		p.indent++
		for _, a := range module.Aliases {
			p.writeLine("@%s = alias @%s", a.Name, a.Aliasee.Name)
		}
		p.indent--
		p.writeLine("")
	}

	for _, fn := range module.Functions {
		p.printFunction(fn)
		p.writeLine("")
	}
}

func (p *Printer) printFunction(fn *Function) {
	sig := fmt.Sprintf("FUNCTION %s %s(", fn.Linkage, fn.Name)
	for i, param := range fn.Params {
		if i > 0 {
			sig += ", "
		}
		sig += fmt.Sprintf("%s: %s", param.Name, param.Type.String())
	}
	if fn.Variadic {
		if len(fn.Params) > 0 {
			sig += ", "
		}
		sig += "..."
	}
	sig += ")"
	if fn.ReturnType != nil {
		sig += " -> " + fn.ReturnType.String()
	}

	var meta []string
	if fn.Pagerando {
		meta = append(meta, "pagerando")
	}
	if fn.SectionPrefix != "" {
		meta = append(meta, "section="+fn.SectionPrefix)
	}
	if fn.Visibility != VisibilityDefault {
		meta = append(meta, fn.Visibility.String())
	}

	p.writeLine("%s", sig)
	if len(meta) > 0 {
		p.writeLine("  [%s]", strings.Join(meta, ", "))
	}

	if fn.IsDeclaration() {
		p.writeLine("  ; declaration")
		return
	}

	p.writeLine("{")
	p.indent++
	for _, inst := range fn.Entry.Instructions {
		p.printInstruction(inst)
	}
	p.indent--
	p.writeLine("}")
}

func (p *Printer) printInstruction(inst Instruction) {
	switch i := inst.(type) {
	case *AllocaInst:
		p.writeLine("%s = ALLOCA %s", p.valueString(i.Result), i.Type.String())
	case *VaStartInst:
		p.writeLine("VA_START %s", p.valueString(i.List))
	case *VaEndInst:
		p.writeLine("VA_END %s", p.valueString(i.List))
	case *VaCopyInst:
		p.writeLine("VA_COPY %s, %s", p.valueString(i.Dst), p.valueString(i.Src))
	case *CallInst:
		args := make([]string, len(i.Args))
		for j, a := range i.Args {
			args[j] = p.operandString(a)
		}
		if i.Result != nil {
			p.writeLine("%s = CALL @%s(%s)", p.valueString(i.Result), i.Callee.Name, strings.Join(args, ", "))
		} else {
			p.writeLine("CALL @%s(%s)", i.Callee.Name, strings.Join(args, ", "))
		}
	case *DebugInst:
		p.writeLine("; debug")
	case *TrapInst:
		p.writeLine("TRAP")
	case *ReturnInst:
		if i.Value != nil {
			p.writeLine("RETURN %s", p.valueString(i.Value))
		} else {
			p.writeLine("RETURN")
		}
	case *UnreachableInst:
		p.writeLine("UNREACHABLE")
	default:
		p.writeLine("UNKNOWN_INST<%T>", i)
	}
}

func (p *Printer) valueString(v *Value) string {
	if v == nil {
		return "null"
	}
	return "%" + v.Name
}

func (p *Printer) operandString(o *Operand) string {
	if o.Func != nil {
		return "@" + o.Func.Name
	}
	return p.valueString(o.Value)
}

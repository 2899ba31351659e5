package fixture

import "pagerando/internal/ir"

// Build lowers a parsed fixture Module into an *ir.Module, the form
// every pass in internal/ir and internal/mir actually operates on.
// Functions are registered in a first pass so calls, globals, and
// aliases can reference a function declared later in the file.
func Build(m *Module) *ir.Module {
	out := &ir.Module{Name: m.Name}

	functions := make(map[string]*ir.Function)
	for _, decl := range m.Decls {
		if decl.Function == nil {
			continue
		}
		fn := &ir.Function{
			Name:        decl.Function.Name,
			Linkage:     linkageOf(decl.Function.Linkage),
			Variadic:    decl.Function.Variadic != "",
			Params:      paramsOf(decl.Function.Params),
			ReturnType:  typeOf(decl.Function.ReturnType),
			Pagerando:   decl.Function.Pagerando != "",
			Declaration: decl.Function.Declaration != "" || decl.Function.Body == nil,
			Attributes:  make(map[ir.Attribute]bool),
		}
		for _, a := range decl.Function.Attrs {
			switch a {
			case "naked":
				fn.Naked = true
			case "thunk":
				fn.Thunk = true
			default:
				fn.Attributes[ir.Attribute(a)] = true
			}
		}
		functions[fn.Name] = fn
		out.Functions = append(out.Functions, fn)
	}

	for _, decl := range m.Decls {
		switch {
		case decl.Function != nil && decl.Function.Body != nil:
			fn := functions[decl.Function.Name]
			fn.Entry = buildBlock(decl.Function.Body, fn, functions)
		case decl.Global != nil:
			out.Globals = append(out.Globals, &ir.GlobalVariable{
				Name:        decl.Global.Name,
				Initializer: functions[decl.Global.Initializer],
			})
		case decl.Alias != nil:
			out.Aliases = append(out.Aliases, &ir.GlobalAlias{
				Name:    decl.Alias.Name,
				Aliasee: functions[decl.Alias.Aliasee],
			})
		}
	}

	return out
}

func linkageOf(s string) ir.Linkage {
	if s == "external" {
		return ir.LinkageExternal
	}
	return ir.LinkageLocal
}

func typeOf(name *string) ir.Type {
	if name == nil {
		return nil
	}
	return namedType(*name)
}

func namedType(name string) ir.Type {
	switch name {
	case "i8":
		return &ir.IntType{Bits: 8}
	case "i32":
		return &ir.IntType{Bits: 32}
	case "i64":
		return &ir.IntType{Bits: 64}
	case "ptr":
		return &ir.PointerType{Elem: &ir.IntType{Bits: 8}}
	case "valist":
		return &ir.VaListType{Name: "va_list"}
	case "void":
		return &ir.VoidType{}
	default:
		return &ir.VaListType{Name: name}
	}
}

func paramsOf(params []*Param) []*ir.Parameter {
	out := make([]*ir.Parameter, len(params))
	for i, p := range params {
		t := namedType(p.Type)
		out[i] = &ir.Parameter{Name: p.Name, Type: t, Value: &ir.Value{Name: p.Name, Type: t}}
	}
	return out
}

// buildBlock lowers a fixture Block into an ir.BasicBlock, resolving
// %-prefixed value references against fn's parameters and any values
// defined earlier in the same block.
func buildBlock(b *Block, fn *ir.Function, functions map[string]*ir.Function) *ir.BasicBlock {
	values := make(map[string]*ir.Value)
	for _, p := range fn.Params {
		values[p.Name] = p.Value
	}

	block := &ir.BasicBlock{}
	for _, inst := range b.Instructions {
		switch {
		case inst.Alloca != nil:
			t := namedType(inst.Alloca.Type)
			v := &ir.Value{Name: inst.Alloca.Result, Type: &ir.PointerType{Elem: t}}
			values[inst.Alloca.Result] = v
			block.Instructions = append(block.Instructions, &ir.AllocaInst{Result: v, Type: t})
		case inst.VaStart != nil:
			block.Instructions = append(block.Instructions, &ir.VaStartInst{List: values[inst.VaStart.List]})
		case inst.VaEnd != nil:
			block.Instructions = append(block.Instructions, &ir.VaEndInst{List: values[inst.VaEnd.List]})
		case inst.VaCopy != nil:
			block.Instructions = append(block.Instructions, &ir.VaCopyInst{
				Dst: values[inst.VaCopy.Dst],
				Src: values[inst.VaCopy.Src],
			})
		case inst.Call != nil:
			callee := functions[inst.Call.Callee]
			args := make([]*ir.Operand, len(inst.Call.Args))
			for i, a := range inst.Call.Args {
				args[i] = &ir.Operand{Value: values[a]}
			}
			var result *ir.Value
			if inst.Call.Result != "" {
				retType := ir.Type(nil)
				if callee != nil {
					retType = callee.ReturnType
				}
				result = &ir.Value{Name: inst.Call.Result, Type: retType}
				values[inst.Call.Result] = result
			}
			block.Instructions = append(block.Instructions, &ir.CallInst{Result: result, Callee: callee, Args: args})
		case inst.Debug != nil:
			block.Instructions = append(block.Instructions, &ir.DebugInst{})
		case inst.Trap != nil:
			block.Instructions = append(block.Instructions, &ir.TrapInst{})
		case inst.Return != nil:
			var v *ir.Value
			if inst.Return.Value != "" {
				v = values[inst.Return.Value]
			}
			block.Instructions = append(block.Instructions, &ir.ReturnInst{Value: v})
		case inst.Unreach != nil:
			block.Instructions = append(block.Instructions, &ir.UnreachableInst{})
		}
	}
	return block
}

package lang

import "github.com/dusk-indust/tsgindex/internal/syntax"

// Pattern rules for languages without a curated ruleset. Each rule names
// node kinds of the grammar version pinned in go.mod. Rules listing more than
// one kind or path cover alternative shapes of the same construct.

const quotes = "\"'`"

var named = []syntax.Path{{syntax.Field("name")}}

var phpRules = []syntax.Rule{
	{Kind: syntax.Definition, Construct: "function", Nodes: []string{"function_definition"}, Names: named},
	{Kind: syntax.Definition, Construct: "class", Nodes: []string{"class_declaration", "enum_declaration"}, Names: named},
	{Kind: syntax.Definition, Construct: "interface", Nodes: []string{"interface_declaration", "trait_declaration"}, Names: named},
	{Kind: syntax.Definition, Construct: "method", Nodes: []string{"method_declaration"}, Names: named},
	{Kind: syntax.Import, Construct: "use", Nodes: []string{"namespace_use_clause"}, Names: []syntax.Path{{syntax.Child("qualified_name", "name")}}},
	{
		Kind:      syntax.Import,
		Construct: "include",
		Nodes:     []string{"include_expression", "include_once_expression", "require_expression", "require_once_expression"},
		Names:     []syntax.Path{{syntax.Child("string", "encapsed_string")}},
		Trim:      quotes,
	},
	{Kind: syntax.Reference, Construct: "call", Nodes: []string{"function_call_expression"}, Names: []syntax.Path{{syntax.Field("function", "name")}}},
}

var kotlinRules = []syntax.Rule{
	{
		Kind:      syntax.Definition,
		Construct: "function",
		Nodes:     []string{"function_declaration"},
		Names:     []syntax.Path{{syntax.Field("name")}, {syntax.Child("simple_identifier", "identifier")}},
	},
	{
		Kind:      syntax.Definition,
		Construct: "class",
		Nodes:     []string{"class_declaration", "object_declaration"},
		Names:     []syntax.Path{{syntax.Field("name")}, {syntax.Child("type_identifier", "simple_identifier", "identifier")}},
	},
	{
		Kind:      syntax.Import,
		Construct: "import",
		Nodes:     []string{"import", "import_header"},
		Names:     []syntax.Path{{syntax.Child("qualified_identifier", "identifier")}},
	},
}

var scalaRules = []syntax.Rule{
	{Kind: syntax.Definition, Construct: "function", Nodes: []string{"function_definition", "function_declaration"}, Names: named},
	{Kind: syntax.Definition, Construct: "class", Nodes: []string{"class_definition", "object_definition"}, Names: named},
	{Kind: syntax.Definition, Construct: "trait", Nodes: []string{"trait_definition"}, Names: named},
	{Kind: syntax.Import, Construct: "import", Nodes: []string{"import_declaration"}, Names: []syntax.Path{{syntax.FieldSpan("path")}}},
}

var luaRules = []syntax.Rule{
	{Kind: syntax.Definition, Construct: "function", Nodes: []string{"function_declaration"}, Names: named},
	{
		Kind:      syntax.Import,
		Construct: "require",
		Nodes:     []string{"function_call"},
		When:      &syntax.Guard{Path: syntax.Path{syntax.Field("name")}, Equals: []string{"require"}},
		Names: []syntax.Path{
			{syntax.Field("arguments"), syntax.Child("string"), syntax.Field("content")},
			{syntax.Field("arguments"), syntax.Child("string")},
		},
		Trim: quotes + "[]=",
	},
}

var zigRules = []syntax.Rule{
	{Kind: syntax.Definition, Construct: "function", Nodes: []string{"function_declaration"}, Names: []syntax.Path{{syntax.Field("name")}, {syntax.Child("identifier")}}},
}

// cDeclarators follow a function_definition to the declared name, through
// pointer return types (one or two levels) and C++ reference return types.
var cDeclarators = []syntax.Path{
	{syntax.Field("declarator", "function_declarator"), syntax.Field("declarator")},
	{
		syntax.Field("declarator", "pointer_declarator"),
		syntax.Field("declarator", "function_declarator"),
		syntax.Field("declarator"),
	},
	{
		syntax.Field("declarator", "pointer_declarator"),
		syntax.Field("declarator", "pointer_declarator"),
		syntax.Field("declarator", "function_declarator"),
		syntax.Field("declarator"),
	},
	{
		syntax.Field("declarator", "reference_declarator"),
		syntax.Child("function_declarator"),
		syntax.Field("declarator"),
	},
}

var cRules = []syntax.Rule{
	{Kind: syntax.Definition, Construct: "function", Nodes: []string{"function_definition"}, Names: cDeclarators},
	{Kind: syntax.Definition, Construct: "struct", Nodes: []string{"struct_specifier", "union_specifier", "enum_specifier"}, Names: named},
	{Kind: syntax.Definition, Construct: "type", Nodes: []string{"type_definition"}, Names: []syntax.Path{{syntax.Field("declarator", "type_identifier")}}},
	{Kind: syntax.Import, Construct: "include", Nodes: []string{"preproc_include"}, Names: []syntax.Path{{syntax.Field("path")}}, Trim: "\"<>"},
	{Kind: syntax.Reference, Construct: "call", Nodes: []string{"call_expression"}, Names: []syntax.Path{{syntax.Field("function", "identifier")}}},
}

var cppRules = append([]syntax.Rule{
	{Kind: syntax.Definition, Construct: "class", Nodes: []string{"class_specifier"}, Names: named},
	{Kind: syntax.Definition, Construct: "namespace", Nodes: []string{"namespace_definition"}, Names: named},
}, cRules...)

var bashRules = []syntax.Rule{
	{Kind: syntax.Definition, Construct: "function", Nodes: []string{"function_definition"}, Names: named},
	{
		Kind:      syntax.Import,
		Construct: "source",
		Nodes:     []string{"command"},
		When:      &syntax.Guard{Path: syntax.Path{syntax.Field("name")}, Equals: []string{"source", "."}},
		Names:     []syntax.Path{{syntax.Field("argument")}},
		Trim:      quotes,
	},
}

var ocamlRules = []syntax.Rule{
	{Kind: syntax.Definition, Construct: "value", Nodes: []string{"value_definition"}, Names: []syntax.Path{{syntax.Child("let_binding"), syntax.Field("pattern", "value_name")}}},
	{Kind: syntax.Definition, Construct: "type", Nodes: []string{"type_definition"}, Names: []syntax.Path{{syntax.Child("type_binding"), syntax.Field("name")}}},
	{Kind: syntax.Definition, Construct: "module", Nodes: []string{"module_definition"}, Names: []syntax.Path{{syntax.Child("module_binding"), syntax.Field("name")}, {syntax.Child("module_binding"), syntax.Child("module_name")}}},
	{Kind: syntax.Import, Construct: "open", Nodes: []string{"open_module"}, Names: []syntax.Path{{syntax.Field("module")}, {syntax.Child("module_path", "module_name")}}},
}

// HCL blocks are named by their last string label ("web" in
// resource "aws_instance" "web"). Unlabelled blocks such as terraform or
// locals fall back to the block type.
var hclRules = []syntax.Rule{
	{
		Kind:      syntax.Definition,
		Construct: "block",
		Nodes:     []string{"block"},
		Names: []syntax.Path{
			{syntax.LastChild("string_lit"), syntax.Child("template_literal")},
			{syntax.Child("identifier")},
		},
	},
}

package lang

import (
	"sync"
	"unsafe"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	ts_bash "github.com/tree-sitter/tree-sitter-bash/bindings/go"
	ts_c "github.com/tree-sitter/tree-sitter-c/bindings/go"
	ts_csharp "github.com/tree-sitter/tree-sitter-c-sharp/bindings/go"
	ts_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
	ts_css "github.com/tree-sitter/tree-sitter-css/bindings/go"
	ts_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	ts_html "github.com/tree-sitter/tree-sitter-html/bindings/go"
	ts_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	ts_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	ts_ocaml "github.com/tree-sitter/tree-sitter-ocaml/bindings/go"
	ts_php "github.com/tree-sitter/tree-sitter-php/bindings/go"
	ts_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	ts_ruby "github.com/tree-sitter/tree-sitter-ruby/bindings/go"
	ts_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	ts_scala "github.com/tree-sitter/tree-sitter-scala/bindings/go"
	ts_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	ts_hcl "github.com/tree-sitter-grammars/tree-sitter-hcl/bindings/go"
	ts_kotlin "github.com/tree-sitter-grammars/tree-sitter-kotlin/bindings/go"
	ts_lua "github.com/tree-sitter-grammars/tree-sitter-lua/bindings/go"
	ts_toml "github.com/tree-sitter-grammars/tree-sitter-toml/bindings/go"
	ts_yaml "github.com/tree-sitter-grammars/tree-sitter-yaml/bindings/go"
	ts_zig "github.com/tree-sitter-grammars/tree-sitter-zig/bindings/go"
)

// grammar wraps a binding's raw language pointer so that every caller shares
// one *tree_sitter.Language per grammar.
func grammar(raw func() unsafe.Pointer) func() *tree_sitter.Language {
	return sync.OnceValue(func() *tree_sitter.Language {
		return tree_sitter.NewLanguage(raw())
	})
}

// registry is the capability table. Adding a language is adding an entry.
var registry = []*Language{
	// Curated rulesets.
	{ID: Go, Name: "Go", Extensions: []string{"go"}, LineComment: "//", Curated: true, grammar: grammar(ts_go.Language)},
	{ID: Python, Name: "Python", Extensions: []string{"py", "pyw", "pyi"}, LineComment: "#", Curated: true, grammar: grammar(ts_python.Language)},
	{ID: JavaScript, Name: "JavaScript", Extensions: []string{"js", "jsx", "mjs", "cjs"}, LineComment: "//", Curated: true, grammar: grammar(ts_javascript.Language)},
	{ID: TypeScript, Name: "TypeScript", Extensions: []string{"ts", "mts", "cts"}, LineComment: "//", Curated: true, grammar: grammar(ts_typescript.LanguageTypescript)},
	{ID: TSX, Name: "TSX", Extensions: []string{"tsx"}, LineComment: "//", Curated: true, grammar: grammar(ts_typescript.LanguageTSX)},
	{ID: Java, Name: "Java", Extensions: []string{"java"}, LineComment: "//", Curated: true, grammar: grammar(ts_java.Language)},
	{ID: Rust, Name: "Rust", Extensions: []string{"rs"}, LineComment: "//", Curated: true, grammar: grammar(ts_rust.Language)},
	{ID: Ruby, Name: "Ruby", Extensions: []string{"rb", "rbw", "rake"}, LineComment: "#", Curated: true, grammar: grammar(ts_ruby.Language)},
	{ID: CSharp, Name: "C#", Extensions: []string{"cs"}, LineComment: "//", Curated: true, grammar: grammar(ts_csharp.Language)},

	// Pattern rules.
	{ID: PHP, Name: "PHP", Extensions: []string{"php", "php3", "php4", "php5", "phtml"}, LineComment: "//", Rules: phpRules, grammar: grammar(ts_php.LanguagePHP)},
	{ID: Kotlin, Name: "Kotlin", Extensions: []string{"kt", "kts"}, LineComment: "//", Rules: kotlinRules, grammar: grammar(ts_kotlin.Language)},
	{ID: Scala, Name: "Scala", Extensions: []string{"scala", "sc"}, LineComment: "//", Rules: scalaRules, grammar: grammar(ts_scala.Language)},
	{ID: Lua, Name: "Lua", Extensions: []string{"lua"}, LineComment: "--", Rules: luaRules, grammar: grammar(ts_lua.Language)},
	{ID: Zig, Name: "Zig", Extensions: []string{"zig"}, LineComment: "//", Rules: zigRules, grammar: grammar(ts_zig.Language)},
	{ID: C, Name: "C", Extensions: []string{"c", "h"}, LineComment: "//", Rules: cRules, grammar: grammar(ts_c.Language)},
	{ID: CPP, Name: "C++", Extensions: []string{"cpp", "cc", "cxx", "hpp", "hh", "hxx"}, LineComment: "//", Rules: cppRules, grammar: grammar(ts_cpp.Language)},
	{ID: Bash, Name: "Bash", Extensions: []string{"sh", "bash"}, LineComment: "#", Rules: bashRules, grammar: grammar(ts_bash.Language)},
	{ID: OCaml, Name: "OCaml", Extensions: []string{"ml"}, LineComment: "(*", Rules: ocamlRules, grammar: grammar(ts_ocaml.LanguageOCaml)},
	{ID: HCL, Name: "HCL", Extensions: []string{"hcl", "tf"}, LineComment: "#", Rules: hclRules, grammar: grammar(ts_hcl.Language)},

	// Generic placeholder.
	{ID: CSS, Name: "CSS", Extensions: []string{"css"}, LineComment: "/*", grammar: grammar(ts_css.Language)},
	{ID: HTML, Name: "HTML", Extensions: []string{"html", "htm"}, LineComment: "<!--", grammar: grammar(ts_html.Language)},
	{ID: YAML, Name: "YAML", Extensions: []string{"yaml", "yml"}, LineComment: "#", grammar: grammar(ts_yaml.Language)},
	{ID: TOML, Name: "TOML", Extensions: []string{"toml"}, LineComment: "#", grammar: grammar(ts_toml.Language)},

	// Recognized but no grammar linked in.
	{ID: Swift, Name: "Swift", Extensions: []string{"swift"}, LineComment: "//"},
	{ID: ObjC, Name: "Objective-C", Extensions: []string{"m", "mm"}, LineComment: "//"},
	{ID: Dart, Name: "Dart", Extensions: []string{"dart"}, LineComment: "//"},
	{ID: JSON, Name: "JSON", Extensions: []string{"json"}, LineComment: "//"},
	{ID: XML, Name: "XML", Extensions: []string{"xml"}, LineComment: "<!--"},
	{ID: Markdown, Name: "Markdown", Extensions: []string{"md", "markdown"}, LineComment: "<!--"},
	{ID: Regex, Name: "Regex", Extensions: []string{"regex"}, LineComment: "#"},
	{ID: JSDoc, Name: "JSDoc", LineComment: "//"},
}

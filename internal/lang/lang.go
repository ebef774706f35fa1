// Package lang is the language registry: extension lookup, display names and
// the per-language capability record that decides how a file is indexed.
package lang

import (
	"slices"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/dusk-indust/tsgindex/internal/syntax"
)

// ID identifies a language. The zero value is Unknown.
type ID string

const (
	Unknown    ID = ""
	Bash       ID = "bash"
	C          ID = "c"
	CPP        ID = "cpp"
	CSharp     ID = "c-sharp"
	CSS        ID = "css"
	Dart       ID = "dart"
	Go         ID = "go"
	HCL        ID = "hcl"
	HTML       ID = "html"
	Java       ID = "java"
	JavaScript ID = "javascript"
	JSDoc      ID = "jsdoc"
	JSON       ID = "json"
	Kotlin     ID = "kotlin"
	Lua        ID = "lua"
	Markdown   ID = "markdown"
	ObjC       ID = "objc"
	OCaml      ID = "ocaml"
	PHP        ID = "php"
	Python     ID = "python"
	Regex      ID = "regex"
	Ruby       ID = "ruby"
	Rust       ID = "rust"
	Scala      ID = "scala"
	Swift      ID = "swift"
	TOML       ID = "toml"
	TSX        ID = "tsx"
	TypeScript ID = "typescript"
	XML        ID = "xml"
	YAML       ID = "yaml"
	Zig        ID = "zig"
)

// Strategy is how files of a language are turned into graph nodes.
type Strategy int

const (
	// NoParser means no grammar is linked in; files are skipped.
	NoParser Strategy = iota
	// Generic emits a single placeholder module definition per file.
	Generic
	// Pattern evaluates the language's declarative Rules.
	Pattern
	// Curated hands the file to an external curated ruleset.
	Curated
)

func (s Strategy) String() string {
	switch s {
	case Generic:
		return "generic"
	case Pattern:
		return "pattern"
	case Curated:
		return "curated"
	default:
		return "none"
	}
}

// Language is the capability record for one language.
type Language struct {
	ID         ID
	Name       string
	Extensions []string // lowercase, without dot; first is primary

	// LineComment starts a line comment in generated stubs.
	LineComment string

	// Curated marks languages whose rules live outside the registry.
	Curated bool
	// Rules are the declarative extraction rules for pattern languages.
	Rules []syntax.Rule

	grammar func() *tree_sitter.Language
}

// Grammar returns the tree-sitter grammar, or nil when none is linked in.
func (l *Language) Grammar() *tree_sitter.Language {
	if l == nil || l.grammar == nil {
		return nil
	}
	return l.grammar()
}

// HasGrammar reports whether a parser is registered for the language.
func (l *Language) HasGrammar() bool {
	return l != nil && l.grammar != nil
}

// Strategy derives the indexing strategy from the record's capabilities.
func (l *Language) Strategy() Strategy {
	switch {
	case !l.HasGrammar():
		return NoParser
	case l.Curated:
		return Curated
	case len(l.Rules) > 0:
		return Pattern
	default:
		return Generic
	}
}

// PrimaryExtension returns the first registered extension, or "".
func (l *Language) PrimaryExtension() string {
	if len(l.Extensions) == 0 {
		return ""
	}
	return l.Extensions[0]
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

// Identify maps a file extension (with or without the leading dot, any case)
// to a language. Unrecognized extensions yield Unknown.
func Identify(ext string) ID {
	if l, ok := byExt[normalizeExt(ext)]; ok {
		return l.ID
	}
	return Unknown
}

// ForPath identifies the language of a file path by its extension.
func ForPath(path string) ID {
	i := strings.LastIndexByte(path, '.')
	if i < 0 || strings.ContainsAny(path[i:], `/\`) {
		return Unknown
	}
	return Identify(path[i+1:])
}

// Lookup returns the capability record for id.
func Lookup(id ID) (*Language, bool) {
	l, ok := byID[id]
	return l, ok
}

// Name returns the display name of id, or "Unknown".
func Name(id ID) string {
	if l, ok := byID[id]; ok {
		return l.Name
	}
	return "Unknown"
}

// HasCuratedRules reports whether id is handled by a curated ruleset.
func HasCuratedRules(id ID) bool {
	l, ok := byID[id]
	return ok && l.Curated
}

// ExtensionsFor returns a copy of the extensions registered for id.
func ExtensionsFor(id ID) []string {
	if l, ok := byID[id]; ok {
		return slices.Clone(l.Extensions)
	}
	return nil
}

// PrimaryExtension returns the primary extension of id, or "".
func PrimaryExtension(id ID) string {
	if l, ok := byID[id]; ok {
		return l.PrimaryExtension()
	}
	return ""
}

// All returns every registered language in registration order.
func All() []*Language {
	return slices.Clone(registry)
}

// Parse resolves a language by ID or by case-insensitive display name.
func Parse(s string) (ID, bool) {
	if _, ok := byID[ID(s)]; ok {
		return ID(s), true
	}
	for _, l := range registry {
		if strings.EqualFold(l.Name, s) || strings.EqualFold(string(l.ID), s) {
			return l.ID, true
		}
	}
	return Unknown, false
}

var (
	byID  = make(map[ID]*Language)
	byExt = make(map[string]*Language)
)

func init() {
	for _, l := range registry {
		if _, dup := byID[l.ID]; dup {
			panic("lang: duplicate language " + string(l.ID))
		}
		byID[l.ID] = l
		for _, ext := range l.Extensions {
			if prev, dup := byExt[ext]; dup {
				panic("lang: extension ." + ext + " claimed by " + string(prev.ID) + " and " + string(l.ID))
			}
			byExt[ext] = l
		}
	}
}

package curated

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/tsgindex/internal/lang"
	"github.com/dusk-indust/tsgindex/internal/syntax"
)

// extract parses src as id and runs the curated ruleset over it.
func extract(t *testing.T, id lang.ID, src string) []syntax.Fact {
	t.Helper()
	l, ok := lang.Lookup(id)
	require.True(t, ok)
	rs, ok := For(id)
	require.True(t, ok, "no curated ruleset for %s", id)

	tree, err := syntax.Parse(context.Background(), l.Grammar(), []byte(src))
	require.NoError(t, err)
	t.Cleanup(tree.Close)

	facts, err := rs.Extract(tree.RootNode(), []byte(src))
	require.NoError(t, err)
	return facts
}

// summarize renders facts as "kind construct name" strings.
func summarize(facts []syntax.Fact) []string {
	out := make([]string, 0, len(facts))
	for _, f := range facts {
		out = append(out, f.Kind.String()+" "+f.Construct+" "+f.Name)
	}
	return out
}

func TestRulesets_MatchRegistry(t *testing.T) {
	for _, l := range lang.All() {
		_, ok := For(l.ID)
		assert.Equal(t, l.Curated, ok, "curated flag and ruleset disagree for %s", l.ID)
	}
	assert.Len(t, Languages(), 9)
}

func TestRulesets_Compile(t *testing.T) {
	for _, id := range Languages() {
		t.Run(string(id), func(t *testing.T) {
			assert.Empty(t, extract(t, id, ""))
		})
	}
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		lang lang.ID
		src  string
		want []string
	}{
		{
			name: "go",
			lang: lang.Go,
			src: `package main

import "fmt"

type Server struct{}

func (s *Server) Run() {}

func main() {
	fmt.Println("x")
	run()
}
`,
			want: []string{
				"import package fmt",
				"definition type Server",
				"definition method Run",
				"definition function main",
				"reference call run",
			},
		},
		{
			name: "python",
			lang: lang.Python,
			src: `import os
from collections import OrderedDict

class Greeter:
    def greet(self):
        print("hi")
`,
			want: []string{
				"import module os",
				"import module collections",
				"definition class Greeter",
				"definition function greet",
				"reference call print",
			},
		},
		{
			name: "javascript",
			lang: lang.JavaScript,
			src: `import fs from "fs";

function load() {}

const save = () => {};

class Store {
  fetch() {}
}
`,
			want: []string{
				"import module fs",
				"definition function load",
				"definition function save",
				"definition class Store",
				"definition method fetch",
			},
		},
		{
			name: "typescript",
			lang: lang.TypeScript,
			src: `interface Shape {}
type Id = string;
enum Color { Red }
class Circle {}
`,
			want: []string{
				"definition interface Shape",
				"definition type Id",
				"definition enum Color",
				"definition class Circle",
			},
		},
		{
			name: "java",
			lang: lang.Java,
			src: `import java.util.List;

class App {
    void run() {}
}
`,
			want: []string{
				"import package java.util.List",
				"definition class App",
				"definition method run",
			},
		},
		{
			name: "rust",
			lang: lang.Rust,
			src: `use std::fmt;

struct Point;

fn main() {}
`,
			want: []string{
				"import use std::fmt",
				"definition struct Point",
				"definition function main",
			},
		},
		{
			name: "ruby guards non-require calls",
			lang: lang.Ruby,
			src: `require 'json'
puts 'hello'

module Tools
  class Hammer
    def swing; end
  end
end
`,
			want: []string{
				"import require json",
				"definition module Tools",
				"definition class Hammer",
				"definition method swing",
			},
		},
		{
			name: "csharp",
			lang: lang.CSharp,
			src: `using System;

namespace Demo {
    class Program {
        void Main() {}
    }
}
`,
			want: []string{
				"import namespace System",
				"definition namespace Demo",
				"definition class Program",
				"definition method Main",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.want, summarize(extract(t, tt.lang, tt.src)))
		})
	}
}

func TestExtract_SingleFunction(t *testing.T) {
	facts := extract(t, lang.Go, "package p\n\nfunc only() {}\n")
	require.Len(t, facts, 1)
	assert.Equal(t, syntax.Definition, facts[0].Kind)
	assert.Equal(t, "only", facts[0].Name)
	assert.Equal(t, uint(3), facts[0].Line)
}

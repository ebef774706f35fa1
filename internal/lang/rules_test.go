package lang

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/tsgindex/internal/syntax"
)

// extractFacts parses src with the language's grammar and renders each fact
// as "kind construct name".
func extractFacts(t *testing.T, id ID, src string) []string {
	t.Helper()
	l, ok := Lookup(id)
	require.True(t, ok)
	require.True(t, l.HasGrammar(), "%s has no grammar", l.Name)

	tree, err := syntax.Parse(context.Background(), l.Grammar(), []byte(src))
	require.NoError(t, err)
	defer tree.Close()

	var got []string
	for _, f := range syntax.Extract(tree.RootNode(), []byte(src), l.Rules) {
		got = append(got, f.Kind.String()+" "+f.Construct+" "+f.Name)
	}
	return got
}

func TestPatternRules(t *testing.T) {
	tests := []struct {
		name string
		id   ID
		src  string
		want []string
	}{
		{
			name: "php",
			id:   PHP,
			src: `<?php
use App\Models\User;
require_once 'helpers.php';

interface Greeter {}

class Hello implements Greeter {
    public function greet() { return format_name("x"); }
}

function main() {}
`,
			want: []string{
				`import use App\Models\User`,
				"import include helpers.php",
				"definition interface Greeter",
				"definition class Hello",
				"definition method greet",
				"reference call format_name",
				"definition function main",
			},
		},
		{
			name: "kotlin",
			id:   Kotlin,
			src: `import kotlin.math.PI

class Circle(val r: Double)

object Registry

fun main() {
    println("hi")
}
`,
			want: []string{
				"import import kotlin.math.PI",
				"definition class Circle",
				"definition class Registry",
				"definition function main",
			},
		},
		{
			name: "scala",
			id:   Scala,
			src: `import scala.util.Try
import scala.collection._

trait Shape

class Circle(r: Double) extends Shape

object Main {
  def area(c: Circle): Double = 1.0
}
`,
			want: []string{
				"import import scala.util.Try",
				"import import scala.collection",
				"definition trait Shape",
				"definition class Circle",
				"definition class Main",
				"definition function area",
			},
		},
		{
			name: "lua",
			id:   Lua,
			src: `local json = require("json")

function greet(name)
  return "hi " .. name
end
`,
			want: []string{
				"import require json",
				"definition function greet",
			},
		},
		{
			name: "zig",
			id:   Zig,
			src: `const std = @import("std");

pub fn main() void {}

fn add(a: i32, b: i32) i32 {
    return a + b;
}
`,
			want: []string{
				"definition function main",
				"definition function add",
			},
		},
		{
			name: "c",
			id:   C,
			src: `#include <stdio.h>
#include "util.h"

typedef int count_t;

struct point { int x; int y; };

static char *dup(const char *s) { return 0; }

char **split(const char *s) { return 0; }

int main(void) {
    printf("hi");
    return 0;
}
`,
			want: []string{
				"import include stdio.h",
				"import include util.h",
				"definition type count_t",
				"definition struct point",
				"definition function dup",
				"definition function split",
				"definition function main",
				"reference call printf",
			},
		},
		{
			name: "cpp",
			id:   CPP,
			src: `#include <vector>

namespace geo {
class Shape {};
}

int &pick(int &a) { return a; }

void run() {
    helper();
}
`,
			want: []string{
				"import include vector",
				"definition namespace geo",
				"definition class Shape",
				"definition function pick",
				"definition function run",
				"reference call helper",
			},
		},
		{
			name: "bash",
			id:   Bash,
			src: `#!/bin/bash
source ./lib.sh

greet() {
  echo "hi"
}

function deploy {
  echo "go"
}
`,
			want: []string{
				"import source ./lib.sh",
				"definition function greet",
				"definition function deploy",
			},
		},
		{
			name: "ocaml",
			id:   OCaml,
			src: `open Printf

type point = { x : int; y : int }

module Geo = struct
  let origin = 0
end

let add x y = x + y
`,
			want: []string{
				"import open Printf",
				"definition type point",
				"definition module Geo",
				"definition value origin",
				"definition value add",
			},
		},
		{
			name: "hcl",
			id:   HCL,
			src: `terraform {
  required_version = ">= 1.0"
}

resource "aws_instance" "web" {
  ami = "abc"
}

variable "region" {}
`,
			want: []string{
				"definition block terraform",
				"definition block web",
				"definition block region",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractFacts(t, tt.id, tt.src))
		})
	}
}

func TestPatternRules_ScalaMultipleImportTakesFirstPath(t *testing.T) {
	got := extractFacts(t, Scala, "import scala.util.Try, java.io.File\n")
	assert.Equal(t, []string{"import import scala.util.Try"}, got)
}

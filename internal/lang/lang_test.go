package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentify(t *testing.T) {
	tests := []struct {
		ext  string
		want ID
	}{
		{"rs", Rust},
		{".rs", Rust},
		{"RS", Rust},
		{"py", Python},
		{"jsx", JavaScript},
		{"ts", TypeScript},
		{"tsx", TSX},
		{"m", ObjC},
		{"mm", ObjC},
		{"yml", YAML},
		{"htm", HTML},
		{"cs", CSharp},
		{"md", Markdown},
		{"sh", Bash},
		{"dart", Dart},
		{"", Unknown},
		{"exe", Unknown},
		{"txt", Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			assert.Equal(t, tt.want, Identify(tt.ext))
		})
	}
}

func TestForPath(t *testing.T) {
	assert.Equal(t, Go, ForPath("internal/lang/lang.go"))
	assert.Equal(t, Python, ForPath("/tmp/x.PY"))
	assert.Equal(t, Unknown, ForPath("Makefile"))
	assert.Equal(t, Unknown, ForPath("dir.d/README"))
}

func TestHasCuratedRules(t *testing.T) {
	for _, id := range []ID{Go, Python, JavaScript, TypeScript, TSX, Java, Rust, Ruby, CSharp} {
		assert.True(t, HasCuratedRules(id), "%s should be curated", id)
	}
	for _, id := range []ID{Kotlin, Lua, CSS, Swift, Unknown} {
		assert.False(t, HasCuratedRules(id), "%s should not be curated", id)
	}
}

func TestExtensionsFor(t *testing.T) {
	assert.Equal(t, []string{"yaml", "yml"}, ExtensionsFor(YAML))
	assert.Empty(t, ExtensionsFor(JSDoc))
	assert.Nil(t, ExtensionsFor(Unknown))

	exts := ExtensionsFor(Go)
	exts[0] = "mutated"
	assert.Equal(t, "go", PrimaryExtension(Go), "returned slice must be a copy")
}

func TestName(t *testing.T) {
	assert.Equal(t, "Objective-C", Name(ObjC))
	assert.Equal(t, "C#", Name(CSharp))
	assert.Equal(t, "Unknown", Name(Unknown))
}

func TestParse(t *testing.T) {
	id, ok := Parse("c#")
	require.True(t, ok)
	assert.Equal(t, CSharp, id)

	id, ok = Parse("kotlin")
	require.True(t, ok)
	assert.Equal(t, Kotlin, id)

	_, ok = Parse("cobol")
	assert.False(t, ok)
}

func TestStrategy(t *testing.T) {
	tests := []struct {
		id   ID
		want Strategy
	}{
		{Go, Curated},
		{Kotlin, Pattern},
		{PHP, Pattern},
		{YAML, Generic},
		{CSS, Generic},
		{Swift, NoParser},
		{JSON, NoParser},
	}
	for _, tt := range tests {
		l, ok := Lookup(tt.id)
		require.True(t, ok, tt.id)
		assert.Equal(t, tt.want, l.Strategy(), "strategy for %s", tt.id)
	}
}

func TestRegistry_Consistency(t *testing.T) {
	for _, l := range All() {
		assert.NotEmpty(t, l.Name, "language %q has no name", l.ID)
		assert.NotEmpty(t, l.LineComment, "language %q has no comment token", l.ID)
		for _, ext := range l.Extensions {
			assert.Equal(t, l.ID, Identify(ext), "extension %q", ext)
		}
		if l.Curated {
			assert.Empty(t, l.Rules, "curated language %q should not carry pattern rules", l.ID)
		}
	}
}

func TestGrammar_Shared(t *testing.T) {
	l, ok := Lookup(Go)
	require.True(t, ok)
	g1 := l.Grammar()
	require.NotNil(t, g1)
	assert.Same(t, g1, l.Grammar())

	swift, _ := Lookup(Swift)
	assert.Nil(t, swift.Grammar())
}

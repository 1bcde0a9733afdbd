package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	t.Parallel()

	data := map[string]any{
		"name": "alice",
		"global": map[string]any{
			"editor": "vim",
			"colors": map[string]any{"fg": "white"},
		},
		"git-user": "al",
	}

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "bare global reference",
			src:  "export EDITOR=!(global.editor)!\n",
			want: "export EDITOR=vim\n",
		},
		{
			name: "dotted global reference",
			src:  "export EDITOR=!( .global.editor )!",
			want: "export EDITOR=vim",
		},
		{
			name: "nested tree",
			src:  "fg=!(global.colors.fg)!",
			want: "fg=white",
		},
		{
			name: "local leaf",
			src:  "user=!(name)!",
			want: "user=alice",
		},
		{
			name: "sprig function",
			src:  "!(name | upper)!",
			want: "ALICE",
		},
		{
			name: "key that is not an identifier",
			src:  `!(index . "git-user")!`,
			want: "al",
		},
		{
			name: "text without actions",
			src:  "plain {{ braces }} stay",
			want: "plain {{ braces }} stay",
		},
		{
			name: "empty file",
			src:  "",
			want: "",
		},
	}

	r := New("!(", ")!")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := r.Render("test", tt.src, data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_CustomDelimiters(t *testing.T) {
	t.Parallel()

	r := New("<<", ">>")
	got, err := r.Render("custom", "editor: <<global.editor>> !(ignored)!", map[string]any{
		"global": map[string]any{"editor": "nano"},
	})
	require.NoError(t, err)
	assert.Equal(t, "editor: nano !(ignored)!", got)

	open, closeDelim := r.Delims()
	assert.Equal(t, "<<", open)
	assert.Equal(t, ">>", closeDelim)
}

func TestRender_Errors(t *testing.T) {
	t.Parallel()

	data := map[string]any{"global": map[string]any{"editor": "vim"}}

	tests := []struct {
		name string
		src  string
	}{
		{name: "missing nested key", src: "!(global.shell)!"},
		{name: "missing top-level key", src: "!( .missing )!"},
		{name: "unknown function", src: "!(nope)!"},
		{name: "unterminated action", src: "!(global.editor"},
	}

	r := New("!(", ")!")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := r.Render("broken.conf", tt.src, data)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrRender)
			assert.Contains(t, err.Error(), "broken.conf")
		})
	}
}

func TestRootFuncs(t *testing.T) {
	t.Parallel()

	funcs := rootFuncs(map[string]any{
		"global":   map[string]any{},
		"len":      "x",
		"with":     "x",
		"has-dash": "x",
		"1st":      "x",
		"_ok":      "x",
	})

	assert.Contains(t, funcs, "global")
	assert.Contains(t, funcs, "_ok")
	assert.NotContains(t, funcs, "len")
	assert.NotContains(t, funcs, "with")
	assert.NotContains(t, funcs, "has-dash")
	assert.NotContains(t, funcs, "1st")
}

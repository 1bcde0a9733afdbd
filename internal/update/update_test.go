package update

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPlatformInfo(t *testing.T) {
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, GetPlatformInfo())
}

func TestRelease_Highlights(t *testing.T) {
	tests := []struct {
		name      string
		changelog string
		n         int
		want      []string
		wantMore  int
	}{
		{
			name:      "empty changelog",
			changelog: "",
			n:         10,
			want:      nil,
			wantMore:  0,
		},
		{
			name:      "fewer lines than limit",
			changelog: "## Changes\n\n- fix apply\r\n",
			n:         10,
			want:      []string{"## Changes", "- fix apply"},
			wantMore:  0,
		},
		{
			name:      "truncated",
			changelog: "a\nb\nc\nd\n",
			n:         2,
			want:      []string{"a", "b"},
			wantMore:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Release{Changelog: tt.changelog}
			got, more := r.Highlights(tt.n)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantMore, more)
		})
	}
}

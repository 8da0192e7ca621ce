package patan

import (
	"runtime/debug"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersion_Prefix(t *testing.T) {
	v := Version()
	assert.True(t, strings.HasPrefix(v, "patan-"), "got %q", v)
	assert.Greater(t, len(v), len("patan-"))
}

func TestModuleVersion(t *testing.T) {
	tests := []struct {
		name string
		info *debug.BuildInfo
		want string
	}{
		{
			name: "main module",
			info: &debug.BuildInfo{Main: debug.Module{Path: modulePath, Version: "v1.2.0"}},
			want: "v1.2.0",
		},
		{
			name: "dependency",
			info: &debug.BuildInfo{
				Main: debug.Module{Path: "example.com/app", Version: "(devel)"},
				Deps: []*debug.Module{
					{Path: "github.com/rs/zerolog", Version: "v1.32.0"},
					{Path: modulePath, Version: "v0.9.1"},
				},
			},
			want: "v0.9.1",
		},
		{
			name: "replaced dependency",
			info: &debug.BuildInfo{
				Main: debug.Module{Path: "example.com/app"},
				Deps: []*debug.Module{
					{Path: modulePath, Version: "v0.9.1", Replace: &debug.Module{Path: "../patan", Version: "v0.9.2-local"}},
				},
			},
			want: "v0.9.2-local",
		},
		{
			name: "absent",
			info: &debug.BuildInfo{Main: debug.Module{Path: "example.com/app"}},
			want: "unknown (module not in build info)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, moduleVersion(tt.info))
		})
	}
}

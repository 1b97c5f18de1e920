package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gookit/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	color.Disable()

	tests := []struct {
		name      string
		flags     flags
		wantCode  int
		wantLines int
	}{
		{
			name: "findings",
			flags: flags{
				dir:      "../../unwrapcheck",
				patterns: argSet{"./testdata/src/guarded"},
			},
			wantCode:  exitFindings,
			wantLines: 20,
		},
		{
			name: "expect findings",
			flags: flags{
				dir:      "../../unwrapcheck",
				patterns: argSet{"./testdata/src/expectcheck"},
				expect:   true,
			},
			wantCode:  exitFindings,
			wantLines: 2,
		},
		{
			name: "clean",
			flags: flags{
				dir:      "../../internal/xslices",
				patterns: argSet{"."},
			},
			wantCode:  exitClean,
			wantLines: 0,
		},
		{
			name: "broken package",
			flags: flags{
				dir:      "../../unwrapcheck",
				patterns: argSet{"./testdata/src/broken"},
			},
			wantCode:  exitFailure,
			wantLines: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			var buf bytes.Buffer

			code := check(ctx, &buf, tt.flags)
			require.Equal(t, tt.wantCode, code, buf.String())

			out := strings.TrimSpace(buf.String())
			if tt.wantLines == 0 {
				assert.Empty(t, out)
				return
			}

			assert.Len(t, strings.Split(out, "\n"), tt.wantLines)
		})
	}
}

func TestArgSet(t *testing.T) {
	t.Parallel()

	var a argSet

	require.NoError(t, a.Set("./a/...,./b"))
	assert.Equal(t, argSet{"./a/...", "./b"}, a)
	assert.Equal(t, "./a/..., ./b", a.String())
}

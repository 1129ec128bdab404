package node

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "bare array",
			in:   `[{"title":"A"}]`,
			want: `[{"title":"A"}]`,
		},
		{
			name: "code fence",
			in:   "```json\n[{\"title\":\"A\"}]\n```",
			want: `[{"title":"A"}]`,
		},
		{
			name: "surrounding prose",
			in:   "Sure! Here it is:\n{\"slides\":[]}\nLet me know if you need more.",
			want: `{"slides":[]}`,
		},
		{
			name: "object before array",
			in:   `{"slides":[{"title":"A"}]}`,
			want: `{"slides":[{"title":"A"}]}`,
		},
		{
			name: "empty input",
			in:   "   ",
			want: "",
		},
		{
			name: "no json at all",
			in:   "cannot comply",
			want: "cannot comply",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJSONObject(tt.in))
		})
	}
}

func TestTruncateByRunes(t *testing.T) {
	assert.Equal(t, "", TruncateByRunes("hello", 0))
	assert.Equal(t, "hel", TruncateByRunes("hello", 3))
	assert.Equal(t, "hello", TruncateByRunes("hello", 10))
	assert.Equal(t, "光合", TruncateByRunes("光合作用", 2))
}

func TestIsResponseFormatUnsupportedError(t *testing.T) {
	assert.False(t, IsResponseFormatUnsupportedError(nil))
	assert.False(t, IsResponseFormatUnsupportedError(errors.New("rate limit exceeded")))
	assert.True(t, IsResponseFormatUnsupportedError(errors.New("response_format is not supported by this model")))
	assert.True(t, IsResponseFormatUnsupportedError(errors.New("Unknown parameter: 'response_format.json_schema'")))
	assert.True(t, IsResponseFormatUnsupportedError(errors.New("failed to parse response body")))
}

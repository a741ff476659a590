package tabs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromClipboard(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    Tab
		wantErr bool
	}{
		{
			name:    "url only gets default title",
			payload: "https://example.com/a",
			want:    Tab{Title: "Untitled", URL: "https://example.com/a"},
		},
		{
			name:    "url with title line",
			payload: "https://example.com/a\nAttention Is All You Need",
			want:    Tab{Title: "Attention Is All You Need", URL: "https://example.com/a"},
		},
		{
			name:    "surrounding whitespace is trimmed",
			payload: "  https://example.com/a  \n",
			want:    Tab{Title: "Untitled", URL: "https://example.com/a"},
		},
		{
			name:    "empty clipboard",
			payload: "",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			payload: "   \n  ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromClipboard(tt.payload)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrNoTab)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsInternalURL(t *testing.T) {
	internal := []string{
		"chrome://settings",
		"chrome-extension://abcdef/panel.html",
		"about:blank",
		"edge://flags",
		"brave://rewards",
	}
	for _, url := range internal {
		assert.True(t, IsInternalURL(url), "url %q", url)
	}

	external := []string{
		"https://example.com",
		"http://chrome.com",
		"https://arxiv.org/abs/1706.03762",
	}
	for _, url := range external {
		assert.False(t, IsInternalURL(url), "url %q", url)
	}
}

package version

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsNewer(t *testing.T) {
	tests := []struct {
		latest, current string
		want            bool
	}{
		{"1.10.0", "1.9.3", true},
		{"1.2.0", "1.2.0", false},
		{"1.2.0", "1.2.0-dirty", false},
		{"v2.0.0", "1.99.99", true},
		{"1.0.1", "1.1.0", false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, IsNewer(tt.latest, tt.current), "%s vs %s", tt.latest, tt.current)
	}
}

func TestLatestVersion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"tag_name":"v1.4.2"}`))
	}))
	defer server.Close()

	original := releasesURL
	releasesURL = server.URL
	defer func() { releasesURL = original }()

	latest, err := LatestVersion()
	require.NoError(t, err)
	require.Equal(t, "1.4.2", latest)
}

func TestFormatVersion(t *testing.T) {
	originalVersion, originalCommit, originalBuild := Version, Commit, BuildTime
	defer func() { Version, Commit, BuildTime = originalVersion, originalCommit, originalBuild }()

	Version, Commit, BuildTime = "1.0.0", "", ""
	require.Equal(t, "1.0.0 (development)", FormatVersion())

	Version, Commit, BuildTime = "1.0.0", "abc1234", "2024-03-01T10:00:00Z"
	require.Equal(t, "1.0.0 (commit: abc1234, built at: 2024-03-01T10:00:00Z)", FormatVersion())
}

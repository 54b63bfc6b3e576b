package update

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		major   int
		minor   int
		wantErr bool
	}{
		{name: "plain", input: "2.5", major: 2, minor: 5},
		{name: "v prefix", input: "v1.12", major: 1, minor: 12},
		{name: "patch component ignored", input: "3.4.1", major: 3, minor: 4},
		{name: "whitespace tolerated", input: " 2.0 ", major: 2, minor: 0},
		{name: "single component", input: "7", wantErr: true},
		{name: "non-numeric major", input: "two.5", wantErr: true},
		{name: "non-numeric minor", input: "2.five", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			major, minor, err := ParseVersion(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.major, major)
			assert.Equal(t, tt.minor, minor)
		})
	}
}

func TestNewerThan(t *testing.T) {
	t.Parallel()

	v := &VersionInfo{Major: 2, Minor: 5}

	assert.True(t, v.NewerThan(2, 4))
	assert.True(t, v.NewerThan(1, 9))
	assert.False(t, v.NewerThan(2, 5))
	assert.False(t, v.NewerThan(2, 6))
	assert.False(t, v.NewerThan(3, 0))
}

func TestVersionString(t *testing.T) {
	t.Parallel()

	v := &VersionInfo{Major: 2, Minor: 5}
	assert.Equal(t, "2.5", v.String())
}

package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseReleaseType verifies that valid release type strings parse
// (case-insensitively) and invalid ones are rejected with a descriptive error.
func TestParseReleaseType(t *testing.T) {
	tests := []struct {
		input   string
		want    ReleaseType
		wantErr bool
	}{
		{"major", ReleaseMajor, false},
		{"minor", ReleaseMinor, false},
		{"patch", ReleasePatch, false},
		{"PATCH", ReleasePatch, false},
		{"beta", "", true},
		{"", "", true},
		{"majorr", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseReleaseType(tt.input)
			if tt.wantErr {
				assert.Error(t, err, "input %q should not parse", tt.input)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestReleaseTypeIsValid verifies IsValid directly, including the zero value.
func TestReleaseTypeIsValid(t *testing.T) {
	assert.True(t, ReleaseMajor.IsValid())
	assert.True(t, ReleaseMinor.IsValid())
	assert.True(t, ReleasePatch.IsValid())
	assert.False(t, ReleaseType("").IsValid(), "zero value should be invalid")
	assert.False(t, ReleaseType("beta").IsValid())
}

// TestReleaseConfigValidate verifies that Validate requires remote, branch,
// and a valid release type, but never inspects the filesystem.
func TestReleaseConfigValidate(t *testing.T) {
	valid := ReleaseConfig{
		Remote:      "git@example.com:acme/widget.git",
		Branch:      "main",
		ReleaseType: ReleasePatch,
	}
	assert.NoError(t, valid.Validate())

	noRemote := valid
	noRemote.Remote = ""
	assert.Error(t, noRemote.Validate(), "empty remote should be rejected")

	noBranch := valid
	noBranch.Branch = ""
	assert.Error(t, noBranch.Validate(), "empty branch should be rejected")

	badType := valid
	badType.ReleaseType = "beta"
	assert.Error(t, badType.Validate(), "invalid release type should be rejected")

	// WorkDir and Debug are optional — leaving them zero is fine.
	withDir := valid
	withDir.WorkDir = "/tmp/release"
	withDir.Debug = true
	assert.NoError(t, withDir.Validate())
}

// TestUserErrorFormatting verifies Error output with and without a wrapped
// underlying error.
func TestUserErrorFormatting(t *testing.T) {
	plain := NewUserError("directory already exists: %s", "/tmp/x")
	assert.Equal(t, "directory already exists: /tmp/x", plain.Error())

	underlying := fmt.Errorf("permission denied")
	wrapped := WrapUserError(underlying, "check-doc failed")
	assert.Equal(t, "check-doc failed: permission denied", wrapped.Error())
}

// TestUserErrorUnwrap verifies that errors.Is and errors.As see through
// UserError to the underlying error, which the CLI layer relies on to
// classify failures.
func TestUserErrorUnwrap(t *testing.T) {
	underlying := errors.New("boom")
	wrapped := WrapUserError(underlying, "step failed")

	assert.True(t, errors.Is(wrapped, underlying), "errors.Is should find the wrapped error")

	var userErr *UserError
	assert.True(t, errors.As(error(wrapped), &userErr), "errors.As should match *UserError")
	assert.Equal(t, "step failed", userErr.Message)

	// A plain error is not a UserError.
	var notUser *UserError
	assert.False(t, errors.As(underlying, &notUser))
}

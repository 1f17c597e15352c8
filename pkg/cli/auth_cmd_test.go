package cli

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthTokenCmd(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantSub    string
		wantEmail  string
		wantErr    bool
		errContain string
	}{
		{
			name:    "basic token",
			args:    []string{"--subject", "user-1", "--secret", "test-secret"},
			wantSub: "user-1",
		},
		{
			name:      "email claim",
			args:      []string{"--subject", "user-2", "--email", "dev@example.com", "--secret", "test-secret"},
			wantSub:   "user-2",
			wantEmail: "dev@example.com",
		},
		{
			name:    "custom expiry",
			args:    []string{"--subject", "user-3", "--secret", "test-secret", "--expires", "48h"},
			wantSub: "user-3",
		},
		{
			name:       "missing subject",
			args:       []string{"--secret", "test-secret"},
			wantErr:    true,
			errContain: "required",
		},
		{
			name:       "missing secret",
			args:       []string{"--subject", "user-1"},
			wantErr:    true,
			errContain: "required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			t.Setenv("HOME", dir)

			cmd := newAuthTokenCmd()
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			if tt.wantErr {
				require.Error(t, err)
				if tt.errContain != "" {
					assert.Contains(t, err.Error(), tt.errContain)
				}
				return
			}
			require.NoError(t, err)

			// Load the saved config and verify the token was persisted
			cfg, err := LoadUserConfig()
			require.NoError(t, err)

			p, ok := cfg.Profiles[cfg.CurrentProfile]
			require.True(t, ok, "profile %q should exist", cfg.CurrentProfile)
			require.NotEmpty(t, p.Token)

			// Parse and verify the saved token
			parsed, err := jwt.Parse(p.Token, func(_ *jwt.Token) (interface{}, error) {
				return []byte("test-secret"), nil
			})
			require.NoError(t, err)
			require.True(t, parsed.Valid)

			claims, ok := parsed.Claims.(jwt.MapClaims)
			require.True(t, ok)
			assert.Equal(t, tt.wantSub, claims["sub"])
			if tt.wantEmail != "" {
				assert.Equal(t, tt.wantEmail, claims["email"])
			}
		})
	}
}

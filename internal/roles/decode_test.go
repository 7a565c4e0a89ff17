package roles

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeToken builds an unsigned JWT-shaped string with the given
// payload claims.
func makeToken(t *testing.T, claims map[string]interface{}) string {
	t.Helper()

	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload, err := json.Marshal(claims)
	require.NoError(t, err)
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + ".signature"
}

func TestDecodeToken(t *testing.T) {
	t.Run("extracts subject and role claims", func(t *testing.T) {
		token := makeToken(t, map[string]interface{}{
			"sub":  "student@uni.edu",
			"role": "support",
		})

		claims, ok := DecodeToken(token)
		require.True(t, ok)
		assert.Equal(t, "student@uni.edu", claims.Subject)
		assert.Equal(t, RoleSupport, claims.Role)
	})

	t.Run("missing claims yield zero values", func(t *testing.T) {
		token := makeToken(t, map[string]interface{}{"exp": 4102444800})

		claims, ok := DecodeToken(token)
		require.True(t, ok)
		assert.Empty(t, claims.Subject)
		assert.Empty(t, claims.Role)
	})

	t.Run("non-string role claim is ignored", func(t *testing.T) {
		token := makeToken(t, map[string]interface{}{"role": 4})

		claims, ok := DecodeToken(token)
		require.True(t, ok)
		assert.Empty(t, claims.Role)
	})

	t.Run("malformed tokens never panic", func(t *testing.T) {
		cases := []struct {
			name  string
			token string
		}{
			{"empty string", ""},
			{"no separators", "nodots"},
			{"one separator", "header.payload"},
			{"too many separators", "a.b.c.d"},
			{"bad base64 payload", "header.!!!.signature"},
			{"payload not JSON", "header." + base64.RawURLEncoding.EncodeToString([]byte("plain text")) + ".sig"},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				claims, ok := DecodeToken(tc.token)
				assert.False(t, ok)
				assert.Empty(t, claims.Subject)
				assert.Empty(t, claims.Role)
			})
		}
	})
}

func TestLabel(t *testing.T) {
	t.Run("fixed labels for known roles", func(t *testing.T) {
		assert.Equal(t, "Student", Label(RoleStudent))
		assert.Equal(t, "Support Staff", Label(RoleSupport))
		assert.Equal(t, "Department Manager", Label(RoleDepartment))
		assert.Equal(t, "Administrator", Label(RoleAdmin))
	})

	t.Run("repeated calls return the same label", func(t *testing.T) {
		first := Label(RoleAdmin)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, Label(RoleAdmin))
		}
	})

	t.Run("unmapped roles are returned unchanged", func(t *testing.T) {
		assert.Equal(t, "superuser", Label(Role("superuser")))
		assert.Equal(t, "", Label(Role("")))
	})
}

func TestLabelForID(t *testing.T) {
	assert.Equal(t, "Student", LabelForID(1))
	assert.Equal(t, "Support Staff", LabelForID(2))
	assert.Equal(t, "Department Manager", LabelForID(3))
	assert.Equal(t, "Administrator", LabelForID(4))
	assert.Equal(t, "Unknown Role", LabelForID(0))
	assert.Equal(t, "Unknown Role", LabelForID(99))
}

func TestKnown(t *testing.T) {
	for _, r := range All() {
		assert.True(t, Known(r), "role %s should be known", r)
	}
	assert.False(t, Known(Role("manager")))
	assert.False(t, Known(Role("")))
}

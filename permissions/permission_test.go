package permissions_test

import (
	"sitterhub/permissions"
	"sitterhub/shared/constant"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_EmbeddedTable(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	accept := data.FindPermissions("/v1/bookings/{bookingId}/accept", "POST")
	assert.Equal(t, []string{constant.RoleSitter}, accept.Permissions)

	submit := data.FindPermissions("/v1/bookings", "POST")
	assert.True(t, submit.Skip)

	waivers := data.FindPermissions("/v1/bookings/{bookingId}/waivers", "GET")
	assert.Equal(t, []string{constant.RoleAdmin}, waivers.Permissions)

	assert.Equal(t, permissions.Permission{}, data.FindPermissions("/v1/unknown", "GET"))
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{name: "valid", doc: `{"endpoints":[{"path":"/v1/bookings","method":"GET","permissions":["admin"]}]}`},
		{name: "unknown role", doc: `{"endpoints":[{"path":"/v1/bookings","method":"GET","permissions":["owner"]}]}`, wantErr: `unknown role "owner"`},
		{name: "missing method", doc: `{"endpoints":[{"path":"/v1/bookings"}]}`, wantErr: "missing path or method"},
		{name: "malformed", doc: `{"endpoints":`, wantErr: "decode permissions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := permissions.Parse([]byte(tt.doc))

			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

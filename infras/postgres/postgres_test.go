package postgres

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNode_DSN(t *testing.T) {
	n := node{
		name:     "write",
		host:     "10.0.0.5",
		port:     "5433",
		user:     "sitterhub",
		password: "s3cr#t:pw",
		database: "dev_sitterhub",
		sslMode:  "require",
	}

	dsn, err := url.Parse(n.dsn())
	require.NoError(t, err)

	password, ok := dsn.User.Password()
	require.True(t, ok)

	assert.Equal(t, "s3cr#t:pw", password)
	assert.Equal(t, "10.0.0.5:5433", dsn.Host)
	assert.Equal(t, "/dev_sitterhub", dsn.Path)
	assert.Equal(t, "require", dsn.Query().Get("sslmode"))
}

package identity

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientOptions(t *testing.T) {
	assert.Nil(t, clientOptions(Config{}))
	assert.Len(t, clientOptions(Config{CredentialsFile: "/etc/firebase.json"}), 1)
	assert.Len(t, clientOptions(Config{CredentialsJSON: `{"type":"service_account"}`}), 1)

	encoded := base64.StdEncoding.EncodeToString([]byte(`{"type":"service_account"}`))
	assert.Len(t, clientOptions(Config{CredentialsJSON: encoded}), 1)

	assert.Nil(t, clientOptions(Config{CredentialsJSON: "not base64!"}))
}

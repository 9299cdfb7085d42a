package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    ID
		wantErr bool
	}{
		{"number", `42`, "42", false},
		{"string", `"abc-1"`, "abc-1", false},
		{"null", `null`, "", false},
		{"bool", `true`, "", true},
		{"object", `{}`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id ID
			err := json.Unmarshal([]byte(tt.in), &id)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestUser_RoundTripKeepsNumericIDAsString(t *testing.T) {
	var u User
	require.NoError(t, json.Unmarshal([]byte(`{"id":7,"username":"alice","name":"Alice A"}`), &u))
	assert.Equal(t, ID("7"), u.ID)

	b, err := json.Marshal(u)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"id":"7"`)
}

func TestUser_DisplayName(t *testing.T) {
	var nilUser *User
	assert.Equal(t, "", nilUser.DisplayName())
	assert.Equal(t, "bob", (&User{Username: "bob"}).DisplayName())
	assert.Equal(t, "Bob B", (&User{Username: "bob", Name: "Bob B"}).DisplayName())
}

func TestCredentials_JSONShape(t *testing.T) {
	c := Credentials{Access: "a", Refresh: "r", User: &User{ID: "1", Username: "u"}}
	b, err := json.Marshal(c)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Equal(t, "a", raw["access"])
	assert.Equal(t, "r", raw["refresh"])
	assert.Contains(t, raw, "user")
}

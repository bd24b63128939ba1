package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	router, _, _ := newTestServer(t)

	recorder := doJSON(t, router, http.MethodPost, "/newuser", gin.H{
		"username":    "alice",
		"password":    "pw1",
		"name":        "Alice",
		"email":       "a@x.com",
		"phoneNumber": "555",
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	body := decodeBody(t, recorder)
	assert.Equal(t, "User created successfully", body["message"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "alice", user["username"])
	// The password hash must never be serialized.
	assert.NotContains(t, recorder.Body.String(), "password")

	recorder = doJSON(t, router, http.MethodPost, "/login", gin.H{
		"username": "alice",
		"password": "pw1",
	})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	body = decodeBody(t, recorder)
	assert.Equal(t, "Login successful", body["message"])
	assert.EqualValues(t, 1, body["userId"])
}

func TestRegister_MissingFields(t *testing.T) {
	router, _, _ := newTestServer(t)

	for name, payload := range map[string]gin.H{
		"empty body":      {},
		"missing email":   {"username": "a", "password": "b", "name": "c", "phoneNumber": "1"},
		"whitespace only": {"username": "  ", "password": "b", "name": "c", "email": "d@x.com", "phoneNumber": "1"},
	} {
		recorder := doJSON(t, router, http.MethodPost, "/newuser", payload)
		assert.Equal(t, http.StatusBadRequest, recorder.Code, name)
		assert.Equal(t, "All fields are required", decodeBody(t, recorder)["error"], name)
	}
}

func TestRegister_TrimsWhitespace(t *testing.T) {
	router, _, _ := newTestServer(t)

	recorder := doJSON(t, router, http.MethodPost, "/newuser", gin.H{
		"username":    "  alice  ",
		"password":    " pw1 ",
		"name":        " Alice ",
		"email":       " a@x.com ",
		"phoneNumber": " 555 ",
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	// The trimmed credentials are what got stored.
	recorder = doJSON(t, router, http.MethodPost, "/login", gin.H{
		"username": "alice",
		"password": "pw1",
	})
	assert.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
}

func TestRegister_ConflictFieldPriority(t *testing.T) {
	router, _, _ := newTestServer(t)

	recorder := doJSON(t, router, http.MethodPost, "/newuser", gin.H{
		"username":    "alice",
		"password":    "pw1",
		"name":        "Alice",
		"email":       "a@x.com",
		"phoneNumber": "555",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	cases := []struct {
		name     string
		payload  gin.H
		conflict string
	}{
		{
			name: "username wins over email and phone",
			payload: gin.H{
				"username": "alice", "email": "a@x.com", "phoneNumber": "555",
			},
			conflict: "Username already exists",
		},
		{
			name: "email wins over phone",
			payload: gin.H{
				"username": "bob", "email": "a@x.com", "phoneNumber": "555",
			},
			conflict: "Email already exists",
		},
		{
			name: "phone conflicts alone",
			payload: gin.H{
				"username": "bob", "email": "b@x.com", "phoneNumber": "555",
			},
			conflict: "Phone number already exists",
		},
	}

	for _, tc := range cases {
		tc.payload["password"] = "pw2"
		tc.payload["name"] = "Bob"
		recorder := doJSON(t, router, http.MethodPost, "/newuser", tc.payload)
		assert.Equal(t, http.StatusBadRequest, recorder.Code, tc.name)
		assert.Equal(t, tc.conflict, decodeBody(t, recorder)["error"], tc.name)
	}
}

func TestLogin_NoUsernameEnumeration(t *testing.T) {
	router, _, _ := newTestServer(t)
	registerAndLogin(t, router, "alice", "pw1", "a@x.com", "555")

	unknownUser := doJSON(t, router, http.MethodPost, "/login", gin.H{
		"username": "nobody",
		"password": "pw1",
	})
	wrongPassword := doJSON(t, router, http.MethodPost, "/login", gin.H{
		"username": "alice",
		"password": "wrong",
	})

	// Identical status and body for both failure modes.
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, unknownUser.Body.String(), wrongPassword.Body.String())
	assert.Equal(t, "Invalid username or password", decodeBody(t, unknownUser)["message"])
}

func TestLogin_MissingFields(t *testing.T) {
	router, _, _ := newTestServer(t)

	recorder := doJSON(t, router, http.MethodPost, "/login", gin.H{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "username and password required", decodeBody(t, recorder)["message"])
}

func TestLogout_IsIdempotent(t *testing.T) {
	router, _, _ := newTestServer(t)

	// No session at all still succeeds.
	recorder := doJSON(t, router, http.MethodPost, "/logout", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "Logged out successfully", decodeBody(t, recorder)["message"])

	// A real session is destroyed and the cart gate closes behind it.
	cookie := registerAndLogin(t, router, "alice", "pw1", "a@x.com", "555")

	recorder = doJSON(t, router, http.MethodPost, "/logout", nil, cookie)
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = doJSON(t, router, http.MethodGet, "/cart", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// Logging out again with the dead cookie still succeeds.
	recorder = doJSON(t, router, http.MethodPost, "/logout", nil, cookie)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

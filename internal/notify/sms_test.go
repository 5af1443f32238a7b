package notify

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClientPostsToGateway(t *testing.T) {
	var got *http.Request
	var form map[string][]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		got = r
		form = r.PostForm
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewClient(server.URL, "sandbox", "test-key", "REMIT")
	require.NoError(t, client.Notify("+233123456789", "You sent 10 USD"))

	require.Equal(t, "/version1/messaging", got.URL.Path)
	require.Equal(t, "test-key", got.Header.Get("apiKey"))
	require.Equal(t, []string{"sandbox"}, form["username"])
	require.Equal(t, []string{"+233123456789"}, form["to"])
	require.Equal(t, []string{"You sent 10 USD"}, form["message"])
	require.Equal(t, []string{"REMIT"}, form["from"])
}

func TestClientReportsGatewayErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL, "sandbox", "bad-key", "")
	err := client.Notify("+233123456789", "hello")
	require.Error(t, err)
	require.Contains(t, err.Error(), "401")
}

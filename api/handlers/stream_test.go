package handlers_test

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linesmerrill/prosecution-case-api/api/handlers"
	"github.com/linesmerrill/prosecution-case-api/api/testhelpers"
	"github.com/linesmerrill/prosecution-case-api/databases"
	"github.com/linesmerrill/prosecution-case-api/models"
)

func dialStream(t *testing.T, server *httptest.Server, collection, email string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/stream/" + collection
	header := http.Header{}
	header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(email+":"+testhelpers.Password)))
	return websocket.DefaultDialer.Dial(url, header)
}

func readSnapshot(t *testing.T, conn *websocket.Conn) handlers.SnapshotMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg handlers.SnapshotMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestStream_StreamHandler(t *testing.T) {
	ta := newTestApp(t)
	server := httptest.NewServer(ta.Router)
	defer server.Close()

	conn, _, err := dialStream(t, server, databases.CasesCollection, leadEmail)
	require.NoError(t, err)
	defer conn.Close()

	first := readSnapshot(t, conn)
	assert.Equal(t, "snapshot", first.Event)
	assert.Equal(t, databases.CasesCollection, first.Collection)
	assert.Len(t, first.Records, 6)
	assert.Equal(t, "Dawit Mekonnen", first.Records["case-1"]["suspectName"])

	lead := staticUser(t, leadEmail)
	created, err := ta.Service.CreateCase(context.Background(), lead, models.Case{SuspectName: "Lidya Assefa"})
	require.NoError(t, err)

	next := readSnapshot(t, conn)
	assert.Len(t, next.Records, 7)
	assert.Contains(t, next.Records, created.ID)
}

func TestStream_StreamHandlerUnknownCollection(t *testing.T) {
	ta := newTestApp(t)
	server := httptest.NewServer(ta.Router)
	defer server.Close()

	_, resp, err := dialStream(t, server, databases.UsersCollection, leadEmail)

	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStream_StreamHandlerRequiresCredentials(t *testing.T) {
	ta := newTestApp(t)
	server := httptest.NewServer(ta.Router)
	defer server.Close()

	_, resp, err := dialStream(t, server, databases.CasesCollection, "nobody@example.com")

	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

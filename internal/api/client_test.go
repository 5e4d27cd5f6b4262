package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"smartdir/internal/directory"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
	)
}

// recorded is one request seen by the fake backend.
type recorded struct {
	Method string
	Path   string
	Body   string
	CType  string
}

type fakeBackend struct {
	mu       sync.Mutex
	requests []recorded
	status   int
	response string
}

func newFakeBackend(t *testing.T, status int, response string) (*fakeBackend, *Client) {
	t.Helper()
	fb := &fakeBackend{status: status, response: response}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		fb.mu.Lock()
		fb.requests = append(fb.requests, recorded{
			Method: r.Method,
			Path:   r.URL.EscapedPath(),
			Body:   string(body),
			CType:  r.Header.Get("Content-Type"),
		})
		fb.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(fb.status)
		_, _ = w.Write([]byte(fb.response))
	}))
	t.Cleanup(srv.Close)
	return fb, NewClient(srv.URL+"/", WithHTTPClient(srv.Client()))
}

func (fb *fakeBackend) seen() []recorded {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]recorded(nil), fb.requests...)
}

func TestPartners_List(t *testing.T) {
	fb, client := newFakeBackend(t, http.StatusOK,
		`[{"_id":"1","nombre":"Ana","telefono":"555","especialidad":"Pediatría","ubicacion":"Zona 10","activo":true},
		  {"_id":"2","nombre":"Luis","telefono":"","especialidad":"","ubicacion":"","activo":false}]`)

	got, err := client.Partners().List(context.Background())
	require.NoError(t, err)

	want := []directory.Partner{
		{ID: "1", Name: "Ana", Phone: "555", Specialty: "Pediatría", Location: "Zona 10", Active: true},
		{ID: "2", Name: "Luis"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("partners mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []recorded{{Method: "GET", Path: "/api/socios"}}, fb.seen())
}

func TestList_NullBodyIsEmpty(t *testing.T) {
	_, client := newFakeBackend(t, http.StatusOK, `null`)

	got, err := client.Recommendations().List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestList_PreservesBackendOrder(t *testing.T) {
	_, client := newFakeBackend(t, http.StatusOK,
		`[{"_id":"b","nivel":"info"},{"_id":"a","nivel":"error"},{"_id":"c","nivel":"debug"}]`)

	got, err := client.Logs().List(context.Background())
	require.NoError(t, err)

	ids := make([]string, len(got))
	for i, l := range got {
		ids[i] = l.ID
	}
	assert.Equal(t, []string{"b", "a", "c"}, ids)
}

func TestConversations_ListKeepsRaw(t *testing.T) {
	_, client := newFakeBackend(t, http.StatusOK,
		`[{"_id":"c1","numero":"+502","idioma":"en","estado":"cerrado","updatedAt":"2025-01-02T03:04:05Z","mensajes":[1,2]}]`)

	got, err := client.Conversations().List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Contains(t, string(got[0].Raw), `"mensajes":[1,2]`)
	if diff := cmp.Diff(directory.Conversation{ID: "c1", Number: "+502", Language: "en", Status: "cerrado", UpdatedAt: "2025-01-02T03:04:05Z"},
		got[0], cmpopts.IgnoreFields(directory.Conversation{}, "Messages", "Raw")); diff != "" {
		t.Errorf("conversation mismatch (-want +got):\n%s", diff)
	}
}

func TestPartners_CreateSendsOnePost(t *testing.T) {
	fb, client := newFakeBackend(t, http.StatusCreated, `{"_id":"9"}`)

	draft := directory.NewPartner()
	draft.Name = "Clínica Sur"
	draft.Phone = "2222-0000"
	draft.Specialty = "Cardiología"
	draft.Location = "Mixco"
	draft.Active = false

	require.NoError(t, client.Partners().Create(context.Background(), draft))

	reqs := fb.seen()
	require.Len(t, reqs, 1)
	assert.Equal(t, "POST", reqs[0].Method)
	assert.Equal(t, "/api/socios", reqs[0].Path)
	assert.Equal(t, "application/json", reqs[0].CType)
	assert.JSONEq(t,
		`{"nombre":"Clínica Sur","telefono":"2222-0000","especialidad":"Cardiología","ubicacion":"Mixco","activo":false}`,
		reqs[0].Body)
}

func TestPartners_UpdateSendsPutToID(t *testing.T) {
	fb, client := newFakeBackend(t, http.StatusOK, `{}`)

	p := directory.Partner{ID: "abc123", Name: "Ana", Active: true}
	require.NoError(t, client.Partners().Update(context.Background(), p.ID, p))

	reqs := fb.seen()
	require.Len(t, reqs, 1)
	assert.Equal(t, "PUT", reqs[0].Method)
	assert.Equal(t, "/api/socios/abc123", reqs[0].Path)

	var sent directory.Partner
	require.NoError(t, json.Unmarshal([]byte(reqs[0].Body), &sent))
	assert.Equal(t, p, sent)
}

func TestDelete_EscapesID(t *testing.T) {
	fb, client := newFakeBackend(t, http.StatusOK, `{"deleted":true}`)

	require.NoError(t, client.Conversations().Delete(context.Background(), "a/b"))

	reqs := fb.seen()
	require.Len(t, reqs, 1)
	assert.Equal(t, "DELETE", reqs[0].Method)
	assert.Equal(t, "/api/conversaciones/a%2Fb", reqs[0].Path)
	assert.Empty(t, reqs[0].Body)
}

func TestLogs_Clear(t *testing.T) {
	fb, client := newFakeBackend(t, http.StatusOK, `{"deleted_count":3}`)

	require.NoError(t, client.Logs().Clear(context.Background()))
	assert.Equal(t, []recorded{{Method: "DELETE", Path: "/api/logs"}}, fb.seen())
}

func TestStatusError(t *testing.T) {
	_, client := newFakeBackend(t, http.StatusNotFound, `{"detail":"Documento no encontrado"}`)

	err := client.Recommendations().Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "DELETE", se.Method)
	assert.Equal(t, "/api/recomendaciones/missing", se.Path)
	assert.Contains(t, se.Error(), "Documento no encontrado")
}

func TestList_DecodeError(t *testing.T) {
	_, client := newFakeBackend(t, http.StatusOK, `{"collection":"partners"}`)

	_, err := client.Partners().List(context.Background())
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(url, WithTimeout(time.Second))
	_, err := client.Logs().List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GET /api/logs")
}

func TestResourcePaths(t *testing.T) {
	c := NewClient("http://example.test")
	assert.Equal(t, PathPartners, c.Partners().Path())
	assert.Equal(t, PathRecommendations, c.Recommendations().Path())
	assert.Equal(t, PathConversations, c.Conversations().Path())
	assert.Equal(t, PathLogs, c.Logs().Path())
	assert.Equal(t, "http://example.test", c.BaseURL())
}

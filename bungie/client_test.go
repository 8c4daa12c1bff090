package bungie

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rking788/warmind-advisors/models"
)

func TestIsValid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{"success", envelope(`{"data": {}}`), true},
		{"empty response object", envelope(`{}`), true},
		{"wrong error code", `{"ErrorCode": 5, "ErrorStatus": "SystemDisabled", "Response": {}}`, false},
		{"null response", envelope(`null`), false},
		{"missing response", `{"ErrorCode": 1, "ErrorStatus": "Success"}`, false},
		{"missing error code", `{"Response": {}}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response := RawResponse{}
			require.NoError(t, json.Unmarshal([]byte(tt.body), &response))
			assert.Equal(t, tt.want, IsValid(&response))
		})
	}
}

func TestIsValidNilDocument(t *testing.T) {
	assert.False(t, IsValid(nil))
	assert.False(t, IsValid(&RawResponse{}))
}

func TestBaseResponseNilSafe(t *testing.T) {
	var base *BaseResponse
	assert.Equal(t, 0, base.ErrCode())
	assert.Equal(t, "", base.ErrStatus())
	assert.Equal(t, "<nil>", base.String())
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(Config{APIKey: "key"})

	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.Equal(t, DefaultMaxClanPages, c.maxClanPages)
	assert.Equal(t, DefaultClanPageAttempts, c.clanPageAttempts)
	assert.NotNil(t, c.transport)
	assert.NotNil(t, c.log)
}

func TestClientSendsAPIKeyHeader(t *testing.T) {
	transport := newFakeTransport().respond(XurAdvisorEndpoint, envelope(`{}`))
	c := newTestClient(transport, &recordingLogger{})

	_, ok := c.GetXurVendorStock(context.Background())
	require.True(t, ok)

	require.Len(t, transport.headers, 1)
	assert.Equal(t, map[string]string{"X-Api-Key": "test-api-key"}, transport.headers[0])
}

func TestTransportFailureIsLogged(t *testing.T) {
	log := &recordingLogger{}
	c := newTestClient(newFakeTransport(), log)

	assert.Nil(t, c.GetWeeklyProgram(context.Background()))
	assert.Len(t, log.warnings(), 1)
}

func TestDecodeFailureIsLogged(t *testing.T) {
	log := &recordingLogger{}
	transport := newFakeTransport().respond(WeeklyAdvisorsEndpoint, malformedBody)
	c := newTestClient(transport, log)

	assert.Nil(t, c.GetWeeklyProgram(context.Background()))
	assert.Len(t, log.warnings(), 1)
}

func TestInvalidDocumentIsNotLogged(t *testing.T) {
	log := &recordingLogger{}
	transport := newFakeTransport().respond(WeeklyAdvisorsEndpoint, invalidEnvelope)
	c := newTestClient(transport, log)

	assert.Nil(t, c.GetWeeklyProgram(context.Background()))
	assert.Empty(t, log.warnings())
}

func TestCanceledContextIsAbsence(t *testing.T) {
	transport := newFakeTransport().respond(XurAdvisorEndpoint, envelope(`{}`))
	c := newTestClient(transport, &recordingLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items, ok := c.GetXurVendorStock(ctx)
	assert.False(t, ok)
	assert.Nil(t, items)
}

func TestRequestURLs(t *testing.T) {
	id := models.NewDestinyID(models.Playstation, "4611")

	tests := []struct {
		request *APIRequest
		want    string
	}{
		{NewSearchPlayerRequest(models.Xbox, "Some Guardian"), "/Destiny/SearchDestinyPlayer/1/Some%20Guardian/"},
		{NewAccountSummaryRequest(id), "/Destiny/2/Account/4611/Summary/"},
		{NewBungieAccountRequest(id), "/User/GetBungieAccount/4611/2/"},
		{NewInventorySummaryRequest(id, "c1"), "/Destiny/2/Account/4611/Character/c1/Inventory/Summary/"},
		{NewActivityHistoryRequest(id, "c1", ModeRaid), "/Destiny/Stats/ActivityHistory/2/4611/c1/?mode=Raid"},
		{NewActivityHistoryRequest(id, "c1", ""), "/Destiny/Stats/ActivityHistory/2/4611/c1/"},
		{NewClanMembersRequest("42", models.Playstation, 3), "/Group/42/ClanMembers/?currentPage=3&platformType=2"},
		{NewXurRequest(), "/Destiny/Advisors/Xur/"},
		{NewWeeklyAdvisorsRequest(), "/Destiny/Advisors/V2/"},
		{NewAccountAdvisorsRequest(id), "/Destiny/2/Account/4611/Advisors/"},
	}

	for _, tt := range tests {
		t.Run(tt.request.Name, func(t *testing.T) {
			assert.Equal(t, testBaseURL+tt.want, tt.request.URL(testBaseURL))
		})
	}
}

func TestHTTPTransportFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "test-api-key", r.Header.Get("X-API-Key"))
		w.Write([]byte(envelope(`{}`)))
	}))
	defer server.Close()

	transport := NewHTTPTransport(nil)
	body, err := transport.Fetch(context.Background(), server.URL+"/Destiny/Advisors/Xur/",
		map[string]string{"X-Api-Key": "test-api-key"})

	require.NoError(t, err)
	assert.JSONEq(t, envelope(`{}`), string(body))
}

func TestHTTPTransportStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(invalidEnvelope))
	}))
	defer server.Close()

	_, err := NewHTTPTransport(nil).Fetch(context.Background(), server.URL, nil)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
}

func TestClientPoolRoundRobin(t *testing.T) {
	first, second := &http.Client{}, &http.Client{}
	pool := &ClientPool{Clients: []*http.Client{first, second}}

	assert.Same(t, first, pool.Get())
	assert.Same(t, second, pool.Get())
	assert.Same(t, first, pool.Get())
}

func TestNewClientPoolMissingFile(t *testing.T) {
	log := &recordingLogger{}
	pool := NewClientPool("testdata/does_not_exist.txt", log)

	assert.Len(t, pool.Clients, 1)
	require.Len(t, log.warnings(), 1)
	assert.Contains(t, log.warnings()[0], "testdata/does_not_exist.txt")
}

func TestNewClientPoolUnresolvableAddress(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clients.txt")
	require.NoError(t, os.WriteFile(path, []byte("192.0.2.1\n"), 0600))

	log := &recordingLogger{}
	pool := NewClientPool(path, log)

	assert.Len(t, pool.Clients, 1)
	assert.Len(t, log.warnings(), 1)
}

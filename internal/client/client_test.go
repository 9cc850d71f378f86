package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charging-platform/oicp-emp-gateway/internal/domain/emp"
	"github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"
	"github.com/charging-platform/oicp-emp-gateway/internal/logger"
	"github.com/charging-platform/oicp-emp-gateway/internal/metrics"
)

const (
	testProviderID = oicp.ProviderID("DE*GDF")
	testEVSEID     = oicp.EVSEID("DE*ABC*E123456")
	testSessionID  = oicp.SessionID("b2688855-7f00-0002-6d8e-48d883f6abb6")
	testProcessID  = "990e9b3a-4c8b-11ec-81d3-0242ac130003"
)

func testIdentification() oicp.Identification {
	return oicp.NewRemoteIdentification("DE-GDF-C12345678-X")
}

func TestClient_AuthorizeRemoteStart(t *testing.T) {
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/oicp/charging/v21/providers/DE*GDF/authorize-remote/start", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set(HeaderProcessID, testProcessID)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"Result":true,"StatusCode":{"Code":"000"},"SessionID":"%s"}`, testSessionID)
	}))
	defer srv.Close()

	before := testutil.ToFloat64(metrics.HubjectRequests.WithLabelValues("AuthorizeRemoteStart", metrics.ResultSuccess))

	c := New(srv.URL + "/")
	req := emp.NewAuthorizeRemoteStartRequest(testProviderID, testEVSEID, testIdentification())
	ack, err := c.AuthorizeRemoteStart(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, ack.Result)
	assert.True(t, ack.StatusCode.IsSuccess())
	assert.Same(t, req, ack.Request)
	assert.Equal(t, req.EventTrackingID, ack.EventTrackingID)
	assert.Equal(t, http.StatusOK, ack.HTTPStatus)
	require.NotNil(t, ack.ProcessID)
	assert.Equal(t, oicp.ProcessID(testProcessID), *ack.ProcessID)
	require.NotNil(t, ack.SessionID)
	assert.Equal(t, testSessionID, *ack.SessionID)

	assert.Equal(t, "DE*GDF", gotBody["ProviderID"])
	assert.Equal(t, "DE*ABC*E123456", gotBody["EvseID"])
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.HubjectRequests.WithLabelValues("AuthorizeRemoteStart", metrics.ResultSuccess)))
}

func TestClient_Routes(t *testing.T) {
	var (
		mu    sync.Mutex
		paths []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		io.WriteString(w, `{"Result":true,"StatusCode":{"Code":"000"}}`)
	}))
	defer srv.Close()

	c := New(srv.URL)
	ctx := context.Background()

	_, err := c.AuthorizeRemoteStop(ctx, emp.NewAuthorizeRemoteStopRequest(testProviderID, testEVSEID, testSessionID))
	require.NoError(t, err)
	_, err = c.AuthorizeRemoteReservationStart(ctx, emp.NewAuthorizeRemoteReservationStartRequest(testProviderID, testEVSEID, testIdentification()))
	require.NoError(t, err)
	_, err = c.AuthorizeRemoteReservationStop(ctx, emp.NewAuthorizeRemoteReservationStopRequest(testProviderID, testEVSEID, testSessionID))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/api/oicp/charging/v21/providers/DE*GDF/authorize-remote/stop",
		"/api/oicp/charging/v21/providers/DE*GDF/authorize-remote-reservation/start",
		"/api/oicp/charging/v21/providers/DE*GDF/authorize-remote-reservation/stop",
	}, paths)
}

func TestClient_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(HeaderProcessID, testProcessID)
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, `{"StatusCode":{"Code":"017","Description":"Unauthorized Access"}}`)
	}))
	defer srv.Close()

	before := testutil.ToFloat64(metrics.HubjectRequests.WithLabelValues("AuthorizeRemoteStop", metrics.ResultFailure))

	_, err := New(srv.URL).AuthorizeRemoteStop(context.Background(),
		emp.NewAuthorizeRemoteStopRequest(testProviderID, testEVSEID, testSessionID))
	require.Error(t, err)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusForbidden, httpErr.StatusCode)
	assert.Equal(t, oicp.ProcessID(testProcessID), httpErr.ProcessID)
	assert.Contains(t, httpErr.Body, "Unauthorized Access")
	assert.Contains(t, err.Error(), "AuthorizeRemoteStop")
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.HubjectRequests.WithLabelValues("AuthorizeRemoteStop", metrics.ResultFailure)))
}

func TestClient_InvalidRequestNotSent(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	req := emp.NewAuthorizeRemoteStartRequest(testProviderID, "not-an-evse", testIdentification())
	_, err := New(srv.URL).AuthorizeRemoteStart(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid request")
	assert.Zero(t, calls)
}

func TestClient_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"StatusCode":{"Code":"000"}}`)
	}))
	defer srv.Close()

	_, err := New(srv.URL).AuthorizeRemoteStart(context.Background(),
		emp.NewAuthorizeRemoteStartRequest(testProviderID, testEVSEID, testIdentification()))
	require.Error(t, err)
	assert.True(t, emp.IsParseError(err))
}

func TestClient_RequestTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	req := emp.NewAuthorizeRemoteStopRequest(testProviderID, testEVSEID, testSessionID,
		emp.WithRequestTimeout(50*time.Millisecond))
	_, err := New(srv.URL).AuthorizeRemoteStop(context.Background(), req)
	require.Error(t, err)
	var timeout interface{ Timeout() bool }
	require.True(t, errors.As(err, &timeout))
	assert.True(t, timeout.Timeout())
}

func testCDR(i int) oicp.ChargeDetailRecord {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Hour)
	return oicp.ChargeDetailRecord{
		SessionID:      oicp.NewSessionID(),
		EvseID:         testEVSEID,
		Identification: testIdentification(),
		ChargingStart:  oicp.NewDateTime(start),
		ChargingEnd:    oicp.NewDateTime(start.Add(30 * time.Minute)),
		SessionStart:   oicp.NewDateTime(start),
		SessionEnd:     oicp.NewDateTime(start.Add(30 * time.Minute)),
		ConsumedEnergy: float64(10 + i),
	}
}

// cdrPages 按 page/size 查询参数返回每页一条详单的服务端，缺省页码为0
type cdrPages struct {
	t     *testing.T
	total int
	delay time.Duration

	mu      sync.Mutex
	queries []string
}

func (p *cdrPages) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	assert.Equal(p.t, "/api/oicp/cdrmgmt/v22/providers/DE*GDF/get-charge-detail-records-request", r.URL.Path)
	p.mu.Lock()
	p.queries = append(p.queries, r.URL.RawQuery)
	p.mu.Unlock()

	page, size := 0, 1
	if v := r.URL.Query().Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if !assert.NoError(p.t, err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		page = n
	}
	if v := r.URL.Query().Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if !assert.NoError(p.t, err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		size = n
	}

	select {
	case <-time.After(p.delay):
	case <-r.Context().Done():
		return
	}

	b := emp.NewGetChargeDetailRecordsResponseBuilder(nil)
	b.ChargeDetailRecords = []oicp.ChargeDetailRecord{testCDR(page)}
	b.Page = emp.NewPage(page, size, p.total, 1)
	resp, err := b.Build()
	if !assert.NoError(p.t, err) {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	data, err := resp.ToJSON()
	if !assert.NoError(p.t, err) {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Write(data)
}

func (p *cdrPages) seen() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.queries...)
}

func cdrRange() (oicp.DateTime, oicp.DateTime) {
	return oicp.NewDateTime(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
		oicp.NewDateTime(time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC))
}

func TestClient_GetAllChargeDetailRecords(t *testing.T) {
	pages := &cdrPages{t: t, total: 3}
	srv := httptest.NewServer(pages)
	defer srv.Close()

	from, to := cdrRange()
	req := emp.NewGetChargeDetailRecordsRequest(testProviderID, from, to)

	records, err := New(srv.URL, WithPageSize(1)).GetAllChargeDetailRecords(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, 10.0, records[0].ConsumedEnergy)
	assert.Equal(t, 12.0, records[2].ConsumedEnergy)
	assert.Equal(t, []string{"size=1", "page=1&size=1", "page=2&size=1"}, pages.seen())
	assert.Nil(t, req.Size, "caller's request must not be modified")
}

func TestClient_GetAllChargeDetailRecords_TimeoutPerPage(t *testing.T) {
	pages := &cdrPages{t: t, total: 4, delay: 150 * time.Millisecond}
	srv := httptest.NewServer(pages)
	defer srv.Close()

	from, to := cdrRange()
	req := emp.NewGetChargeDetailRecordsRequest(testProviderID, from, to,
		emp.WithRequestTimeout(400*time.Millisecond))

	records, err := New(srv.URL, WithPageSize(1)).GetAllChargeDetailRecords(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, records, 4)
	assert.Len(t, pages.seen(), 4)
}

func TestClient_GetAllChargeDetailRecords_ContextCancelsIteration(t *testing.T) {
	pages := &cdrPages{t: t, total: 10, delay: 50 * time.Millisecond}
	srv := httptest.NewServer(pages)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Millisecond)
	defer cancel()

	from, to := cdrRange()
	records, err := New(srv.URL, WithPageSize(1)).GetAllChargeDetailRecords(ctx,
		emp.NewGetChargeDetailRecordsRequest(testProviderID, from, to))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Less(t, len(records), 10)
}

func TestClient_GetChargeDetailRecords_SinglePage(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		io.WriteString(w, `{"content":[],"number":2,"size":50,"totalElements":100,"totalPages":2,"first":false,"last":true,"numberOfElements":0}`)
	}))
	defer srv.Close()

	from := oicp.NewDateTime(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	to := oicp.NewDateTime(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))
	req := emp.NewGetChargeDetailRecordsRequest(testProviderID, from, to,
		emp.WithPage(2), emp.WithSize(50), emp.WithSortOrder("SessionStart,desc"))

	resp, err := New(srv.URL).GetChargeDetailRecords(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, resp.ChargeDetailRecords)
	assert.False(t, resp.HasNext())
	assert.Equal(t, "page=2&size=50&sortOrder=SessionStart%2Cdesc", query)
}

func TestClient_PullEVSEStatusByIds_Chunked(t *testing.T) {
	var sizes []int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			EvseID []oicp.EVSEID `json:"EvseID"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); !assert.NoError(t, err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		sizes = append(sizes, len(body.EvseID))

		records := make([]oicp.EVSEStatusRecord, 0, len(body.EvseID))
		for _, id := range body.EvseID {
			records = append(records, oicp.EVSEStatusRecord{EvseID: id, EvseStatus: oicp.EVSEStatusAvailable})
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"EVSEStatusRecords": map[string]interface{}{"EvseStatusRecord": records},
		})
	}))
	defer srv.Close()

	ids := make([]oicp.EVSEID, 150)
	for i := range ids {
		ids[i] = oicp.EVSEID(fmt.Sprintf("DE*ABC*E%06d", i))
	}

	records, err := New(srv.URL).PullEVSEStatusByIds(context.Background(), testProviderID, ids)
	require.NoError(t, err)
	assert.Len(t, records, 150)
	assert.Equal(t, []int{100, 50}, sizes)
	assert.Equal(t, ids[149], records[149].EvseID)
}

func TestClient_LoggingTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(HeaderProcessID, testProcessID)
		io.WriteString(w, `{"Result":true,"StatusCode":{"Code":"000"}}`)
	}))
	defer srv.Close()

	var buf bytes.Buffer
	c := New(srv.URL, WithLogger(logger.NewWithWriter(&buf, "debug")))
	_, err := c.AuthorizeRemoteStop(context.Background(),
		emp.NewAuthorizeRemoteStopRequest(testProviderID, testEVSEID, testSessionID))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "hubject request completed")
	assert.Contains(t, out, `"process_id":"`+testProcessID+`"`)
	assert.Contains(t, out, `"message_type":"AuthorizeRemoteStopRequest"`)
}

func TestInterceptorTransport_Order(t *testing.T) {
	var order []string
	mark := func(name string) TransportMiddleware {
		return func(next http.RoundTripper) http.RoundTripper {
			return roundTripFunc(func(r *http.Request) (*http.Response, error) {
				order = append(order, name)
				return next.RoundTrip(r)
			})
		}
	}
	base := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		order = append(order, "base")
		return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(bytes.NewReader(nil)), Request: r}, nil
	})

	rt := &InterceptorTransport{Transport: base, Middlewares: []TransportMiddleware{mark("a"), mark("b")}}
	resp, err := rt.RoundTrip(httptest.NewRequest(http.MethodGet, "http://hubject.test/", nil))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, []string{"b", "a", "base"}, order)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

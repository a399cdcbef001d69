package main

import (
	"context"
	"encoding/json"
	"math"
	"net"
	"net/url"
	"testing"
	"time"

	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"

	"rpncalc-go/model"
)

func openTestDb(t *testing.T) {
	t.Helper()
	if err := OpenDb(":memory:"); err != nil {
		t.Fatalf("OpenDb: %v", err)
	}
	t.Cleanup(func() { CloseDb() })
}

func doRequest(t *testing.T, service *EvalService, method, uri string) *fasthttp.Response {
	t.Helper()
	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(uri)
	var ctx fasthttp.RequestCtx
	ctx.Init(&req, nil, nil)
	service.RequestHandler(&ctx)
	return &ctx.Response
}

func evalURI(expr string, extra string) string {
	return "/eval?expr=" + url.QueryEscape(expr) + extra
}

func decodeObject(t *testing.T, resp *fasthttp.Response) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		t.Fatalf("decoding %q: %v", resp.Body(), err)
	}
	return body
}

func TestHandleEval(t *testing.T) {
	service := NewEvalService(time.Hour, 16, 8)
	tests := []struct {
		expr   string
		result interface{}
	}{
		{"3 4 +", 7.0},
		{"5 1 2 + 4 * + 3 -", 14.0},
		{"  2 5 - ", -3.0},
		{"2 3 ^", 8.0},
		{"2 0 /", "+Inf"},
		{"0 0 /", "NaN"},
	}
	for _, tt := range tests {
		resp := doRequest(t, service, "GET", evalURI(tt.expr, ""))
		if resp.StatusCode() != fasthttp.StatusOK {
			t.Errorf("%q: status %d, body %s", tt.expr, resp.StatusCode(), resp.Body())
			continue
		}
		body := decodeObject(t, resp)
		if body["result"] != tt.result {
			t.Errorf("%q: result %v, want %v", tt.expr, body["result"], tt.result)
		}
	}
}

func TestHandleEvalErrors(t *testing.T) {
	service := NewEvalService(time.Hour, 16, 8)
	tests := []struct {
		uri    string
		status int
		kind   string
	}{
		{evalURI("1 2", ""), fasthttp.StatusUnprocessableEntity, "incorrect_format"},
		{evalURI("+", ""), fasthttp.StatusUnprocessableEntity, "stack_underflow"},
		{evalURI("3 4 + +", ""), fasthttp.StatusUnprocessableEntity, "stack_underflow"},
		{evalURI("3 x 4 +", "&strict=1"), fasthttp.StatusUnprocessableEntity, "invalid_token"},
		{"/eval", fasthttp.StatusBadRequest, ""},
		{evalURI("   ", ""), fasthttp.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		resp := doRequest(t, service, "GET", tt.uri)
		if resp.StatusCode() != tt.status {
			t.Errorf("%s: status %d, want %d", tt.uri, resp.StatusCode(), tt.status)
			continue
		}
		body := decodeObject(t, resp)
		if tt.kind != "" && body["kind"] != tt.kind {
			t.Errorf("%s: kind %v, want %s", tt.uri, body["kind"], tt.kind)
		}
		if _, ok := body["result"]; ok {
			t.Errorf("%s: failed evaluation carries a result: %s", tt.uri, resp.Body())
		}
	}

	resp := doRequest(t, service, "GET", evalURI("3 x 4 +", ""))
	if resp.StatusCode() != fasthttp.StatusOK || decodeObject(t, resp)["result"] != 7.0 {
		t.Errorf("lenient evaluation: %d %s", resp.StatusCode(), resp.Body())
	}
}

func TestHandleEvalUsesCache(t *testing.T) {
	service := NewEvalService(time.Hour, 16, 8)
	before := cacheHits.Value()
	doRequest(t, service, "GET", evalURI("6 7 *", ""))
	doRequest(t, service, "GET", evalURI(" 6   7 * ", ""))
	if got := cacheHits.Value() - before; got != 1 {
		t.Errorf("cache hits = %d, want 1", got)
	}
	// a strict request must not reuse the lenient entry
	doRequest(t, service, "GET", evalURI("6 7 *", "&strict=true"))
	if got := cacheHits.Value() - before; got != 1 {
		t.Errorf("cache hits after strict request = %d, want 1", got)
	}
}

func TestHistoryEndpoints(t *testing.T) {
	openTestDb(t)
	service := NewEvalService(time.Hour, 0, 8)

	doRequest(t, service, "GET", evalURI("3 4 +", ""))
	resp := doRequest(t, service, "GET", evalURI("3  4 +", ""))
	if hits := decodeObject(t, resp)["hits"]; hits != 2.0 {
		t.Errorf("hits after second evaluation = %v, want 2", hits)
	}
	doRequest(t, service, "GET", evalURI("1 2", ""))
	doRequest(t, service, "GET", evalURI("2 0 /", ""))

	resp = doRequest(t, service, "GET", "/history")
	var rows []map[string]interface{}
	if err := json.Unmarshal(resp.Body(), &rows); err != nil {
		t.Fatalf("decoding history %s: %v", resp.Body(), err)
	}
	if len(rows) != 3 {
		t.Fatalf("history has %d rows, want 3: %s", len(rows), resp.Body())
	}
	byExpr := map[string]map[string]interface{}{}
	for _, row := range rows {
		byExpr[row["expression"].(string)] = row
	}
	if row := byExpr["3 4 +"]; row == nil || row["result"] != 7.0 || row["hits"] != 2.0 {
		t.Errorf("3 4 + row = %v", row)
	}
	if row := byExpr["1 2"]; row == nil || row["error"] == nil || row["result"] != nil {
		t.Errorf("1 2 row = %v", row)
	}
	if row := byExpr["2 0 /"]; row == nil || row["result"] != "+Inf" {
		t.Errorf("2 0 / row = %v", row)
	}

	hash := model.ExpressionHash("3 4 +")
	resp = doRequest(t, service, "DELETE", "/history?hash="+hash)
	if resp.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("forget: status %d %s", resp.StatusCode(), resp.Body())
	}
	resp = doRequest(t, service, "GET", "/history?hash="+hash)
	if resp.StatusCode() != fasthttp.StatusNotFound {
		t.Errorf("forgotten entry still listed: %d %s", resp.StatusCode(), resp.Body())
	}
	resp = doRequest(t, service, "DELETE", "/history?hash="+hash)
	if resp.StatusCode() != fasthttp.StatusNotFound {
		t.Errorf("second forget: status %d", resp.StatusCode())
	}

	// evaluating again revives the row
	resp = doRequest(t, service, "GET", evalURI("3 4 +", ""))
	if hits := decodeObject(t, resp)["hits"]; hits != 3.0 {
		t.Errorf("hits after revival = %v, want 3", hits)
	}
	resp = doRequest(t, service, "GET", "/forget?expr="+url.QueryEscape("1 2"))
	if resp.StatusCode() != fasthttp.StatusOK {
		t.Errorf("forget by expr: status %d %s", resp.StatusCode(), resp.Body())
	}
	resp = doRequest(t, service, "GET", "/history?limit=10")
	if err := json.Unmarshal(resp.Body(), &rows); err != nil || len(rows) != 2 {
		t.Errorf("history after forget: %s", resp.Body())
	}
}

func TestHistoryDisabled(t *testing.T) {
	service := NewEvalService(time.Hour, 0, 8)
	if resp := doRequest(t, service, "GET", "/history"); resp.StatusCode() != fasthttp.StatusNotFound {
		t.Errorf("status %d, want 404", resp.StatusCode())
	}
}

func TestRecentAndOps(t *testing.T) {
	service := NewEvalService(time.Hour, 0, 2)
	for _, expr := range []string{"1 1 +", "1 2", "2 2 +"} {
		doRequest(t, service, "GET", evalURI(expr, ""))
	}
	resp := doRequest(t, service, "GET", "/recent")
	var recent []map[string]interface{}
	if err := json.Unmarshal(resp.Body(), &recent); err != nil {
		t.Fatal(err)
	}
	if len(recent) != 2 || recent[0]["expression"] != "2 2 +" || recent[1]["expression"] != "1 2" {
		t.Errorf("recent = %s", resp.Body())
	}
	if recent[1]["error"] == nil {
		t.Errorf("failed evaluation without error: %v", recent[1])
	}

	resp = doRequest(t, service, "GET", "/ops")
	var ops []OperatorInfo
	if err := json.Unmarshal(resp.Body(), &ops); err != nil {
		t.Fatal(err)
	}
	if len(ops) != 5 || ops[0].Symbol != "+" || ops[4].Name != "power" {
		t.Errorf("ops = %+v", ops)
	}

	if resp := doRequest(t, service, "GET", "/nope"); resp.StatusCode() != fasthttp.StatusNotFound {
		t.Errorf("unknown path: status %d", resp.StatusCode())
	}
}

func TestJSONFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1.5, "1.5"},
		{-3, "-3"},
		{math.Inf(1), `"+Inf"`},
		{math.Inf(-1), `"-Inf"`},
		{math.NaN(), `"NaN"`},
	}
	for _, tt := range tests {
		buf, err := json.Marshal(JSONFloat(tt.in))
		if err != nil || string(buf) != tt.want {
			t.Errorf("JSONFloat(%v) = %s, %v; want %s", tt.in, buf, err, tt.want)
		}
	}
}

func TestServerShutdown(t *testing.T) {
	server := NewServer(NewEvalService(time.Hour, 16, 8), true)
	ln := fasthttputil.NewInmemoryListener()
	done := make(chan error, 1)
	go func() { done <- server.Serve(ln) }()

	client := &fasthttp.Client{
		Dial: func(addr string) (net.Conn, error) { return ln.Dial() },
	}
	statusCode, body, err := client.Get(nil, "http://rpncalc/eval?expr="+url.QueryEscape("-3 4 *"))
	if err != nil {
		t.Fatalf("GET /eval: %v", err)
	}
	if statusCode != fasthttp.StatusOK {
		t.Fatalf("GET /eval: status %d, body %q", statusCode, body)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	shutdown(ctx, server)
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("server still running after shutdown")
	}
}

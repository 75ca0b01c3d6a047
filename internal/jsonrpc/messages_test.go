package jsonrpc

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestAnyMessageKind(t *testing.T) {
	cases := []struct {
		in   string
		want Kind
	}{
		{`{"jsonrpc":"2.0","id":1,"method":"ping"}`, KindRequest},
		{`{"jsonrpc":"2.0","method":"notifications/initialized"}`, KindNotification},
		{`{"jsonrpc":"2.0","id":null,"method":"notifications/initialized"}`, KindNotification},
		{`{"jsonrpc":"2.0","id":"a","result":{}}`, KindResponse},
	}
	for _, tc := range cases {
		var m AnyMessage
		if err := json.Unmarshal([]byte(tc.in), &m); err != nil {
			t.Fatalf("%s: %v", tc.in, err)
		}
		if got := m.Kind(); got != tc.want {
			t.Errorf("%s: kind %v, want %v", tc.in, got, tc.want)
		}
		if (m.AsRequest() == nil) != (tc.want == KindResponse) {
			t.Errorf("%s: AsRequest mismatch", tc.in)
		}
	}
}

func TestAnyMessageRejectsInvalid(t *testing.T) {
	cases := []struct {
		in   string
		want error
	}{
		{`{"jsonrpc":"1.0","id":1,"method":"ping"}`, ErrVersion},
		{`{"jsonrpc":"2.0","id":1,"method":"ping","result":{}}`, ErrShape},
		{`{"jsonrpc":"2.0","id":1}`, ErrShape},
		{`{"jsonrpc":"2.0","id":1,"result":{},"error":{"code":1,"message":"x"}}`, ErrShape},
		{`{"jsonrpc":"2.0","id":{},"method":"ping"}`, ErrShape},
	}
	for _, tc := range cases {
		var m AnyMessage
		if err := json.Unmarshal([]byte(tc.in), &m); !errors.Is(err, tc.want) {
			t.Errorf("%s: err %v, want %v", tc.in, err, tc.want)
		}
	}
	var m AnyMessage
	if err := json.Unmarshal([]byte(`not json`), &m); err == nil {
		t.Fatal("expected error for invalid json")
	}
}

func TestRequestIDEchoedVerbatim(t *testing.T) {
	for _, raw := range []string{`42`, `"abc"`, `1.5`, `12345678901234567890`} {
		var m AnyMessage
		if err := json.Unmarshal([]byte(`{"jsonrpc":"2.0","id":`+raw+`,"method":"ping"}`), &m); err != nil {
			t.Fatalf("%s: %v", raw, err)
		}
		res, err := NewResultResponse(m.ID, struct{}{})
		if err != nil {
			t.Fatal(err)
		}
		b, err := json.Marshal(res)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(b), `"id":`+raw) {
			t.Errorf("want id %s in %s", raw, b)
		}
	}
}

func TestNewRequestID(t *testing.T) {
	if got := NewRequestID(7).String(); got != "7" {
		t.Fatalf("int id: %q", got)
	}
	if got := NewRequestID("x").String(); got != "x" {
		t.Fatalf("string id: %q", got)
	}
	if !NewRequestID(struct{}{}).IsNil() {
		t.Fatal("unsupported type should be null")
	}
}

func TestErrorResponseWithoutIDEncodesNull(t *testing.T) {
	b, err := json.Marshal(NewErrorResponse(nil, ErrorCodeParseError, "parse error", nil))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"id":null`) {
		t.Fatalf("want null id in %s", b)
	}
	if !strings.Contains(string(b), `"code":-32700`) {
		t.Fatalf("want parse error code in %s", b)
	}
}

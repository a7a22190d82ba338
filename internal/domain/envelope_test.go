package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestEnvelope_IsOK(t *testing.T) {
	tests := []struct {
		name string
		code string
		want bool
	}{
		{"success", "0", true},
		{"remote rejection", "51000", false},
		{"local failure", "-1", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := &Envelope{Code: tt.code}
			if env.IsOK() != tt.want {
				t.Errorf("IsOK() with code %q = %v, want %v", tt.code, env.IsOK(), tt.want)
			}
		})
	}
}

func TestEnvelope_OrderRows(t *testing.T) {
	env := &Envelope{
		Code: "0",
		Data: json.RawMessage(`[{"ordId":"1001","state":"live","avgPx":""}]`),
	}

	rows := env.OrderRows()
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].OrdID != "1001" {
		t.Errorf("OrdID = %q, want %q", rows[0].OrdID, "1001")
	}
	if rows[0].State != "live" {
		t.Errorf("State = %q, want %q", rows[0].State, "live")
	}
}

func TestEnvelope_OrderRows_Malformed(t *testing.T) {
	t.Run("no data", func(t *testing.T) {
		env := &Envelope{Code: "0"}
		if rows := env.OrderRows(); rows != nil {
			t.Errorf("expected nil rows, got %v", rows)
		}
	})

	t.Run("not an array", func(t *testing.T) {
		env := &Envelope{Code: "0", Data: json.RawMessage(`{"ordId":"1"}`)}
		if rows := env.OrderRows(); rows != nil {
			t.Errorf("expected nil rows, got %v", rows)
		}
	})
}

func TestFail(t *testing.T) {
	env := Fail(errors.New("dial tcp: connection refused"))

	if env.Code != CodeLocal {
		t.Errorf("Code = %q, want %q", env.Code, CodeLocal)
	}
	if env.Msg != "dial tcp: connection refused" {
		t.Errorf("Msg = %q", env.Msg)
	}
	if env.IsOK() {
		t.Error("failure envelope must not be OK")
	}
}

package ctxutil

import (
	"context"
	"testing"
)

func TestRequestDataRoundTrip(t *testing.T) {
	ctx := WithRequestData(context.Background(), &RequestData{UserID: "u1"})
	if got := UserID(ctx); got != "u1" {
		t.Fatalf("got %q", got)
	}
	if UserID(context.Background()) != "" {
		t.Fatal("expected empty user id")
	}
}

func TestTraceData(t *testing.T) {
	ctx := WithTraceData(context.Background(), &TraceData{TraceID: "t", RequestID: "r"})
	td := GetTraceData(ctx)
	if td == nil || td.TraceID != "t" || td.RequestID != "r" {
		t.Fatalf("unexpected trace data: %+v", td)
	}
	if RequestID(ctx) != "r" {
		t.Fatalf("request id: got %q", RequestID(ctx))
	}
	if GetTraceData(context.Background()) != nil || RequestID(context.Background()) != "" {
		t.Fatal("expected no trace data")
	}
}

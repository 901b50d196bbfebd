package redis

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
)

func TestNewClient(t *testing.T) {
	live := miniredis.RunT(t)

	down := miniredis.RunT(t)
	downAddr := down.Addr()
	down.Close()

	tests := []struct {
		name    string
		url     string
		wantDB  int
		wantErr bool
	}{
		{name: "default database", url: "redis://" + live.Addr()},
		{name: "database from path", url: "redis://" + live.Addr() + "/3", wantDB: 3},
		{name: "unparseable url", url: "://bad-url", wantErr: true},
		{name: "unsupported scheme", url: "http://" + live.Addr(), wantErr: true},
		{name: "server unreachable", url: "redis://" + downAddr, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(context.Background(), tt.url)
			if tt.wantErr {
				if err == nil {
					_ = client.Close()
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			defer client.Close()

			if got := client.Options().DB; got != tt.wantDB {
				t.Fatalf("expected db %d, got %d", tt.wantDB, got)
			}
		})
	}
}

func TestNewClientServesCatalogCacheKeys(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	client, err := NewClient(ctx, "redis://"+mr.Addr())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Close()

	if err := client.Set(ctx, "gobudget:cache:catalog:shared:v1", `{"types":[]}`, 0).Err(); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if got, _ := mr.Get("gobudget:cache:catalog:shared:v1"); got != `{"types":[]}` {
		t.Fatalf("unexpected stored value %q", got)
	}
}

package couch_test

import (
	"context"
	"os"
	"testing"

	"github.com/go-kivik/kivik/v3"
	"github.com/jt05610/petrisym/couch"
	"github.com/jt05610/petrisym/env"
	"go.uber.org/zap/zaptest"
)

func TestKey(t *testing.T) {
	a := couch.Key("net", "EF(p >= 1)")
	if a != couch.Key("net", "EF(p >= 1)") {
		t.Error("keys of equal parts differ")
	}
	if a == couch.Key("netEF", "(p >= 1)") {
		t.Error("keys of different parts collide")
	}
}

type result struct {
	Formula string `json:"formula"`
	Count   string `json:"count"`
}

func setUp(t *testing.T, name string) *couch.Store {
	t.Helper()
	if os.Getenv("COUCHDB_HOST") == "" {
		t.Skip("COUCHDB_HOST is not set")
	}
	environ, err := env.Load("../.env")
	if err != nil {
		t.Fatal(err)
	}
	uri := environ.Couch.URI()
	client, err := kivik.New("couch", uri)
	if err != nil {
		t.Fatal(err)
	}
	_ = client.DestroyDB(context.Background(), name)
	s, err := couch.Open(context.Background(), uri, name, zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = s.Close()
		_ = client.DestroyDB(context.Background(), name)
	})
	return s
}

func TestStore(t *testing.T) {
	s := setUp(t, "store_test")
	ctx := context.Background()
	key := couch.Key("mutex", "EF(crit1 >= 1)")
	var got result
	found, err := s.Load(ctx, key, &got)
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Fatal("expected an empty database")
	}
	if err := s.Save(ctx, key, result{Formula: "EF(crit1 >= 1)", Count: "8"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, key, result{Formula: "EF(crit1 >= 1)", Count: "9"}); err != nil {
		t.Fatal(err)
	}
	found, err = s.Load(ctx, key, &got)
	if err != nil {
		t.Fatal(err)
	}
	if !found || got.Count != "9" {
		t.Errorf("expected the second save, got %v %+v", found, got)
	}
}

// Package couch caches check results in a CouchDB database.
package couch

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	_ "github.com/go-kivik/couchdb/v3"
	"github.com/go-kivik/kivik/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Store struct {
	cancel func()
	db     *kivik.DB
	logger *zap.Logger
	mu     sync.Mutex
	revMap map[string]string
}

// Key names a document after its parts. Equal parts give equal keys.
func Key(parts ...string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(strings.Join(parts, "\x00"))).String()
}

// Open connects to the server at uri and creates the database when it does
// not exist yet.
func Open(ctx context.Context, uri, name string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	client, err := kivik.New("couch", uri)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(ctx)
	found, err := client.DBExists(ctx, name)
	if err != nil {
		cancel()
		return nil, err
	}
	if !found {
		logger.Info("creating database", zap.String("name", name))
		if err := client.CreateDB(ctx, name); err != nil {
			cancel()
			return nil, err
		}
	}
	return &Store{
		cancel: cancel,
		db:     client.DB(ctx, name),
		logger: logger.With(zap.String("db", name)),
		revMap: make(map[string]string),
	}, nil
}

func (s *Store) Close() error {
	s.cancel()
	return nil
}

// Load scans the document stored under key into v. It reports false when
// there is no such document.
func (s *Store) Load(ctx context.Context, key string, v any) (bool, error) {
	row := s.db.Get(ctx, key)
	if err := row.ScanDoc(v); err != nil {
		if kivik.StatusCode(err) == http.StatusNotFound {
			s.logger.Debug("cache miss", zap.String("key", key))
			return false, nil
		}
		return false, err
	}
	s.mu.Lock()
	s.revMap[key] = row.Rev
	s.mu.Unlock()
	s.logger.Debug("cache hit", zap.String("key", key))
	return true, nil
}

func (s *Store) document(key string, v any) (map[string]interface{}, error) {
	bytes, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	doc := make(map[string]interface{})
	if err := json.Unmarshal(bytes, &doc); err != nil {
		return nil, err
	}
	doc["_id"] = key
	s.mu.Lock()
	if rev, ok := s.revMap[key]; ok {
		doc["_rev"] = rev
	}
	s.mu.Unlock()
	return doc, nil
}

// Save stores v under key, replacing any earlier document. v must encode to
// a JSON object.
func (s *Store) Save(ctx context.Context, key string, v any) error {
	doc, err := s.document(key, v)
	if err != nil {
		return err
	}
	rev, err := s.db.Put(ctx, key, doc)
	if kivik.StatusCode(err) == http.StatusConflict {
		// someone else wrote the document; take their revision and retry once
		row := s.db.Get(ctx, key)
		if row.Err != nil {
			return row.Err
		}
		doc["_rev"] = row.Rev
		rev, err = s.db.Put(ctx, key, doc)
	}
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.revMap[key] = rev
	s.mu.Unlock()
	return nil
}

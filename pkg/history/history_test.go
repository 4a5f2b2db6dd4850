package history

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/bigo/pkg/analyzer"
	errs "github.com/matzehuels/bigo/pkg/errors"
)

func TestNewRecord(t *testing.T) {
	r := NewRecord("2n", analyzer.Analyze("2n"))
	if _, err := uuid.Parse(r.ID); err != nil {
		t.Errorf("ID %q is not a UUID: %v", r.ID, err)
	}
	if !r.OK || r.BigO != "O(n)" || r.Normalized != "2*n" || r.Dominant != "2*n" {
		t.Errorf("record = %+v", r)
	}
	if r.CreatedAt.IsZero() || r.CreatedAt.Location() != time.UTC {
		t.Errorf("CreatedAt = %v, want a UTC timestamp", r.CreatedAt)
	}

	failed := NewRecord("2n+", analyzer.Analyze("2n+"))
	if failed.OK || failed.Code != "ParseError" || failed.Error == "" {
		t.Errorf("failed record = %+v", failed)
	}
	if failed.ID == r.ID {
		t.Error("records share an ID")
	}
}

func TestNullStore(t *testing.T) {
	ctx := context.Background()
	var s Store = NullStore{}
	if err := s.Save(ctx, NewRecord("n", analyzer.Analyze("n"))); err != nil {
		t.Fatalf("Save: %v", err)
	}
	recs, err := s.List(ctx, 10)
	if err != nil || len(recs) != 0 {
		t.Errorf("List = %v, %v; want empty", recs, err)
	}
	if _, err := s.Get(ctx, "x"); !errs.Is(err, errs.ErrCodeNotFound) {
		t.Errorf("Get error = %v, want NotFound", err)
	}
}

func openTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "nested", "history.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	inputs := []string{"n", "n^2", "2^n+"}
	var ids []string
	for i, in := range inputs {
		r := NewRecord(in, analyzer.Analyze(in))
		r.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := s.Save(ctx, r); err != nil {
			t.Fatalf("Save(%q): %v", in, err)
		}
		ids = append(ids, r.ID)
	}

	recs, err := s.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("List(2) returned %d records", len(recs))
	}
	if recs[0].Input != "2^n+" || recs[1].Input != "n^2" {
		t.Errorf("List order = %q, %q; want newest first", recs[0].Input, recs[1].Input)
	}
	if recs[0].OK || recs[0].Code != "ParseError" {
		t.Errorf("failed record round trip = %+v", recs[0])
	}

	got, err := s.Get(ctx, ids[1])
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.BigO != "O(n^2)" || !got.OK || !got.CreatedAt.Equal(base.Add(time.Minute)) {
		t.Errorf("Get = %+v", got)
	}

	if _, err := s.Get(ctx, "missing"); !errs.Is(err, errs.ErrCodeNotFound) {
		t.Errorf("Get(missing) error = %v, want NotFound", err)
	}
}

func TestSQLiteStoreReplace(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)

	r := NewRecord("n", analyzer.Analyze("n"))
	if err := s.Save(ctx, r); err != nil {
		t.Fatal(err)
	}
	r.BigO = "O(changed)"
	if err := s.Save(ctx, r); err != nil {
		t.Fatal(err)
	}

	recs, err := s.List(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 || recs[0].BigO != "O(changed)" {
		t.Errorf("after replace: %+v", recs)
	}
}

func TestSQLiteStoreReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	s, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	r := NewRecord("n", analyzer.Analyze("n"))
	if err := s.Save(ctx, r); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if _, err := s.Get(ctx, r.ID); err != nil {
		t.Errorf("record lost after reopen: %v", err)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Options{})
	if err != nil {
		t.Fatalf("Open(default): %v", err)
	}
	if _, ok := s.(NullStore); !ok {
		t.Errorf("Open(default) = %T, want NullStore", s)
	}

	s, err = Open(ctx, Options{Backend: BackendSQLite, Path: filepath.Join(t.TempDir(), "h.db")})
	if err != nil {
		t.Fatalf("Open(sqlite): %v", err)
	}
	defer s.Close()
	if _, ok := s.(*SQLiteStore); !ok {
		t.Errorf("Open(sqlite) = %T, want *SQLiteStore", s)
	}

	if _, err := Open(ctx, Options{Backend: BackendSQLite}); err == nil {
		t.Error("Open(sqlite) without path should fail")
	}
	if _, err := Open(ctx, Options{Backend: BackendMongo}); err == nil {
		t.Error("Open(mongo) without uri should fail")
	}
	if _, err := Open(ctx, Options{Backend: "postgres"}); err == nil {
		t.Error("Open with unknown backend should fail")
	}
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("BIGO_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("BIGO_TEST_MONGO_URI not set")
	}
	ctx := context.Background()
	coll := "analyses_test_" + uuid.NewString()[:8]
	s, err := OpenMongo(ctx, uri, "bigo_test", coll)
	if err != nil {
		t.Fatalf("OpenMongo: %v", err)
	}
	t.Cleanup(func() {
		_ = s.coll.Drop(context.Background())
		s.Close()
	})

	r := NewRecord("n^2", analyzer.Analyze("n^2"))
	if err := s.Save(ctx, r); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Get(ctx, r.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.BigO != "O(n^2)" || !got.CreatedAt.Equal(r.CreatedAt) {
		t.Errorf("Get = %+v, want %+v", got, r)
	}
	recs, err := s.List(ctx, 5)
	if err != nil || len(recs) != 1 {
		t.Errorf("List = %v, %v", recs, err)
	}
	if _, err := s.Get(ctx, "missing"); !errs.Is(err, errs.ErrCodeNotFound) {
		t.Errorf("Get(missing) error = %v, want NotFound", err)
	}
}

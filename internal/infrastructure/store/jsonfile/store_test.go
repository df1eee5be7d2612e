package jsonfile

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

type record struct {
	ID    string `json:"id"`
	Value int    `json:"value"`
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return st
}

func TestRead_MissingCollectionIsEmpty(t *testing.T) {
	st := newTestStore(t)

	recs, err := Read[record](st, "ghosts")
	if err != nil {
		t.Fatalf("read returned error: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("expected empty collection, got %d records", len(recs))
	}
}

func TestWriteRead_RoundTrip(t *testing.T) {
	st := newTestStore(t)

	in := []record{{ID: "a", Value: 1}, {ID: "b", Value: 2}}
	if err := Write(st, "things", in); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, err := Read[record](st, "things")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(out) != 2 || out[0] != in[0] || out[1] != in[1] {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestWrite_ReplacesSnapshot(t *testing.T) {
	st := newTestStore(t)

	_ = Write(st, "things", []record{{ID: "a"}, {ID: "b"}})
	if err := Write(st, "things", []record{{ID: "c"}}); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, _ := Read[record](st, "things")
	if len(out) != 1 || out[0].ID != "c" {
		t.Fatalf("expected snapshot fully replaced, got %+v", out)
	}
}

func TestUpdate_ErrorAbortsWrite(t *testing.T) {
	st := newTestStore(t)
	_ = Write(st, "things", []record{{ID: "a"}})

	boom := errors.New("boom")
	err := Update(st, "things", func(recs []record) ([]record, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fn error surfaced, got %v", err)
	}

	out, _ := Read[record](st, "things")
	if len(out) != 1 || out[0].ID != "a" {
		t.Fatalf("collection changed despite aborted update: %+v", out)
	}
}

func TestRead_CorruptFile(t *testing.T) {
	st := newTestStore(t)
	path := filepath.Join(st.Dir(), "things.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}

	if _, err := Read[record](st, "things"); err == nil {
		t.Fatalf("expected error for corrupt collection")
	}
}

func TestUpdate_ConcurrentAppendsLoseNothing(t *testing.T) {
	st := newTestStore(t)

	const n = 20
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			err := Update(st, "things", func(recs []record) ([]record, error) {
				return append(recs, record{Value: i}), nil
			})
			if err != nil {
				t.Errorf("update %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	out, err := Read[record](st, "things")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(out) != n {
		t.Fatalf("expected %d records after concurrent appends, got %d", n, len(out))
	}
}

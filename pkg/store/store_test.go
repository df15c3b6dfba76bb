package store_test

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/elves/gallery/pkg/gallery"
	"github.com/elves/gallery/pkg/must"
	. "github.com/elves/gallery/pkg/store"
	"github.com/elves/gallery/pkg/testutil"
)

var _ gallery.Identifier = Item{}

func TestStore_AddAndItems(t *testing.T) {
	st := MustTempStore(t)

	texts := []string{"first", "second", "third"}
	var added []Item
	for _, text := range texts {
		added = append(added, must.OK1(st.Add("cats", text)))
	}
	must.OK1(st.Add("dogs", "other"))

	items, err := st.Items("cats")
	if err != nil {
		t.Fatalf("Items -> error %v", err)
	}
	if !reflect.DeepEqual(items, added) {
		t.Errorf("Items -> %v, want %v", items, added)
	}
	for i, item := range items {
		if item.Text != texts[i] || item.Seq != uint64(i+1) {
			t.Errorf("item %d is %+v, want text %q and seq %d", i, item, texts[i], i+1)
		}
	}
}

func TestStore_GeneratesDistinctIDs(t *testing.T) {
	st := MustTempStore(t)
	a := must.OK1(st.Add("b", "same"))
	b := must.OK1(st.Add("b", "same"))
	if a.ID() == "" || a.ID() == b.ID() {
		t.Errorf("got IDs %q and %q, want distinct non-empty IDs", a.ID(), b.ID())
	}
}

func TestStore_ItemsOfMissingBucket(t *testing.T) {
	st := MustTempStore(t)
	items, err := st.Items("missing")
	if err != nil || len(items) != 0 || items == nil {
		t.Errorf("Items -> (%v, %v), want (empty non-nil, nil)", items, err)
	}
}

func TestStore_EmptyBucketName(t *testing.T) {
	st := MustTempStore(t)
	if _, err := st.Add("", "x"); !errors.Is(err, ErrEmptyBucketName) {
		t.Errorf("Add -> error %v, want ErrEmptyBucketName", err)
	}
	if _, err := st.Items(""); !errors.Is(err, ErrEmptyBucketName) {
		t.Errorf("Items -> error %v, want ErrEmptyBucketName", err)
	}
}

func TestStore_Buckets(t *testing.T) {
	st := MustTempStore(t)
	must.OK1(st.Add("b", "x"))
	must.OK1(st.Add("a", "x"))
	// bbolt iterates buckets in key order.
	if got := must.OK1(st.Buckets()); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Buckets -> %v, want [a b]", got)
	}
}

func TestStore_PersistsAcrossOpens(t *testing.T) {
	dbname := filepath.Join(testutil.TempDir(t), "db")
	st := must.OK1(NewStore(dbname))
	added := must.OK1(st.Add("b", "kept"))
	must.OK(st.Close())

	st = must.OK1(NewStore(dbname))
	defer st.Close()
	if items := must.OK1(st.Items("b")); !reflect.DeepEqual(items, []Item{added}) {
		t.Errorf("Items after reopening -> %v, want %v", items, []Item{added})
	}
}

func TestNewStore_Error(t *testing.T) {
	// A directory cannot be opened as a database.
	if _, err := NewStore(testutil.TempDir(t)); err == nil {
		t.Errorf("NewStore on a directory returned nil error")
	}
}

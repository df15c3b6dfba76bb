// Package viewer implements the subprograms of the gallery program: the
// interactive gallery, listing demos, and listing and adding to a store.
package viewer

import (
	"fmt"
	"os"

	"github.com/elves/gallery/pkg/errutil"
	"github.com/elves/gallery/pkg/logutil"
	"github.com/elves/gallery/pkg/prog"
	"github.com/elves/gallery/pkg/source"
	"github.com/elves/gallery/pkg/store"
)

var logger = logutil.GetLogger("[viewer] ")

// ListDemosProgram lists the demos when -list-demos is given.
type ListDemosProgram struct{}

func (ListDemosProgram) Run(fds [3]*os.File, f *prog.Flags, _ []string) error {
	if !f.ListDemos {
		return prog.ErrNotSuitable
	}
	for _, d := range source.Demos {
		fmt.Fprintf(fds[1], "%-8s %s\n", d.Name, d.Description)
	}
	return nil
}

// ListBucketsProgram lists the buckets of a store when -list-buckets is given.
type ListBucketsProgram struct{}

func (ListBucketsProgram) Run(fds [3]*os.File, f *prog.Flags, _ []string) (err error) {
	if !f.ListBuckets {
		return prog.ErrNotSuitable
	}
	s, err := Resolve(f)
	if err != nil {
		return err
	}
	if s.DB == "" {
		return prog.BadUsage("-list-buckets requires -db")
	}
	st, err := store.NewStore(s.DB)
	if err != nil {
		return err
	}
	defer func() { err = errutil.Multi(err, st.Close()) }()
	buckets, err := st.Buckets()
	if err != nil {
		return err
	}
	for _, b := range buckets {
		fmt.Fprintln(fds[1], b)
	}
	return nil
}

// AddProgram adds an item to a bucket of a store when -add is given, and
// writes the ID of the new item.
type AddProgram struct{}

func (AddProgram) Run(fds [3]*os.File, f *prog.Flags, args []string) (err error) {
	if f.Add == "" {
		return prog.ErrNotSuitable
	}
	if len(args) > 0 {
		return prog.BadUsage("-add does not take arguments")
	}
	s, err := Resolve(f)
	if err != nil {
		return err
	}
	if s.DB == "" || s.Bucket == "" {
		return prog.BadUsage("-add requires -db and -bucket")
	}
	st, err := store.NewStore(s.DB)
	if err != nil {
		return err
	}
	defer func() { err = errutil.Multi(err, st.Close()) }()
	item, err := st.Add(s.Bucket, f.Add)
	if err != nil {
		return err
	}
	fmt.Fprintln(fds[1], item.ID())
	return nil
}

package segyio_test

import (
	"fmt"

	"github.com/phil-mansfield/segy/lib/segyio"
)

func Example() {
	ff := segyio.NewFakeFile(segyio.FormatIBM, 5, 3)
	rd, err := ff.Reader()
	if err != nil {
		panic(err)
	}

	f, err := segyio.NewReader(rd, rd.Size(), nil)
	if err != nil {
		panic(err)
	}
	defer f.Close()

	fmt.Println(f.Header().Revision, f.Header().Format, f.TraceCount())

	it := f.Traces()
	for it.Next() {
		tr := it.Trace()
		fmt.Println(tr.Index, tr.Header.CDP, tr.Samples)
	}
	if err := it.Err(); err != nil {
		panic(err)
	}
	// Output:
	// 1.0 4-byte IBM float (1) 3
	// 0 1000 [0 1 2 3 4]
	// 1 1001 [10 11 12 13 14]
	// 2 1002 [20 21 22 23 24]
}

func ExampleFile_SampleNav() {
	ff := segyio.NewFakeFile(segyio.FormatIEEE32, 5, 10)
	rd, err := ff.Reader()
	if err != nil {
		panic(err)
	}
	f, err := segyio.NewReader(rd, rd.Size(), nil)
	if err != nil {
		panic(err)
	}
	defer f.Close()

	nav, err := f.SampleNav(segyio.NavOptions{Stride: 4, IncludeLast: true})
	if err != nil {
		panic(err)
	}
	for _, s := range nav {
		fmt.Printf("trace %d: (%g, %g)\n", s.Trace, s.X, s.Y)
	}
	// Output:
	// trace 0: (0, 0)
	// trace 4: (400, 200)
	// trace 8: (800, 400)
	// trace 9: (900, 450)
}

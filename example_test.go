package foldbloom_test

import (
	"fmt"
	"log"
	"os"

	"github.com/jpl-au/foldbloom"
)

func Example() {
	f, err := foldbloom.New(foldbloom.Config{Size: 125, K: 4})
	if err != nil {
		log.Fatal(err)
	}

	f.Insert([]byte("one"))

	ok, _ := f.Query([]byte("one"))
	fmt.Println(ok, f.Count())
	// Output: true 4
}

func ExampleFilter_Positions() {
	f, _ := foldbloom.New(foldbloom.Config{Size: 125, K: 4})

	pos, _ := f.Positions([]byte("three"))
	fmt.Println(pos)
	// Output: [901 308 366 558]
}

func ExampleFolded() {
	f, _ := foldbloom.NewFolded(foldbloom.Config{Size: 128, K: 30, Fold: 1})

	f.Insert([]byte("Hello, World"))

	ok, _ := f.Query([]byte("Hello, World"))
	fmt.Println(ok)
	// Output: true
}

func ExampleIndexSet_Fold() {
	wide := foldbloom.NewIndexSet(4)
	for _, p := range []uint64{0, 1, 9, 16} {
		wide.Set(p)
	}

	// 0 and 1 share folded position 0 and cancel.
	fmt.Println(wide.Fold(1).Indices())
	// Output: [4 8]
}

func ExampleNewBitBudget() {
	words := foldbloom.NewXXH3Words([]byte("one"))
	ix, _ := foldbloom.NewBitBudget(words, 1000)

	pos, _ := foldbloom.Take(ix, 4)
	fmt.Println(pos)
	// Output: [416 801 668 939]
}

func ExampleWriteJSONL() {
	rows := []foldbloom.RatePoint{{N: 4000, FalseNegatives: 0, FalsePositives: 12}}
	if err := foldbloom.WriteJSONL(os.Stdout, rows); err != nil {
		log.Fatal(err)
	}
	// Output: {"n":4000,"fn":0,"fp":12}
}

// Command nominal-dump builds a nominal tree from newline-delimited stdin
// input and prints its GetString dump. A debugging aid, not a protocol
// surface.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/vocdoni/nominal-adapton"
	"github.com/vocdoni/nominal-adapton/engine"
)

func main() {
	right := flag.Bool("right", false, "build a right-spine tree instead of left")
	flag.Parse()

	mem, err := engine.New(nil, engine.Codec{})
	if err != nil {
		fmt.Fprintln(os.Stderr, "nominal-dump:", err)
		os.Exit(1)
	}

	lh := nominal.LevelHasher[string]{
		Hash:   nominal.FNV1aSeededHash,
		Encode: func(s string) []byte { return []byte(s) },
	}

	var lines []string
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintln(os.Stderr, "nominal-dump:", err)
		os.Exit(1)
	}

	list := nominal.NilList[string]()
	for i := len(lines) - 1; i >= 0; i-- {
		list = nominal.Cons(lines[i], list)
	}

	dir := nominal.DirLeft
	if *right {
		dir = nominal.DirRight
	}

	tree, err := nominal.TreeOfList(mem, lh, dir, list)
	if err != nil {
		fmt.Fprintln(os.Stderr, "nominal-dump:", err)
		os.Exit(1)
	}

	s, err := nominal.GetStringTree(mem, tree, func(x string) string { return x })
	if err != nil {
		fmt.Fprintln(os.Stderr, "nominal-dump:", err)
		os.Exit(1)
	}
	fmt.Println(s)
}

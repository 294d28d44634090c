package gck_test

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jpl-au/gck"
	"github.com/jpl-au/gck/internal/gcktest"
)

func Example() {
	data := gcktest.Plasmid().Bytes()

	// Decode a container held in memory
	f, err := gck.Decode(bytes.NewReader(data), int64(len(data)), gck.TypeGCC, gck.DecodeOptions{})
	if err != nil {
		log.Fatal(err)
	}

	// Merge regions into features and prune
	rules, _ := gck.CompileRules([][2]string{{"^lacz", "CDS"}})
	for _, ft := range gck.Reconcile(f, gck.Options{Level: gck.LevelMedium, Rules: rules}) {
		fmt.Printf("%s %d..%d %s\n", ft.Type, ft.Start, ft.End, ft.Name)
	}
	// Output:
	// CDS 11..40 lacZ_alpha
	// gene 3..8 NONE
}

func ExampleOpen() {
	dir, _ := os.MkdirTemp("", "gck-example")
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "pTest.gcc")
	os.WriteFile(path, gcktest.Plasmid().Bytes(), 0644)

	f, err := gck.Open(path, gck.DecodeOptions{})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(f.ConstructName, f.SequenceLength, f.Circular)
	// Output: pTest 72 true
}

func ExampleRules_Classify() {
	rules, err := gck.CompileRules([][2]string{
		{"promoter", "promoter"},
		{"^t7", "primer_bind"},
	})
	if err != nil {
		log.Fatal(err)
	}
	t, _ := rules.Classify("T7 promoter")
	fmt.Println(t)
	// Output: primer_bind
}

func ExampleWriteGenBank() {
	f := &gck.File{ConstructName: "pMini", Sequence: "ATGAAATAG", SequenceLength: 9}
	features := []*gck.Feature{{
		Region: gck.Region{Start: 1, End: 9, Display: true},
		Name:   "orf",
		Strand: gck.StrandReverse,
		Type:   gck.CDS,
	}}
	date := time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	if err := gck.WriteGenBank(&buf, f, features, gck.GenBankOptions{Date: date}); err != nil {
		log.Fatal(err)
	}
	_, table, _ := strings.Cut(buf.String(), "FEATURES")
	fmt.Print("FEATURES" + table)
	// Output:
	// FEATURES             Location/Qualifiers
	//      CDS             complement(1..9)
	//                      /label=orf
	// ORIGIN
	//         1 ATGAAATAG
	// //
}

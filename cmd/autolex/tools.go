// CLAUDE:SUMMARY Offline CLI subcommands: catalog conversion between sources, and one-shot expand/suggest/rank against a catalog.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hazyhaar/autolex/pkg/catalog"
	"github.com/hazyhaar/autolex/pkg/lexicon"
)

func cmdImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	from := fs.String("from", "", "source catalog URI (e.g. catalog/vehicles.yaml, https://host/vehicles.yaml)")
	to := fs.String("to", "", "target catalog URI (e.g. catalog.db, snapshot.gob)")
	fs.Parse(args)

	if *from == "" || *to == "" {
		fmt.Println("Catalog sources:")
		fmt.Println()
		for _, r := range catalog.All() {
			mode := "read-only"
			if _, ok := r.(catalog.Writer); ok {
				mode = "read-write"
			}
			fmt.Printf("  %-8s %s\n", r.Scheme(), mode)
		}
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  autolex import -from <uri> -to <uri>")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	n, err := importCatalog(ctx, *from, *to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "import: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s -> %s: %d brands, %d skipped entries\n", *from, *to, n.brands, n.skipped)
}

type importStats struct {
	brands  int
	skipped int
}

// importCatalog copies the definitions at from into to. Entries the loader
// would skip are reported but still copied, so the target stays faithful.
func importCatalog(ctx context.Context, from, to string) (importStats, error) {
	defs, err := catalog.Load(ctx, from)
	if err != nil {
		return importStats{}, err
	}
	_, diags := lexicon.Load(*defs)
	for _, d := range diags {
		fmt.Fprintf(os.Stderr, "warning: %v\n", d)
	}
	if err := catalog.Save(ctx, to, defs); err != nil {
		return importStats{}, err
	}
	return importStats{brands: len(defs.Brands), skipped: len(diags)}, nil
}

// openIndex loads the catalog at uri for a one-shot command.
func openIndex(uri string) *lexicon.Index {
	loader, err := catalog.Loader(uri)
	if err != nil {
		fmt.Fprintf(os.Stderr, "catalog: %v\n", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	reg := lexicon.NewRegistry(loader, logger)
	if err := reg.Load(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "catalog: %v\n", err)
		os.Exit(1)
	}
	return reg.Index()
}

func cmdExpand(args []string) {
	fs := flag.NewFlagSet("expand", flag.ExitOnError)
	uri := fs.String("catalog", "catalog/vehicles.yaml", "catalog URI")
	strict := fs.Bool("strict", false, "model-specific expansion")
	fs.Parse(args)

	idx := openIndex(*uri)
	writeLines(os.Stdout, expandQuery(idx, strings.Join(fs.Args(), " "), *strict))
}

func expandQuery(idx *lexicon.Index, query string, strict bool) []string {
	if strict {
		return idx.ExpandWithoutBrandAliases(query)
	}
	return idx.Expand(query)
}

func cmdSuggest(args []string) {
	fs := flag.NewFlagSet("suggest", flag.ExitOnError)
	uri := fs.String("catalog", "catalog/vehicles.yaml", "catalog URI")
	limit := fs.Int("limit", 10, "maximum suggestions")
	fs.Parse(args)

	idx := openIndex(*uri)
	for _, s := range idx.Suggest(strings.Join(fs.Args(), " "), *limit) {
		fmt.Printf("%s\t%s\n", s.Display, s.SearchKey)
	}
}

func cmdRank(args []string) {
	fs := flag.NewFlagSet("rank", flag.ExitOnError)
	uri := fs.String("catalog", "catalog/vehicles.yaml", "catalog URI")
	strict := fs.Bool("strict", false, "model-specific expansion")
	fs.Parse(args)

	idx := openIndex(*uri)
	aliases := expandQuery(idx, strings.Join(fs.Args(), " "), *strict)
	candidates, err := readCandidates(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read captions: %v\n", err)
		os.Exit(1)
	}
	for _, r := range lexicon.Rank(candidates, aliases) {
		fmt.Printf("%s\t%s\t%s\n", r.ID, r.Score.Kind, r.Caption)
	}
}

// readCandidates reads one caption per line; ids are line numbers.
func readCandidates(r io.Reader) ([]lexicon.Candidate, error) {
	var out []lexicon.Candidate
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		out = append(out, lexicon.Candidate{ID: strconv.Itoa(line), Caption: text})
	}
	return out, sc.Err()
}

func writeLines(w io.Writer, lines []string) {
	bw := bufio.NewWriter(w)
	for _, l := range lines {
		bw.WriteString(l)
		bw.WriteByte('\n')
	}
	bw.Flush()
}

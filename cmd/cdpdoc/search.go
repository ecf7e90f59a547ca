package main

import (
	"fmt"

	"github.com/fwojciec/cdpdoc"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	opts := cdpdoc.SearchOptions{
		Limit:        c.Limit,
		RelevantOnly: true,
	}
	if opts.Limit <= 0 {
		opts.Limit = deps.Config.Search.TopK
	}
	for _, name := range c.Platforms {
		p, err := cdpdoc.ParsePlatform(name)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", cdpdoc.ErrorMessage(err))
			return err
		}
		opts.Platforms = append(opts.Platforms, p)
	}

	results := deps.Engine.Searcher().Search(c.Query, opts)
	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No matching documents.")
		return nil
	}

	for i, r := range results {
		fmt.Fprintf(deps.Stdout, "%d. [%s] %s (%.3f)\n   %s\n", i+1, r.Document.Platform, r.Document.Title, r.Score, r.Document.URL)
	}
	return nil
}

// Run executes the compare command.
func (c *CompareCmd) Run(deps *Dependencies) error {
	fmt.Fprintln(deps.Stdout, deps.Engine.Searcher().Compare(c.Feature))
	return nil
}

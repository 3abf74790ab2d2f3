// Reporting
//
// Every operation takes a WalkOptions. Hidden entries and the names in
// Exclude are skipped, '*' in an exclusion matches any run of characters:
//
//	opts := walk.DefaultWalkOptions()
//	opts.Exclude = []string{".git", "node_modules", "*.log"}
//	opts.MaxDepth = 3
//
//	// Print the tree
//	res := walk.Tree("/path/to/repo", opts, nil)
//	if !res.Success {
//		log.Println(res.Err)
//	}
//
//	// Dump Go and Markdown sources, skipping anything over 256 KiB
//	opts.Extensions = []string{".go", ".md"}
//	opts.MaxFileSize = 256 * 1024
//	out := walk.ExportContents("/path/to/repo", "repo_contents.txt", opts)
//	fmt.Println(out.Counts.Processed, out.Counts.Skipped)
//
//	// Tree and statistics in one file
//	walk.Summarize("/path/to/repo", "repo_summary.txt", opts, true)
//
// Remote repositories are cloned first:
//
//	dir, err := walk.Clone(ctx, walk.CloneOptions{URL: "https://github.com/org/repo.git", Depth: 1})

package walk

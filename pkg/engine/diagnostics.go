package engine

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/fatih/color"
)

// maxListedArtifacts bounds the recursive artifact listing so a deep tree
// cannot flood the terminal.
const maxListedArtifacts = 10

// ReportResolutionFailure writes troubleshooting information about the
// working environment after the resolver exhausted every strategy. The
// output is advisory only: it never changes control flow and the function
// never fails. Missing directories are reported as absent, not as errors.
func ReportResolutionFailure(w io.Writer, attempts []Attempt) {
	header := color.New(color.Bold, color.FgRed)
	section := color.New(color.Bold)

	fmt.Fprintln(w, header.Sprint("Could not locate a shell engine"))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Go runtime: %s (%s/%s)\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	if cwd, err := os.Getwd(); err == nil {
		fmt.Fprintf(w, "Current directory: %s\n", cwd)
	}

	if ids := Identifiers(); len(ids) > 0 {
		fmt.Fprintf(w, "Registered engine identifiers: %s\n", strings.Join(ids, ", "))
	} else {
		fmt.Fprintln(w, "Registered engine identifiers: none")
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, section.Sprint("Attempted strategies:"))
	for i, attempt := range attempts {
		fmt.Fprintf(w, "  %d. %s: %v\n", i+1, attempt.Strategy, attempt.Err)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, section.Sprint("Search roots:"))
	for _, root := range DefaultSearchRoots {
		entries, err := os.ReadDir(root)
		if err != nil {
			fmt.Fprintf(w, "  %s: not present\n", root)
			continue
		}

		names := make([]string, 0, len(entries))
		for _, entry := range entries {
			names = append(names, entry.Name())
		}
		fmt.Fprintf(w, "  %s: %s\n", root, strings.Join(names, " "))
	}

	artifacts := scanArtifacts(".", maxListedArtifacts)
	fmt.Fprintln(w)
	if len(artifacts) == 0 {
		fmt.Fprintf(w, "No engine artifacts (*.so) found under the current directory.\n")
	} else {
		fmt.Fprintf(w, "Engine artifacts found (first %d):\n", maxListedArtifacts)
		for _, artifact := range artifacts {
			fmt.Fprintf(w, "  - %s\n", artifact)
		}
	}
}

// scanArtifacts walks root collecting shared-object files, stopping after
// limit entries. Walk errors are ignored; this is best-effort output.
func scanArtifacts(root string, limit int) []string {
	var artifacts []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".so") {
			artifacts = append(artifacts, path)
			if len(artifacts) >= limit {
				return fs.SkipAll
			}
		}
		return nil
	})
	return artifacts
}

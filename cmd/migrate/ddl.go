package main

import "strings"

// splitDDLStatements drops comment lines and splits a migration file into
// individual statements.
func splitDDLStatements(content string) []string {
	lines := strings.Split(content, "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		cleaned = append(cleaned, line)
	}

	var result []string
	for _, stmt := range strings.Split(strings.Join(cleaned, "\n"), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			result = append(result, stmt)
		}
	}
	return result
}

// pending returns the migration files not yet recorded as applied, keeping
// the order of files.
func pending(files []string, applied map[string]bool, name func(string) string) []string {
	var out []string
	for _, f := range files {
		if !applied[name(f)] {
			out = append(out, f)
		}
	}
	return out
}

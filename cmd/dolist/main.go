package main

import (
	"os"
	"strings"

	"dolist-cli/internal/cli"
)

// lookupCommands maps generated id prefixes to the subcommand that shows
// that record, so a pasted id works as a shortcut: `dolist item-x` runs
// `dolist items show item-x`, `dolist cat-x` runs `dolist categories show
// cat-x`.
var lookupCommands = map[string][]string{
	"item-": {"items", "show"},
	"cat-":  {"categories", "show"},
}

func lookupTarget(arg string) ([]string, bool) {
	arg = strings.TrimSpace(arg)
	for prefix, path := range lookupCommands {
		if strings.HasPrefix(arg, prefix) && len(arg) > len(prefix) {
			return path, true
		}
	}
	return nil, false
}

// expandLookupArgs rewrites argv before cobra parses it, turning the first
// positional token into the matching show command when it looks like a
// record id.
//
// Persistent flags may precede the id (`dolist --dir ... item-x`), so the
// scan walks to the first positional token, skipping a flag's value only
// for flags known to take one. Everything after `--` is positional to
// cobra and excluded from subcommand resolution, so when the id follows a
// `--` the command tokens are inserted before it.
func expandLookupArgs(argv []string) []string {
	takesValue := map[string]bool{
		"--dir":       true,
		"--workspace": true,
		"--format":    true,
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		switch {
		case a == "":
			continue
		case a == "--":
			if i+1 >= len(argv) {
				return argv
			}
			path, ok := lookupTarget(argv[i+1])
			if !ok {
				return argv
			}
			return splice(argv, i, path)
		case strings.HasPrefix(a, "-"):
			// --flag=value carries its value in the same token.
			if takesValue[a] {
				i++
			}
			continue
		default:
			path, ok := lookupTarget(a)
			if !ok {
				return argv
			}
			return splice(argv, i, path)
		}
	}
	return argv
}

func splice(argv []string, at int, tokens []string) []string {
	out := make([]string, 0, len(argv)+len(tokens))
	out = append(out, argv[:at]...)
	out = append(out, tokens...)
	out = append(out, argv[at:]...)
	return out
}

func main() {
	os.Args = expandLookupArgs(os.Args)

	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

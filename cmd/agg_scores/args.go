package main

import "strings"

// options maps each recognised option to whether it takes a value.
var options = map[string]bool{
	"-r":        true,
	"--res_dir": true,
	"-c":        true,
	"--config":  true,
	"-q":        false,
	"--quiet":   false,
	"-h":        false,
	"--help":    false,
	"--version": false,
}

// resolve returns the recognised option named by a, which may be a unique
// prefix of a long option.
func resolve(a string) (string, bool) {
	if _, ok := options[a]; ok {
		return a, true
	}
	if !strings.HasPrefix(a, "--") || len(a) < 3 {
		return "", false
	}
	match := ""
	for o := range options {
		if strings.HasPrefix(o, a) {
			if len(match) > 0 {
				return "", false
			}
			match = o
		}
	}
	return match, len(match) > 0
}

// knownArgs keeps only recognised options and their values, so that
// arguments meant for other tools do not fail the parse. Like argparse it
// accepts attached short values (-rout) and unique long prefixes (--res out).
func knownArgs(argv []string) []string {
	var known []string
	for i := 0; i < len(argv); i++ {
		a := argv[i]
		if a == "--" {
			break
		}
		if !strings.HasPrefix(a, "-") || len(a) < 2 {
			continue
		}

		if j := strings.Index(a, "="); j > 0 && strings.HasPrefix(a, "--") {
			if o, ok := resolve(a[:j]); ok && options[o] {
				known = append(known, o+a[j:])
			}
			continue
		}

		if !strings.HasPrefix(a, "--") && len(a) > 2 {
			if short := a[:2]; options[short] {
				known = append(known, short, strings.TrimPrefix(a[2:], "="))
			}
			continue
		}

		o, ok := resolve(a)
		if !ok {
			continue
		}
		known = append(known, o)
		if options[o] && i+1 < len(argv) {
			i++
			known = append(known, argv[i])
		}
	}
	return known
}

// Package main provides the CLI entrypoint for wmdialog.
package main

import (
	"os"
	"strings"
)

// singleDashFlags are the long flags that may also be written with one dash,
// as in `wmdialog -fg red -to 5 "hello"`.
var singleDashFlags = map[string]bool{
	"fn": true,
	"fg": true,
	"bg": true,
	"br": true,
	"hs": true,
	"vs": true,
	"to": true,
}

// normalizeArgs rewrites single-dash long flags to their double-dash form so
// the flag parser accepts them. Arguments after "--" are left alone.
func normalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			return append(out, args[i:]...)
		}
		if strings.HasPrefix(arg, "-") && !strings.HasPrefix(arg, "--") {
			name, _, _ := strings.Cut(arg[1:], "=")
			if singleDashFlags[name] {
				arg = "-" + arg
			}
		}
		out = append(out, arg)
	}
	return out
}

func main() {
	rootCmd.SetArgs(normalizeArgs(os.Args[1:]))
	Execute()
}

// Package flagx lets several config layers share os.Args. Each layer keeps
// only the flags it owns and parses them with its own flag.FlagSet.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// FilterArgs returns the arguments in args that belong to allowedFlags,
// together with their values. A flag may be spelled with one or two dashes
// and its value may follow as the next argument or after '='.
// The result is never nil.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[flagName(f)] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		name, _, hasValue := strings.Cut(arg, "=")
		if _, ok := allowed[flagName(name)]; !ok {
			continue
		}
		filtered = append(filtered, arg)

		if !hasValue && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}
	return filtered
}

func flagName(f string) string {
	return strings.TrimLeft(f, "-")
}

// StringFlag returns the value given for any of names, the last one winning.
// It returns "" when none of them is present.
func StringFlag(args []string, names ...string) string {
	var value string

	fs := flag.NewFlagSet("flagx", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	for _, n := range names {
		fs.StringVar(&value, flagName(n), "", "")
	}
	_ = fs.Parse(FilterArgs(args, names))

	return value
}

// ConfigPath returns the JSON config file given with -c or -config.
func ConfigPath(args []string) string {
	return StringFlag(args, "-c", "-config")
}

// EnvFilePath returns the dotenv file given with -e or -env-file.
func EnvFilePath(args []string) string {
	return StringFlag(args, "-e", "-env-file")
}

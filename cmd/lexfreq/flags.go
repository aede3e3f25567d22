package main

import (
	"flag"
	"io"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/lexfreq/pkg/config"
)

// wordList collects every occurrence of a repeatable flag.
type wordList []string

func (w *wordList) String() string { return strings.Join(*w, ",") }

func (w *wordList) Set(v string) error {
	*w = append(*w, v)
	return nil
}

type options struct {
	configPath  string
	envFile     string
	words       int
	fileNum     int
	length      int
	exclude     wordList
	excludeFile string
	format      string
	color       string
	metricsFile string
	logLevel    string

	files []string
	set   map[string]bool
}

// aliases maps short flag names to the long name they stand for.
var aliases = map[string]string{
	"w": "words",
	"f": "filenum",
	"l": "length",
	"e": "exclude",
	"E": "exclude-file",
}

// parseArgs parses flags and input paths, which may be interleaved.
// Everything after "--" is an input path.
func parseArgs(args []string, stderr io.Writer) (*options, error) {
	defaults := config.Default()
	o := &options{set: make(map[string]bool)}

	fs := flag.NewFlagSet("lexfreq", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		io.WriteString(stderr, "usage: lexfreq [flags] FILE...\n\n")
		fs.PrintDefaults()
	}

	fs.StringVar(&o.configPath, "config", "", "path to a YAML config file")
	fs.StringVar(&o.envFile, "env-file", ".env", "dotenv file with LF_* overrides; ignored when missing")
	for _, name := range []string{"w", "words"} {
		fs.IntVar(&o.words, name, defaults.Analysis.MinWords, "minimum total occurrences of a stem")
	}
	for _, name := range []string{"f", "filenum"} {
		fs.IntVar(&o.fileNum, name, defaults.Analysis.MinFiles, "a stem must occur in more than this many files")
	}
	for _, name := range []string{"l", "length"} {
		fs.IntVar(&o.length, name, defaults.Analysis.MinLength, "a stem must be longer than this many characters")
	}
	for _, name := range []string{"e", "exclude"} {
		fs.Var(&o.exclude, name, "word to exclude from the report (repeatable)")
	}
	for _, name := range []string{"E", "exclude-file"} {
		fs.StringVar(&o.excludeFile, name, "", "file with one excluded word per line")
	}
	fs.StringVar(&o.format, "format", defaults.Output.Format, "report format: text or json")
	fs.StringVar(&o.color, "color", defaults.Output.Color, "colour mode: auto, always or never")
	fs.StringVar(&o.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile on exit")
	fs.StringVar(&o.logLevel, "log-level", defaults.Logging.Level, "log level: debug, info, warn or error")

	rest := args
	for {
		if err := fs.Parse(rest); err != nil {
			return nil, err
		}
		remaining := fs.Args()
		consumed := len(rest) - len(remaining)
		if consumed > 0 && rest[consumed-1] == "--" {
			o.files = append(o.files, remaining...)
			break
		}
		if len(remaining) == 0 {
			break
		}
		o.files = append(o.files, remaining[0])
		rest = remaining[1:]
	}

	fs.Visit(func(f *flag.Flag) {
		name := f.Name
		if long, ok := aliases[name]; ok {
			name = long
		}
		o.set[name] = true
	})
	return o, nil
}

// apply overrides cfg with the flags given on the command line. Excluded
// words from flags are added to the configured ones.
func (o *options) apply(cfg *config.Config) {
	if o.set["words"] {
		cfg.Analysis.MinWords = o.words
	}
	if o.set["filenum"] {
		cfg.Analysis.MinFiles = o.fileNum
	}
	if o.set["length"] {
		cfg.Analysis.MinLength = o.length
	}
	if o.set["exclude"] {
		cfg.Analysis.Exclude = append(cfg.Analysis.Exclude, o.exclude...)
	}
	if o.set["exclude-file"] {
		cfg.Analysis.ExcludeFile = o.excludeFile
	}
	if o.set["format"] {
		cfg.Output.Format = o.format
	}
	if o.set["color"] {
		cfg.Output.Color = o.color
	}
	if o.set["metrics-file"] {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Textfile = o.metricsFile
	}
	if o.set["log-level"] {
		cfg.Logging.Level = o.logLevel
	}
}

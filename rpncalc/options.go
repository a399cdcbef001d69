package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/ahrtr/gocontainer/set"

	"rpncalc-go/model"
	"rpncalc-go/rpn"
)

// / Command-line options.
type Options struct {
	/// Tool to run rather than evaluating.
	Tool *Tool

	/// Enabled debug modes ("-d").
	DebugModes set.Interface
}

func NewOptions() *Options {
	return &Options{DebugModes: set.New()}
}

func (this *Options) Debugging(mode string) bool {
	return this.DebugModes.Contains(mode)
}

// / Evaluation configuration set from flags and the environment.
type Config struct {
	/// Digits printed after the decimal point.
	Precision int

	/// Print only the number.
	Quiet bool

	/// What to do with tokens that are neither numbers nor operators.
	UnknownTokens rpn.UnknownTokenPolicy

	/// History database, "" disables history.
	HistoryPath string

	/// How long unused history entries are kept.
	HistoryTTL time.Duration
}

const kDefaultPrecision = 6

// NewConfig returns the defaults, overridden by RPNCALC_PRECISION and
// RPNCALC_HISTORY when set.
func NewConfig() *Config {
	config := &Config{
		Precision:   kDefaultPrecision,
		HistoryTTL:  model.DefaultExpiredDuration,
		HistoryPath: os.Getenv("RPNCALC_HISTORY"),
	}
	if p := os.Getenv("RPNCALC_PRECISION"); p != "" {
		if value, err := strconv.Atoi(p); err == nil && value >= 0 {
			config.Precision = value
		} else {
			Warning("ignoring invalid RPNCALC_PRECISION '%s'", p)
		}
	}
	return config
}

// / Parse argv for command-line options.
// / Returns an exit code, or -1 if rpncalc should continue.
// / On return args holds the positional arguments.
func ReadFlags(args *[]string, options *Options, config *Config) int {
	opts, optind, err := getopt.Getopts((*args)[:optionsEnd(*args)], kOptString)
	if err != nil {
		Error("%s", optionError(err))
		UsageMain(config)
		return int(ExitUsage)
	}
	*args = (*args)[optind:]
	for _, optV := range opts {
		opt := optV.Option
		optarg := optV.Value
		switch opt {
		case 'd':
			if !DebugEnable(optarg, options) {
				return int(ExitUsage)
			}
		case 'p':
			value, err := strconv.Atoi(optarg)
			if err != nil || value < 0 {
				Error("invalid -p parameter '%s'", optarg)
				return int(ExitUsage)
			}
			config.Precision = value
		case 'q':
			config.Quiet = true
		case 's':
			config.HistoryPath = optarg
		case 't':
			tool, ok := ChooseTool(optarg)
			if !ok {
				return int(ExitUsage)
			}
			if tool == nil {
				return int(ExitSuccess)
			}
			options.Tool = tool
		case 'w':
			if !WarningEnable(optarg, config) {
				return int(ExitUsage)
			}
		case 'V':
			fmt.Fprintf(stdout, "%s\n", kRpncalcVersion)
			return int(ExitSuccess)
		default: // case 'h':
			UsageMain(config)
			return int(ExitUsage)
		}
	}
	return -1
}

const kOptString = "d:hp:qs:t:Vw:"

// optionsEnd returns the index of the first argument that is an expression
// starting with a negative operand, such as "-3 4 *" or "-.5 2 ^". getopt
// only sees the arguments before it.
func optionsEnd(args []string) int {
	for i := 1; i < len(args); i++ {
		arg := args[i]
		if len(arg) < 2 || arg[0] != '-' || arg == "--" {
			break
		}
		if arg[1] == '.' || (arg[1] >= '0' && arg[1] <= '9') {
			return i
		}
		for j := 1; j < len(arg); j++ {
			k := strings.IndexByte(kOptString, arg[j])
			if k < 0 || k+1 >= len(kOptString) || kOptString[k+1] != ':' {
				continue
			}
			if j == len(arg)-1 {
				i++
			}
			break
		}
	}
	return len(args)
}

// optionError drops the program path getopt puts in front of its messages.
func optionError(err error) string {
	switch e := err.(type) {
	case getopt.UnknownOptionError:
		return fmt.Sprintf("unknown option -%c", rune(e))
	case getopt.MissingOptionError:
		return fmt.Sprintf("expected argument for -%c", rune(e))
	}
	return err.Error()
}

// / Print usage information.
func UsageMain(config *Config) {
	fmt.Fprintf(stderr,
		"usage: rpncalc [options] [--] EXPRESSION\n"+
			"\n"+
			"evaluates one Reverse Polish Notation expression, e.g. '5 1 2 + 4 * + 3 -'.\n"+
			"operators: + - * / ^. results print as fixed-point, or +Inf, -Inf and NaN.\n"+
			"\n"+
			"options:\n"+
			"  -V       print rpncalc version (\"%s\")\n"+
			"  -q       print only the result\n"+
			"  -p N     digits after the decimal point [default=%d]\n"+
			"  -s FILE  record the evaluation in the history database FILE\n"+
			"\n"+
			"  -d MODE  enable debugging (use '-d list' to list modes)\n"+
			"  -t TOOL  run a subtool (use '-t list' to list subtools)\n"+
			"  -w FLAG  adjust warnings (use '-w list' to list warnings)\n",
		kRpncalcVersion, config.Precision)
}

// / Enable a debugging mode.  Returns false if rpncalc should exit instead
// / of continuing.
func DebugEnable(name string, options *Options) bool {
	switch name {
	case "list":
		fmt.Fprintf(stdout, "debugging modes:\n"+
			"  stats        print operation counts/timing info\n"+
			"  explain      explain what each token did to the stack\n"+
			"multiple modes can be enabled via -d FOO -d BAR\n")
		return false
	case "stats":
		if GMetrics == nil {
			GMetrics = NewMetrics()
		}
		options.DebugModes.Add(name)
		return true
	case "explain":
		options.DebugModes.Add(name)
		return true
	default:
		suggestion := SpellcheckString(name, "stats", "explain")
		if suggestion != "" {
			Error("unknown debug setting '%s', did you mean '%s'?", name, suggestion)
		} else {
			Error("unknown debug setting '%s'", name)
		}
		return false
	}
}

// / Set a warning flag.  Returns false if rpncalc should exit instead of
// / continuing.
func WarningEnable(name string, config *Config) bool {
	switch name {
	case "list":
		fmt.Fprintf(stdout, "warning flags:\n"+
			"  unknowntoken={ignore,warn,err}  token is neither a number nor an operator\n")
		return false
	case "unknowntoken=ignore":
		config.UnknownTokens = rpn.UnknownTokenIgnore
		return true
	case "unknowntoken=warn":
		config.UnknownTokens = rpn.UnknownTokenWarn
		return true
	case "unknowntoken=err":
		config.UnknownTokens = rpn.UnknownTokenError
		return true
	default:
		suggestion := SpellcheckString(name, "unknowntoken=ignore", "unknowntoken=warn", "unknowntoken=err")
		if suggestion != "" {
			Error("unknown warning flag '%s', did you mean '%s'?", name, suggestion)
		} else {
			Error("unknown warning flag '%s'", name)
		}
		return false
	}
}

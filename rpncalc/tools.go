package main

import (
	"fmt"
	"strconv"

	"rpncalc-go/rpn"
)

// / The type of functions that are the entry points to tools (subcommands).
type ToolFunc func(*Options, *Config, []string) int

// / Subtools, accessible via "-t foo".
type Tool struct {
	/// Short name of the tool.
	Name string

	/// Description (shown in "-t list").
	Desc string

	/// Implementation of the tool.
	Func1 ToolFunc
}

func tools() []Tool {
	return []Tool{
		{"ops", "list the supported operators in dispatch order", ToolOps},
		{"history", "list recently evaluated expressions (needs -s FILE)", ToolHistory},
		{"version", "print the rpncalc version", ToolVersion},
	}
}

// ChooseTool returns the tool called toolName. For "list" it prints the
// tools and returns nil, true. An unknown name is reported and gives
// nil, false.
func ChooseTool(toolName string) (*Tool, bool) {
	kTools := tools()
	if toolName == "list" {
		fmt.Fprintf(stdout, "rpncalc subtools:\n")
		for _, tool := range kTools {
			fmt.Fprintf(stdout, "%10s  %s\n", tool.Name, tool.Desc)
		}
		return nil, true
	}

	for i := range kTools {
		if kTools[i].Name == toolName {
			return &kTools[i], true
		}
	}

	words := []string{}
	for _, tool := range kTools {
		words = append(words, tool.Name)
	}
	suggestion := SpellcheckStringV(toolName, words)
	if suggestion != "" {
		Error("unknown tool '%s', did you mean '%s'?", toolName, suggestion)
	} else {
		Error("unknown tool '%s'", toolName)
	}
	return nil, false
}

func ToolOps(options *Options, config *Config, args []string) int {
	fmt.Fprintf(stdout, "rpncalc operators:\n")
	for _, op := range rpn.Operators() {
		fmt.Fprintf(stdout, "%4s  %s\n", op.Symbol(), op.Name())
	}
	return int(ExitSuccess)
}

func ToolVersion(options *Options, config *Config, args []string) int {
	fmt.Fprintf(stdout, "%s\n", kRpncalcVersion)
	return int(ExitSuccess)
}

const kDefaultHistoryLimit = 20

// ToolHistory lists the most recently used expressions. An optional
// argument limits the number of rows.
func ToolHistory(options *Options, config *Config, args []string) int {
	if config.HistoryPath == "" {
		Error("no history database; use -s FILE or set RPNCALC_HISTORY")
		return int(ExitUsage)
	}
	limit := kDefaultHistoryLimit
	if len(args) > 0 {
		value, err := strconv.Atoi(args[0])
		if err != nil || value <= 0 {
			Error("invalid history limit '%s'", args[0])
			return int(ExitUsage)
		}
		limit = value
	}

	history, err := OpenHistoryLog(config.HistoryPath, config.HistoryTTL)
	if err != nil {
		Error("opening history '%s': %v", config.HistoryPath, err)
		return int(ExitFailure)
	}
	defer history.Close()

	rows, err := history.Recent(limit)
	if err != nil {
		Error("reading history: %v", err)
		return int(ExitFailure)
	}
	if len(rows) == 0 {
		Info("no history in '%s'", config.HistoryPath)
		return int(ExitSuccess)
	}
	for _, row := range rows {
		outcome := strconv.FormatFloat(row.Result, 'f', config.Precision, 64)
		if row.Error != "" {
			outcome = "error: " + row.Error
		}
		fmt.Fprintf(stdout, "%5d  %s  %-30s  %s\n", row.Hits,
			row.LastAccess.Format("2006-01-02 15:04:05"), row.Expression, outcome)
	}
	return int(ExitSuccess)
}

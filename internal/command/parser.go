package command

import (
	"regexp"
	"strings"
)

// Kind is the parsed command action.
type Kind string

const (
	KindNoop    Kind = "noop"
	KindLookup  Kind = "lookup"
	KindCompare Kind = "compare"
	KindSet     Kind = "set"
	KindClear   Kind = "clear"
	KindGraph   Kind = "graph"
	KindExplain Kind = "explain"
)

// Command is one parsed console input.
type Command struct {
	Kind     Kind
	Key      string
	OtherKey string // compare only
	Value    string // set only
}

var vsPattern = regexp.MustCompile(`(?i)^(\S+)\s+vs\s+@?(\S+)$`)

// Parse interprets raw console input. The leading @ is stripped, verbs are
// case-insensitive, and anything unrecognized falls back to an entity
// lookup. A set with no value also falls through to lookup.
func Parse(raw string) Command {
	input := strings.TrimSpace(raw)
	input = strings.TrimPrefix(input, "@")
	input = strings.TrimSpace(input)
	if input == "" {
		return Command{Kind: KindNoop}
	}

	if m := vsPattern.FindStringSubmatch(input); m != nil {
		return Command{
			Kind:     KindCompare,
			Key:      normalizeKey(m[1]),
			OtherKey: normalizeKey(m[2]),
		}
	}

	parts := strings.Fields(input)
	key := normalizeKey(parts[0])
	if len(parts) == 1 {
		return Command{Kind: KindLookup, Key: key}
	}

	verb := strings.ToLower(parts[1])
	value := strings.Join(parts[2:], " ")

	switch verb {
	case "set":
		if value == "" {
			return Command{Kind: KindLookup, Key: key}
		}
		return Command{Kind: KindSet, Key: key, Value: value}
	case "clear":
		return Command{Kind: KindClear, Key: key}
	case "graph", "chart":
		return Command{Kind: KindGraph, Key: key}
	case "explain":
		return Command{Kind: KindExplain, Key: key}
	default:
		return Command{Kind: KindLookup, Key: key}
	}
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "@"))
}

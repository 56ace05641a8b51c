// Package expr parses and validates GitHub Actions template expressions,
// the ${{ ... }} fragments embedded in workflow and action fields.
package expr

import (
	"regexp"
	"sort"
	"strings"
)

// ContextRef is a namespace-dotted-path reference inside an expression,
// e.g. github.event.pull_request.title.
type ContextRef struct {
	Name     string   `json:"name"`
	Path     []string `json:"path"`
	FullPath string   `json:"full_path"`
}

// FunctionCall is an identifier(args...) occurrence. Arguments are kept as
// raw sub-expression text; namespace references inside them still surface as
// ContextRefs on the enclosing Components.
type FunctionCall struct {
	Name string   `json:"name"`
	Args []string `json:"args"`
}

// Components is the structural decomposition of one expression. It is
// produced fresh per Parse call and never mutated afterwards.
type Components struct {
	Cleaned  string         `json:"cleaned"`
	Refs     []ContextRef   `json:"refs"`
	Calls    []FunctionCall `json:"calls"`
	Literals []string       `json:"literals"`
}

var (
	markerRegex = regexp.MustCompile(`(?s)\$\{\{(.*?)\}\}`)
	refRegex    = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_-]*(?:\.[A-Za-z0-9_*-]+)+`)
	callRegex   = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*\s*\(`)
	stringLit   = regexp.MustCompile(`'(?:[^']|'')*'`)
	numberLit   = regexp.MustCompile(`-?\d+(?:\.\d+)?`)
	keywordLit  = regexp.MustCompile(`\b(?:true|false|null)\b`)
)

// Parse decomposes a raw expression into its structural components. It is
// pure and total: malformed input produces empty component lists, never an
// error. Errors belong to validation, not parsing.
func Parse(raw string) Components {
	c := Components{Cleaned: clean(raw)}

	for _, loc := range refRegex.FindAllStringIndex(c.Cleaned, -1) {
		full := c.Cleaned[loc[0]:loc[1]]
		segments := strings.Split(full, ".")
		c.Refs = append(c.Refs, ContextRef{
			Name:     segments[0],
			Path:     segments[1:],
			FullPath: full,
		})
	}

	masked := []byte(c.Cleaned)
	for _, loc := range callRegex.FindAllStringIndex(c.Cleaned, -1) {
		// A dot before the identifier means it is a path segment, not a
		// function name; leave it to the reference scan above.
		if loc[0] > 0 && c.Cleaned[loc[0]-1] == '.' {
			continue
		}
		name := strings.TrimRight(strings.TrimSuffix(c.Cleaned[loc[0]:loc[1]], "("), " \t")
		end := matchParen(c.Cleaned, loc[1]-1)
		if end < 0 {
			// Unbalanced parens: permissive parse, skip the call.
			continue
		}
		c.Calls = append(c.Calls, FunctionCall{
			Name: name,
			Args: splitArgs(c.Cleaned[loc[1]:end]),
		})
		for i := loc[0]; i <= end; i++ {
			masked[i] = ' '
		}
	}

	c.Literals = scanLiterals(string(masked))
	return c
}

// clean strips ${{ }} markers and surrounding whitespace, keeping any text
// around and between them. Text without markers is treated as an already
// unwrapped expression.
func clean(raw string) string {
	return strings.TrimSpace(markerRegex.ReplaceAllStringFunc(raw, func(m string) string {
		inner := markerRegex.FindStringSubmatch(m)[1]
		return strings.TrimSpace(inner)
	}))
}

// matchParen returns the index of the parenthesis closing the one at open,
// or -1 when unbalanced.
func matchParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitArgs splits a raw argument list on top-level commas.
func splitArgs(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var args []string
	depth, start := 0, 0
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(raw[start:i]))
				start = i + 1
			}
		}
	}
	args = append(args, strings.TrimSpace(raw[start:]))
	return args
}

type span struct {
	start int
	text  string
}

// scanLiterals collects quoted strings, numbers and keyword literals that
// are not part of a context path or a function call. Function call spans
// arrive already masked; reference spans are excluded here. Earlier literal
// classes claim their spans so a digit inside a quoted string is not
// re-reported as a number.
func scanLiterals(masked string) []string {
	taken := make([]bool, len(masked))
	for _, loc := range refRegex.FindAllStringIndex(masked, -1) {
		for i := loc[0]; i < loc[1]; i++ {
			taken[i] = true
		}
	}

	var spans []span
	collect := func(re *regexp.Regexp) {
		for _, loc := range re.FindAllStringIndex(masked, -1) {
			free := true
			for i := loc[0]; i < loc[1]; i++ {
				if taken[i] {
					free = false
					break
				}
			}
			if !free {
				continue
			}
			for i := loc[0]; i < loc[1]; i++ {
				taken[i] = true
			}
			spans = append(spans, span{start: loc[0], text: masked[loc[0]:loc[1]]})
		}
	}
	collect(stringLit)
	collect(numberLit)
	collect(keywordLit)

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	var literals []string
	for _, s := range spans {
		literals = append(literals, s.text)
	}
	return literals
}

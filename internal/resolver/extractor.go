package resolver

import (
	"sort"
	"strings"

	"github.com/alxckn/packwerk-extensions/pkg/checker"
	"github.com/alxckn/packwerk-extensions/pkg/packs"
)

// ExtractReferences scans one source file's content for constant tokens,
// resolves them against the index and returns the resulting cross-package
// references. Intra-package references and unresolvable tokens are dropped.
// The file path must be root-relative.
func ExtractReferences(set *packs.Set, idx *Index, file string, content []byte) []checker.Reference {
	source := set.ForFile(file)

	seen := make(map[string]bool)
	var refs []checker.Reference
	for _, token := range scanConstants(content) {
		name := token
		if !strings.HasPrefix(name, "::") {
			name = "::" + name
		}
		if seen[name] {
			continue
		}
		seen[name] = true

		location, ok := idx.Resolve(name)
		if !ok {
			continue
		}
		destination := set.ForFile(location)
		if destination.Name == source.Name {
			continue
		}

		refs = append(refs, checker.Reference{
			Source:           source,
			Destination:      destination,
			ConstantName:     name,
			ConstantLocation: location,
			Path:             file,
		})
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].ConstantName < refs[j].ConstantName })
	return refs
}

// scanConstants pulls qualified constant tokens out of source text. It is a
// deliberately small scanner, not a parser: comments and string literals
// are skipped, and a token is an uppercase-led identifier path optionally
// rooted with "::".
func scanConstants(src []byte) []string {
	var tokens []string

	isWord := func(c byte) bool {
		return c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
	}
	isUpper := func(c byte) bool { return c >= 'A' && c <= 'Z' }

	i := 0
	var prev byte
	for i < len(src) {
		c := src[i]

		switch {
		case c == '#':
			for i < len(src) && src[i] != '\n' {
				i++
			}
			prev = '\n'
			continue

		case c == '"' || c == '\'':
			quote := c
			i++
			for i < len(src) && src[i] != quote {
				if src[i] == '\\' {
					i++
				}
				i++
			}
			i++ // closing quote
			prev = quote
			continue

		case isUpper(c) && !isWord(prev) && prev != ':':
			start := i
			i = consumeConstant(src, i, isWord, isUpper)
			tokens = append(tokens, string(src[start:i]))
			prev = src[i-1]
			continue

		case c == ':' && i+2 < len(src) && src[i+1] == ':' && isUpper(src[i+2]) && !isWord(prev) && prev != ':':
			start := i
			i = consumeConstant(src, i+2, isWord, isUpper)
			tokens = append(tokens, string(src[start:i]))
			prev = src[i-1]
			continue
		}

		prev = c
		i++
	}

	return tokens
}

// consumeConstant advances past an uppercase-led identifier and any
// ::-joined uppercase-led segments that follow it.
func consumeConstant(src []byte, i int, isWord func(byte) bool, isUpper func(byte) bool) int {
	for i < len(src) && isWord(src[i]) {
		i++
	}
	for i+2 < len(src) && src[i] == ':' && src[i+1] == ':' && isUpper(src[i+2]) {
		i += 2
		for i < len(src) && isWord(src[i]) {
			i++
		}
	}
	return i
}

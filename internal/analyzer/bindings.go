package analyzer

import (
	"regexp"
	"sort"
	"strings"
)

var (
	exportedFunctionPattern = regexp.MustCompile(`(?m)^[ \t]*export\s+(?:default\s+)?(?:async\s+)?function\s*\*?\s*([A-Za-z_$][\w$]*)`)
	// exportedVarPattern matches up to the initializer; isFunctionExpr decides
	// whether what follows is a function.
	exportedVarPattern = regexp.MustCompile(`(?m)^[ \t]*export\s+(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*(?::[^=\n]+)?=\s*(?:async\s+)?`)
	identPattern       = regexp.MustCompile(`^[A-Za-z_$][\w$]*`)
)

// BindingNames returns the names of exported top-level function-like bindings
// in src, in declaration order and without duplicates: function declarations
// and const/let/var bindings assigned a function or arrow expression.
func BindingNames(src string) []string {
	type decl struct {
		pos  int
		name string
	}
	var decls []decl
	for _, loc := range exportedFunctionPattern.FindAllStringSubmatchIndex(src, -1) {
		decls = append(decls, decl{pos: loc[0], name: src[loc[2]:loc[3]]})
	}
	for _, loc := range exportedVarPattern.FindAllStringSubmatchIndex(src, -1) {
		if isFunctionExpr(src, loc[1]) {
			decls = append(decls, decl{pos: loc[0], name: src[loc[2]:loc[3]]})
		}
	}

	sort.Slice(decls, func(i, j int) bool { return decls[i].pos < decls[j].pos })

	seen := make(map[string]bool)
	var names []string
	for _, d := range decls {
		if !seen[d.name] {
			seen[d.name] = true
			names = append(names, d.name)
		}
	}
	return names
}

// isFunctionExpr reports whether the expression at pos is a function
// expression or an arrow function, generic or not.
func isFunctionExpr(src string, pos int) bool {
	i := skipSpace(src, pos)
	rest := src[i:]
	if strings.HasPrefix(rest, "function") && !isIdentByte(byteAt(rest, len("function"))) {
		return true
	}
	if id := identPattern.FindString(rest); id != "" {
		return strings.HasPrefix(src[skipSpace(src, i+len(id)):], "=>")
	}

	if byteAt(src, i) == '<' {
		if i = matchClose(src, i); i < 0 {
			return false
		}
		i = skipSpace(src, i)
	}
	if byteAt(src, i) != '(' {
		return false
	}
	if i = matchClose(src, i); i < 0 {
		return false
	}
	// A parenthesized group followed by a return type or an arrow.
	i = skipSpace(src, i)
	return strings.HasPrefix(src[i:], "=>") || byteAt(src, i) == ':'
}

// ExtractBinding returns the source text of the exported binding called name,
// including a doc comment directly above it. Function declarations end at the
// brace that closes their body; variable bindings end at their statement
// terminator. It returns false when no such binding exists or its body never
// closes.
func ExtractBinding(src, name string) (string, bool) {
	quoted := regexp.QuoteMeta(name)
	fn := regexp.MustCompile(`(?m)^[ \t]*export\s+(?:default\s+)?(?:async\s+)?function\s*\*?\s*` + quoted + `\b`)
	variable := regexp.MustCompile(`(?m)^[ \t]*export\s+(?:const|let|var)\s+` + quoted + `\b`)

	start, end := -1, -1
	if locs := fn.FindAllStringIndex(src, -1); locs != nil {
		start = locs[0][0]
		// Overload signatures precede the declaration that has a body.
		for _, loc := range locs {
			if end = functionEnd(src, loc[1]); end >= 0 {
				break
			}
		}
	} else if loc := variable.FindStringIndex(src); loc != nil {
		start = loc[0]
		end = statementEnd(src, loc[1])
	} else {
		return "", false
	}
	if end < 0 {
		return "", false
	}

	start = leadingDocComment(src, start)
	return strings.TrimRight(src[start:end], " \t\r\n"), true
}

// leadingDocComment moves start back over a /** */ block that ends right
// above it.
func leadingDocComment(src string, start int) int {
	before := strings.TrimRight(src[:start], " \t\r\n")
	if !strings.HasSuffix(before, "*/") {
		return start
	}
	open := strings.LastIndex(before, "/**")
	if open < 0 {
		return start
	}
	// The comment has to start its own line.
	lineStart := strings.LastIndexByte(before[:open], '\n') + 1
	if strings.TrimSpace(before[lineStart:open]) != "" {
		return start
	}
	return lineStart
}

// skipLiteral returns the offset just past the string, comment or regular
// expression literal that starts at i, or i itself when nothing does. Line
// comments stop before their newline so callers still see it.
func skipLiteral(src string, i int) int {
	rest := src[i:]
	switch {
	case strings.HasPrefix(rest, "//"):
		if j := strings.IndexByte(rest, '\n'); j >= 0 {
			return i + j
		}
		return len(src)
	case strings.HasPrefix(rest, "/*"):
		if j := strings.Index(rest[2:], "*/"); j >= 0 {
			return i + 2 + j + 2
		}
		return len(src)
	case src[i] == '/':
		return skipRegexp(src, i)
	}

	q := src[i]
	if q != '\'' && q != '"' && q != '`' {
		return i
	}
	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case q:
			return j + 1
		case '\n':
			if q != '`' {
				return j
			}
		}
	}
	return len(src)
}

// regexpPrefixes are the characters after which a '/' opens a regular
// expression rather than dividing.
const regexpPrefixes = "(,=:[!&|?{};+-*%>~^"

// skipRegexp returns the offset past the /pattern/flags literal at i, or i
// when the slash is a division operator or the literal never closes on its
// line.
func skipRegexp(src string, i int) int {
	p := strings.TrimRight(src[:i], " \t\r\n")
	switch {
	case p == "":
	case strings.ContainsRune(regexpPrefixes, rune(p[len(p)-1])) && !strings.HasSuffix(p, "++") && !strings.HasSuffix(p, "--"):
	case endsWithWord(p, "return"), endsWithWord(p, "typeof"), endsWithWord(p, "case"):
	default:
		return i
	}

	inClass := false
	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '\n':
			return i
		case '/':
			if inClass {
				continue
			}
			j++
			for j < len(src) && isIdentByte(src[j]) {
				j++
			}
			return j
		}
	}
	return i
}

func endsWithWord(s, word string) bool {
	if !strings.HasSuffix(s, word) {
		return false
	}
	return len(s) == len(word) || !isIdentByte(s[len(s)-len(word)-1])
}

var closers = map[byte]byte{'(': ')', '[': ']', '{': '}', '<': '>'}

// matchClose returns the offset just past the bracket that closes the one at
// open, skipping literals. Angle brackets only nest inside an angle group,
// where "=>" does not close.
func matchClose(src string, open int) int {
	stack := []byte{closers[src[open]]}
	for i := open + 1; i < len(src); {
		if j := skipLiteral(src, i); j != i {
			i = j
			continue
		}
		c := src[i]
		top := stack[len(stack)-1]
		switch {
		case c == top && !(c == '>' && src[i-1] == '='):
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i + 1
			}
		case c == '(' || c == '[' || c == '{' || (c == '<' && top == '>'):
			stack = append(stack, closers[c])
		case c == ')' || c == ']' || c == '}':
			return -1
		}
		i++
	}
	return -1
}

// functionEnd returns the offset just past the body of the function whose
// name ends at pos: type parameters and the parameter list are skipped, then
// any return type annotation, and the body's braces are matched.
func functionEnd(src string, pos int) int {
	i := skipSpace(src, pos)
	if byteAt(src, i) == '<' {
		if i = matchClose(src, i); i < 0 {
			return -1
		}
		i = skipSpace(src, i)
	}
	if byteAt(src, i) != '(' {
		return -1
	}
	if i = matchClose(src, i); i < 0 {
		return -1
	}
	body := bodyStart(src, i)
	if body < 0 {
		return -1
	}
	return matchClose(src, body)
}

// bodyStart finds the '{' opening a function body after its parameter list
// ends at pos. Inside a return type, a '{' where a type is expected opens an
// object type; one after a complete type opens the body.
func bodyStart(src string, pos int) int {
	expectType := false
	for i := pos; i < len(src); {
		if j := skipLiteral(src, i); j != i {
			if c := src[i]; c == '\'' || c == '"' || c == '`' {
				expectType = false
			}
			i = j
			continue
		}
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			i++
		case c == '{' && !expectType:
			return i
		case c == '{' || c == '(' || c == '[' || c == '<':
			if i = matchClose(src, i); i < 0 {
				return -1
			}
			expectType = false
		case c == '=' && byteAt(src, i+1) == '>':
			i += 2
			expectType = true
		case strings.IndexByte(":|&,?", c) >= 0:
			i++
			expectType = true
		case c == ';' || c == '}' || c == ')' || c == '=':
			// A declaration without a body, such as an overload signature.
			return -1
		default:
			i++
			expectType = false
		}
	}
	return -1
}

// statementEnd returns the offset where the statement starting at pos ends:
// just past a top-level ';', or at a top-level newline that cannot continue
// the expression.
func statementEnd(src string, pos int) int {
	depth := 0
	for i := pos; i < len(src); {
		if j := skipLiteral(src, i); j != i {
			i = j
			continue
		}
		switch src[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ';':
			if depth == 0 {
				return i + 1
			}
		case '\n':
			if depth == 0 && statementComplete(src[pos:i], src[i+1:]) {
				return i
			}
		}
		i++
	}
	return len(src)
}

var (
	continuationSuffixes = []string{"=>", "=", "(", "[", "{", ",", "+", "-", "*", "&&", "||", "??", "?", ":", "."}
	continuationPrefixes = []string{".", "?", ":", "+", "-", "*", "&&", "||", "??", "=>", ")", "]", "}"}
)

func statementComplete(before, after string) bool {
	line := before
	if i := strings.LastIndexByte(before, '\n'); i >= 0 {
		line = before[i+1:]
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	for _, suffix := range continuationSuffixes {
		if strings.HasSuffix(line, suffix) {
			return false
		}
	}

	next := ""
	for _, l := range strings.Split(after, "\n") {
		if t := strings.TrimSpace(l); t != "" {
			next = t
			break
		}
	}
	for _, prefix := range continuationPrefixes {
		if strings.HasPrefix(next, prefix) {
			return false
		}
	}
	return true
}

func skipSpace(src string, i int) int {
	for i < len(src) && strings.IndexByte(" \t\r\n", src[i]) >= 0 {
		i++
	}
	return i
}

func byteAt(s string, i int) byte {
	if i < 0 || i >= len(s) {
		return 0
	}
	return s[i]
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

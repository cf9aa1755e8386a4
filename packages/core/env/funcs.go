package env

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"net/url"
	"regexp"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Func is a fixture function. Arguments arrive already resolved.
type Func func(args []string) any

// Funcs is a registry of fixture functions. Apart from uuid they are all
// deterministic so rendered fixtures stay stable.
type Funcs struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

func NewFuncs() *Funcs {
	f := &Funcs{funcs: make(map[string]Func)}
	f.funcs["base64"] = funcBase64
	f.funcs["basicAuth"] = funcBasicAuth
	f.funcs["md5"] = funcMD5
	f.funcs["md5Base64"] = funcMD5Base64
	f.funcs["sha256"] = funcSHA256
	f.funcs["urlEncode"] = funcURLEncode
	f.funcs["lower"] = funcLower
	f.funcs["upper"] = funcUpper
	f.funcs["uuid"] = funcUUID
	return f
}

func (f *Funcs) Register(name string, fn Func) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.funcs[name] = fn
}

var funcCallPattern = regexp.MustCompile(`^(\w+)\((.*)\)$`)

// Call evaluates "name(arg, ...)". Each argument is passed through resolve
// first, so arguments may hold placeholders.
func (f *Funcs) Call(expr string, resolve func(string) string) (any, bool) {
	matches := funcCallPattern.FindStringSubmatch(expr)
	if matches == nil {
		return nil, false
	}

	f.mu.RLock()
	fn, ok := f.funcs[matches[1]]
	f.mu.RUnlock()
	if !ok {
		return nil, false
	}

	var args []string
	if matches[2] != "" {
		args = parseArgs(matches[2])
	}
	for i, a := range args {
		if resolve != nil {
			args[i] = resolve("{{" + a + "}}")
			if strings.HasPrefix(args[i], "{{") {
				args[i] = a
			}
		}
	}

	return fn(args), true
}

// parseArgs splits a comma separated argument list. Quoted arguments keep
// their commas and lose their quotes.
func parseArgs(s string) []string {
	var args []string
	var current strings.Builder
	inQuote := false
	quoteChar := byte(0)

	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case !inQuote && (ch == '"' || ch == '\''):
			inQuote = true
			quoteChar = ch
		case inQuote && ch == quoteChar:
			inQuote = false
			quoteChar = 0
		case !inQuote && ch == ',':
			args = append(args, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}

	if current.Len() > 0 {
		args = append(args, strings.TrimSpace(current.String()))
	}

	return args
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func funcBase64(args []string) any {
	return base64.StdEncoding.EncodeToString([]byte(arg(args, 0)))
}

func funcBasicAuth(args []string) any {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(arg(args, 0)+":"+arg(args, 1)))
}

func funcMD5(args []string) any {
	hash := md5.Sum([]byte(arg(args, 0)))
	return hex.EncodeToString(hash[:])
}

func funcMD5Base64(args []string) any {
	hash := md5.Sum([]byte(arg(args, 0)))
	return base64.StdEncoding.EncodeToString(hash[:])
}

func funcSHA256(args []string) any {
	hash := sha256.Sum256([]byte(arg(args, 0)))
	return hex.EncodeToString(hash[:])
}

func funcURLEncode(args []string) any {
	return url.QueryEscape(arg(args, 0))
}

func funcLower(args []string) any {
	return strings.ToLower(arg(args, 0))
}

func funcUpper(args []string) any {
	return strings.ToUpper(arg(args, 0))
}

func funcUUID(_ []string) any {
	return uuid.NewString()
}

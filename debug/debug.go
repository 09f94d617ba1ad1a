package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Loader bool
	Expr   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Loader = boolEnv("JSL_DEBUG_LOADER")
	d.Expr = boolEnv("JSL_DEBUG_EXPR")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Loader() bool {
	return d.Loader
}
func Expr() bool {
	return d.Expr
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}

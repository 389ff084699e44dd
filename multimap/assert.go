package multimap

import "fmt"

// invariant panics with a formatted error if cond is false. Every
// invariant in this package is a contract violation — a defect in the
// caller or in the cache itself — never a recoverable runtime condition, so
// it panics rather than returning an error (spec §7, "contract
// violations").
func invariant(cond bool, format string, args ...any) {
	if !cond {
		panic(invariantErr(format, args...))
	}
}

func invariantErr(format string, args ...any) error {
	return fmt.Errorf("multimap: invariant violated: "+format, args...)
}

func invariantMsg(msg string) error {
	return fmt.Errorf("multimap: invariant violated: %s", msg)
}

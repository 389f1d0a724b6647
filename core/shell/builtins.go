package shell

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
)

// AllBuiltins holds a list of all registered shell builtins
var AllBuiltins = make(map[string]Builtin)

// Builtin is a command run inside the interpreter rather than in a child
// process.
type Builtin interface {
	Main(s *Shell, args []string) Status
}

type BuiltinFunc func(s *Shell, args []string) Status

func (f BuiltinFunc) Main(s *Shell, args []string) Status {
	return f(s, args)
}

var _ Builtin = (BuiltinFunc)(nil)

// BuiltinNames lists the registered builtins in sorted order.
func BuiltinNames() []string {
	var names []string
	for name := range AllBuiltins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Cd is the cd shell builtin
func Cd(s *Shell, args []string) Status {
	if len(args) < 2 {
		fmt.Fprintln(s.Stderr, "dmsh: Must provide path to `cd` into")
		return 1
	}
	if err := os.Chdir(args[1]); err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			err = pathErr.Err
		}
		fmt.Fprintf(s.Stderr, "dmsh: cd: %v\n", err)
		return 2
	}
	return 0
}

// Exit quits the shell, arguments are ignored.
func Exit(s *Shell, args []string) Status {
	s.Exit(0)
	panic("dmsh: exit returned")
}

func init() {
	AllBuiltins["cd"] = BuiltinFunc(Cd)
	AllBuiltins["exit"] = BuiltinFunc(Exit)
}

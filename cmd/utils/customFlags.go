package utils

import (
	"flag"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/rebaselabs/go-rebase/common"
)

// DirectoryString expands "~" and environment variables the moment the
// flag is parsed, so the rest of the program only ever sees resolved
// paths.
type DirectoryString struct {
	Value string
}

func (ds *DirectoryString) String() string {
	return ds.Value
}

func (ds *DirectoryString) Set(value string) error {
	ds.Value = expandPath(value)
	return nil
}

// DirectoryFlag is a cli.Flag whose value goes through expandPath,
// e.g. --datadir ~/rebasedata resolves against the home directory.
type DirectoryFlag struct {
	Name  string
	Value DirectoryString
	Usage string
}

func (df DirectoryFlag) String() string {
	if len(df.Value.Value) > 0 {
		return fmt.Sprintf("--%s \"%v\"\t%v", df.Name, df.Value.Value, df.Usage)
	}
	return fmt.Sprintf("--%s %v\t%v", df.Name, df.Value.Value, df.Usage)
}

// Apply is called by the cli library while it builds the flag set.
func (df DirectoryFlag) Apply(set *flag.FlagSet) {
	set.Var(&df.Value, df.Name, df.Usage)
}

func (df DirectoryFlag) GetName() string {
	return df.Name
}

func (df *DirectoryFlag) Set(value string) {
	df.Value.Value = value
}

func expandPath(p string) string {
	if strings.HasPrefix(p, "~/") || strings.HasPrefix(p, "~\\") {
		if home := common.HomeDir(); home != "" {
			p = home + p[1:]
		}
	}
	return path.Clean(os.ExpandEnv(p))
}

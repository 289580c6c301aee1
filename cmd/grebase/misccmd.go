package main

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/urfave/cli.v1"

	gorebase "github.com/rebaselabs/go-rebase"
	"github.com/rebaselabs/go-rebase/cmd/utils"
)

var (
	versionCommand = cli.Command{
		Action:    utils.MigrateFlags(printVersion),
		Name:      "version",
		Usage:     "Show version information",
		ArgsUsage: " ",
		Category:  "MISCELLANEOUS COMMANDS",
		Description: `
Print the release and build versions of this binary, one value per line.
`,
	}
	licenseCommand = cli.Command{
		Action:    utils.MigrateFlags(printLicense),
		Name:      "license",
		Usage:     "Show license text",
		ArgsUsage: " ",
		Category:  "MISCELLANEOUS COMMANDS",
	}
)

func printVersion(ctx *cli.Context) error {
	fmt.Println("GRebase")
	fmt.Println("Version:", gorebase.REBASE_VERSION)
	fmt.Println("Build:", gorebase.REBASE_BUILD_VERSION)
	fmt.Printf("Go: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	fmt.Printf("GOPATH=%s\n", os.Getenv("GOPATH"))
	fmt.Printf("GOROOT=%s\n", runtime.GOROOT())
	return nil
}

func printLicense(_ *cli.Context) error {
	fmt.Println(`GRebase is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

GRebase is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with grebase. If not, see <http://www.gnu.org/licenses/>.`)
	return nil
}

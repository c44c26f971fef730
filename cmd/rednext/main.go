package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/limansky/rednext/internal/config"
	"github.com/limansky/rednext/internal/registry"
)

var log = commonlog.GetLogger("rednext")

func main() {
	verbosity := pflag.CountP("verbose", "v", "increase log verbosity")
	dir := pflag.StringP("dir", "d", "", "database directory (overrides the config file)")
	pflag.Usage = usage
	pflag.Parse()

	// Set up logging
	commonlog.Configure(*verbosity, nil)

	args := pflag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fail(err)
	}
	if *dir != "" {
		cfg.DatabaseDir = *dir
	}

	reg := registry.New(cfg.DatabaseDir)
	if err := dispatch(reg, args[0], args[1:]); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "rednext:", err)
	os.Exit(1)
}

func usage() {
	fmt.Fprintf(os.Stderr, `Simple random tasks manager.

Usage:
  rednext [flags] <command> [arguments]

Commands:
  list                     list available databases
  new <db>                 create a database (prompts for the field schema)
  delete <db>              delete a database
  items <db>               list items (--done / --undone to filter)
  add <db>                 add an item (prompts for field values)
  get <db> <id>            show one item
  edit <db> <id>           edit an item's values
  rm <db> <id>             delete an item
  done <db> <id>           mark an item done
  undone <db> <id>         mark an item undone
  random <db>              pick a random undone item
  find <db> <text>         find items by text
  import <db> <csv-file>   import items from CSV
  export <db> <csv-file>   export items to CSV

Flags:
`)
	pflag.PrintDefaults()
}

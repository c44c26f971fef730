package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/limansky/rednext/internal/database"
	"github.com/limansky/rednext/internal/registry"
	"github.com/limansky/rednext/internal/schema"
	"github.com/limansky/rednext/internal/tabular"
)

func dispatch(reg *registry.Registry, cmd string, args []string) error {
	switch cmd {
	case "list":
		return cmdList(reg)
	case "new":
		return cmdNew(reg, args)
	case "delete":
		return cmdDelete(reg, args)
	case "items":
		return cmdItems(reg, args)
	case "add":
		return cmdAdd(reg, args)
	case "get":
		return cmdGet(reg, args)
	case "edit":
		return cmdEdit(reg, args)
	case "rm":
		return cmdRemove(reg, args)
	case "done":
		return cmdDone(reg, args)
	case "undone":
		return cmdUndone(reg, args)
	case "random":
		return cmdRandom(reg, args)
	case "find":
		return cmdFind(reg, args)
	case "import":
		return cmdImport(reg, args)
	case "export":
		return cmdExport(reg, args)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdList(reg *registry.Registry) error {
	names, err := reg.List()
	if err != nil {
		return err
	}
	for i, name := range names {
		fmt.Printf("%d. %s\n", i+1, name)
	}
	return nil
}

func cmdNew(reg *registry.Registry, args []string) error {
	name, err := oneArg("new", args)
	if err != nil {
		return err
	}

	s, err := promptSchema()
	if err != nil {
		return err
	}

	db, err := reg.Create(name, s)
	if err != nil {
		return err
	}
	defer db.Close()

	log.Infof("created database %q with %d field(s)", name, len(s.Fields))
	fmt.Printf("created %s\n", name)
	return nil
}

func cmdDelete(reg *registry.Registry, args []string) error {
	name, err := oneArg("delete", args)
	if err != nil {
		return err
	}
	if err := reg.Remove(name); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", name)
	return nil
}

func cmdItems(reg *registry.Registry, args []string) error {
	flags := pflag.NewFlagSet("items", pflag.ContinueOnError)
	doneOnly := flags.Bool("done", false, "only completed items")
	undoneOnly := flags.Bool("undone", false, "only incomplete items")
	if err := flags.Parse(args); err != nil {
		return err
	}

	name, err := oneArg("items", flags.Args())
	if err != nil {
		return err
	}

	db, err := reg.Open(name)
	if err != nil {
		return err
	}
	defer db.Close()

	var items []database.Item
	switch {
	case *doneOnly && *undoneOnly:
		return fmt.Errorf("--done and --undone are mutually exclusive")
	case *doneOnly:
		items, err = db.ListDone()
	case *undoneOnly:
		items, err = db.ListUndone()
	default:
		items, err = db.ListItems()
	}
	if err != nil {
		return err
	}

	for _, item := range items {
		printItem(db.Schema(), item)
	}
	return nil
}

func cmdAdd(reg *registry.Registry, args []string) error {
	name, err := oneArg("add", args)
	if err != nil {
		return err
	}

	db, err := reg.Open(name)
	if err != nil {
		return err
	}
	defer db.Close()

	values, err := promptValues(db.Schema(), nil)
	if err != nil {
		return err
	}

	item, err := db.AddItem(values)
	if err != nil {
		return err
	}

	fmt.Printf("added item %d\n", item.ID)
	return nil
}

func cmdGet(reg *registry.Registry, args []string) error {
	db, id, err := openWithID(reg, "get", args)
	if err != nil {
		return err
	}
	defer db.Close()

	item, err := db.GetItem(id)
	if err != nil {
		return err
	}

	printItem(db.Schema(), item)
	return nil
}

func cmdEdit(reg *registry.Registry, args []string) error {
	db, id, err := openWithID(reg, "edit", args)
	if err != nil {
		return err
	}
	defer db.Close()

	item, err := db.GetItem(id)
	if err != nil {
		return err
	}

	values, err := promptValues(db.Schema(), item.Values)
	if err != nil {
		return err
	}

	return db.UpdateItem(id, values)
}

func cmdRemove(reg *registry.Registry, args []string) error {
	db, id, err := openWithID(reg, "rm", args)
	if err != nil {
		return err
	}
	defer db.Close()

	return db.DeleteItem(id)
}

func cmdDone(reg *registry.Registry, args []string) error {
	db, id, err := openWithID(reg, "done", args)
	if err != nil {
		return err
	}
	defer db.Close()

	return db.MarkDone(id)
}

func cmdUndone(reg *registry.Registry, args []string) error {
	db, id, err := openWithID(reg, "undone", args)
	if err != nil {
		return err
	}
	defer db.Close()

	return db.MarkUndone(id)
}

func cmdRandom(reg *registry.Registry, args []string) error {
	name, err := oneArg("random", args)
	if err != nil {
		return err
	}

	db, err := reg.Open(name)
	if err != nil {
		return err
	}
	defer db.Close()

	item, err := db.PickRandom()
	if err != nil {
		return err
	}

	printItem(db.Schema(), item)
	return nil
}

func cmdFind(reg *registry.Registry, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: rednext find <db> <text>")
	}

	db, err := reg.Open(args[0])
	if err != nil {
		return err
	}
	defer db.Close()

	items, err := db.FindItems(args[1])
	if err != nil {
		return err
	}

	for _, item := range items {
		printItem(db.Schema(), item)
	}
	return nil
}

func cmdImport(reg *registry.Registry, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: rednext import <db> <csv-file>")
	}

	db, err := reg.Open(args[0])
	if err != nil {
		return err
	}
	defer db.Close()

	rows, err := readCSVRows(args[1])
	if err != nil {
		return err
	}

	mapper := tabular.NewMapper(db)
	report := tabular.Summarize(mapper.ImportRows(rows))
	log.Infof("import of %s: %s", args[1], report)
	fmt.Println(report)
	return nil
}

func cmdExport(reg *registry.Registry, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: rednext export <db> <csv-file>")
	}

	db, err := reg.Open(args[0])
	if err != nil {
		return err
	}
	defer db.Close()

	mapper := tabular.NewMapper(db)
	rows, err := mapper.ExportRows()
	if err != nil {
		return err
	}

	if err := writeCSVRows(args[1], db.Schema().Names(), rows); err != nil {
		return err
	}

	fmt.Printf("exported %d item(s) to %s\n", len(rows), args[1])
	return nil
}

func oneArg(cmd string, args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("usage: rednext %s <db>", cmd)
	}
	return args[0], nil
}

func openWithID(reg *registry.Registry, cmd string, args []string) (*database.DB, int64, error) {
	if len(args) != 2 {
		return nil, 0, fmt.Errorf("usage: rednext %s <db> <id>", cmd)
	}

	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid item id %q", args[1])
	}

	db, err := reg.Open(args[0])
	if err != nil {
		return nil, 0, err
	}

	return db, id, nil
}

func printItem(s schema.Schema, item database.Item) {
	parts := make([]string, 0, len(s.Fields)+2)
	parts = append(parts, fmt.Sprintf("%d.", item.ID))
	for _, f := range s.Fields {
		parts = append(parts, fmt.Sprintf("%s=%s", f.Name, item.Values[f.Name].Format()))
	}
	if item.Done {
		done := "(done"
		if item.DoneAt != nil {
			done += " " + item.DoneAt.Format("2006-01-02 15:04")
		}
		parts = append(parts, done+")")
	}
	fmt.Println(strings.Join(parts, " "))
}

// agencyctl is a small terminal companion to the desktop app, it browses
// tables, filters, and exports through the client façade.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"

	"agency_platform/agency/registry"
	"agency_platform/client"
)

const usage = `usage: agencyctl [-url <base url>] <command> [args]

commands:
  tables                          list the available tables
  list <table>                    print every row of a table
  get <table> <id>                print a single row
  delete <table> <id>             delete a row
  filter <table> <column> <text>  case-insensitive substring filter
  query <sql>                     execute a raw sql statement
  export <filename>               export the last listed result to csv
  backups                         list server-side backup files
`

func columnsFor(table string, records []client.Record) []string {
	if cfg, ok := registry.Tables()[table]; ok {
		return cfg.Columns
	}
	if len(records) == 0 {
		return nil
	}
	columns := make([]string, 0, len(records[0]))
	for col := range records[0] {
		columns = append(columns, col)
	}
	sort.Strings(columns)
	return columns
}

func printRecords(table string, records []client.Record) {
	columns := columnsFor(table, records)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, col := range columns {
		fmt.Fprintf(w, "%v\t", col)
	}
	fmt.Fprintln(w)
	for _, record := range records {
		for _, col := range columns {
			value := record[col]
			if value == nil {
				value = ""
			}
			fmt.Fprintf(w, "%v\t", value)
		}
		fmt.Fprintln(w)
	}
	w.Flush()
	fmt.Printf("%d row(s)\n", len(records))
}

func parseId(arg string) int64 {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		log.Fatalf("invalid id '%v': %v", arg, err)
	}
	return id
}

func main() {
	baseUrl := flag.String("url", "http://localhost:8000", "Base url of the agency platform server")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Print(usage)
		os.Exit(2)
	}

	c := client.New(*baseUrl)

	fail := func(err error) {
		if err != nil {
			log.Fatal(err)
		}
	}

	switch args[0] {
	case "tables":
		names := make([]string, 0)
		for name := range registry.Tables() {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Println(name)
		}
	case "list":
		if len(args) != 2 {
			log.Fatal("usage: agencyctl list <table>")
		}
		records, err := c.List(args[1])
		fail(err)
		printRecords(args[1], records)
	case "get":
		if len(args) != 3 {
			log.Fatal("usage: agencyctl get <table> <id>")
		}
		record, err := c.Get(args[1], parseId(args[2]))
		fail(err)
		printRecords(args[1], []client.Record{record})
	case "delete":
		if len(args) != 3 {
			log.Fatal("usage: agencyctl delete <table> <id>")
		}
		fail(c.Delete(args[1], parseId(args[2])))
		fmt.Println("deleted")
	case "filter":
		if len(args) != 4 {
			log.Fatal("usage: agencyctl filter <table> <column> <text>")
		}
		records, err := c.Filter(args[1], args[2], args[3])
		fail(err)
		printRecords(args[1], records)
	case "query":
		if len(args) != 2 {
			log.Fatal("usage: agencyctl query <sql>")
		}
		result, err := c.Query(args[1])
		fail(err)
		if result.Rows != nil {
			printRecords("", result.Rows)
		} else {
			fmt.Printf("%d row(s) affected\n", result.Rowcount)
		}
	case "export":
		if len(args) != 2 {
			log.Fatal("usage: agencyctl export <filename>")
		}
		path, err := c.ExportCsv(args[1])
		fail(err)
		fmt.Printf("saved to %v\n", path)
	case "backups":
		backups, err := c.ListBackups()
		fail(err)
		for _, name := range backups {
			fmt.Println(name)
		}
	default:
		fmt.Print(usage)
		os.Exit(2)
	}
}

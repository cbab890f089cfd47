package dbcli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"treedb/database"
	"treedb/server"
)

// RootCmd is the root command for the CLI.
var RootCmd = &cobra.Command{
	Use:   "treedb",
	Short: "In-memory ordered key/value store",
	Long:  "treedb keeps collections of key/value pairs in B+ tree indexes, served over a REPL or an HTTP API.",
}

// Execute runs the root command.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing CLI: %v\n", err)
		os.Exit(1)
	}
}

var (
	replOrder int
	servePort int
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive session against a fresh in-memory collection",
	RunE: func(cmd *cobra.Command, args []string) error {
		db := database.NewDatabase("")
		defer db.Close()
		coll, err := db.CreateCollection("default", replOrder)
		if err != nil {
			return fmt.Errorf("failed to create collection: %v", err)
		}
		repl := NewRepl(coll, cmd.OutOrStdout())
		repl.Run(bufio.NewScanner(cmd.InOrStdin()))
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Run: func(cmd *cobra.Command, args []string) {
		server.Server(servePort)
	},
}

func init() {
	replCmd.Flags().IntVar(&replOrder, "order", 8, "branching factor of the collection index")
	serveCmd.Flags().IntVar(&servePort, "port", 3000, "port to listen on")
	RootCmd.AddCommand(replCmd, serveCmd, benchCmd)
}

// Repl processes SET/GET/DEL/SCAN style commands against one collection.
type Repl struct {
	coll *database.Collection
	out  io.Writer

	ok   *color.Color
	fail *color.Color
}

// NewRepl creates a REPL bound to coll, writing responses to out.
func NewRepl(coll *database.Collection, out io.Writer) *Repl {
	return &Repl{
		coll: coll,
		out:  out,
		ok:   color.New(color.FgGreen),
		fail: color.New(color.FgRed),
	}
}

// Run reads commands from the scanner until EXIT or EOF.
func (r *Repl) Run(scanner *bufio.Scanner) {
	r.printHelp()
	r.printPrompt()
	for scanner.Scan() {
		if !r.Process(scanner.Text()) {
			return
		}
		r.printPrompt()
	}
}

func (r *Repl) printHelp() {
	fmt.Fprintln(r.out, `
treedb REPL

Available Commands:
  SET <key> <value>   Store a key/value pair
  GET <key>           Look up the value for a key
  DEL <key>           Remove a key
  SCAN <from> <to>    List entries with from <= key <= to
  STATS               Show index size and height
  EXIT                End the session`)
}

func (r *Repl) printPrompt() {
	fmt.Fprint(r.out, "> ")
}

// Process executes one REPL line, returning false when the session should
// end.
func (r *Repl) Process(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}
	switch strings.ToLower(fields[0]) {
	case "set":
		r.processSet(fields[1:])
	case "get":
		r.processGet(fields[1:])
	case "del":
		r.processDel(fields[1:])
	case "scan":
		r.processScan(fields[1:])
	case "stats":
		r.processStats()
	case "help":
		r.printHelp()
	case "exit":
		return false
	default:
		r.fail.Fprintf(r.out, "Unknown command %q\n", fields[0])
	}
	return true
}

func (r *Repl) processSet(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(r.out, "Usage: SET <key> <value>")
		return
	}
	if _, replaced := r.coll.Set(args[0], args[1]); replaced {
		r.ok.Fprintf(r.out, "Replaced %s\n", args[0])
	} else {
		r.ok.Fprintf(r.out, "Stored %s\n", args[0])
	}
}

func (r *Repl) processGet(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(r.out, "Usage: GET <key>")
		return
	}
	value, found := r.coll.Get(args[0])
	if !found {
		r.fail.Fprintln(r.out, "Key not found.")
		return
	}
	fmt.Fprintln(r.out, value)
}

func (r *Repl) processDel(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(r.out, "Usage: DEL <key>")
		return
	}
	if !r.coll.Delete(args[0]) {
		r.fail.Fprintln(r.out, "Key not found.")
		return
	}
	r.ok.Fprintf(r.out, "Deleted %s\n", args[0])
}

func (r *Repl) processScan(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(r.out, "Usage: SCAN <from> <to>")
		return
	}
	entries := r.coll.Scan(args[0], args[1])
	for _, e := range entries {
		fmt.Fprintf(r.out, "%s = %s\n", e.Key, e.Value)
	}
	fmt.Fprintf(r.out, "%d entries\n", len(entries))
}

func (r *Repl) processStats() {
	s := r.coll.Stats()
	fmt.Fprintf(r.out, "collection=%s order=%d keys=%d height=%d\n", s.Name, s.Order, s.Keys, s.Height)
}

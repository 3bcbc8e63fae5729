package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tferdous17/rbkv/store"
	"github.com/tferdous17/rbkv/utils"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive shell over a single in-memory tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		memtable := store.NewMemtableWithCapacity(currentConfig.ExpectedKeys, currentConfig.FalsePositiveRate)
		fmt.Print(intro)
		fmt.Println(commands)
		return runREPL(os.Stdin, os.Stdout, memtable)
	},
}

const intro = "\n" +
	"▗▄▄▖ ▗▄▄▖ ▗▖ ▗▖▗▖  ▗▖\n" +
	"▐▌ ▐▌▐▌ ▐▌▐▌▗▞▘▐▌  ▐▌\n" +
	"▐▛▀▚▖▐▛▀▚▖▐▛▚▖ ▐▌  ▐▌\n" +
	"▐▌ ▐▌▐▙▄▞▘▐▌ ▐▌ ▝▚▞▘ \n"

const commands = "Commands:\n" +
	"\t- set     <key> <value>   : insert or overwrite a key-value pair\n" +
	"\t- get     <key>           : get a key value\n" +
	"\t- del     <key>           : delete a key\n" +
	"\t- min                     : smallest key\n" +
	"\t- max                     : largest key\n" +
	"\t- next    <key>           : key after <key>\n" +
	"\t- prev    <key>           : key before <key>\n" +
	"\t- range   <from> <to>     : keys between <from> and <to>, inclusive\n" +
	"\t- dump                    : draw the tree\n" +
	"\t- verify                  : check the red-black invariants\n" +
	"\t- fill    <n>             : insert n random entries\n" +
	"\t- ctrl+c                  : exit\n" +
	"\t- help                    : show this message"

// runREPL reads commands from in until EOF.
func runREPL(in io.Reader, out io.Writer, memtable *store.Memtable) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintln(out, "\nEnter command: ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		args := strings.Fields(scanner.Text())
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "set":
			if !wantArgs(out, args, 3) {
				continue
			}
			report(out, "set: success", memtable.Put(args[1], args[2]))
		case "get":
			if !wantArgs(out, args, 2) {
				continue
			}
			record, err := memtable.Get(args[1])
			printValue(out, record, err)
		case "del":
			if !wantArgs(out, args, 2) {
				continue
			}
			_, err := memtable.Delete(args[1])
			report(out, "deletion: success", err)
		case "min":
			printRecord(out)(memtable.Min())
		case "max":
			printRecord(out)(memtable.Max())
		case "next":
			if !wantArgs(out, args, 2) {
				continue
			}
			printRecord(out)(memtable.Next(args[1]))
		case "prev":
			if !wantArgs(out, args, 2) {
				continue
			}
			printRecord(out)(memtable.Prev(args[1]))
		case "range":
			if !wantArgs(out, args, 3) {
				continue
			}
			records, err := memtable.Range(args[1], args[2])
			if err != nil {
				fmt.Fprintln(out, "err:", err)
				continue
			}
			for _, record := range records {
				fmt.Fprintf(out, "%s = %s\n", record.Key, record.Value)
			}
		case "dump":
			fmt.Fprint(out, memtable.Dump())
		case "verify":
			report(out, "verify: ok", memtable.Verify())
		case "fill":
			if !wantArgs(out, args, 2) {
				continue
			}
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 0 {
				fmt.Fprintln(out, "err: fill needs a non-negative count")
				continue
			}
			for i := 0; i < n; i++ {
				key, value := utils.GenerateRandomEntry(10)
				if err := memtable.Put(key, value); err != nil {
					fmt.Fprintln(out, "err:", err)
					break
				}
			}
			fmt.Fprintf(out, "fill: %d keys total\n", memtable.Len())
		case "help":
			fmt.Fprintln(out, "\n"+commands)
		default:
			fmt.Fprintf(out, "unknown command %q, try help\n", args[0])
		}
	}
}

func wantArgs(out io.Writer, args []string, n int) bool {
	if len(args) != n {
		fmt.Fprintln(out, "Insufficient num of args")
		return false
	}
	return true
}

func report(out io.Writer, success string, err error) {
	if err != nil {
		fmt.Fprintln(out, "err:", err)
		return
	}
	fmt.Fprintln(out, success)
}

func printValue(out io.Writer, record store.Record, err error) {
	if err != nil {
		fmt.Fprintln(out, "err:", err)
		return
	}
	fmt.Fprintln(out, record.Value)
}

func printRecord(out io.Writer) func(store.Record, error) {
	return func(record store.Record, err error) {
		if err != nil {
			fmt.Fprintln(out, "err:", err)
			return
		}
		fmt.Fprintf(out, "%s = %s\n", record.Key, record.Value)
	}
}

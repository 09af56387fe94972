package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/jeanpaul/studentdb/internal/commands"
	"github.com/jeanpaul/studentdb/internal/config"
	"github.com/jeanpaul/studentdb/internal/console"
	"github.com/jeanpaul/studentdb/internal/logging"
	"github.com/jeanpaul/studentdb/internal/store"
	"github.com/jeanpaul/studentdb/internal/tui"
	"github.com/jeanpaul/studentdb/pkg/version"
)

func main() {
	dataFlag := flag.String("data", "", "Data file (overrides storage.path)")
	versionFlag := flag.Bool("version", false, "Print version")
	helpFlag := flag.Bool("help", false, "Show help")
	flag.BoolVar(helpFlag, "h", false, "Show help")

	flag.Usage = showHelp
	flag.Parse()

	if *helpFlag {
		showHelp()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("studentdb %s (%s)\n", version.Version, version.Commit)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) > 0 {
		switch args[0] {
		case "help":
			showHelp()
			return
		case "config":
			if len(args) < 2 || args[1] != "init" {
				fatal("usage: studentdb config init")
			}
			cmdConfigInit()
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fatal("config error: %s", err)
	}
	if *dataFlag != "" {
		cfg.Storage.Path = *dataFlag
	}
	if err := tui.ApplyTheme(cfg.Theme); err != nil {
		fatal("config error: %s", err)
	}

	log, logCloser, err := logging.Open(cfg.Log)
	if err != nil {
		fatal("cannot open log file: %s", err)
	}
	defer logCloser.Close()

	if len(args) > 0 && args[0] == "doctor" {
		if !cmdDoctor(cfg, log) {
			logCloser.Close()
			os.Exit(1)
		}
		return
	}

	st, closeStore, err := openStore(cfg, log)
	if err != nil {
		fatal("%s", err)
	}
	defer closeStore()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(args) == 0 {
		err = cmdMenu(ctx, st, log)
	} else {
		switch args[0] {
		case "browse":
			err = cmdBrowse(st)
		case "list":
			err = cmdList(st)
		case "export":
			if len(args) != 2 {
				fatal("usage: studentdb export <file.xlsx|file.json|file.data>")
			}
			err = cmdExport(st, args[1])
		case "import":
			if len(args) < 2 {
				fatal("usage: studentdb import <pattern>...")
			}
			err = cmdImport(st, args[1:])
		case "report":
			err = cmdReport(st)
		default:
			fatal("unknown command: %s (see studentdb help)", args[0])
		}
	}

	if err != nil {
		closeStore()
		fatal("%s", err)
	}
}

// openStore builds the configured backend and loads it. The returned func
// releases the backend and is safe to call more than once.
func openStore(cfg *config.Config, log zerolog.Logger) (*store.Store, func(), error) {
	mode, err := store.ParseSyncMode(cfg.Storage.Sync)
	if err != nil {
		return nil, nil, err
	}

	var (
		backend store.Backend
		path    string
	)
	closer := func() {}
	switch cfg.Storage.Backend {
	case "bolt":
		b, err := store.OpenBoltBackend(cfg.Storage.Path)
		if err != nil {
			return nil, nil, err
		}
		backend, path = b, b.Path()
		closed := false
		closer = func() {
			if !closed {
				closed = true
				b.Close()
			}
		}
	default:
		fb := store.NewFileBackend(cfg.Storage.Path,
			store.WithStrict(cfg.Storage.Strict),
			store.WithFileLogger(log),
		)
		backend, path = fb, fb.Path()
	}

	st, err := store.Open(backend, store.WithSyncMode(mode), store.WithLogger(log))
	if err != nil {
		closer()
		return nil, nil, err
	}
	log.Debug().
		Str("path", path).
		Str("backend", cfg.Storage.Backend).
		Int("records", st.Len()).
		Int64("last_id", st.LastID()).
		Msg("store opened")
	return st, closer, nil
}

func cmdMenu(ctx context.Context, st *store.Store, log zerolog.Logger) error {
	reg := commands.NewRegistry()
	commands.RegisterDefaults(reg)

	in := commands.NewPrompter(os.Stdin, os.Stdout)
	defer in.Close()

	env := &commands.Env{
		Store: st,
		In:    in,
		Out:   os.Stdout,
		Log:   log,
	}
	c, err := console.New(reg, env, (&commands.ExitCmd{}).Key())
	if err != nil {
		return err
	}
	return c.Run(ctx)
}

func fatal(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, tui.ErrorStyle.Render("error: "+msg))
	os.Exit(1)
}

func showHelp() {
	help := `
` + tui.BannerStyle.Render("StudentDB") + ` - student records in your terminal

` + tui.LabelStyle.Render("USAGE:") + `
  studentdb [flags]               Start the interactive menu
  studentdb [flags] <command>     Run a command

` + tui.LabelStyle.Render("COMMANDS:") + `
  browse                          Browse records (d delete, / filter, q quit)
  list                            Print all records
  export <file>                   Write records to .xlsx, .json or .data
  import <pattern>...             Add records from .xlsx, .json or .data files
  report                          Show the grade distribution
  doctor                          Check the configuration and data file
  config init                     Write the default configuration file
  help                            Show this help

` + tui.LabelStyle.Render("FLAGS:") + `
  --data <path>                   Use a different data file
  --version                       Show version
  --help, -h                      Show this help

` + tui.LabelStyle.Render("EXAMPLES:") + `
  studentdb                       Manage StudentDb.data in the current directory
  studentdb --data class.data     Manage another file
  studentdb export grades.xlsx    Export to a spreadsheet
  studentdb import 'term*/**/*.xlsx'
`
	fmt.Println(help)
}

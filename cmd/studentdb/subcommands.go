package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jeanpaul/studentdb/internal/config"
	"github.com/jeanpaul/studentdb/internal/health"
	"github.com/jeanpaul/studentdb/internal/report"
	"github.com/jeanpaul/studentdb/internal/store"
	"github.com/jeanpaul/studentdb/internal/transfer"
	"github.com/jeanpaul/studentdb/internal/tui"
)

const reportWidth = 80

func cmdList(st *store.Store) error {
	records := st.List()
	if len(records) == 0 {
		fmt.Println("No students found.")
		return nil
	}
	for _, r := range records {
		fmt.Print(r.Display())
		fmt.Println(tui.Separator(30))
	}
	return nil
}

func cmdBrowse(st *store.Store) error {
	if err := tui.RunBrowser(st); err != nil {
		return err
	}
	return st.Flush()
}

func cmdExport(st *store.Store, path string) error {
	records := st.List()
	if err := transfer.Export(path, records); err != nil {
		return err
	}
	fmt.Println(tui.SuccessStyle.Render(fmt.Sprintf("✓ Exported %d record(s) to %s", len(records), path)))
	return nil
}

func cmdImport(st *store.Store, patterns []string) error {
	res, err := transfer.Import(st, patterns)
	for _, s := range res.Skipped {
		fmt.Fprintln(os.Stderr, tui.WarningStyle.Render(fmt.Sprintf("- skipped %s: %s", s.Source, s.Err)))
	}
	if err != nil {
		return err
	}
	if err := st.Flush(); err != nil {
		return err
	}
	fmt.Println(tui.SuccessStyle.Render(fmt.Sprintf("✓ Imported %d record(s) from %d file(s)", len(res.Imported), len(res.Files))))
	if len(res.Imported) > 0 {
		first, last := res.Imported[0].ID, res.Imported[len(res.Imported)-1].ID
		fmt.Println(tui.HelpStyle.Render(fmt.Sprintf("  ids %d-%d", first, last)))
	}
	return nil
}

func cmdReport(st *store.Store) error {
	md := report.Build(st.List()).Markdown()
	out, err := report.Render(md, reportWidth, isTerminal(os.Stdout))
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

func cmdConfigInit() {
	path := config.Path()
	if err := config.Init(path); err != nil {
		fatal("%s", err)
	}
	fmt.Println(tui.SuccessStyle.Render("✓ Wrote " + path))
}

// cmdDoctor prints the state of the configuration and the data store and
// reports whether both are usable.
func cmdDoctor(cfg *config.Config, log zerolog.Logger) bool {
	fmt.Print(tui.BannerStyle.Render(tui.Banner))
	fmt.Println(tui.BannerStyle.Render("  Storage Health Check"))
	fmt.Println()

	fmt.Printf("  %s %s ... ", tui.KeyStyle.Render("●"), tui.LabelStyle.Render("config"))
	configPath := config.Path()
	if _, err := os.Stat("config.yaml"); err == nil {
		fmt.Println(tui.SuccessStyle.Render("✓ ./config.yaml"))
	} else if _, err := os.Stat(configPath); err == nil {
		fmt.Println(tui.SuccessStyle.Render("✓ " + configPath))
	} else {
		fmt.Println(tui.HelpStyle.Render("- Using defaults (run studentdb config init to customize)"))
	}

	var status health.Status
	if cfg.Storage.Backend == "bolt" {
		status = health.CheckBolt(cfg.Storage.Path)
	} else {
		status = health.CheckDataFile(cfg.Storage.Path)
	}
	log.Debug().Str("path", status.Path).Dur("latency", status.Latency).Msg("storage checked")

	fmt.Printf("  %s %s ... ", tui.KeyStyle.Render("●"), tui.LabelStyle.Render(cfg.Storage.Backend))
	switch {
	case status.Error != "":
		fmt.Println(tui.ErrorStyle.Render("✗ " + status.Error))
	case !status.Exists:
		fmt.Println(tui.HelpStyle.Render("- " + status.Path + " does not exist yet (created on first save)"))
	default:
		fmt.Printf("%s %s\n",
			tui.SuccessStyle.Render(fmt.Sprintf("✓ %s (%d records)", status.Path, status.Records)),
			tui.HelpStyle.Render(status.Latency.Round(time.Microsecond).String()),
		)
	}

	fmt.Printf("  %s %s ... ", tui.KeyStyle.Render("●"), tui.LabelStyle.Render("writable"))
	if status.Writable {
		fmt.Println(tui.SuccessStyle.Render("✓ OK"))
	} else {
		fmt.Println(tui.ErrorStyle.Render("✗ cannot create files next to " + status.Path))
	}

	if status.DecodeErr != nil {
		fmt.Printf("  %s %s ... %s\n", tui.KeyStyle.Render("●"), tui.LabelStyle.Render("decode"),
			tui.ErrorStyle.Render("✗ "+status.DecodeErr.Error()))
		if cfg.Storage.Strict {
			fmt.Println(tui.HelpStyle.Render("    strict mode refuses to open this file"))
		} else {
			fmt.Println(tui.HelpStyle.Render("    records after this point are dropped on the next save"))
		}
	}

	for _, w := range status.Warnings {
		fmt.Println(tui.WarningStyle.Render("  ! " + w))
	}

	if !status.Stable {
		fmt.Println(tui.WarningStyle.Render("  ! the file is not in canonical form; saving will rewrite it:"))
		fmt.Println(tui.BoxStyle.Render(strings.TrimRight(status.Diff, "\n")))
	}

	fmt.Println()
	healthy := status.Healthy()
	if healthy {
		fmt.Println(tui.SuccessStyle.Render("  Storage healthy!"))
	} else {
		fmt.Println(tui.ErrorStyle.Render("  Storage has problems."))
	}
	return healthy
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

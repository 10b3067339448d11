package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tugas/internal/deadline"
	"tugas/internal/store"
	"tugas/internal/task"
)

const (
	msgNoTasks  = "Tidak ada tugas. Tambahkan tugas baru!"
	msgAllClear = "🎉 Semua aman! Tidak ada tugas yang mendekati tenggat."
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Tampilkan semua tugas",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			tasks, err := app.Store.LoadOrEmpty()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(tasks) == 0 {
				fmt.Fprintln(out, msgNoTasks)
				return nil
			}

			all := app.Engine.AnnotateAll(tasks, app.Now())
			fmt.Fprintln(out, renderTable(all))
			fmt.Fprintln(out, renderSummary(len(all), deadline.Summarize(all)))
			return nil
		},
	}
}

func newAddCmd() *cobra.Command {
	var t task.Task

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Tambah tugas baru",
		Example: `  tugas add --name "Laporan praktikum" --subject Kimia --deadline 12-01-2024
  tugas add -n Esai -s "Bahasa Indonesia" -d 20-01-2024`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}

			added, err := app.Store.Add(t)
			if errors.Is(err, deadline.ErrInvalidDeadline) {
				return fmt.Errorf("format tanggal salah, gunakan DD-MM-YYYY: %w", err)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✅ Tugas '%s' berhasil ditambahkan!\n", added.Name)
			ct := app.Engine.Evaluate(added, app.Now())
			fmt.Fprintf(cmd.OutOrStdout(), "   %s\n", renderStatus(ct))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&t.Name, "name", "n", "", "nama tugas")
	f.StringVarP(&t.Subject, "subject", "s", "", "mata pelajaran")
	f.StringVarP(&t.Deadline, "deadline", "d", "", "deadline (DD-MM-YYYY)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("subject")
	_ = cmd.MarkFlagRequired("deadline")
	return cmd
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <no>",
		Aliases: []string{"rm"},
		Short:   "Hapus tugas berdasarkan nomor di daftar",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}

			no, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("%w: %q", store.ErrIndexOutOfRange, args[0])
			}

			removed, err := app.Store.Remove(no - 1)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "🗑️ Tugas '%s' berhasil dihapus!\n", removed.Name)
			return nil
		},
	}
}

// viewFunc is one of the engine's filtered views.
type viewFunc func(e *deadline.Engine, tasks []task.Task, now time.Time) []deadline.ClassifiedTask

func newViewCmd(use, short string, view viewFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			tasks, err := app.Store.LoadOrEmpty()
			if err != nil {
				return err
			}

			rows := view(app.Engine, tasks, app.Now())
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), msgAllClear)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(rows))
			return nil
		},
	}
}

func newUrgentCmd() *cobra.Command {
	return newViewCmd("urgent", "Tugas yang jatuh tempo hari ini sampai batas peringatan",
		(*deadline.Engine).UrgentTasks)
}

func newPressingCmd() *cobra.Command {
	return newViewCmd("pressing", "Tugas yang terlewat atau mendekati tenggat",
		(*deadline.Engine).PressingTasks)
}

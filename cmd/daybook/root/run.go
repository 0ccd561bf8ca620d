package root

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/daybook/internal/persist"
	"github.com/sandeepkv93/daybook/internal/store"
	"github.com/sandeepkv93/daybook/internal/update"
)

func runUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	kv, closeKV, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer closeKV()
	logger, closeLog, err := openFileLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	state, prefs := persist.Load(cmd.Context(), kv, logger)
	logger.Info("state loaded",
		"backend", cfg.Storage.Backend,
		"path", cfg.Storage.Path,
		"tasks", len(state.Tasks),
		"notes", len(state.Notes),
		"habits", len(state.Habits),
	)

	st, err := store.New(state, store.Options{Logger: logger, CacheSize: cfg.Cache.Size})
	if err != nil {
		return err
	}
	writer := persist.NewWriter(kv, state, prefs, persist.WriterOptions{
		Debounce: cfg.Persist.Debounce(),
		Logger:   logger,
	})
	writer.Start()
	defer func() {
		writer.Stop()
		logger.Info("writer stopped", "written", writer.Written(), "failed", writer.Failed(), "coalesced", writer.Coalesced())
	}()
	unsubscribe := st.Subscribe(writer.Observe)
	defer unsubscribe()

	model := update.NewModel(st, update.Options{
		Preferences:   prefs,
		Sink:          writer,
		ShowCompleted: cfg.UI.ShowCompleted,
		RecentDays:    cfg.UI.RecentDays,
	})
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

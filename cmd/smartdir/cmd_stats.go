package main

import (
	"context"
	"fmt"
	"time"

	"smartdir/cmd/smartdir/ui"
	"smartdir/internal/api"
	"smartdir/internal/directory"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count the records of every collection",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

// directoryStats summarizes the four collections.
type directoryStats struct {
	Partners             int
	ActivePartners       int
	Recommendations      int
	RecommendationStatus map[directory.RecommendationStatus]int
	Conversations        int
	ActiveConversations  int
	Logs                 int
	LogLevels            map[directory.Level]int
}

// collectStats fetches all four lists concurrently. The first failure
// cancels the rest.
func collectStats(ctx context.Context, client *api.Client) (directoryStats, error) {
	var (
		partners        []directory.Partner
		recommendations []directory.Recommendation
		conversations   []directory.Conversation
		logs            []directory.LogEntry
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		partners, err = client.Partners().List(ctx)
		return err
	})
	g.Go(func() (err error) {
		recommendations, err = client.Recommendations().List(ctx)
		return err
	})
	g.Go(func() (err error) {
		conversations, err = client.Conversations().List(ctx)
		return err
	})
	g.Go(func() (err error) {
		logs, err = client.Logs().List(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return directoryStats{}, fmt.Errorf("collect stats: %w", err)
	}

	s := directoryStats{
		Partners:             len(partners),
		Recommendations:      len(recommendations),
		RecommendationStatus: make(map[directory.RecommendationStatus]int),
		Conversations:        len(conversations),
		Logs:                 len(logs),
		LogLevels:            make(map[directory.Level]int),
	}
	for _, p := range partners {
		if p.Active {
			s.ActivePartners++
		}
	}
	for _, r := range recommendations {
		s.RecommendationStatus[r.Status]++
	}
	for _, c := range conversations {
		if c.IsActive() {
			s.ActiveConversations++
		}
	}
	for _, e := range logs {
		s.LogLevels[e.Level]++
	}
	return s, nil
}

func runStats(cmd *cobra.Command, args []string) error {
	start := time.Now()
	s, err := collectStats(commandContext(cmd), newClient())
	if err != nil {
		return err
	}
	cliLogger().Debug("stats collected", zap.Duration("took", time.Since(start)))

	t := ui.NewSimpleTable("SMART DIRECTORY", []string{"COLECCIÓN", "TOTAL", "DETALLE"})
	t.AddRow("socios", fmt.Sprint(s.Partners), fmt.Sprintf("%d activos", s.ActivePartners))
	t.AddRow("recomendaciones", fmt.Sprint(s.Recommendations), fmt.Sprintf("%d pendientes, %d aceptadas, %d rechazadas",
		s.RecommendationStatus[directory.StatusPending],
		s.RecommendationStatus[directory.StatusAccepted],
		s.RecommendationStatus[directory.StatusRejected]))
	t.AddRow("conversaciones", fmt.Sprint(s.Conversations), fmt.Sprintf("%d activas", s.ActiveConversations))
	t.AddRow("logs", fmt.Sprint(s.Logs), fmt.Sprintf("%d error, %d warn",
		s.LogLevels[directory.LevelError], s.LogLevels[directory.LevelWarn]))

	fmt.Fprint(cmd.OutOrStdout(), t.View(ui.NewStyles(ui.LightTheme())))
	return nil
}

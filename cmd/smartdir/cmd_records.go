package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"smartdir/cmd/smartdir/ui"
	"smartdir/internal/api"
	"smartdir/internal/directory"
	"smartdir/internal/logging"
	"smartdir/internal/panel"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Resource names accepted on the command line, as they appear under /api.
const (
	resPartners        = "socios"
	resRecommendations = "recomendaciones"
	resConversations   = "conversaciones"
	resLogs            = "logs"
)

var resourceNames = []string{resPartners, resRecommendations, resConversations, resLogs}

var (
	listLevel  string
	assumeYes  bool
	listFormat string
)

var listCmd = &cobra.Command{
	Use:       "list <socios|recomendaciones|conversaciones|logs>",
	Short:     "Print every record of a collection",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: resourceNames,
	RunE:      listRecords,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <socios|recomendaciones|conversaciones> <id>",
	Short: "Delete one record after confirmation",
	Args:  cobra.ExactArgs(2),
	RunE:  deleteRecord,
}

var clearLogsCmd = &cobra.Command{
	Use:   "clear-logs",
	Short: "Delete every log entry after confirmation",
	Args:  cobra.NoArgs,
	RunE:  clearLogs,
}

func init() {
	listCmd.Flags().StringVar(&listLevel, "level", "", "Only show logs of this level (info, warn, error, debug)")
	listCmd.Flags().StringVar(&listFormat, "format", "table", "Output format: table or json")
	deleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")
	clearLogsCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")
}

func cliLogger() *zap.Logger {
	return logging.For(logger, logging.CategoryCLI)
}

func listRecords(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	client := newClient()
	out := cmd.OutOrStdout()

	var table *ui.SimpleTable
	switch args[0] {
	case resPartners:
		records, err := client.Partners().List(ctx)
		if err != nil {
			return err
		}
		if listFormat == "json" {
			return writeJSON(out, records)
		}
		table = partnerTable(records)
	case resRecommendations:
		records, err := client.Recommendations().List(ctx)
		if err != nil {
			return err
		}
		if listFormat == "json" {
			return writeJSON(out, records)
		}
		table = recommendationTable(records)
	case resConversations:
		records, err := client.Conversations().List(ctx)
		if err != nil {
			return err
		}
		if listFormat == "json" {
			return writeJSON(out, records)
		}
		table = conversationTable(records)
	case resLogs:
		level := directory.Level(strings.ToLower(listLevel))
		if level != "" && !knownLevel(level) {
			return fmt.Errorf("unknown level %q (want info, warn, error or debug)", listLevel)
		}
		records, err := client.Logs().List(ctx)
		if err != nil {
			return err
		}
		records = filterLogs(records, level)
		if listFormat == "json" {
			return writeJSON(out, records)
		}
		table = logTable(records)
	default:
		return fmt.Errorf("unknown resource %q", args[0])
	}

	cliLogger().Debug("listed", zap.String("resource", args[0]), zap.Int("rows", len(table.Rows)))
	fmt.Fprint(out, table.View(ui.NewStyles(ui.LightTheme())))
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func knownLevel(l directory.Level) bool {
	for _, known := range directory.Levels {
		if l == known {
			return true
		}
	}
	return false
}

// filterLogs keeps entries of level, or all of them when level is empty.
func filterLogs(records []directory.LogEntry, level directory.Level) []directory.LogEntry {
	if level == "" {
		return records
	}
	l := panel.New[directory.LogEntry]()
	l.FinishLoad(l.BeginLoad(), records, nil)
	l.SetFilter(func(e directory.LogEntry) bool { return e.Level == level })
	return l.Rows()
}

func partnerTable(records []directory.Partner) *ui.SimpleTable {
	t := ui.NewSimpleTable("SOCIOS", []string{"ID", "NOMBRE", "TELÉFONO", "ESPECIALIDAD", "UBICACIÓN", "ESTADO"})
	t.Empty = "SIN REGISTROS"
	t.Count = true
	for _, p := range records {
		t.AddRow(p.ID, p.Name, p.Phone, p.Specialty, p.Location, p.StatusLabel())
	}
	return t
}

func recommendationTable(records []directory.Recommendation) *ui.SimpleTable {
	t := ui.NewSimpleTable("RECOMENDACIONES", []string{"ID", "PACIENTE", "SOCIO", "SÍNTOMAS", "FECHA", "ESTADO"})
	t.Empty = "SIN REGISTROS"
	t.Count = true
	for _, r := range records {
		t.AddRow(r.ID, r.Patient, r.Partner, ui.Truncate(r.Symptoms, 40),
			directory.FormatDate(r.Date), strings.ToUpper(string(r.Status)))
	}
	return t
}

func conversationTable(records []directory.Conversation) *ui.SimpleTable {
	t := ui.NewSimpleTable("CONVERSACIONES", []string{"ID", "NÚMERO", "IDIOMA", "ESTADO", "MENSAJES", "ACTUALIZADO"})
	t.Empty = "SIN REGISTROS"
	t.Count = true
	for _, c := range records {
		t.AddRow(c.ID, c.Number, strings.ToUpper(c.Language), strings.ToUpper(c.Status),
			fmt.Sprint(len(c.Messages)), directory.FormatDate(c.UpdatedAt))
	}
	return t
}

func logTable(records []directory.LogEntry) *ui.SimpleTable {
	t := ui.NewSimpleTable("LOGS", []string{"HORA", "NIVEL", "MENSAJE"})
	t.Empty = "SIN LOGS"
	t.Count = true
	for _, e := range records {
		t.AddRow(directory.FormatClock(e.Timestamp), strings.ToUpper(string(e.Level)), e.Message)
	}
	return t
}

func deleteRecord(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	resource, id := args[0], args[1]

	client := newClient()
	var d panel.Deleter
	prompt := "¿Eliminar?"
	switch resource {
	case resPartners:
		d = client.Partners()
		prompt = "¿Eliminar socio?"
	case resRecommendations:
		d = client.Recommendations()
	case resConversations:
		d = client.Conversations()
		prompt = "¿Eliminar conversación?"
	case resLogs:
		return fmt.Errorf("logs have no per-record delete; use clear-logs")
	default:
		return fmt.Errorf("unknown resource %q", resource)
	}

	if !confirm(cmd, prompt+" "+id) {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelado.")
		return nil
	}
	res := panel.Delete(ctx, d, id)
	logging.NewAudit(logger, "cli").Mutation(resource, res.Op, res.ID, res.Took, res.Err)
	if res.Err != nil {
		if api.IsNotFound(res.Err) {
			return fmt.Errorf("%s %s not found", resource, id)
		}
		return res.Err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Eliminado %s/%s\n", resource, id)
	return nil
}

func clearLogs(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	if !confirm(cmd, "¿Limpiar todos los logs?") {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelado.")
		return nil
	}
	res := panel.Clear(ctx, newClient().Logs())
	logging.NewAudit(logger, "cli").Mutation(resLogs, res.Op, res.ID, res.Took, res.Err)
	if res.Err != nil {
		return res.Err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Logs eliminados")
	return nil
}

// confirm asks prompt on the command's input unless --yes was given. Anything
// but an explicit yes cancels.
func confirm(cmd *cobra.Command, prompt string) bool {
	if assumeYes {
		return true
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s [s/N] ", prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "s", "si", "sí", "y", "yes":
		return true
	}
	return false
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

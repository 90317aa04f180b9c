package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/tourwatch/internal/monitor"
)

var flagStatusAddr string

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Query a running daemon's status",
		RunE:  runStatus,
	}

	cmd.Flags().StringVar(&flagStatusAddr, "addr", "http://localhost:8080", "Base URL of the running daemon")

	return cmd
}

func runStatus(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	client := &http.Client{Timeout: 5 * time.Second}
	url := strings.TrimRight(flagStatusAddr, "/") + "/api/status"

	req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("querying %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("daemon returned status %d", resp.StatusCode)
	}

	var st monitor.Status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return fmt.Errorf("decoding status: %w", err)
	}

	if format == FormatJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	}

	printStatus(os.Stdout, st)
	return nil
}

func printStatus(w io.Writer, st monitor.Status) {
	fmt.Fprintf(w, "Source:     %s\n", st.Source)
	fmt.Fprintf(w, "Uptime:     %s\n", time.Duration(st.UptimeSec)*time.Second)
	fmt.Fprintf(w, "Store size: %d\n", st.StoreSize)

	if st.LastRun != nil {
		fmt.Fprintf(w, "Last run:   %s (%s", st.LastRun.StartedAt.Format(time.RFC3339), st.LastRun.Outcome)
		if st.LastRun.NewCount > 0 {
			fmt.Fprintf(w, ", %d new", st.LastRun.NewCount)
		}
		fmt.Fprintln(w, ")")
	} else {
		fmt.Fprintln(w, "Last run:   never")
	}

	if len(st.Counters) > 0 {
		names := make([]string, 0, len(st.Counters))
		for name := range st.Counters {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Fprintln(w, "Counters:")
		for _, name := range names {
			fmt.Fprintf(w, "  %s: %d\n", name, st.Counters[name])
		}
	}
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aretw0/javelin"
	"github.com/aretw0/javelin/internal/presentation/tui"
	"github.com/aretw0/javelin/pkg/adapters/redis"
	"github.com/aretw0/javelin/pkg/domain"
	"github.com/aretw0/javelin/pkg/observability"
	"github.com/aretw0/javelin/pkg/ports"
	"github.com/aretw0/javelin/pkg/request"
	"github.com/aretw0/javelin/pkg/teardown"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch URL",
	Short: "Send one async request and print the result",
	Long: `Sends an async request (with the __async__=true marker), validates the
envelope and prints the payload as JSON. Envelope metadata is merged into the
in-memory store, or into Redis when --redis is set. Ctrl+C aborts every
request still in flight.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func runFetch(cmd *cobra.Command, args []string) error {
	method := domain.Method(strings.ToUpper(cfg.Request.Method))
	if !method.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedMethod, cfg.Request.Method)
	}
	pairs, _ := cmd.Flags().GetStringArray("data")
	data, err := parseData(pairs)
	if err != nil {
		return err
	}
	raw, _ := cmd.Flags().GetBool("raw")
	repeat, _ := cmd.Flags().GetInt("repeat")
	if repeat < 1 {
		repeat = 1
	}

	var store ports.MetadataStore
	if cfg.Redis.Addr != "" {
		rs := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithTTL(cfg.Redis.TTL),
		)
		defer rs.Close()
		if err := rs.Ping(cmd.Context()); err != nil {
			return fmt.Errorf("redis %s: %w", cfg.Redis.Addr, err)
		}
		store = rs
	}

	metricsReg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(metricsReg)
	if err != nil {
		return err
	}

	sig := teardown.NewSignal(cmd.Context())
	defer sig.Stop()

	opts := []javelin.Option{
		javelin.WithLogger(logger),
		javelin.WithDebug(cfg.Debug),
		javelin.WithDefaultTimeout(cfg.Request.Timeout),
		javelin.WithHooks(metrics.Hooks()),
	}
	if store != nil {
		opts = append(opts, javelin.WithStore(store))
	}
	client := javelin.New(opts...)
	client.BindTeardown(sig)
	client.Callbacks().Register("log", func(ctx context.Context, args map[string]any) error {
		logger.Info("onload", "args", args)
		return nil
	})

	reqOpts := []request.Option{
		request.WithMethod(method),
		request.WithData(data),
		request.WithRaw(raw),
	}

	styles := tui.NewStyles(os.Stdout)
	out := cmd.OutOrStdout()

	if repeat == 1 {
		payload, err := client.Do(sig.Context(), args[0], reqOpts...)
		if err != nil {
			return describe(err)
		}
		if err := printJSON(out, payload); err != nil {
			return err
		}
		return printMetadata(sig.Context(), cmd.ErrOrStderr(), tui.NewStyles(os.Stderr), client.Store())
	}

	var wg sync.WaitGroup
	for range repeat {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := client.Do(sig.Context(), args[0], reqOpts...); err != nil {
				logger.Debug("request failed", "err", err)
			}
		}()
	}
	wg.Wait()
	return printSummary(out, styles, metricsReg)
}

func describe(err error) error {
	var reqErr *javelin.RequestError
	switch {
	case errors.As(err, &reqErr):
		return reqErr
	case errors.Is(err, context.Canceled):
		return errors.New("aborted")
	default:
		return err
	}
}

// parseData turns k=v pairs into request data.
func parseData(pairs []string) (map[string]string, error) {
	data := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, val, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --data %q, expected key=value", p)
		}
		data[k] = val
	}
	return data, nil
}

func printJSON(w io.Writer, payload any) error {
	if env, ok := payload.(*domain.Envelope); ok && env.Fields != nil {
		payload = env.Fields
	}
	body, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	if tui.IsTerminal(os.Stdout) {
		rendered, err := tui.NewRenderer()(tui.CodeBlock("json", string(body)))
		if err == nil {
			_, err = io.WriteString(w, rendered)
			return err
		}
	}
	_, err = fmt.Fprintln(w, string(body))
	return err
}

func printMetadata(ctx context.Context, w io.Writer, styles tui.Styles, store ports.MetadataStore) error {
	keys, err := store.Keys(ctx)
	if err != nil {
		return err
	}
	for _, k := range keys {
		v, err := store.Get(ctx, k)
		if err != nil {
			continue
		}
		encoded, _ := json.Marshal(v)
		fmt.Fprintf(w, "%s %s\n", styles.Label(k), styles.Muted(string(encoded)))
	}
	return nil
}

func printSummary(w io.Writer, styles tui.Styles, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return err
	}
	for _, f := range families {
		if f.GetName() != "javelin_requests_total" {
			continue
		}
		for _, m := range f.GetMetric() {
			var outcome string
			for _, l := range m.GetLabel() {
				if l.GetName() == "outcome" {
					outcome = l.GetValue()
				}
			}
			line := fmt.Sprintf("%-8s %d", outcome, int(m.GetCounter().GetValue()))
			if outcome == string(domain.OutcomeSuccess) {
				line = styles.Success(line)
			} else {
				line = styles.Failure(line)
			}
			fmt.Fprintln(w, line)
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().StringP("method", "X", "POST", "HTTP method (GET or POST)")
	fetchCmd.Flags().StringArrayP("data", "d", nil, "Request field as key=value (repeatable)")
	fetchCmd.Flags().Bool("raw", false, "Print the whole envelope instead of its payload")
	fetchCmd.Flags().Duration("timeout", 0, "Fail with the timeout sentinel after this duration (0 disables)")
	fetchCmd.Flags().String("redis", "", "Redis address for the metadata store")
	fetchCmd.Flags().Int("repeat", 1, "Send the request N times concurrently and print outcome counts")

	bindFlag("request.method", fetchCmd, "method")
	bindFlag("request.timeout", fetchCmd, "timeout")
	bindFlag("redis.addr", fetchCmd, "redis")
}

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"jobs-api/jobs/application"
	"jobs-api/jobs/challenge"
	"jobs-api/jobs/hints"
)

// errCheckFailed faz o processo sair com 1 sem imprimir erro extra:
// o resultado da validação já foi impresso.
var errCheckFailed = errors.New("submission rejected")

// offlineService monta o fluxo de candidatura sem notifier nem stats.
func offlineService() application.ApplyService {
	return application.ApplyService{
		Registry: application.NewRegistry(challenge.Defaults(time.Now)...),
	}
}

func newPositionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "positions",
		Short: "List open positions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, job := range offlineService().Jobs() {
				fmt.Fprintf(w, "%s\t%s\n", job.Slug, job.Level)
			}
			return w.Flush()
		},
	}
}

func newChallengeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "challenge <slug>",
		Short: "Print the challenge for a position as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := offlineService()
			resp, err := svc.Describe(args[0])
			if err != nil {
				return unknownPosition(svc, args[0], err)
			}
			return writeJSON(cmd.OutOrStdout(), resp)
		},
	}
}

func newCheckCmd() *cobra.Command {
	var showDiff bool

	cmd := &cobra.Command{
		Use:   "check <slug> [file|-]",
		Short: "Validate a submission offline (no notification is sent)",
		Long: `check runs the same validation as POST /{slug}/apply against a JSON file,
or stdin when the file is "-" or omitted. Exits with status 1 when the
submission is rejected.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readSubmission(cmd.InOrStdin(), args[1:])
			if err != nil {
				return err
			}

			svc := offlineService()
			res, err := svc.Submit(cmd.Context(), args[0], body)
			if err != nil {
				return unknownPosition(svc, args[0], err)
			}

			if !res.Success && showDiff {
				desc, _ := svc.Describe(args[0])
				if payload, perr := decodeLoose(body); perr == nil {
					res.Hints = append(res.Hints, hints.Diff(desc.ExampleInput, payload)...)
				}
			}

			if err := writeJSON(cmd.OutOrStdout(), res); err != nil {
				return err
			}
			if !res.Success {
				return errCheckFailed
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showDiff, "diff", false, "on failure, also compare the payload shape with the example input")
	return cmd
}

func newSimilarityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "similarity <a> <b>",
		Short: "Print the edit distance and similarity between two strings",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "distance=%d similarity=%.4f\n",
				hints.Distance(args[0], args[1]), hints.Similarity(args[0], args[1]))
			return err
		},
	}
}

func readSubmission(stdin io.Reader, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return b, nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read submission: %w", err)
	}
	return b, nil
}

func decodeLoose(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var v any
	err := dec.Decode(&v)
	return v, err
}

func unknownPosition(svc application.ApplyService, slug string, err error) error {
	var slugs []string
	for _, job := range svc.Jobs() {
		slugs = append(slugs, string(job.Slug))
	}
	return fmt.Errorf("%w: %q (available: %s)", err, slug, strings.Join(slugs, ", "))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

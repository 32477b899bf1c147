/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bluemanta7/MantaMind/internal/infrastructure/config"
	"github.com/bluemanta7/MantaMind/internal/infrastructure/logging"
	"github.com/bluemanta7/MantaMind/internal/usecase/corpus"
)

var augmentReportCmd = &cobra.Command{
	Use:   "augment-report [file]",
	Short: "Print the word forms augmentation would add to a corpus file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger, err := logging.NewLogger(cfg)
		if err != nil {
			return err
		}

		path := cfg.Corpus.Sources[0]
		if len(args) == 1 {
			path = args[0]
		}
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return fmt.Errorf("read corpus: %w", err)
		}
		return writeAugmentReport(cmd.OutOrStdout(), data, logger)
	},
}

func init() {
	rootCmd.AddCommand(augmentReportCmd)
}

func writeAugmentReport(w io.Writer, data []byte, logger logrus.FieldLogger) error {
	entries, err := corpus.Decode(data, logger)
	if err != nil {
		return err
	}
	report := corpus.AugmentReport(entries)
	if report == nil {
		report = []corpus.ReportEntry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

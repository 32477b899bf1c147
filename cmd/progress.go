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
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bluemanta7/MantaMind/internal/app"
	"github.com/bluemanta7/MantaMind/internal/usecase/mastery"
)

const (
	progressFilterKey = "progress.filter"
	progressOrderKey  = "progress.order"
	progressJSONKey   = "progress.json"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show the active user's progress per word",
	Long: `Show the completion percentage and one row per corpus word.

Rows can be filtered with a CEL expression over word, state, streak, credit
and learned, and ordered by up to two of word, state, streak and credit:

  mantamind progress --filter "state == 'in-progress' && streak >= 2" --order "streak desc, word"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		player, cleanup, err := app.InitializePlay(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return fmt.Errorf("initialize: %w", err)
		}
		defer cleanup()

		user, err := player.Accounts.RequireLogin(ctx)
		if err != nil {
			return err
		}
		acct, err := player.Accounts.Account(ctx, user)
		if err != nil {
			return err
		}
		snap, err := player.Engine.Init(ctx)
		if err != nil {
			return err
		}

		rows := mastery.Rows(acct, player.Corpus, player.Accounts.Settings(ctx))
		rows, err = mastery.Query(rows, viper.GetString(progressFilterKey), viper.GetString(progressOrderKey))
		if err != nil {
			return fmt.Errorf("query progress: %w", err)
		}

		if viper.GetBool(progressJSONKey) {
			return writeRowsJSON(cmd.OutOrStdout(), rows)
		}
		cmd.Println(snap.Details())
		return writeRowsTable(cmd.OutOrStdout(), rows)
	},
}

func init() {
	rootCmd.AddCommand(progressCmd)

	progressCmd.Flags().String("filter", "", "CEL expression selecting rows")
	progressCmd.Flags().String("order", "", "order_by clause, e.g. \"streak desc, word\"")
	progressCmd.Flags().Bool("json", false, "print rows as JSON")

	bindFlagToViper(progressFilterKey, progressCmd.Flags().Lookup("filter"))
	bindFlagToViper(progressOrderKey, progressCmd.Flags().Lookup("order"))
	bindFlagToViper(progressJSONKey, progressCmd.Flags().Lookup("json"))
}

func writeRowsTable(w io.Writer, rows []mastery.Row) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WORD\tSTATE\tSTREAK\tCREDIT")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f\n", r.Word, r.State, r.Streak, r.Credit)
	}
	return tw.Flush()
}

func writeRowsJSON(w io.Writer, rows []mastery.Row) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

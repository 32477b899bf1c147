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
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bluemanta7/MantaMind/internal/app"
	"github.com/bluemanta7/MantaMind/internal/usecase/account"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the resolved quiz settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		c, cleanup, err := app.Initialize(ctx)
		if err != nil {
			return fmt.Errorf("initialize: %w", err)
		}
		defer cleanup()

		s := c.Accounts.Settings(ctx)
		cmd.Printf("multipleChoice: %t\n", s.MultipleChoice)
		cmd.Printf("matching: %t\n", s.Matching)
		cmd.Printf("formMatch: %t\n", s.FormMatch)
		cmd.Printf("wordThreshold: %d\n", s.WordThreshold)
		cmd.Printf("progressTargetWords: %d\n", s.ProgressTargetWords)
		cmd.Printf("theme: %s\n", s.Theme)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting of the active user, or the app default with --app",
	Long:  "Keys: " + strings.Join(account.SettingKeys, ", "),
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		scope := account.ScopeUser
		if appWide, _ := cmd.Flags().GetBool("app"); appWide {
			scope = account.ScopeApp
		}

		c, cleanup, err := app.Initialize(ctx)
		if err != nil {
			return fmt.Errorf("initialize: %w", err)
		}
		defer cleanup()

		if err := c.Accounts.UpdateSettings(ctx, scope, args[0], args[1]); err != nil {
			return err
		}
		cmd.Printf("%s = %s (%s)\n", args[0], args[1], scope)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsSetCmd)

	settingsSetCmd.Flags().Bool("app", false, "change the app-wide default instead of the user's setting")
}

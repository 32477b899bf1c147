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

	"github.com/spf13/cobra"

	"github.com/bluemanta7/MantaMind/internal/app"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply store migrations and upgrade legacy account records",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		c, cleanup, err := app.Initialize(ctx)
		if err != nil {
			return fmt.Errorf("initialize: %w", err)
		}
		defer cleanup()

		migrated, err := c.Accounts.Migrate(ctx)
		if err != nil {
			return fmt.Errorf("migrate accounts: %w", err)
		}
		users, err := c.Accounts.Usernames(ctx)
		if err != nil {
			return fmt.Errorf("list accounts: %w", err)
		}
		if len(migrated) == 0 {
			cmd.Printf("Store schema is current, %d accounts checked, none needed migration.\n", len(users))
			return nil
		}
		for _, user := range migrated {
			cmd.Printf("migrated %s\n", user)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

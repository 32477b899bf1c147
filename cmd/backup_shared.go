package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func keysFromConfig(key string) []string {
	return normalizeKeys(viper.GetStringSlice(key))
}

func normalizeKeys(values []string) []string {
	result := lo.Uniq(lo.Compact(lo.Map(values, func(v string, _ int) string {
		return strings.TrimSpace(v)
	})))
	if len(result) == 0 {
		return nil
	}
	return result
}

func bindFlagToViper(key string, flag *pflag.Flag) {
	if flag == nil {
		return
	}
	cobra.CheckErr(viper.BindPFlag(key, flag))
}

type cliProgress struct {
	out         io.Writer
	verb        string
	total       int
	count       int
	lastPrinted int
	step        int
}

func newCLIProgress(out io.Writer, verb string) *cliProgress {
	return &cliProgress{out: out, verb: verb}
}

func (p *cliProgress) Start(total int) {
	if total < 0 {
		total = 0
	}
	p.total = total
	p.count = 0
	p.lastPrinted = 0
	p.step = progressStep(total)
	fmt.Fprintf(p.out, "%s %d keys\n", p.verb, total)
}

func (p *cliProgress) Increment(delta int) {
	if delta <= 0 {
		return
	}
	p.count += delta
	if p.count == p.total || p.lastPrinted == 0 || p.count-p.lastPrinted >= p.step {
		fmt.Fprintf(p.out, "%s progress: %d/%d\n", p.verb, p.count, p.total)
		p.lastPrinted = p.count
	}
}

func (p *cliProgress) Finish() {
	fmt.Fprintf(p.out, "%s done: %d/%d keys\n", p.verb, p.count, p.total)
}

func progressStep(total int) int {
	return min(max(total/20, 1), 1000)
}

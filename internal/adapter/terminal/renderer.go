// Package terminal is the line-oriented front end of the quiz: it renders
// rounds and progress to a writer and turns typed commands into selector
// events.
package terminal

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/bluemanta7/MantaMind/internal/entity"
	"github.com/bluemanta7/MantaMind/internal/usecase/corpus"
	"github.com/bluemanta7/MantaMind/internal/usecase/mastery"
	"github.com/bluemanta7/MantaMind/internal/usecase/quiz"
)

const (
	// CompletionBanner is printed once when progress reaches 100%.
	CompletionBanner = "🎉 Perfect! Progress complete."

	markCorrect = "✅"
	markWrong   = "❌"
	barWidth    = 20
)

// Renderer prints quiz rounds and progress updates.
type Renderer struct {
	out    io.Writer
	corpus *corpus.Corpus
}

// NewRenderer returns a renderer writing to out.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// SetCorpus gives the reveal box access to definitions and examples.
func (r *Renderer) SetCorpus(c *corpus.Corpus) { r.corpus = c }

// ShowQuestion prints the prompt and the numbered options.
func (r *Renderer) ShowQuestion(q quiz.Question) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, q.Prompt())
	switch v := q.(type) {
	case *quiz.MatchingQuestion:
		r.matchingGrid(v)
		fmt.Fprintln(r.out, "Answer with: match 1=2 2=1 ...")
	case *quiz.ChoiceQuestion:
		if s := v.Sentence(); s != "" {
			fmt.Fprintf(r.out, "  %s\n", s)
		}
		for i, opt := range v.Options() {
			fmt.Fprintf(r.out, "  %d) %s\n", i+1, opt)
		}
	}
}

func (r *Renderer) matchingGrid(q *quiz.MatchingQuestion) {
	tw := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	left, right := q.Left(), q.Options()
	for i := 0; i < max(len(left), len(right)); i++ {
		var l, rt string
		if i < len(left) {
			l = fmt.Sprintf("%d. %s", i+1, left[i])
		}
		if i < len(right) {
			rt = fmt.Sprintf("%d. %s", i+1, right[i])
		}
		fmt.Fprintf(tw, "  %s\t%s\n", l, rt)
	}
	_ = tw.Flush()
}

// ShowReveal marks the options and prints the reveal box for the target.
func (r *Renderer) ShowReveal(q quiz.Question, results []quiz.Result, gaveUp bool) {
	fmt.Fprintln(r.out)
	switch {
	case gaveUp:
		fmt.Fprintln(r.out, "You gave up on this one.")
	case allCorrect(results):
		fmt.Fprintln(r.out, markCorrect+" Correct!")
	default:
		fmt.Fprintln(r.out, markWrong+" Not quite.")
	}

	switch v := q.(type) {
	case *quiz.MatchingQuestion:
		left, right, answer := v.Left(), v.Options(), v.Answer()
		for i, w := range left {
			mark := markWrong
			if i < len(results) && results[i].Correct {
				mark = markCorrect
			}
			fmt.Fprintf(r.out, "  %s %s → %s\n", mark, w, right[answer[i]])
		}
	case *quiz.ChoiceQuestion:
		for i, opt := range v.Options() {
			mark := markWrong
			if i == v.CorrectIndex() {
				mark = markCorrect
			}
			fmt.Fprintf(r.out, "  %d) %s %s\n", i+1, mark, opt)
		}
	}
	r.revealBox(q)
}

func (r *Renderer) revealBox(q quiz.Question) {
	lines := []string{"Answer: " + q.CorrectAnswer()}
	if e, ok := r.corpus.Find(q.Word()); ok {
		lines = append(lines, "Word: "+e.Word)
		if e.HasDefinition() {
			lines = append(lines, "Definition: "+e.Definition)
		}
		if ex := quiz.RevealExample(e); ex != "" {
			lines = append(lines, "Example: "+ex)
		}
	}
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	border := "+" + strings.Repeat("-", width+2) + "+"
	fmt.Fprintln(r.out, border)
	for _, l := range lines {
		fmt.Fprintf(r.out, "| %s%s |\n", l, strings.Repeat(" ", width-len([]rune(l))))
	}
	fmt.Fprintln(r.out, border)
	fmt.Fprintln(r.out, "Type 'next' to continue.")
}

// ShowHint prints a hint line.
func (r *Renderer) ShowHint(text string) {
	fmt.Fprintln(r.out, "💡 "+text)
}

// ProgressChanged prints the streak labels and the progress bar.
func (r *Renderer) ProgressChanged(s mastery.Snapshot) {
	fmt.Fprintf(r.out, "Streak: %d (best %d)\n", s.CurrentStreak, s.BestStreak)
	fmt.Fprintln(r.out, ProgressBar(s.Percentage)+"  "+s.Label())
}

// Completed prints the celebration banner.
func (r *Renderer) Completed() {
	fmt.Fprintln(r.out, CompletionBanner)
}

// ShowError prints a rejected operation inline.
func (r *Renderer) ShowError(err error) {
	fmt.Fprintln(r.out, "⚠ "+err.Error())
}

// ShowSettings prints the resolved settings.
func (r *Renderer) ShowSettings(s entity.Settings) {
	tw := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "  multipleChoice\t%t\n", s.MultipleChoice)
	fmt.Fprintf(tw, "  matching\t%t\n", s.Matching)
	fmt.Fprintf(tw, "  formMatch\t%t\n", s.FormMatch)
	fmt.Fprintf(tw, "  wordThreshold\t%d\n", s.WordThreshold)
	fmt.Fprintf(tw, "  progressTargetWords\t%d\n", s.ProgressTargetWords)
	fmt.Fprintf(tw, "  theme\t%s\n", s.Theme)
	_ = tw.Flush()
}

// ProgressBar draws pct (0..100) as a fixed-width bar.
func ProgressBar(pct int) string {
	pct = min(max(pct, 0), 100)
	filled := pct * barWidth / 100
	return fmt.Sprintf("[%s%s] %3d%%", strings.Repeat("█", filled), strings.Repeat("░", barWidth-filled), pct)
}

func allCorrect(results []quiz.Result) bool {
	if len(results) == 0 {
		return false
	}
	for _, r := range results {
		if !r.Correct {
			return false
		}
	}
	return true
}

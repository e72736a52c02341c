package terminal

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/saulo-duarte/quiz-categorias/internal/journal"
	"github.com/saulo-duarte/quiz-categorias/internal/quiz"
)

// PrintHistory writes journal sessions and per-category totals as aligned tables.
func PrintHistory(out io.Writer, sessions []*journal.SessionRecord, stats []journal.CategoryStats) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(out, "No hay sesiones registradas.")
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FECHA\tUSUARIO\tCATEGORÍA\tACIERTOS\tPUNTAJE\tGUARDADA")
	for _, s := range sessions {
		saved := "sí"
		if !s.Persisted {
			saved = "no"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d/%d\t%s\t%s\n",
			s.CompletedAt.Local().Format("2006-01-02 15:04"),
			s.UserName,
			s.Category,
			s.CorrectCount, s.TotalQuestions,
			quiz.FormatScore(s.TotalScore),
			saved,
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(stats) == 0 {
		return nil
	}
	fmt.Fprintln(out)
	tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORÍA\tSESIONES\tRESPONDIDAS\tACIERTOS\tPRECISIÓN")
	for _, st := range stats {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.0f%%\n", st.Category, st.Sessions, st.Answered, st.Correct, st.Accuracy()*100)
	}
	return tw.Flush()
}

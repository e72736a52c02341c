package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/saulo-duarte/quiz-categorias/internal/config"
	"github.com/saulo-duarte/quiz-categorias/internal/quiz"
)

// Quiz is the part of the controller the terminal drives.
type Quiz interface {
	SelectCategory(ctx context.Context, key string) error
	SelectOption(label string) error
	SubmitCurrentAnswer(ctx context.Context) error
	ResetSession() error
	SetUserName(name string) error
	Snapshot() quiz.Snapshot
}

var errQuit = errors.New("quit")

type Player struct {
	quiz  Quiz
	in    *bufio.Scanner
	out   io.Writer
	color bool
}

type PlayerOption func(*Player)

func WithColor(enabled bool) PlayerOption {
	return func(p *Player) {
		p.color = enabled
	}
}

func NewPlayer(q Quiz, in io.Reader, out io.Writer, opts ...PlayerOption) *Player {
	p := &Player{
		quiz:  q,
		in:    bufio.NewScanner(in),
		out:   out,
		color: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run plays sessions until the input ends or the user quits.
func (p *Player) Run(ctx context.Context) error {
	log := config.WithContext(ctx)

	p.println(p.colorize("Quiz de Categorías", colorBold+colorCyan))
	p.println("------------------")

	if err := p.askUserName(); err != nil {
		return ignoreQuit(err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := p.chooseCategory(ctx); err != nil {
			return ignoreQuit(err)
		}
		if err := p.answerLoop(ctx); err != nil {
			return ignoreQuit(err)
		}
		p.printResults(p.quiz.Snapshot())

		again, err := p.ask("¿Jugar otra vez? (s/n): ")
		if err != nil {
			return ignoreQuit(err)
		}
		if err := p.quiz.ResetSession(); err != nil {
			log.WithError(err).Error("Error al reiniciar la sesión")
			return err
		}
		if !strings.HasPrefix(strings.ToLower(again), "s") {
			p.println("¡Hasta luego!")
			return nil
		}
	}
}

func (p *Player) askUserName() error {
	current := p.quiz.Snapshot().UserName
	name, err := p.ask(fmt.Sprintf("Usuario [%s]: ", current))
	if err != nil {
		return err
	}
	if name == "" {
		return nil
	}
	return p.quiz.SetUserName(name)
}

func (p *Player) chooseCategory(ctx context.Context) error {
	categories := quiz.Categories()
	for {
		p.println("")
		p.println(p.colorize("Elige una categoría:", colorBold))
		for i, c := range categories {
			p.printf("  %d) %s\n", i+1, c.Label)
		}
		p.println("  q) Salir")

		choice, err := p.ask("> ")
		if err != nil {
			return err
		}
		if strings.EqualFold(choice, "q") {
			return errQuit
		}

		key := strings.ToLower(choice)
		if n, err := strconv.Atoi(choice); err == nil && n >= 1 && n <= len(categories) {
			key = categories[n-1].Key
		}
		if _, ok := quiz.LookupCategory(key); !ok {
			p.println(p.colorize("Categoría no válida.", colorRed))
			continue
		}

		p.println("Cargando...")
		if err := p.quiz.SelectCategory(ctx, key); err != nil {
			p.printError(p.quiz.Snapshot(), err)
			continue
		}
		return nil
	}
}

func (p *Player) answerLoop(ctx context.Context) error {
	for {
		s := p.quiz.Snapshot()
		q, ok := s.CurrentQuestion()
		if !ok {
			return nil
		}

		p.println("")
		p.println(p.colorize(fmt.Sprintf("Pregunta %d de %d", s.CurrentIndex+1, len(s.Questions)), colorYellow))
		p.println(p.colorize(q.Prompt, colorBold+colorCyan))
		for i, opt := range q.Options {
			p.printf("  %s) %s\n", quiz.OptionLabel(i), opt)
		}

		choice, err := p.ask("Tu respuesta: ")
		if err != nil {
			return err
		}
		if choice == "" && s.SelectedOption != "" {
			choice = s.SelectedOption
		}
		if err := p.quiz.SelectOption(choice); err != nil {
			p.println(p.colorize("Opción no válida, usa "+strings.Join(q.Labels(), "/")+".", colorRed))
			continue
		}

		if err := p.quiz.SubmitCurrentAnswer(ctx); err != nil {
			p.printError(p.quiz.Snapshot(), err)
			p.println("Pulsa Enter para reintentar.")
			continue
		}

		after := p.quiz.Snapshot()
		if n := len(after.AnswerHistory); n > 0 {
			p.printFeedback(after.AnswerHistory[n-1])
		}
	}
}

func (p *Player) printFeedback(r quiz.AnswerRecord) {
	if r.IsCorrect {
		p.println(p.colorize(checkMark+" ¡Correcto!", colorGreen+colorBold))
		return
	}
	p.println(p.colorize(crossMark+" Incorrecto.", colorRed+colorBold))
	p.println(p.colorize("Respuesta correcta: "+r.CorrectOption, colorGreen))
}

func (p *Player) printResults(s quiz.Snapshot) {
	sum := s.Summary()

	p.println("")
	p.println(p.colorize("Resultados", colorBold+colorCyan))
	for i, r := range s.AnswerHistory {
		status := p.colorize(crossMark+" incorrecta", colorRed+colorBold)
		if r.IsCorrect {
			status = p.colorize(checkMark+" correcta", colorGreen+colorBold)
		}
		p.printf("P%-3d %s  Tu respuesta: %s  Correcta: %s\n", i+1, status, r.SelectedOption, r.CorrectOption)
	}
	p.printf("Puntaje: %s de %d (%d correctas)\n", quiz.FormatScore(sum.TotalScore), sum.Total, sum.Correct)

	if s.Persisted {
		p.println(p.colorize("Sesión guardada.", colorGreen))
	} else if s.LastError != "" {
		p.println(p.colorize("Error: "+s.LastError, colorRed))
	}
}

func (p *Player) printError(s quiz.Snapshot, err error) {
	msg := s.LastError
	if msg == "" {
		msg = err.Error()
	}
	p.println(p.colorize("Error: "+msg, colorRed))
}

func (p *Player) ask(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		p.println("")
		return "", errQuit
	}
	return strings.TrimSpace(p.in.Text()), nil
}

func (p *Player) println(s string) {
	fmt.Fprintln(p.out, s)
}

func (p *Player) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format, args...)
}

func ignoreQuit(err error) error {
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/urfave/cli/v2"

	"github.com/saulo-duarte/quiz-categorias/internal/config"
	"github.com/saulo-duarte/quiz-categorias/internal/container"
	"github.com/saulo-duarte/quiz-categorias/internal/journal"
	"github.com/saulo-duarte/quiz-categorias/internal/router"
	"github.com/saulo-duarte/quiz-categorias/internal/terminal"
)

// @title        Quiz de Categorías API
// @version      1.0
// @description  Web view and JSON API of the category quiz client.
// @BasePath     /
func main() {
	app := &cli.App{
		Name:  "quiz",
		Usage: "category quiz client",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "api-url", Usage: "quiz backend base URL"},
			&cli.DurationFlag{Name: "timeout", Usage: "backend request timeout (0 disables)", Value: -1},
			&cli.StringFlag{Name: "user", Usage: "default user name"},
			&cli.StringFlag{Name: "journal-driver", Usage: "postgres, sqlite or empty"},
			&cli.StringFlag{Name: "dsn", Usage: "journal database DSN"},
			&cli.StringFlag{Name: "log-level", Usage: "logrus level"},
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "serve the web view (or run as a Lambda handler)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "port", Usage: "listen port"},
				},
				Action: serve,
			},
			{
				Name:   "play",
				Usage:  "play in the terminal",
				Flags:  []cli.Flag{&cli.BoolFlag{Name: "no-color", Usage: "disable ANSI colors"}},
				Action: play,
			},
			{
				Name:  "history",
				Usage: "print sessions stored in the journal",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Value: 20},
					&cli.StringFlag{Name: "for", Usage: "only sessions of this user"},
				},
				Action: history,
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		config.Logger.WithError(err).Fatal("El quiz terminó con error")
	}
}

func build(c *cli.Context) (*container.Container, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, err
	}

	if v := c.String("api-url"); v != "" {
		settings.APIURL = v
	}
	if d := c.Duration("timeout"); d >= 0 {
		settings.APITimeout = d
	}
	if v := c.String("user"); v != "" {
		settings.UserName = v
	}
	if v := c.String("journal-driver"); v != "" {
		settings.JournalDriver = v
	}
	if v := c.String("dsn"); v != "" {
		settings.DatabaseDSN = v
	}
	if v := c.String("log-level"); v != "" {
		settings.LogLevel = v
	}
	if v := c.String("port"); v != "" {
		settings.Port = v
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	config.InitLogger(settings.LogLevel, settings.LogFormat)
	return container.New(*settings)
}

func serve(c *cli.Context) error {
	ctr, err := build(c)
	if err != nil {
		return err
	}
	defer ctr.Close()

	mux := router.New(router.RouterConfig{WebHandler: ctr.WebHandler})

	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		adapter := chiadapter.New(mux)
		lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
			return adapter.ProxyWithContext(ctx, req)
		})
		return nil
	}

	srv := &http.Server{
		Addr:              ":" + ctr.Settings.Port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		config.Logger.Infof("Quiz disponible en http://localhost:%s", ctr.Settings.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	config.Logger.Info("Apagando el servidor")
	return srv.Shutdown(shutdownCtx)
}

func play(c *cli.Context) error {
	ctr, err := build(c)
	if err != nil {
		return err
	}
	defer ctr.Close()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	player := terminal.NewPlayer(
		ctr.QuizContainer.Controller,
		os.Stdin,
		os.Stdout,
		terminal.WithColor(!c.Bool("no-color")),
	)
	return player.Run(ctx)
}

func history(c *cli.Context) error {
	ctr, err := build(c)
	if err != nil {
		return err
	}
	defer ctr.Close()

	if ctr.JournalContainer == nil {
		return errors.New("journal disabled: set JOURNAL_DRIVER and DATABASE_DSN")
	}
	svc := ctr.JournalContainer.Service

	user := c.String("for")
	var sessions []*journal.SessionRecord
	if user != "" {
		sessions, err = svc.ListByUser(c.Context, user, c.Int("limit"))
	} else {
		sessions, err = svc.List(c.Context, c.Int("limit"))
	}
	if err != nil {
		return err
	}
	stats, err := svc.Stats(c.Context, user)
	if err != nil {
		return err
	}
	return terminal.PrintHistory(os.Stdout, sessions, stats)
}

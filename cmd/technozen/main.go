package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/flarexio/technozen"
	"github.com/flarexio/technozen/conf"
	"github.com/flarexio/technozen/notify"
	"github.com/flarexio/technozen/persistence"
	"github.com/flarexio/technozen/web"

	transHTTP "github.com/flarexio/technozen/transport/http"
)

var (
	Version   string = "0.0.0"
	BuildTime string
	GitCommit string
)

var versionCmd = &cli.Command{
	Name:    "version",
	Aliases: []string{"ver", "v"},
	Usage:   "Show version",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    "all",
			Aliases: []string{"a"},
			Usage:   "Show all infomation (include: Version, BuildTime, GitCommit)",
			Value:   false,
		},
	},
	Action: func(ctx *cli.Context) error {
		if !ctx.Bool("all") {
			fmt.Println(ctx.App.Version)
		} else {
			cli.ShowVersion(ctx)
		}
		return nil
	},
}

var enquiriesCmd = &cli.Command{
	Name:  "enquiries",
	Usage: "Print stored contact enquiries as JSON",
	Action: func(ctx *cli.Context) error {
		cfg, err := load(ctx)
		if err != nil {
			return err
		}

		repo, err := persistence.NewEnquiryRepository(cfg.Persistence)
		if err != nil {
			return err
		}
		defer repo.Close()

		all, err := repo.ListAll()
		if err != nil {
			return err
		}

		return printJSON(ctx.App.Writer, all)
	},
}

var admissionsCmd = &cli.Command{
	Name:  "admissions",
	Usage: "Print stored admission applications as JSON",
	Action: func(ctx *cli.Context) error {
		cfg, err := load(ctx)
		if err != nil {
			return err
		}

		repo, err := persistence.NewAdmissionRepository(cfg.Persistence)
		if err != nil {
			return err
		}
		defer repo.Close()

		all, err := repo.ListAll()
		if err != nil {
			return err
		}

		return printJSON(ctx.App.Writer, all)
	},
}

func main() {
	cli.VersionPrinter = func(cli *cli.Context) {
		fmt.Println("Version: " + cli.App.Version)
		fmt.Println("BuildTime: " + BuildTime)
		fmt.Println("GitCommit: " + GitCommit)
	}

	app := &cli.App{
		Name:     "technozen",
		Usage:    "Technozen India training website",
		Version:  Version,
		Commands: []*cli.Command{versionCmd, enquiriesCmd, admissionsCmd},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "path",
				Usage:   "Specifies the working directory",
				EnvVars: []string{"TECHNOZEN_PATH"},
			},
			&cli.IntFlag{
				Name:    "port",
				Usage:   "Specifies the HTTP service port",
				Value:   3000,
				EnvVars: []string{"PORT", "TECHNOZEN_HTTP_PORT"},
			},
			&cli.StringFlag{
				Name:    "env",
				Usage:   "Specifies the environment (development, production)",
				Value:   "development",
				EnvVars: []string{"TECHNOZEN_ENV"},
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func load(cli *cli.Context) (*conf.Config, error) {
	if err := conf.LoadEnv(cli); err != nil {
		return nil, err
	}

	cfg, err := conf.LoadConfig()
	if err != nil {
		return nil, err
	}
	conf.ReplaceGlobals(cfg)

	return cfg, nil
}

func run(cli *cli.Context) error {
	cfg, err := load(cli)
	if err != nil {
		return err
	}

	log, closeLog, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()
	defer log.Sync()

	zap.ReplaceGlobals(log)

	if conf.Env == conf.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	handler, closeApp, err := newHandler(cfg, log)
	if err != nil {
		return err
	}
	defer closeApp()

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(conf.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	log.Info("server running",
		zap.Int("port", conf.Port),
		zap.String("env", conf.Env.String()),
	)

	return serve(srv, quit, log)
}

// serve runs srv until a signal arrives on quit or the listener fails.
func serve(srv *http.Server, quit <-chan os.Signal, log *zap.Logger) error {
	errc := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		log.Error(err.Error(), zap.String("transport", "http"))
		return err

	case sign := <-quit:
		log.Info("shutdown", zap.String("signal", sign.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(ctx)
}

// newHandler wires persistence, notifications and the service behind the
// HTTP router. The returned func releases everything it opened.
func newHandler(cfg *conf.Config, log *zap.Logger) (http.Handler, func(), error) {
	var closers []func() error
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	// Add Persistence
	enquiries, err := persistence.NewEnquiryRepository(cfg.Persistence)
	if err != nil {
		log.Error(err.Error(),
			zap.String("infra", "persistence"),
			zap.String("driver", cfg.Persistence.Driver.String()),
		)
		return nil, nil, err
	}
	closers = append(closers, enquiries.Close)

	admissions, err := persistence.NewAdmissionRepository(cfg.Persistence)
	if err != nil {
		log.Error(err.Error(),
			zap.String("infra", "persistence"),
			zap.String("driver", cfg.Persistence.Driver.String()),
		)
		closeAll()
		return nil, nil, err
	}
	closers = append(closers, admissions.Close)

	// Add Notifications
	notifier, err := notify.NewNotifier(cfg.Notifications)
	if err != nil {
		log.Error(err.Error(), zap.String("infra", "notify"))
		closeAll()
		return nil, nil, err
	}
	closers = append(closers, notifier.Close)

	log.Info("notifications ready", zap.Int("channels", notifier.Len()))

	// Add Service and Middlewares
	svc := technozen.NewService(enquiries, admissions, notifier)
	svc = technozen.LoggingMiddleware(log)(svc)

	// Add Endpoints
	endpoints := technozen.NewEndpointSet(svc)

	// Add HTTP Transport
	opts := transHTTP.Options{
		SiteName:  cfg.Site.Name,
		Env:       conf.Env,
		Security:  cfg.Security,
		Templates: web.Templates(),
		Static:    web.Static(),
	}

	if opts.SiteName == "" {
		opts.SiteName = "Technozen India"
	}

	if dir := cfg.Site.Templates; dir != "" {
		opts.Templates = dirFS(dir)
	}

	if dir := cfg.Site.Static; dir != "" {
		opts.Static = dirFS(dir)
	}

	r, err := transHTTP.NewRouter(endpoints, opts, log)
	if err != nil {
		closeAll()
		return nil, nil, err
	}

	return r, closeAll, nil
}

// dirFS resolves relative directories against the working directory.
func dirFS(dir string) fs.FS {
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(conf.Path, dir)
	}

	return os.DirFS(dir)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

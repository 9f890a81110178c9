package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ifro-labs/ferro/pkg/charts"
	"github.com/ifro-labs/ferro/pkg/config"
	"github.com/ifro-labs/ferro/pkg/events"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

//go:embed static/banner.svg
var bannerSVG []byte

var (
	confPath string
	reg      = &registry{}
	hub      = events.NewHub()
)

var templateFuncs = template.FuncMap{
	"fmt3": func(v float64) string { return fmt.Sprintf("%.3f", v) },
	"fmt4": func(v float64) string { return fmt.Sprintf("%.4f", v) },
	"inc":  func(i int) int { return i + 1 },
	"seq": func(n int) []int {
		s := make([]int, n)
		for i := range s {
			s[i] = i
		}
		return s
	},
}

func setupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(ginLogger(logrus.StandardLogger()))
	router.SetHTMLTemplate(template.Must(template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.tmpl")))

	router.GET("/", getHome)
	router.GET("/about", getAbout)
	router.GET("/static/banner.svg", getBanner)
	router.GET("/experiments/:name", getExperimentPage)
	router.POST("/experiments/:name/estimate", postEstimatePage)
	router.GET("/experiments/:name/calibration.png", getCalibrationChart(charts.FormatPNG))
	router.GET("/experiments/:name/calibration.svg", getCalibrationChart(charts.FormatSVG))
	router.GET("/experiments/:name/concentrations.png", getConcentrationChart(charts.FormatPNG))
	router.GET("/experiments/:name/concentrations.svg", getConcentrationChart(charts.FormatSVG))

	api := router.Group("/api")
	api.GET("/experiments", listExperiments)
	api.GET("/experiments/:name", getExperiment)
	api.POST("/experiments/:name/estimate", estimate)
	api.GET("/version", getVersion)
	api.GET("/events", streamEvents)

	return router
}

func chartSize() charts.Size {
	c := reg.config()
	return charts.Size{Width: c.ChartWidth(), Height: c.ChartHeight()}
}

// Run serves the web page and the API until SIGINT or SIGTERM. listen
// overrides the address from the config file when non-empty.
func Run(configPath string, listen string) error {
	confPath = configPath
	conf, err := config.NewFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to parse config during startup: %w", err)
	}
	logrus.WithFields(conf.LogrusFields()).Infof("config loaded")

	// A dataset that cannot be fitted is a configuration error; refuse to start.
	if err := reg.load(conf); err != nil {
		return fmt.Errorf("failed to fit experiments: %w", err)
	}
	for _, e := range reg.list() {
		fit := e.calibration.Fit()
		logrus.WithFields(logrus.Fields{
			"experiment": e.experiment.Name,
			"beta":       fit.Beta,
			"rSquared":   fit.RSquared,
		}).Info("experiment calibrated")
	}

	// Receive SIGHUP to reload config
	go func() {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGHUP)
		for range sigc {
			if err := reload(); err != nil {
				logrus.Errorf("failed to reload config, keeping previous calibrations: %v", err)
				continue
			}
			logrus.Infof("config reloaded")
		}
	}()

	if listen == "" {
		listen = conf.Listen()
	}
	l, err := net.Listen("tcp", listen)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", listen, err)
	}

	srv := &http.Server{
		Handler:           setupRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.Infof("http server listening on http://%s", l.Addr().String())
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal(err)
		}
	}()

	// Handle common process-killing signals, so we can gracefully shut down:
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	// Wait for a SIGINT or SIGTERM:
	sig := <-sigc
	logrus.Infof("caught signal \"%s\": shutting down.", sig)

	logrus.Info("shutting down http server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("failed to shutdown http server: %v", err)
	}

	logrus.Info("exiting")
	return nil
}

// reload reads the config file again and re-fits every experiment. The
// running config is only replaced when every experiment fits. The listen
// address is only read at startup.
func reload() error {
	next, err := config.NewFile(confPath)
	if err != nil {
		return err
	}
	if err := reg.load(next); err != nil {
		return err
	}

	entries := reg.list()
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.experiment.Name)
	}
	hub.Publish(events.CatalogReloaded, events.CatalogReloadedEvent{
		Experiments: names,
		Ts:          time.Now().Unix(),
	})
	return nil
}

package commands

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/IannnnnW/ambso-site/pkg/config"
	"github.com/IannnnnW/ambso-site/pkg/handlers"
	"github.com/IannnnnW/ambso-site/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (default: $PORT or 8080)")
}

// ginMode uses the logger's notion of production; other modes keep gin's
// current setting.
func ginMode(appMode string) string {
	if logger.IsProduction(appMode) {
		return gin.ReleaseMode
	}
	return gin.Mode()
}

func runServe(cmd *cobra.Command, args []string) error {
	if port, _ := cmd.Flags().GetString("port"); port != "" {
		config.Port = port
	}
	gin.SetMode(ginMode(config.AppMode))

	site, _, err := newSite()
	if err != nil {
		return err
	}
	r := handlers.NewRouter(site, handlers.RouterConfig{
		BasePath:      config.BasePath,
		SessionSecret: config.SessionSecret,
		CORSOrigins:   config.CORSOrigins,
		Log:           log,
	})

	srv := &http.Server{
		Addr:              ":" + config.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", srv.Addr, "cms", config.CMSEnabled(), "base_path", config.BasePath)
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

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

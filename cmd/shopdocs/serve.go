package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/handyzentrum/shopdocs/internal/auth"
	httphandler "github.com/handyzentrum/shopdocs/internal/http"
	"github.com/handyzentrum/shopdocs/internal/http/middleware"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the forms API the desktop front end talks to",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := buildApp()
			if err != nil {
				return err
			}

			var authMiddleware gin.HandlerFunc
			if application.cfg.Auth.AccessSecret != "" {
				authMiddleware = middleware.Auth(auth.NewParser(application.cfg.Auth.AccessSecret))
			} else {
				authMiddleware = middleware.Auth(nil)
			}

			handler := httphandler.NewHandler(
				application.contracts,
				application.receipts,
				application.cfg.Company,
				application.log,
			)
			router := httphandler.NewRouter(handler, authMiddleware, application.cfg.Environment)

			addr := fmt.Sprintf("%s:%d", application.cfg.HTTP.Host, application.cfg.HTTP.Port)
			application.log.Info().Str("addr", addr).Msg("starting shopdocs")
			return router.Run(addr)
		},
	}
}

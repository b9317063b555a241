package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/omermarcel/renaltrack/internal/config"
	"github.com/omermarcel/renaltrack/internal/handler"
	analyticsHandler "github.com/omermarcel/renaltrack/internal/handler/analytics"
	appointmentHandler "github.com/omermarcel/renaltrack/internal/handler/appointment"
	casestudyHandler "github.com/omermarcel/renaltrack/internal/handler/casestudy"
	doctorHandler "github.com/omermarcel/renaltrack/internal/handler/doctor"
	examHandler "github.com/omermarcel/renaltrack/internal/handler/exam"
	notificationHandler "github.com/omermarcel/renaltrack/internal/handler/notification"
	patientHandler "github.com/omermarcel/renaltrack/internal/handler/patient"
	"github.com/omermarcel/renaltrack/internal/middleware"
	"github.com/omermarcel/renaltrack/internal/repository/record"
	"github.com/omermarcel/renaltrack/internal/router"
	"github.com/omermarcel/renaltrack/internal/service/analytics"
	appointmentService "github.com/omermarcel/renaltrack/internal/service/appointment"
	casestudyService "github.com/omermarcel/renaltrack/internal/service/casestudy"
	doctorService "github.com/omermarcel/renaltrack/internal/service/doctor"
	examService "github.com/omermarcel/renaltrack/internal/service/exam"
	"github.com/omermarcel/renaltrack/internal/service/notification"
	patientService "github.com/omermarcel/renaltrack/internal/service/patient"
	"github.com/omermarcel/renaltrack/internal/service/resolver"
	"github.com/omermarcel/renaltrack/internal/store"
	"github.com/omermarcel/renaltrack/pkg/event"
	"github.com/omermarcel/renaltrack/pkg/logger"
	"github.com/omermarcel/renaltrack/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(&logger.Config{Level: logger.ParseLevel(cfg.Logging.Level)})
	middleware.RegisterValidations()

	m := metrics.NewMetrics("renaltrack", "store")

	recordStore, err := store.Open(cfg.Store.Path, m)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Store.Path).Msg("failed to open record store")
	}
	defer recordStore.Close()

	dispatcher := event.NewDispatcher()

	patientRepo := record.NewPatientRepository(recordStore, dispatcher)
	doctorRepo := record.NewDoctorRepository(recordStore, dispatcher)
	appointmentRepo := record.NewAppointmentRepository(recordStore, dispatcher)
	caseStudyRepo := record.NewCaseStudyRepository(recordStore, dispatcher)
	examRepo := record.NewExamRepository(recordStore, dispatcher)

	refResolver := resolver.NewService(patientRepo, doctorRepo)

	patientSvc := patientService.NewService(patientRepo)
	doctorSvc := doctorService.NewService(doctorRepo)
	appointmentSvc := appointmentService.NewService(appointmentRepo, refResolver)
	caseStudySvc := casestudyService.NewService(caseStudyRepo, refResolver)
	examSvc := examService.NewService(examRepo, refResolver)
	analyticsSvc := analytics.NewService(patientRepo, dispatcher, m, cfg.Cache.TTL)
	notificationSvc := notification.NewService(patientRepo, dispatcher, m)

	r := router.NewRouter(
		router.RouterConfig{
			Mode:       cfg.Server.Mode,
			RateLimit:  rate.Limit(cfg.RateLimit.RPS),
			RateBurst:  cfg.RateLimit.Burst,
			CORSConfig: middleware.DefaultCORSConfig(),
		},
		handler.NewHealthHandler(recordStore),
		patientHandler.NewHandler(patientSvc),
		doctorHandler.NewHandler(doctorSvc, refResolver),
		appointmentHandler.NewHandler(appointmentSvc),
		casestudyHandler.NewHandler(caseStudySvc),
		examHandler.NewHandler(examSvc),
		analyticsHandler.NewHandler(analyticsSvc),
		notificationHandler.NewHandler(notificationSvc),
	)
	r.Setup()

	timeout := time.Duration(cfg.Server.TimeoutSeconds) * time.Second
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server stopped")
}

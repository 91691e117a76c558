package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"
	"hire-backend/config"
	apiv1 "hire-backend/controllers/v1"
	"hire-backend/fiberlog"
	"hire-backend/initializers"
	"hire-backend/lib/ws"
	"hire-backend/middleware"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	initializers.InitAllServices(ctx)

	bodyLimit := config.Conf.App.BodyLimitMb * 1024 * 1024
	app := fiber.New(fiber.Config{
		BodyLimit: bodyLimit,
	})
	app.Use(fiberRecover.New())

	if *config.Conf.App.SwaggerEnabled {
		app.Use(swagger.New(swagger.Config{
			Path:     "/swagger",
			FilePath: config.Conf.App.SwaggerFile,
		}))
	}

	//api
	apiV1 := fiber.New(fiber.Config{
		BodyLimit: bodyLimit,
	})
	apiV1.Use(fiberlog.New(*initializers.LoggerConfig))
	app.Mount("/api/v1", apiV1)
	apiV1.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE, PUT",
	}))
	apiV1.Use(middleware.WithBodyLimit(int64(bodyLimit)))
	apiV1.Use(middleware.ErrNotify(config.Conf.ErrNotify.Addr))
	apiV1.Use(middleware.AuthorizationOptional())
	apiV1.Use(middleware.RbacMiddleware())

	apiv1.InitJobApiRouters(apiV1)
	apiv1.InitApplicationApiRouters(apiV1)
	apiv1.InitEmployerApiRouters(apiV1)
	apiv1.InitAdminApiRouters(apiV1)
	apiv1.InitFreelancerApiRouters(apiV1)
	apiv1.InitChatApiRouters(apiV1)
	apiv1.InitNotificationApiRouters(apiV1)
	apiv1.InitFileApiRouters(apiV1)
	apiv1.InitMeApiRouters(apiV1)

	//socket
	ws.InitWs(apiV1.Group("/ws"))

	// gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-c:
		case <-ctx.Done():
			return
		}
		log.Info("gracefully shutting down")
		cancel()
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("graceful shutdown failed")
		}
		time.Sleep(time.Second)
		log.Info("graceful shutdown finished")
	}()

	// run HTTP server
	if err := app.Listen(fmt.Sprintf("%s:%d", config.Conf.App.ListenAddr, config.Conf.App.Port)); err != nil {
		log.Fatal(err)
	}

	wg.Wait()
	log.Info("HTTP server successfully stopped")
}

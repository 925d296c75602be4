package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	container "gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.Container"
	demo "gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.Demo"
	"gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.DemoPublisher/publisher"
)

func main() {
	// Initialize dependency injection container
	ctr, err := container.NewPublisherContainer()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize container: %v", err))
	}
	defer ctr.Shutdown(context.Background())

	logger := ctr.GetLogger()
	logger.Info("Starting demo reading publisher")

	config := ctr.GetConfig()

	pub := publisher.New(*config, demo.Default(), logger)
	if err := pub.Start(context.Background()); err != nil {
		logger.FatalWithError(err, "Failed to start demo publisher")
	}
	ctr.AddCleanupFunc(func() error {
		pub.Stop()
		return nil
	})

	logger.WithFields(map[string]interface{}{
		"broker":   config.GetMQTTBrokerURL(),
		"topic":    config.MQTT.Topic,
		"interval": config.Interval.String(),
	}).Info("Demo publisher running... press Ctrl+C to stop")

	// Wait for shutdown signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("Shutting down...")
}

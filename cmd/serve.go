package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tferdous17/rbkv/http"
	"github.com/tferdous17/rbkv/store"
	"github.com/tferdous17/rbkv/utils"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a sharded store over HTTP and gRPC",
	RunE:  serve,
}

func serve(cmd *cobra.Command, args []string) error {
	if err := initConfig(); err != nil {
		return err
	}
	cluster, err := store.NewCluster(currentConfig.Shards, currentConfig.ExpectedKeys, currentConfig.FalsePositiveRate)
	if err != nil {
		return err
	}

	clusterService := http.NewService(currentConfig.HTTPAddr, cluster)
	if err := clusterService.Start(); err != nil {
		return fmt.Errorf("starting HTTP server: %w", err)
	}
	utils.LogGREEN("HTTP server started @ %s", clusterService.Addr())

	grpcServer, _, err := store.StartGRPCServer(currentConfig.GRPCAddr, cluster)
	if err != nil {
		clusterService.Close()
		return err
	}

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)

	// Block until one of the signals above is received
	<-signalCh
	utils.LogYELLOW("signal received, shutting down...")
	grpcServer.GracefulStop()
	if err := clusterService.Close(); err != nil {
		utils.LogRED("%s", err)
	}
	cluster.Diagnostics()
	return nil
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"protod.szuro.net/internal/config"
	"protod.szuro.net/internal/logger"
	"protod.szuro.net/internal/unity"
	"protod.szuro.net/pkg/server"
)

func printVersionInfo() {
	fmt.Printf("protod %s\n", config.Version)
	fmt.Printf("Git commit: %s\n", config.Commit)
	fmt.Printf("Compilation time: %s\n", config.BuildDate)
}

func main() {

	confPath := flag.String("c", "/etc/protod/unityd.yaml", "Path of config file")
	socket := flag.String("s", "", "Listen on this socket instead of the configured one")
	debug := flag.Bool("D", false, "Provide debug output")
	version := flag.Bool("v", false, "Show version info")
	flag.Parse()

	if *version {
		printVersionInfo()
		os.Exit(0)
	}

	daemonConfig := config.ParseDaemonConfig(*confPath)
	logger.SetLogLevel(daemonConfig.GetLogLevel())
	if *debug {
		logger.SetLogLevel(slog.LevelDebug)
	}
	if *socket != "" {
		daemonConfig.Socket = *socket
	}

	plugin := unity.New(unity.Options{
		StateDir:     daemonConfig.StateDir,
		StateBackend: daemonConfig.StateBackend,
	})

	if daemonConfig.Mode == config.GOPLUGIN_MODE {
		server.ServePlugin(plugin)
		return
	}

	config.DaemonInfo.Set(1)

	http.Handle("/metrics", promhttp.Handler())
	listen := fmt.Sprintf("%s:%d", daemonConfig.Http.ListenAddress, daemonConfig.Http.ListenPort)
	go http.ListenAndServe(listen, nil)

	ctx, cancel := context.WithCancel(context.Background())
	srv := server.NewServer(plugin, daemonConfig.Socket, nil)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGINT)
		<-sig
		logger.Info("Exiting...")
		cancel()
		srv.Shutdown()
	}()

	if err := srv.ListenAndServe(ctx); err != nil {
		logger.Error("Server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

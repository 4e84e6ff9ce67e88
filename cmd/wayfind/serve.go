package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/wayfind-dev/wayfind/internal/demo"
	"github.com/wayfind-dev/wayfind/internal/devsync"
	"github.com/wayfind-dev/wayfind/pkg/browser"
	"github.com/wayfind-dev/wayfind/pkg/middleware"
	"github.com/wayfind-dev/wayfind/pkg/router"
)

const shell = `<!DOCTYPE html>
<html>
<head><title>wayfind demo</title></head>
<body>
<div id="app">%s</div>
<script>
(function () {
  var ws = new WebSocket("ws://" + location.host + "/ws");
  ws.onmessage = function (ev) {
    var msg = JSON.parse(ev.data);
    if (msg.type === "render") {
      document.getElementById("app").innerHTML = msg.html;
      if (msg.path !== location.pathname) {
        history.replaceState(null, "", msg.path);
      }
      if (msg.fragment) {
        var el = document.getElementById(msg.fragment);
        if (el) el.scrollIntoView();
      }
    }
  };
})();
</script>
</body>
</html>
`

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the routing demo application",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

func serve(addr string) error {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	hub := devsync.NewHub()
	history := browser.NewHistory("/")

	ctrl := router.NewController(demo.Routes(),
		router.WithSource(history),
		router.WithNotFound(demo.NotFound),
		router.WithLogger(log),
		router.WithMiddleware(
			middleware.Prometheus(),
			middleware.OpenTelemetry(),
		),
	)

	// Every snapshot replacement is rendered once and mirrored to all
	// connected tabs.
	ctrl.Watch(func(cur router.Current) {
		hub.Broadcast(devsync.Message{
			Type:     devsync.TypeRender,
			Path:     history.Location().Path,
			Route:    cur.Route,
			Fragment: cur.Fragment,
			HTML:     cur.View(cur.Props()),
		})
	})
	ctrl.Start()
	defer ctrl.Stop()

	mux := chi.NewRouter()
	mux.Use(chimw.Logger)
	mux.Use(chimw.Recoverer)

	mux.Handle("/metrics", promhttp.Handler())
	mux.Get("/ws", hub.HandleWebSocket)

	// Any other GET drives the shared controller to the requested path
	// and returns the shell with the current render.
	mux.NotFound(func(w http.ResponseWriter, r *http.Request) {
		target := r.URL.Path
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		if err := ctrl.Navigate(target); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, shell, ctrl.Render())
	})

	log.Info("wayfind demo listening", "addr", addr)
	return http.ListenAndServe(addr, mux)
}

package handler

import (
	"net/http"
	"sitterhub/config"
	"sitterhub/di"
	"sitterhub/shared/logger"
	"sync"
)

var (
	service http.Handler
	once    sync.Once
)

// Handler is the serverless entrypoint. The service graph is built on the first request and reused by warm instances.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		logger.InitLogger()
		logger.Configure(config.Get())

		service = di.InitializeService()
	})

	r.RequestURI = r.URL.String()
	service.ServeHTTP(w, r)
}

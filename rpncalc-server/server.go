package main

import (
	"context"
	"expvar"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/expvarhandler"
)

// Various counters - see https://pkg.go.dev/expvar for details.
var (
	// Counter for total number of /eval calls
	evalCalls = expvar.NewInt("evalCalls")

	// Outcome of evaluations
	evalOK     = expvar.NewInt("evalOK")
	evalFailed = expvar.NewInt("evalFailed")

	// Evaluations answered from the result cache
	cacheHits = expvar.NewInt("cacheHits")

	// History cleanup
	cleanRuns    = expvar.NewInt("cleanRuns")
	cleanRemoved = expvar.NewInt("cleanRemoved")

	// Requests to unknown paths
	notFoundResponses = expvar.NewInt("notFoundResponses")
)

// RequestHandler routes requests to the evaluation service. /stats output
// may be filtered using regexps, e.g. /stats?r=eval shows only the
// evaluation counters.
func (this *EvalService) RequestHandler(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/eval":
		this.HandleEval(ctx)
	case "/history":
		this.HandleHistory(ctx)
	case "/forget":
		this.HandleForget(ctx)
	case "/recent":
		this.HandleRecent(ctx)
	case "/ops":
		HandleOps(ctx)
	case "/stats":
		expvarhandler.ExpvarHandler(ctx)
	default:
		notFoundResponses.Add(1)
		ctx.Error("not found", fasthttp.StatusNotFound)
	}
}

// NewServer builds the HTTP server for service.
func NewServer(service *EvalService, compress bool) *fasthttp.Server {
	handler := service.RequestHandler
	if compress {
		handler = fasthttp.CompressHandler(handler)
	}
	return &fasthttp.Server{
		Handler:      handler,
		Name:         "rpncalc-server",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		Concurrency:  256 * 1024,
	}
}

// Serve runs server on addr until shutdown is called.
func Serve(server *fasthttp.Server, addr string) error {
	log.Printf("Starting HTTP server on %q", addr)
	return server.ListenAndServe(addr)
}

func shutdown(ctx context.Context, server *fasthttp.Server) {
	if err := server.ShutdownWithContext(ctx); err != nil {
		log.Printf("error in Shutdown: %v", err)
	}
	StopScheduler()
	if err := CloseDb(); err != nil {
		log.Printf("error closing db: %v", err)
	}
}

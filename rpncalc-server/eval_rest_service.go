package main

import (
	"encoding/json"
	"errors"
	"log"
	"math"
	"strconv"
	"time"

	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	"rpncalc-go/model"
	"rpncalc-go/rpn"
)

// JSONFloat encodes non-finite values as "+Inf", "-Inf" and "NaN", which
// plain JSON numbers cannot represent.
type JSONFloat float64

func (f JSONFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	case math.IsInf(v, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Inf"`), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

func jsonFloat(v float64) *JSONFloat {
	f := JSONFloat(v)
	return &f
}

type EvalResponse struct {
	Expression string     `json:"expression"`
	Result     *JSONFloat `json:"result,omitempty"`
	Hits       int64      `json:"hits,omitempty"`
	Error      string     `json:"error,omitempty"`
	Kind       string     `json:"kind,omitempty"`
}

type OperatorInfo struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

type EvalService struct {
	strict  *rpn.Evaluator
	lenient *rpn.Evaluator
	cache   *ResultCache
	recent  *RecentEvaluations
	ttl     time.Duration
}

func NewEvalService(ttl time.Duration, cacheSize, recentSize int) *EvalService {
	return &EvalService{
		strict:  rpn.NewEvaluator(rpn.Options{UnknownTokens: rpn.UnknownTokenError}),
		lenient: rpn.NewEvaluator(rpn.Options{}),
		cache:   NewResultCache(cacheSize),
		recent:  NewRecentEvaluations(recentSize),
		ttl:     ttl,
	}
}

func (this *EvalService) evaluate(expr string, strict bool) (float64, error) {
	evaluator, policy := this.lenient, rpn.UnknownTokenIgnore
	if strict {
		evaluator, policy = this.strict, rpn.UnknownTokenError
	}
	if result, ok := this.cache.Get(expr, policy); ok {
		cacheHits.Add(1)
		return result, nil
	}
	result, err := evaluator.Evaluate(expr)
	if err == nil {
		this.cache.Put(expr, policy, result)
	}
	return result, err
}

func (this *EvalService) HandleEval(ctx *fasthttp.RequestCtx) {
	ctx.Response.Reset()
	evalCalls.Add(1)
	expr := rpn.Normalize(string(ctx.FormValue("expr")))
	if expr == "" {
		writeJSON(ctx, fasthttp.StatusBadRequest, EvalResponse{Error: "missing expr"})
		return
	}
	strict, _ := strconv.ParseBool(string(ctx.FormValue("strict")))

	now := time.Now()
	result, err := this.evaluate(expr, strict)
	entry := model.NewHistoryEntry(expr, result, err, this.ttl, now)
	if DB != nil {
		if herr := SaveHistoryEntry(entry); herr != nil {
			log.Printf("saving history for %q: %v", expr, herr)
		}
	}

	recent := RecentEvaluation{Expression: expr, At: now.Unix()}
	if err != nil {
		evalFailed.Add(1)
		recent.Error = err.Error()
		this.recent.Push(recent)
		writeJSON(ctx, fasthttp.StatusUnprocessableEntity, EvalResponse{
			Expression: expr, Error: err.Error(), Kind: rpn.Kind(err),
		})
		return
	}
	evalOK.Add(1)
	recent.Result = jsonFloat(result)
	this.recent.Push(recent)
	writeJSON(ctx, fasthttp.StatusOK, EvalResponse{
		Expression: expr, Result: jsonFloat(result), Hits: entry.Hits,
	})
}

const kDefaultHistoryLimit = 50

type HistoryView struct {
	Expression     string     `json:"expression"`
	ExpressionHash string     `json:"expression_hash"`
	Result         *JSONFloat `json:"result,omitempty"`
	Error          string     `json:"error,omitempty"`
	Hits           int64      `json:"hits"`
	CreatedAt      int64      `json:"created_at"`
	LastAccess     int64      `json:"last_access"`
	ExpiresAt      int64      `json:"expires_at"`
}

func NewHistoryView(entry *model.HistoryEntry) HistoryView {
	view := HistoryView{
		Expression:     entry.Expression,
		ExpressionHash: entry.ExpressionHash,
		Error:          entry.Error,
		Hits:           entry.Hits,
		CreatedAt:      entry.CreatedAt,
		LastAccess:     entry.LastAccess,
		ExpiresAt:      entry.LastAccess + entry.ExpiredDuration,
	}
	if entry.Error == "" {
		view.Result = jsonFloat(entry.Value())
	}
	return view
}

// HandleHistory lists history entries, or a single one selected by hash.
// DELETE forgets an entry.
func (this *EvalService) HandleHistory(ctx *fasthttp.RequestCtx) {
	ctx.Response.Reset()
	if DB == nil {
		ctx.Error("history is disabled", fasthttp.StatusNotFound)
		return
	}
	if ctx.IsDelete() {
		this.HandleForget(ctx)
		return
	}

	var items []*model.HistoryEntry
	if hash := string(ctx.QueryArgs().Peek("hash")); hash != "" {
		entry, err := FindHistoryByHash(hash)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.Error("no such expression", fasthttp.StatusNotFound)
			return
		} else if err != nil {
			ctx.Error(err.Error(), fasthttp.StatusInternalServerError)
			return
		}
		items = append(items, entry)
	} else {
		limit := ctx.QueryArgs().GetUintOrZero("limit")
		if limit <= 0 {
			limit = kDefaultHistoryLimit
		}
		var err error
		items, err = FindHistory(limit)
		if err != nil {
			ctx.Error(err.Error(), fasthttp.StatusInternalServerError)
			return
		}
	}

	views := make([]HistoryView, 0, len(items))
	for _, entry := range items {
		views = append(views, NewHistoryView(entry))
	}
	writeJSON(ctx, fasthttp.StatusOK, views)
}

func (this *EvalService) HandleForget(ctx *fasthttp.RequestCtx) {
	ctx.Response.Reset()
	if DB == nil {
		ctx.Error("history is disabled", fasthttp.StatusNotFound)
		return
	}
	hash := string(ctx.FormValue("hash"))
	if hash == "" {
		if expr := string(ctx.FormValue("expr")); expr != "" {
			hash = model.ExpressionHash(expr)
		}
	}
	if hash == "" {
		ctx.Error("missing hash or expr", fasthttp.StatusBadRequest)
		return
	}
	found, err := ForgetExpression(hash)
	if err != nil {
		ctx.Error(err.Error(), fasthttp.StatusInternalServerError)
		return
	}
	if !found {
		ctx.Error("no such expression", fasthttp.StatusNotFound)
		return
	}
	ctx.Success("plain/text", []byte("forgotten"))
}

func (this *EvalService) HandleRecent(ctx *fasthttp.RequestCtx) {
	ctx.Response.Reset()
	writeJSON(ctx, fasthttp.StatusOK, this.recent.Snapshot())
}

func HandleOps(ctx *fasthttp.RequestCtx) {
	ctx.Response.Reset()
	ops := []OperatorInfo{}
	for _, op := range rpn.Operators() {
		ops = append(ops, OperatorInfo{Symbol: op.Symbol(), Name: op.Name()})
	}
	writeJSON(ctx, fasthttp.StatusOK, ops)
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v interface{}) {
	buf, err := json.Marshal(v)
	if err != nil {
		ctx.Error(err.Error(), fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(buf)
}

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	catalogdomain "github.com/renolab/bathquote/internal/catalog/domain"
	"github.com/renolab/bathquote/internal/config"
	packagepricedomain "github.com/renolab/bathquote/internal/packageprice/domain"
	quotedomain "github.com/renolab/bathquote/internal/quote/domain"
	ratecarddomain "github.com/renolab/bathquote/internal/ratecard/domain"
	snapshotdomain "github.com/renolab/bathquote/internal/snapshot/domain"
)

type fakeQuoteService struct {
	calls int
	err   error
}

func (f *fakeQuoteService) Calculate(ctx context.Context, form quotedomain.QuoteFormData) (*quotedomain.CalculatedQuote, error) {
	f.calls++
	_ = ctx
	if f.err != nil {
		return nil, f.err
	}
	return &quotedomain.CalculatedQuote{
		Totals:      quotedomain.Totals{GrandTotal: decimal.RequireFromString("4410")},
		RawFormData: form,
	}, nil
}

func (f *fakeQuoteService) CalculateWith(ctx context.Context, form quotedomain.QuoteFormData, snapshot *ratecarddomain.ConfigSnapshot) (*quotedomain.CalculatedQuote, error) {
	return f.Calculate(ctx, form)
}

type fakePackageService struct {
	err error
}

func (f *fakePackageService) Price(ctx context.Context, packageCode string, cfg packagepricedomain.Configuration) (*packagepricedomain.Result, error) {
	_ = ctx
	_ = packageCode
	_ = cfg
	if f.err != nil {
		return nil, f.err
	}
	return &packagepricedomain.Result{Total: decimal.RequireFromString("2542.50")}, nil
}

func (f *fakePackageService) PriceWith(ctx context.Context, pkg catalogdomain.Package, cfg packagepricedomain.Configuration, snapshot *ratecarddomain.ConfigSnapshot) (*packagepricedomain.Result, error) {
	return f.Price(ctx, pkg.Code, cfg)
}

type fakeSnapshotService struct {
	getErr error
}

func (f *fakeSnapshotService) Create(ctx context.Context, req snapshotdomain.CreateRequest) (*snapshotdomain.CreateResult, error) {
	_ = ctx
	return &snapshotdomain.CreateResult{
		Snapshot: &snapshotdomain.PricingSnapshot{QuoteRef: req.QuoteRef, Status: snapshotdomain.StatusDraft},
	}, nil
}

func (f *fakeSnapshotService) Get(ctx context.Context, id string) (*snapshotdomain.PricingSnapshot, error) {
	_ = ctx
	_ = id
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &snapshotdomain.PricingSnapshot{Status: snapshotdomain.StatusDraft}, nil
}

func (f *fakeSnapshotService) Transition(ctx context.Context, id string, to snapshotdomain.Status) (*snapshotdomain.PricingSnapshot, error) {
	_ = ctx
	_ = id
	return &snapshotdomain.PricingSnapshot{Status: to}, nil
}

func newTestServer(quoteSvc quotedomain.Service, snapshotSvc snapshotdomain.Service) *Server {
	gin.SetMode(gin.TestMode)
	cfg := config.Config{HTTPAddr: ":0"}
	return NewServer(ServerParams{
		Gin:         NewEngine(cfg),
		Cfg:         cfg,
		Log:         zap.NewNop(),
		QuoteSvc:    quoteSvc,
		PackageSvc:  &fakePackageService{},
		SnapshotSvc: snapshotSvc,
	})
}

func TestCalculateQuote_OK(t *testing.T) {
	quoteSvc := &fakeQuoteService{}
	srv := newTestServer(quoteSvc, &fakeSnapshotService{})

	body := []byte(`{"bathroom_type": "powder", "building_type": "house", "floor_sqft": 40}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/quotes/calculate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, quoteSvc.calls)

	var quote quotedomain.CalculatedQuote
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &quote))
	assert.Equal(t, "4410", quote.Totals.GrandTotal.String())
}

func TestCalculateQuote_BadJSON(t *testing.T) {
	srv := newTestServer(&fakeQuoteService{}, &fakeSnapshotService{})

	req := httptest.NewRequest(http.MethodPost, "/v1/quotes/calculate", bytes.NewReader([]byte(`{`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalculateQuote_ConfigError(t *testing.T) {
	srv := newTestServer(&fakeQuoteService{err: quotedomain.ErrRateCardIncomplete}, &fakeSnapshotService{})

	body := []byte(`{"bathroom_type": "powder", "building_type": "house"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/quotes/calculate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPricePackage_OK(t *testing.T) {
	srv := newTestServer(&fakeQuoteService{}, &fakeSnapshotService{})

	body := []byte(`{
		"package_code": "CLASSIC",
		"configuration": {"size": "small", "type": "Sink & Toilet", "wall_tile_coverage": "Floor to ceiling"}
	}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/packages/price", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var result packagepricedomain.Result
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "2542.5", result.Total.String())
}

func TestCreateSnapshot_Created(t *testing.T) {
	srv := newTestServer(&fakeQuoteService{}, &fakeSnapshotService{})

	body := []byte(`{
		"quote_ref": "Q-1001",
		"package_code": "CLASSIC",
		"form": {"bathroom_type": "powder", "building_type": "house"},
		"configuration": {"size": "small", "type": "Sink & Toilet", "wall_tile_coverage": "None"}
	}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/snapshots", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestGetSnapshot_NotFound(t *testing.T) {
	srv := newTestServer(&fakeQuoteService{}, &fakeSnapshotService{getErr: snapshotdomain.ErrNotFound})

	req := httptest.NewRequest(http.MethodGet, "/v1/snapshots/123", nil)
	w := httptest.NewRecorder()
	srv.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(&fakeQuoteService{}, &fakeSnapshotService{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
